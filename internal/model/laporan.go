package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Status progres laporan teknisi
const (
	StatusMenunggu      = "Menunggu"
	StatusDikerjakan    = "Sedang Dikerjakan"
	StatusHampirSelesai = "Hampir Selesai"
	StatusSelesai       = "Selesai"
)

type LaporanProgres struct {
	gorm.Model
	PenugasanID     uint    `json:"penugasan_id" gorm:"index"`
	TeknisiID       uint    `json:"teknisi_id"`
	TanggalLaporan  string  `json:"tanggal_laporan"` // Format YYYY-MM-DD
	StatusProgres   string  `json:"status_progres"`
	Persentase      *int    `json:"persentase_progres"`
	FotoURL         string  `json:"foto_url"`
	Catatan         *string `json:"catatan"`
	Lokasi          *string `json:"lokasi"`                                 // WKT: POINT(longitude latitude)
	StatusValidasi  string  `json:"status_validasi" gorm:"default:Pending"` // Pending / Disetujui / Ditolak
	CatatanValidasi *string `json:"catatan_validasi"`
}

func (LaporanProgres) TableName() string {
	return "laporan_progres"
}

// Pasangan foto sebelum/sesudah yang menempel ke satu laporan
type BuktiLaporan struct {
	gorm.Model
	LaporanID     uint           `json:"laporan_id" gorm:"index"`
	PairKey       string         `json:"pair_key"`
	Judul         *string        `json:"judul"`
	Deskripsi     *string        `json:"deskripsi"`
	FotoBeforeURL string         `json:"foto_before_url"`
	FotoAfterURL  string         `json:"foto_after_url"`
	DiambilPada   time.Time      `json:"diambil_pada"`
	DiunggahOleh  uint           `json:"diunggah_oleh"`
	Metadata      datatypes.JSON `json:"metadata"`
}

func (BuktiLaporan) TableName() string {
	return "bukti_laporan"
}
