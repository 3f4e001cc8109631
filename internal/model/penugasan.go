package model

import "gorm.io/gorm"

type Penugasan struct {
	gorm.Model
	Judul            string `json:"judul"`
	Deskripsi        string `json:"deskripsi"`
	Kategori         string `json:"kategori"` // Instalasi / Perbaikan / Pemeliharaan / Inspeksi
	Lokasi           string `json:"lokasi"`
	FrekuensiLaporan string `json:"frekuensi_laporan" gorm:"default:Harian"` // Harian / Mingguan
	TanggalMulai     string `json:"tanggal_mulai"`                           // Format YYYY-MM-DD
	TanggalSelesai   string `json:"tanggal_selesai"`                         // Format YYYY-MM-DD
	Status           string `json:"status" gorm:"default:Aktif"`             // Aktif / Selesai / Dibatalkan
	PengawasID       uint   `json:"pengawas_id"`

	// Relasi
	Pengawas User   `gorm:"foreignKey:PengawasID" json:"pengawas,omitempty"`
	Teknisi  []User `gorm:"many2many:penugasan_teknisi;joinForeignKey:PenugasanID;joinReferences:TeknisiID" json:"teknisi,omitempty"`
}

func (Penugasan) TableName() string {
	return "penugasan"
}

// Baris penghubung penugasan <-> teknisi. Didefinisikan eksplisit agar
// repository bisa query langsung ke tabel join (cek otorisasi pelapor).
type PenugasanTeknisi struct {
	PenugasanID uint `json:"penugasan_id" gorm:"primaryKey"`
	TeknisiID   uint `json:"teknisi_id" gorm:"primaryKey"`
}

func (PenugasanTeknisi) TableName() string {
	return "penugasan_teknisi"
}
