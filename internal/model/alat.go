package model

import (
	"time"

	"gorm.io/gorm"
)

type Alat struct {
	gorm.Model
	Nama         string `json:"nama"`
	Kode         string `json:"kode" gorm:"unique"`
	StokTotal    int    `json:"stok_total"`
	StokTersedia int    `json:"stok_tersedia"`
}

func (Alat) TableName() string {
	return "alat"
}

type PeminjamanAlat struct {
	gorm.Model
	PenugasanID         uint       `json:"penugasan_id" gorm:"index"`
	AlatID              uint       `json:"alat_id"`
	Jumlah              int        `json:"jumlah"`
	Dikembalikan        bool       `json:"dikembalikan" gorm:"default:false"`
	FotoPengambilanURL  string     `json:"foto_pengambilan_url"`
	FotoPengembalianURL string     `json:"foto_pengembalian_url"`
	DikembalikanPada    *time.Time `json:"dikembalikan_pada"`

	// Relasi untuk Preload nama alat di halaman detail
	Alat Alat `gorm:"foreignKey:AlatID" json:"alat,omitempty"`
}

func (PeminjamanAlat) TableName() string {
	return "peminjaman_alat"
}
