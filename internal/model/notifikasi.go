package model

import "gorm.io/gorm"

type Notifikasi struct {
	gorm.Model
	UserID uint   `json:"user_id" gorm:"index"`
	Judul  string `json:"judul"`
	Pesan  string `json:"pesan"`
	Dibaca bool   `json:"dibaca" gorm:"default:false"`
}

func (Notifikasi) TableName() string {
	return "notifikasi"
}

type LogAktivitas struct {
	gorm.Model
	UserID uint   `json:"user_id"`
	Aksi   string `json:"aksi"`
	Detail string `json:"detail"`
}

func (LogAktivitas) TableName() string {
	return "log_aktivitas"
}
