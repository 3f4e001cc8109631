package model

import "gorm.io/gorm"

type User struct {
	gorm.Model
	Nama     string `json:"nama"`
	Username string `json:"username" gorm:"unique;not null"`
	Password string `json:"-"`
	Role     string `json:"role" gorm:"default:TEKNISI"` // ADMIN / PENGAWAS / TEKNISI
	NoHP     string `json:"no_hp"`
	Email    string `json:"email"`
	Foto     string `json:"foto"`
}
