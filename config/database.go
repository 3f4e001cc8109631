package config

import (
	"fmt"

	"fieldops-backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB() {
	// Format: user:password@tcp(host:port)/dbname?charset=utf8mb4&parseTime=True&loc=Local
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		GetEnv("DB_USER", "root"),
		GetEnv("DB_PASS", ""),
		GetEnv("DB_HOST", "127.0.0.1"),
		GetEnv("DB_PORT", "3306"),
		GetEnv("DB_NAME", "fieldops_db"),
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		panic("Gagal koneksi ke database!")
	}

	fmt.Println("Koneksi Database Berhasil!")

	// Auto Migration: Membuat tabel otomatis berdasarkan struct di folder model
	db.AutoMigrate(&model.User{})
	db.AutoMigrate(&model.Penugasan{})
	db.AutoMigrate(&model.PenugasanTeknisi{})
	db.AutoMigrate(&model.LaporanProgres{})
	db.AutoMigrate(&model.BuktiLaporan{})
	db.AutoMigrate(&model.Alat{})
	db.AutoMigrate(&model.PeminjamanAlat{})
	db.AutoMigrate(&model.Notifikasi{})
	db.AutoMigrate(&model.LogAktivitas{})

	DB = db
}
