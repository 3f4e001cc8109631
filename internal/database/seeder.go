package database

import (
	"log"

	"fieldops-backend/internal/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func SeedAll(db *gorm.DB) {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("rahasia123"), bcrypt.DefaultCost)

	// 1. Seed Akun Admin
	admin := model.User{
		Nama:     "Administrator Utama",
		Username: "admin",
		Password: string(hashedPassword),
		Role:     "ADMIN",
	}
	result := db.FirstOrCreate(&admin, model.User{Username: admin.Username})
	if result.Error == nil {
		// Paksa update password agar selalu sinkron dengan "rahasia123" meskipun user sudah ada
		db.Model(&admin).Update("password", string(hashedPassword))
		log.Println("Seeding Admin berhasil!")
	}

	// 2. Seed Pengawas
	pengawas := model.User{
		Nama:     "Sari Pengawas",
		Username: "pengawas1",
		Password: string(hashedPassword),
		Role:     "PENGAWAS",
		Email:    "pengawas1@example.com",
	}
	db.FirstOrCreate(&pengawas, model.User{Username: pengawas.Username})

	// 3. Seed Teknisi
	teknisi := []model.User{
		{Nama: "Budi Teknisi", Username: "teknisi1", Password: string(hashedPassword), Role: "TEKNISI"},
		{Nama: "Andi Teknisi", Username: "teknisi2", Password: string(hashedPassword), Role: "TEKNISI"},
	}
	for i := range teknisi {
		db.FirstOrCreate(&teknisi[i], model.User{Username: teknisi[i].Username})
	}

	// 4. Seed Alat
	alat := []model.Alat{
		{Nama: "Tang Crimping", Kode: "ALT-001", StokTotal: 10, StokTersedia: 10},
		{Nama: "Fusion Splicer", Kode: "ALT-002", StokTotal: 3, StokTersedia: 3},
		{Nama: "OTDR", Kode: "ALT-003", StokTotal: 2, StokTersedia: 2},
		{Nama: "Tangga Lipat", Kode: "ALT-004", StokTotal: 5, StokTersedia: 5},
	}
	for i := range alat {
		db.FirstOrCreate(&alat[i], model.Alat{Kode: alat[i].Kode})
	}

	// 5. Seed Penugasan contoh + teknisi + peminjaman alat
	penugasan := model.Penugasan{
		Judul:            "Instalasi jaringan kantor cabang",
		Deskripsi:        "Penarikan kabel dan instalasi perangkat di kantor cabang baru",
		Kategori:         "Instalasi",
		Lokasi:           "Kantor Cabang Padang",
		FrekuensiLaporan: "Harian",
		TanggalMulai:     "2026-01-05",
		TanggalSelesai:   "2026-01-20",
		PengawasID:       pengawas.ID,
	}
	result = db.FirstOrCreate(&penugasan, model.Penugasan{Judul: penugasan.Judul})
	if result.Error == nil && len(teknisi) > 0 {
		link := model.PenugasanTeknisi{PenugasanID: penugasan.ID, TeknisiID: teknisi[0].ID}
		db.FirstOrCreate(&link, link)

		pinjam := model.PeminjamanAlat{
			PenugasanID: penugasan.ID,
			AlatID:      alat[0].ID,
			Jumlah:      2,
		}
		db.FirstOrCreate(&pinjam, model.PeminjamanAlat{PenugasanID: penugasan.ID, AlatID: alat[0].ID})
		log.Println("Seeding Penugasan contoh berhasil!")
	}
}
