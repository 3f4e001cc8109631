package handler

import (
	"time"

	"fieldops-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	repo repository.DashboardRepository
}

func NewDashboardHandler(repo repository.DashboardRepository) *DashboardHandler {
	return &DashboardHandler{repo: repo}
}

// GetRingkasan menyediakan angka-angka untuk halaman dashboard.
func (h *DashboardHandler) GetRingkasan(c *fiber.Ctx) error {
	today := time.Now().Format("2006-01-02")

	penugasanAktif, err := h.repo.CountPenugasanByStatus("Aktif")
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal mengambil data dashboard"})
	}

	laporanHariIni, _ := h.repo.CountLaporanByTanggal(today)
	menungguValidasi, _ := h.repo.CountLaporanPendingValidasi()
	alatDipinjam, _ := h.repo.CountAlatDipinjam()

	return c.JSON(fiber.Map{
		"message": "Berhasil mengambil ringkasan dashboard",
		"data": fiber.Map{
			"penugasan_aktif":   penugasanAktif,
			"laporan_hari_ini":  laporanHariIni,
			"menunggu_validasi": menungguValidasi,
			"alat_dipinjam":     alatDipinjam,
		},
	})
}
