package handler

import (
	"errors"
	"log"
	"strconv"

	"fieldops-backend/internal/repository"
	"fieldops-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

type LaporanHandler struct {
	uc          *usecase.LaporanUsecase
	laporanRepo repository.LaporanRepository
}

func NewLaporanHandler(uc *usecase.LaporanUsecase, laporanRepo repository.LaporanRepository) *LaporanHandler {
	return &LaporanHandler{uc: uc, laporanRepo: laporanRepo}
}

// SubmitLaporan menerima laporan progres dari teknisi untuk satu penugasan.
func (h *LaporanHandler) SubmitLaporan(c *fiber.Ctx) error {
	teknisiID := uint(c.Locals("user_id").(float64))

	penugasanID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID penugasan tidak valid"})
	}

	var req usecase.LaporanRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Data tidak valid"})
	}

	hasil, err := h.uc.SubmitLaporan(uint(penugasanID), teknisiID, &req)
	if err != nil {
		var verr *usecase.ValidationError
		if errors.As(err, &verr) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": verr.Pesan})
		}
		// Penugasan hilang dan teknisi tidak terdaftar sengaja dibalas sama
		// supaya caller tidak bisa menebak penugasan mana yang ada.
		if errors.Is(err, usecase.ErrPenugasanTidakDitemukan) || errors.Is(err, usecase.ErrBukanTeknisiPenugasan) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Penugasan tidak ditemukan"})
		}
		log.Printf("submit laporan penugasan %d oleh teknisi %d: %v", penugasanID, teknisiID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Terjadi kesalahan saat menyimpan laporan"})
	}

	return c.JSON(fiber.Map{
		"message":             "Laporan berhasil dikirim",
		"report":              hasil.Laporan,
		"warning":             hasil.Warning,
		"total_reports":       hasil.TotalLaporan,
		"locked":              hasil.Locked,
		"auto_returned_tools": hasil.AlatDikembalikan,
		"saved_pair_count":    hasil.JumlahBukti,
	})
}

func (h *LaporanHandler) GetByPenugasan(c *fiber.Ctx) error {
	penugasanID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID penugasan tidak valid"})
	}

	list, err := h.laporanRepo.GetByPenugasan(uint(penugasanID))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal mengambil data laporan"})
	}

	return c.JSON(fiber.Map{
		"message": "Berhasil mengambil daftar laporan",
		"data":    list,
	})
}

func (h *LaporanHandler) GetDetail(c *fiber.Ctx) error {
	laporanID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID laporan tidak valid"})
	}

	laporan, err := h.laporanRepo.FindByID(uint(laporanID))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Laporan tidak ditemukan"})
	}

	bukti, err := h.laporanRepo.GetBuktiByLaporan(laporan.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal mengambil bukti laporan"})
	}

	return c.JSON(fiber.Map{
		"message": "Berhasil mengambil detail laporan",
		"data": fiber.Map{
			"laporan": laporan,
			"bukti":   bukti,
		},
	})
}

type ValidasiRequest struct {
	Status  string  `json:"status"` // "Disetujui" atau "Ditolak"
	Catatan *string `json:"catatan"`
}

// Validasi dijalankan pengawas terhadap laporan yang sudah masuk. Sengaja
// terpisah dari alur submit: status penugasan tidak ikut berubah di sini.
func (h *LaporanHandler) Validasi(c *fiber.Ctx) error {
	laporanID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID laporan tidak valid"})
	}

	var req ValidasiRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Data tidak valid"})
	}

	if req.Status != "Disetujui" && req.Status != "Ditolak" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Status validasi harus Disetujui atau Ditolak"})
	}

	if _, err := h.laporanRepo.FindByID(uint(laporanID)); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Laporan tidak ditemukan"})
	}

	if err := h.laporanRepo.UpdateValidasi(uint(laporanID), req.Status, req.Catatan); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal memperbarui status validasi"})
	}

	return c.JSON(fiber.Map{"message": "Status validasi berhasil diperbarui"})
}
