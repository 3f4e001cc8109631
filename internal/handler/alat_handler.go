package handler

import (
	"log"
	"strconv"

	"fieldops-backend/internal/model"
	"fieldops-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
)

type AlatHandler struct {
	repo          repository.AlatRepository
	penugasanRepo repository.PenugasanRepository
}

func NewAlatHandler(repo repository.AlatRepository, penugasanRepo repository.PenugasanRepository) *AlatHandler {
	return &AlatHandler{repo: repo, penugasanRepo: penugasanRepo}
}

type AlatRequest struct {
	Nama      string `json:"nama" validate:"required"`
	Kode      string `json:"kode" validate:"required"`
	StokTotal int    `json:"stok_total" validate:"required,min=1"`
}

func (h *AlatHandler) Create(c *fiber.Ctx) error {
	var req AlatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Data tidak valid"})
	}

	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Data alat tidak lengkap atau tidak valid"})
	}

	alat := model.Alat{
		Nama:         req.Nama,
		Kode:         req.Kode,
		StokTotal:    req.StokTotal,
		StokTersedia: req.StokTotal, // Stok awal = semua tersedia
	}

	if err := h.repo.Create(&alat); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Kode alat sudah digunakan"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Alat berhasil ditambahkan",
		"data":    alat,
	})
}

func (h *AlatHandler) GetAll(c *fiber.Ctx) error {
	list, err := h.repo.GetAll()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal mengambil data alat"})
	}

	return c.JSON(fiber.Map{
		"message": "Berhasil mengambil daftar alat",
		"data":    list,
	})
}

func (h *AlatHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID alat tidak valid"})
	}

	alat, err := h.repo.FindByID(uint(id))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Alat tidak ditemukan"})
	}

	var req AlatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Data tidak valid"})
	}

	if req.Nama != "" {
		alat.Nama = req.Nama
	}
	if req.Kode != "" {
		alat.Kode = req.Kode
	}
	if req.StokTotal > 0 {
		// Geser stok tersedia mengikuti selisih stok total
		selisih := req.StokTotal - alat.StokTotal
		alat.StokTotal = req.StokTotal
		alat.StokTersedia += selisih
		if alat.StokTersedia < 0 {
			alat.StokTersedia = 0
		}
	}

	if err := h.repo.Update(alat); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal memperbarui alat"})
	}

	return c.JSON(fiber.Map{
		"message": "Alat berhasil diperbarui",
		"data":    alat,
	})
}

func (h *AlatHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID alat tidak valid"})
	}

	if err := h.repo.Delete(uint(id)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal menghapus alat"})
	}

	return c.JSON(fiber.Map{"message": "Alat berhasil dihapus"})
}

type PinjamAlatRequest struct {
	AlatID uint `json:"alat_id"`
	Jumlah int  `json:"jumlah"`
}

// PinjamAlat mencatat alat yang dibawa untuk satu penugasan dan langsung
// memotong stok tersedia.
func (h *AlatHandler) PinjamAlat(c *fiber.Ctx) error {
	penugasanID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID penugasan tidak valid"})
	}

	var req PinjamAlatRequest
	if err := c.BodyParser(&req); err != nil || req.AlatID == 0 || req.Jumlah <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Data peminjaman tidak valid"})
	}

	if _, err := h.penugasanRepo.FindByID(uint(penugasanID)); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Penugasan tidak ditemukan"})
	}

	if _, err := h.repo.FindByID(req.AlatID); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Alat tidak ditemukan"})
	}

	// Potong stok dulu; gagal berarti stok tidak cukup
	if err := h.repo.KurangiStokTersedia(req.AlatID, req.Jumlah); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Stok alat tidak mencukupi"})
	}

	peminjaman := model.PeminjamanAlat{
		PenugasanID: uint(penugasanID),
		AlatID:      req.AlatID,
		Jumlah:      req.Jumlah,
	}

	if err := h.repo.CreatePeminjaman(&peminjaman); err != nil {
		// Kembalikan stok yang terlanjur dipotong
		if errStok := h.repo.TambahStokTersedia(req.AlatID, req.Jumlah); errStok != nil {
			log.Printf("peminjaman alat %d: gagal mengembalikan stok setelah insert gagal: %v", req.AlatID, errStok)
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal mencatat peminjaman alat"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Peminjaman alat berhasil dicatat",
		"data":    peminjaman,
	})
}

func (h *AlatHandler) GetPeminjaman(c *fiber.Ctx) error {
	penugasanID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID penugasan tidak valid"})
	}

	list, err := h.repo.GetPeminjamanByPenugasan(uint(penugasanID))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal mengambil data peminjaman"})
	}

	return c.JSON(fiber.Map{
		"message": "Berhasil mengambil daftar peminjaman alat",
		"data":    list,
	})
}
