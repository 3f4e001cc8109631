package handler

import (
	"strconv"

	"fieldops-backend/internal/model"
	"fieldops-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
)

type PenugasanHandler struct {
	repo     repository.PenugasanRepository
	userRepo repository.UserRepository
}

func NewPenugasanHandler(repo repository.PenugasanRepository, userRepo repository.UserRepository) *PenugasanHandler {
	return &PenugasanHandler{repo: repo, userRepo: userRepo}
}

type CreatePenugasanRequest struct {
	Judul            string `json:"judul" validate:"required"`
	Deskripsi        string `json:"deskripsi"`
	Kategori         string `json:"kategori" validate:"required,oneof=Instalasi Perbaikan Pemeliharaan Inspeksi"`
	Lokasi           string `json:"lokasi"`
	FrekuensiLaporan string `json:"frekuensi_laporan" validate:"required,oneof=Harian Mingguan"`
	TanggalMulai     string `json:"tanggal_mulai" validate:"required,datetime=2006-01-02"`
	TanggalSelesai   string `json:"tanggal_selesai" validate:"required,datetime=2006-01-02"`
	TeknisiIDs       []uint `json:"teknisi_ids"`
}

func (h *PenugasanHandler) Create(c *fiber.Ctx) error {
	pengawasID := uint(c.Locals("user_id").(float64))

	var req CreatePenugasanRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Data tidak valid"})
	}

	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Data penugasan tidak lengkap atau tidak valid"})
	}

	penugasan := model.Penugasan{
		Judul:            req.Judul,
		Deskripsi:        req.Deskripsi,
		Kategori:         req.Kategori,
		Lokasi:           req.Lokasi,
		FrekuensiLaporan: req.FrekuensiLaporan,
		TanggalMulai:     req.TanggalMulai,
		TanggalSelesai:   req.TanggalSelesai,
		PengawasID:       pengawasID,
	}

	if err := h.repo.Create(&penugasan); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal membuat penugasan"})
	}

	// Daftarkan teknisi yang dipilih sekalian
	for _, teknisiID := range req.TeknisiIDs {
		if err := h.repo.AddTeknisi(penugasan.ID, teknisiID); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal mendaftarkan teknisi"})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Penugasan berhasil dibuat",
		"data":    penugasan,
	})
}

// GetAll mengembalikan daftar penugasan sesuai role yang login:
// teknisi melihat penugasannya sendiri, pengawas melihat miliknya, admin semua.
func (h *PenugasanHandler) GetAll(c *fiber.Ctx) error {
	userID := uint(c.Locals("user_id").(float64))
	role, _ := c.Locals("role").(string)

	var list []model.Penugasan
	var err error

	switch role {
	case "TEKNISI":
		list, err = h.repo.GetByTeknisi(userID)
	case "PENGAWAS":
		list, err = h.repo.GetByPengawas(userID)
	default:
		list, err = h.repo.GetAll()
	}

	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal mengambil data penugasan"})
	}

	return c.JSON(fiber.Map{
		"message": "Berhasil mengambil daftar penugasan",
		"data":    list,
	})
}

func (h *PenugasanHandler) GetDetail(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID penugasan tidak valid"})
	}

	penugasan, err := h.repo.FindByID(uint(id))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Penugasan tidak ditemukan"})
	}

	return c.JSON(fiber.Map{
		"message": "Berhasil mengambil detail penugasan",
		"data":    penugasan,
	})
}

type UpdateStatusRequest struct {
	Status string `json:"status"` // Aktif / Selesai / Dibatalkan
}

// UpdateStatus adalah langkah validasi milik pengawas, sengaja dipisah dari
// pembuatan laporan: laporan akhir teknisi tidak otomatis menutup penugasan.
func (h *PenugasanHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID penugasan tidak valid"})
	}

	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Data tidak valid"})
	}

	if req.Status != "Aktif" && req.Status != "Selesai" && req.Status != "Dibatalkan" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Status penugasan tidak valid"})
	}

	if _, err := h.repo.FindByID(uint(id)); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Penugasan tidak ditemukan"})
	}

	if err := h.repo.UpdateStatus(uint(id), req.Status); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal memperbarui status penugasan"})
	}

	return c.JSON(fiber.Map{"message": "Status penugasan berhasil diperbarui"})
}

type TeknisiRequest struct {
	TeknisiID uint `json:"teknisi_id"`
}

func (h *PenugasanHandler) AddTeknisi(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID penugasan tidak valid"})
	}

	var req TeknisiRequest
	if err := c.BodyParser(&req); err != nil || req.TeknisiID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Data tidak valid"})
	}

	// Pastikan user yang didaftarkan memang teknisi
	teknisi, err := h.userRepo.FindByID(req.TeknisiID)
	if err != nil || teknisi.Role != "TEKNISI" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "User bukan teknisi"})
	}

	if err := h.repo.AddTeknisi(uint(id), req.TeknisiID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal mendaftarkan teknisi"})
	}

	return c.JSON(fiber.Map{"message": "Teknisi berhasil didaftarkan"})
}

func (h *PenugasanHandler) RemoveTeknisi(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID penugasan tidak valid"})
	}

	teknisiID, err := strconv.ParseUint(c.Params("teknisi_id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID teknisi tidak valid"})
	}

	if err := h.repo.RemoveTeknisi(uint(id), uint(teknisiID)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal menghapus teknisi dari penugasan"})
	}

	return c.JSON(fiber.Map{"message": "Teknisi berhasil dihapus dari penugasan"})
}

func (h *PenugasanHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID penugasan tidak valid"})
	}

	if err := h.repo.Delete(uint(id)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal menghapus penugasan"})
	}

	return c.JSON(fiber.Map{"message": "Penugasan berhasil dihapus"})
}
