package handler

import (
	"strconv"

	"fieldops-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
)

type NotifikasiHandler struct {
	repo repository.NotifikasiRepository
}

func NewNotifikasiHandler(repo repository.NotifikasiRepository) *NotifikasiHandler {
	return &NotifikasiHandler{repo: repo}
}

func (h *NotifikasiHandler) GetAll(c *fiber.Ctx) error {
	userID := uint(c.Locals("user_id").(float64))

	list, err := h.repo.GetByUser(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal mengambil notifikasi"})
	}

	return c.JSON(fiber.Map{
		"message": "Berhasil mengambil notifikasi",
		"data":    list,
	})
}

func (h *NotifikasiHandler) TandaiDibaca(c *fiber.Ctx) error {
	userID := uint(c.Locals("user_id").(float64))

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID notifikasi tidak valid"})
	}

	if err := h.repo.TandaiDibaca(uint(id), userID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal memperbarui notifikasi"})
	}

	return c.JSON(fiber.Map{"message": "Notifikasi ditandai sudah dibaca"})
}

func (h *NotifikasiHandler) CountBelumDibaca(c *fiber.Ctx) error {
	userID := uint(c.Locals("user_id").(float64))

	count, err := h.repo.CountBelumDibaca(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal menghitung notifikasi"})
	}

	return c.JSON(fiber.Map{
		"message": "Berhasil menghitung notifikasi belum dibaca",
		"count":   count,
	})
}

func (h *NotifikasiHandler) GetLogs(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)

	logs, err := h.repo.GetLogs(limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal mengambil log aktivitas"})
	}

	return c.JSON(fiber.Map{
		"message": "Berhasil mengambil log aktivitas",
		"data":    logs,
	})
}
