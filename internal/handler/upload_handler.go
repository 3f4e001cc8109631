package handler

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v2"
)

type UploadHandler struct{}

func NewUploadHandler() *UploadHandler {
	return &UploadHandler{}
}

// UploadFoto menyimpan foto ke folder uploads dan mengembalikan URL-nya.
// Seluruh kolom foto_url di laporan/bukti/peminjaman diisi dari sini.
func (h *UploadHandler) UploadFoto(c *fiber.Ctx) error {
	userID := uint(c.Locals("user_id").(float64))

	file, err := c.FormFile("foto")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "File foto wajib diunggah"})
	}

	// Buat folder jika belum ada
	uploadDir := "./uploads/laporan"
	if _, err := os.Stat(uploadDir); os.IsNotExist(err) {
		os.MkdirAll(uploadDir, 0755)
	}

	// Simpan file: uploads/laporan/userID_timestamp_namafile
	filename := fmt.Sprintf("%d_%d_%s", userID, time.Now().Unix(), filepath.Base(file.Filename))
	path := fmt.Sprintf("uploads/laporan/%s", filename)

	if err := c.SaveFile(file, path); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal menyimpan file"})
	}

	return c.JSON(fiber.Map{
		"message":  "Foto berhasil diunggah",
		"foto_url": "/" + path,
	})
}
