package routes

import (
	"fieldops-backend/internal/handler"
	"fieldops-backend/internal/middleware"
	"fieldops-backend/internal/notifier"
	"fieldops-backend/internal/repository"
	"fieldops-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupLaporanRoutes(app *fiber.App, db *gorm.DB) {
	laporanRepo := repository.NewLaporanRepository(db)
	penugasanRepo := repository.NewPenugasanRepository(db)
	alatRepo := repository.NewAlatRepository(db)
	notifikasiRepo := repository.NewNotifikasiRepository(db)
	userRepo := repository.NewUserRepository(db)

	// Mailer opsional: nil jika SMTP tidak dikonfigurasi
	var mailer usecase.PengirimEmail
	if m := notifier.NewDariEnv(); m != nil {
		mailer = m
	}

	uc := usecase.NewLaporanUsecase(laporanRepo, penugasanRepo, alatRepo, notifikasiRepo, userRepo, mailer)
	hdl := handler.NewLaporanHandler(uc, laporanRepo)

	api := app.Group("/api", middleware.Auth)

	api.Post("/penugasan/:id/laporan", middleware.Role("TEKNISI"), hdl.SubmitLaporan)
	api.Get("/penugasan/:id/laporan", hdl.GetByPenugasan)
	api.Get("/laporan/:id", hdl.GetDetail)
	api.Patch("/laporan/:id/validasi", middleware.Role("PENGAWAS", "ADMIN"), hdl.Validasi)
}
