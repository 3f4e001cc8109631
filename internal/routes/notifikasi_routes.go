package routes

import (
	"fieldops-backend/internal/handler"
	"fieldops-backend/internal/middleware"
	"fieldops-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupNotifikasiRoutes(app *fiber.App, db *gorm.DB) {
	notifikasiRepo := repository.NewNotifikasiRepository(db)
	hdl := handler.NewNotifikasiHandler(notifikasiRepo)

	api := app.Group("/api", middleware.Auth)

	api.Get("/notifikasi", hdl.GetAll)
	api.Patch("/notifikasi/:id/dibaca", hdl.TandaiDibaca)
	api.Get("/notifikasi/belum-dibaca", hdl.CountBelumDibaca)

	api.Get("/log-aktivitas", middleware.Role("ADMIN"), hdl.GetLogs)
}
