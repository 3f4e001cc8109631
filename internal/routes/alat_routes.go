package routes

import (
	"fieldops-backend/internal/handler"
	"fieldops-backend/internal/middleware"
	"fieldops-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupAlatRoutes(app *fiber.App, db *gorm.DB) {
	alatRepo := repository.NewAlatRepository(db)
	penugasanRepo := repository.NewPenugasanRepository(db)
	hdl := handler.NewAlatHandler(alatRepo, penugasanRepo)

	api := app.Group("/api", middleware.Auth)

	api.Post("/alat", middleware.Role("ADMIN"), hdl.Create)
	api.Get("/alat", hdl.GetAll)
	api.Put("/alat/:id", middleware.Role("ADMIN"), hdl.Update)
	api.Delete("/alat/:id", middleware.Role("ADMIN"), hdl.Delete)

	api.Post("/penugasan/:id/alat", middleware.Role("PENGAWAS", "ADMIN"), hdl.PinjamAlat)
	api.Get("/penugasan/:id/alat", hdl.GetPeminjaman)
}
