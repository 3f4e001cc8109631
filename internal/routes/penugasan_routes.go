package routes

import (
	"fieldops-backend/internal/handler"
	"fieldops-backend/internal/middleware"
	"fieldops-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupPenugasanRoutes(app *fiber.App, db *gorm.DB) {
	penugasanRepo := repository.NewPenugasanRepository(db)
	userRepo := repository.NewUserRepository(db)
	hdl := handler.NewPenugasanHandler(penugasanRepo, userRepo)

	api := app.Group("/api/penugasan", middleware.Auth)

	api.Post("/", middleware.Role("PENGAWAS", "ADMIN"), hdl.Create)
	api.Get("/", hdl.GetAll)
	api.Get("/:id", hdl.GetDetail)
	api.Patch("/:id/status", middleware.Role("PENGAWAS", "ADMIN"), hdl.UpdateStatus)
	api.Post("/:id/teknisi", middleware.Role("PENGAWAS", "ADMIN"), hdl.AddTeknisi)
	api.Delete("/:id/teknisi/:teknisi_id", middleware.Role("PENGAWAS", "ADMIN"), hdl.RemoveTeknisi)
	api.Delete("/:id", middleware.Role("PENGAWAS", "ADMIN"), hdl.Delete)
}
