package routes

import (
	"fieldops-backend/internal/handler"
	"fieldops-backend/internal/middleware"
	"fieldops-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupDashboardRoutes(app *fiber.App, db *gorm.DB) {
	dashboardRepo := repository.NewDashboardRepository(db)
	hdl := handler.NewDashboardHandler(dashboardRepo)

	api := app.Group("/api/dashboard", middleware.Auth)

	api.Get("/", hdl.GetRingkasan)
}
