package routes

import (
	"fieldops-backend/internal/handler"
	"fieldops-backend/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupUploadRoutes(app *fiber.App, db *gorm.DB) {
	hdl := handler.NewUploadHandler()

	api := app.Group("/api/upload", middleware.Auth)

	api.Post("/", hdl.UploadFoto)
}
