package routes

import (
	"fieldops-backend/internal/handler"
	"fieldops-backend/internal/middleware"
	"fieldops-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupAuthRoutes(app *fiber.App, db *gorm.DB) {
	userRepo := repository.NewUserRepository(db)
	hdl := handler.NewAuthHandler(userRepo)

	api := app.Group("/api/auth")

	api.Post("/login", hdl.Login)
	api.Post("/register", middleware.Auth, middleware.Role("ADMIN"), hdl.Register)
	api.Get("/profile", middleware.Auth, hdl.GetProfile)
	api.Put("/profile", middleware.Auth, hdl.UpdateProfile)
	api.Put("/password", middleware.Auth, hdl.ChangePassword)
}
