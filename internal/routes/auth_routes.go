package routes

import (
	"github.com/labstack/echo/v4"

	"filmledger/internal/api/middleware"
	"filmledger/internal/config"
	"filmledger/internal/handlers"
	"filmledger/internal/services"
)

func SetupAuthRoutes(e *echo.Echo, users *services.UserService, cfg *config.Config) {
	authHandler := handlers.NewAuthHandler(users, cfg)

	base := e.Group("/api/v1")
	auth := base.Group("/auth")

	// Public routes (no auth required)
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// Protected: identity of the current token
	protected := auth.Group("")
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)
	protected.Use(authMiddleware.Middleware())
	protected.GET("/me", authHandler.Me)
}
