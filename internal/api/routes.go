package api

import (
	"net/http"

	"filmledger/internal/api/controllers"
	"filmledger/internal/api/middleware"
	"filmledger/internal/routes"

	_ "filmledger/docs/swagger"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

func (s *Server) registerRoutes() {
	s.echo.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "FilmLedger API")
	})
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/swagger/*", echoSwagger.WrapHandler)

	// API v1 group
	api := s.echo.Group("/api/v1")
	auth := middleware.NewAuthMiddleware(s.config.JWT.Secret)
	api.Use(auth.Middleware())

	movieController := controllers.NewMovieController(s.movies, s.casts)
	actorController := controllers.NewActorController(s.actors, s.casts)
	castController := controllers.NewCastController(s.casts, s.movies)
	calculationController := controllers.NewCalculationController(s.calculations, s.movies)
	genreController := controllers.NewGenreController(s.genres)
	adminController := controllers.NewAdminController(s.users)

	movies := api.Group("/movies")
	movies.GET("", movieController.List)
	movies.POST("", movieController.Create)
	movies.GET("/:id", movieController.Get)
	movies.PUT("/:id", movieController.Update)
	movies.DELETE("/:id", movieController.Delete)

	movies.GET("/:id/cast", castController.List)
	movies.POST("/:id/cast", castController.Add)
	movies.PUT("/:id/cast/:castId", castController.Update)
	movies.DELETE("/:id/cast/:castId", castController.Delete)

	movies.POST("/:id/calculations", calculationController.Submit)
	movies.GET("/:id/calculations", calculationController.Logs)
	movies.DELETE("/:id/calculations", calculationController.Clear)

	actors := api.Group("/actors")
	actors.GET("", actorController.List)
	actors.POST("", actorController.Create)
	actors.GET("/:id", actorController.Get)
	actors.PUT("/:id", actorController.Update)
	actors.DELETE("/:id", actorController.Delete)
	actors.GET("/:id/credits", actorController.Credits)
	actors.GET("/:id/photos", actorController.Photos)
	actors.DELETE("/:id/photos/:photoId", actorController.DeletePhoto)

	api.GET("/genres", genreController.List)

	adminGroup := api.Group("/admin")
	adminGroup.GET("/users", adminController.ListUsers)
	adminGroup.PUT("/users/:username/roles", adminController.SetRoles)

	routes.SetupUploadRoutes(api, s.movies, s.actors, s.config)
}
