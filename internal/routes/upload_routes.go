package routes

import (
	"github.com/labstack/echo/v4"

	"filmledger/internal/config"
	"filmledger/internal/handlers"
	"filmledger/internal/services"
	"filmledger/internal/utils/logger"
)

func SetupUploadRoutes(api *echo.Group, movies *services.MovieService, actors *services.ActorService, cfg *config.Config) {
	log := logger.New("upload-routes")

	uploadHandler := handlers.NewUploadHandler(movies, actors, cfg.Upload.MaxImageBytes)

	api.POST("/movies/:id/image", uploadHandler.UploadMovieImage)
	api.POST("/actors/:id/photos", uploadHandler.UploadActorPhoto)

	log.Success("Upload routes initialized")
}
