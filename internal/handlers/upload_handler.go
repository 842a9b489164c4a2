package handlers

import (
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"filmledger/internal/api/middleware"
	"filmledger/internal/apperrors"
	"filmledger/internal/services"
	"filmledger/internal/utils/logger"
)

// UploadHandler stores movie posters and actor photos. Only image
// uploads are accepted.
type UploadHandler struct {
	movies   *services.MovieService
	actors   *services.ActorService
	maxBytes int64
	log      *logger.Logger
}

func NewUploadHandler(movies *services.MovieService, actors *services.ActorService, maxBytes int64) *UploadHandler {
	return &UploadHandler{
		movies:   movies,
		actors:   actors,
		maxBytes: maxBytes,
		log:      logger.New("upload-handler"),
	}
}

// readImage pulls the uploaded file out of the multipart form and checks
// type and size before anything touches storage.
func (h *UploadHandler) readImage(c echo.Context) ([]byte, string, string, error) {
	contentType := c.Request().Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "multipart/form-data") {
		return nil, "", "", apperrors.Upload("Content-Type must be multipart/form-data")
	}

	file, err := c.FormFile("file")
	if err != nil {
		return nil, "", "", apperrors.Upload("No file provided")
	}
	fileType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(fileType, "image/") {
		return nil, "", "", apperrors.Upload("Only image uploads are allowed")
	}
	if file.Size > h.maxBytes {
		return nil, "", "", apperrors.Upload("File exceeds the %d MB limit", h.maxBytes/(1024*1024))
	}

	src, err := file.Open()
	if err != nil {
		return nil, "", "", h.log.Error("failed to open uploaded file", err)
	}
	defer src.Close()

	content, err := io.ReadAll(io.LimitReader(src, h.maxBytes+1))
	if err != nil {
		return nil, "", "", h.log.Error("failed to read uploaded file", err)
	}
	if int64(len(content)) > h.maxBytes {
		return nil, "", "", apperrors.Upload("File exceeds the %d MB limit", h.maxBytes/(1024*1024))
	}
	return content, file.Filename, fileType, nil
}

// UploadMovieImage replaces a movie's poster.
// @Summary Upload a movie poster
// @Tags movies
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Movie ID"
// @Param file formData file true "Image file"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/movies/{id}/image [post]
func (h *UploadHandler) UploadMovieImage(c echo.Context) error {
	storage := GetStorageHandler()
	if storage == nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Storage handler not configured")
	}

	content, filename, fileType, err := h.readImage(c)
	if err != nil {
		return err
	}

	key, err := storage.UploadFile(c.Request().Context(), content, filename, fileType)
	if err != nil {
		return apperrors.Upload("Failed to store file")
	}

	principal := middleware.GetPrincipal(c)
	movie, err := h.movies.SetImagePath(c.Request().Context(), c.Param("id"), key, principal)
	if err != nil {
		// The row rejected the upload, drop the stored object again.
		if delErr := storage.DeleteFile(c.Request().Context(), key); delErr != nil {
			h.log.Warn("failed to remove rejected upload %s: %v", key, delErr)
		}
		return err
	}

	h.log.Success("poster uploaded for movie %s: %s", movie.ID, key)
	return c.JSON(http.StatusOK, map[string]interface{}{
		"imagePath": movie.ImagePath,
		"imageUrl":  movie.ImageURL,
	})
}

// UploadActorPhoto attaches a photo to an actor.
// @Summary Upload an actor photo
// @Tags actors
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Actor ID"
// @Param file formData file true "Image file"
// @Success 201 {object} models.ActorPhoto
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/actors/{id}/photos [post]
func (h *UploadHandler) UploadActorPhoto(c echo.Context) error {
	storage := GetStorageHandler()
	if storage == nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Storage handler not configured")
	}

	content, filename, fileType, err := h.readImage(c)
	if err != nil {
		return err
	}

	key, err := storage.UploadFile(c.Request().Context(), content, filename, fileType)
	if err != nil {
		return apperrors.Upload("Failed to store file")
	}

	principal := middleware.GetPrincipal(c)
	photo, err := h.actors.AddPhoto(c.Request().Context(), principal, c.Param("id"), key)
	if err != nil {
		if delErr := storage.DeleteFile(c.Request().Context(), key); delErr != nil {
			h.log.Warn("failed to remove rejected upload %s: %v", key, delErr)
		}
		return err
	}

	return c.JSON(http.StatusCreated, photo)
}
