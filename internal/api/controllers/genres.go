package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"filmledger/internal/services"
)

// GenreController serves the seeded genre list.
type GenreController struct {
	genres *services.GenreService
}

func NewGenreController(genres *services.GenreService) *GenreController {
	return &GenreController{genres: genres}
}

// List returns every genre.
// @Summary List genres
// @Tags genres
// @Produce json
// @Success 200 {array} models.Genre
// @Router /api/v1/genres [get]
func (gc *GenreController) List(c echo.Context) error {
	genres, err := gc.genres.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, genres)
}
