package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"filmledger/internal/api/middleware"
	"filmledger/internal/models"
	"filmledger/internal/services"
)

// MovieController exposes the ownership-scoped movie catalog.
type MovieController struct {
	movies *services.MovieService
	casts  *services.CastService
}

func NewMovieController(movies *services.MovieService, casts *services.CastService) *MovieController {
	return &MovieController{movies: movies, casts: casts}
}

// MovieListItem is one row of the movie list, carrying a lead credit so
// the list page can show a headline actor without loading whole casts.
type MovieListItem struct {
	models.Movie
	LeadCredit *services.CastMemberView `json:"leadCredit,omitempty"`
}

// List returns every movie visible to the caller.
// @Summary List movies
// @Tags movies
// @Produce json
// @Success 200 {array} controllers.MovieListItem
// @Router /api/v1/movies [get]
func (mc *MovieController) List(c echo.Context) error {
	principal := middleware.GetPrincipal(c)
	ctx := c.Request().Context()
	movies, err := mc.movies.List(ctx, principal)
	if err != nil {
		return err
	}

	ids := make([]string, 0, len(movies))
	for i := range movies {
		ids = append(ids, movies[i].ID)
	}
	leads, err := mc.casts.FirstCastByMovieIDs(ctx, ids)
	if err != nil {
		return err
	}

	items := make([]MovieListItem, 0, len(movies))
	for i := range movies {
		item := MovieListItem{Movie: movies[i]}
		if lead, ok := leads[movies[i].ID]; ok {
			item.LeadCredit = &lead
		}
		items = append(items, item)
	}
	return c.JSON(http.StatusOK, items)
}

// Get returns one movie.
// @Summary Get a movie
// @Tags movies
// @Produce json
// @Param id path string true "Movie ID"
// @Success 200 {object} models.Movie
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/movies/{id} [get]
func (mc *MovieController) Get(c echo.Context) error {
	principal := middleware.GetPrincipal(c)
	movie, err := mc.movies.GetForView(c.Request().Context(), c.Param("id"), principal)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, movie)
}

// Create stores a new movie owned by the caller.
// @Summary Create a movie
// @Tags movies
// @Accept json
// @Produce json
// @Param request body services.MovieInput true "Movie"
// @Success 201 {object} models.Movie
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /api/v1/movies [post]
func (mc *MovieController) Create(c echo.Context) error {
	var input services.MovieInput
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body: "+err.Error())
	}
	principal := middleware.GetPrincipal(c)
	movie, err := mc.movies.Save(c.Request().Context(), input, principal)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, movie)
}

// Update edits a movie the caller owns (or any movie, for admins).
// @Summary Update a movie
// @Tags movies
// @Accept json
// @Produce json
// @Param id path string true "Movie ID"
// @Param request body services.MovieInput true "Movie"
// @Success 200 {object} models.Movie
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/movies/{id} [put]
func (mc *MovieController) Update(c echo.Context) error {
	var input services.MovieInput
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body: "+err.Error())
	}
	principal := middleware.GetPrincipal(c)
	movie, err := mc.movies.Update(c.Request().Context(), c.Param("id"), input, principal)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, movie)
}

// Delete removes a movie and its cast rows.
// @Summary Delete a movie
// @Tags movies
// @Param id path string true "Movie ID"
// @Success 204
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/movies/{id} [delete]
func (mc *MovieController) Delete(c echo.Context) error {
	principal := middleware.GetPrincipal(c)
	if err := mc.movies.Delete(c.Request().Context(), c.Param("id"), principal); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
