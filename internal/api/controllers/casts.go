package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"filmledger/internal/api/middleware"
	"filmledger/internal/services"
)

// CastController manages single cast rows from the movie side. Bulk
// reconciliation happens through actor updates.
type CastController struct {
	casts  *services.CastService
	movies *services.MovieService
}

func NewCastController(casts *services.CastService, movies *services.MovieService) *CastController {
	return &CastController{casts: casts, movies: movies}
}

type AddCastRequest struct {
	ActorID  string              `json:"actorId" validate:"required"`
	RoleName string              `json:"roleName" validate:"required"`
	Salary   decimal.NullDecimal `json:"salary"`
}

type UpdateCastRequest struct {
	RoleName string              `json:"roleName"`
	Salary   decimal.NullDecimal `json:"salary"`
}

// List returns the cast of one movie.
// @Summary List a movie's cast
// @Tags cast
// @Produce json
// @Param id path string true "Movie ID"
// @Success 200 {array} services.CastMemberView
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/movies/{id}/cast [get]
func (cc *CastController) List(c echo.Context) error {
	principal := middleware.GetPrincipal(c)
	cast, err := cc.casts.CastByMovieForView(c.Request().Context(), principal, cc.movies, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cast)
}

// Add casts an actor in the movie.
// @Summary Add a cast member
// @Tags cast
// @Accept json
// @Produce json
// @Param id path string true "Movie ID"
// @Param request body AddCastRequest true "Cast member"
// @Success 201 {object} models.MovieCast
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /api/v1/movies/{id}/cast [post]
func (cc *CastController) Add(c echo.Context) error {
	var req AddCastRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body: "+err.Error())
	}
	if err := c.Validate(req); err != nil {
		return err
	}
	principal := middleware.GetPrincipal(c)
	cast, err := cc.casts.AddCast(c.Request().Context(), principal, c.Param("id"), req.ActorID, req.RoleName, req.Salary)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, cast)
}

// Update edits one cast row's role name or salary.
// @Summary Update a cast member
// @Tags cast
// @Accept json
// @Produce json
// @Param id path string true "Movie ID"
// @Param castId path string true "Cast ID"
// @Param request body UpdateCastRequest true "Changes"
// @Success 200 {object} models.MovieCast
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/movies/{id}/cast/{castId} [put]
func (cc *CastController) Update(c echo.Context) error {
	var req UpdateCastRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body: "+err.Error())
	}
	principal := middleware.GetPrincipal(c)
	cast, err := cc.casts.UpdateCast(c.Request().Context(), principal, c.Param("id"), c.Param("castId"), req.RoleName, req.Salary)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cast)
}

// Delete removes one cast row.
// @Summary Remove a cast member
// @Tags cast
// @Param id path string true "Movie ID"
// @Param castId path string true "Cast ID"
// @Success 204
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/movies/{id}/cast/{castId} [delete]
func (cc *CastController) Delete(c echo.Context) error {
	principal := middleware.GetPrincipal(c)
	if err := cc.casts.DeleteCast(c.Request().Context(), principal, c.Param("id"), c.Param("castId")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
