package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"filmledger/internal/api/middleware"
	"filmledger/internal/services"
)

// CalculationController runs financial projections and manages their
// audit trail.
type CalculationController struct {
	calculations *services.CalculationService
	movies       *services.MovieService
}

func NewCalculationController(calculations *services.CalculationService, movies *services.MovieService) *CalculationController {
	return &CalculationController{calculations: calculations, movies: movies}
}

// Submit projects profitability for a movie and appends a log entry.
// @Summary Run a financial projection
// @Tags calculations
// @Accept json
// @Produce json
// @Param id path string true "Movie ID"
// @Param request body services.CalculationInput true "Assumptions"
// @Success 201 {object} models.CalculationLog
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/movies/{id}/calculations [post]
func (cc *CalculationController) Submit(c echo.Context) error {
	var input services.CalculationInput
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body: "+err.Error())
	}
	principal := middleware.GetPrincipal(c)
	entry, err := cc.calculations.Submit(c.Request().Context(), principal, cc.movies, c.Param("id"), &input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, entry)
}

// Logs lists the movie's projection history, newest first.
// @Summary List calculation logs
// @Tags calculations
// @Produce json
// @Param id path string true "Movie ID"
// @Success 200 {array} models.CalculationLog
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/movies/{id}/calculations [get]
func (cc *CalculationController) Logs(c echo.Context) error {
	principal := middleware.GetPrincipal(c)
	logs, err := cc.calculations.GetLogs(c.Request().Context(), principal, cc.movies, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, logs)
}

// Clear deletes the movie's projection history within the caller's scope.
// @Summary Clear calculation logs
// @Tags calculations
// @Param id path string true "Movie ID"
// @Success 204
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/movies/{id}/calculations [delete]
func (cc *CalculationController) Clear(c echo.Context) error {
	principal := middleware.GetPrincipal(c)
	if err := cc.calculations.ClearLogs(c.Request().Context(), principal, cc.movies, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
