package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"filmledger/internal/api/middleware"
	"filmledger/internal/models"
	"filmledger/internal/services"
)

// AdminController manages user role sets. Every route requires the
// ADMIN role; the service enforces it as well.
type AdminController struct {
	users *services.UserService
}

func NewAdminController(users *services.UserService) *AdminController {
	return &AdminController{users: users}
}

type SetRolesRequest struct {
	Roles []string `json:"roles" validate:"required,min=1,dive,role_name"`
}

// ListUsers returns every account with its roles.
// @Summary List users
// @Tags admin
// @Produce json
// @Success 200 {array} models.User
// @Failure 403 {object} map[string]string
// @Router /api/v1/admin/users [get]
func (ac *AdminController) ListUsers(c echo.Context) error {
	principal := middleware.GetPrincipal(c)
	users, err := ac.users.List(c.Request().Context(), principal)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// SetRoles replaces a user's role set.
// @Summary Set a user's roles
// @Tags admin
// @Accept json
// @Produce json
// @Param username path string true "Username"
// @Param request body SetRolesRequest true "Role set"
// @Success 200 {object} models.User
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/admin/users/{username}/roles [put]
func (ac *AdminController) SetRoles(c echo.Context) error {
	var req SetRolesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body: "+err.Error())
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	names := make([]models.RoleName, 0, len(req.Roles))
	for _, r := range req.Roles {
		names = append(names, models.RoleName(r))
	}

	principal := middleware.GetPrincipal(c)
	user, err := ac.users.SetRoles(c.Request().Context(), principal, c.Param("username"), names)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}
