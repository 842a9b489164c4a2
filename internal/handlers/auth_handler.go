package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"filmledger/internal/api/middleware"
	"filmledger/internal/config"
	"filmledger/internal/services"
	"filmledger/internal/utils"
	"filmledger/internal/utils/logger"
)

type AuthHandler struct {
	users *services.UserService
	cfg   *config.Config
	log   *logger.Logger
}

func NewAuthHandler(users *services.UserService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{users: users, cfg: cfg, log: logger.New("auth-handler")}
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Register creates a new account. New accounts start with the read-only
// role only.
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body services.RegisterInput true "Registration details"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req services.RegisterInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	user, err := h.users.Register(c.Request().Context(), &req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"username": user.Username,
		"roles":    user.Principal().Roles(),
	})
}

// Login checks credentials and issues a JWT.
// @Summary Log in
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} map[string]string
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	user, err := h.users.Authenticate(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}
	token, err := utils.GenerateJWT(user, h.cfg.JWT.Secret)
	if err != nil {
		return h.log.Error("failed to sign token", err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"token":    token,
		"username": user.Username,
		"roles":    user.Principal().Roles(),
	})
}

// Me returns the authenticated identity and its roles.
// @Summary Current user
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	principal := middleware.GetPrincipal(c)
	return c.JSON(http.StatusOK, map[string]interface{}{
		"username": principal.Username,
		"roles":    principal.Roles(),
	})
}
