package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"filmledger/internal/models"
	"filmledger/internal/utils"
	"filmledger/internal/utils/logger"
)

var log = logger.New("auth-middleware")

const principalKey = "principal"

type AuthMiddleware struct {
	jwtSecret string
}

func NewAuthMiddleware(jwtSecret string) *AuthMiddleware {
	return &AuthMiddleware{jwtSecret: jwtSecret}
}

// Middleware authenticates the Bearer token and stores the resulting
// Principal on the request context.
func (m *AuthMiddleware) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing authorization header")
			}

			tokenParts := strings.Split(authHeader, " ")
			if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid authorization header format")
			}

			claims, err := utils.ParseJWT(tokenParts[1], m.jwtSecret)
			if err != nil {
				log.Warn("rejected token: %v", err)
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
			}

			c.Set(principalKey, claims.Principal())
			return next(c)
		}
	}
}

// GetPrincipal returns the authenticated principal, or a zero-value
// anonymous one when the route skipped authentication.
func GetPrincipal(c echo.Context) models.Principal {
	if p, ok := c.Get(principalKey).(models.Principal); ok {
		return p
	}
	return models.NewPrincipal("")
}
