package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-advanced-admin/admin"
	admingorm "github.com/go-advanced-admin/orm-gorm"
	adminecho "github.com/go-advanced-admin/web-echo"
	"golang.org/x/time/rate"

	"filmledger/internal/api/validator"
	"filmledger/internal/apperrors"
	"filmledger/internal/config"
	"filmledger/internal/models"
	"filmledger/internal/repositories"
	"filmledger/internal/routes"
	"filmledger/internal/services"

	console "filmledger/internal/utils/logger"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"
)

type Server struct {
	echo   *echo.Echo
	config *config.Config
	db     *gorm.DB

	movies       *services.MovieService
	actors       *services.ActorService
	casts        *services.CastService
	genres       *services.GenreService
	calculations *services.CalculationService
	users        *services.UserService
}

var log = console.New("API-Server")

// NewServer @title FilmLedger API
// @version 1.0
// @description Role-scoped movie and actor catalog with financial projections.
// @host localhost:8080
// @BasePath /api/v1
func NewServer(cfg *config.Config, db *gorm.DB, storage *services.S3Service) *Server {
	e := echo.New()

	e.Validator = validator.NewValidator()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPut, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, echo.HeaderContentLength},
	}))
	e.Use(middleware.RequestID())
	e.Use(middleware.Secure())
	e.Use(middleware.TimeoutWithConfig(middleware.TimeoutConfig{
		Timeout: 30 * time.Second,
	}))
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Level: 5,
	}))
	e.Use(middleware.BodyLimit("60M"))

	e.HTTPErrorHandler = customHTTPErrorHandler

	// A typed-nil interface would defeat the nil checks in the services.
	var remover services.ObjectRemover
	if storage != nil {
		remover = storage
	}

	stores := repositories.New(db)
	s := &Server{
		echo:         e,
		config:       cfg,
		db:           db,
		movies:       services.NewMovieService(stores, remover),
		actors:       services.NewActorService(stores, remover),
		casts:        services.NewCastService(stores),
		genres:       services.NewGenreService(stores),
		calculations: services.NewCalculationService(stores),
		users:        services.NewUserService(stores),
	}

	if err := models.SeedRoles(db); err != nil {
		log.Warn("Warning: Failed to seed roles: %v", err)
	}
	if err := models.SeedGenres(db); err != nil {
		log.Warn("Warning: Failed to seed genres: %v", err)
	}
	if err := models.CreateAdminFromEnv(db); err != nil {
		log.Warn("Warning: Failed to create admin account: %v", err)
	}

	e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(rate.Limit(20))))

	gormIntegrator := admingorm.NewIntegrator(db)
	echoIntegrator := adminecho.NewIntegrator(e.Group(""))

	permissionChecker := func(
		request admin.PermissionRequest, ctx interface{},
	) (bool, error) {
		return true, nil
	}

	adminPanel, err := admin.NewPanel(
		gormIntegrator, echoIntegrator, permissionChecker, nil,
	)
	if err != nil {
		log.Error("Failed to create admin panel", err)
		return nil
	}

	_, err = adminPanel.RegisterApp(
		"FilmLedger",
		"FilmLedger Admin Panel",
		nil,
	)
	if err != nil {
		log.Error("Failed to register admin panel app", err)
		return nil
	}

	routes.SetupAuthRoutes(s.echo, s.users, s.config)

	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	return s.echo.Start(fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port))
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Health check endpoint
func (s *Server) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  "healthy",
		"version": "1.0.0",
		"time":    time.Now().Format(time.RFC3339),
	})
}

// statusForDomainError maps the domain error taxonomy to HTTP codes.
func statusForDomainError(err *apperrors.Error) int {
	switch err.Kind {
	case apperrors.KindNotFound:
		return http.StatusNotFound
	case apperrors.KindPermissionDenied:
		return http.StatusForbidden
	case apperrors.KindValidationFailed, apperrors.KindUploadError:
		return http.StatusBadRequest
	case apperrors.KindConflict:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// Custom HTTP error handler
func customHTTPErrorHandler(err error, c echo.Context) {
	var (
		code    = http.StatusInternalServerError
		message interface{}
	)

	var domainErr *apperrors.Error
	switch e := err.(type) {
	case *echo.HTTPError:
		code = e.Code
		message = e.Message
	case validator.ValidationErrors:
		code = http.StatusBadRequest
		message = formatValidationErrors(e)
	default:
		if errors.As(err, &domainErr) {
			code = statusForDomainError(domainErr)
			message = domainErr.Message
		} else {
			message = http.StatusText(code)
		}
	}

	if !c.Response().Committed {
		if c.Request().Method == http.MethodHead {
			err = c.NoContent(code)
		} else {
			err = c.JSON(code, map[string]interface{}{
				"error": message,
				"code":  code,
				"time":  time.Now().Format(time.RFC3339),
			})
		}
		if err != nil {
			c.Echo().Logger.Error(err)
		}
	}
}

// formatValidationErrors formats validation errors into a map
func formatValidationErrors(errors validator.ValidationErrors) map[string]string {
	errMap := make(map[string]string)
	for _, err := range errors {
		field := err.Field()
		tag := err.Tag()
		param := err.Param()

		switch tag {
		case "required":
			errMap[field] = fmt.Sprintf("%s is required", field)
		case "min":
			errMap[field] = fmt.Sprintf("%s must be at least %s", field, param)
		case "max":
			errMap[field] = fmt.Sprintf("%s must be at most %s", field, param)
		case "uuid":
			errMap[field] = fmt.Sprintf("%s must be a valid UUID", field)
		case "role_name":
			errMap[field] = fmt.Sprintf("%s must be one of: ADMIN, USER, READ_ONLY", field)
		default:
			errMap[field] = fmt.Sprintf("%s failed validation: %s", field, tag)
		}
	}
	return errMap
}
