package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"filmledger/docs/swagger"
	"filmledger/internal/api"
	"filmledger/internal/config"
	"filmledger/internal/db"
	"filmledger/internal/events"
	"filmledger/internal/handlers"
	"filmledger/internal/models"
	"filmledger/internal/repositories"
	"filmledger/internal/services"
	"filmledger/internal/tasks"
	"filmledger/internal/tasks/rate"
	"filmledger/internal/utils/logger"

	"github.com/joho/godotenv"
)

// @title FilmLedger API
// @version 1.0
// @description Role-scoped movie and actor catalog with cast reconciliation and financial projections
// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {

	logger := logger.New("filmledger")

	// check if .env file exists
	if _, err := os.Stat(".env"); os.IsNotExist(err) {
		logger.Info("No .env file found, skipping environment variable loading")
	} else {
		logger.Info("Loading environment variables from .env file")
		if err := godotenv.Load(); err != nil {
			log.Fatalf("Failed to load environment variables: %v", err)
		}
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	if err := db.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Fatalf("Failed to close database connection: %v", err)
		}
	}()

	dbInstance := db.GetDB()

	// Initialize S3 service. Optional: without a bucket the catalog
	// runs, uploads are rejected, no cleanup happens.
	var s3Service *services.S3Service
	if cfg.S3.BucketName != "" {
		s3Service, err = services.NewS3Service(
			cfg.S3.BucketName,
			cfg.S3.Endpoint,
			cfg.S3.Region,
			cfg.S3.AccessKey,
			cfg.S3.SecretKey,
		)
		if err != nil {
			log.Fatalf("Failed to initialize S3 service: %v", err)
		}

		// Register the URL generator
		models.RegisterFileURLGenerator(s3Service)
		handlers.RegisterStorageHandler(s3Service)
	} else {
		logger.Warn("S3_BUCKET_NAME is not set, uploads are disabled")
	}

	// Initialize task plumbing
	taskClient := tasks.NewTaskClient(
		cfg.Redis.Addr,
		cfg.Redis.Username,
		cfg.Redis.Password,
		cfg.Redis.DB,
	)
	defer func() {
		if err := taskClient.Close(); err != nil {
			logger.Warn("Failed to close task client: %v", err)
		}
	}()

	// Deleted movies and photos may leave orphaned objects in storage;
	// nudge the sweeper instead of waiting for the nightly run.
	if s3Service != nil {
		sweepOnDelete := func(interface{}) {
			if err := taskClient.EnqueueOrphanSweep(); err != nil {
				logger.Warn("Failed to enqueue orphan sweep: %v", err)
			}
		}
		events.On("movie.deleted", sweepOnDelete)
		events.On("actor_photo.deleted", sweepOnDelete)
	}

	sweepLimiter := rate.NewQueueRateLimiter(taskClient.Redis(), rate.QueueConfig{
		Name: tasks.TaskTypeOrphanSweep,
		RateLimit: rate.RateLimit{
			Window:  time.Minute,
			MaxJobs: 100,
		},
	})

	var objectStore tasks.ObjectStore
	if s3Service != nil {
		objectStore = s3Service
	}
	taskHandler := tasks.NewTaskHandler(
		dbInstance,
		repositories.New(dbInstance),
		objectStore,
		sweepLimiter,
		cfg,
	)

	// Initialize task server
	taskServer := tasks.NewServer(
		cfg.Redis.Addr,
		cfg.Redis.Username,
		cfg.Redis.Password,
		cfg.Redis.DB,
		cfg.Worker.Concurrency,
		taskHandler,
		logger,
	)

	// Create a context for task server
	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	// Start task server
	go func() {
		if err := taskServer.Start(serverCtx); err != nil {
			logger.Error("Task server error", err)
		}
	}()

	// Initialize task scheduler
	taskScheduler := tasks.NewScheduler(
		cfg.Redis.Addr,
		cfg.Redis.Username,
		cfg.Redis.Password,
		cfg.Redis.DB,
		logger,
	)

	// Start task scheduler
	go func() {
		if err := taskScheduler.Start(); err != nil {
			logger.Error("Task scheduler error", err)
		}
	}()

	// Seed the first maintenance pass so a fresh deployment does not
	// wait on the scheduler's registration cycle.
	if err := taskClient.EnqueueAtNext(tasks.TaskTypeOrphanSweep, tasks.ScheduleOrphanSweep); err != nil {
		logger.Warn("Failed to enqueue orphan sweep: %v", err)
	}
	if err := taskClient.EnqueueAtNext(tasks.TaskTypeCalcLogRetention, tasks.ScheduleCalcLogRetention); err != nil {
		logger.Warn("Failed to enqueue calculation log retention: %v", err)
	}

	// Initialize API server
	apiServer := api.NewServer(cfg, dbInstance, s3Service)
	if apiServer == nil {
		log.Fatalf("Failed to initialize API server")
	}
	go func() {
		logger.Success("API server starting on %s:%d", cfg.Server.Host, cfg.Server.Port)

		// Swagger documentation
		swagger.SwaggerInfo.Title = "FilmLedger API Documentation"
		swagger.SwaggerInfo.Description = "Role-scoped movie and actor catalog with financial projections"
		swagger.SwaggerInfo.Version = "1.0"
		swagger.SwaggerInfo.Host = cfg.Server.PublicURL
		swagger.SwaggerInfo.Schemes = []string{"http", "https"}

		if err := apiServer.Start(); err != nil {
			logger.Error("API server error", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the servers
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	// Create a deadline for graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Stop task scheduler
	taskScheduler.Stop()

	// Stop task server
	serverCancel()
	taskServer.Shutdown()

	// Shutdown API server
	if err := apiServer.Shutdown(ctx); err != nil {
		logger.Error("Failed to shutdown API server", err)
	}

	logger.Info("Servers shutdown gracefully")
}
