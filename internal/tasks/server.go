package tasks

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"

	"filmledger/internal/utils/logger"
)

// Server handles task processing
type Server struct {
	server      *asynq.Server
	handler     *TaskHandler
	concurrency int
	logger      *logger.Logger
}

// NewServer creates a new task processing server
func NewServer(redisAddr, username, password string, db, concurrency int, handler *TaskHandler, logger *logger.Logger) *Server {
	server := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     redisAddr,
			Username: username,
			Password: password,
			DB:       db,
		},
		asynq.Config{
			Concurrency: concurrency,
			Queues: map[string]int{
				QueueDefault: 3,
				QueueLow:     1,
			},
			StrictPriority: true,
		},
	)

	return &Server{
		server:      server,
		handler:     handler,
		concurrency: concurrency,
		logger:      logger,
	}
}

// Start starts the task processing server
func (s *Server) Start(ctx context.Context) error {
	mux := asynq.NewServeMux()

	mux.HandleFunc(TaskTypeOrphanSweep, s.handler.HandleOrphanSweep)
	mux.HandleFunc(TaskTypeCalcLogRetention, s.handler.HandleCalcLogRetention)

	s.logger.Info("starting task processing server concurrency %d", s.concurrency)

	if err := s.server.Start(mux); err != nil {
		return fmt.Errorf("failed to start task server: %w", err)
	}

	return nil
}

// Stop stops the task processing server
func (s *Server) Stop() {
	s.server.Stop()
	s.logger.Info("task processing server stopped")
}

// Shutdown gracefully shuts down the task processing server
func (s *Server) Shutdown() {
	s.logger.Info("shutting down task processing server")
	s.server.Shutdown()
}
