package tasks

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
	"gorm.io/gorm"

	"filmledger/internal/config"
	"filmledger/internal/models"
	"filmledger/internal/services"
	"filmledger/internal/tasks/rate"
	"filmledger/internal/utils/logger"
)

// ObjectStore is the slice of the S3 service the sweeps need.
type ObjectStore interface {
	ListKeys(ctx context.Context) ([]string, error)
	DeleteFile(ctx context.Context, path string) error
}

// TaskHandler runs the periodic maintenance jobs and records each run
// as a TaskRun row.
type TaskHandler struct {
	db           *gorm.DB
	stores       services.Stores
	calculations *services.CalculationService
	storage      ObjectStore
	limiter      *rate.QueueRateLimiter
	cfg          *config.Config
	logger       *logger.Logger
}

func NewTaskHandler(db *gorm.DB, stores services.Stores, storage ObjectStore, limiter *rate.QueueRateLimiter, cfg *config.Config) *TaskHandler {
	return &TaskHandler{
		db:           db,
		stores:       stores,
		calculations: services.NewCalculationService(stores),
		storage:      storage,
		limiter:      limiter,
		cfg:          cfg,
		logger:       logger.New("task-handler"),
	}
}

func (h *TaskHandler) beginRun(taskType string) *models.TaskRun {
	run := &models.TaskRun{
		TaskType: taskType,
		Status:   models.JobStatusProcessing,
	}
	if err := h.db.Create(run).Error; err != nil {
		h.logger.Warn("failed to record task run: %v", err)
	}
	return run
}

func (h *TaskHandler) finishRun(run *models.TaskRun, report interface{}, runErr error) {
	if runErr != nil {
		run.Status = models.JobStatusFailed
		run.Error = runErr.Error()
	} else {
		run.Status = models.JobStatusCompleted
	}
	if report != nil {
		if data, err := json.Marshal(report); err == nil {
			run.Report = data
		}
	}
	if err := h.db.Save(run).Error; err != nil {
		h.logger.Warn("failed to update task run: %v", err)
	}
}

type orphanSweepReport struct {
	Scanned    int `json:"scanned"`
	Referenced int `json:"referenced"`
	Deleted    int `json:"deleted"`
	Throttled  int `json:"throttled"`
}

// HandleOrphanSweep removes stored objects no movie poster or actor
// photo references any more.
func (h *TaskHandler) HandleOrphanSweep(ctx context.Context, _ *asynq.Task) error {
	run := h.beginRun(TaskTypeOrphanSweep)

	if h.storage == nil {
		h.finishRun(run, orphanSweepReport{}, nil)
		return nil
	}

	report := orphanSweepReport{}
	err := func() error {
		keys, err := h.storage.ListKeys(ctx)
		if err != nil {
			return err
		}
		report.Scanned = len(keys)

		moviePaths, err := h.stores.Movies().ListImagePaths(ctx)
		if err != nil {
			return err
		}
		photoPaths, err := h.stores.Actors().ListPhotoPaths(ctx)
		if err != nil {
			return err
		}

		referenced := make(map[string]struct{}, len(moviePaths)+len(photoPaths))
		for _, p := range moviePaths {
			referenced[p] = struct{}{}
		}
		for _, p := range photoPaths {
			referenced[p] = struct{}{}
		}
		report.Referenced = len(referenced)

		for _, key := range keys {
			if _, ok := referenced[key]; ok {
				continue
			}
			if h.limiter != nil {
				allowed, err := h.limiter.Allow(ctx, TaskTypeOrphanSweep)
				if err != nil {
					return err
				}
				if !allowed {
					// Over budget for this window, the rest waits for
					// the next nightly run.
					report.Throttled++
					break
				}
			}
			if err := h.storage.DeleteFile(ctx, key); err != nil {
				h.logger.Warn("failed to delete orphaned object %s: %v", key, err)
				continue
			}
			report.Deleted++
		}
		return nil
	}()

	h.finishRun(run, report, err)
	if err != nil {
		return err
	}
	h.logger.Success("orphan sweep finished: scanned=%d deleted=%d", report.Scanned, report.Deleted)
	return nil
}

type retentionReport struct {
	MaxAgeDays int   `json:"maxAgeDays"`
	Deleted    int64 `json:"deleted"`
}

// HandleCalcLogRetention prunes calculation logs older than the
// configured maximum age. Disabled when the age is zero.
func (h *TaskHandler) HandleCalcLogRetention(ctx context.Context, _ *asynq.Task) error {
	run := h.beginRun(TaskTypeCalcLogRetention)

	maxAgeDays := h.cfg.Retention.CalculationLogMaxAgeDays
	report := retentionReport{MaxAgeDays: maxAgeDays}
	if maxAgeDays <= 0 {
		h.finishRun(run, report, nil)
		return nil
	}

	maxAge := time.Duration(maxAgeDays) * 24 * time.Hour
	deleted, err := h.calculations.Prune(ctx, maxAge)
	report.Deleted = deleted

	h.finishRun(run, report, err)
	if err != nil {
		return err
	}
	h.logger.Success("calculation log retention finished: deleted=%d", deleted)
	return nil
}
