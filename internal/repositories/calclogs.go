package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"filmledger/internal/models"
)

type calculationLogRepository struct {
	db *gorm.DB
}

func (r *calculationLogRepository) Create(ctx context.Context, log *models.CalculationLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *calculationLogRepository) ListByMovie(ctx context.Context, movieID string) ([]models.CalculationLog, error) {
	var logs []models.CalculationLog
	err := r.db.WithContext(ctx).
		Where("movieid = ?", movieID).
		Order("created_at DESC").
		Find(&logs).Error
	return logs, err
}

func (r *calculationLogRepository) ListByMovieAndCreator(ctx context.Context, movieID, username string) ([]models.CalculationLog, error) {
	var logs []models.CalculationLog
	err := r.db.WithContext(ctx).
		Where("movieid = ? AND createdby = ?", movieID, username).
		Order("created_at DESC").
		Find(&logs).Error
	return logs, err
}

func (r *calculationLogRepository) DeleteByMovie(ctx context.Context, movieID string) error {
	return r.db.WithContext(ctx).Where("movieid = ?", movieID).Delete(&models.CalculationLog{}).Error
}

func (r *calculationLogRepository) DeleteByMovieAndCreator(ctx context.Context, movieID, username string) error {
	return r.db.WithContext(ctx).
		Where("movieid = ? AND createdby = ?", movieID, username).
		Delete(&models.CalculationLog{}).Error
}

func (r *calculationLogRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(&models.CalculationLog{})
	return res.RowsAffected, res.Error
}
