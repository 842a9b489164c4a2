package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"filmledger/internal/apperrors"
	"filmledger/internal/models"
)

type castRepository struct {
	db *gorm.DB
}

func (r *castRepository) ListByActor(ctx context.Context, actorID string) ([]models.MovieCast, error) {
	var casts []models.MovieCast
	err := r.db.WithContext(ctx).Preload("Movie").
		Where("actor_id = ?", actorID).
		Order("id ASC").
		Find(&casts).Error
	return casts, err
}

func (r *castRepository) ListByMovie(ctx context.Context, movieID string) ([]models.MovieCast, error) {
	var casts []models.MovieCast
	err := r.db.WithContext(ctx).Preload("Actor").
		Where("movie_id = ?", movieID).
		Order("id ASC").
		Find(&casts).Error
	return casts, err
}

func (r *castRepository) ListByMovies(ctx context.Context, movieIDs []string) ([]models.MovieCast, error) {
	if len(movieIDs) == 0 {
		return nil, nil
	}
	var casts []models.MovieCast
	err := r.db.WithContext(ctx).Preload("Actor").
		Where("movie_id IN ?", movieIDs).
		Order("movie_id ASC, id ASC").
		Find(&casts).Error
	return casts, err
}

func (r *castRepository) FindByMovieAndActor(ctx context.Context, movieID, actorID string) (*models.MovieCast, error) {
	var cast models.MovieCast
	err := r.db.WithContext(ctx).
		Where("movie_id = ? AND actor_id = ?", movieID, actorID).
		First(&cast).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Absence is a normal outcome for reconciliation.
			return nil, nil
		}
		return nil, err
	}
	return &cast, nil
}

func (r *castRepository) FindByIDAndMovie(ctx context.Context, castID, movieID string) (*models.MovieCast, error) {
	var cast models.MovieCast
	err := r.db.WithContext(ctx).
		Where("id = ? AND movie_id = ?", castID, movieID).
		First(&cast).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Cast not found")
		}
		return nil, err
	}
	return &cast, nil
}

func (r *castRepository) Create(ctx context.Context, cast *models.MovieCast) error {
	return r.db.WithContext(ctx).Create(cast).Error
}

func (r *castRepository) Save(ctx context.Context, cast *models.MovieCast) error {
	return r.db.WithContext(ctx).Save(cast).Error
}

func (r *castRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.MovieCast{Base: models.Base{ID: id}}).Error
}

func (r *castRepository) DeleteByActor(ctx context.Context, actorID string) error {
	return r.db.WithContext(ctx).Where("actor_id = ?", actorID).Delete(&models.MovieCast{}).Error
}

func (r *castRepository) DeleteByMovie(ctx context.Context, movieID string) error {
	return r.db.WithContext(ctx).Where("movie_id = ?", movieID).Delete(&models.MovieCast{}).Error
}
