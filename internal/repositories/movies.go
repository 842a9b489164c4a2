package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"filmledger/internal/apperrors"
	"filmledger/internal/models"
)

type movieRepository struct {
	db *gorm.DB
}

func (r *movieRepository) List(ctx context.Context) ([]models.Movie, error) {
	var movies []models.Movie
	err := r.db.WithContext(ctx).Preload("Genres").Order("created_at DESC").Find(&movies).Error
	return movies, err
}

func (r *movieRepository) ListByCreator(ctx context.Context, username string) ([]models.Movie, error) {
	var movies []models.Movie
	err := r.db.WithContext(ctx).Preload("Genres").
		Where("created_by = ?", username).
		Order("created_at DESC").
		Find(&movies).Error
	return movies, err
}

func (r *movieRepository) Get(ctx context.Context, id string) (*models.Movie, error) {
	var movie models.Movie
	if err := r.db.WithContext(ctx).Preload("Genres").First(&movie, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Movie not found")
		}
		return nil, err
	}
	return &movie, nil
}

func (r *movieRepository) GetByIDAndCreator(ctx context.Context, id, username string) (*models.Movie, error) {
	var movie models.Movie
	err := r.db.WithContext(ctx).Preload("Genres").
		Where("id = ? AND created_by = ?", id, username).
		First(&movie).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Movie not found")
		}
		return nil, err
	}
	return &movie, nil
}

func (r *movieRepository) FindByIDs(ctx context.Context, ids []string) ([]models.Movie, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var movies []models.Movie
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&movies).Error
	return movies, err
}

func (r *movieRepository) Create(ctx context.Context, movie *models.Movie) error {
	return r.db.WithContext(ctx).Create(movie).Error
}

func (r *movieRepository) Save(ctx context.Context, movie *models.Movie) error {
	return r.db.WithContext(ctx).Omit("Genres").Save(movie).Error
}

func (r *movieRepository) ReplaceGenres(ctx context.Context, movie *models.Movie, genres []models.Genre) error {
	return r.db.WithContext(ctx).Model(movie).Association("Genres").Replace(genres)
}

func (r *movieRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.Movie{Base: models.Base{ID: id}}).Error
}

func (r *movieRepository) ListImagePaths(ctx context.Context) ([]string, error) {
	var paths []string
	err := r.db.WithContext(ctx).Model(&models.Movie{}).
		Where("image_path <> ''").
		Pluck("image_path", &paths).Error
	return paths, err
}
