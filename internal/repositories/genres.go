package repositories

import (
	"context"

	"gorm.io/gorm"

	"filmledger/internal/models"
)

type genreRepository struct {
	db *gorm.DB
}

func (r *genreRepository) List(ctx context.Context) ([]models.Genre, error) {
	var genres []models.Genre
	err := r.db.WithContext(ctx).Order("name ASC").Find(&genres).Error
	return genres, err
}

func (r *genreRepository) FindByIDs(ctx context.Context, ids []string) ([]models.Genre, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var genres []models.Genre
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&genres).Error
	return genres, err
}
