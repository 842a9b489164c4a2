package services

import (
	"context"

	"filmledger/internal/models"
)

// GenreService exposes the seeded genre catalog. Genres are shared
// reference data, not ownership-scoped.
type GenreService struct {
	stores Stores
}

func NewGenreService(stores Stores) *GenreService {
	return &GenreService{stores: stores}
}

func (s *GenreService) List(ctx context.Context) ([]models.Genre, error) {
	return s.stores.Genres().List(ctx)
}
