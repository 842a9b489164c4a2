package repositories

import (
	"context"

	"gorm.io/gorm"

	"filmledger/internal/services"
)

// Stores is the gorm-backed implementation of services.Stores.
type Stores struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Stores {
	return &Stores{db: db}
}

func (s *Stores) Movies() services.MovieStore {
	return &movieRepository{db: s.db}
}

func (s *Stores) Actors() services.ActorStore {
	return &actorRepository{db: s.db}
}

func (s *Stores) Casts() services.CastStore {
	return &castRepository{db: s.db}
}

func (s *Stores) Genres() services.GenreStore {
	return &genreRepository{db: s.db}
}

func (s *Stores) CalculationLogs() services.CalculationLogStore {
	return &calculationLogRepository{db: s.db}
}

func (s *Stores) Users() services.UserStore {
	return &userRepository{db: s.db}
}

func (s *Stores) InTransaction(ctx context.Context, fn func(services.Stores) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(New(tx))
	})
}
