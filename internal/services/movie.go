package services

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"filmledger/internal/apperrors"
	"filmledger/internal/models"
	"filmledger/internal/utils/logger"
)

// ObjectRemover deletes an uploaded object from storage. Implemented by
// the S3 service; nil disables file cleanup (tests).
type ObjectRemover interface {
	DeleteFile(ctx context.Context, path string) error
}

// MovieInput carries a create/update request for a movie.
type MovieInput struct {
	Title       string          `json:"title"`
	GenreIDs    []string        `json:"genreIds"`
	ReleaseYear *int            `json:"releaseYear"`
	BoxOffice   decimal.Decimal `json:"boxOffice"`
	Budget      decimal.Decimal `json:"budget"`
	ImagePath   string          `json:"imagePath"`
}

type MovieService struct {
	stores  Stores
	storage ObjectRemover
	log     *logger.Logger
}

func NewMovieService(stores Stores, storage ObjectRemover) *MovieService {
	return &MovieService{
		stores:  stores,
		storage: storage,
		log:     logger.New("MovieService"),
	}
}

// List returns movies visible to the principal: everything for admins
// (and for principals holding neither USER nor ADMIN), own rows for
// plain contributors.
func (s *MovieService) List(ctx context.Context, principal models.Principal) ([]models.Movie, error) {
	if scopedToOwn(principal) {
		return s.stores.Movies().ListByCreator(ctx, principal.Username)
	}
	return s.stores.Movies().List(ctx)
}

// Get loads a movie without visibility scoping. Internal callers only.
func (s *MovieService) Get(ctx context.Context, id string) (*models.Movie, error) {
	return s.stores.Movies().Get(ctx, id)
}

// GetForView loads a movie for the principal, failing with
// PermissionDenied when a plain contributor requests someone else's row.
func (s *MovieService) GetForView(ctx context.Context, id string, principal models.Principal) (*models.Movie, error) {
	if !scopedToOwn(principal) {
		return s.stores.Movies().Get(ctx, id)
	}
	movie, err := s.stores.Movies().GetByIDAndCreator(ctx, id, principal.Username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Distinguish a foreign row from a missing one.
			if _, getErr := s.stores.Movies().Get(ctx, id); getErr == nil {
				return nil, apperrors.PermissionDenied("You don't have permission to view this movie")
			}
		}
		return nil, err
	}
	return movie, nil
}

func (s *MovieService) validate(input MovieInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return apperrors.ValidationFailed("Title is required")
	}
	if input.ReleaseYear != nil && (*input.ReleaseYear < 1900 || *input.ReleaseYear > 2100) {
		return apperrors.ValidationFailed("Release year must be between 1900 and 2100")
	}
	if input.BoxOffice.IsNegative() {
		return apperrors.ValidationFailed("Box office must be positive")
	}
	if input.Budget.IsNegative() {
		return apperrors.ValidationFailed("Budget must be positive")
	}
	return nil
}

// Save creates a movie stamped with the acting principal as creator.
func (s *MovieService) Save(ctx context.Context, input MovieInput, principal models.Principal) (*models.Movie, error) {
	if err := requireMutable(principal); err != nil {
		return nil, err
	}
	if err := s.validate(input); err != nil {
		return nil, err
	}

	genres, err := s.stores.Genres().FindByIDs(ctx, input.GenreIDs)
	if err != nil {
		return nil, err
	}

	movie := &models.Movie{
		Title:       strings.TrimSpace(input.Title),
		ReleaseYear: input.ReleaseYear,
		BoxOffice:   input.BoxOffice,
		Budget:      input.Budget,
		ImagePath:   input.ImagePath,
		CreatedBy:   principal.Username,
		Genres:      genres,
	}

	if err := s.stores.Movies().Create(ctx, movie); err != nil {
		return nil, err
	}

	s.log.Info("Saved movie %s by user %s", movie.Title, principal.Username)
	return movie, nil
}

// Update mutates an existing movie in place; owner or admin only.
func (s *MovieService) Update(ctx context.Context, id string, input MovieInput, principal models.Principal) (*models.Movie, error) {
	if err := requireMutable(principal); err != nil {
		return nil, err
	}

	movie, err := s.stores.Movies().Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireOwnerOrAdmin(principal, movie.CreatedBy, "update this movie"); err != nil {
		return nil, err
	}
	if err := s.validate(input); err != nil {
		return nil, err
	}

	genres, err := s.stores.Genres().FindByIDs(ctx, input.GenreIDs)
	if err != nil {
		return nil, err
	}

	movie.Title = strings.TrimSpace(input.Title)
	movie.ReleaseYear = input.ReleaseYear
	movie.BoxOffice = input.BoxOffice
	movie.Budget = input.Budget
	if input.ImagePath != "" {
		movie.ImagePath = input.ImagePath
	}

	err = s.stores.InTransaction(ctx, func(tx Stores) error {
		if err := tx.Movies().Save(ctx, movie); err != nil {
			return err
		}
		return tx.Movies().ReplaceGenres(ctx, movie, genres)
	})
	if err != nil {
		return nil, err
	}
	movie.Genres = genres

	return movie, nil
}

// Delete removes a movie together with its cast rows, then its uploaded
// image. Calculation logs are retained (pruned only by the retention
// task or an explicit clear).
func (s *MovieService) Delete(ctx context.Context, id string, principal models.Principal) error {
	if err := requireMutable(principal); err != nil {
		return err
	}

	movie, err := s.stores.Movies().Get(ctx, id)
	if err != nil {
		return err
	}
	if err := requireOwnerOrAdmin(principal, movie.CreatedBy, "delete this movie"); err != nil {
		return err
	}

	err = s.stores.InTransaction(ctx, func(tx Stores) error {
		if err := tx.Casts().DeleteByMovie(ctx, id); err != nil {
			return err
		}
		return tx.Movies().Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	if movie.ImagePath != "" && s.storage != nil {
		if err := s.storage.DeleteFile(ctx, movie.ImagePath); err != nil {
			s.log.Warn("Failed to delete image %s: %v", movie.ImagePath, err)
		}
	}

	s.log.Info("Deleted movie %s by user %s", id, principal.Username)
	return nil
}

// SetImagePath records a freshly uploaded poster on the movie.
func (s *MovieService) SetImagePath(ctx context.Context, id, path string, principal models.Principal) (*models.Movie, error) {
	if err := requireMutable(principal); err != nil {
		return nil, err
	}

	movie, err := s.stores.Movies().Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireOwnerOrAdmin(principal, movie.CreatedBy, "update this movie"); err != nil {
		return nil, err
	}

	previous := movie.ImagePath
	movie.ImagePath = path
	if err := s.stores.Movies().Save(ctx, movie); err != nil {
		return nil, err
	}

	if previous != "" && previous != path && s.storage != nil {
		if err := s.storage.DeleteFile(ctx, previous); err != nil {
			s.log.Warn("Failed to delete replaced image %s: %v", previous, err)
		}
	}
	return movie, nil
}
