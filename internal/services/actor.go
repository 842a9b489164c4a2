package services

import (
	"context"
	"strings"

	"filmledger/internal/apperrors"
	"filmledger/internal/models"
	"filmledger/internal/utils/logger"
)

// ActorInput carries everything needed to create or update an actor. The
// Castings slice is the desired set of movie appearances; reconciliation
// against the stored rows happens inside one transaction.
type ActorInput struct {
	Name     string           `json:"name" validate:"required"`
	Castings []CastingRequest `json:"castings" validate:"dive"`
}

type ActorService struct {
	stores  Stores
	storage ObjectRemover
	log     *logger.Logger
}

func NewActorService(stores Stores, storage ObjectRemover) *ActorService {
	return &ActorService{stores: stores, storage: storage, log: logger.New("actor-service")}
}

// List returns all actors the principal may see.
func (s *ActorService) List(ctx context.Context, principal models.Principal) ([]models.Actor, error) {
	if scopedToOwn(principal) {
		return s.stores.Actors().ListByCreator(ctx, principal.Username)
	}
	return s.stores.Actors().List(ctx)
}

// GetForView fetches one actor, raising PermissionDenied when the row exists
// but belongs to somebody else.
func (s *ActorService) GetForView(ctx context.Context, id string, principal models.Principal) (*models.Actor, error) {
	actor, err := s.stores.Actors().Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if scopedToOwn(principal) && actor.CreatedBy != principal.Username {
		return nil, apperrors.PermissionDenied("You don't have permission to view this actor")
	}
	return actor, nil
}

// PrimaryPhotosByActorIDs maps each actor to its primary photo path, for
// list pages that show one thumbnail per actor.
func (s *ActorService) PrimaryPhotosByActorIDs(ctx context.Context, actorIDs []string) (map[string]string, error) {
	photos, err := s.stores.Actors().ListPhotosByActors(ctx, actorIDs)
	if err != nil {
		return nil, err
	}
	primary := make(map[string]string, len(actorIDs))
	for i := range photos {
		if _, taken := primary[photos[i].ActorID]; taken {
			continue
		}
		primary[photos[i].ActorID] = photos[i].ImagePath
	}
	return primary, nil
}

func (s *ActorService) validate(input *ActorInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return apperrors.ValidationFailed("name is required")
	}
	seen := make(map[string]struct{}, len(input.Castings))
	for _, req := range input.Castings {
		if req.MovieID == "" {
			return apperrors.ValidationFailed("casting movieId is required")
		}
		if _, dup := seen[req.MovieID]; dup {
			return apperrors.ValidationFailed("duplicate casting for movie %s", req.MovieID)
		}
		seen[req.MovieID] = struct{}{}
		if req.Salary.Valid && req.Salary.Decimal.IsNegative() {
			return apperrors.ValidationFailed("salary must not be negative")
		}
	}
	return nil
}

// checkCastingTargets verifies every referenced movie exists and may be
// modified by the principal.
func (s *ActorService) checkCastingTargets(ctx context.Context, principal models.Principal, castings []CastingRequest) error {
	if len(castings) == 0 {
		return nil
	}
	ids := make([]string, 0, len(castings))
	for _, req := range castings {
		ids = append(ids, req.MovieID)
	}
	movies, err := s.stores.Movies().FindByIDs(ctx, ids)
	if err != nil {
		return err
	}
	found := make(map[string]*models.Movie, len(movies))
	for i := range movies {
		found[movies[i].ID] = &movies[i]
	}
	for _, id := range ids {
		movie, ok := found[id]
		if !ok {
			return apperrors.NotFound("Movie %s not found", id)
		}
		if err := requireOwnerOrAdmin(principal, movie.CreatedBy, "cast into this movie"); err != nil {
			return err
		}
	}
	return nil
}

// Create stores a new actor and its initial cast rows in one transaction.
func (s *ActorService) Create(ctx context.Context, principal models.Principal, input *ActorInput) (*models.Actor, error) {
	if err := requireMutable(principal); err != nil {
		return nil, err
	}
	if err := s.validate(input); err != nil {
		return nil, err
	}
	if err := s.checkCastingTargets(ctx, principal, input.Castings); err != nil {
		return nil, err
	}

	actor := &models.Actor{
		Name:      strings.TrimSpace(input.Name),
		CreatedBy: principal.Username,
	}
	err := s.stores.InTransaction(ctx, func(tx Stores) error {
		if err := tx.Actors().Create(ctx, actor); err != nil {
			return err
		}
		return reconcileCast(ctx, tx, actor, input.Castings)
	})
	if err != nil {
		return nil, s.log.Error("failed to create actor", err)
	}
	return s.stores.Actors().Get(ctx, actor.ID)
}

// Update renames the actor and reconciles its cast rows against the desired
// set, all inside one transaction.
func (s *ActorService) Update(ctx context.Context, principal models.Principal, id string, input *ActorInput) (*models.Actor, error) {
	if err := requireMutable(principal); err != nil {
		return nil, err
	}
	actor, err := s.stores.Actors().Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireOwnerOrAdmin(principal, actor.CreatedBy, "modify this actor"); err != nil {
		return nil, err
	}
	if err := s.validate(input); err != nil {
		return nil, err
	}
	if err := s.checkCastingTargets(ctx, principal, input.Castings); err != nil {
		return nil, err
	}

	actor.Name = strings.TrimSpace(input.Name)
	err = s.stores.InTransaction(ctx, func(tx Stores) error {
		if err := tx.Actors().Save(ctx, actor); err != nil {
			return err
		}
		return reconcileCast(ctx, tx, actor, input.Castings)
	})
	if err != nil {
		return nil, s.log.Error("failed to update actor", err)
	}
	return s.stores.Actors().Get(ctx, actor.ID)
}

// Delete removes the actor together with its cast rows and photos. Photo
// objects are deleted from storage best-effort after the transaction commits.
func (s *ActorService) Delete(ctx context.Context, principal models.Principal, id string) error {
	if err := requireMutable(principal); err != nil {
		return err
	}
	actor, err := s.stores.Actors().Get(ctx, id)
	if err != nil {
		return err
	}
	if err := requireOwnerOrAdmin(principal, actor.CreatedBy, "delete this actor"); err != nil {
		return err
	}

	photos, err := s.stores.Actors().ListPhotos(ctx, id)
	if err != nil {
		return err
	}
	err = s.stores.InTransaction(ctx, func(tx Stores) error {
		if err := tx.Casts().DeleteByActor(ctx, id); err != nil {
			return err
		}
		if err := tx.Actors().DeletePhotosByActor(ctx, id); err != nil {
			return err
		}
		return tx.Actors().Delete(ctx, id)
	})
	if err != nil {
		return s.log.Error("failed to delete actor", err)
	}

	if s.storage != nil {
		for i := range photos {
			if photos[i].ImagePath == "" {
				continue
			}
			if err := s.storage.DeleteFile(ctx, photos[i].ImagePath); err != nil {
				s.log.Warn("failed to delete actor photo object: %v", err)
			}
		}
	}
	return nil
}

// ListPhotos returns the photos of an actor the principal may view, primary
// first.
func (s *ActorService) ListPhotos(ctx context.Context, principal models.Principal, actorID string) ([]models.ActorPhoto, error) {
	if _, err := s.GetForView(ctx, actorID, principal); err != nil {
		return nil, err
	}
	return s.stores.Actors().ListPhotos(ctx, actorID)
}

// AddPhoto attaches an uploaded image to the actor. The first photo becomes
// primary automatically.
func (s *ActorService) AddPhoto(ctx context.Context, principal models.Principal, actorID, imagePath string) (*models.ActorPhoto, error) {
	if err := requireMutable(principal); err != nil {
		return nil, err
	}
	actor, err := s.stores.Actors().Get(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if err := requireOwnerOrAdmin(principal, actor.CreatedBy, "modify this actor"); err != nil {
		return nil, err
	}
	existing, err := s.stores.Actors().ListPhotos(ctx, actorID)
	if err != nil {
		return nil, err
	}
	photo := &models.ActorPhoto{
		ActorID:   actorID,
		ImagePath: imagePath,
		IsPrimary: len(existing) == 0,
	}
	if err := s.stores.Actors().CreatePhoto(ctx, photo); err != nil {
		return nil, s.log.Error("failed to create actor photo", err)
	}
	return photo, nil
}

// DeletePhoto removes one photo and its stored object.
func (s *ActorService) DeletePhoto(ctx context.Context, principal models.Principal, actorID, photoID string) error {
	if err := requireMutable(principal); err != nil {
		return err
	}
	actor, err := s.stores.Actors().Get(ctx, actorID)
	if err != nil {
		return err
	}
	if err := requireOwnerOrAdmin(principal, actor.CreatedBy, "modify this actor"); err != nil {
		return err
	}
	photo, err := s.stores.Actors().GetPhoto(ctx, photoID)
	if err != nil {
		return err
	}
	if photo.ActorID != actorID {
		return apperrors.NotFound("Photo not found for this actor")
	}
	if err := s.stores.Actors().DeletePhoto(ctx, photoID); err != nil {
		return err
	}
	if s.storage != nil && photo.ImagePath != "" {
		if err := s.storage.DeleteFile(ctx, photo.ImagePath); err != nil {
			s.log.Warn("failed to delete actor photo object: %v", err)
		}
	}
	return nil
}
