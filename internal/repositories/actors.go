package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"filmledger/internal/apperrors"
	"filmledger/internal/models"
)

type actorRepository struct {
	db *gorm.DB
}

func (r *actorRepository) List(ctx context.Context) ([]models.Actor, error) {
	var actors []models.Actor
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&actors).Error
	return actors, err
}

func (r *actorRepository) ListByCreator(ctx context.Context, username string) ([]models.Actor, error) {
	var actors []models.Actor
	err := r.db.WithContext(ctx).
		Where("created_by = ?", username).
		Order("created_at DESC").
		Find(&actors).Error
	return actors, err
}

func (r *actorRepository) Get(ctx context.Context, id string) (*models.Actor, error) {
	var actor models.Actor
	if err := r.db.WithContext(ctx).First(&actor, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Actor not found")
		}
		return nil, err
	}
	return &actor, nil
}

func (r *actorRepository) Create(ctx context.Context, actor *models.Actor) error {
	return r.db.WithContext(ctx).Create(actor).Error
}

func (r *actorRepository) Save(ctx context.Context, actor *models.Actor) error {
	return r.db.WithContext(ctx).Save(actor).Error
}

func (r *actorRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.Actor{Base: models.Base{ID: id}}).Error
}

// Photos are ordered primary first, then oldest first, matching the
// gallery order on actor pages.
func (r *actorRepository) ListPhotos(ctx context.Context, actorID string) ([]models.ActorPhoto, error) {
	var photos []models.ActorPhoto
	err := r.db.WithContext(ctx).
		Where("actor_id = ?", actorID).
		Order("is_primary DESC, created_at ASC, id ASC").
		Find(&photos).Error
	return photos, err
}

func (r *actorRepository) ListPhotosByActors(ctx context.Context, actorIDs []string) ([]models.ActorPhoto, error) {
	if len(actorIDs) == 0 {
		return nil, nil
	}
	var photos []models.ActorPhoto
	err := r.db.WithContext(ctx).
		Where("actor_id IN ?", actorIDs).
		Order("is_primary DESC, created_at ASC, id ASC").
		Find(&photos).Error
	return photos, err
}

func (r *actorRepository) CreatePhoto(ctx context.Context, photo *models.ActorPhoto) error {
	return r.db.WithContext(ctx).Create(photo).Error
}

func (r *actorRepository) GetPhoto(ctx context.Context, photoID string) (*models.ActorPhoto, error) {
	var photo models.ActorPhoto
	if err := r.db.WithContext(ctx).First(&photo, "id = ?", photoID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Photo not found")
		}
		return nil, err
	}
	return &photo, nil
}

func (r *actorRepository) DeletePhoto(ctx context.Context, photoID string) error {
	return r.db.WithContext(ctx).Delete(&models.ActorPhoto{Base: models.Base{ID: photoID}}).Error
}

func (r *actorRepository) DeletePhotosByActor(ctx context.Context, actorID string) error {
	return r.db.WithContext(ctx).Where("actor_id = ?", actorID).Delete(&models.ActorPhoto{}).Error
}

func (r *actorRepository) ListPhotoPaths(ctx context.Context) ([]string, error) {
	var paths []string
	err := r.db.WithContext(ctx).Model(&models.ActorPhoto{}).
		Where("image_path <> ''").
		Pluck("image_path", &paths).Error
	return paths, err
}
