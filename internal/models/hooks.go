package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"filmledger/internal/events"
)

// AfterFind resolves the signed poster URL when a storage backend is
// registered; the model stays usable without one (tests, seeding).
func (m *Movie) AfterFind(tx *gorm.DB) error {
	if m.ImagePath == "" {
		return nil
	}
	generator := fileURLGenerator()
	if generator == nil {
		return nil
	}
	url, err := generator.GetSignedURL(tx.Statement.Context, m.ImagePath, time.Hour)
	if err != nil {
		return fmt.Errorf("failed to generate signed URL: %w", err)
	}
	m.ImageURL = url
	return nil
}

func (p *ActorPhoto) AfterFind(tx *gorm.DB) error {
	if p.ImagePath == "" {
		return nil
	}
	generator := fileURLGenerator()
	if generator == nil {
		return nil
	}
	url, err := generator.GetSignedURL(tx.Statement.Context, p.ImagePath, time.Hour)
	if err != nil {
		return fmt.Errorf("failed to generate signed URL: %w", err)
	}
	p.ImageURL = url
	return nil
}

// Deletion events feed the background upload sweeper: a deleted movie or
// photo may leave an orphaned object in storage.
func (m *Movie) AfterDelete(tx *gorm.DB) error {
	events.Emit("movie.deleted", m)
	return nil
}

func (p *ActorPhoto) AfterDelete(tx *gorm.DB) error {
	events.Emit("actor_photo.deleted", p)
	return nil
}
