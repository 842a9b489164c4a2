package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base contains common columns for all tables
type Base struct {
	ID        string    `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate will set a UUID rather than numeric ID
func (base *Base) BeforeCreate(tx *gorm.DB) error {
	if base.ID == "" {
		base.ID = uuid.New().String()
	}
	return nil
}

// RoleName is the closed set of roles a user can hold.
type RoleName string

const (
	RoleAdmin    RoleName = "ADMIN"
	RoleUser     RoleName = "USER"
	RoleReadOnly RoleName = "READ_ONLY"
)

// IsValidRoleName checks if a given role is valid
func IsValidRoleName(role RoleName) bool {
	switch role {
	case RoleAdmin, RoleUser, RoleReadOnly:
		return true
	default:
		return false
	}
}

// AllRoleNames returns every role in the closed set, seed order.
func AllRoleNames() []RoleName {
	return []RoleName{RoleReadOnly, RoleUser, RoleAdmin}
}

// Job status constants
type JobStatus string

const (
	JobStatusQueued     JobStatus = "QUEUED"
	JobStatusProcessing JobStatus = "PROCESSING"
	JobStatusCompleted  JobStatus = "COMPLETED"
	JobStatusFailed     JobStatus = "FAILED"
)
