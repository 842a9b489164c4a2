package models

import (
	"gorm.io/gorm"
)

// GetUserByUsername retrieves a user with its role set preloaded.
func GetUserByUsername(username string, db *gorm.DB) (*User, error) {
	user := &User{}
	if err := db.Preload("Roles").Where("username = ?", username).First(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// GetRoleByName retrieves one of the seeded role rows.
func GetRoleByName(name RoleName, db *gorm.DB) (*Role, error) {
	role := &Role{}
	if err := db.Where("name = ?", name).First(role).Error; err != nil {
		return nil, err
	}
	return role, nil
}
