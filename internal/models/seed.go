package models

import (
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"

	console "filmledger/internal/utils/logger"

	"gorm.io/gorm"
)

var log = console.New("SEEDER")

// Genre reference data. Genres are shared rows a movie links to, never
// created through the API.
var defaultGenres = []string{
	"Action", "Adventure", "Comedy", "Drama", "Fantasy", "Horror",
	"Romance", "Sci-Fi", "Thriller", "Crime", "Mystery", "Biography",
	"History", "War", "Western", "Documentary", "Animation", "Family",
	"Musical", "Sport", "Superhero", "Anime",
}

// SeedRoles creates the three role rows if missing.
func SeedRoles(db *gorm.DB) error {
	for _, name := range AllRoleNames() {
		role := Role{Name: name}
		if err := db.FirstOrCreate(&role, Role{Name: name}).Error; err != nil {
			return fmt.Errorf("failed to create role %s: %v", name, err)
		}
		log.Info("Ensured role: %s", name)
	}
	return nil
}

// SeedGenres creates the genre reference rows if missing.
func SeedGenres(db *gorm.DB) error {
	for _, name := range defaultGenres {
		genre := Genre{Name: name}
		if err := db.FirstOrCreate(&genre, Genre{Name: name}).Error; err != nil {
			return fmt.Errorf("failed to create genre %s: %v", name, err)
		}
	}
	return nil
}

// CreateAdminFromEnv bootstraps the first admin account. A user holding
// ADMIN already existing makes this a no-op.
func CreateAdminFromEnv(db *gorm.DB) error {
	var count int64
	db.Model(&User{}).
		Joins("JOIN user_roles ON user_roles.user_id = users.id").
		Joins("JOIN roles ON roles.id = user_roles.role_id").
		Where("roles.name = ?", RoleAdmin).
		Count(&count)
	if count > 0 {
		return nil
	}

	username, ok := os.LookupEnv("ADMIN_USERNAME")
	if !ok {
		return fmt.Errorf("ADMIN_USERNAME not set")
	}

	password, ok := os.LookupEnv("ADMIN_PASSWORD")
	if !ok {
		return fmt.Errorf("ADMIN_PASSWORD not set")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %v", err)
	}

	adminRole, err := GetRoleByName(RoleAdmin, db)
	if err != nil {
		return fmt.Errorf("roles not seeded: %v", err)
	}
	userRole, err := GetRoleByName(RoleUser, db)
	if err != nil {
		return fmt.Errorf("roles not seeded: %v", err)
	}

	// The configured username may already exist as a regular account;
	// promote it instead of tripping the unique username index.
	if existing, err := GetUserByUsername(username, db); err == nil {
		if err := db.Model(existing).Association("Roles").Replace([]Role{*adminRole, *userRole}); err != nil {
			return fmt.Errorf("failed to promote admin user: %v", err)
		}
		log.Success("Promoted existing user to admin: %s", username)
		return nil
	}

	user := User{
		Username: username,
		Password: string(hashedPassword),
		Enabled:  true,
		Roles:    []Role{*adminRole, *userRole},
	}

	if err := db.Create(&user).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %v", err)
	}

	log.Success("Created admin user: %s", username)
	return nil
}
