package services

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"filmledger/internal/apperrors"
	"filmledger/internal/models"
	"filmledger/internal/utils/logger"
)

type RegisterInput struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=8"`
}

type UserService struct {
	stores Stores
	log    *logger.Logger
}

func NewUserService(stores Stores) *UserService {
	return &UserService{stores: stores, log: logger.New("user-service")}
}

// Register creates an account holding only the read-only role. An admin
// must grant anything more.
func (s *UserService) Register(ctx context.Context, input *RegisterInput) (*models.User, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, apperrors.ValidationFailed("username is required")
	}
	if len(input.Password) < 8 {
		return nil, apperrors.ValidationFailed("password must be at least 8 characters")
	}
	exists, err := s.stores.Users().ExistsByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.Conflict("Username %s is already taken", username)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, s.log.Error("failed to hash password", err)
	}
	role, err := s.stores.Users().FindRoleByName(ctx, models.RoleReadOnly)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Username: username,
		Password: string(hash),
		Enabled:  true,
		Roles:    []models.Role{*role},
	}
	if err := s.stores.Users().Create(ctx, user); err != nil {
		return nil, s.log.Error("failed to create user", err)
	}
	s.log.Success("registered user %s", username)
	return user, nil
}

// Authenticate checks the credentials and returns the account when they
// match. Failures are deliberately indistinct.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.stores.Users().FindByUsername(ctx, username)
	if err != nil {
		return nil, apperrors.PermissionDenied("Invalid username or password")
	}
	if !user.Enabled {
		return nil, apperrors.PermissionDenied("Invalid username or password")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, apperrors.PermissionDenied("Invalid username or password")
	}
	return user, nil
}

// Get loads one account with its roles.
func (s *UserService) Get(ctx context.Context, username string) (*models.User, error) {
	return s.stores.Users().FindByUsername(ctx, username)
}

// List returns every account. Admin only.
func (s *UserService) List(ctx context.Context, principal models.Principal) ([]models.User, error) {
	if !principal.IsAdmin() {
		return nil, apperrors.PermissionDenied("Only administrators can list users")
	}
	return s.stores.Users().List(ctx)
}

// SetRoles replaces a user's role set. Admin only; the set must be
// non-empty and contain only known role names.
func (s *UserService) SetRoles(ctx context.Context, principal models.Principal, username string, names []models.RoleName) (*models.User, error) {
	if err := requireMutable(principal); err != nil {
		return nil, err
	}
	if !principal.IsAdmin() {
		return nil, apperrors.PermissionDenied("Only administrators can manage roles")
	}
	if len(names) == 0 {
		return nil, apperrors.ValidationFailed("at least one role is required")
	}
	for _, name := range names {
		if !models.IsValidRoleName(name) {
			return nil, apperrors.ValidationFailed("unknown role %s", name)
		}
	}
	user, err := s.stores.Users().FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	roles, err := s.stores.Users().FindRolesByNames(ctx, names)
	if err != nil {
		return nil, err
	}
	if len(roles) != len(dedupeRoleNames(names)) {
		return nil, apperrors.ValidationFailed("one or more roles do not exist")
	}
	if err := s.stores.Users().ReplaceRoles(ctx, user, roles); err != nil {
		return nil, s.log.Error("failed to replace roles", err)
	}
	user.Roles = roles
	return user, nil
}

func dedupeRoleNames(names []models.RoleName) []models.RoleName {
	seen := make(map[models.RoleName]struct{}, len(names))
	out := names[:0:0]
	for _, n := range names {
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
