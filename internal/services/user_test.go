package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"filmledger/internal/apperrors"
	"filmledger/internal/models"
)

func TestRegisterDefaultsToReadOnly(t *testing.T) {
	m := newMemStores()
	svc := NewUserService(m)
	ctx := context.Background()

	user, err := svc.Register(ctx, &RegisterInput{Username: "  alice  ", Password: "hunter22!"})
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.True(t, user.Enabled)
	require.Len(t, user.Roles, 1)
	assert.Equal(t, models.RoleReadOnly, user.Roles[0].Name)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("hunter22!")))

	_, err = svc.Register(ctx, &RegisterInput{Username: "alice", Password: "different1"})
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	_, err = svc.Register(ctx, &RegisterInput{Username: "bob", Password: "short"})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestAuthenticateIndistinctFailures(t *testing.T) {
	m := newMemStores()
	svc := NewUserService(m)
	ctx := context.Background()

	_, err := svc.Register(ctx, &RegisterInput{Username: "alice", Password: "hunter22!"})
	require.NoError(t, err)

	user, err := svc.Authenticate(ctx, "alice", "hunter22!")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	_, badPass := svc.Authenticate(ctx, "alice", "wrong-password")
	_, noUser := svc.Authenticate(ctx, "nobody", "hunter22!")
	assert.ErrorIs(t, badPass, apperrors.ErrPermissionDenied)
	assert.ErrorIs(t, noUser, apperrors.ErrPermissionDenied)
	// Wrong password and unknown account read identically to the caller.
	assert.Equal(t, badPass.Error(), noUser.Error())

	m.users["alice"].Enabled = false
	_, disabled := svc.Authenticate(ctx, "alice", "hunter22!")
	assert.ErrorIs(t, disabled, apperrors.ErrPermissionDenied)
	assert.Equal(t, badPass.Error(), disabled.Error())
}

func TestListUsersAdminOnly(t *testing.T) {
	m := newMemStores()
	m.addUser("alice", models.RoleUser)
	m.addUser("bob", models.RoleReadOnly)
	svc := NewUserService(m)
	ctx := context.Background()

	_, err := svc.List(ctx, models.NewPrincipal("alice", models.RoleUser))
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	users, err := svc.List(ctx, models.NewPrincipal("root", models.RoleAdmin))
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestSetRoles(t *testing.T) {
	m := newMemStores()
	m.addUser("bob", models.RoleReadOnly)
	svc := NewUserService(m)
	ctx := context.Background()
	admin := models.NewPrincipal("root", models.RoleAdmin)

	_, err := svc.SetRoles(ctx, models.NewPrincipal("alice", models.RoleUser), "bob", []models.RoleName{models.RoleUser})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	// READ_ONLY blocks role management even for an admin, and the
	// target's role set stays untouched.
	readOnlyAdmin := models.NewPrincipal("ro-admin", models.RoleReadOnly, models.RoleAdmin)
	_, err = svc.SetRoles(ctx, readOnlyAdmin, "bob", []models.RoleName{models.RoleAdmin})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	require.Len(t, m.users["bob"].Roles, 1)
	assert.Equal(t, models.RoleReadOnly, m.users["bob"].Roles[0].Name)

	_, err = svc.SetRoles(ctx, admin, "bob", nil)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = svc.SetRoles(ctx, admin, "bob", []models.RoleName{"SUPERUSER"})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = svc.SetRoles(ctx, admin, "nobody", []models.RoleName{models.RoleUser})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	user, err := svc.SetRoles(ctx, admin, "bob", []models.RoleName{models.RoleUser, models.RoleAdmin, models.RoleUser})
	require.NoError(t, err)
	require.Len(t, user.Roles, 2)

	stored := m.users["bob"]
	assert.Len(t, stored.Roles, 2)
}
