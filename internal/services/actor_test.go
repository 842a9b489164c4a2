package services

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filmledger/internal/apperrors"
	"filmledger/internal/models"
)

func TestActorCreateWithCastings(t *testing.T) {
	m := newMemStores()
	m1 := m.addMovie("Heat", "alice")
	m2 := m.addMovie("Ronin", "alice")
	svc := NewActorService(m, nil)
	ctx := context.Background()
	owner := models.NewPrincipal("alice", models.RoleUser)

	actor, err := svc.Create(ctx, owner, &ActorInput{
		Name: "  Robert  ",
		Castings: []CastingRequest{
			{MovieID: m1.ID, RoleName: "Neil", Salary: nullSalary(500000)},
			{MovieID: m2.ID, RoleName: "Sam"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Robert", actor.Name)
	assert.Equal(t, "alice", actor.CreatedBy)

	rows := castRowsByMovie(t, m, actor.ID)
	assert.Len(t, rows, 2)
}

func TestActorCreateValidation(t *testing.T) {
	m := newMemStores()
	movie := m.addMovie("Heat", "alice")
	svc := NewActorService(m, nil)
	ctx := context.Background()
	owner := models.NewPrincipal("alice", models.RoleUser)

	_, err := svc.Create(ctx, owner, &ActorInput{Name: "  "})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = svc.Create(ctx, owner, &ActorInput{
		Name: "Robert",
		Castings: []CastingRequest{
			{MovieID: movie.ID, RoleName: "A"},
			{MovieID: movie.ID, RoleName: "B"},
		},
	})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	negative := decimal.NullDecimal{Decimal: decimal.NewFromInt(-1), Valid: true}
	_, err = svc.Create(ctx, owner, &ActorInput{
		Name:     "Robert",
		Castings: []CastingRequest{{MovieID: movie.ID, Salary: negative}},
	})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = svc.Create(ctx, owner, &ActorInput{
		Name:     "Robert",
		Castings: []CastingRequest{{MovieID: "no-such-movie"}},
	})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	// Nothing was persisted along the way.
	assert.Empty(t, m.actors)
	assert.Empty(t, m.casts)
}

func TestActorCreateForeignMovieDenied(t *testing.T) {
	m := newMemStores()
	movie := m.addMovie("Heat", "bob")
	svc := NewActorService(m, nil)

	owner := models.NewPrincipal("alice", models.RoleUser)
	_, err := svc.Create(context.Background(), owner, &ActorInput{
		Name:     "Robert",
		Castings: []CastingRequest{{MovieID: movie.ID}},
	})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	// Admins may cast into anybody's movie.
	admin := models.NewPrincipal("root", models.RoleAdmin)
	_, err = svc.Create(context.Background(), admin, &ActorInput{
		Name:     "Robert",
		Castings: []CastingRequest{{MovieID: movie.ID}},
	})
	assert.NoError(t, err)
}

func TestActorUpdateReconciles(t *testing.T) {
	m := newMemStores()
	m1 := m.addMovie("Heat", "alice")
	m2 := m.addMovie("Ronin", "alice")
	svc := NewActorService(m, nil)
	ctx := context.Background()
	owner := models.NewPrincipal("alice", models.RoleUser)

	actor, err := svc.Create(ctx, owner, &ActorInput{
		Name:     "Robert",
		Castings: []CastingRequest{{MovieID: m1.ID, RoleName: "Neil"}},
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, owner, actor.ID, &ActorInput{
		Name:     "Robert De Niro",
		Castings: []CastingRequest{{MovieID: m2.ID, RoleName: "Sam"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Robert De Niro", updated.Name)

	rows := castRowsByMovie(t, m, actor.ID)
	require.Len(t, rows, 1)
	assert.Contains(t, rows, m2.ID)
}

func TestActorGetForViewScoping(t *testing.T) {
	m := newMemStores()
	actor := m.addActor("Robert", "alice")
	svc := NewActorService(m, nil)
	ctx := context.Background()

	_, err := svc.GetForView(ctx, actor.ID, models.NewPrincipal("bob", models.RoleUser))
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	_, err = svc.GetForView(ctx, actor.ID, models.NewPrincipal("alice", models.RoleUser))
	assert.NoError(t, err)

	_, err = svc.GetForView(ctx, "no-such-id", models.NewPrincipal("alice", models.RoleUser))
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestActorDeleteCascades(t *testing.T) {
	m := newMemStores()
	movie := m.addMovie("Heat", "alice")
	svc := NewActorService(m, nil)
	ctx := context.Background()
	owner := models.NewPrincipal("alice", models.RoleUser)

	actor, err := svc.Create(ctx, owner, &ActorInput{
		Name:     "Robert",
		Castings: []CastingRequest{{MovieID: movie.ID, RoleName: "Neil"}},
	})
	require.NoError(t, err)

	remover := &recordingRemover{}
	svcWithStorage := NewActorService(m, remover)
	_, err = svcWithStorage.AddPhoto(ctx, owner, actor.ID, "photos/deniro.jpg")
	require.NoError(t, err)

	require.NoError(t, svcWithStorage.Delete(ctx, owner, actor.ID))
	assert.Empty(t, m.casts)
	assert.Empty(t, m.photos)
	assert.Equal(t, []string{"photos/deniro.jpg"}, remover.deleted)
}

func TestActorPhotos(t *testing.T) {
	m := newMemStores()
	actor := m.addActor("Robert", "alice")
	other := m.addActor("Val", "alice")
	remover := &recordingRemover{}
	svc := NewActorService(m, remover)
	ctx := context.Background()
	owner := models.NewPrincipal("alice", models.RoleUser)

	first, err := svc.AddPhoto(ctx, owner, actor.ID, "photos/a.jpg")
	require.NoError(t, err)
	assert.True(t, first.IsPrimary)

	second, err := svc.AddPhoto(ctx, owner, actor.ID, "photos/b.jpg")
	require.NoError(t, err)
	assert.False(t, second.IsPrimary)

	photos, err := svc.ListPhotos(ctx, owner, actor.ID)
	require.NoError(t, err)
	require.Len(t, photos, 2)
	assert.True(t, photos[0].IsPrimary)

	// A photo id belonging to a different actor reads as missing.
	err = svc.DeletePhoto(ctx, owner, other.ID, first.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	require.NoError(t, svc.DeletePhoto(ctx, owner, actor.ID, second.ID))
	assert.Equal(t, []string{"photos/b.jpg"}, remover.deleted)
}
