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

func nullSalary(v int64) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: decimal.NewFromInt(v), Valid: true}
}

func castRowsByMovie(t *testing.T, m *memStores, actorID string) map[string]models.MovieCast {
	t.Helper()
	rows, err := m.Casts().ListByActor(context.Background(), actorID)
	require.NoError(t, err)
	byMovie := make(map[string]models.MovieCast, len(rows))
	for _, row := range rows {
		byMovie[row.MovieID] = row
	}
	return byMovie
}

func TestReconcileCastCreatesDesiredRows(t *testing.T) {
	m := newMemStores()
	alice := "alice"
	m1 := m.addMovie("Heat", alice)
	m2 := m.addMovie("Ronin", alice)
	actor := m.addActor("Robert", alice)

	err := reconcileCast(context.Background(), m, actor, []CastingRequest{
		{MovieID: m1.ID, RoleName: "  Neil McCauley  ", Salary: nullSalary(500000)},
		{MovieID: m2.ID},
	})
	require.NoError(t, err)

	rows := castRowsByMovie(t, m, actor.ID)
	require.Len(t, rows, 2)

	assert.Equal(t, "Neil McCauley", rows[m1.ID].RoleName)
	assert.True(t, rows[m1.ID].Salary.Valid)
	assert.True(t, rows[m1.ID].Salary.Decimal.Equal(decimal.NewFromInt(500000)))
	assert.Equal(t, alice, rows[m1.ID].CreatedBy)

	// A blank role name falls back to the literal placeholder.
	assert.Equal(t, "Unknown", rows[m2.ID].RoleName)
	assert.False(t, rows[m2.ID].Salary.Valid)
}

func TestReconcileCastSetExactness(t *testing.T) {
	m := newMemStores()
	alice := "alice"
	m1 := m.addMovie("Heat", alice)
	m2 := m.addMovie("Ronin", alice)
	m3 := m.addMovie("Spy Game", alice)
	actor := m.addActor("Robert", alice)

	ctx := context.Background()
	require.NoError(t, reconcileCast(ctx, m, actor, []CastingRequest{
		{MovieID: m1.ID, RoleName: "A"},
		{MovieID: m2.ID, RoleName: "B"},
	}))

	// Shrink and grow the desired set in one call.
	require.NoError(t, reconcileCast(ctx, m, actor, []CastingRequest{
		{MovieID: m2.ID, RoleName: "B"},
		{MovieID: m3.ID, RoleName: "C"},
	}))

	rows := castRowsByMovie(t, m, actor.ID)
	require.Len(t, rows, 2)
	assert.NotContains(t, rows, m1.ID)
	assert.Contains(t, rows, m2.ID)
	assert.Contains(t, rows, m3.ID)
}

func TestReconcileCastIdempotent(t *testing.T) {
	m := newMemStores()
	alice := "alice"
	movie := m.addMovie("Heat", alice)
	actor := m.addActor("Robert", alice)

	ctx := context.Background()
	desired := []CastingRequest{{MovieID: movie.ID, RoleName: "Neil", Salary: nullSalary(100)}}

	require.NoError(t, reconcileCast(ctx, m, actor, desired))
	first := castRowsByMovie(t, m, actor.ID)

	require.NoError(t, reconcileCast(ctx, m, actor, desired))
	second := castRowsByMovie(t, m, actor.ID)

	require.Len(t, second, 1)
	// Same row, untouched: no duplicate and no rewrite on the second call.
	assert.Equal(t, first[movie.ID].ID, second[movie.ID].ID)
	assert.Equal(t, first[movie.ID].UpdatedAt, second[movie.ID].UpdatedAt)
}

func TestReconcileCastConditionalUpdates(t *testing.T) {
	m := newMemStores()
	alice := "alice"
	movie := m.addMovie("Heat", alice)
	actor := m.addActor("Robert", alice)
	ctx := context.Background()

	require.NoError(t, reconcileCast(ctx, m, actor, []CastingRequest{
		{MovieID: movie.ID, RoleName: "Neil", Salary: nullSalary(100)},
	}))

	// A blank role name and a null salary leave the stored values alone.
	require.NoError(t, reconcileCast(ctx, m, actor, []CastingRequest{
		{MovieID: movie.ID, RoleName: "   "},
	}))
	rows := castRowsByMovie(t, m, actor.ID)
	assert.Equal(t, "Neil", rows[movie.ID].RoleName)
	assert.True(t, rows[movie.ID].Salary.Valid)

	// Supplied, different values replace them.
	require.NoError(t, reconcileCast(ctx, m, actor, []CastingRequest{
		{MovieID: movie.ID, RoleName: "Vincent", Salary: nullSalary(250)},
	}))
	rows = castRowsByMovie(t, m, actor.ID)
	assert.Equal(t, "Vincent", rows[movie.ID].RoleName)
	assert.True(t, rows[movie.ID].Salary.Decimal.Equal(decimal.NewFromInt(250)))
}

func TestAddCastPermissions(t *testing.T) {
	m := newMemStores()
	movie := m.addMovie("Heat", "alice")
	actor := m.addActor("Robert", "alice")
	svc := NewCastService(m)
	ctx := context.Background()

	readOnly := models.NewPrincipal("ro", models.RoleReadOnly, models.RoleAdmin)
	_, err := svc.AddCast(ctx, readOnly, movie.ID, actor.ID, "Neil", decimal.NullDecimal{})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	stranger := models.NewPrincipal("bob", models.RoleUser)
	_, err = svc.AddCast(ctx, stranger, movie.ID, actor.ID, "Neil", decimal.NullDecimal{})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	owner := models.NewPrincipal("alice", models.RoleUser)
	_, err = svc.AddCast(ctx, owner, movie.ID, actor.ID, "  ", decimal.NullDecimal{})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	cast, err := svc.AddCast(ctx, owner, movie.ID, actor.ID, "Neil", decimal.NullDecimal{})
	require.NoError(t, err)
	assert.Equal(t, "Neil", cast.RoleName)
	assert.Equal(t, "alice", cast.CreatedBy)

	// The same pairing twice is a conflict.
	_, err = svc.AddCast(ctx, owner, movie.ID, actor.ID, "Neil", decimal.NullDecimal{})
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestAddCastStampsActingPrincipal(t *testing.T) {
	m := newMemStores()
	movie := m.addMovie("Heat", "alice")
	actor := m.addActor("Robert", "alice")
	svc := NewCastService(m)

	// An admin casting into somebody else's movie is recorded as the
	// creator of the cast row, not the movie's owner.
	admin := models.NewPrincipal("root", models.RoleAdmin)
	cast, err := svc.AddCast(context.Background(), admin, movie.ID, actor.ID, "Neil", decimal.NullDecimal{})
	require.NoError(t, err)
	assert.Equal(t, "root", cast.CreatedBy)
}

func TestRoleForMovie(t *testing.T) {
	m := newMemStores()
	movie := m.addMovie("Heat", "alice")
	actor := m.addActor("Robert", "alice")
	ctx := context.Background()
	require.NoError(t, reconcileCast(ctx, m, actor, []CastingRequest{
		{MovieID: movie.ID, RoleName: "Neil", Salary: nullSalary(100)},
	}))

	svc := NewCastService(m)
	role, err := svc.RoleForMovie(ctx, actor.ID, movie.ID)
	require.NoError(t, err)
	require.NotNil(t, role)
	assert.Equal(t, "Neil", role.RoleName)

	// Not cast there: nil view, no error.
	none, err := svc.RoleForMovie(ctx, actor.ID, "other-movie")
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestCastByActorForViewScoped(t *testing.T) {
	m := newMemStores()
	mine := m.addMovie("Heat", "alice")
	theirs := m.addMovie("Ronin", "bob")
	actor := m.addActor("Robert", "alice")
	ctx := context.Background()

	require.NoError(t, reconcileCast(ctx, m, actor, []CastingRequest{
		{MovieID: mine.ID, RoleName: "Neil"},
		{MovieID: theirs.ID, RoleName: "Sam"},
	}))

	svc := NewCastService(m)

	owner := models.NewPrincipal("alice", models.RoleUser)
	credits, err := svc.CastByActorForView(ctx, owner, actor.ID)
	require.NoError(t, err)
	require.Len(t, credits, 1)
	assert.Equal(t, mine.ID, credits[0].MovieID)

	admin := models.NewPrincipal("root", models.RoleAdmin)
	credits, err = svc.CastByActorForView(ctx, admin, actor.ID)
	require.NoError(t, err)
	assert.Len(t, credits, 2)
}
