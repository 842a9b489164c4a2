package services

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"filmledger/internal/apperrors"
	"filmledger/internal/models"
	"filmledger/internal/utils/logger"
)

// unknownRole is assigned when a casting request carries no usable role name.
const unknownRole = "Unknown"

// CastingRequest declares that an actor should appear in the given movie.
// RoleName and Salary are optional on updates: blank or absent values leave
// the existing row untouched.
type CastingRequest struct {
	MovieID  string              `json:"movieId" validate:"required"`
	RoleName string              `json:"roleName"`
	Salary   decimal.NullDecimal `json:"salary"`
}

// reconcileCast brings the movie_cast rows for one actor in line with the
// desired set of casting requests. Rows for movies absent from the desired
// set are removed, missing pairings are created, and existing rows are
// updated field-by-field so that omitted values survive.
func reconcileCast(ctx context.Context, stores Stores, actor *models.Actor, desired []CastingRequest) error {
	existing, err := stores.Casts().ListByActor(ctx, actor.ID)
	if err != nil {
		return err
	}

	current := make(map[string]*models.MovieCast, len(existing))
	for i := range existing {
		current[existing[i].MovieID] = &existing[i]
	}
	wanted := make(map[string]CastingRequest, len(desired))
	for _, req := range desired {
		wanted[req.MovieID] = req
	}

	// Deletions first so a movie dropped and re-added in the same call
	// cannot trip the unique (movie_id, actor_id) index.
	for movieID, row := range current {
		if _, keep := wanted[movieID]; !keep {
			if err := stores.Casts().Delete(ctx, row.ID); err != nil {
				return err
			}
		}
	}

	for movieID, req := range wanted {
		row, exists := current[movieID]
		if !exists {
			name := strings.TrimSpace(req.RoleName)
			if name == "" {
				name = unknownRole
			}
			cast := &models.MovieCast{
				MovieID:   movieID,
				ActorID:   actor.ID,
				RoleName:  name,
				Salary:    req.Salary,
				CreatedBy: actor.CreatedBy,
			}
			if err := stores.Casts().Create(ctx, cast); err != nil {
				return err
			}
			continue
		}

		changed := false
		if name := strings.TrimSpace(req.RoleName); name != "" && name != row.RoleName {
			row.RoleName = name
			changed = true
		}
		if req.Salary.Valid && !salaryEqual(row.Salary, req.Salary) {
			row.Salary = req.Salary
			changed = true
		}
		if changed {
			if err := stores.Casts().Save(ctx, row); err != nil {
				return err
			}
		}
	}
	return nil
}

func salaryEqual(a, b decimal.NullDecimal) bool {
	if a.Valid != b.Valid {
		return false
	}
	if !a.Valid {
		return true
	}
	return a.Decimal.Equal(b.Decimal)
}

// CastMemberView is the shape returned when listing a movie's cast.
type CastMemberView struct {
	CastID    string              `json:"castId"`
	ActorID   string              `json:"actorId"`
	ActorName string              `json:"actorName"`
	RoleName  string              `json:"roleName"`
	Salary    decimal.NullDecimal `json:"salary,omitempty"`
}

// ActorCreditView is the shape returned when listing an actor's filmography.
type ActorCreditView struct {
	CastID     string              `json:"castId"`
	MovieID    string              `json:"movieId"`
	MovieTitle string              `json:"movieTitle"`
	RoleName   string              `json:"roleName"`
	Salary     decimal.NullDecimal `json:"salary,omitempty"`
}

type CastService struct {
	stores Stores
	log    *logger.Logger
}

func NewCastService(stores Stores) *CastService {
	return &CastService{stores: stores, log: logger.New("cast-service")}
}

// CastByMovieForView lists the cast of a movie the principal may view.
func (s *CastService) CastByMovieForView(ctx context.Context, principal models.Principal, movieSvc *MovieService, movieID string) ([]CastMemberView, error) {
	if _, err := movieSvc.GetForView(ctx, movieID, principal); err != nil {
		return nil, err
	}
	rows, err := s.stores.Casts().ListByMovie(ctx, movieID)
	if err != nil {
		return nil, err
	}
	views := make([]CastMemberView, 0, len(rows))
	for i := range rows {
		views = append(views, CastMemberView{
			CastID:    rows[i].ID,
			ActorID:   rows[i].ActorID,
			ActorName: rows[i].Actor.Name,
			RoleName:  rows[i].RoleName,
			Salary:    rows[i].Salary,
		})
	}
	return views, nil
}

// CastByActorForView lists an actor's credits, restricted to movies the
// principal may view.
func (s *CastService) CastByActorForView(ctx context.Context, principal models.Principal, actorID string) ([]ActorCreditView, error) {
	rows, err := s.stores.Casts().ListByActor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	scoped := scopedToOwn(principal)
	views := make([]ActorCreditView, 0, len(rows))
	for i := range rows {
		if scoped && rows[i].Movie.CreatedBy != principal.Username {
			continue
		}
		views = append(views, ActorCreditView{
			CastID:     rows[i].ID,
			MovieID:    rows[i].MovieID,
			MovieTitle: rows[i].Movie.Title,
			RoleName:   rows[i].RoleName,
			Salary:     rows[i].Salary,
		})
	}
	return views, nil
}

// FirstCastByMovieIDs picks one representative cast row per movie, used by
// list pages to show a lead credit without loading whole casts.
func (s *CastService) FirstCastByMovieIDs(ctx context.Context, movieIDs []string) (map[string]CastMemberView, error) {
	rows, err := s.stores.Casts().ListByMovies(ctx, movieIDs)
	if err != nil {
		return nil, err
	}
	first := make(map[string]CastMemberView, len(movieIDs))
	for i := range rows {
		if _, taken := first[rows[i].MovieID]; taken {
			continue
		}
		first[rows[i].MovieID] = CastMemberView{
			CastID:    rows[i].ID,
			ActorID:   rows[i].ActorID,
			ActorName: rows[i].Actor.Name,
			RoleName:  rows[i].RoleName,
			Salary:    rows[i].Salary,
		}
	}
	return first, nil
}

// MovieCountByActorIDs counts the distinct movies each actor appears in,
// restricted to movies the principal may view.
func (s *CastService) MovieCountByActorIDs(ctx context.Context, principal models.Principal, actorIDs []string) (map[string]int, error) {
	counts := make(map[string]int, len(actorIDs))
	scoped := scopedToOwn(principal)
	for _, actorID := range actorIDs {
		rows, err := s.stores.Casts().ListByActor(ctx, actorID)
		if err != nil {
			return nil, err
		}
		seen := make(map[string]struct{}, len(rows))
		for i := range rows {
			if scoped && rows[i].Movie.CreatedBy != principal.Username {
				continue
			}
			seen[rows[i].MovieID] = struct{}{}
		}
		counts[actorID] = len(seen)
	}
	return counts, nil
}

// RoleForMovie derives an actor's role and salary in one movie, or nil
// when the actor is not cast there.
func (s *CastService) RoleForMovie(ctx context.Context, actorID, movieID string) (*CastMemberView, error) {
	row, err := s.stores.Casts().FindByMovieAndActor(ctx, movieID, actorID)
	if err != nil || row == nil {
		return nil, err
	}
	return &CastMemberView{
		CastID:   row.ID,
		ActorID:  row.ActorID,
		RoleName: row.RoleName,
		Salary:   row.Salary,
	}, nil
}

// AddCast creates a single pairing from the movie side.
func (s *CastService) AddCast(ctx context.Context, principal models.Principal, movieID, actorID, roleName string, salary decimal.NullDecimal) (*models.MovieCast, error) {
	if err := requireMutable(principal); err != nil {
		return nil, err
	}
	movie, err := s.stores.Movies().Get(ctx, movieID)
	if err != nil {
		return nil, err
	}
	if err := requireOwnerOrAdmin(principal, movie.CreatedBy, "modify this movie"); err != nil {
		return nil, err
	}
	actor, err := s.stores.Actors().Get(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if scopedToOwn(principal) && actor.CreatedBy != principal.Username {
		return nil, apperrors.PermissionDenied("You don't have permission to cast this actor")
	}

	name := strings.TrimSpace(roleName)
	if name == "" {
		return nil, apperrors.ValidationFailed("roleName is required")
	}
	if existing, err := s.stores.Casts().FindByMovieAndActor(ctx, movieID, actorID); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, apperrors.Conflict("Actor %s is already cast in this movie", actor.Name)
	}

	cast := &models.MovieCast{
		MovieID:   movieID,
		ActorID:   actorID,
		RoleName:  name,
		Salary:    salary,
		CreatedBy: principal.Username,
	}
	if err := s.stores.Casts().Create(ctx, cast); err != nil {
		return nil, s.log.Error("failed to create cast entry", err)
	}
	return cast, nil
}

// UpdateCast edits the role name or salary of one pairing from the movie side.
func (s *CastService) UpdateCast(ctx context.Context, principal models.Principal, movieID, castID string, roleName string, salary decimal.NullDecimal) (*models.MovieCast, error) {
	if err := requireMutable(principal); err != nil {
		return nil, err
	}
	movie, err := s.stores.Movies().Get(ctx, movieID)
	if err != nil {
		return nil, err
	}
	if err := requireOwnerOrAdmin(principal, movie.CreatedBy, "modify this movie"); err != nil {
		return nil, err
	}
	row, err := s.stores.Casts().FindByIDAndMovie(ctx, castID, movieID)
	if err != nil {
		return nil, err
	}
	if name := strings.TrimSpace(roleName); name != "" {
		row.RoleName = name
	}
	if salary.Valid {
		row.Salary = salary
	}
	if err := s.stores.Casts().Save(ctx, row); err != nil {
		return nil, s.log.Error("failed to update cast entry", err)
	}
	return row, nil
}

// DeleteCast removes one pairing from the movie side.
func (s *CastService) DeleteCast(ctx context.Context, principal models.Principal, movieID, castID string) error {
	if err := requireMutable(principal); err != nil {
		return err
	}
	movie, err := s.stores.Movies().Get(ctx, movieID)
	if err != nil {
		return err
	}
	if err := requireOwnerOrAdmin(principal, movie.CreatedBy, "modify this movie"); err != nil {
		return err
	}
	row, err := s.stores.Casts().FindByIDAndMovie(ctx, castID, movieID)
	if err != nil {
		return err
	}
	return s.stores.Casts().Delete(ctx, row.ID)
}
