package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"filmledger/internal/apperrors"
	"filmledger/internal/models"
)

// memStores is an in-memory Stores used by the service tests.
type memStores struct {
	seq    int
	movies map[string]*models.Movie
	actors map[string]*models.Actor
	casts  map[string]*models.MovieCast
	photos map[string]*models.ActorPhoto
	genres map[string]*models.Genre
	logs   []*models.CalculationLog
	users  map[string]*models.User
	roles  map[models.RoleName]*models.Role
}

func newMemStores() *memStores {
	m := &memStores{
		movies: make(map[string]*models.Movie),
		actors: make(map[string]*models.Actor),
		casts:  make(map[string]*models.MovieCast),
		photos: make(map[string]*models.ActorPhoto),
		genres: make(map[string]*models.Genre),
		users:  make(map[string]*models.User),
		roles:  make(map[models.RoleName]*models.Role),
	}
	for _, name := range models.AllRoleNames() {
		m.roles[name] = &models.Role{Base: models.Base{ID: m.nextID()}, Name: name}
	}
	return m
}

func (m *memStores) nextID() string {
	m.seq++
	return fmt.Sprintf("id-%04d", m.seq)
}

func (m *memStores) addMovie(title, createdBy string) *models.Movie {
	movie := &models.Movie{Base: models.Base{ID: m.nextID()}, Title: title, CreatedBy: createdBy}
	m.movies[movie.ID] = movie
	return movie
}

func (m *memStores) addActor(name, createdBy string) *models.Actor {
	actor := &models.Actor{Base: models.Base{ID: m.nextID()}, Name: name, CreatedBy: createdBy}
	m.actors[actor.ID] = actor
	return actor
}

func (m *memStores) addUser(username string, roles ...models.RoleName) *models.User {
	user := &models.User{Base: models.Base{ID: m.nextID()}, Username: username, Enabled: true}
	for _, r := range roles {
		user.Roles = append(user.Roles, *m.roles[r])
	}
	m.users[username] = user
	return user
}

func (m *memStores) Movies() MovieStore                   { return &memMovieStore{m} }
func (m *memStores) Actors() ActorStore                   { return &memActorStore{m} }
func (m *memStores) Casts() CastStore                     { return &memCastStore{m} }
func (m *memStores) Genres() GenreStore                   { return &memGenreStore{m} }
func (m *memStores) CalculationLogs() CalculationLogStore { return &memCalcLogStore{m} }
func (m *memStores) Users() UserStore                     { return &memUserStore{m} }

func (m *memStores) InTransaction(_ context.Context, fn func(Stores) error) error {
	return fn(m)
}

type memMovieStore struct{ m *memStores }

func (s *memMovieStore) List(context.Context) ([]models.Movie, error) {
	out := make([]models.Movie, 0, len(s.m.movies))
	for _, movie := range s.m.movies {
		out = append(out, *movie)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memMovieStore) ListByCreator(_ context.Context, username string) ([]models.Movie, error) {
	var out []models.Movie
	for _, movie := range s.m.movies {
		if movie.CreatedBy == username {
			out = append(out, *movie)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memMovieStore) Get(_ context.Context, id string) (*models.Movie, error) {
	if movie, ok := s.m.movies[id]; ok {
		cp := *movie
		return &cp, nil
	}
	return nil, apperrors.NotFound("Movie not found")
}

func (s *memMovieStore) GetByIDAndCreator(_ context.Context, id, username string) (*models.Movie, error) {
	if movie, ok := s.m.movies[id]; ok && movie.CreatedBy == username {
		cp := *movie
		return &cp, nil
	}
	return nil, apperrors.NotFound("Movie not found")
}

func (s *memMovieStore) FindByIDs(_ context.Context, ids []string) ([]models.Movie, error) {
	var out []models.Movie
	for _, id := range ids {
		if movie, ok := s.m.movies[id]; ok {
			out = append(out, *movie)
		}
	}
	return out, nil
}

func (s *memMovieStore) Create(_ context.Context, movie *models.Movie) error {
	if movie.ID == "" {
		movie.ID = s.m.nextID()
	}
	cp := *movie
	s.m.movies[movie.ID] = &cp
	return nil
}

func (s *memMovieStore) Save(_ context.Context, movie *models.Movie) error {
	cp := *movie
	s.m.movies[movie.ID] = &cp
	return nil
}

func (s *memMovieStore) ReplaceGenres(_ context.Context, movie *models.Movie, genres []models.Genre) error {
	if stored, ok := s.m.movies[movie.ID]; ok {
		stored.Genres = genres
	}
	return nil
}

func (s *memMovieStore) Delete(_ context.Context, id string) error {
	delete(s.m.movies, id)
	return nil
}

func (s *memMovieStore) ListImagePaths(context.Context) ([]string, error) {
	var out []string
	for _, movie := range s.m.movies {
		if movie.ImagePath != "" {
			out = append(out, movie.ImagePath)
		}
	}
	return out, nil
}

type memActorStore struct{ m *memStores }

func (s *memActorStore) List(context.Context) ([]models.Actor, error) {
	out := make([]models.Actor, 0, len(s.m.actors))
	for _, actor := range s.m.actors {
		out = append(out, *actor)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memActorStore) ListByCreator(_ context.Context, username string) ([]models.Actor, error) {
	var out []models.Actor
	for _, actor := range s.m.actors {
		if actor.CreatedBy == username {
			out = append(out, *actor)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memActorStore) Get(_ context.Context, id string) (*models.Actor, error) {
	if actor, ok := s.m.actors[id]; ok {
		cp := *actor
		return &cp, nil
	}
	return nil, apperrors.NotFound("Actor not found")
}

func (s *memActorStore) Create(_ context.Context, actor *models.Actor) error {
	if actor.ID == "" {
		actor.ID = s.m.nextID()
	}
	cp := *actor
	s.m.actors[actor.ID] = &cp
	return nil
}

func (s *memActorStore) Save(_ context.Context, actor *models.Actor) error {
	cp := *actor
	s.m.actors[actor.ID] = &cp
	return nil
}

func (s *memActorStore) Delete(_ context.Context, id string) error {
	delete(s.m.actors, id)
	return nil
}

func (s *memActorStore) ListPhotos(_ context.Context, actorID string) ([]models.ActorPhoto, error) {
	var out []models.ActorPhoto
	for _, photo := range s.m.photos {
		if photo.ActorID == actorID {
			out = append(out, *photo)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].IsPrimary != out[j].IsPrimary {
			return out[i].IsPrimary
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *memActorStore) ListPhotosByActors(ctx context.Context, actorIDs []string) ([]models.ActorPhoto, error) {
	var out []models.ActorPhoto
	for _, id := range actorIDs {
		photos, _ := s.ListPhotos(ctx, id)
		out = append(out, photos...)
	}
	return out, nil
}

func (s *memActorStore) CreatePhoto(_ context.Context, photo *models.ActorPhoto) error {
	if photo.ID == "" {
		photo.ID = s.m.nextID()
	}
	cp := *photo
	s.m.photos[photo.ID] = &cp
	return nil
}

func (s *memActorStore) GetPhoto(_ context.Context, photoID string) (*models.ActorPhoto, error) {
	if photo, ok := s.m.photos[photoID]; ok {
		cp := *photo
		return &cp, nil
	}
	return nil, apperrors.NotFound("Photo not found")
}

func (s *memActorStore) DeletePhoto(_ context.Context, photoID string) error {
	delete(s.m.photos, photoID)
	return nil
}

func (s *memActorStore) DeletePhotosByActor(_ context.Context, actorID string) error {
	for id, photo := range s.m.photos {
		if photo.ActorID == actorID {
			delete(s.m.photos, id)
		}
	}
	return nil
}

func (s *memActorStore) ListPhotoPaths(context.Context) ([]string, error) {
	var out []string
	for _, photo := range s.m.photos {
		if photo.ImagePath != "" {
			out = append(out, photo.ImagePath)
		}
	}
	return out, nil
}

type memCastStore struct{ m *memStores }

func (s *memCastStore) sorted(filter func(*models.MovieCast) bool) []models.MovieCast {
	var out []models.MovieCast
	for _, cast := range s.m.casts {
		if filter(cast) {
			cp := *cast
			if movie, ok := s.m.movies[cast.MovieID]; ok {
				mcp := *movie
				cp.Movie = &mcp
			}
			if actor, ok := s.m.actors[cast.ActorID]; ok {
				acp := *actor
				cp.Actor = &acp
			}
			out = append(out, cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *memCastStore) ListByActor(_ context.Context, actorID string) ([]models.MovieCast, error) {
	return s.sorted(func(c *models.MovieCast) bool { return c.ActorID == actorID }), nil
}

func (s *memCastStore) ListByMovie(_ context.Context, movieID string) ([]models.MovieCast, error) {
	return s.sorted(func(c *models.MovieCast) bool { return c.MovieID == movieID }), nil
}

func (s *memCastStore) ListByMovies(_ context.Context, movieIDs []string) ([]models.MovieCast, error) {
	wanted := make(map[string]struct{}, len(movieIDs))
	for _, id := range movieIDs {
		wanted[id] = struct{}{}
	}
	return s.sorted(func(c *models.MovieCast) bool {
		_, ok := wanted[c.MovieID]
		return ok
	}), nil
}

func (s *memCastStore) FindByMovieAndActor(_ context.Context, movieID, actorID string) (*models.MovieCast, error) {
	for _, cast := range s.m.casts {
		if cast.MovieID == movieID && cast.ActorID == actorID {
			cp := *cast
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *memCastStore) FindByIDAndMovie(_ context.Context, castID, movieID string) (*models.MovieCast, error) {
	if cast, ok := s.m.casts[castID]; ok && cast.MovieID == movieID {
		cp := *cast
		return &cp, nil
	}
	return nil, apperrors.NotFound("Cast entry not found")
}

func (s *memCastStore) Create(_ context.Context, cast *models.MovieCast) error {
	for _, existing := range s.m.casts {
		if existing.MovieID == cast.MovieID && existing.ActorID == cast.ActorID {
			return apperrors.Conflict("duplicate cast pairing")
		}
	}
	if cast.ID == "" {
		cast.ID = s.m.nextID()
	}
	cp := *cast
	s.m.casts[cast.ID] = &cp
	return nil
}

func (s *memCastStore) Save(_ context.Context, cast *models.MovieCast) error {
	cp := *cast
	cp.Movie = nil
	cp.Actor = nil
	cp.UpdatedAt = time.Now()
	s.m.casts[cast.ID] = &cp
	return nil
}

func (s *memCastStore) Delete(_ context.Context, id string) error {
	delete(s.m.casts, id)
	return nil
}

func (s *memCastStore) DeleteByActor(_ context.Context, actorID string) error {
	for id, cast := range s.m.casts {
		if cast.ActorID == actorID {
			delete(s.m.casts, id)
		}
	}
	return nil
}

func (s *memCastStore) DeleteByMovie(_ context.Context, movieID string) error {
	for id, cast := range s.m.casts {
		if cast.MovieID == movieID {
			delete(s.m.casts, id)
		}
	}
	return nil
}

type memGenreStore struct{ m *memStores }

func (s *memGenreStore) List(context.Context) ([]models.Genre, error) {
	out := make([]models.Genre, 0, len(s.m.genres))
	for _, genre := range s.m.genres {
		out = append(out, *genre)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *memGenreStore) FindByIDs(_ context.Context, ids []string) ([]models.Genre, error) {
	var out []models.Genre
	for _, id := range ids {
		if genre, ok := s.m.genres[id]; ok {
			out = append(out, *genre)
		}
	}
	return out, nil
}

type memCalcLogStore struct{ m *memStores }

func (s *memCalcLogStore) Create(_ context.Context, log *models.CalculationLog) error {
	if log.ID == "" {
		log.ID = s.m.nextID()
	}
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now()
	}
	cp := *log
	s.m.logs = append(s.m.logs, &cp)
	return nil
}

func (s *memCalcLogStore) ListByMovie(_ context.Context, movieID string) ([]models.CalculationLog, error) {
	var out []models.CalculationLog
	for i := len(s.m.logs) - 1; i >= 0; i-- {
		if s.m.logs[i].MovieID == movieID {
			out = append(out, *s.m.logs[i])
		}
	}
	return out, nil
}

func (s *memCalcLogStore) ListByMovieAndCreator(_ context.Context, movieID, username string) ([]models.CalculationLog, error) {
	var out []models.CalculationLog
	for i := len(s.m.logs) - 1; i >= 0; i-- {
		if s.m.logs[i].MovieID == movieID && s.m.logs[i].CreatedBy == username {
			out = append(out, *s.m.logs[i])
		}
	}
	return out, nil
}

func (s *memCalcLogStore) DeleteByMovie(_ context.Context, movieID string) error {
	kept := s.m.logs[:0]
	for _, log := range s.m.logs {
		if log.MovieID != movieID {
			kept = append(kept, log)
		}
	}
	s.m.logs = kept
	return nil
}

func (s *memCalcLogStore) DeleteByMovieAndCreator(_ context.Context, movieID, username string) error {
	kept := s.m.logs[:0]
	for _, log := range s.m.logs {
		if log.MovieID != movieID || log.CreatedBy != username {
			kept = append(kept, log)
		}
	}
	s.m.logs = kept
	return nil
}

func (s *memCalcLogStore) DeleteOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	var deleted int64
	kept := s.m.logs[:0]
	for _, log := range s.m.logs {
		if log.CreatedAt.Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, log)
	}
	s.m.logs = kept
	return deleted, nil
}

type memUserStore struct{ m *memStores }

func (s *memUserStore) List(context.Context) ([]models.User, error) {
	out := make([]models.User, 0, len(s.m.users))
	for _, user := range s.m.users {
		out = append(out, *user)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

func (s *memUserStore) FindByUsername(_ context.Context, username string) (*models.User, error) {
	if user, ok := s.m.users[username]; ok {
		cp := *user
		return &cp, nil
	}
	return nil, apperrors.NotFound("User not found")
}

func (s *memUserStore) ExistsByUsername(_ context.Context, username string) (bool, error) {
	_, ok := s.m.users[username]
	return ok, nil
}

func (s *memUserStore) Create(_ context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = s.m.nextID()
	}
	cp := *user
	s.m.users[user.Username] = &cp
	return nil
}

func (s *memUserStore) ReplaceRoles(_ context.Context, user *models.User, roles []models.Role) error {
	if stored, ok := s.m.users[user.Username]; ok {
		stored.Roles = roles
	}
	return nil
}

func (s *memUserStore) FindRoleByName(_ context.Context, name models.RoleName) (*models.Role, error) {
	if role, ok := s.m.roles[name]; ok {
		cp := *role
		return &cp, nil
	}
	return nil, apperrors.NotFound("Role not found")
}

func (s *memUserStore) FindRolesByNames(_ context.Context, names []models.RoleName) ([]models.Role, error) {
	seen := make(map[models.RoleName]struct{}, len(names))
	var out []models.Role
	for _, name := range names {
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		if role, ok := s.m.roles[name]; ok {
			out = append(out, *role)
		}
	}
	return out, nil
}
