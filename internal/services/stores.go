package services

import (
	"context"
	"time"

	"filmledger/internal/models"
)

// Stores is the persistence surface the service layer runs on. The gorm
// implementation lives in internal/repositories; tests substitute
// in-memory fakes.
type Stores interface {
	Movies() MovieStore
	Actors() ActorStore
	Casts() CastStore
	Genres() GenreStore
	CalculationLogs() CalculationLogStore
	Users() UserStore

	// InTransaction runs fn against stores bound to one database
	// transaction. Reconciliation and cascading deletes use it so each
	// service call commits or rolls back as a unit.
	InTransaction(ctx context.Context, fn func(Stores) error) error
}

type MovieStore interface {
	List(ctx context.Context) ([]models.Movie, error)
	ListByCreator(ctx context.Context, username string) ([]models.Movie, error)
	Get(ctx context.Context, id string) (*models.Movie, error)
	GetByIDAndCreator(ctx context.Context, id, username string) (*models.Movie, error)
	FindByIDs(ctx context.Context, ids []string) ([]models.Movie, error)
	Create(ctx context.Context, movie *models.Movie) error
	Save(ctx context.Context, movie *models.Movie) error
	ReplaceGenres(ctx context.Context, movie *models.Movie, genres []models.Genre) error
	Delete(ctx context.Context, id string) error
	ListImagePaths(ctx context.Context) ([]string, error)
}

type ActorStore interface {
	List(ctx context.Context) ([]models.Actor, error)
	ListByCreator(ctx context.Context, username string) ([]models.Actor, error)
	Get(ctx context.Context, id string) (*models.Actor, error)
	Create(ctx context.Context, actor *models.Actor) error
	Save(ctx context.Context, actor *models.Actor) error
	Delete(ctx context.Context, id string) error

	ListPhotos(ctx context.Context, actorID string) ([]models.ActorPhoto, error)
	ListPhotosByActors(ctx context.Context, actorIDs []string) ([]models.ActorPhoto, error)
	CreatePhoto(ctx context.Context, photo *models.ActorPhoto) error
	GetPhoto(ctx context.Context, photoID string) (*models.ActorPhoto, error)
	DeletePhoto(ctx context.Context, photoID string) error
	DeletePhotosByActor(ctx context.Context, actorID string) error
	ListPhotoPaths(ctx context.Context) ([]string, error)
}

type CastStore interface {
	ListByActor(ctx context.Context, actorID string) ([]models.MovieCast, error)
	ListByMovie(ctx context.Context, movieID string) ([]models.MovieCast, error)
	ListByMovies(ctx context.Context, movieIDs []string) ([]models.MovieCast, error)
	FindByMovieAndActor(ctx context.Context, movieID, actorID string) (*models.MovieCast, error)
	FindByIDAndMovie(ctx context.Context, castID, movieID string) (*models.MovieCast, error)
	Create(ctx context.Context, cast *models.MovieCast) error
	Save(ctx context.Context, cast *models.MovieCast) error
	Delete(ctx context.Context, id string) error
	DeleteByActor(ctx context.Context, actorID string) error
	DeleteByMovie(ctx context.Context, movieID string) error
}

type GenreStore interface {
	List(ctx context.Context) ([]models.Genre, error)
	FindByIDs(ctx context.Context, ids []string) ([]models.Genre, error)
}

type CalculationLogStore interface {
	Create(ctx context.Context, log *models.CalculationLog) error
	ListByMovie(ctx context.Context, movieID string) ([]models.CalculationLog, error)
	ListByMovieAndCreator(ctx context.Context, movieID, username string) ([]models.CalculationLog, error)
	DeleteByMovie(ctx context.Context, movieID string) error
	DeleteByMovieAndCreator(ctx context.Context, movieID, username string) error
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type UserStore interface {
	List(ctx context.Context) ([]models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	Create(ctx context.Context, user *models.User) error
	ReplaceRoles(ctx context.Context, user *models.User, roles []models.Role) error
	FindRoleByName(ctx context.Context, name models.RoleName) (*models.Role, error)
	FindRolesByNames(ctx context.Context, names []models.RoleName) ([]models.Role, error)
}
