package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Genre is immutable reference data assigned many-to-many to movies.
type Genre struct {
	Base
	Name string `gorm:"uniqueIndex;not null" json:"name" validate:"required"`
}

type Movie struct {
	Base
	Title       string          `gorm:"not null" json:"title" validate:"required"`
	Genres      []Genre         `gorm:"many2many:movie_genres" json:"genres,omitempty"`
	ReleaseYear *int            `gorm:"column:release_year" json:"releaseYear,omitempty" validate:"omitempty,min=1900,max=2100"`
	BoxOffice   decimal.Decimal `gorm:"column:box_office;type:numeric(15,2)" json:"boxOffice"`
	Budget      decimal.Decimal `gorm:"type:numeric(15,2)" json:"budget"`
	ImagePath   string          `gorm:"column:image_path" json:"imagePath,omitempty"`
	ImageURL    string          `gorm:"-" json:"imageUrl,omitempty"` // Virtual field
	CreatedBy   string          `gorm:"column:created_by;size:50;index" json:"createdBy"`
	Cast        []MovieCast     `gorm:"foreignKey:MovieID;constraint:OnDelete:CASCADE" json:"cast,omitempty"`
}

// GenresString joins the genre names for list rendering.
func (m *Movie) GenresString() string {
	names := make([]string, 0, len(m.Genres))
	for _, g := range m.Genres {
		names = append(names, g.Name)
	}
	return strings.Join(names, ", ")
}

type Actor struct {
	Base
	Name      string       `gorm:"not null" json:"name" validate:"required"`
	CreatedBy string       `gorm:"column:created_by;size:50;index" json:"createdBy"`
	Photos    []ActorPhoto `gorm:"foreignKey:ActorID;constraint:OnDelete:CASCADE" json:"photos,omitempty"`
}

// MovieCast is the canonical record of one actor's role and salary in
// one movie. At most one row exists per (movie, actor) pair.
type MovieCast struct {
	Base
	MovieID   string              `gorm:"column:movie_id;type:uuid;not null;uniqueIndex:idx_movie_actor" json:"movieId" validate:"required,uuid"`
	Movie     *Movie              `json:"movie,omitempty"`
	ActorID   string              `gorm:"column:actor_id;type:uuid;not null;uniqueIndex:idx_movie_actor" json:"actorId" validate:"required,uuid"`
	Actor     *Actor              `json:"actor,omitempty"`
	RoleName  string              `gorm:"column:role_name;not null" json:"roleName" validate:"required"`
	Salary    decimal.NullDecimal `gorm:"type:numeric(15,2)" json:"salary,omitempty"`
	CreatedBy string              `gorm:"column:created_by;size:50" json:"createdBy"`
}

func (MovieCast) TableName() string {
	return "movie_cast"
}

type ActorPhoto struct {
	Base
	ActorID   string `gorm:"column:actor_id;type:uuid;not null;index" json:"actorId" validate:"required,uuid"`
	Actor     *Actor `json:"actor,omitempty"`
	ImagePath string `gorm:"column:image_path;not null" json:"imagePath" validate:"required"`
	ImageURL  string `gorm:"-" json:"imageUrl,omitempty"` // Virtual field
	IsPrimary bool   `gorm:"column:is_primary;not null;default:false" json:"isPrimary"`
}
