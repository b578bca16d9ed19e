package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type MovieStatus string

const (
	StatusReleased       MovieStatus = "Released"
	StatusPostProduction MovieStatus = "Post Production"
	StatusInProduction   MovieStatus = "In Production"
	StatusPlanned        MovieStatus = "Planned"
	StatusRumored        MovieStatus = "Rumored"
	StatusCanceled       MovieStatus = "Canceled"
)

// MovieStatuses is the closed set of accepted status values. There are no
// transition rules between them.
var MovieStatuses = []MovieStatus{
	StatusReleased,
	StatusPostProduction,
	StatusInProduction,
	StatusPlanned,
	StatusRumored,
	StatusCanceled,
}

func (s MovieStatus) IsValid() bool {
	for _, status := range MovieStatuses {
		if s == status {
			return true
		}
	}

	return false
}

type Movie struct {
	ID          int
	Name        string
	ReleaseDate time.Time
	Score       float64
	Overview    string
	Status      MovieStatus
	Budget      decimal.Decimal
	Revenue     decimal.Decimal
	CreatedAt   time.Time
	Version     int

	Country   Country
	Genres    []Genre
	Actors    []Actor
	Languages []Language
}

// Country is identified by its ISO 3166 alpha-2 or alpha-3 code, stored in
// upper case. The display name is optional.
type Country struct {
	ID   int
	Code string
	Name *string
}

type Genre struct {
	ID   int
	Name string
}

type Actor struct {
	ID   int
	Name string
}

type Language struct {
	ID   int
	Name string
}

// MovieUpdate carries a partial update: a nil field leaves the corresponding
// movie field untouched. Associations cannot be changed after creation.
type MovieUpdate struct {
	Name        *string
	ReleaseDate *time.Time
	Score       *float64
	Overview    *string
	Status      *MovieStatus
	Budget      *decimal.Decimal
	Revenue     *decimal.Decimal
}

// Apply merges the set fields of the update onto the movie, field by field.
func (m *Movie) Apply(update MovieUpdate) {
	if update.Name != nil {
		m.Name = *update.Name
	}
	if update.ReleaseDate != nil {
		m.ReleaseDate = *update.ReleaseDate
	}
	if update.Score != nil {
		m.Score = *update.Score
	}
	if update.Overview != nil {
		m.Overview = *update.Overview
	}
	if update.Status != nil {
		m.Status = *update.Status
	}
	if update.Budget != nil {
		m.Budget = *update.Budget
	}
	if update.Revenue != nil {
		m.Revenue = *update.Revenue
	}
}

type MovieRepository interface {
	GetAll(ctx context.Context, pagination Pagination) ([]*Movie, *Metadata, error)
	GetById(ctx context.Context, id int) (*Movie, error)
	GetByNameAndDate(ctx context.Context, name string, releaseDate time.Time) (*Movie, error)
	Create(ctx context.Context, movie *Movie) error
	Update(ctx context.Context, movie *Movie) error
	Delete(ctx context.Context, id int) error
}
