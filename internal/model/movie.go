package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Ratings travel as JSON numbers, matching the request payloads.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// Movie is a catalogue entry. It is independent of users.
type Movie struct {
	ID          uint                `json:"id" gorm:"primaryKey"`
	Title       string              `json:"title" gorm:"size:255;not null;index"`
	Playtime    int                 `json:"playtime" gorm:"not null"` // minutes
	Genre       string              `json:"genre" gorm:"size:50;index"`
	ReleaseYear int                 `json:"release_year,omitempty" gorm:"index"`
	Rating      decimal.NullDecimal `json:"rating" gorm:"type:decimal(3,1)"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// MoviePatch carries the fields of a partial update. Nil fields are left untouched.
type MoviePatch struct {
	Title       *string
	Playtime    *int
	Genre       *string
	ReleaseYear *int
	Rating      *decimal.Decimal
}

// Apply copies the present fields onto m.
func (p MoviePatch) Apply(m *Movie) {
	if p.Title != nil {
		m.Title = *p.Title
	}
	if p.Playtime != nil {
		m.Playtime = *p.Playtime
	}
	if p.Genre != nil {
		m.Genre = *p.Genre
	}
	if p.ReleaseYear != nil {
		m.ReleaseYear = *p.ReleaseYear
	}
	if p.Rating != nil {
		m.Rating = decimal.NewNullDecimal(*p.Rating)
	}
}

// MovieFilter narrows a movie listing by equality. Nil fields are ignored.
type MovieFilter struct {
	Title       *string
	Genre       *string
	ReleaseYear *int
}

// Conditions returns the column/value pairs of the present fields.
func (f MovieFilter) Conditions() map[string]interface{} {
	conds := map[string]interface{}{}
	if f.Title != nil {
		conds["title"] = *f.Title
	}
	if f.Genre != nil {
		conds["genre"] = *f.Genre
	}
	if f.ReleaseYear != nil {
		conds["release_year"] = *f.ReleaseYear
	}
	return conds
}
