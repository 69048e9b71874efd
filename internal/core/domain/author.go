package domain

import (
	"errors"
	"time"
)

var ErrAuthorNotFound = errors.New("author not found")

// Author is a book author in the catalog.
type Author struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Nationality string     `json:"nationality,omitempty"`
	BirthDate   *time.Time `json:"birth_date,omitempty"`
	Biography   string     `json:"biography,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
