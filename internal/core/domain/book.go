package domain

import (
	"errors"
	"time"
)

var ErrBookNotFound = errors.New("book not found")
var ErrISBNTaken = errors.New("isbn already exists")
var ErrNoCopiesAvailable = errors.New("no copies available")

// Book is a catalog entry. AvailableCopies tracks how many physical copies
// are currently on the shelf; it can never exceed TotalCopies or go negative.
type Book struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	ISBN            string    `json:"isbn,omitempty"`
	PublicationYear int       `json:"publication_year,omitempty"`
	Genre           string    `json:"genre,omitempty"`
	TotalCopies     int       `json:"total_copies"`
	AvailableCopies int       `json:"available_copies"`
	AuthorID        *int64    `json:"author_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
