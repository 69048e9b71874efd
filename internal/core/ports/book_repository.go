package ports

import (
	"context"

	"github.com/biblioteca/library-system/internal/core/domain"
)

type BookUpdate struct {
	Title           *string
	ISBN            *string
	PublicationYear *int
	Genre           *string
	TotalCopies     *int
	AvailableCopies *int
	AuthorID        *int64
}

// BookRepository persists catalog books. AdjustAvailable applies a relative
// change to available_copies and fails with domain.ErrNoCopiesAvailable when
// the result would go negative; the guard lives in the UPDATE itself so
// concurrent loans cannot oversell a title.
type BookRepository interface {
	Create(ctx context.Context, book *domain.Book) (*domain.Book, error)
	FindByID(ctx context.Context, id int64) (*domain.Book, error)
	FindAll(ctx context.Context) ([]*domain.Book, error)
	Update(ctx context.Context, id int64, cmd BookUpdate) (*domain.Book, error)
	Delete(ctx context.Context, id int64) error
	AdjustAvailable(ctx context.Context, id int64, delta int) error
}
