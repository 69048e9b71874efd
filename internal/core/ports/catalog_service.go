package ports

import (
	"context"
	"time"

	"github.com/biblioteca/library-system/internal/core/domain"
)

type CreateAuthorInput struct {
	Name        string
	Nationality string
	BirthDate   *time.Time
	Biography   string
}

type AuthorService interface {
	List(ctx context.Context) ([]*domain.Author, error)
	Get(ctx context.Context, id int64) (*domain.Author, error)
	Create(ctx context.Context, input CreateAuthorInput) (*domain.Author, error)
	Update(ctx context.Context, id int64, cmd AuthorUpdate) (*domain.Author, error)
	Delete(ctx context.Context, id int64) error
}

type CreateBookInput struct {
	Title           string
	ISBN            string
	PublicationYear int
	Genre           string
	TotalCopies     int
	AuthorID        *int64
}

type BookService interface {
	List(ctx context.Context) ([]*domain.Book, error)
	Get(ctx context.Context, id int64) (*domain.Book, error)
	Create(ctx context.Context, input CreateBookInput) (*domain.Book, error)
	Update(ctx context.Context, id int64, cmd BookUpdate) (*domain.Book, error)
	Delete(ctx context.Context, id int64) error
}

type CreateLoanInput struct {
	BookID        int64
	BorrowerName  string
	BorrowerEmail string
	DueDate       time.Time
}

// LoanService manages checkouts. Create takes a copy off the shelf and
// Return puts it back; both adjustments go through the book store's guarded
// counter update.
type LoanService interface {
	List(ctx context.Context) ([]*domain.Loan, error)
	Get(ctx context.Context, id int64) (*domain.Loan, error)
	Create(ctx context.Context, input CreateLoanInput) (*domain.Loan, error)
	Update(ctx context.Context, id int64, cmd LoanUpdate) (*domain.Loan, error)
	Return(ctx context.Context, id int64) (*domain.Loan, error)
	Delete(ctx context.Context, id int64) error
}
