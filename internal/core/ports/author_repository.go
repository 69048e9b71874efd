package ports

import (
	"context"
	"time"

	"github.com/biblioteca/library-system/internal/core/domain"
)

type AuthorUpdate struct {
	Name        *string
	Nationality *string
	BirthDate   *time.Time
	Biography   *string
}

type AuthorRepository interface {
	Create(ctx context.Context, author *domain.Author) (*domain.Author, error)
	FindByID(ctx context.Context, id int64) (*domain.Author, error)
	FindAll(ctx context.Context) ([]*domain.Author, error)
	Update(ctx context.Context, id int64, cmd AuthorUpdate) (*domain.Author, error)
	Delete(ctx context.Context, id int64) error
}
