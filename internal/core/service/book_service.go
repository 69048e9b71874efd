package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/biblioteca/library-system/internal/core/domain"
	"github.com/biblioteca/library-system/internal/core/ports"
)

type BookService struct {
	books   ports.BookRepository
	authors ports.AuthorRepository
	logger  zerolog.Logger
}

func NewBookService(books ports.BookRepository, authors ports.AuthorRepository, logger zerolog.Logger) *BookService {
	return &BookService{books: books, authors: authors, logger: logger}
}

func (s *BookService) List(ctx context.Context) ([]*domain.Book, error) {
	return s.books.FindAll(ctx)
}

func (s *BookService) Get(ctx context.Context, id int64) (*domain.Book, error) {
	return s.books.FindByID(ctx, id)
}

// Create adds a catalog entry. New books start with all copies on the shelf.
func (s *BookService) Create(ctx context.Context, input ports.CreateBookInput) (*domain.Book, error) {
	if input.AuthorID != nil {
		if _, err := s.authors.FindByID(ctx, *input.AuthorID); err != nil {
			if errors.Is(err, domain.ErrAuthorNotFound) {
				return nil, domain.ErrAuthorNotFound
			}
			return nil, err
		}
	}

	now := time.Now().UTC()
	book := &domain.Book{
		Title:           input.Title,
		ISBN:            input.ISBN,
		PublicationYear: input.PublicationYear,
		Genre:           input.Genre,
		TotalCopies:     input.TotalCopies,
		AvailableCopies: input.TotalCopies,
		AuthorID:        input.AuthorID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	created, err := s.books.Create(ctx, book)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Int64("id", created.ID).Str("title", created.Title).Msg("book created")
	return created, nil
}

func (s *BookService) Update(ctx context.Context, id int64, cmd ports.BookUpdate) (*domain.Book, error) {
	if cmd.AuthorID != nil {
		if _, err := s.authors.FindByID(ctx, *cmd.AuthorID); err != nil {
			return nil, err
		}
	}
	return s.books.Update(ctx, id, cmd)
}

func (s *BookService) Delete(ctx context.Context, id int64) error {
	return s.books.Delete(ctx, id)
}
