package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/biblioteca/library-system/internal/core/domain"
	"github.com/biblioteca/library-system/internal/core/ports"
)

type AuthorService struct {
	authors ports.AuthorRepository
	logger  zerolog.Logger
}

func NewAuthorService(authors ports.AuthorRepository, logger zerolog.Logger) *AuthorService {
	return &AuthorService{authors: authors, logger: logger}
}

func (s *AuthorService) List(ctx context.Context) ([]*domain.Author, error) {
	return s.authors.FindAll(ctx)
}

func (s *AuthorService) Get(ctx context.Context, id int64) (*domain.Author, error) {
	return s.authors.FindByID(ctx, id)
}

func (s *AuthorService) Create(ctx context.Context, input ports.CreateAuthorInput) (*domain.Author, error) {
	now := time.Now().UTC()
	author := &domain.Author{
		Name:        input.Name,
		Nationality: input.Nationality,
		BirthDate:   input.BirthDate,
		Biography:   input.Biography,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	created, err := s.authors.Create(ctx, author)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Int64("id", created.ID).Str("name", created.Name).Msg("author created")
	return created, nil
}

func (s *AuthorService) Update(ctx context.Context, id int64, cmd ports.AuthorUpdate) (*domain.Author, error) {
	return s.authors.Update(ctx, id, cmd)
}

func (s *AuthorService) Delete(ctx context.Context, id int64) error {
	return s.authors.Delete(ctx, id)
}
