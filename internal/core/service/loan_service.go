package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/biblioteca/library-system/internal/core/domain"
	"github.com/biblioteca/library-system/internal/core/ports"
)

const defaultLoanPeriod = 14 * 24 * time.Hour

type LoanService struct {
	loans  ports.LoanRepository
	books  ports.BookRepository
	logger zerolog.Logger
}

func NewLoanService(loans ports.LoanRepository, books ports.BookRepository, logger zerolog.Logger) *LoanService {
	return &LoanService{loans: loans, books: books, logger: logger}
}

func (s *LoanService) List(ctx context.Context) ([]*domain.Loan, error) {
	return s.loans.FindAll(ctx)
}

func (s *LoanService) Get(ctx context.Context, id int64) (*domain.Loan, error) {
	return s.loans.FindByID(ctx, id)
}

// Create checks the book out. The copy is taken off the shelf through the
// store's guarded counter update, so two concurrent loans cannot take the
// last copy twice. If persisting the loan fails the copy is put back.
func (s *LoanService) Create(ctx context.Context, input ports.CreateLoanInput) (*domain.Loan, error) {
	if _, err := s.books.FindByID(ctx, input.BookID); err != nil {
		return nil, err
	}

	if err := s.books.AdjustAvailable(ctx, input.BookID, -1); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	due := input.DueDate
	if due.IsZero() {
		due = now.Add(defaultLoanPeriod)
	}

	loan := &domain.Loan{
		BookID:        input.BookID,
		BorrowerName:  input.BorrowerName,
		BorrowerEmail: input.BorrowerEmail,
		LoanDate:      now,
		DueDate:       due,
		Status:        domain.LoanActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	created, err := s.loans.Create(ctx, loan)
	if err != nil {
		if rbErr := s.books.AdjustAvailable(ctx, input.BookID, 1); rbErr != nil {
			s.logger.Error().Err(rbErr).Int64("book_id", input.BookID).Msg("failed to restore copy after loan create failure")
		}
		return nil, err
	}

	s.logger.Info().Int64("id", created.ID).Int64("book_id", created.BookID).Msg("loan created")
	return created, nil
}

func (s *LoanService) Update(ctx context.Context, id int64, cmd ports.LoanUpdate) (*domain.Loan, error) {
	return s.loans.Update(ctx, id, cmd)
}

// Return closes the loan and puts the copy back on the shelf. Returning an
// already returned loan fails rather than inflating the counter.
func (s *LoanService) Return(ctx context.Context, id int64) (*domain.Loan, error) {
	loan, err := s.loans.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !loan.Open() {
		return nil, domain.ErrLoanAlreadyReturned
	}

	now := time.Now().UTC()
	status := domain.LoanReturned
	updated, err := s.loans.Update(ctx, id, ports.LoanUpdate{ReturnDate: &now, Status: &status})
	if err != nil {
		return nil, err
	}

	if err := s.books.AdjustAvailable(ctx, loan.BookID, 1); err != nil {
		s.logger.Error().Err(err).Int64("book_id", loan.BookID).Msg("failed to restore copy on return")
	}

	return updated, nil
}

// Delete removes the loan record. An open loan releases its copy first.
func (s *LoanService) Delete(ctx context.Context, id int64) error {
	loan, err := s.loans.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.loans.Delete(ctx, id); err != nil {
		return err
	}
	if loan.Open() {
		if err := s.books.AdjustAvailable(ctx, loan.BookID, 1); err != nil {
			s.logger.Error().Err(err).Int64("book_id", loan.BookID).Msg("failed to restore copy on loan delete")
		}
	}
	return nil
}
