package ports

import (
	"context"
	"time"

	"github.com/biblioteca/library-system/internal/core/domain"
)

type LoanUpdate struct {
	BorrowerName  *string
	BorrowerEmail *string
	DueDate       *time.Time
	ReturnDate    *time.Time
	Status        *domain.LoanStatus
}

// LoanRepository persists loans. MarkOverdue flips every ACTIVE loan whose
// due date has passed to LATE and reports how many rows changed.
type LoanRepository interface {
	Create(ctx context.Context, loan *domain.Loan) (*domain.Loan, error)
	FindByID(ctx context.Context, id int64) (*domain.Loan, error)
	FindAll(ctx context.Context) ([]*domain.Loan, error)
	Update(ctx context.Context, id int64, cmd LoanUpdate) (*domain.Loan, error)
	Delete(ctx context.Context, id int64) error
	MarkOverdue(ctx context.Context, asOf time.Time) (int64, error)
}
