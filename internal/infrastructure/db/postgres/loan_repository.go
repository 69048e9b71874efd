package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/biblioteca/library-system/internal/core/domain"
	"github.com/biblioteca/library-system/internal/core/ports"
)

var loanColumns = []string{
	"id", "book_id", "borrower_name", "borrower_email", "loan_date",
	"due_date", "return_date", "status", "created_at", "updated_at",
}

// LoanRepository is the PostgreSQL-backed implementation of
// ports.LoanRepository.
type LoanRepository struct {
	db *sql.DB
}

func NewLoanRepository(db *sql.DB) *LoanRepository {
	return &LoanRepository{db: db}
}

func scanLoan(row sq.RowScanner) (*domain.Loan, error) {
	var l domain.Loan
	err := row.Scan(&l.ID, &l.BookID, &l.BorrowerName, &l.BorrowerEmail,
		&l.LoanDate, &l.DueDate, &l.ReturnDate, &l.Status, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *LoanRepository) Create(ctx context.Context, loan *domain.Loan) (*domain.Loan, error) {
	query, args, err := psql.Insert("loans").
		Columns("book_id", "borrower_name", "borrower_email", "loan_date", "due_date", "status").
		Values(loan.BookID, loan.BorrowerName, loan.BorrowerEmail, loan.LoanDate, loan.DueDate, loan.Status).
		Suffix("RETURNING " + joinColumns(loanColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building insert loan query: %w", err)
	}

	return scanLoan(r.db.QueryRowContext(ctx, query, args...))
}

func (r *LoanRepository) FindByID(ctx context.Context, id int64) (*domain.Loan, error) {
	query, args, err := psql.Select(loanColumns...).
		From("loans").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building select loan query: %w", err)
	}

	loan, err := scanLoan(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrLoanNotFound
	}
	if err != nil {
		return nil, err
	}
	return loan, nil
}

func (r *LoanRepository) FindAll(ctx context.Context) ([]*domain.Loan, error) {
	query, args, err := psql.Select(loanColumns...).
		From("loans").
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building select loans query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var loans []*domain.Loan
	for rows.Next() {
		loan, err := scanLoan(rows)
		if err != nil {
			return nil, err
		}
		loans = append(loans, loan)
	}
	return loans, rows.Err()
}

func (r *LoanRepository) Update(ctx context.Context, id int64, cmd ports.LoanUpdate) (*domain.Loan, error) {
	builder := psql.Update("loans").Set("updated_at", sq.Expr("NOW()"))

	if cmd.BorrowerName != nil {
		builder = builder.Set("borrower_name", *cmd.BorrowerName)
	}
	if cmd.BorrowerEmail != nil {
		builder = builder.Set("borrower_email", *cmd.BorrowerEmail)
	}
	if cmd.DueDate != nil {
		builder = builder.Set("due_date", *cmd.DueDate)
	}
	if cmd.ReturnDate != nil {
		builder = builder.Set("return_date", *cmd.ReturnDate)
	}
	if cmd.Status != nil {
		builder = builder.Set("status", *cmd.Status)
	}

	query, args, err := builder.
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + joinColumns(loanColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building update loan query: %w", err)
	}

	loan, err := scanLoan(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrLoanNotFound
	}
	if err != nil {
		return nil, err
	}
	return loan, nil
}

// MarkOverdue flips ACTIVE loans past their due date to LATE.
func (r *LoanRepository) MarkOverdue(ctx context.Context, asOf time.Time) (int64, error) {
	query, args, err := psql.Update("loans").
		Set("status", domain.LoanLate).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"status": domain.LoanActive}).
		Where(sq.Lt{"due_date": asOf}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("building mark overdue query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *LoanRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := psql.Delete("loans").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("building delete loan query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrLoanNotFound
	}
	return nil
}
