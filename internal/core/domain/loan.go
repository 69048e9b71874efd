package domain

import (
	"errors"
	"time"
)

// LoanStatus represents the lifecycle state of a loan.
type LoanStatus string

const (
	LoanActive   LoanStatus = "ACTIVE"
	LoanReturned LoanStatus = "RETURNED"
	LoanLate     LoanStatus = "LATE"
)

var ErrLoanNotFound = errors.New("loan not found")
var ErrLoanAlreadyReturned = errors.New("loan already returned")

// Loan records a book checked out by a borrower. ReturnDate is nil while the
// loan is open.
type Loan struct {
	ID            int64      `json:"id"`
	BookID        int64      `json:"book_id"`
	BorrowerName  string     `json:"borrower_name"`
	BorrowerEmail string     `json:"borrower_email"`
	LoanDate      time.Time  `json:"loan_date"`
	DueDate       time.Time  `json:"due_date"`
	ReturnDate    *time.Time `json:"return_date,omitempty"`
	Status        LoanStatus `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// Open reports whether the loan still has the book out.
func (l *Loan) Open() bool {
	return l.Status != LoanReturned
}
