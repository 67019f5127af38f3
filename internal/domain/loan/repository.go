package loan

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	GetByLoanID(ctx context.Context, loanID string) (*Loan, error)
	// Locks the row until the surrounding transaction ends (no-op on sqlite).
	GetByLoanIDForUpdate(ctx context.Context, loanID string) (*Loan, error)
	// Newest loan of the borrower in one of OpenStatuses.
	GetOpenLoanByBorrowerID(ctx context.Context, borrowerID string) (*Loan, error)
	ListByBorrowerID(ctx context.Context, borrowerID string) ([]Loan, error)
	ListAll(ctx context.Context) ([]Loan, error)
	// Active loans whose due date is before now.
	ListOverdue(ctx context.Context, now time.Time) ([]Loan, error)
	// Compare-and-swap: persists the mutable fields only if the stored status
	// still equals expected, otherwise returns ErrStaleState.
	SaveIfStatus(ctx context.Context, l *Loan, expected Status) error
	AddPayment(ctx context.Context, p *Payment) error
}
