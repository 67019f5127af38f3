package loanmock

import (
	"context"
	"time"

	domain "github.com/IykeSol/iykesol-crypto-bank/internal/domain/loan"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// Writes default to a nil error, reads to context.Canceled.
type Repo struct {
	CreateFn                  func(ctx context.Context, l *domain.Loan) error
	GetByLoanIDFn             func(ctx context.Context, loanID string) (*domain.Loan, error)
	GetByLoanIDForUpdateFn    func(ctx context.Context, loanID string) (*domain.Loan, error)
	GetOpenLoanByBorrowerIDFn func(ctx context.Context, borrowerID string) (*domain.Loan, error)
	ListByBorrowerIDFn        func(ctx context.Context, borrowerID string) ([]domain.Loan, error)
	ListAllFn                 func(ctx context.Context) ([]domain.Loan, error)
	ListOverdueFn             func(ctx context.Context, now time.Time) ([]domain.Loan, error)
	SaveIfStatusFn            func(ctx context.Context, l *domain.Loan, expected domain.Status) error
	AddPaymentFn              func(ctx context.Context, p *domain.Payment) error
}

func (m *Repo) Create(ctx context.Context, l *domain.Loan) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}

func (m *Repo) GetByLoanID(ctx context.Context, loanID string) (*domain.Loan, error) {
	if m.GetByLoanIDFn != nil {
		return m.GetByLoanIDFn(ctx, loanID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByLoanIDForUpdate(ctx context.Context, loanID string) (*domain.Loan, error) {
	if m.GetByLoanIDForUpdateFn != nil {
		return m.GetByLoanIDForUpdateFn(ctx, loanID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetOpenLoanByBorrowerID(ctx context.Context, borrowerID string) (*domain.Loan, error) {
	if m.GetOpenLoanByBorrowerIDFn != nil {
		return m.GetOpenLoanByBorrowerIDFn(ctx, borrowerID)
	}
	return nil, context.Canceled
}

func (m *Repo) ListByBorrowerID(ctx context.Context, borrowerID string) ([]domain.Loan, error) {
	if m.ListByBorrowerIDFn != nil {
		return m.ListByBorrowerIDFn(ctx, borrowerID)
	}
	return nil, context.Canceled
}

func (m *Repo) ListAll(ctx context.Context) ([]domain.Loan, error) {
	if m.ListAllFn != nil {
		return m.ListAllFn(ctx)
	}
	return nil, context.Canceled
}

func (m *Repo) ListOverdue(ctx context.Context, now time.Time) ([]domain.Loan, error) {
	if m.ListOverdueFn != nil {
		return m.ListOverdueFn(ctx, now)
	}
	return nil, context.Canceled
}

func (m *Repo) SaveIfStatus(ctx context.Context, l *domain.Loan, expected domain.Status) error {
	if m.SaveIfStatusFn != nil {
		return m.SaveIfStatusFn(ctx, l, expected)
	}
	return nil
}

func (m *Repo) AddPayment(ctx context.Context, p *domain.Payment) error {
	if m.AddPaymentFn != nil {
		return m.AddPaymentFn(ctx, p)
	}
	return nil
}
