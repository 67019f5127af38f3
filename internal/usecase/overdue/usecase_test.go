package overdue

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/IykeSol/iykesol-crypto-bank/internal/domain/event"
	"github.com/IykeSol/iykesol-crypto-bank/internal/domain/loan"
	"github.com/IykeSol/iykesol-crypto-bank/internal/domain/uow"
	"github.com/IykeSol/iykesol-crypto-bank/internal/testutil/eventmock"
	"github.com/IykeSol/iykesol-crypto-bank/internal/testutil/loanmock"
	"github.com/IykeSol/iykesol-crypto-bank/internal/testutil/uowmock"

	"github.com/shopspring/decimal"
)

func activeLoan(id string, activatedAt time.Time) *loan.Loan {
	l, _ := loan.New(id, "b1", decimal.NewFromInt(1000), 10, "rent")
	_ = l.Activate("a1", "0xdisb", activatedAt)
	return l
}

func TestUsecase_RunOnce(t *testing.T) {
	now := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	loans := map[string]*loan.Loan{
		"late":    activeLoan("late", now.AddDate(0, 0, -20)),
		"paid":    activeLoan("paid", now.AddDate(0, 0, -20)),
		"raced":   activeLoan("raced", now.AddDate(0, 0, -20)),
		"current": activeLoan("current", now.AddDate(0, 0, -1)),
	}
	// paid off between the scan and the lock
	loans["paid"].Status = loan.StatusCompleted

	repo := &loanmock.Repo{
		ListOverdueFn: func(context.Context, time.Time) ([]loan.Loan, error) {
			return []loan.Loan{*loans["late"], *loans["paid"], *loans["raced"], *loans["current"]}, nil
		},
		GetByLoanIDForUpdateFn: func(_ context.Context, id string) (*loan.Loan, error) {
			return loans[id], nil
		},
		SaveIfStatusFn: func(_ context.Context, l *loan.Loan, expected loan.Status) error {
			if expected != loan.StatusActive {
				t.Fatalf("expected CAS on active, got %s", expected)
			}
			if l.LoanID == "raced" {
				return loan.ErrStaleState
			}
			return nil
		},
	}
	events := &eventmock.Events{}
	uc := NewUsecase(repo, uowmock.Passthrough(uow.Repos{Loans: repo}), events)
	uc.now = func() time.Time { return now }

	n, err := uc.RunOnce(context.Background())
	if err != nil {
		t.Fatalf("RunOnce: %v", err)
	}
	if n != 1 {
		t.Fatalf("defaulted = %d, want 1", n)
	}
	if loans["late"].Status != loan.StatusDefaulted {
		t.Fatalf("late loan status = %s", loans["late"].Status)
	}
	if got := events.Types(); len(got) != 1 || got[0] != event.LoanDefaulted {
		t.Fatalf("events = %v", got)
	}
}

func TestUsecase_RunOnce_ListError(t *testing.T) {
	repo := &loanmock.Repo{
		ListOverdueFn: func(context.Context, time.Time) ([]loan.Loan, error) { return nil, errors.New("db down") },
	}
	uc := NewUsecase(repo, uowmock.New(), nil)
	if _, err := uc.RunOnce(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
}
