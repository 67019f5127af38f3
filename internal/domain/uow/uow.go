package uow

import (
	"context"

	"github.com/IykeSol/iykesol-crypto-bank/internal/domain/loan"
	"github.com/IykeSol/iykesol-crypto-bank/internal/domain/transaction"
	"github.com/IykeSol/iykesol-crypto-bank/internal/domain/user"
)

// Repos are bound to the same store transaction.
type Repos struct {
	Loans        loan.Repository
	Transactions transaction.Repository
	Users        user.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// lock the loan row first, then pass it in
	WithinLoanTx(ctx context.Context, loanID string, fn func(r Repos, l *loan.Loan) error) error
}
