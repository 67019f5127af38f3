package overdue

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/IykeSol/iykesol-crypto-bank/internal/domain/apperr"
	"github.com/IykeSol/iykesol-crypto-bank/internal/domain/event"
	"github.com/IykeSol/iykesol-crypto-bank/internal/domain/loan"
	"github.com/IykeSol/iykesol-crypto-bank/internal/domain/uow"
	ucLoan "github.com/IykeSol/iykesol-crypto-bank/internal/usecase/loan"
)

// Usecase moves active loans past their due date to defaulted.
type Usecase struct {
	loanRepo loan.Repository
	uow      uow.UnitOfWork
	events   event.Publisher
	now      func() time.Time
}

func NewUsecase(loans loan.Repository, tx uow.UnitOfWork, events event.Publisher) *Usecase {
	if events == nil {
		events = event.Nop{}
	}
	return &Usecase{loanRepo: loans, uow: tx, events: events, now: time.Now}
}

// RunOnce returns how many loans were defaulted. One loan failing does not
// stop the others.
func (u *Usecase) RunOnce(ctx context.Context) (int, error) {
	now := u.now().UTC()
	due, err := u.loanRepo.ListOverdue(ctx, now)
	if err != nil {
		return 0, apperr.OrExternal(err, "ledger store unavailable")
	}

	n := 0
	for _, candidate := range due {
		var out *loan.Loan
		err := u.uow.WithinLoanTx(ctx, candidate.LoanID, func(r uow.Repos, l *loan.Loan) error {
			if err := l.MarkDefaulted(now); err != nil {
				return err
			}
			if err := r.Loans.SaveIfStatus(ctx, l, loan.StatusActive); err != nil {
				return err
			}
			out = l
			return nil
		})
		if err != nil {
			// paid off or changed since the scan
			if errors.Is(err, loan.ErrNotActive) || errors.Is(err, loan.ErrNotOverdue) || errors.Is(err, loan.ErrStaleState) {
				continue
			}
			slog.ErrorContext(ctx, "mark defaulted failed", "loan_id", candidate.LoanID, "err", err)
			continue
		}
		n++
		slog.InfoContext(ctx, "loan defaulted", "loan_id", out.LoanID, "borrower_id", out.BorrowerID)
		event.Emit(ctx, u.events, event.LoanStream, event.LoanDefaulted, ucLoan.LoanEvent(out, ""))
	}
	return n, nil
}
