package loan

import (
	"context"
	"errors"
	"time"

	"github.com/IykeSol/iykesol-crypto-bank/internal/domain/apperr"
	"github.com/IykeSol/iykesol-crypto-bank/internal/domain/event"
	"github.com/IykeSol/iykesol-crypto-bank/internal/domain/loan"
	"github.com/IykeSol/iykesol-crypto-bank/internal/domain/uow"
	"github.com/IykeSol/iykesol-crypto-bank/internal/domain/user"
	"github.com/IykeSol/iykesol-crypto-bank/pkg/id"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const storeUnavailable = "ledger store unavailable"

type Usecase struct {
	loans  loan.Repository
	users  user.Repository
	uow    uow.UnitOfWork
	events event.Publisher
	now    func() time.Time
}

func NewUsecase(loans loan.Repository, users user.Repository, tx uow.UnitOfWork, events event.Publisher) *Usecase {
	if events == nil {
		events = event.Nop{}
	}
	return &Usecase{loans: loans, users: users, uow: tx, events: events, now: time.Now}
}

// MapStoreErr maps a missing row to loan.ErrNotFound and any other
// unclassified failure to an External error.
func MapStoreErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return loan.ErrNotFound
	}
	return apperr.OrExternal(err, storeUnavailable)
}

// RequestLoan creates a pending loan. The borrower row is locked for the
// duration of the check so two concurrent requests cannot both pass it.
func (u *Usecase) RequestLoan(ctx context.Context, borrower *user.User, in RequestInput) (*loan.Loan, error) {
	l, err := loan.New(id.NewID32(), borrower.UserID, in.Amount, in.Duration, in.Reason)
	if err != nil {
		return nil, err
	}

	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if _, err := r.Users.GetByUserIDForUpdate(ctx, borrower.UserID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return user.ErrNotFound
			}
			return err
		}
		open, err := r.Loans.GetOpenLoanByBorrowerID(ctx, borrower.UserID)
		switch {
		case err == nil && open != nil:
			return loan.ErrOpenLoanExists
		case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}
		return r.Loans.Create(ctx, l)
	})
	if err != nil {
		return nil, apperr.OrExternal(err, storeUnavailable)
	}

	event.Emit(ctx, u.events, event.LoanStream, event.LoanRequested, LoanEvent(l, ""))
	return l, nil
}

func (u *Usecase) RejectLoan(ctx context.Context, admin *user.User, loanID, reason string) (*loan.Loan, error) {
	if err := user.RequireAdmin(admin); err != nil {
		return nil, err
	}
	var out *loan.Loan
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *loan.Loan) error {
		if err := l.Reject(reason); err != nil {
			return err
		}
		if err := r.Loans.SaveIfStatus(ctx, l, loan.StatusPending); err != nil {
			return err
		}
		out = l
		return nil
	})
	if err != nil {
		return nil, MapStoreErr(err)
	}

	event.Emit(ctx, u.events, event.LoanStream, event.LoanRejected, LoanEvent(out, ""))
	return out, nil
}

// RecordPaymentTx applies a repayment to a loan already locked inside the
// caller's transaction and persists it. It is the only path to completed.
func RecordPaymentTx(ctx context.Context, r uow.Repos, l *loan.Loan, payerID string, amount decimal.Decimal, txHash string, now time.Time) (*loan.Payment, error) {
	p, err := l.ApplyPayment(payerID, amount, txHash, now)
	if err != nil {
		return nil, err
	}
	if err := r.Loans.SaveIfStatus(ctx, l, loan.StatusActive); err != nil {
		return nil, err
	}
	p.LoanID = l.ID
	if err := r.Loans.AddPayment(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// EmitPayment publishes payment_recorded and, when the payment finished the
// loan, completed.
func EmitPayment(ctx context.Context, p event.Publisher, l *loan.Loan, txHash string) {
	event.Emit(ctx, p, event.LoanStream, event.LoanPaymentRecord, LoanEvent(l, txHash))
	if l.Status == loan.StatusCompleted {
		event.Emit(ctx, p, event.LoanStream, event.LoanCompleted, LoanEvent(l, txHash))
	}
}

func (u *Usecase) ListMine(ctx context.Context, borrower *user.User) ([]loan.Loan, error) {
	out, err := u.loans.ListByBorrowerID(ctx, borrower.UserID)
	if err != nil {
		return nil, apperr.OrExternal(err, storeUnavailable)
	}
	if out == nil {
		out = []loan.Loan{}
	}
	return out, nil
}

func (u *Usecase) ListAll(ctx context.Context, admin *user.User) ([]LoanDTO, error) {
	if err := user.RequireAdmin(admin); err != nil {
		return nil, err
	}
	loans, err := u.loans.ListAll(ctx)
	if err != nil {
		return nil, apperr.OrExternal(err, storeUnavailable)
	}

	seen := map[string]struct{}{}
	ids := make([]string, 0, len(loans))
	add := func(s string) {
		if _, ok := seen[s]; !ok && s != "" {
			seen[s] = struct{}{}
			ids = append(ids, s)
		}
	}
	for i := range loans {
		add(loans[i].BorrowerID)
		if loans[i].ApprovedBy != nil {
			add(*loans[i].ApprovedBy)
		}
	}
	users, err := u.users.GetManyByUserIDs(ctx, ids)
	if err != nil {
		return nil, apperr.OrExternal(err, storeUnavailable)
	}
	byID := make(map[string]*user.User, len(users))
	for i := range users {
		byID[users[i].UserID] = &users[i]
	}

	out := make([]LoanDTO, 0, len(loans))
	for i := range loans {
		dto := LoanDTO{Loan: &loans[i], Borrower: byID[loans[i].BorrowerID].Summary()}
		if loans[i].ApprovedBy != nil {
			dto.Approver = byID[*loans[i].ApprovedBy].Summary()
		}
		out = append(out, dto)
	}
	return out, nil
}

// Get returns a loan to its borrower or to an admin.
func (u *Usecase) Get(ctx context.Context, caller *user.User, loanID string) (*loan.Loan, error) {
	l, err := u.loans.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, MapStoreErr(err)
	}
	if !l.IsBorrower(caller.UserID) && !caller.IsAdmin() {
		return nil, loan.ErrNotBorrower
	}
	return l, nil
}

// LoanEvent is the payload shared by every loan event.
func LoanEvent(l *loan.Loan, txHash string) event.LoanEvent {
	return event.LoanEvent{
		LoanID:     l.LoanID,
		BorrowerID: l.BorrowerID,
		Status:     string(l.Status),
		Amount:     l.Amount.StringFixed(2),
		TxHash:     txHash,
	}
}
