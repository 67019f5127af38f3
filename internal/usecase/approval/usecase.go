package approval

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/IykeSol/iykesol-crypto-bank/internal/domain/apperr"
	"github.com/IykeSol/iykesol-crypto-bank/internal/domain/chain"
	"github.com/IykeSol/iykesol-crypto-bank/internal/domain/event"
	domainLoan "github.com/IykeSol/iykesol-crypto-bank/internal/domain/loan"
	"github.com/IykeSol/iykesol-crypto-bank/internal/domain/transaction"
	"github.com/IykeSol/iykesol-crypto-bank/internal/domain/uow"
	"github.com/IykeSol/iykesol-crypto-bank/internal/domain/user"
	ucLoan "github.com/IykeSol/iykesol-crypto-bank/internal/usecase/loan"

	"gorm.io/gorm"
)

type Usecase struct {
	loanRepo domainLoan.Repository
	userRepo user.Repository
	uow      uow.UnitOfWork
	chain    chain.Reader
	events   event.Publisher
	opts     Options
	now      func() time.Time
}

// NewUsecase: reader may be nil unless opts.VerifyConfirmations is set.
func NewUsecase(loans domainLoan.Repository, users user.Repository, tx uow.UnitOfWork, reader chain.Reader, events event.Publisher, opts Options) *Usecase {
	if events == nil {
		events = event.Nop{}
	}
	return &Usecase{loanRepo: loans, userRepo: users, uow: tx, chain: reader, events: events, opts: opts, now: time.Now}
}

// Approve proposes the disbursement transfer. Nothing is written, so calling
// it twice returns the same proposal.
func (u *Usecase) Approve(ctx context.Context, admin *user.User, loanID string) (*domainLoan.TransferProposal, error) {
	if err := user.RequireAdmin(admin); err != nil {
		return nil, err
	}
	l, err := u.loanRepo.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, ucLoan.MapStoreErr(err)
	}
	if l.Status != domainLoan.StatusPending {
		return nil, domainLoan.ErrAlreadyProcessed
	}

	borrower, err := u.userRepo.GetByUserID(ctx, l.BorrowerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainLoan.ErrNoBorrowerWallet
		}
		return nil, apperr.OrExternal(err, "ledger store unavailable")
	}
	if borrower.Wallet() == "" {
		return nil, domainLoan.ErrNoBorrowerWallet
	}

	return &domainLoan.TransferProposal{
		LoanID:           l.LoanID,
		Amount:           l.Amount,
		RecipientAddress: borrower.Wallet(),
	}, nil
}

// ConfirmApproval activates a pending loan once the admin reports the
// disbursement hash, and appends the disbursement to the ledger in the same
// store transaction.
func (u *Usecase) ConfirmApproval(ctx context.Context, admin *user.User, loanID, txHash string) (*domainLoan.Loan, error) {
	if err := user.RequireAdmin(admin); err != nil {
		return nil, err
	}
	txHash = strings.TrimSpace(txHash)
	if txHash == "" {
		return nil, domainLoan.ErrTxHashRequired
	}

	var blockNumber *uint64
	if u.opts.VerifyConfirmations {
		v, err := chain.Verify(ctx, u.chain, chain.ClaimedTransfer{TxHash: txHash})
		if err != nil {
			return nil, err
		}
		blockNumber = &v.BlockNumber
	}

	var out *domainLoan.Loan
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *domainLoan.Loan) error {
		if err := l.Activate(admin.UserID, txHash, u.now()); err != nil {
			return err
		}
		if err := r.Loans.SaveIfStatus(ctx, l, domainLoan.StatusPending); err != nil {
			return err
		}

		borrower, err := r.Users.GetByUserID(ctx, l.BorrowerID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		from := admin.Wallet()
		if from == "" {
			from = u.opts.AdminWallet
		}

		rec := &transaction.Transaction{
			TxHash:      txHash,
			UserID:      l.BorrowerID,
			FromAddress: from,
			ToAddress:   borrower.Wallet(),
			Amount:      l.Amount,
			BlockNumber: blockNumber,
			Status:      transaction.StatusConfirmed,
			Type:        transaction.TypeLoanDisbursement,
			Metadata: transaction.Metadata{
				"loanId":       l.LoanID,
				"dueDate":      l.DueDate.UTC().Format(time.RFC3339),
				"interestRate": l.InterestRate.String(),
			},
		}
		if err := r.Transactions.Create(ctx, rec); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return transaction.ErrDuplicateHash
			}
			return err
		}
		out = l
		return nil
	})
	if err != nil {
		return nil, ucLoan.MapStoreErr(err)
	}

	event.Emit(ctx, u.events, event.LoanStream, event.LoanActivated, ucLoan.LoanEvent(out, txHash))
	return out, nil
}
