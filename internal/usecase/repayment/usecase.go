package repayment

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

	"github.com/shopspring/decimal"
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

func NewUsecase(loans domainLoan.Repository, users user.Repository, tx uow.UnitOfWork, reader chain.Reader, events event.Publisher, opts Options) *Usecase {
	if events == nil {
		events = event.Nop{}
	}
	return &Usecase{loanRepo: loans, userRepo: users, uow: tx, chain: reader, events: events, opts: opts, now: time.Now}
}

// recipient is the approving admin's wallet, else the configured treasury.
func (u *Usecase) recipient(ctx context.Context, users user.Repository, l *domainLoan.Loan) (string, error) {
	if l.ApprovedBy != nil {
		approver, err := users.GetByUserID(ctx, *l.ApprovedBy)
		switch {
		case err == nil && approver.Wallet() != "":
			return approver.Wallet(), nil
		case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
			return "", err
		}
	}
	if u.opts.AdminWallet != "" {
		return u.opts.AdminWallet, nil
	}
	return "", domainLoan.ErrNoRepaymentWallet
}

// Initiate proposes a repayment transfer. Nothing is written.
func (u *Usecase) Initiate(ctx context.Context, payer *user.User, loanID string, amount decimal.Decimal) (*domainLoan.TransferProposal, error) {
	l, err := u.loanRepo.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, ucLoan.MapStoreErr(err)
	}
	if err := l.CheckPaymentIntent(payer.UserID, amount); err != nil {
		return nil, err
	}
	to, err := u.recipient(ctx, u.userRepo, l)
	if err != nil {
		return nil, apperr.OrExternal(err, "ledger store unavailable")
	}
	return &domainLoan.TransferProposal{LoanID: l.LoanID, Amount: amount, RecipientAddress: to}, nil
}

// Confirm records a repayment the borrower reports as sent and appends it to
// the ledger in the same store transaction.
func (u *Usecase) Confirm(ctx context.Context, payer *user.User, loanID string, amount decimal.Decimal, txHash string) (*domainLoan.Loan, error) {
	txHash = strings.TrimSpace(txHash)
	if txHash == "" {
		return nil, domainLoan.ErrTxHashRequired
	}
	if !amount.IsPositive() {
		return nil, domainLoan.ErrInvalidPayment
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
		if _, err := ucLoan.RecordPaymentTx(ctx, r, l, payer.UserID, amount, txHash, u.now()); err != nil {
			return err
		}
		to, err := u.recipient(ctx, r.Users, l)
		if err != nil && !errors.Is(err, domainLoan.ErrNoRepaymentWallet) {
			return err
		}

		rec := &transaction.Transaction{
			TxHash:      txHash,
			UserID:      payer.UserID,
			FromAddress: payer.Wallet(),
			ToAddress:   to,
			Amount:      amount,
			BlockNumber: blockNumber,
			Status:      transaction.StatusConfirmed,
			Type:        transaction.TypeLoanRepayment,
			Metadata: transaction.Metadata{
				"loanId":           l.LoanID,
				"remainingBalance": l.Remaining().StringFixed(2),
				"isFullyPaid":      l.Status == domainLoan.StatusCompleted,
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

	ucLoan.EmitPayment(ctx, u.events, out, txHash)
	return out, nil
}
