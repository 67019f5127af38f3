package reconcile

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/IykeSol/iykesol-crypto-bank/internal/domain/apperr"
	"github.com/IykeSol/iykesol-crypto-bank/internal/domain/chain"
	"github.com/IykeSol/iykesol-crypto-bank/internal/domain/event"
	"github.com/IykeSol/iykesol-crypto-bank/internal/domain/transaction"
	"github.com/IykeSol/iykesol-crypto-bank/internal/domain/user"

	"gorm.io/gorm"
)

type Usecase struct {
	txRepo transaction.Repository
	chain  chain.Reader
	events event.Publisher
	opts   Options
	now    func() time.Time
}

func NewUsecase(txs transaction.Repository, reader chain.Reader, events event.Publisher, opts Options) *Usecase {
	if events == nil {
		events = event.Nop{}
	}
	if opts.Window <= 0 {
		opts.Window = DefaultWindow
	}
	if opts.Policy == "" {
		opts.Policy = PolicyFail
	}
	return &Usecase{txRepo: txs, chain: reader, events: events, opts: opts, now: time.Now}
}

// RunOnce resolves every pending record created inside the window. A failure
// on one record is logged and counted; the scan carries on.
func (u *Usecase) RunOnce(ctx context.Context) (Summary, error) {
	var sum Summary
	pending, err := u.txRepo.ListPendingSince(ctx, u.now().UTC().Add(-u.opts.Window))
	if err != nil {
		return sum, apperr.OrExternal(err, "ledger store unavailable")
	}

	for i := range pending {
		if ctx.Err() != nil {
			return sum, ctx.Err()
		}
		rec := &pending[i]
		sum.Scanned++

		status, block := u.decide(ctx, rec)
		if status == transaction.StatusPending {
			sum.Pending++
			continue
		}
		applied, err := u.apply(ctx, rec, status, block)
		switch {
		case err != nil:
			sum.Errors++
			slog.ErrorContext(ctx, "reconcile update failed", "tx_hash", rec.TxHash, "err", err)
		case !applied:
			sum.Skipped++
		case status == transaction.StatusConfirmed:
			sum.Confirmed++
		default:
			sum.Failed++
		}
	}

	if sum.Scanned > 0 {
		slog.InfoContext(ctx, "reconcile pass done",
			"scanned", sum.Scanned, "confirmed", sum.Confirmed, "failed", sum.Failed,
			"pending", sum.Pending, "errors", sum.Errors)
	}
	return sum, nil
}

// CheckStatus runs the same check for one record owned by requester and
// returns it with its current status.
func (u *Usecase) CheckStatus(ctx context.Context, requester *user.User, txHash string) (*transaction.Transaction, error) {
	txHash = strings.TrimSpace(txHash)
	rec, err := u.txRepo.GetByTxHashForUser(ctx, txHash, requester.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, transaction.ErrNotFound
		}
		return nil, apperr.OrExternal(err, "ledger store unavailable")
	}
	if rec.Resolved() {
		return rec, nil
	}

	status, block := u.decide(ctx, rec)
	if status == transaction.StatusPending {
		return rec, nil
	}
	applied, err := u.apply(ctx, rec, status, block)
	if err != nil {
		return nil, apperr.OrExternal(err, "ledger store unavailable")
	}
	if !applied {
		// resolved concurrently, report what was stored
		fresh, err := u.txRepo.GetByTxHash(ctx, txHash)
		if err != nil {
			return nil, apperr.OrExternal(err, "ledger store unavailable")
		}
		return fresh, nil
	}
	return rec, nil
}

// decide maps the receipt to the status the record should move to.
func (u *Usecase) decide(ctx context.Context, rec *transaction.Transaction) (transaction.Status, *uint64) {
	cctx := ctx
	if u.opts.ChainTimeout > 0 {
		var cancel context.CancelFunc
		cctx, cancel = context.WithTimeout(ctx, u.opts.ChainTimeout)
		defer cancel()
	}

	rcpt, err := u.chain.TransactionReceipt(cctx, rec.TxHash)
	switch {
	case err != nil:
		slog.WarnContext(ctx, "receipt lookup failed", "tx_hash", rec.TxHash, "policy", string(u.opts.Policy), "err", err)
		if u.opts.Policy == PolicyKeep {
			return transaction.StatusPending, nil
		}
		return transaction.StatusFailed, nil
	case rcpt == nil:
		return transaction.StatusPending, nil
	case rcpt.Success:
		block := rcpt.BlockNumber
		return transaction.StatusConfirmed, &block
	default:
		block := rcpt.BlockNumber
		return transaction.StatusFailed, &block
	}
}

func (u *Usecase) apply(ctx context.Context, rec *transaction.Transaction, status transaction.Status, block *uint64) (bool, error) {
	ok, err := u.txRepo.UpdateStatusIfPending(ctx, rec.ID, status, block)
	if err != nil || !ok {
		return ok, err
	}
	rec.Status = status
	if block != nil {
		rec.BlockNumber = block
	}
	slog.InfoContext(ctx, "transaction resolved", "tx_hash", rec.TxHash, "status", string(status))
	event.Emit(ctx, u.events, event.TransactionStream, event.TransactionChanged, event.TransactionEvent{
		TxHash: rec.TxHash,
		UserID: rec.UserID,
		Type:   string(rec.Type),
		Status: string(status),
	})
	return true, nil
}
