package transaction

import (
	"context"
	"errors"
	"strings"

	"github.com/IykeSol/iykesol-crypto-bank/internal/domain/apperr"
	"github.com/IykeSol/iykesol-crypto-bank/internal/domain/event"
	domain "github.com/IykeSol/iykesol-crypto-bank/internal/domain/transaction"
	"github.com/IykeSol/iykesol-crypto-bank/internal/domain/user"

	"gorm.io/gorm"
)

const storeUnavailable = "ledger store unavailable"

type Usecase struct {
	txRepo domain.Repository
	events event.Publisher
}

func NewUsecase(txs domain.Repository, events event.Publisher) *Usecase {
	if events == nil {
		events = event.Nop{}
	}
	return &Usecase{txRepo: txs, events: events}
}

// Log records a transfer the user performed from their own wallet.
func (u *Usecase) Log(ctx context.Context, caller *user.User, in LogInput) (*domain.Transaction, error) {
	if !in.Type.UserLoggable() {
		return nil, domain.ErrInvalidType
	}
	status := in.Status
	switch status {
	case "":
		status = domain.StatusConfirmed
	case domain.StatusPending, domain.StatusConfirmed:
	default:
		return nil, domain.ErrInvalidStatus
	}
	if !in.Amount.IsPositive() {
		return nil, apperr.Validation("amount must be greater than zero")
	}

	rec := &domain.Transaction{
		TxHash:      strings.TrimSpace(in.TxHash),
		UserID:      caller.UserID,
		FromAddress: user.NormalizeAddress(in.From),
		ToAddress:   user.NormalizeAddress(in.To),
		Amount:      in.Amount,
		BurnAmount:  in.BurnAmount,
		BlockNumber: in.BlockNumber,
		Status:      status,
		Type:        in.Type,
		Metadata:    in.Metadata,
	}
	if err := u.txRepo.Create(ctx, rec); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrDuplicateHash
		}
		return nil, apperr.OrExternal(err, storeUnavailable)
	}

	event.Emit(ctx, u.events, event.TransactionStream, event.TransactionLogged, event.TransactionEvent{
		TxHash: rec.TxHash,
		UserID: rec.UserID,
		Type:   string(rec.Type),
		Status: string(rec.Status),
	})
	return rec, nil
}

// List pages through the caller's records, newest first. page is 1-based.
func (u *Usecase) List(ctx context.Context, caller *user.User, page, limit int) (*Page, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	rows, total, err := u.txRepo.ListByUser(ctx, caller.UserID, (page-1)*limit, limit)
	if err != nil {
		return nil, apperr.OrExternal(err, storeUnavailable)
	}
	if rows == nil {
		rows = []domain.Transaction{}
	}
	return &Page{
		Transactions: rows,
		Total:        total,
		TotalPages:   (total + int64(limit) - 1) / int64(limit),
		CurrentPage:  page,
	}, nil
}

func (u *Usecase) Get(ctx context.Context, caller *user.User, txHash string) (*domain.Transaction, error) {
	rec, err := u.txRepo.GetByTxHashForUser(ctx, strings.TrimSpace(txHash), caller.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, apperr.OrExternal(err, storeUnavailable)
	}
	return rec, nil
}
