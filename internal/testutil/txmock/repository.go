package txmock

import (
	"context"
	"time"

	domain "github.com/IykeSol/iykesol-crypto-bank/internal/domain/transaction"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies transaction.Repository.
type Repo struct {
	CreateFn                func(ctx context.Context, t *domain.Transaction) error
	GetByTxHashFn           func(ctx context.Context, txHash string) (*domain.Transaction, error)
	GetByTxHashForUserFn    func(ctx context.Context, txHash, userID string) (*domain.Transaction, error)
	ListByUserFn            func(ctx context.Context, userID string, offset, limit int) ([]domain.Transaction, int64, error)
	ListPendingSinceFn      func(ctx context.Context, since time.Time) ([]domain.Transaction, error)
	UpdateStatusIfPendingFn func(ctx context.Context, id uint64, status domain.Status, blockNumber *uint64) (bool, error)
	CountSinceFn            func(ctx context.Context, since time.Time) (int64, error)
}

func (m *Repo) Create(ctx context.Context, t *domain.Transaction) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, t)
	}
	return nil
}

func (m *Repo) GetByTxHash(ctx context.Context, txHash string) (*domain.Transaction, error) {
	if m.GetByTxHashFn != nil {
		return m.GetByTxHashFn(ctx, txHash)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByTxHashForUser(ctx context.Context, txHash, userID string) (*domain.Transaction, error) {
	if m.GetByTxHashForUserFn != nil {
		return m.GetByTxHashForUserFn(ctx, txHash, userID)
	}
	return nil, context.Canceled
}

func (m *Repo) ListByUser(ctx context.Context, userID string, offset, limit int) ([]domain.Transaction, int64, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID, offset, limit)
	}
	return nil, 0, context.Canceled
}

func (m *Repo) ListPendingSince(ctx context.Context, since time.Time) ([]domain.Transaction, error) {
	if m.ListPendingSinceFn != nil {
		return m.ListPendingSinceFn(ctx, since)
	}
	return nil, context.Canceled
}

func (m *Repo) UpdateStatusIfPending(ctx context.Context, id uint64, status domain.Status, blockNumber *uint64) (bool, error) {
	if m.UpdateStatusIfPendingFn != nil {
		return m.UpdateStatusIfPendingFn(ctx, id, status, blockNumber)
	}
	return true, nil
}

func (m *Repo) CountSince(ctx context.Context, since time.Time) (int64, error) {
	if m.CountSinceFn != nil {
		return m.CountSinceFn(ctx, since)
	}
	return 0, context.Canceled
}
