package transaction

import (
	"context"
	"time"
)

type Repository interface {
	// Create fails with a duplicated key error when TxHash already exists.
	Create(ctx context.Context, t *Transaction) error
	GetByTxHash(ctx context.Context, txHash string) (*Transaction, error)
	GetByTxHashForUser(ctx context.Context, txHash, userID string) (*Transaction, error)
	// Newest first, plus the total number of the user's records.
	ListByUser(ctx context.Context, userID string, offset, limit int) ([]Transaction, int64, error)
	ListPendingSince(ctx context.Context, since time.Time) ([]Transaction, error)
	// Moves a pending record to status. Returns false when the record had
	// already been resolved by someone else.
	UpdateStatusIfPending(ctx context.Context, id uint64, status Status, blockNumber *uint64) (bool, error)
	CountSince(ctx context.Context, since time.Time) (int64, error)
}
