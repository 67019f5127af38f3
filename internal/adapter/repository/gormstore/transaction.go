package gormstore

import (
	"context"
	"time"

	txDomain "github.com/IykeSol/iykesol-crypto-bank/internal/domain/transaction"

	"gorm.io/gorm"
)

type TransactionRepository struct{ db *gorm.DB }

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Create(ctx context.Context, t *txDomain.Transaction) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *TransactionRepository) GetByTxHash(ctx context.Context, txHash string) (*txDomain.Transaction, error) {
	var out txDomain.Transaction
	res := r.db.WithContext(ctx).Where("tx_hash = ?", txHash).First(&out)
	return &out, res.Error
}

func (r *TransactionRepository) GetByTxHashForUser(ctx context.Context, txHash, userID string) (*txDomain.Transaction, error) {
	var out txDomain.Transaction
	res := r.db.WithContext(ctx).Where("tx_hash = ? AND user_id = ?", txHash, userID).First(&out)
	return &out, res.Error
}

func (r *TransactionRepository) ListByUser(ctx context.Context, userID string, offset, limit int) ([]txDomain.Transaction, int64, error) {
	var (
		out   []txDomain.Transaction
		total int64
	)
	q := r.db.WithContext(ctx).Model(&txDomain.Transaction{}).Where("user_id = ?", userID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Offset(offset).Limit(limit).
		Find(&out).Error
	return out, total, err
}

func (r *TransactionRepository) ListPendingSince(ctx context.Context, since time.Time) ([]txDomain.Transaction, error) {
	var out []txDomain.Transaction
	err := r.db.WithContext(ctx).
		Where("status = ? AND created_at >= ?", txDomain.StatusPending, since).
		Order("created_at ASC, id ASC").
		Find(&out).Error
	return out, err
}

func (r *TransactionRepository) UpdateStatusIfPending(ctx context.Context, id uint64, status txDomain.Status, blockNumber *uint64) (bool, error) {
	fields := map[string]any{
		"status":     status,
		"updated_at": time.Now().UTC(),
	}
	if blockNumber != nil {
		fields["block_number"] = *blockNumber
	}
	res := r.db.WithContext(ctx).
		Model(&txDomain.Transaction{}).
		Where("id = ? AND status = ?", id, txDomain.StatusPending).
		Updates(fields)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *TransactionRepository) CountSince(ctx context.Context, since time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&txDomain.Transaction{}).Where("created_at >= ?", since).Count(&n).Error
	return n, err
}
