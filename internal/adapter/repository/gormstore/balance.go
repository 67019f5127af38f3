package gormstore

import (
	"context"

	balanceDomain "github.com/IykeSol/iykesol-crypto-bank/internal/domain/balance"
	userDomain "github.com/IykeSol/iykesol-crypto-bank/internal/domain/user"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BalanceRepository struct{ db *gorm.DB }

func NewBalanceRepository(db *gorm.DB) *BalanceRepository { return &BalanceRepository{db: db} }

func (r *BalanceRepository) GetByWallet(ctx context.Context, address string) (*balanceDomain.Balance, error) {
	var out balanceDomain.Balance
	res := r.db.WithContext(ctx).Where("wallet_address = ?", userDomain.NormalizeAddress(address)).First(&out)
	return &out, res.Error
}

func (r *BalanceRepository) Upsert(ctx context.Context, b *balanceDomain.Balance) error {
	b.WalletAddress = userDomain.NormalizeAddress(b.WalletAddress)
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "wallet_address"}},
		DoUpdates: clause.AssignmentColumns([]string{"user_id", "balance", "last_synced_block", "updated_at"}),
	}).Create(b).Error
}
