package balance

import (
	"context"
	"time"
)

// Table: balances
//
// A cached snapshot of an on-chain token balance. The chain stays the source
// of truth; rows older than the cache TTL are refetched.
type Balance struct {
	ID              uint64    `gorm:"primaryKey;column:id" json:"-"`
	UserID          string    `gorm:"size:32;index" json:"userId"`
	WalletAddress   string    `gorm:"size:42;not null;uniqueIndex:ux_balances_wallet" json:"walletAddress"`
	Balance         string    `gorm:"size:80;not null" json:"balance"`
	LastSyncedBlock uint64    `json:"lastSyncedBlock"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func (Balance) TableName() string { return "balances" }

func (b *Balance) Fresh(now time.Time, ttl time.Duration) bool {
	return b != nil && now.Sub(b.UpdatedAt) < ttl
}

type Repository interface {
	GetByWallet(ctx context.Context, address string) (*Balance, error)
	// Upsert keyed by wallet address, last write wins.
	Upsert(ctx context.Context, b *Balance) error
}
