package balance

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/IykeSol/iykesol-crypto-bank/internal/domain/apperr"
	domain "github.com/IykeSol/iykesol-crypto-bank/internal/domain/balance"
	"github.com/IykeSol/iykesol-crypto-bank/internal/domain/chain"
	"github.com/IykeSol/iykesol-crypto-bank/internal/domain/user"

	"gorm.io/gorm"
)

const DefaultTTL = 30 * time.Second

type Usecase struct {
	balanceRepo domain.Repository
	chain       chain.Reader
	ttl         time.Duration
	now         func() time.Time
}

func NewUsecase(balances domain.Repository, reader chain.Reader, ttl time.Duration) *Usecase {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Usecase{balanceRepo: balances, chain: reader, ttl: ttl, now: time.Now}
}

// Get returns the cached balance of address while it is fresh, otherwise
// reads it from the token contract and refreshes the cache.
func (u *Usecase) Get(ctx context.Context, caller *user.User, address string) (*domain.Balance, error) {
	addr := user.NormalizeAddress(address)
	now := u.now().UTC()

	cached, err := u.balanceRepo.GetByWallet(ctx, addr)
	switch {
	case err == nil && cached.Fresh(now, u.ttl):
		return cached, nil
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, apperr.OrExternal(err, "ledger store unavailable")
	}

	raw, err := u.chain.BalanceOf(ctx, addr)
	if err != nil {
		return nil, apperr.External("blockchain unavailable", err)
	}
	block, err := u.chain.BlockNumber(ctx)
	if err != nil {
		slog.WarnContext(ctx, "block number lookup failed", "wallet", addr, "err", err)
		if cached != nil {
			block = cached.LastSyncedBlock
		}
	}

	b := &domain.Balance{
		UserID:          caller.UserID,
		WalletAddress:   addr,
		Balance:         raw.String(),
		LastSyncedBlock: block,
		UpdatedAt:       now,
	}
	if cached != nil && cached.UserID != "" {
		b.UserID = cached.UserID
	}
	if err := u.balanceRepo.Upsert(ctx, b); err != nil {
		return nil, apperr.OrExternal(err, "ledger store unavailable")
	}
	return b, nil
}
