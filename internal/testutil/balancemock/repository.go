package balancemock

import (
	"context"
	"errors"

	domain "github.com/IykeSol/iykesol-crypto-bank/internal/domain/balance"
)

var _ domain.Repository = (*Repo)(nil)

var errUnimplemented = errors.New("balancemock: method not implemented")

type Repo struct {
	GetByWalletFn func(ctx context.Context, address string) (*domain.Balance, error)
	UpsertFn      func(ctx context.Context, b *domain.Balance) error
}

func (m *Repo) GetByWallet(ctx context.Context, address string) (*domain.Balance, error) {
	if m.GetByWalletFn != nil {
		return m.GetByWalletFn(ctx, address)
	}
	return nil, errUnimplemented
}

func (m *Repo) Upsert(ctx context.Context, b *domain.Balance) error {
	if m.UpsertFn != nil {
		return m.UpsertFn(ctx, b)
	}
	return errUnimplemented
}
