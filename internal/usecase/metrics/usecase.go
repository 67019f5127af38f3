package metrics

import (
	"context"
	"math/big"
	"time"

	"github.com/IykeSol/iykesol-crypto-bank/internal/domain/apperr"
	"github.com/IykeSol/iykesol-crypto-bank/internal/domain/chain"
	"github.com/IykeSol/iykesol-crypto-bank/internal/domain/transaction"
	"github.com/IykeSol/iykesol-crypto-bank/internal/domain/user"
)

const maxListedUsers = 100

type Snapshot struct {
	TotalUsers          int64  `json:"totalUsers"`
	Last24hTransactions int64  `json:"last24hTransactions"`
	TotalSupply         string `json:"totalSupply"`
	TotalBurned         string `json:"totalBurned"`
	CirculatingSupply   string `json:"circulatingSupply"`
}

type Usecase struct {
	userRepo user.Repository
	txRepo   transaction.Repository
	chain    chain.Reader
	now      func() time.Time
}

func NewUsecase(users user.Repository, txs transaction.Repository, reader chain.Reader) *Usecase {
	return &Usecase{userRepo: users, txRepo: txs, chain: reader, now: time.Now}
}

func (u *Usecase) Get(ctx context.Context, admin *user.User) (*Snapshot, error) {
	if err := user.RequireAdmin(admin); err != nil {
		return nil, err
	}

	users, err := u.userRepo.Count(ctx)
	if err != nil {
		return nil, apperr.OrExternal(err, "ledger store unavailable")
	}
	recent, err := u.txRepo.CountSince(ctx, u.now().UTC().Add(-24*time.Hour))
	if err != nil {
		return nil, apperr.OrExternal(err, "ledger store unavailable")
	}

	supply, err := u.chain.TotalSupply(ctx)
	if err != nil {
		return nil, apperr.External("blockchain unavailable", err)
	}
	burned, err := u.chain.TotalBurned(ctx)
	if err != nil {
		return nil, apperr.External("blockchain unavailable", err)
	}
	circulating := new(big.Int).Sub(supply, burned)

	return &Snapshot{
		TotalUsers:          users,
		Last24hTransactions: recent,
		TotalSupply:         chain.FormatUnits(supply, chain.TokenDecimals),
		TotalBurned:         chain.FormatUnits(burned, chain.TokenDecimals),
		CirculatingSupply:   chain.FormatUnits(circulating, chain.TokenDecimals),
	}, nil
}

// Users lists the most recent accounts for the admin console.
func (u *Usecase) Users(ctx context.Context, admin *user.User) ([]user.User, error) {
	if err := user.RequireAdmin(admin); err != nil {
		return nil, err
	}
	out, err := u.userRepo.List(ctx, maxListedUsers)
	if err != nil {
		return nil, apperr.OrExternal(err, "ledger store unavailable")
	}
	if out == nil {
		out = []user.User{}
	}
	return out, nil
}
