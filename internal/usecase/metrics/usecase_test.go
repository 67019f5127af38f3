package metrics

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/IykeSol/iykesol-crypto-bank/internal/domain/user"
	"github.com/IykeSol/iykesol-crypto-bank/internal/testutil/chainmock"
	"github.com/IykeSol/iykesol-crypto-bank/internal/testutil/txmock"
	"github.com/IykeSol/iykesol-crypto-bank/internal/testutil/usermock"
)

func tokens(whole int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(whole), new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil))
}

func TestUsecase_Get(t *testing.T) {
	now := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	var since time.Time
	users := &usermock.Repo{CountFn: func(context.Context) (int64, error) { return 12, nil }}
	txs := &txmock.Repo{CountSinceFn: func(_ context.Context, s time.Time) (int64, error) {
		since = s
		return 4, nil
	}}
	reader := &chainmock.Reader{
		TotalSupplyFn: func(context.Context) (*big.Int, error) { return tokens(1_000_000), nil },
		TotalBurnedFn: func(context.Context) (*big.Int, error) {
			return new(big.Int).Div(tokens(25005), big.NewInt(10)), nil // 2500.5
		},
	}
	uc := NewUsecase(users, txs, reader)
	uc.now = func() time.Time { return now }

	snap, err := uc.Get(context.Background(), &user.User{UserID: "a", Role: user.RoleAdmin})
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if snap.TotalUsers != 12 || snap.Last24hTransactions != 4 || !since.Equal(now.Add(-24*time.Hour)) {
		t.Fatalf("counts wrong: %+v since=%s", snap, since)
	}
	if snap.TotalSupply != "1000000" || snap.TotalBurned != "2500.5" || snap.CirculatingSupply != "997499.5" {
		t.Fatalf("supply figures: %+v", snap)
	}
}

func TestUsecase_Get_RequiresAdmin(t *testing.T) {
	uc := NewUsecase(&usermock.Repo{}, &txmock.Repo{}, &chainmock.Reader{})
	if _, err := uc.Get(context.Background(), &user.User{UserID: "u"}); !errors.Is(err, user.ErrAdminRequired) {
		t.Fatalf("err = %v", err)
	}
	if _, err := uc.Users(context.Background(), &user.User{UserID: "u"}); !errors.Is(err, user.ErrAdminRequired) {
		t.Fatalf("err = %v", err)
	}
}
