package balance

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/IykeSol/iykesol-crypto-bank/internal/domain/apperr"
	domain "github.com/IykeSol/iykesol-crypto-bank/internal/domain/balance"
	"github.com/IykeSol/iykesol-crypto-bank/internal/domain/chain"
	"github.com/IykeSol/iykesol-crypto-bank/internal/domain/user"
	"github.com/IykeSol/iykesol-crypto-bank/internal/testutil/balancemock"
	"github.com/IykeSol/iykesol-crypto-bank/internal/testutil/chainmock"

	"gorm.io/gorm"
)

func TestUsecase_Get(t *testing.T) {
	now := time.Date(2025, 8, 1, 10, 0, 0, 0, time.UTC)
	caller := &user.User{UserID: "u1"}
	onChain := new(big.Int).Mul(big.NewInt(5), new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil))

	tests := []struct {
		name      string
		cached    *domain.Balance
		cacheErr  error
		chainErr  error
		want      string
		wantFetch bool
		wantKind  apperr.Kind
	}{
		{name: "fresh cache", cached: &domain.Balance{Balance: "7", UpdatedAt: now.Add(-10 * time.Second)}, want: "7"},
		{name: "stale cache refetched", cached: &domain.Balance{Balance: "7", UpdatedAt: now.Add(-time.Minute)}, want: onChain.String(), wantFetch: true},
		{name: "no cache row", cacheErr: gorm.ErrRecordNotFound, want: onChain.String(), wantFetch: true},
		{name: "chain down", cacheErr: gorm.ErrRecordNotFound, chainErr: errors.New("dial"), wantFetch: true, wantKind: apperr.KindExternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var upserted *domain.Balance
			fetched := false
			repo := &balancemock.Repo{
				GetByWalletFn: func(_ context.Context, addr string) (*domain.Balance, error) {
					if addr != "0xabc" {
						t.Fatalf("address not normalized: %q", addr)
					}
					return tt.cached, tt.cacheErr
				},
				UpsertFn: func(_ context.Context, b *domain.Balance) error { upserted = b; return nil },
			}
			reader := &chainmock.Reader{
				BalanceOfFn: func(context.Context, string) (*big.Int, error) {
					fetched = true
					if tt.chainErr != nil {
						return nil, tt.chainErr
					}
					return onChain, nil
				},
				BlockNumberFn: func(context.Context) (uint64, error) { return 99, nil },
			}
			uc := NewUsecase(repo, reader, 0)
			uc.now = func() time.Time { return now }

			got, err := uc.Get(context.Background(), caller, " 0xABC ")
			if fetched != tt.wantFetch {
				t.Fatalf("fetched = %v, want %v", fetched, tt.wantFetch)
			}
			if tt.wantKind != "" {
				if apperr.KindOf(err) != tt.wantKind {
					t.Fatalf("err = %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if got.Balance != tt.want {
				t.Fatalf("balance = %s, want %s", got.Balance, tt.want)
			}
			if tt.wantFetch && (upserted == nil || upserted.LastSyncedBlock != 99 || !upserted.UpdatedAt.Equal(now)) {
				t.Fatalf("cache not refreshed: %+v", upserted)
			}
		})
	}
}

func TestUsecase_Get_BlockNumberFailureKeepsLastBlock(t *testing.T) {
	now := time.Date(2025, 8, 1, 10, 0, 0, 0, time.UTC)
	var upserted *domain.Balance
	repo := &balancemock.Repo{
		GetByWalletFn: func(context.Context, string) (*domain.Balance, error) {
			return &domain.Balance{UserID: "owner", Balance: "1", LastSyncedBlock: 41, UpdatedAt: now.Add(-time.Hour)}, nil
		},
		UpsertFn: func(_ context.Context, b *domain.Balance) error { upserted = b; return nil },
	}
	reader := &chainmock.Reader{
		BalanceOfFn:   func(context.Context, string) (*big.Int, error) { return big.NewInt(5), nil },
		BlockNumberFn: func(context.Context) (uint64, error) { return 0, errors.New("rpc reset") },
	}
	uc := NewUsecase(repo, reader, 0)
	uc.now = func() time.Time { return now }

	got, err := uc.Get(context.Background(), &user.User{UserID: "u1"}, "0xabc")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Balance != "5" || upserted == nil || upserted.LastSyncedBlock != 41 || upserted.UserID != "owner" {
		t.Fatalf("unexpected refresh: %+v", upserted)
	}
}

func TestUsecase_Get_HungChainTimesOut(t *testing.T) {
	repo := &balancemock.Repo{
		GetByWalletFn: func(context.Context, string) (*domain.Balance, error) { return nil, gorm.ErrRecordNotFound },
		UpsertFn: func(context.Context, *domain.Balance) error {
			t.Errorf("nothing should be cached when the chain does not answer")
			return nil
		},
	}
	hung := &chainmock.Reader{
		BalanceOfFn: func(ctx context.Context, _ string) (*big.Int, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		},
	}
	uc := NewUsecase(repo, chain.WithTimeout(hung, 20*time.Millisecond), 0)

	done := make(chan error, 1)
	go func() {
		_, err := uc.Get(context.Background(), &user.User{UserID: "u1"}, "0xabc")
		done <- err
	}()
	select {
	case err := <-done:
		if apperr.KindOf(err) != apperr.KindExternal || !errors.Is(err, context.DeadlineExceeded) {
			t.Fatalf("err = %v, want external timeout", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Get still waiting on the chain")
	}
}
