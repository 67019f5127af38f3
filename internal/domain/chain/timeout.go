package chain

import (
	"context"
	"math/big"
	"time"
)

// WithTimeout bounds every call on r by d. A non-positive d returns r as is.
func WithTimeout(r Reader, d time.Duration) Reader {
	if d <= 0 {
		return r
	}
	return timeoutReader{r: r, d: d}
}

type timeoutReader struct {
	r Reader
	d time.Duration
}

func (t timeoutReader) TransactionReceipt(ctx context.Context, txHash string) (*Receipt, error) {
	ctx, cancel := context.WithTimeout(ctx, t.d)
	defer cancel()
	return t.r.TransactionReceipt(ctx, txHash)
}

func (t timeoutReader) BalanceOf(ctx context.Context, address string) (*big.Int, error) {
	ctx, cancel := context.WithTimeout(ctx, t.d)
	defer cancel()
	return t.r.BalanceOf(ctx, address)
}

func (t timeoutReader) TotalSupply(ctx context.Context) (*big.Int, error) {
	ctx, cancel := context.WithTimeout(ctx, t.d)
	defer cancel()
	return t.r.TotalSupply(ctx)
}

func (t timeoutReader) TotalBurned(ctx context.Context) (*big.Int, error) {
	ctx, cancel := context.WithTimeout(ctx, t.d)
	defer cancel()
	return t.r.TotalBurned(ctx)
}

func (t timeoutReader) BlockNumber(ctx context.Context) (uint64, error) {
	ctx, cancel := context.WithTimeout(ctx, t.d)
	defer cancel()
	return t.r.BlockNumber(ctx)
}
