package chainmock

import (
	"context"
	"errors"
	"math/big"

	"github.com/IykeSol/iykesol-crypto-bank/internal/domain/chain"
)

var (
	_ chain.Reader            = (*Reader)(nil)
	_ chain.SignatureVerifier = (*Verifier)(nil)
)

var errUnimplemented = errors.New("chainmock: method not implemented")

// Reader is a function-backed chain.Reader. Unset funcs return errUnimplemented.
type Reader struct {
	TransactionReceiptFn func(ctx context.Context, txHash string) (*chain.Receipt, error)
	BalanceOfFn          func(ctx context.Context, address string) (*big.Int, error)
	TotalSupplyFn        func(ctx context.Context) (*big.Int, error)
	TotalBurnedFn        func(ctx context.Context) (*big.Int, error)
	BlockNumberFn        func(ctx context.Context) (uint64, error)
}

func (m *Reader) TransactionReceipt(ctx context.Context, txHash string) (*chain.Receipt, error) {
	if m.TransactionReceiptFn != nil {
		return m.TransactionReceiptFn(ctx, txHash)
	}
	return nil, errUnimplemented
}

func (m *Reader) BalanceOf(ctx context.Context, address string) (*big.Int, error) {
	if m.BalanceOfFn != nil {
		return m.BalanceOfFn(ctx, address)
	}
	return nil, errUnimplemented
}

func (m *Reader) TotalSupply(ctx context.Context) (*big.Int, error) {
	if m.TotalSupplyFn != nil {
		return m.TotalSupplyFn(ctx)
	}
	return nil, errUnimplemented
}

func (m *Reader) TotalBurned(ctx context.Context) (*big.Int, error) {
	if m.TotalBurnedFn != nil {
		return m.TotalBurnedFn(ctx)
	}
	return nil, errUnimplemented
}

func (m *Reader) BlockNumber(ctx context.Context) (uint64, error) {
	if m.BlockNumberFn != nil {
		return m.BlockNumberFn(ctx)
	}
	return 0, nil
}

// Verifier is a function-backed chain.SignatureVerifier.
type Verifier struct {
	VerifyFn func(message, signature, claimedAddress string) (bool, error)
}

func (m *Verifier) Verify(message, signature, claimedAddress string) (bool, error) {
	if m.VerifyFn != nil {
		return m.VerifyFn(message, signature, claimedAddress)
	}
	return false, errUnimplemented
}
