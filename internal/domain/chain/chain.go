package chain

import (
	"context"
	"math/big"

	"github.com/shopspring/decimal"
)

// TokenDecimals of the IYKESOL ERC-20 token.
const TokenDecimals = 18

// Receipt is the subset of an on-chain transaction receipt the ledger uses.
type Receipt struct {
	TxHash      string
	Success     bool
	BlockNumber uint64
	GasUsed     uint64
}

// Reader is read-only access to the chain and the token contract.
type Reader interface {
	// TransactionReceipt returns (nil, nil) while the transaction is not mined.
	TransactionReceipt(ctx context.Context, txHash string) (*Receipt, error)
	BalanceOf(ctx context.Context, address string) (*big.Int, error)
	TotalSupply(ctx context.Context) (*big.Int, error)
	TotalBurned(ctx context.Context) (*big.Int, error)
	BlockNumber(ctx context.Context) (uint64, error)
}

// SignatureVerifier checks a personal_sign style signature.
type SignatureVerifier interface {
	Verify(message, signature, claimedAddress string) (bool, error)
}

// FormatUnits renders base units as a decimal token amount.
func FormatUnits(v *big.Int, decimals int32) string {
	if v == nil {
		return "0"
	}
	return decimal.NewFromBigInt(v, -decimals).String()
}
