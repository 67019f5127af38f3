package chain

import (
	"context"
	"strings"

	"github.com/IykeSol/iykesol-crypto-bank/internal/domain/apperr"
)

var (
	ErrTxNotMined = apperr.Validation("transaction is not mined yet")
	ErrTxFailed   = apperr.Validation("transaction failed on chain")
)

// ClaimedTransfer is a transfer a client says it performed. Nothing about it
// has been checked against the chain.
type ClaimedTransfer struct {
	TxHash string
}

// VerifiedTransfer is a claimed transfer whose receipt was found and
// succeeded.
type VerifiedTransfer struct {
	TxHash      string
	BlockNumber uint64
	GasUsed     uint64
}

// Verify turns a claim into a verified transfer. Lookup failures are
// external errors the caller may retry; an unmined or failed transaction is
// a validation error.
func Verify(ctx context.Context, r Reader, c ClaimedTransfer) (*VerifiedTransfer, error) {
	hash := strings.TrimSpace(c.TxHash)
	rcpt, err := r.TransactionReceipt(ctx, hash)
	if err != nil {
		return nil, apperr.External("blockchain unavailable", err)
	}
	if rcpt == nil {
		return nil, ErrTxNotMined
	}
	if !rcpt.Success {
		return nil, ErrTxFailed
	}
	return &VerifiedTransfer{TxHash: hash, BlockNumber: rcpt.BlockNumber, GasUsed: rcpt.GasUsed}, nil
}
