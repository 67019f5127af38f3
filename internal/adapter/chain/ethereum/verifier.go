package ethereum

import (
	"errors"
	"fmt"
	"strings"

	"github.com/IykeSol/iykesol-crypto-bank/internal/domain/chain"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

var _ chain.SignatureVerifier = Verifier{}

// Verifier checks personal_sign (EIP-191) signatures as produced by
// MetaMask.
type Verifier struct{}

func (Verifier) Verify(message, signature, claimedAddress string) (bool, error) {
	sig, err := hexutil.Decode(signature)
	if err != nil {
		return false, fmt.Errorf("decode signature: %w", err)
	}
	if len(sig) != crypto.SignatureLength {
		return false, errors.New("signature must be 65 bytes")
	}
	sig = append([]byte(nil), sig...)
	// wallets use 27/28 for the recovery id
	if sig[crypto.RecoveryIDOffset] >= 27 {
		sig[crypto.RecoveryIDOffset] -= 27
	}

	pub, err := crypto.SigToPub(accounts.TextHash([]byte(message)), sig)
	if err != nil {
		return false, fmt.Errorf("recover signer: %w", err)
	}
	return strings.EqualFold(crypto.PubkeyToAddress(*pub).Hex(), strings.TrimSpace(claimedAddress)), nil
}
