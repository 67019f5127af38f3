package transaction

import "github.com/IykeSol/iykesol-crypto-bank/internal/domain/apperr"

var (
	ErrNotFound      = apperr.NotFound("transaction not found")
	ErrDuplicateHash = apperr.Conflict("transaction already logged")
	ErrInvalidType   = apperr.Validation("transaction type must be deposit, withdrawal or transfer")
	ErrInvalidStatus = apperr.Validation("transaction status must be pending or confirmed")
)
