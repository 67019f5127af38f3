package loan

import (
	"fmt"

	"github.com/IykeSol/iykesol-crypto-bank/internal/domain/apperr"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound          = apperr.NotFound("loan not found")
	ErrAmountOutOfRange  = apperr.Validation("loan amount must be between 100 and 100,000 IYKESOL")
	ErrInvalidDuration   = apperr.Validation("loan duration must be between 1 and 3650 days")
	ErrReasonRequired    = apperr.Validation("loan reason is required")
	ErrOpenLoanExists    = apperr.Conflict("you already have an active loan")
	ErrAlreadyProcessed  = apperr.InvalidState("loan already processed")
	ErrNotActive         = apperr.InvalidState("loan is not active")
	ErrNotOverdue        = apperr.InvalidState("loan is not overdue")
	ErrStaleState        = apperr.InvalidState("loan was modified concurrently, retry")
	ErrNotBorrower       = apperr.Forbidden("access denied")
	ErrInvalidPayment    = apperr.Validation("payment amount must be greater than zero")
	ErrOverpayment       = apperr.Validation("payment would exceed the loan total amount")
	ErrTxHashRequired    = apperr.Validation("transaction hash required")
	ErrNoBorrowerWallet  = apperr.Validation("borrower has no linked wallet to receive the disbursement")
	ErrNoRepaymentWallet = apperr.InvalidState("no repayment wallet available for this loan")
)

// InsufficientRemainingError is returned when a payment intent is larger than
// what is still owed on the loan.
type InsufficientRemainingError struct {
	Requested decimal.Decimal
	Remaining decimal.Decimal
}

func (e *InsufficientRemainingError) Error() string {
	return fmt.Sprintf("payment amount (%s) exceeds remaining balance (%s)",
		e.Requested.StringFixed(2), e.Remaining.StringFixed(2))
}

func (e *InsufficientRemainingError) Kind() apperr.Kind { return apperr.KindValidation }

func (e *InsufficientRemainingError) Is(target error) bool { return target == apperr.ErrValidation }
