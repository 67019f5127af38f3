package loan

import (
	"github.com/IykeSol/iykesol-crypto-bank/internal/domain/loan"
	"github.com/IykeSol/iykesol-crypto-bank/internal/domain/user"

	"github.com/shopspring/decimal"
)

type RequestInput struct {
	Amount   decimal.Decimal
	Duration int // days
	Reason   string
}

// LoanDTO is a loan with its borrower and approver resolved, as shown to admins.
type LoanDTO struct {
	*loan.Loan
	Borrower *user.Summary `json:"borrower,omitempty"`
	Approver *user.Summary `json:"approver,omitempty"`
}
