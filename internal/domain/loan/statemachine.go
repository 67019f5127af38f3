package loan

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	MinDurationDays = 1
	MaxDurationDays = 3650
)

var (
	MinAmount    = decimal.NewFromInt(100)
	MaxAmount    = decimal.NewFromInt(100_000)
	InterestRate = decimal.NewFromInt(5) // percent, simple interest

	hundred = decimal.NewFromInt(100)
)

// TotalFor returns principal plus simple interest at rate percent.
func TotalFor(amount, rate decimal.Decimal) decimal.Decimal {
	return amount.Add(amount.Mul(rate).Div(hundred)).Round(2)
}

// New builds a pending loan. The caller is responsible for the
// one-open-loan-per-borrower check, which needs the store.
func New(loanID, borrowerID string, amount decimal.Decimal, durationDays int, reason string) (*Loan, error) {
	if amount.LessThan(MinAmount) || amount.GreaterThan(MaxAmount) {
		return nil, ErrAmountOutOfRange
	}
	if durationDays < MinDurationDays || durationDays > MaxDurationDays {
		return nil, ErrInvalidDuration
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, ErrReasonRequired
	}

	amount = amount.Round(2)
	total := TotalFor(amount, InterestRate)
	return &Loan{
		LoanID:          loanID,
		BorrowerID:      borrowerID,
		Amount:          amount,
		InterestRate:    InterestRate,
		Duration:        durationDays,
		TotalAmount:     total,
		AmountPaid:      decimal.Zero,
		RemainingAmount: total,
		Status:          StatusPending,
		Reason:          reason,
	}, nil
}

// Remaining is the authoritative amount still owed.
func (l *Loan) Remaining() decimal.Decimal {
	return l.TotalAmount.Sub(l.AmountPaid)
}

func (l *Loan) IsBorrower(userID string) bool { return l.BorrowerID == userID }

// Reject moves a pending loan to rejected.
func (l *Loan) Reject(reason string) error {
	if l.Status != StatusPending {
		return ErrAlreadyProcessed
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = "Not specified"
	}
	l.Status = StatusRejected
	l.RejectionReason = reason
	return nil
}

// Activate records the disbursement of a pending loan. The due date is
// duration calendar days after activation.
func (l *Loan) Activate(adminID, txHash string, now time.Time) error {
	if l.Status != StatusPending {
		return ErrAlreadyProcessed
	}
	if strings.TrimSpace(txHash) == "" {
		return ErrTxHashRequired
	}
	now = now.UTC()
	due := now.AddDate(0, 0, l.Duration)
	l.Status = StatusActive
	l.ApprovedBy = &adminID
	l.ApprovedAt = &now
	l.DueDate = &due
	l.DisbursementTxHash = &txHash
	return nil
}

// ApplyPayment adds a repayment to an active loan and completes it once the
// total is reached. AmountPaid never exceeds TotalAmount.
func (l *Loan) ApplyPayment(payerID string, amount decimal.Decimal, txHash string, now time.Time) (*Payment, error) {
	if l.Status != StatusActive {
		return nil, ErrNotActive
	}
	if !l.IsBorrower(payerID) {
		return nil, ErrNotBorrower
	}
	// stored as decimal(20,2)
	amount = amount.Round(2)
	if !amount.IsPositive() {
		return nil, ErrInvalidPayment
	}
	if strings.TrimSpace(txHash) == "" {
		return nil, ErrTxHashRequired
	}
	paid := l.AmountPaid.Add(amount)
	if paid.GreaterThan(l.TotalAmount) {
		return nil, ErrOverpayment
	}

	l.AmountPaid = paid
	l.RemainingAmount = l.Remaining()
	p := Payment{LoanID: l.ID, Amount: amount, TxHash: txHash, PaidAt: now.UTC()}
	l.Payments = append(l.Payments, p)
	if l.AmountPaid.GreaterThanOrEqual(l.TotalAmount) {
		l.Status = StatusCompleted
	}
	return &p, nil
}

// CheckPaymentIntent validates a proposed payment amount without mutating.
func (l *Loan) CheckPaymentIntent(payerID string, amount decimal.Decimal) error {
	if !l.IsBorrower(payerID) {
		return ErrNotBorrower
	}
	if l.Status != StatusActive {
		return ErrNotActive
	}
	amount = amount.Round(2)
	if !amount.IsPositive() {
		return ErrInvalidPayment
	}
	if rem := l.Remaining(); amount.GreaterThan(rem) {
		return &InsufficientRemainingError{Requested: amount, Remaining: rem}
	}
	return nil
}

// MarkDefaulted moves an overdue, unpaid active loan to defaulted.
func (l *Loan) MarkDefaulted(now time.Time) error {
	if l.Status != StatusActive {
		return ErrNotActive
	}
	if l.DueDate == nil || !l.DueDate.Before(now) || !l.Remaining().IsPositive() {
		return ErrNotOverdue
	}
	l.Status = StatusDefaulted
	return nil
}
