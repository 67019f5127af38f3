package loan

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusDefaulted Status = "defaulted"
)

// OpenStatuses are the states that block a borrower from requesting another loan.
var OpenStatuses = []Status{StatusPending, StatusApproved, StatusActive}

func (s Status) IsOpen() bool {
	for _, o := range OpenStatuses {
		if s == o {
			return true
		}
	}
	return false
}

// Terminal states never move again.
func (s Status) Terminal() bool {
	return s == StatusRejected || s == StatusCompleted || s == StatusDefaulted
}

// Table: loans
type Loan struct {
	ID                 uint64          `gorm:"primaryKey;column:id" json:"-"`
	LoanID             string          `gorm:"size:32;not null;uniqueIndex:ux_loans_loan_id" json:"id"`
	BorrowerID         string          `gorm:"size:32;not null;index:idx_loans_borrower_status" json:"borrowerId"`
	Amount             decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"amount"`
	InterestRate       decimal.Decimal `gorm:"type:decimal(6,2);not null" json:"interestRate"`
	Duration           int             `gorm:"not null" json:"duration"`
	TotalAmount        decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"totalAmount"`
	AmountPaid         decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"amountPaid"`
	RemainingAmount    decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"remainingAmount"`
	Status             Status          `gorm:"size:16;not null;index:idx_loans_borrower_status;index:idx_loans_status_due" json:"status"`
	Reason             string          `gorm:"type:text;not null" json:"reason"`
	ApprovedBy         *string         `gorm:"size:32" json:"approvedBy,omitempty"`
	ApprovedAt         *time.Time      `json:"approvedAt,omitempty"`
	DueDate            *time.Time      `gorm:"index:idx_loans_status_due" json:"dueDate,omitempty"`
	RejectionReason    string          `gorm:"type:text" json:"rejectionReason,omitempty"`
	DisbursementTxHash *string         `gorm:"size:66" json:"disbursementTxHash,omitempty"`
	Payments           []Payment       `gorm:"foreignKey:LoanID;references:ID" json:"payments"`
	CreatedAt          time.Time       `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt          time.Time       `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Loan) TableName() string { return "loans" }

// Table: loan_payments
type Payment struct {
	ID     uint64          `gorm:"primaryKey;column:id" json:"-"`
	LoanID uint64          `gorm:"not null;index" json:"-"`
	Amount decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"amount"`
	TxHash string          `gorm:"size:66;not null;index" json:"txHash"`
	PaidAt time.Time       `gorm:"not null" json:"paidAt"`
}

func (Payment) TableName() string { return "loan_payments" }

// TransferProposal is what the propose phase hands back to the client: the
// on-chain transfer it has to perform before confirming.
type TransferProposal struct {
	LoanID           string          `json:"loanId"`
	Amount           decimal.Decimal `json:"amount"`
	RecipientAddress string          `json:"recipientAddress"`
}
