package transaction

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusFailed    Status = "failed"
)

func (s Status) Valid() bool {
	return s == StatusPending || s == StatusConfirmed || s == StatusFailed
}

type Type string

const (
	TypeDeposit          Type = "deposit"
	TypeWithdrawal       Type = "withdrawal"
	TypeTransfer         Type = "transfer"
	TypeLoanDisbursement Type = "Loan Disbursement"
	TypeLoanRepayment    Type = "Loan Repayment"
)

// UserLoggable are the types a user may log directly; loan types are only
// written by the loan protocol.
func (t Type) UserLoggable() bool {
	return t == TypeDeposit || t == TypeWithdrawal || t == TypeTransfer
}

// Metadata is free-form JSON stored as text.
type Metadata map[string]any

func (m Metadata) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (m *Metadata) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*m = Metadata{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return errors.New("transaction: unsupported metadata column type")
	}
	if len(raw) == 0 {
		*m = Metadata{}
		return nil
	}
	return json.Unmarshal(raw, m)
}

// Table: transactions
type Transaction struct {
	ID          uint64          `gorm:"primaryKey;column:id" json:"-"`
	TxHash      string          `gorm:"size:66;not null;uniqueIndex:ux_transactions_tx_hash" json:"txHash"`
	UserID      string          `gorm:"size:32;not null;index:idx_transactions_user_created" json:"userId"`
	FromAddress string          `gorm:"size:42;not null" json:"fromAddress"`
	ToAddress   string          `gorm:"size:42;not null" json:"toAddress"`
	Amount      decimal.Decimal `gorm:"type:decimal(38,18);not null" json:"amount"`
	BurnAmount  decimal.Decimal `gorm:"type:decimal(38,18);not null" json:"burnAmount"`
	BlockNumber *uint64         `json:"blockNumber,omitempty"`
	GasUsed     string          `gorm:"size:32" json:"gasUsed,omitempty"`
	Status      Status          `gorm:"size:16;not null;index:idx_transactions_status_created" json:"status"`
	Type        Type            `gorm:"size:32;not null" json:"type"`
	Metadata    Metadata        `gorm:"type:text" json:"metadata"`
	CreatedAt   time.Time       `gorm:"autoCreateTime;index:idx_transactions_user_created;index:idx_transactions_status_created" json:"createdAt"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Transaction) TableName() string { return "transactions" }

// Resolved reports whether the record has left pending. Resolved records are
// never changed again.
func (t *Transaction) Resolved() bool { return t.Status != StatusPending }
