package transaction

import (
	domain "github.com/IykeSol/iykesol-crypto-bank/internal/domain/transaction"

	"github.com/shopspring/decimal"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type LogInput struct {
	TxHash      string
	From        string
	To          string
	Amount      decimal.Decimal
	BurnAmount  decimal.Decimal
	BlockNumber *uint64
	Type        domain.Type
	Status      domain.Status // empty means confirmed
	Metadata    domain.Metadata
}

type Page struct {
	Transactions []domain.Transaction `json:"transactions"`
	Total        int64                `json:"total"`
	TotalPages   int64                `json:"totalPages"`
	CurrentPage  int                  `json:"currentPage"`
}
