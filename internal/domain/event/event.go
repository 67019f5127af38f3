package event

import (
	"context"
	"log/slog"
	"time"
)

const (
	LoanStream        = "loan.events"
	TransactionStream = "transaction.events"
)

const (
	LoanRequested      = "loan.requested"
	LoanRejected       = "loan.rejected"
	LoanActivated      = "loan.activated"
	LoanPaymentRecord  = "loan.payment_recorded"
	LoanCompleted      = "loan.completed"
	LoanDefaulted      = "loan.defaulted"
	TransactionLogged  = "transaction.logged"
	TransactionChanged = "transaction.status_changed"
)

type Event struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

type LoanEvent struct {
	LoanID     string `json:"loanId"`
	BorrowerID string `json:"borrowerId"`
	Status     string `json:"status"`
	Amount     string `json:"amount,omitempty"`
	TxHash     string `json:"txHash,omitempty"`
}

type TransactionEvent struct {
	TxHash string `json:"txHash"`
	UserID string `json:"userId"`
	Type   string `json:"type"`
	Status string `json:"status"`
}

type Publisher interface {
	Publish(ctx context.Context, stream, eventType string, data any) error
}

// Nop drops every event. Used when no broker is configured.
type Nop struct{}

func (Nop) Publish(context.Context, string, string, any) error { return nil }

// Emit publishes after the business write has committed. A failed publish
// is logged and never reported to the caller.
func Emit(ctx context.Context, p Publisher, stream, eventType string, data any) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, stream, eventType, data); err != nil {
		slog.WarnContext(ctx, "event publish failed", "stream", stream, "type", eventType, "err", err)
	}
}
