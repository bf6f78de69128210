package events

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Event types
const (
	AccountOpened     = "account.opened"
	TransactionPosted = "transaction.posted"
)

// Stream names
const (
	AccountEventsStream     = "account.events"
	TransactionEventsStream = "transaction.events"
)

// Publisher is the outbound event port. Implementations must be safe for
// concurrent use; publish failures are non-fatal to the business operation
// that triggered them.
type Publisher interface {
	Publish(ctx context.Context, stream, eventType string, data any) error
}

// Event is the envelope written to the stream.
type Event struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

// AccountOpenedEvent announces a freshly opened account.
type AccountOpenedEvent struct {
	AccountID string `json:"accountId"`
	ClientID  string `json:"clientId"`
}

// TransactionPostedEvent announces a posted deposit or withdrawal.
type TransactionPostedEvent struct {
	AccountID    string          `json:"accountId"`
	ClientID     string          `json:"clientId"`
	Type         string          `json:"type"`
	Amount       decimal.Decimal `json:"amount"`
	BalanceAfter decimal.Decimal `json:"balanceAfter"`
}

// NopPublisher discards every event. It is the default when no broker is
// configured and what the test suites wire in.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, string, any) error { return nil }
