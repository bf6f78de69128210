package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sgbank/bank-account-api/internal/errs"
)

// Client is an identity record. Accounts embed a snapshot of it taken at
// creation time; later client edits do not propagate to existing accounts.
type Client struct {
	ID        string    `json:"id"`
	LastName  string    `json:"lastName"`
	FirstName string    `json:"firstName"`
	CreatedAt time.Time `json:"createdTimestamp"`
}

// Account is the aggregate root: balance, owning client snapshot and the
// append-only statement history. Balance is decimal, never a float, and is
// always the running sum of the statement amounts.
type Account struct {
	ID         string          `json:"id"`
	Balance    decimal.Decimal `json:"balance"`
	Client     Client          `json:"client"`
	CreatedAt  time.Time       `json:"createdTimestamp"`
	Statements []Statement     `json:"statements"`
}

// Statement is one immutable entry in an account's history: the signed
// transaction amount and the balance immediately after it.
type Statement struct {
	Timestamp    time.Time       `json:"timestamp"`
	Amount       decimal.Decimal `json:"amount"`
	BalanceAfter decimal.Decimal `json:"balanceAfter"`
}

// TransactionKind is the closed set of supported transaction types.
type TransactionKind string

const (
	Deposit  TransactionKind = "DEPOSIT"
	Withdraw TransactionKind = "WITHDRAW"
)

// ParseTransactionKind maps wire input onto the closed enum. Unknown values
// are rejected here, at the boundary, so the ledger only ever sees the two
// valid kinds.
func ParseTransactionKind(s string) (TransactionKind, error) {
	switch TransactionKind(s) {
	case Deposit:
		return Deposit, nil
	case Withdraw:
		return Withdraw, nil
	default:
		return "", errs.Validationf("transaction type not found for type: %s", s)
	}
}
