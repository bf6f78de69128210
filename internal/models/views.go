package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ClientView is the externally-facing projection of a client.
type ClientView struct {
	ID        string    `json:"id"`
	LastName  string    `json:"lastName"`
	FirstName string    `json:"firstName"`
	CreatedAt time.Time `json:"createdTimestamp"`
}

// StatementView is the externally-facing projection of a statement entry.
type StatementView struct {
	Timestamp    time.Time       `json:"timestamp"`
	Amount       decimal.Decimal `json:"amount"`
	BalanceAfter decimal.Decimal `json:"balanceAfter"`
}

// AccountView is the externally-facing projection of an account, including
// its full statement history.
type AccountView struct {
	Client     ClientView      `json:"client"`
	Balance    decimal.Decimal `json:"balance"`
	CreatedAt  time.Time       `json:"createdTimestamp"`
	Statements []StatementView `json:"statements"`
}

// CreatedAccount carries the pair of identifiers returned when an account is
// opened.
type CreatedAccount struct {
	AccountID string `json:"accountId"`
	ClientID  string `json:"clientId"`
}
