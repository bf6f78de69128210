package service

import "github.com/shopspring/decimal"

// CreateClientRequest carries the identity fields for opening an account.
// A nil request is an explicit, representable "absent" state and is rejected
// with a ValidationError rather than dereferenced.
type CreateClientRequest struct {
	LastName  string
	FirstName string
}

// TransactionRequest carries a deposit or withdrawal intent against an
// account, including the client ID claimed by the caller for the ownership
// check.
type TransactionRequest struct {
	ClientID  string
	AccountID string
	Amount    decimal.Decimal
}
