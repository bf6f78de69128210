// Package mapper projects internal aggregates onto their externally-facing
// views. Statement projection is pure and total; account and client
// projection reject absent input.
package mapper

import (
	"github.com/sgbank/bank-account-api/internal/errs"
	"github.com/sgbank/bank-account-api/internal/models"
)

// StatementToView reshapes one statement entry for external consumption.
func StatementToView(s models.Statement) models.StatementView {
	return models.StatementView{
		Timestamp:    s.Timestamp,
		Amount:       s.Amount,
		BalanceAfter: s.BalanceAfter,
	}
}

// StatementsToViews projects a statement list, preserving order. A nil or
// empty list yields an empty slice, never an error.
func StatementsToViews(statements []models.Statement) []models.StatementView {
	views := make([]models.StatementView, 0, len(statements))
	for _, s := range statements {
		views = append(views, StatementToView(s))
	}
	return views
}

// ClientToView projects a client. An absent client is a ValidationError.
func ClientToView(client *models.Client) (models.ClientView, error) {
	if client == nil {
		return models.ClientView{}, errs.Validationf("client can't be nil")
	}
	return models.ClientView{
		ID:        client.ID,
		LastName:  client.LastName,
		FirstName: client.FirstName,
		CreatedAt: client.CreatedAt,
	}, nil
}

// AccountToView projects an account together with its statement history.
// An absent account is a ValidationError.
func AccountToView(account *models.Account) (models.AccountView, error) {
	if account == nil {
		return models.AccountView{}, errs.Validationf("account can't be nil")
	}
	client, err := ClientToView(&account.Client)
	if err != nil {
		return models.AccountView{}, err
	}
	return models.AccountView{
		Client:     client,
		Balance:    account.Balance,
		CreatedAt:  account.CreatedAt,
		Statements: StatementsToViews(account.Statements),
	}, nil
}
