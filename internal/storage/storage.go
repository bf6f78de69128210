// Package storage defines the document-store contracts the services depend
// on. Clients and accounts live in two independent collections keyed by
// generated string IDs; Save assigns an ID when the entity has none.
package storage

import (
	"context"

	"github.com/sgbank/bank-account-api/internal/models"
)

// ClientStore persists client documents.
type ClientStore interface {
	// Save upserts the client, assigning a fresh ID when Client.ID is empty,
	// and returns the stored document.
	Save(ctx context.Context, client models.Client) (models.Client, error)
	// FindByID returns the client and true when it exists. An absent ID is
	// (zero, false, nil), not an error.
	FindByID(ctx context.Context, id string) (models.Client, bool, error)
}

// AccountStore persists account documents, each embedding the owning client
// snapshot and the ordered statement list.
type AccountStore interface {
	// Save upserts the full aggregate, assigning a fresh ID when Account.ID
	// is empty, and returns the stored document.
	Save(ctx context.Context, account models.Account) (models.Account, error)
	// FindByID returns the account and true when it exists. An absent ID is
	// (zero, false, nil), not an error.
	FindByID(ctx context.Context, id string) (models.Account, bool, error)
}
