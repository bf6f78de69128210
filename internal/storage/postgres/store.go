// Package postgres persists client and account documents as JSONB, one row
// per document keyed by the generated string ID. The layout mirrors the
// memory store: two independent collections, full-document upserts.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/sgbank/bank-account-api/internal/models"
	"github.com/sgbank/bank-account-api/internal/storage"
	"github.com/sgbank/bank-account-api/internal/utils"
)

const schema = `
CREATE TABLE IF NOT EXISTS clients (
	id  TEXT PRIMARY KEY,
	doc JSONB NOT NULL
);
CREATE TABLE IF NOT EXISTS accounts (
	id  TEXT PRIMARY KEY,
	doc JSONB NOT NULL
);
`

// EnsureSchema creates the document tables if they do not exist.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create document tables: %w", err)
	}
	return nil
}

// ClientStore stores client documents in the clients table.
type ClientStore struct {
	db *sql.DB
}

func NewClientStore(db *sql.DB) *ClientStore {
	return &ClientStore{db: db}
}

func (s *ClientStore) Save(ctx context.Context, client models.Client) (models.Client, error) {
	if client.ID == "" {
		client.ID = utils.GenerateID(utils.ClientIDPrefix)
	}
	if err := upsert(ctx, s.db, "clients", client.ID, client); err != nil {
		return models.Client{}, fmt.Errorf("failed to save client: %w", err)
	}
	return client, nil
}

func (s *ClientStore) FindByID(ctx context.Context, id string) (models.Client, bool, error) {
	var client models.Client
	ok, err := findByID(ctx, s.db, "clients", id, &client)
	if err != nil {
		return models.Client{}, false, fmt.Errorf("failed to get client: %w", err)
	}
	return client, ok, nil
}

// AccountStore stores account aggregates in the accounts table. The whole
// document (balance, client snapshot, statement list) is replaced on every
// save.
type AccountStore struct {
	db *sql.DB
}

func NewAccountStore(db *sql.DB) *AccountStore {
	return &AccountStore{db: db}
}

func (s *AccountStore) Save(ctx context.Context, account models.Account) (models.Account, error) {
	if account.ID == "" {
		account.ID = utils.GenerateID(utils.AccountIDPrefix)
	}
	if account.Statements == nil {
		account.Statements = []models.Statement{}
	}
	if err := upsert(ctx, s.db, "accounts", account.ID, account); err != nil {
		return models.Account{}, fmt.Errorf("failed to save account: %w", err)
	}
	return account, nil
}

func (s *AccountStore) FindByID(ctx context.Context, id string) (models.Account, bool, error) {
	var account models.Account
	ok, err := findByID(ctx, s.db, "accounts", id, &account)
	if err != nil {
		return models.Account{}, false, fmt.Errorf("failed to get account: %w", err)
	}
	return account, ok, nil
}

func upsert(ctx context.Context, db *sql.DB, table, id string, doc any) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(`
		INSERT INTO %s (id, doc) VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET doc = EXCLUDED.doc
	`, table)
	_, err = db.ExecContext(ctx, query, id, data)
	return err
}

func findByID(ctx context.Context, db *sql.DB, table, id string, doc any) (bool, error) {
	query := fmt.Sprintf(`SELECT doc FROM %s WHERE id = $1`, table)
	var data []byte
	err := db.QueryRowContext(ctx, query, id).Scan(&data)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, doc); err != nil {
		return false, err
	}
	return true, nil
}

var (
	_ storage.ClientStore  = (*ClientStore)(nil)
	_ storage.AccountStore = (*AccountStore)(nil)
)
