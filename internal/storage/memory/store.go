// Package memory is the in-memory document store. It backs the test suites
// and the default STORE_BACKEND; documents are deep-copied on the way in and
// out so callers can never alias internal state.
package memory

import (
	"context"
	"sync"

	"github.com/sgbank/bank-account-api/internal/models"
	"github.com/sgbank/bank-account-api/internal/storage"
	"github.com/sgbank/bank-account-api/internal/utils"
)

// ClientStore is a mutex-guarded map of client documents.
type ClientStore struct {
	mu      sync.RWMutex
	clients map[string]models.Client
}

func NewClientStore() *ClientStore {
	return &ClientStore{clients: make(map[string]models.Client)}
}

func (s *ClientStore) Save(_ context.Context, client models.Client) (models.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if client.ID == "" {
		client.ID = utils.GenerateID(utils.ClientIDPrefix)
	}
	s.clients[client.ID] = client
	return client, nil
}

func (s *ClientStore) FindByID(_ context.Context, id string) (models.Client, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	client, ok := s.clients[id]
	return client, ok, nil
}

// AccountStore is a mutex-guarded map of account documents.
type AccountStore struct {
	mu       sync.RWMutex
	accounts map[string]models.Account
}

func NewAccountStore() *AccountStore {
	return &AccountStore{accounts: make(map[string]models.Account)}
}

func (s *AccountStore) Save(_ context.Context, account models.Account) (models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if account.ID == "" {
		account.ID = utils.GenerateID(utils.AccountIDPrefix)
	}
	s.accounts[account.ID] = copyAccount(account)
	return account, nil
}

func (s *AccountStore) FindByID(_ context.Context, id string) (models.Account, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, ok := s.accounts[id]
	if !ok {
		return models.Account{}, false, nil
	}
	return copyAccount(account), true, nil
}

// copyAccount clones the aggregate including its statement slice, so a
// caller appending statements cannot mutate the stored document.
func copyAccount(a models.Account) models.Account {
	cp := a
	cp.Statements = make([]models.Statement, len(a.Statements))
	copy(cp.Statements, a.Statements)
	return cp
}

var (
	_ storage.ClientStore  = (*ClientStore)(nil)
	_ storage.AccountStore = (*AccountStore)(nil)
)
