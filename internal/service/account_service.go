package service

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/sgbank/bank-account-api/internal/cache"
	"github.com/sgbank/bank-account-api/internal/errs"
	"github.com/sgbank/bank-account-api/internal/events"
	"github.com/sgbank/bank-account-api/internal/mapper"
	"github.com/sgbank/bank-account-api/internal/models"
	"github.com/sgbank/bank-account-api/internal/storage"
)

const accountViewKeyPrefix = "account:view:"

// AccountService owns the account lifecycle: opening accounts, posting
// deposits and withdrawals, and reading statements. Each write runs under a
// per-account mutex so two concurrent transactions on the same account
// cannot lose an update; the store itself performs no cross-call locking.
type AccountService struct {
	accounts  storage.AccountStore
	clients   *ClientService
	publisher events.Publisher
	views     *cache.ViewCache[models.AccountView]
	logger    *zap.Logger

	muMap map[string]*sync.Mutex
	mapMu sync.Mutex
}

// NewAccountService wires the ledger. views may be nil to disable the read
// cache (tests do this); publisher is never nil, use events.NopPublisher.
func NewAccountService(
	accounts storage.AccountStore,
	clients *ClientService,
	publisher events.Publisher,
	views *cache.ViewCache[models.AccountView],
	logger *zap.Logger,
) *AccountService {
	return &AccountService{
		accounts:  accounts,
		clients:   clients,
		publisher: publisher,
		views:     views,
		logger:    logger,
		muMap:     make(map[string]*sync.Mutex),
	}
}

// OpenAccount creates the client, then an empty account owned by it, and
// returns both generated identifiers. Client validation failures propagate
// unchanged.
func (s *AccountService) OpenAccount(ctx context.Context, req *CreateClientRequest) (models.CreatedAccount, error) {
	client, err := s.clients.CreateClient(ctx, req)
	if err != nil {
		return models.CreatedAccount{}, err
	}

	account := models.Account{
		Balance:    decimal.Zero,
		Client:     client,
		CreatedAt:  time.Now().UTC(),
		Statements: []models.Statement{},
	}
	created, err := s.accounts.Save(ctx, account)
	if err != nil {
		return models.CreatedAccount{}, errs.Unexpected("failed to save account", err)
	}

	s.refreshView(ctx, &created)
	if err := s.publisher.Publish(ctx, events.AccountEventsStream, events.AccountOpened, events.AccountOpenedEvent{
		AccountID: created.ID,
		ClientID:  client.ID,
	}); err != nil {
		s.logger.Warn("failed to publish account.opened event", zap.Error(err))
	}

	return models.CreatedAccount{AccountID: created.ID, ClientID: client.ID}, nil
}

// PostTransaction applies a deposit or withdrawal to an account and returns
// the resulting statement entry. Checks run in a fixed order so error
// precedence is observable: existence, then amount, then ownership.
func (s *AccountService) PostTransaction(ctx context.Context, req *TransactionRequest, kind models.TransactionKind) (models.StatementView, error) {
	if req == nil {
		return models.StatementView{}, errs.Validationf("transaction request can't be nil")
	}

	lock := s.accountLock(req.AccountID)
	lock.Lock()
	defer lock.Unlock()

	account, err := s.GetAccountByID(ctx, req.AccountID)
	if err != nil {
		return models.StatementView{}, err
	}

	if err := validateAmount(req.Amount, kind, account.Balance); err != nil {
		return models.StatementView{}, err
	}
	if account.Client.ID != req.ClientID {
		return models.StatementView{}, errs.Ownershipf("client with id %s is not associated with account %s", req.ClientID, req.AccountID)
	}

	// Withdrawals are recorded as negative amounts.
	amount := req.Amount
	if kind == models.Withdraw {
		amount = amount.Neg()
	}
	newBalance := account.Balance.Add(amount)

	statement := models.Statement{
		Timestamp:    time.Now().UTC(),
		Amount:       amount,
		BalanceAfter: newBalance,
	}
	account.Balance = newBalance
	account.Statements = append(account.Statements, statement)

	updated, err := s.UpdateAccount(ctx, *account)
	if err != nil {
		return models.StatementView{}, err
	}

	s.refreshView(ctx, &updated)
	if err := s.publisher.Publish(ctx, events.TransactionEventsStream, events.TransactionPosted, events.TransactionPostedEvent{
		AccountID:    updated.ID,
		ClientID:     req.ClientID,
		Type:         string(kind),
		Amount:       req.Amount,
		BalanceAfter: newBalance,
	}); err != nil {
		s.logger.Warn("failed to publish transaction.posted event", zap.Error(err))
	}

	return mapper.StatementToView(statement), nil
}

// GetAccountByID fetches the full aggregate, including statement history,
// or fails with a NotFoundError.
func (s *AccountService) GetAccountByID(ctx context.Context, accountID string) (*models.Account, error) {
	account, ok, err := s.accounts.FindByID(ctx, accountID)
	if err != nil {
		return nil, errs.Unexpected("failed to load account", err)
	}
	if !ok {
		return nil, errs.NotFoundf("account not found for ID: %s", accountID)
	}
	return &account, nil
}

// GetAccountView returns the projected account, serving from the view cache
// when one is configured.
func (s *AccountService) GetAccountView(ctx context.Context, accountID string) (models.AccountView, error) {
	if s.views != nil {
		if view, ok := s.views.Get(ctx, accountViewKeyPrefix+accountID); ok {
			return *view, nil
		}
	}

	account, err := s.GetAccountByID(ctx, accountID)
	if err != nil {
		return models.AccountView{}, err
	}
	view, err := mapper.AccountToView(account)
	if err != nil {
		return models.AccountView{}, err
	}
	if s.views != nil {
		s.views.Set(ctx, accountViewKeyPrefix+accountID, &view)
	}
	return view, nil
}

// UpdateAccount persists the given aggregate as-is (full replace). Exposed
// for direct callers; PostTransaction uses it internally.
func (s *AccountService) UpdateAccount(ctx context.Context, account models.Account) (models.Account, error) {
	updated, err := s.accounts.Save(ctx, account)
	if err != nil {
		return models.Account{}, errs.Unexpected("failed to update account", err)
	}
	return updated, nil
}

// accountLock returns the mutex for accountID, creating it on first use.
func (s *AccountService) accountLock(accountID string) *sync.Mutex {
	s.mapMu.Lock()
	defer s.mapMu.Unlock()

	if _, exists := s.muMap[accountID]; !exists {
		s.muMap[accountID] = &sync.Mutex{}
	}
	return s.muMap[accountID]
}

// refreshView re-projects the account into the view cache after a write.
func (s *AccountService) refreshView(ctx context.Context, account *models.Account) {
	if s.views == nil {
		return
	}
	view, err := mapper.AccountToView(account)
	if err != nil {
		return
	}
	s.views.Set(ctx, accountViewKeyPrefix+account.ID, &view)
}

// validateAmount enforces the transaction amount policy: the amount must be
// positive and, for a withdrawal, strictly below the balance. A withdrawal
// equal to the balance is rejected.
func validateAmount(amount decimal.Decimal, kind models.TransactionKind, balance decimal.Decimal) error {
	if amount.Cmp(decimal.Zero) <= 0 || (kind == models.Withdraw && amount.Cmp(balance) >= 0) {
		return errs.Validationf("amount must be > 0 and must be < balance in the case of a withdrawal")
	}
	return nil
}
