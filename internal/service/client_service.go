package service

import (
	"context"
	"time"

	"github.com/sgbank/bank-account-api/internal/errs"
	"github.com/sgbank/bank-account-api/internal/models"
	"github.com/sgbank/bank-account-api/internal/storage"
	"github.com/sgbank/bank-account-api/internal/utils"
)

// ClientService creates and looks up client identity records.
type ClientService struct {
	clients storage.ClientStore
}

func NewClientService(clients storage.ClientStore) *ClientService {
	return &ClientService{clients: clients}
}

// CreateClient validates and persists a new client. The request must be
// present and carry at least one non-blank name; the store assigns the ID.
func (s *ClientService) CreateClient(ctx context.Context, req *CreateClientRequest) (models.Client, error) {
	if err := validateClientRequest(req); err != nil {
		return models.Client{}, err
	}

	client := models.Client{
		LastName:  req.LastName,
		FirstName: req.FirstName,
		CreatedAt: time.Now().UTC(),
	}

	created, err := s.clients.Save(ctx, client)
	if err != nil {
		return models.Client{}, errs.Unexpected("failed to save client", err)
	}
	return created, nil
}

// GetClientByID fetches a client or fails with a NotFoundError.
func (s *ClientService) GetClientByID(ctx context.Context, id string) (models.Client, error) {
	client, ok, err := s.clients.FindByID(ctx, id)
	if err != nil {
		return models.Client{}, errs.Unexpected("failed to load client", err)
	}
	if !ok {
		return models.Client{}, errs.NotFoundf("client not found for ID: %s", id)
	}
	return client, nil
}

// validateClientRequest accepts a client with only a first or only a last
// name; both blank (or an absent request) is rejected.
func validateClientRequest(req *CreateClientRequest) error {
	if req == nil || (utils.IsBlank(req.LastName) && utils.IsBlank(req.FirstName)) {
		return errs.Validationf("client can't be nil and should have either lastName or firstName")
	}
	return nil
}
