package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/sgbank/bank-account-api/internal/errs"
	"github.com/sgbank/bank-account-api/internal/middleware"
	"github.com/sgbank/bank-account-api/internal/models"
	"github.com/sgbank/bank-account-api/internal/service"
)

// AccountService defines the ledger operations used by AccountHandler.
type AccountService interface {
	OpenAccount(ctx context.Context, req *service.CreateClientRequest) (models.CreatedAccount, error)
	PostTransaction(ctx context.Context, req *service.TransactionRequest, kind models.TransactionKind) (models.StatementView, error)
	GetAccountView(ctx context.Context, accountID string) (models.AccountView, error)
}

type AccountHandler struct {
	service AccountService
}

func NewAccountHandler(service AccountService) *AccountHandler {
	return &AccountHandler{service: service}
}

type CreateAccountRequest struct {
	LastName  string `json:"lastName"`
	FirstName string `json:"firstName"`
}

type TransactionRequest struct {
	ClientID  string          `json:"clientId" validate:"required"`
	AccountID string          `json:"accountId" validate:"required"`
	Amount    decimal.Decimal `json:"amount"`
}

type CreateTransactionRequest struct {
	ClientID  string          `json:"clientId" validate:"required"`
	AccountID string          `json:"accountId" validate:"required"`
	Amount    decimal.Decimal `json:"amount"`
	Type      string          `json:"type" validate:"required,oneof=DEPOSIT WITHDRAW"`
}

// RegisterRoutes mounts the account endpoints on the given router.
func (h *AccountHandler) RegisterRoutes(r *gin.Engine) {
	v1 := r.Group("/v1/accounts")
	{
		v1.POST("", h.CreateAccount)
		v1.POST("/deposit", h.Deposit)
		v1.POST("/withdraw", h.Withdraw)
		v1.POST("/transactions", h.CreateTransaction)
		v1.GET("/:accountId/statement", h.GetStatement)
	}
}

// CreateAccount opens an account for a new client. The at-least-one-name
// rule lives in the ledger, so an empty body still reaches the service and
// comes back as a ValidationError.
func (h *AccountHandler) CreateAccount(c *gin.Context) {
	var req CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.service.OpenAccount(c.Request.Context(), &service.CreateClientRequest{
		LastName:  req.LastName,
		FirstName: req.FirstName,
	})
	if err != nil {
		respondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *AccountHandler) Deposit(c *gin.Context) {
	h.postTransaction(c, models.Deposit)
}

func (h *AccountHandler) Withdraw(c *gin.Context) {
	h.postTransaction(c, models.Withdraw)
}

// CreateTransaction is the generic variant carrying the kind in the body.
// Unknown kinds never reach the ledger: the oneof validation and
// ParseTransactionKind both reject them here.
func (h *AccountHandler) CreateTransaction(c *gin.Context) {
	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if fieldErrors := middleware.ValidateRequest(req); fieldErrors != nil {
		middleware.RespondWithValidationError(c, fieldErrors)
		return
	}

	kind, err := models.ParseTransactionKind(req.Type)
	if err != nil {
		respondWithDomainError(c, err)
		return
	}

	view, err := h.service.PostTransaction(c.Request.Context(), &service.TransactionRequest{
		ClientID:  req.ClientID,
		AccountID: req.AccountID,
		Amount:    req.Amount,
	}, kind)
	if err != nil {
		respondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// GetStatement returns the projected account: client, balance and the full
// statement history.
func (h *AccountHandler) GetStatement(c *gin.Context) {
	accountID := c.Param("accountId")

	view, err := h.service.GetAccountView(c.Request.Context(), accountID)
	if err != nil {
		respondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *AccountHandler) postTransaction(c *gin.Context, kind models.TransactionKind) {
	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if fieldErrors := middleware.ValidateRequest(req); fieldErrors != nil {
		middleware.RespondWithValidationError(c, fieldErrors)
		return
	}

	view, err := h.service.PostTransaction(c.Request.Context(), &service.TransactionRequest{
		ClientID:  req.ClientID,
		AccountID: req.AccountID,
		Amount:    req.Amount,
	}, kind)
	if err != nil {
		respondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// respondWithDomainError maps the domain error taxonomy to HTTP statuses.
// Unexpected errors stay opaque to the caller.
func respondWithDomainError(c *gin.Context, err error) {
	var (
		validationErr *errs.ValidationError
		notFoundErr   *errs.NotFoundError
		ownershipErr  *errs.OwnershipError
	)
	switch {
	case errors.As(err, &validationErr):
		middleware.RespondWithError(c, http.StatusBadRequest, validationErr.Message)
	case errors.As(err, &notFoundErr):
		middleware.RespondWithError(c, http.StatusNotFound, notFoundErr.Message)
	case errors.As(err, &ownershipErr):
		middleware.RespondWithError(c, http.StatusForbidden, ownershipErr.Message)
	default:
		middleware.RespondWithError(c, http.StatusInternalServerError, "Internal server error")
	}
}
