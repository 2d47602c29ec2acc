package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/Adebayoisreal122/Banking-Backend/internal/cqrs"
	"github.com/Adebayoisreal122/Banking-Backend/internal/middleware"
	"github.com/Adebayoisreal122/Banking-Backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// TransactionCommander defines the money-movement operations used by TransactionHandler.
type TransactionCommander interface {
	Deposit(context.Context, cqrs.DepositCommand) (*models.MovementResult, error)
	Withdraw(context.Context, cqrs.WithdrawCommand) (*models.MovementResult, error)
	Transfer(context.Context, cqrs.TransferCommand) (*models.MovementResult, error)
}

// TransactionQuerier defines the read-side operations used by TransactionHandler.
type TransactionQuerier interface {
	ListTransactions(context.Context, cqrs.ListTransactionsQuery) ([]models.Transaction, error)
}

// TransactionHandler handles deposits, withdrawals, transfers and history.
type TransactionHandler struct {
	commands TransactionCommander
	queries  TransactionQuerier
}

type MovementRequest struct {
	AccountID   string          `json:"accountId" validate:"required"`
	Amount      decimal.Decimal `json:"amount" validate:"required,money"`
	Description string          `json:"description" validate:"omitempty,max=255"`
}

type TransferRequest struct {
	FromAccountID   string          `json:"fromAccountId" validate:"required"`
	ToAccountNumber string          `json:"toAccountNumber" validate:"required,len=10,numeric"`
	Amount          decimal.Decimal `json:"amount" validate:"required,money"`
	Description     string          `json:"description" validate:"omitempty,max=255"`
}

type ListTransactionsResponse struct {
	Transactions []models.Transaction `json:"transactions"`
}

func NewTransactionHandler(commands TransactionCommander, queries TransactionQuerier) *TransactionHandler {
	return &TransactionHandler{commands: commands, queries: queries}
}

func (h *TransactionHandler) Deposit(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	var req MovementRequest
	if !bindAndValidate(c, &req) {
		return
	}

	result, err := h.commands.Deposit(c.Request.Context(), cqrs.DepositCommand{
		UserID:      userID,
		AccountID:   req.AccountID,
		Amount:      req.Amount,
		Description: req.Description,
	})
	if err != nil {
		respondWithDomainError(c, err, "Deposit failed")
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *TransactionHandler) Withdraw(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	var req MovementRequest
	if !bindAndValidate(c, &req) {
		return
	}

	result, err := h.commands.Withdraw(c.Request.Context(), cqrs.WithdrawCommand{
		UserID:      userID,
		AccountID:   req.AccountID,
		Amount:      req.Amount,
		Description: req.Description,
	})
	if err != nil {
		respondWithDomainError(c, err, "Withdrawal failed")
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *TransactionHandler) Transfer(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	var req TransferRequest
	if !bindAndValidate(c, &req) {
		return
	}

	result, err := h.commands.Transfer(c.Request.Context(), cqrs.TransferCommand{
		UserID:          userID,
		FromAccountID:   req.FromAccountID,
		ToAccountNumber: req.ToAccountNumber,
		Amount:          req.Amount,
		Description:     req.Description,
	})
	if err != nil {
		respondWithDomainError(c, err, "Transfer failed")
		return
	}

	c.JSON(http.StatusOK, result)
}

// ListTransactions accepts optional accountId and limit query parameters.
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			middleware.RespondWithError(c, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	txns, err := h.queries.ListTransactions(c.Request.Context(), cqrs.ListTransactionsQuery{
		UserID:    userID,
		AccountID: c.Query("accountId"),
		Limit:     limit,
	})
	if err != nil {
		respondWithDomainError(c, err, "Failed to fetch transactions")
		return
	}

	c.JSON(http.StatusOK, ListTransactionsResponse{Transactions: txns})
}
