package handler

import (
	"context"
	"net/http"

	"github.com/Adebayoisreal122/Banking-Backend/internal/cqrs"
	"github.com/Adebayoisreal122/Banking-Backend/internal/middleware"
	"github.com/Adebayoisreal122/Banking-Backend/internal/models"
	"github.com/gin-gonic/gin"
)

// AccountCommander defines the write-side operations used by AccountHandler.
type AccountCommander interface {
	CreateAccount(context.Context, cqrs.CreateAccountCommand) (*models.AccountView, error)
	UpdateAccount(context.Context, cqrs.UpdateAccountCommand) (*models.AccountView, error)
	CloseAccount(context.Context, cqrs.CloseAccountCommand) (*models.AccountView, error)
}

// AccountQuerier defines the read-side operations used by AccountHandler.
type AccountQuerier interface {
	GetAccount(context.Context, cqrs.GetAccountQuery) (*models.AccountView, error)
	ListAccounts(context.Context, cqrs.ListAccountsQuery) ([]models.AccountView, error)
	Dashboard(context.Context, cqrs.DashboardQuery) (*models.DashboardView, error)
}

// AccountHandler handles account-related HTTP requests.
type AccountHandler struct {
	commands AccountCommander
	queries  AccountQuerier
}

type CreateAccountRequest struct {
	AccountType string `json:"accountType" validate:"required,oneof=savings checking business"`
}

type UpdateAccountRequest struct {
	AccountType string `json:"accountType" validate:"required,oneof=savings checking business"`
}

type ListAccountsResponse struct {
	Accounts []models.AccountView `json:"accounts"`
}

func NewAccountHandler(commands AccountCommander, queries AccountQuerier) *AccountHandler {
	return &AccountHandler{commands: commands, queries: queries}
}

func (h *AccountHandler) CreateAccount(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	var req CreateAccountRequest
	if !bindAndValidate(c, &req) {
		return
	}

	view, err := h.commands.CreateAccount(c.Request.Context(), cqrs.CreateAccountCommand{
		UserID:      userID,
		AccountType: req.AccountType,
	})
	if err != nil {
		respondWithDomainError(c, err, "Failed to create account")
		return
	}

	c.JSON(http.StatusCreated, view)
}

func (h *AccountHandler) ListAccounts(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	views, err := h.queries.ListAccounts(c.Request.Context(), cqrs.ListAccountsQuery{UserID: userID})
	if err != nil {
		respondWithDomainError(c, err, "Failed to list accounts")
		return
	}

	c.JSON(http.StatusOK, ListAccountsResponse{Accounts: views})
}

func (h *AccountHandler) GetAccount(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	view, err := h.queries.GetAccount(c.Request.Context(), cqrs.GetAccountQuery{
		AccountID:        c.Param("id"),
		RequestingUserID: userID,
	})
	if err != nil {
		respondWithDomainError(c, err, "Failed to get account")
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *AccountHandler) UpdateAccount(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	var req UpdateAccountRequest
	if !bindAndValidate(c, &req) {
		return
	}

	view, err := h.commands.UpdateAccount(c.Request.Context(), cqrs.UpdateAccountCommand{
		AccountID:        c.Param("id"),
		RequestingUserID: userID,
		AccountType:      req.AccountType,
	})
	if err != nil {
		respondWithDomainError(c, err, "Failed to update account")
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *AccountHandler) CloseAccount(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	view, err := h.commands.CloseAccount(c.Request.Context(), cqrs.CloseAccountCommand{
		AccountID:        c.Param("id"),
		RequestingUserID: userID,
	})
	if err != nil {
		respondWithDomainError(c, err, "Failed to close account")
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *AccountHandler) Dashboard(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	view, err := h.queries.Dashboard(c.Request.Context(), cqrs.DashboardQuery{UserID: userID})
	if err != nil {
		respondWithDomainError(c, err, "Failed to load dashboard")
		return
	}

	c.JSON(http.StatusOK, view)
}
