package handler

import (
	"context"
	"net/http"

	"github.com/Adebayoisreal122/Banking-Backend/internal/cqrs"
	"github.com/Adebayoisreal122/Banking-Backend/internal/middleware"
	"github.com/Adebayoisreal122/Banking-Backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type LoanCommander interface {
	ApplyLoan(context.Context, cqrs.DisburseLoanCommand) (*models.MovementResult, error)
	RepayLoan(context.Context, cqrs.RepayLoanCommand) (*models.MovementResult, error)
}

type LoanQuerier interface {
	GetLoan(context.Context, cqrs.GetLoanQuery) (*models.Loan, error)
	ListLoans(context.Context, cqrs.ListLoansQuery) ([]models.Loan, error)
}

type LoanHandler struct {
	commands LoanCommander
	queries  LoanQuerier
}

type ApplyLoanRequest struct {
	AccountID  string          `json:"accountId" validate:"required"`
	LoanAmount decimal.Decimal `json:"loanAmount" validate:"required,money"`
	TermMonths int             `json:"termMonths" validate:"required,gte=1,lte=480"`
}

type RepayLoanRequest struct {
	LoanID    string          `json:"loanId" validate:"required"`
	AccountID string          `json:"accountId" validate:"required"`
	Amount    decimal.Decimal `json:"amount" validate:"required,money"`
}

type ListLoansResponse struct {
	Loans []models.Loan `json:"loans"`
}

func NewLoanHandler(commands LoanCommander, queries LoanQuerier) *LoanHandler {
	return &LoanHandler{commands: commands, queries: queries}
}

func (h *LoanHandler) ApplyLoan(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	var req ApplyLoanRequest
	if !bindAndValidate(c, &req) {
		return
	}

	result, err := h.commands.ApplyLoan(c.Request.Context(), cqrs.DisburseLoanCommand{
		UserID:     userID,
		AccountID:  req.AccountID,
		Principal:  req.LoanAmount,
		TermMonths: req.TermMonths,
	})
	if err != nil {
		respondWithDomainError(c, err, "Loan application failed")
		return
	}

	c.JSON(http.StatusCreated, result)
}

func (h *LoanHandler) RepayLoan(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	var req RepayLoanRequest
	if !bindAndValidate(c, &req) {
		return
	}

	result, err := h.commands.RepayLoan(c.Request.Context(), cqrs.RepayLoanCommand{
		UserID:    userID,
		LoanID:    req.LoanID,
		AccountID: req.AccountID,
		Amount:    req.Amount,
	})
	if err != nil {
		respondWithDomainError(c, err, "Loan repayment failed")
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *LoanHandler) GetLoan(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	loan, err := h.queries.GetLoan(c.Request.Context(), cqrs.GetLoanQuery{
		LoanID: c.Param("id"),
		UserID: userID,
	})
	if err != nil {
		respondWithDomainError(c, err, "Failed to fetch loan")
		return
	}

	c.JSON(http.StatusOK, loan)
}

func (h *LoanHandler) ListLoans(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	loans, err := h.queries.ListLoans(c.Request.Context(), cqrs.ListLoansQuery{UserID: userID})
	if err != nil {
		respondWithDomainError(c, err, "Failed to fetch loans")
		return
	}

	c.JSON(http.StatusOK, ListLoansResponse{Loans: loans})
}
