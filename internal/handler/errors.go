package handler

import (
	"errors"
	"net/http"

	"github.com/Adebayoisreal122/Banking-Backend/internal/cqrs"
	"github.com/Adebayoisreal122/Banking-Backend/internal/ledger"
	"github.com/Adebayoisreal122/Banking-Backend/internal/middleware"
	"github.com/Adebayoisreal122/Banking-Backend/internal/repository"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type errorMapping struct {
	kind    error
	status  int
	message string
}

// Checked in order; the first kind the error wraps wins.
var errorMappings = []errorMapping{
	{ledger.ErrStoreUnavailable, http.StatusServiceUnavailable, "Service temporarily unavailable, please retry"},
	{ledger.ErrInvalidAmount, http.StatusBadRequest, "Amount must be positive, within the per-transaction limit and have at most two decimal places"},
	{ledger.ErrInvalidTerm, http.StatusBadRequest, "Loan term must be between 1 and 480 months"},
	{ledger.ErrSelfTransfer, http.StatusBadRequest, "Cannot transfer to the same account"},
	{ledger.ErrInsufficientFunds, http.StatusUnprocessableEntity, "Insufficient funds"},
	{ledger.ErrAmountExceedsBalance, http.StatusUnprocessableEntity, "Amount exceeds outstanding loan balance"},
	{ledger.ErrAccountNotEmpty, http.StatusUnprocessableEntity, "Account balance must be zero before closing"},
	{ledger.ErrAccountNotFound, http.StatusNotFound, "Account not found"},
	{ledger.ErrLoanNotFound, http.StatusNotFound, "Loan not found"},
	{repository.ErrUserNotFound, http.StatusNotFound, "User not found"},
	{ledger.ErrConcurrentModification, http.StatusConflict, "The resource changed concurrently, please retry"},
	{repository.ErrEmailExists, http.StatusConflict, "Email already exists"},
	{ledger.ErrDuplicateAccountNumber, http.StatusServiceUnavailable, "Could not allocate an account number, please retry"},
	{cqrs.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid credentials"},
}

// respondWithDomainError writes the status and message matching err's kind,
// or 500 with fallback for anything unrecognised.
func respondWithDomainError(c *gin.Context, err error, fallback string) {
	for _, m := range errorMappings {
		if errors.Is(err, m.kind) {
			middleware.RespondWithError(c, m.status, m.message)
			return
		}
	}
	zap.L().Error(fallback, zap.String("path", c.FullPath()), zap.Error(err))
	_ = c.Error(err)
	middleware.RespondWithError(c, http.StatusInternalServerError, fallback)
}

// bindAndValidate decodes the JSON body into req and runs struct validation,
// writing the 400 response itself when either fails.
func bindAndValidate(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return false
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return false
	}
	return true
}
