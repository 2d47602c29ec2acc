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

type BillCommander interface {
	PayBill(context.Context, cqrs.PayBillCommand) (*models.MovementResult, error)
}

type BillQuerier interface {
	ListBillPayments(context.Context, cqrs.ListBillPaymentsQuery) ([]models.BillPayment, error)
}

type BillHandler struct {
	commands BillCommander
	queries  BillQuerier
}

type PayBillRequest struct {
	AccountID       string          `json:"accountId" validate:"required"`
	BillerName      string          `json:"billerName" validate:"required,max=255"`
	Amount          decimal.Decimal `json:"amount" validate:"required,money"`
	ReferenceNumber string          `json:"referenceNumber" validate:"omitempty,max=100"`
}

type ListBillPaymentsResponse struct {
	BillPayments []models.BillPayment `json:"billPayments"`
}

func NewBillHandler(commands BillCommander, queries BillQuerier) *BillHandler {
	return &BillHandler{commands: commands, queries: queries}
}

func (h *BillHandler) PayBill(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	var req PayBillRequest
	if !bindAndValidate(c, &req) {
		return
	}

	result, err := h.commands.PayBill(c.Request.Context(), cqrs.PayBillCommand{
		UserID:          userID,
		AccountID:       req.AccountID,
		BillerName:      req.BillerName,
		Amount:          req.Amount,
		ReferenceNumber: req.ReferenceNumber,
	})
	if err != nil {
		respondWithDomainError(c, err, "Bill payment failed")
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *BillHandler) ListBillPayments(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	payments, err := h.queries.ListBillPayments(c.Request.Context(), cqrs.ListBillPaymentsQuery{UserID: userID})
	if err != nil {
		respondWithDomainError(c, err, "Failed to fetch bill payments")
		return
	}

	c.JSON(http.StatusOK, ListBillPaymentsResponse{BillPayments: payments})
}
