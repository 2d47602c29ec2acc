package events

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Event types
const (
	UserCreated = "user.created"

	AccountCreated = "account.created"
	AccountUpdated = "account.updated"
	AccountClosed  = "account.closed"

	TransactionCreated = "transaction.created"
	BalanceUpdated     = "balance.updated"

	LoanDisbursed = "loan.disbursed"
	LoanRepaid    = "loan.repaid"
	BillPaid      = "bill.paid"
)

// LedgerStream carries every event the API publishes unless configured otherwise.
const LedgerStream = "ledger.events"

// Base event structure
type Event struct {
	Type      string          `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	Data      json.RawMessage `json:"data"`
}

// Decode unmarshals the event payload into v.
func (e Event) Decode(v any) error {
	return json.Unmarshal(e.Data, v)
}

// User events
type UserCreatedEvent struct {
	UserID        string `json:"userId"`
	Email         string `json:"email"`
	FullName      string `json:"fullName"`
	AccountID     string `json:"accountId"`
	AccountNumber string `json:"accountNumber"`
}

// Account events
type AccountCreatedEvent struct {
	AccountID     string `json:"accountId"`
	AccountNumber string `json:"accountNumber"`
	UserID        string `json:"userId"`
	AccountType   string `json:"accountType"`
}

type AccountUpdatedEvent struct {
	AccountID   string `json:"accountId"`
	UserID      string `json:"userId"`
	AccountType string `json:"accountType"`
}

type AccountClosedEvent struct {
	AccountID     string `json:"accountId"`
	AccountNumber string `json:"accountNumber"`
	UserID        string `json:"userId"`
}

// Ledger events
type TransactionCreatedEvent struct {
	TransactionID string          `json:"transactionId"`
	AccountID     string          `json:"accountId"`
	UserID        string          `json:"userId"`
	Type          string          `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	BalanceAfter  decimal.Decimal `json:"balanceAfter"`
}

type BalanceUpdatedEvent struct {
	AccountID  string          `json:"accountId"`
	NewBalance decimal.Decimal `json:"newBalance"`
	Change     decimal.Decimal `json:"change"`
}

type LoanDisbursedEvent struct {
	LoanID         string          `json:"loanId"`
	AccountID      string          `json:"accountId"`
	UserID         string          `json:"userId"`
	Principal      decimal.Decimal `json:"principal"`
	MonthlyPayment decimal.Decimal `json:"monthlyPayment"`
	TermMonths     int             `json:"termMonths"`
}

type LoanRepaidEvent struct {
	LoanID             string          `json:"loanId"`
	AccountID          string          `json:"accountId"`
	UserID             string          `json:"userId"`
	Amount             decimal.Decimal `json:"amount"`
	OutstandingBalance decimal.Decimal `json:"outstandingBalance"`
	Status             string          `json:"status"`
}

type BillPaidEvent struct {
	BillPaymentID   string          `json:"billPaymentId"`
	AccountID       string          `json:"accountId"`
	UserID          string          `json:"userId"`
	BillerName      string          `json:"billerName"`
	Amount          decimal.Decimal `json:"amount"`
	ReferenceNumber string          `json:"referenceNumber,omitempty"`
}
