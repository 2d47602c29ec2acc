package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account types.
const (
	AccountTypeSavings  = "savings"
	AccountTypeChecking = "checking"
	AccountTypeBusiness = "business"
)

// Account statuses. Accounts are never deleted, only closed.
const (
	AccountStatusActive    = "active"
	AccountStatusSuspended = "suspended"
	AccountStatusClosed    = "closed"
)

// Transaction types. Amounts are always positive; the type carries the direction.
const (
	TransactionTypeTransferIn       = "transfer_in"
	TransactionTypeTransferOut      = "transfer_out"
	TransactionTypeWithdrawal       = "withdrawal"
	TransactionTypeDeposit          = "deposit"
	TransactionTypeLoanDisbursement = "loan_disbursement"
	TransactionTypeBillPayment      = "bill_payment"
	TransactionTypeLoanRepayment    = "loan_repayment"
)

// Loan statuses.
const (
	LoanStatusActive    = "active"
	LoanStatusPaid      = "paid"
	LoanStatusDefaulted = "defaulted"
)

// Record statuses shared by transactions and bill payments.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"fullName"`
	Phone        string    `json:"phone,omitempty"`
	CreatedAt    time.Time `json:"createdTimestamp"`
	UpdatedAt    time.Time `json:"updatedTimestamp"`
}

type Account struct {
	ID            string          `json:"id"`
	UserID        string          `json:"-"`
	AccountNumber string          `json:"accountNumber"`
	AccountType   string          `json:"accountType"`
	Balance       decimal.Decimal `json:"balance"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"createdTimestamp"`
	UpdatedAt     time.Time       `json:"updatedTimestamp"`
}

// IsActive reports whether the account may take part in money movement.
func (a *Account) IsActive() bool {
	return a.Status == AccountStatusActive
}

type Transaction struct {
	ID           string          `json:"id"`
	AccountID    string          `json:"accountId"`
	Type         string          `json:"transactionType"`
	Amount       decimal.Decimal `json:"amount"`
	BalanceAfter decimal.Decimal `json:"balanceAfter"`
	Description  string          `json:"description,omitempty"`
	Counterparty string          `json:"counterpartyAccount,omitempty"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"createdTimestamp"`
}

// IsCredit reports whether the transaction increased the account balance.
func (t *Transaction) IsCredit() bool {
	switch t.Type {
	case TransactionTypeDeposit, TransactionTypeTransferIn, TransactionTypeLoanDisbursement:
		return true
	}
	return false
}

type Loan struct {
	ID                 string          `json:"id"`
	UserID             string          `json:"-"`
	AccountID          string          `json:"accountId"`
	Principal          decimal.Decimal `json:"loanAmount"`
	InterestRate       decimal.Decimal `json:"interestRate"`
	TermMonths         int             `json:"termMonths"`
	MonthlyPayment     decimal.Decimal `json:"monthlyPayment"`
	OutstandingBalance decimal.Decimal `json:"outstandingBalance"`
	Status             string          `json:"status"`
	ApprovedAt         time.Time       `json:"approvedAt"`
	CreatedAt          time.Time       `json:"createdTimestamp"`
	UpdatedAt          time.Time       `json:"updatedTimestamp"`
}

type BillPayment struct {
	ID              string          `json:"id"`
	AccountID       string          `json:"accountId"`
	BillerName      string          `json:"billerName"`
	Amount          decimal.Decimal `json:"amount"`
	ReferenceNumber string          `json:"referenceNumber,omitempty"`
	Status          string          `json:"status"`
	PaymentDate     time.Time       `json:"paymentDate"`
}
