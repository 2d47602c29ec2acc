package cqrs

import "github.com/shopspring/decimal"

type SignupCommand struct {
	Email    string
	Password string
	FullName string
	Phone    string
}

type UpdateProfileCommand struct {
	UserID   string
	FullName string
	Phone    string
}

type ChangePasswordCommand struct {
	UserID          string
	CurrentPassword string
	NewPassword     string
}

type LoginCommand struct {
	Email    string
	Password string
}

type RefreshTokenCommand struct {
	Token string
}

type CreateAccountCommand struct {
	UserID      string
	AccountType string
}

type UpdateAccountCommand struct {
	AccountID        string
	RequestingUserID string
	AccountType      string
}

type CloseAccountCommand struct {
	AccountID        string
	RequestingUserID string
}

// ---------- Money movement ----------

type DepositCommand struct {
	UserID      string
	AccountID   string
	Amount      decimal.Decimal
	Description string
}

type WithdrawCommand struct {
	UserID      string
	AccountID   string
	Amount      decimal.Decimal
	Description string
}

// TransferCommand moves money to any active account, identified by its number.
type TransferCommand struct {
	UserID          string
	FromAccountID   string
	ToAccountNumber string
	Amount          decimal.Decimal
	Description     string
}

type PayBillCommand struct {
	UserID          string
	AccountID       string
	BillerName      string
	Amount          decimal.Decimal
	ReferenceNumber string
}

type DisburseLoanCommand struct {
	UserID     string
	AccountID  string
	Principal  decimal.Decimal
	TermMonths int
}

type RepayLoanCommand struct {
	UserID    string
	LoanID    string
	AccountID string
	Amount    decimal.Decimal
}
