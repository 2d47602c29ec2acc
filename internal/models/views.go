package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// UserView is the read-optimised projection of a user.
// It never exposes PasswordHash.
type UserView struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"createdTimestamp"`
	UpdatedAt time.Time `json:"updatedTimestamp"`
}

// AccountView is the read-optimised projection of an account.
// UserID is populated for ownership checks but never serialised to the API response.
type AccountView struct {
	ID            string          `json:"id"`
	UserID        string          `json:"-"`
	AccountNumber string          `json:"accountNumber"`
	AccountType   string          `json:"accountType"`
	Balance       decimal.Decimal `json:"balance"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"createdTimestamp"`
	UpdatedAt     time.Time       `json:"updatedTimestamp"`
}

// DashboardView summarises everything a user holds with the bank.
type DashboardView struct {
	Accounts           []AccountView   `json:"accounts"`
	RecentTransactions []Transaction   `json:"recentTransactions"`
	ActiveLoans        []Loan          `json:"activeLoans"`
	TotalBalance       decimal.Decimal `json:"totalBalance"`
}

// MovementResult is returned by every money-movement operation.
type MovementResult struct {
	NewBalance   decimal.Decimal `json:"newBalance"`
	Transactions []Transaction   `json:"transactions"`
	Loan         *Loan           `json:"loan,omitempty"`
	BillPayment  *BillPayment    `json:"billPayment,omitempty"`
}

func UserToView(u *User) *UserView {
	return &UserView{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		Phone:     u.Phone,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func AccountToView(a *Account) *AccountView {
	return &AccountView{
		ID:            a.ID,
		UserID:        a.UserID,
		AccountNumber: a.AccountNumber,
		AccountType:   a.AccountType,
		Balance:       a.Balance,
		Status:        a.Status,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

// AuthResult is returned by signup, signin and token refresh.
type AuthResult struct {
	Token   string       `json:"token"`
	User    *UserView    `json:"user,omitempty"`
	Account *AccountView `json:"account,omitempty"`
}
