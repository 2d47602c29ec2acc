package ledger

import (
	"context"
	"time"

	"github.com/Adebayoisreal122/Banking-Backend/internal/models"
	"github.com/shopspring/decimal"
)

// Store opens units of work against the ledger store.
type Store interface {
	Begin(ctx context.Context) (Tx, error)
}

// Tx is a single all-or-nothing unit of work. Rollback after Commit is a no-op.
type Tx interface {
	Accounts() AccountStore
	Transactions() TransactionStore
	Loans() LoanStore
	Bills() BillStore
	Commit() error
	Rollback() error
}

// AccountSelector identifies an account by id or by number. An empty OwnerID
// matches any owner.
type AccountSelector struct {
	ID            string
	AccountNumber string
	OwnerID       string
}

type AccountStore interface {
	// FindActive returns ErrAccountNotFound unless an active account matches.
	FindActive(ctx context.Context, sel AccountSelector) (*models.Account, error)
	// DecrementBalance subtracts amount only while the account is active and
	// holds at least amount. ok is false when that guard fails.
	DecrementBalance(ctx context.Context, accountID string, amount decimal.Decimal, at time.Time) (balance decimal.Decimal, ok bool, err error)
	// IncrementBalance adds amount while the account is active.
	IncrementBalance(ctx context.Context, accountID string, amount decimal.Decimal, at time.Time) (balance decimal.Decimal, ok bool, err error)
}

type TransactionStore interface {
	Insert(ctx context.Context, txn *models.Transaction) error
}

type LoanStore interface {
	Insert(ctx context.Context, loan *models.Loan) error
	// FindActive returns ErrLoanNotFound unless the owner holds an active loan with that id.
	FindActive(ctx context.Context, loanID, ownerID string) (*models.Loan, error)
	// ApplyRepayment moves outstanding from previous to next. ok is false when
	// the loan is no longer active or its outstanding balance moved.
	ApplyRepayment(ctx context.Context, loanID string, previous, next decimal.Decimal, status string, at time.Time) (ok bool, err error)
}

type BillStore interface {
	Insert(ctx context.Context, payment *models.BillPayment) error
}
