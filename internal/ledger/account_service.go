package ledger

import (
	"context"
	"time"

	"github.com/Adebayoisreal122/Banking-Backend/internal/models"
	"github.com/shopspring/decimal"
)

// AccountService owns balance mutation. Every call runs against the account
// store of an open unit of work.
type AccountService struct {
	now func() time.Time
}

func NewAccountService(now func() time.Time) *AccountService {
	return &AccountService{now: now}
}

// Resolve loads an active account for mutation.
func (s *AccountService) Resolve(ctx context.Context, accounts AccountStore, sel AccountSelector) (*models.Account, error) {
	return accounts.FindActive(ctx, sel)
}

// Debit decrements the balance of account by amount with a conditional update,
// so concurrent debits can never take the balance below zero. On success the
// account carries its new balance.
func (s *AccountService) Debit(ctx context.Context, accounts AccountStore, account *models.Account, amount decimal.Decimal) error {
	if err := ValidateAmount(amount); err != nil {
		return err
	}

	at := s.now()
	balance, ok, err := accounts.DecrementBalance(ctx, account.ID, amount, at)
	if err != nil {
		return err
	}
	if !ok {
		// The guard covers status and funds; tell them apart.
		if _, err := accounts.FindActive(ctx, AccountSelector{ID: account.ID}); err != nil {
			return err
		}
		return ErrInsufficientFunds
	}

	account.Balance = balance
	account.UpdatedAt = at
	return nil
}

// Credit increments the balance of account by amount. There is no upper bound.
func (s *AccountService) Credit(ctx context.Context, accounts AccountStore, account *models.Account, amount decimal.Decimal) error {
	if err := ValidateAmount(amount); err != nil {
		return err
	}

	at := s.now()
	balance, ok, err := accounts.IncrementBalance(ctx, account.ID, amount, at)
	if err != nil {
		return err
	}
	if !ok {
		return ErrAccountNotFound
	}

	account.Balance = balance
	account.UpdatedAt = at
	return nil
}
