package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Adebayoisreal122/Banking-Backend/internal/ledger"
	"github.com/Adebayoisreal122/Banking-Backend/internal/models"
	"go.uber.org/zap"
)

var _ ledger.NumberChecker = (*AccountWriteRepository)(nil)

// AccountWriteRepository handles account lifecycle writes. Balance changes go
// through LedgerStore instead.
type AccountWriteRepository struct {
	db *sql.DB
}

func NewAccountWriteRepository(db *sql.DB) *AccountWriteRepository {
	return &AccountWriteRepository{db: db}
}

func (r *AccountWriteRepository) Create(ctx context.Context, account *models.Account) error {
	if err := insertAccount(ctx, r.db, account); err != nil {
		return err
	}
	zap.L().Info("Account created",
		zap.String("account_id", account.ID),
		zap.String("account_number", account.AccountNumber),
	)
	return nil
}

// GetByID returns the account in any status. Accounts owned by someone other
// than ownerID are reported as not found.
func (r *AccountWriteRepository) GetByID(ctx context.Context, id, ownerID string) (*models.Account, error) {
	account, err := scanAccount(r.db.QueryRowContext(ctx, queryGetAccountByID, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ledger.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	if account.UserID != ownerID {
		return nil, ledger.ErrAccountNotFound
	}
	return account, nil
}

func (r *AccountWriteRepository) AccountNumberExists(ctx context.Context, number string) (bool, error) {
	var exists bool
	if err := r.db.QueryRowContext(ctx, queryAccountNumberExists, number).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check account number: %w", err)
	}
	return exists, nil
}

func (r *AccountWriteRepository) UpdateType(ctx context.Context, id, ownerID, accountType string, at time.Time) (*models.Account, error) {
	result, err := r.db.ExecContext(ctx, queryUpdateAccountType, accountType, at, id, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to update account: %w", err)
	}
	if err := expectOneRow(result, ledger.ErrAccountNotFound); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id, ownerID)
}

// Close marks a zero-balance account closed.
func (r *AccountWriteRepository) Close(ctx context.Context, id, ownerID string, at time.Time) (*models.Account, error) {
	result, err := r.db.ExecContext(ctx, queryCloseAccount, at, id, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to close account: %w", err)
	}
	closeErr := expectOneRow(result, ledger.ErrAccountNotFound)
	if closeErr != nil && !errors.Is(closeErr, ledger.ErrAccountNotFound) {
		return nil, closeErr
	}

	account, err := r.GetByID(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	if closeErr != nil {
		if account.Status == models.AccountStatusClosed {
			return nil, ledger.ErrAccountNotFound
		}
		return nil, ledger.ErrAccountNotEmpty
	}
	return account, nil
}
