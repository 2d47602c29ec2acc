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

// UserRepository handles user persistence, including signup which creates the
// user together with their first account.
type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// CreateWithAccount inserts the user and the account in one transaction.
func (r *UserRepository) CreateWithAccount(ctx context.Context, user *models.User, account *models.Account) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			zap.L().Warn("Failed to roll back signup", zap.Error(err))
		}
	}()

	var exists bool
	if err := tx.QueryRowContext(ctx, queryUserEmailExists, user.Email).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return ErrEmailExists
	}

	_, err = tx.ExecContext(ctx, queryInsertUser,
		user.ID, user.Email, user.PasswordHash, user.FullName, user.Phone, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrEmailExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	if err := insertAccount(ctx, tx, account); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit signup: %w", err)
	}
	zap.L().Info("User created", zap.String("user_id", user.ID), zap.String("account_id", account.ID))
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	user, err := scanUser(r.db.QueryRowContext(ctx, queryGetUserByID, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := scanUser(r.db.QueryRowContext(ctx, queryGetUserByEmail, email))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id, fullName, phone string, at time.Time) error {
	result, err := r.db.ExecContext(ctx, queryUpdateUserProfile, fullName, phone, at, id)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return expectOneRow(result, ErrUserNotFound)
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id, passwordHash string, at time.Time) error {
	result, err := r.db.ExecContext(ctx, queryUpdateUserPassword, passwordHash, at, id)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return expectOneRow(result, ErrUserNotFound)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertAccount(ctx context.Context, db execer, account *models.Account) error {
	balance, err := ledger.ToCents(account.Balance)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, queryInsertAccount,
		account.ID, account.UserID, account.AccountNumber, account.AccountType,
		balance, account.Status, account.CreatedAt, account.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ledger.ErrDuplicateAccountNumber
		}
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

func expectOneRow(result sql.Result, notFound error) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return notFound
	}
	return nil
}
