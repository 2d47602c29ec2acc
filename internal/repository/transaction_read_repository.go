package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Adebayoisreal122/Banking-Backend/internal/models"
)

type TransactionReadRepository struct {
	db *sql.DB
}

func NewTransactionReadRepository(db *sql.DB) *TransactionReadRepository {
	return &TransactionReadRepository{db: db}
}

// ListByAccount returns the newest transactions of one account first.
func (r *TransactionReadRepository) ListByAccount(ctx context.Context, accountID string, limit int) ([]models.Transaction, error) {
	return r.list(ctx, queryListTransactionsByAccount, accountID, limit)
}

// ListByUser returns the newest transactions across every account the user holds.
func (r *TransactionReadRepository) ListByUser(ctx context.Context, userID string, limit int) ([]models.Transaction, error) {
	return r.list(ctx, queryListTransactionsByUser, userID, limit)
}

func (r *TransactionReadRepository) list(ctx context.Context, query, key string, limit int) ([]models.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, query, key, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	txns := []models.Transaction{}
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txns = append(txns, *txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return txns, nil
}
