package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Adebayoisreal122/Banking-Backend/internal/ledger"
	"github.com/shopspring/decimal"
)

// Reconciliation compares an account's stored balance with the net of its
// transaction records.
type Reconciliation struct {
	AccountID        string          `json:"accountId"`
	StoredBalance    decimal.Decimal `json:"storedBalance"`
	LedgerBalance    decimal.Decimal `json:"ledgerBalance"`
	TransactionCount int64           `json:"transactionCount"`
}

func (r Reconciliation) Matches() bool {
	return r.StoredBalance.Equal(r.LedgerBalance)
}

type Reconciler struct {
	db *sql.DB
}

func NewReconciler(db *sql.DB) *Reconciler {
	return &Reconciler{db: db}
}

// ReconcileBalance reads the balance and the transaction sum in a single
// statement, so both figures come from one snapshot under any isolation level.
func (r *Reconciler) ReconcileBalance(ctx context.Context, accountID string) (*Reconciliation, error) {
	var stored, net, count int64
	err := r.db.QueryRowContext(ctx, queryReconcileAccount, accountID).Scan(&stored, &net, &count)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ledger.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to reconcile account: %w", err)
	}

	return &Reconciliation{
		AccountID:        accountID,
		StoredBalance:    ledger.FromCents(stored),
		LedgerBalance:    ledger.FromCents(net),
		TransactionCount: count,
	}, nil
}
