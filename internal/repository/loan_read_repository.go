package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Adebayoisreal122/Banking-Backend/internal/ledger"
	"github.com/Adebayoisreal122/Banking-Backend/internal/models"
)

type LoanReadRepository struct {
	db *sql.DB
}

func NewLoanReadRepository(db *sql.DB) *LoanReadRepository {
	return &LoanReadRepository{db: db}
}

func (r *LoanReadRepository) GetForOwner(ctx context.Context, loanID, ownerID string) (*models.Loan, error) {
	loan, err := scanLoan(r.db.QueryRowContext(ctx, queryGetLoanForOwner, loanID, ownerID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ledger.ErrLoanNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get loan: %w", err)
	}
	return loan, nil
}

func (r *LoanReadRepository) ListByUser(ctx context.Context, userID string) ([]models.Loan, error) {
	return r.list(ctx, queryListLoansByUser, userID)
}

func (r *LoanReadRepository) ListActiveByUser(ctx context.Context, userID string) ([]models.Loan, error) {
	return r.list(ctx, queryListActiveLoansByUser, userID)
}

func (r *LoanReadRepository) list(ctx context.Context, query, userID string) ([]models.Loan, error) {
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list loans: %w", err)
	}
	defer rows.Close()

	loans := []models.Loan{}
	for rows.Next() {
		loan, err := scanLoan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan loan: %w", err)
		}
		loans = append(loans, *loan)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list loans: %w", err)
	}
	return loans, nil
}
