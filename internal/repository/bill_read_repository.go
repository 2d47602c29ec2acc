package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Adebayoisreal122/Banking-Backend/internal/models"
)

type BillReadRepository struct {
	db *sql.DB
}

func NewBillReadRepository(db *sql.DB) *BillReadRepository {
	return &BillReadRepository{db: db}
}

func (r *BillReadRepository) ListByUser(ctx context.Context, userID string, limit int) ([]models.BillPayment, error) {
	rows, err := r.db.QueryContext(ctx, queryListBillPaymentsByUser, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list bill payments: %w", err)
	}
	defer rows.Close()

	payments := []models.BillPayment{}
	for rows.Next() {
		payment, err := scanBill(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bill payment: %w", err)
		}
		payments = append(payments, *payment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list bill payments: %w", err)
	}
	return payments, nil
}
