package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/Adebayoisreal122/Banking-Backend/internal/models"
	"github.com/shopspring/decimal"
)

// Entry describes one balance-affecting event. Account must already carry the
// balance that resulted from the paired mutation.
type Entry struct {
	Account      *models.Account
	Type         string
	Amount       decimal.Decimal
	Description  string
	Counterparty string
}

// Recorder appends immutable transaction records.
type Recorder struct {
	newID func(prefix string) string
	now   func() time.Time
}

func NewRecorder(newID func(prefix string) string, now func() time.Time) *Recorder {
	return &Recorder{newID: newID, now: now}
}

func (r *Recorder) Record(ctx context.Context, txns TransactionStore, entry Entry) (*models.Transaction, error) {
	if !knownTransactionType(entry.Type) {
		return nil, fmt.Errorf("unknown transaction type %q", entry.Type)
	}
	if err := ValidateAmount(entry.Amount); err != nil {
		return nil, err
	}

	txn := &models.Transaction{
		ID:           r.newID("txn"),
		AccountID:    entry.Account.ID,
		Type:         entry.Type,
		Amount:       entry.Amount,
		BalanceAfter: entry.Account.Balance,
		Description:  entry.Description,
		Counterparty: entry.Counterparty,
		Status:       models.StatusCompleted,
		CreatedAt:    r.now(),
	}
	if err := txns.Insert(ctx, txn); err != nil {
		return nil, err
	}
	return txn, nil
}

func knownTransactionType(t string) bool {
	switch t {
	case models.TransactionTypeTransferIn,
		models.TransactionTypeTransferOut,
		models.TransactionTypeWithdrawal,
		models.TransactionTypeDeposit,
		models.TransactionTypeLoanDisbursement,
		models.TransactionTypeBillPayment,
		models.TransactionTypeLoanRepayment:
		return true
	}
	return false
}
