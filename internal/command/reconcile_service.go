package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/Adebayoisreal122/Banking-Backend/internal/events"
	"github.com/Adebayoisreal122/Banking-Backend/internal/ledger"
	"github.com/Adebayoisreal122/Banking-Backend/internal/repository"
	"go.uber.org/zap"
)

type BalanceReconciler interface {
	ReconcileBalance(ctx context.Context, accountID string) (*repository.Reconciliation, error)
}

// ReconcileService checks, for every balance.updated event, that the stored
// balance still equals the net of the account's transaction records.
type ReconcileService struct {
	reconciler BalanceReconciler
}

func NewReconcileService(reconciler BalanceReconciler) *ReconcileService {
	return &ReconcileService{reconciler: reconciler}
}

// HandleLedgerEvent is an events.Handler. Returning an error leaves the
// message pending for redelivery, so only store failures do.
func (s *ReconcileService) HandleLedgerEvent(ctx context.Context, event events.Event) error {
	if event.Type != events.BalanceUpdated {
		return nil
	}

	var data events.BalanceUpdatedEvent
	if err := event.Decode(&data); err != nil {
		zap.L().Error("Dropping malformed balance.updated event", zap.Error(err))
		return nil
	}

	result, err := s.reconciler.ReconcileBalance(ctx, data.AccountID)
	if errors.Is(err, ledger.ErrAccountNotFound) {
		zap.L().Warn("Balance event for unknown account", zap.String("account_id", data.AccountID))
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to reconcile account %s: %w", data.AccountID, err)
	}

	if !result.Matches() {
		zap.L().Error("Ledger does not reconcile",
			zap.String("account_id", result.AccountID),
			zap.String("stored_balance", result.StoredBalance.StringFixed(ledger.CurrencyPlaces)),
			zap.String("ledger_balance", result.LedgerBalance.StringFixed(ledger.CurrencyPlaces)),
			zap.Int64("transactions", result.TransactionCount))
		return nil
	}
	zap.L().Debug("Ledger reconciled",
		zap.String("account_id", result.AccountID),
		zap.String("balance", result.StoredBalance.StringFixed(ledger.CurrencyPlaces)))
	return nil
}
