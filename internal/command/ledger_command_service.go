package command

import (
	"context"

	"github.com/Adebayoisreal122/Banking-Backend/internal/cqrs"
	"github.com/Adebayoisreal122/Banking-Backend/internal/events"
	"github.com/Adebayoisreal122/Banking-Backend/internal/ledger"
	"github.com/Adebayoisreal122/Banking-Backend/internal/models"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ViewInvalidator drops cached account views after their balance moved.
type ViewInvalidator interface {
	InvalidateAccountView(ctx context.Context, accountIDs ...string)
}

// LedgerCommandService runs money movements through the orchestrator and,
// once they commit, refreshes the read side and announces what happened.
type LedgerCommandService struct {
	orchestrator *ledger.Orchestrator
	views        ViewInvalidator
	publisher    events.Publisher
	stream       string
}

func NewLedgerCommandService(orchestrator *ledger.Orchestrator, views ViewInvalidator, publisher events.Publisher, stream string) *LedgerCommandService {
	return &LedgerCommandService{
		orchestrator: orchestrator,
		views:        views,
		publisher:    publisher,
		stream:       stream,
	}
}

func (s *LedgerCommandService) Deposit(ctx context.Context, cmd cqrs.DepositCommand) (*models.MovementResult, error) {
	result, err := s.orchestrator.Deposit(ctx, cmd)
	if err != nil {
		return nil, err
	}
	s.afterCommit(ctx, cmd.UserID, result)
	return result, nil
}

func (s *LedgerCommandService) Withdraw(ctx context.Context, cmd cqrs.WithdrawCommand) (*models.MovementResult, error) {
	result, err := s.orchestrator.Withdraw(ctx, cmd)
	if err != nil {
		return nil, err
	}
	s.afterCommit(ctx, cmd.UserID, result)
	return result, nil
}

func (s *LedgerCommandService) Transfer(ctx context.Context, cmd cqrs.TransferCommand) (*models.MovementResult, error) {
	result, err := s.orchestrator.Transfer(ctx, cmd)
	if err != nil {
		return nil, err
	}
	s.afterCommit(ctx, cmd.UserID, result)
	return result, nil
}

func (s *LedgerCommandService) PayBill(ctx context.Context, cmd cqrs.PayBillCommand) (*models.MovementResult, error) {
	result, err := s.orchestrator.PayBill(ctx, cmd)
	if err != nil {
		return nil, err
	}
	s.afterCommit(ctx, cmd.UserID, result)

	bill := result.BillPayment
	s.publish(ctx, events.BillPaid, events.BillPaidEvent{
		BillPaymentID:   bill.ID,
		AccountID:       bill.AccountID,
		UserID:          cmd.UserID,
		BillerName:      bill.BillerName,
		Amount:          bill.Amount,
		ReferenceNumber: bill.ReferenceNumber,
	})
	return result, nil
}

func (s *LedgerCommandService) ApplyLoan(ctx context.Context, cmd cqrs.DisburseLoanCommand) (*models.MovementResult, error) {
	result, err := s.orchestrator.DisburseLoan(ctx, cmd)
	if err != nil {
		return nil, err
	}
	s.afterCommit(ctx, cmd.UserID, result)

	loan := result.Loan
	s.publish(ctx, events.LoanDisbursed, events.LoanDisbursedEvent{
		LoanID:         loan.ID,
		AccountID:      loan.AccountID,
		UserID:         cmd.UserID,
		Principal:      loan.Principal,
		MonthlyPayment: loan.MonthlyPayment,
		TermMonths:     loan.TermMonths,
	})
	return result, nil
}

func (s *LedgerCommandService) RepayLoan(ctx context.Context, cmd cqrs.RepayLoanCommand) (*models.MovementResult, error) {
	result, err := s.orchestrator.RepayLoan(ctx, cmd)
	if err != nil {
		return nil, err
	}
	s.afterCommit(ctx, cmd.UserID, result)

	loan := result.Loan
	s.publish(ctx, events.LoanRepaid, events.LoanRepaidEvent{
		LoanID:             loan.ID,
		AccountID:          cmd.AccountID,
		UserID:             cmd.UserID,
		Amount:             cmd.Amount,
		OutstandingBalance: loan.OutstandingBalance,
		Status:             loan.Status,
	})
	return result, nil
}

// afterCommit invalidates the views of every account the movement touched and
// publishes one transaction.created and one balance.updated per record.
func (s *LedgerCommandService) afterCommit(ctx context.Context, userID string, result *models.MovementResult) {
	accountIDs := make([]string, 0, len(result.Transactions))
	for _, txn := range result.Transactions {
		accountIDs = append(accountIDs, txn.AccountID)
	}
	s.views.InvalidateAccountView(ctx, accountIDs...)

	for i, txn := range result.Transactions {
		// The first record always belongs to the caller's account.
		owner := ""
		if i == 0 {
			owner = userID
		}
		s.publish(ctx, events.TransactionCreated, events.TransactionCreatedEvent{
			TransactionID: txn.ID,
			AccountID:     txn.AccountID,
			UserID:        owner,
			Type:          txn.Type,
			Amount:        txn.Amount,
			BalanceAfter:  txn.BalanceAfter,
		})
		s.publish(ctx, events.BalanceUpdated, events.BalanceUpdatedEvent{
			AccountID:  txn.AccountID,
			NewBalance: txn.BalanceAfter,
			Change:     signedAmount(&txn),
		})
	}
}

func (s *LedgerCommandService) publish(ctx context.Context, eventType string, data any) {
	if err := s.publisher.Publish(ctx, s.stream, eventType, data); err != nil {
		zap.L().Warn("Failed to publish ledger event", zap.String("type", eventType), zap.Error(err))
	}
}

func signedAmount(txn *models.Transaction) decimal.Decimal {
	if txn.IsCredit() {
		return txn.Amount
	}
	return txn.Amount.Neg()
}
