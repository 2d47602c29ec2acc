package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Adebayoisreal122/Banking-Backend/internal/cqrs"
	"github.com/Adebayoisreal122/Banking-Backend/internal/models"
	"github.com/Adebayoisreal122/Banking-Backend/internal/utils"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DefaultLoanAnnualRate is the percentage charged on every loan unless
// configured otherwise.
var DefaultLoanAnnualRate = decimal.RequireFromString("5.5")

// Default transaction descriptions.
const (
	descDeposit          = "Cash Deposit"
	descWithdrawal       = "ATM Withdrawal"
	descTransferReceived = "Transfer received"
)

type Config struct {
	LoanAnnualRate decimal.Decimal
	NewID          func(prefix string) string
	Now            func() time.Time
}

// Orchestrator runs every money movement as one unit of work: the account
// mutations, the transaction records and any loan or bill record either all
// commit or none do.
type Orchestrator struct {
	store    Store
	accounts *AccountService
	recorder *Recorder
	loans    *LoanService
	newID    func(prefix string) string
}

func NewOrchestrator(store Store, cfg Config) *Orchestrator {
	if cfg.NewID == nil {
		cfg.NewID = utils.GenerateID
	}
	if cfg.Now == nil {
		cfg.Now = func() time.Time { return time.Now().UTC() }
	}
	return &Orchestrator{
		store:    store,
		accounts: NewAccountService(cfg.Now),
		recorder: NewRecorder(cfg.NewID, cfg.Now),
		loans:    NewLoanService(cfg.LoanAnnualRate, cfg.NewID, cfg.Now),
		newID:    cfg.NewID,
	}
}

// Loans exposes the loan pricing used by the orchestrator.
func (o *Orchestrator) Loans() *LoanService {
	return o.loans
}

// withinUnitOfWork acquires a unit of work, runs fn and commits. Any early
// return rolls back everything fn staged.
func (o *Orchestrator) withinUnitOfWork(ctx context.Context, op string, fn func(tx Tx) error) error {
	tx, err := o.store.Begin(ctx)
	if err != nil {
		return Unavailable(op, err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil {
			zap.L().Warn("Rollback failed", zap.String("operation", op), zap.Error(err))
		}
	}()

	if err := fn(tx); err != nil {
		return classify(op, err)
	}
	if err := tx.Commit(); err != nil {
		return Unavailable(op, err)
	}
	return nil
}

func (o *Orchestrator) Deposit(ctx context.Context, cmd cqrs.DepositCommand) (*models.MovementResult, error) {
	var result *models.MovementResult
	err := o.withinUnitOfWork(ctx, "deposit", func(tx Tx) error {
		if err := ValidateAmount(cmd.Amount); err != nil {
			return err
		}
		account, err := o.accounts.Resolve(ctx, tx.Accounts(), AccountSelector{ID: cmd.AccountID, OwnerID: cmd.UserID})
		if err != nil {
			return err
		}
		if err := o.accounts.Credit(ctx, tx.Accounts(), account, cmd.Amount); err != nil {
			return err
		}
		txn, err := o.recorder.Record(ctx, tx.Transactions(), Entry{
			Account:     account,
			Type:        models.TransactionTypeDeposit,
			Amount:      cmd.Amount,
			Description: orDefault(cmd.Description, descDeposit),
		})
		if err != nil {
			return err
		}
		result = &models.MovementResult{NewBalance: account.Balance, Transactions: []models.Transaction{*txn}}
		return nil
	})
	if err != nil {
		logRejected("deposit", cmd.UserID, err)
		return nil, err
	}

	zap.L().Info("Deposit committed",
		zap.String("account_id", cmd.AccountID),
		zap.String("amount", cmd.Amount.StringFixed(CurrencyPlaces)),
		zap.String("balance_after", result.NewBalance.StringFixed(CurrencyPlaces)))
	return result, nil
}

func (o *Orchestrator) Withdraw(ctx context.Context, cmd cqrs.WithdrawCommand) (*models.MovementResult, error) {
	var result *models.MovementResult
	err := o.withinUnitOfWork(ctx, "withdraw", func(tx Tx) error {
		if err := ValidateAmount(cmd.Amount); err != nil {
			return err
		}
		account, err := o.accounts.Resolve(ctx, tx.Accounts(), AccountSelector{ID: cmd.AccountID, OwnerID: cmd.UserID})
		if err != nil {
			return err
		}
		if err := o.accounts.Debit(ctx, tx.Accounts(), account, cmd.Amount); err != nil {
			return err
		}
		txn, err := o.recorder.Record(ctx, tx.Transactions(), Entry{
			Account:     account,
			Type:        models.TransactionTypeWithdrawal,
			Amount:      cmd.Amount,
			Description: orDefault(cmd.Description, descWithdrawal),
		})
		if err != nil {
			return err
		}
		result = &models.MovementResult{NewBalance: account.Balance, Transactions: []models.Transaction{*txn}}
		return nil
	})
	if err != nil {
		logRejected("withdraw", cmd.UserID, err)
		return nil, err
	}

	zap.L().Info("Withdrawal committed",
		zap.String("account_id", cmd.AccountID),
		zap.String("amount", cmd.Amount.StringFixed(CurrencyPlaces)),
		zap.String("balance_after", result.NewBalance.StringFixed(CurrencyPlaces)))
	return result, nil
}

// Transfer debits the caller's account before the destination is looked up,
// so a missing or inactive destination aborts with nothing committed. The
// destination may belong to anyone.
func (o *Orchestrator) Transfer(ctx context.Context, cmd cqrs.TransferCommand) (*models.MovementResult, error) {
	var result *models.MovementResult
	err := o.withinUnitOfWork(ctx, "transfer", func(tx Tx) error {
		if err := ValidateAmount(cmd.Amount); err != nil {
			return err
		}
		source, err := o.accounts.Resolve(ctx, tx.Accounts(), AccountSelector{ID: cmd.FromAccountID, OwnerID: cmd.UserID})
		if err != nil {
			return err
		}
		if source.AccountNumber == cmd.ToAccountNumber {
			return ErrSelfTransfer
		}
		if err := o.accounts.Debit(ctx, tx.Accounts(), source, cmd.Amount); err != nil {
			return err
		}

		destination, err := o.accounts.Resolve(ctx, tx.Accounts(), AccountSelector{AccountNumber: cmd.ToAccountNumber})
		if err != nil {
			return err
		}
		if err := o.accounts.Credit(ctx, tx.Accounts(), destination, cmd.Amount); err != nil {
			return err
		}

		out, err := o.recorder.Record(ctx, tx.Transactions(), Entry{
			Account:      source,
			Type:         models.TransactionTypeTransferOut,
			Amount:       cmd.Amount,
			Description:  cmd.Description,
			Counterparty: destination.AccountNumber,
		})
		if err != nil {
			return err
		}
		in, err := o.recorder.Record(ctx, tx.Transactions(), Entry{
			Account:      destination,
			Type:         models.TransactionTypeTransferIn,
			Amount:       cmd.Amount,
			Description:  orDefault(cmd.Description, descTransferReceived),
			Counterparty: source.AccountNumber,
		})
		if err != nil {
			return err
		}
		result = &models.MovementResult{NewBalance: source.Balance, Transactions: []models.Transaction{*out, *in}}
		return nil
	})
	if err != nil {
		logRejected("transfer", cmd.UserID, err)
		return nil, err
	}

	zap.L().Info("Transfer committed",
		zap.String("from_account_id", cmd.FromAccountID),
		zap.String("to_account_number", cmd.ToAccountNumber),
		zap.String("amount", cmd.Amount.StringFixed(CurrencyPlaces)))
	return result, nil
}

func (o *Orchestrator) PayBill(ctx context.Context, cmd cqrs.PayBillCommand) (*models.MovementResult, error) {
	var result *models.MovementResult
	err := o.withinUnitOfWork(ctx, "pay_bill", func(tx Tx) error {
		if err := ValidateAmount(cmd.Amount); err != nil {
			return err
		}
		account, err := o.accounts.Resolve(ctx, tx.Accounts(), AccountSelector{ID: cmd.AccountID, OwnerID: cmd.UserID})
		if err != nil {
			return err
		}
		if err := o.accounts.Debit(ctx, tx.Accounts(), account, cmd.Amount); err != nil {
			return err
		}

		bill := &models.BillPayment{
			ID:              o.newID("bill"),
			AccountID:       account.ID,
			BillerName:      cmd.BillerName,
			Amount:          cmd.Amount,
			ReferenceNumber: cmd.ReferenceNumber,
			Status:          models.StatusCompleted,
			PaymentDate:     account.UpdatedAt,
		}
		if err := tx.Bills().Insert(ctx, bill); err != nil {
			return err
		}

		txn, err := o.recorder.Record(ctx, tx.Transactions(), Entry{
			Account:     account,
			Type:        models.TransactionTypeBillPayment,
			Amount:      cmd.Amount,
			Description: fmt.Sprintf("Bill payment to %s", cmd.BillerName),
		})
		if err != nil {
			return err
		}
		result = &models.MovementResult{NewBalance: account.Balance, Transactions: []models.Transaction{*txn}, BillPayment: bill}
		return nil
	})
	if err != nil {
		logRejected("pay_bill", cmd.UserID, err)
		return nil, err
	}

	zap.L().Info("Bill payment committed",
		zap.String("account_id", cmd.AccountID),
		zap.String("biller", cmd.BillerName),
		zap.String("amount", cmd.Amount.StringFixed(CurrencyPlaces)))
	return result, nil
}

// DisburseLoan originates a loan at the configured rate and credits the
// principal into the caller's account.
func (o *Orchestrator) DisburseLoan(ctx context.Context, cmd cqrs.DisburseLoanCommand) (*models.MovementResult, error) {
	var result *models.MovementResult
	err := o.withinUnitOfWork(ctx, "disburse_loan", func(tx Tx) error {
		if err := ValidateAmount(cmd.Principal); err != nil {
			return err
		}
		account, err := o.accounts.Resolve(ctx, tx.Accounts(), AccountSelector{ID: cmd.AccountID, OwnerID: cmd.UserID})
		if err != nil {
			return err
		}
		loan, err := o.loans.Originate(cmd.UserID, account.ID, cmd.Principal, cmd.TermMonths)
		if err != nil {
			return err
		}
		if err := tx.Loans().Insert(ctx, loan); err != nil {
			return err
		}
		if err := o.accounts.Credit(ctx, tx.Accounts(), account, cmd.Principal); err != nil {
			return err
		}

		txn, err := o.recorder.Record(ctx, tx.Transactions(), Entry{
			Account:     account,
			Type:        models.TransactionTypeLoanDisbursement,
			Amount:      cmd.Principal,
			Description: fmt.Sprintf("Loan approved - %d months term", cmd.TermMonths),
		})
		if err != nil {
			return err
		}
		result = &models.MovementResult{NewBalance: account.Balance, Transactions: []models.Transaction{*txn}, Loan: loan}
		return nil
	})
	if err != nil {
		logRejected("disburse_loan", cmd.UserID, err)
		return nil, err
	}

	zap.L().Info("Loan disbursed",
		zap.String("loan_id", result.Loan.ID),
		zap.String("account_id", cmd.AccountID),
		zap.String("principal", cmd.Principal.StringFixed(CurrencyPlaces)),
		zap.String("monthly_payment", result.Loan.MonthlyPayment.StringFixed(CurrencyPlaces)))
	return result, nil
}

// RepayLoan debits the funding account and reduces the loan's outstanding
// balance by the same amount, marking the loan paid when nothing is left.
func (o *Orchestrator) RepayLoan(ctx context.Context, cmd cqrs.RepayLoanCommand) (*models.MovementResult, error) {
	var result *models.MovementResult
	err := o.withinUnitOfWork(ctx, "repay_loan", func(tx Tx) error {
		if err := ValidateAmount(cmd.Amount); err != nil {
			return err
		}
		loan, err := tx.Loans().FindActive(ctx, cmd.LoanID, cmd.UserID)
		if err != nil {
			return err
		}
		outstanding, status, err := o.loans.Repayment(loan, cmd.Amount)
		if err != nil {
			return err
		}
		account, err := o.accounts.Resolve(ctx, tx.Accounts(), AccountSelector{ID: cmd.AccountID, OwnerID: cmd.UserID})
		if err != nil {
			return err
		}
		if err := o.accounts.Debit(ctx, tx.Accounts(), account, cmd.Amount); err != nil {
			return err
		}

		ok, err := tx.Loans().ApplyRepayment(ctx, loan.ID, loan.OutstandingBalance, outstanding, status, account.UpdatedAt)
		if err != nil {
			return err
		}
		if !ok {
			return ErrConcurrentModification
		}
		loan.OutstandingBalance = outstanding
		loan.Status = status
		loan.UpdatedAt = account.UpdatedAt

		txn, err := o.recorder.Record(ctx, tx.Transactions(), Entry{
			Account:     account,
			Type:        models.TransactionTypeLoanRepayment,
			Amount:      cmd.Amount,
			Description: fmt.Sprintf("Loan repayment for loan %s", loan.ID),
		})
		if err != nil {
			return err
		}
		result = &models.MovementResult{NewBalance: account.Balance, Transactions: []models.Transaction{*txn}, Loan: loan}
		return nil
	})
	if err != nil {
		logRejected("repay_loan", cmd.UserID, err)
		return nil, err
	}

	zap.L().Info("Loan repayment committed",
		zap.String("loan_id", cmd.LoanID),
		zap.String("amount", cmd.Amount.StringFixed(CurrencyPlaces)),
		zap.String("outstanding", result.Loan.OutstandingBalance.StringFixed(CurrencyPlaces)),
		zap.String("status", result.Loan.Status))
	return result, nil
}

func logRejected(op, userID string, err error) {
	if errors.Is(err, ErrStoreUnavailable) {
		zap.L().Error("Ledger operation failed", zap.String("operation", op), zap.String("user_id", userID), zap.Error(err))
		return
	}
	zap.L().Warn("Ledger operation rejected", zap.String("operation", op), zap.String("user_id", userID), zap.Error(err))
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
