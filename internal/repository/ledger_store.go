package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Adebayoisreal122/Banking-Backend/internal/ledger"
	"github.com/Adebayoisreal122/Banking-Backend/internal/models"
	"github.com/shopspring/decimal"
)

// Compile-time checks.
var (
	_ ledger.Store            = (*LedgerStore)(nil)
	_ ledger.Tx               = (*ledgerTx)(nil)
	_ ledger.AccountStore     = (*txAccounts)(nil)
	_ ledger.TransactionStore = (*txTransactions)(nil)
	_ ledger.LoanStore        = (*txLoans)(nil)
	_ ledger.BillStore        = (*txBills)(nil)
)

// LedgerStore opens SQL transactions as ledger units of work.
type LedgerStore struct {
	db *sql.DB
}

func NewLedgerStore(db *sql.DB) *LedgerStore {
	return &LedgerStore{db: db}
}

func (s *LedgerStore) Begin(ctx context.Context) (ledger.Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &ledgerTx{tx: tx}, nil
}

type ledgerTx struct {
	tx *sql.Tx
}

func (t *ledgerTx) Accounts() ledger.AccountStore         { return &txAccounts{tx: t.tx} }
func (t *ledgerTx) Transactions() ledger.TransactionStore { return &txTransactions{tx: t.tx} }
func (t *ledgerTx) Loans() ledger.LoanStore               { return &txLoans{tx: t.tx} }
func (t *ledgerTx) Bills() ledger.BillStore               { return &txBills{tx: t.tx} }

func (t *ledgerTx) Commit() error {
	if err := t.tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (t *ledgerTx) Rollback() error {
	if err := t.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return fmt.Errorf("failed to roll back transaction: %w", err)
	}
	return nil
}

// ---------- accounts ----------

type txAccounts struct {
	tx *sql.Tx
}

func (a *txAccounts) FindActive(ctx context.Context, sel ledger.AccountSelector) (*models.Account, error) {
	var (
		conds []string
		args  []any
	)
	add := func(column, value string) {
		args = append(args, value)
		conds = append(conds, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if sel.ID != "" {
		add("id", sel.ID)
	}
	if sel.AccountNumber != "" {
		add("account_number", sel.AccountNumber)
	}
	if sel.OwnerID != "" {
		add("user_id", sel.OwnerID)
	}
	if sel.ID == "" && sel.AccountNumber == "" {
		return nil, ledger.ErrAccountNotFound
	}

	query := queryGetActiveAccount + " AND " + strings.Join(conds, " AND ")
	account, err := scanAccount(a.tx.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ledger.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return account, nil
}

func (a *txAccounts) DecrementBalance(ctx context.Context, accountID string, amount decimal.Decimal, at time.Time) (decimal.Decimal, bool, error) {
	return a.adjust(ctx, queryDecrementBalance, accountID, amount, at)
}

func (a *txAccounts) IncrementBalance(ctx context.Context, accountID string, amount decimal.Decimal, at time.Time) (decimal.Decimal, bool, error) {
	return a.adjust(ctx, queryIncrementBalance, accountID, amount, at)
}

func (a *txAccounts) adjust(ctx context.Context, query, accountID string, amount decimal.Decimal, at time.Time) (decimal.Decimal, bool, error) {
	cents, err := ledger.ToCents(amount)
	if err != nil {
		return decimal.Zero, false, err
	}
	var balance int64
	err = a.tx.QueryRowContext(ctx, query, cents, at, accountID).Scan(&balance)
	if errors.Is(err, sql.ErrNoRows) {
		return decimal.Zero, false, nil
	}
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("failed to update balance: %w", err)
	}
	return ledger.FromCents(balance), true, nil
}

// ---------- transactions ----------

type txTransactions struct {
	tx *sql.Tx
}

func (t *txTransactions) Insert(ctx context.Context, txn *models.Transaction) error {
	cents, err := centsOf(txn.Amount, txn.BalanceAfter)
	if err != nil {
		return err
	}
	_, err = t.tx.ExecContext(ctx, queryInsertTransaction,
		txn.ID, txn.AccountID, txn.Type, cents[0], cents[1],
		txn.Description, txn.Counterparty, txn.Status, txn.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record transaction: %w", err)
	}
	return nil
}

// ---------- loans ----------

type txLoans struct {
	tx *sql.Tx
}

func (l *txLoans) Insert(ctx context.Context, loan *models.Loan) error {
	cents, err := centsOf(loan.Principal, loan.MonthlyPayment, loan.OutstandingBalance)
	if err != nil {
		return err
	}
	_, err = l.tx.ExecContext(ctx, queryInsertLoan,
		loan.ID, loan.UserID, loan.AccountID, cents[0], loan.InterestRate.String(),
		loan.TermMonths, cents[1], cents[2],
		loan.Status, loan.ApprovedAt, loan.CreatedAt, loan.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create loan: %w", err)
	}
	return nil
}

func (l *txLoans) FindActive(ctx context.Context, loanID, ownerID string) (*models.Loan, error) {
	loan, err := scanLoan(l.tx.QueryRowContext(ctx, queryGetActiveLoanForOwner, loanID, ownerID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ledger.ErrLoanNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get loan: %w", err)
	}
	return loan, nil
}

func (l *txLoans) ApplyRepayment(ctx context.Context, loanID string, previous, next decimal.Decimal, status string, at time.Time) (bool, error) {
	cents, err := centsOf(next, previous)
	if err != nil {
		return false, err
	}
	result, err := l.tx.ExecContext(ctx, queryApplyRepayment,
		cents[0], status, at, loanID, cents[1],
	)
	if err != nil {
		return false, fmt.Errorf("failed to apply repayment: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check rows affected: %w", err)
	}
	return rows == 1, nil
}

// ---------- bill payments ----------

type txBills struct {
	tx *sql.Tx
}

func (b *txBills) Insert(ctx context.Context, payment *models.BillPayment) error {
	amount, err := ledger.ToCents(payment.Amount)
	if err != nil {
		return err
	}
	_, err = b.tx.ExecContext(ctx, queryInsertBillPayment,
		payment.ID, payment.AccountID, payment.BillerName, amount,
		payment.ReferenceNumber, payment.Status, payment.PaymentDate,
	)
	if err != nil {
		return fmt.Errorf("failed to record bill payment: %w", err)
	}
	return nil
}

// centsOf converts each amount to minor units, failing on the first that does
// not fit.
func centsOf(amounts ...decimal.Decimal) ([]int64, error) {
	cents := make([]int64, len(amounts))
	for i, amount := range amounts {
		c, err := ledger.ToCents(amount)
		if err != nil {
			return nil, err
		}
		cents[i] = c
	}
	return cents, nil
}
