package ledger_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Adebayoisreal122/Banking-Backend/internal/cqrs"
	"github.com/Adebayoisreal122/Banking-Backend/internal/ledger"
	"github.com/Adebayoisreal122/Banking-Backend/internal/models"
	"github.com/shopspring/decimal"
)

// memLedger holds one account whose balance is guarded the way a row-level
// conditional UPDATE would be. Units of work run in parallel and each first
// read waits on arrived, so every caller resolves the account before any
// caller debits it.
type memLedger struct {
	mu        sync.Mutex
	account   models.Account
	committed int
	arrived   sync.WaitGroup
}

func (m *memLedger) Begin(ctx context.Context) (ledger.Tx, error) {
	return &memTx{ledger: m}, nil
}

type memTx struct {
	ledger   *memLedger
	resolved bool
	undo     []decimal.Decimal
	staged   int
	done     bool
}

func (t *memTx) Accounts() ledger.AccountStore         { return t }
func (t *memTx) Transactions() ledger.TransactionStore { return memRecords{t} }
func (t *memTx) Loans() ledger.LoanStore               { return nil }
func (t *memTx) Bills() ledger.BillStore               { return nil }

func (t *memTx) Commit() error {
	t.ledger.mu.Lock()
	defer t.ledger.mu.Unlock()
	t.ledger.committed += t.staged
	t.done = true
	return nil
}

func (t *memTx) Rollback() error {
	if t.done {
		return nil
	}
	t.ledger.mu.Lock()
	defer t.ledger.mu.Unlock()
	for _, amount := range t.undo {
		t.ledger.account.Balance = t.ledger.account.Balance.Add(amount)
	}
	t.done = true
	return nil
}

func (t *memTx) FindActive(ctx context.Context, sel ledger.AccountSelector) (*models.Account, error) {
	if !t.resolved {
		t.resolved = true
		t.ledger.arrived.Done()
		t.ledger.arrived.Wait()
	}
	t.ledger.mu.Lock()
	defer t.ledger.mu.Unlock()
	if sel.ID != t.ledger.account.ID || (sel.OwnerID != "" && sel.OwnerID != t.ledger.account.UserID) {
		return nil, ledger.ErrAccountNotFound
	}
	account := t.ledger.account
	return &account, nil
}

func (t *memTx) DecrementBalance(ctx context.Context, accountID string, amount decimal.Decimal, at time.Time) (decimal.Decimal, bool, error) {
	t.ledger.mu.Lock()
	defer t.ledger.mu.Unlock()
	if t.ledger.account.Balance.LessThan(amount) {
		return decimal.Zero, false, nil
	}
	t.ledger.account.Balance = t.ledger.account.Balance.Sub(amount)
	t.undo = append(t.undo, amount)
	return t.ledger.account.Balance, true, nil
}

func (t *memTx) IncrementBalance(ctx context.Context, accountID string, amount decimal.Decimal, at time.Time) (decimal.Decimal, bool, error) {
	t.ledger.mu.Lock()
	defer t.ledger.mu.Unlock()
	t.ledger.account.Balance = t.ledger.account.Balance.Add(amount)
	t.undo = append(t.undo, amount.Neg())
	return t.ledger.account.Balance, true, nil
}

type memRecords struct{ tx *memTx }

func (r memRecords) Insert(ctx context.Context, txn *models.Transaction) error {
	r.tx.staged++
	return nil
}

func TestOrchestrator_OverlappingWithdrawalsReadStaleBalance(t *testing.T) {
	const workers = 10
	store := &memLedger{account: models.Account{
		ID: "acct-1", UserID: "user-1", AccountNumber: "1000000001",
		Balance: decimal.NewFromInt(100), Status: models.AccountStatusActive,
	}}
	store.arrived.Add(workers)
	orch := ledger.NewOrchestrator(store, ledger.Config{LoanAnnualRate: ledger.DefaultLoanAnnualRate})

	var (
		wg        sync.WaitGroup
		succeeded int64
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := orch.Withdraw(context.Background(), cqrs.WithdrawCommand{UserID: "user-1", AccountID: "acct-1", Amount: dec("30")})
			switch {
			case err == nil:
				atomic.AddInt64(&succeeded, 1)
			case !errors.Is(err, ledger.ErrInsufficientFunds):
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if succeeded != 3 {
		t.Errorf("expected 3 successful withdrawals got %d", succeeded)
	}
	if !store.account.Balance.Equal(dec("10")) {
		t.Errorf("expected balance 10 got %s", store.account.Balance)
	}
	if store.committed != 3 {
		t.Errorf("expected 3 recorded withdrawals got %d", store.committed)
	}
}
