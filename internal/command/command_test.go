package command

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/Adebayoisreal122/Banking-Backend/internal/config"
	"github.com/Adebayoisreal122/Banking-Backend/internal/cqrs"
	"github.com/Adebayoisreal122/Banking-Backend/internal/events"
	"github.com/Adebayoisreal122/Banking-Backend/internal/ledger"
	"github.com/Adebayoisreal122/Banking-Backend/internal/models"
	"github.com/Adebayoisreal122/Banking-Backend/internal/repository"
	"github.com/Adebayoisreal122/Banking-Backend/internal/token"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

const testStream = "ledger.events.test"

type publishedEvent struct {
	stream    string
	eventType string
	data      any
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
	err    error
}

func (p *recordingPublisher) Publish(ctx context.Context, stream, eventType string, data any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{stream: stream, eventType: eventType, data: data})
	return p.err
}

func (p *recordingPublisher) ofType(eventType string) []publishedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []publishedEvent
	for _, e := range p.events {
		if e.eventType == eventType {
			out = append(out, e)
		}
	}
	return out
}

type services struct {
	db        *sql.DB
	publisher *recordingPublisher
	tokens    *token.Manager
	auth      *AuthCommandService
	accounts  *AccountCommandService
	ledger    *LedgerCommandService
}

func setupServices(t *testing.T) *services {
	t.Helper()
	db, err := repository.Open(context.Background(), config.DatabaseConfig{
		Driver:      config.DriverSQLite,
		URL:         "file:" + filepath.Join(t.TempDir(), "bank.db") + "?_foreign_keys=on",
		PingTimeout: 5 * time.Second,
		AutoMigrate: true,
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	publisher := &recordingPublisher{}
	tokens := token.NewManager("test-secret", time.Hour)
	writeRepo := repository.NewAccountWriteRepository(db)
	readRepo := repository.NewAccountReadRepository(db, nil, 0)
	issuer := ledger.NewAccountNumberIssuer(writeRepo, 5)
	orch := ledger.NewOrchestrator(repository.NewLedgerStore(db), ledger.Config{LoanAnnualRate: ledger.DefaultLoanAnnualRate})

	return &services{
		db:        db,
		publisher: publisher,
		tokens:    tokens,
		auth:      NewAuthCommandService(repository.NewUserRepository(db), issuer, tokens, publisher, testStream, bcrypt.MinCost),
		accounts:  NewAccountCommandService(writeRepo, readRepo, issuer, publisher, testStream),
		ledger:    NewLedgerCommandService(orch, readRepo, publisher, testStream),
	}
}

func (s *services) signup(t *testing.T, n int) *models.AuthResult {
	t.Helper()
	result, err := s.auth.Signup(context.Background(), cqrs.SignupCommand{
		Email:    fmt.Sprintf("User%d@Example.com", n),
		Password: "correct-horse",
		FullName: fmt.Sprintf("User %d", n),
	})
	if err != nil {
		t.Fatalf("signup %d: %v", n, err)
	}
	return result
}

func TestAuthCommandService_Signup(t *testing.T) {
	s := setupServices(t)
	result := s.signup(t, 1)

	if result.User.Email != "user1@example.com" {
		t.Errorf("expected normalised email, got %s", result.User.Email)
	}
	if result.Account.AccountType != models.AccountTypeSavings || !result.Account.Balance.IsZero() {
		t.Errorf("unexpected starter account: %+v", result.Account)
	}
	claims, err := s.tokens.Parse(result.Token)
	if err != nil || claims.UserID != result.User.ID {
		t.Errorf("token does not identify the new user: %+v %v", claims, err)
	}
	if created := s.publisher.ofType(events.UserCreated); len(created) != 1 || created[0].stream != testStream {
		t.Errorf("expected one user.created event, got %+v", created)
	}

	_, err = s.auth.Signup(context.Background(), cqrs.SignupCommand{Email: "user1@example.com", Password: "another-pass", FullName: "Dup"})
	if !errors.Is(err, repository.ErrEmailExists) {
		t.Errorf("expected ErrEmailExists, got %v", err)
	}
}

func TestAuthCommandService_ProfileAndPassword(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	user := s.signup(t, 1).User

	view, err := s.auth.UpdateProfile(ctx, cqrs.UpdateProfileCommand{UserID: user.ID, Phone: "+2348011111111"})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if view.FullName != user.FullName || view.Phone != "+2348011111111" {
		t.Errorf("unexpected profile: %+v", view)
	}

	err = s.auth.ChangePassword(ctx, cqrs.ChangePasswordCommand{UserID: user.ID, CurrentPassword: "wrong", NewPassword: "new-password"})
	if !errors.Is(err, cqrs.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if err := s.auth.ChangePassword(ctx, cqrs.ChangePasswordCommand{UserID: user.ID, CurrentPassword: "correct-horse", NewPassword: "new-password"}); err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}
	if _, err := s.auth.UpdateProfile(ctx, cqrs.UpdateProfileCommand{UserID: "user-missing", FullName: "x"}); !errors.Is(err, repository.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAccountCommandService_Lifecycle(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	owner := s.signup(t, 1)

	created, err := s.accounts.CreateAccount(ctx, cqrs.CreateAccountCommand{UserID: owner.User.ID, AccountType: models.AccountTypeChecking})
	if err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}
	if created.AccountNumber == owner.Account.AccountNumber || created.Status != models.AccountStatusActive {
		t.Errorf("unexpected new account: %+v", created)
	}

	updated, err := s.accounts.UpdateAccount(ctx, cqrs.UpdateAccountCommand{AccountID: created.ID, RequestingUserID: owner.User.ID, AccountType: models.AccountTypeBusiness})
	if err != nil || updated.AccountType != models.AccountTypeBusiness {
		t.Fatalf("UpdateAccount: %+v %v", updated, err)
	}

	if _, err := s.ledger.Deposit(ctx, cqrs.DepositCommand{UserID: owner.User.ID, AccountID: created.ID, Amount: decimal.NewFromInt(5)}); err != nil {
		t.Fatalf("Deposit: %v", err)
	}
	if _, err := s.accounts.CloseAccount(ctx, cqrs.CloseAccountCommand{AccountID: created.ID, RequestingUserID: owner.User.ID}); !errors.Is(err, ledger.ErrAccountNotEmpty) {
		t.Fatalf("expected ErrAccountNotEmpty, got %v", err)
	}
	if _, err := s.ledger.Withdraw(ctx, cqrs.WithdrawCommand{UserID: owner.User.ID, AccountID: created.ID, Amount: decimal.NewFromInt(5)}); err != nil {
		t.Fatalf("Withdraw: %v", err)
	}

	closed, err := s.accounts.CloseAccount(ctx, cqrs.CloseAccountCommand{AccountID: created.ID, RequestingUserID: owner.User.ID})
	if err != nil {
		t.Fatalf("CloseAccount: %v", err)
	}
	if closed.Status != models.AccountStatusClosed {
		t.Errorf("expected closed, got %s", closed.Status)
	}
	if n := len(s.publisher.ofType(events.AccountClosed)); n != 1 {
		t.Errorf("expected one account.closed event, got %d", n)
	}

	other := s.signup(t, 2)
	if _, err := s.accounts.UpdateAccount(ctx, cqrs.UpdateAccountCommand{AccountID: owner.Account.ID, RequestingUserID: other.User.ID, AccountType: models.AccountTypeChecking}); !errors.Is(err, ledger.ErrAccountNotFound) {
		t.Errorf("expected ErrAccountNotFound for a foreign account, got %v", err)
	}
}

func TestLedgerCommandService_TransferEvents(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	alice := s.signup(t, 1)
	bob := s.signup(t, 2)

	if _, err := s.ledger.Deposit(ctx, cqrs.DepositCommand{UserID: alice.User.ID, AccountID: alice.Account.ID, Amount: decimal.NewFromInt(100)}); err != nil {
		t.Fatalf("Deposit: %v", err)
	}
	before := len(s.publisher.ofType(events.BalanceUpdated))

	if _, err := s.ledger.Transfer(ctx, cqrs.TransferCommand{
		UserID: alice.User.ID, FromAccountID: alice.Account.ID, ToAccountNumber: bob.Account.AccountNumber, Amount: decimal.NewFromInt(20),
	}); err != nil {
		t.Fatalf("Transfer: %v", err)
	}

	updates := s.publisher.ofType(events.BalanceUpdated)[before:]
	if len(updates) != 2 {
		t.Fatalf("expected two balance.updated events, got %d", len(updates))
	}
	out := updates[0].data.(events.BalanceUpdatedEvent)
	in := updates[1].data.(events.BalanceUpdatedEvent)
	if out.AccountID != alice.Account.ID || !out.Change.Equal(decimal.NewFromInt(-20)) || !out.NewBalance.Equal(decimal.NewFromInt(80)) {
		t.Errorf("unexpected debit event: %+v", out)
	}
	if in.AccountID != bob.Account.ID || !in.Change.Equal(decimal.NewFromInt(20)) || !in.NewBalance.Equal(decimal.NewFromInt(20)) {
		t.Errorf("unexpected credit event: %+v", in)
	}

	total := len(s.publisher.events)
	_, err := s.ledger.Withdraw(ctx, cqrs.WithdrawCommand{UserID: alice.User.ID, AccountID: alice.Account.ID, Amount: decimal.NewFromInt(1000)})
	if !errors.Is(err, ledger.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
	if len(s.publisher.events) != total {
		t.Errorf("a rejected movement must not publish events")
	}
}

func TestLedgerCommandService_LoanAndBillEvents(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	user := s.signup(t, 1)

	applied, err := s.ledger.ApplyLoan(ctx, cqrs.DisburseLoanCommand{UserID: user.User.ID, AccountID: user.Account.ID, Principal: decimal.NewFromInt(1000), TermMonths: 12})
	if err != nil {
		t.Fatalf("ApplyLoan: %v", err)
	}
	if _, err := s.ledger.RepayLoan(ctx, cqrs.RepayLoanCommand{UserID: user.User.ID, LoanID: applied.Loan.ID, AccountID: user.Account.ID, Amount: decimal.NewFromInt(1000)}); err != nil {
		t.Fatalf("RepayLoan: %v", err)
	}
	if _, err := s.ledger.PayBill(ctx, cqrs.PayBillCommand{UserID: user.User.ID, AccountID: user.Account.ID, BillerName: "Telco", Amount: decimal.NewFromInt(1)}); !errors.Is(err, ledger.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}

	if n := len(s.publisher.ofType(events.LoanDisbursed)); n != 1 {
		t.Errorf("expected one loan.disbursed event, got %d", n)
	}
	repaid := s.publisher.ofType(events.LoanRepaid)
	if len(repaid) != 1 || repaid[0].data.(events.LoanRepaidEvent).Status != models.LoanStatusPaid {
		t.Errorf("expected one loan.repaid event with paid status, got %+v", repaid)
	}
	if n := len(s.publisher.ofType(events.BillPaid)); n != 0 {
		t.Errorf("expected no bill.paid event, got %d", n)
	}
}

func TestLedgerCommandService_PublishFailureDoesNotFailMovement(t *testing.T) {
	s := setupServices(t)
	user := s.signup(t, 1)
	s.publisher.err = errors.New("redis down")

	result, err := s.ledger.Deposit(context.Background(), cqrs.DepositCommand{UserID: user.User.ID, AccountID: user.Account.ID, Amount: decimal.NewFromInt(10)})
	if err != nil {
		t.Fatalf("Deposit: %v", err)
	}
	if !result.NewBalance.Equal(decimal.NewFromInt(10)) {
		t.Errorf("expected balance 10, got %s", result.NewBalance)
	}
}

// memoryViews is a read-through account view cache backed by the database.
type memoryViews struct {
	reads       *repository.AccountReadRepository
	cached      map[string]models.AccountView
	invalidated []string
}

func (v *memoryViews) CacheAccountView(ctx context.Context, view *models.AccountView) {
	v.cached[view.ID] = *view
}

func (v *memoryViews) InvalidateAccountView(ctx context.Context, accountIDs ...string) {
	for _, id := range accountIDs {
		delete(v.cached, id)
	}
	v.invalidated = append(v.invalidated, accountIDs...)
}

func (v *memoryViews) get(t *testing.T, id string) models.AccountView {
	t.Helper()
	if view, ok := v.cached[id]; ok {
		return view
	}
	view, err := v.reads.GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("read account %s: %v", id, err)
	}
	v.cached[id] = *view
	return *view
}

func TestAccountCommandService_UpdateInvalidatesCachedView(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	owner := s.signup(t, 1)

	views := &memoryViews{reads: repository.NewAccountReadRepository(s.db, nil, 0), cached: map[string]models.AccountView{}}
	writeRepo := repository.NewAccountWriteRepository(s.db)
	accounts := NewAccountCommandService(writeRepo, views, ledger.NewAccountNumberIssuer(writeRepo, 5), s.publisher, testStream)
	orch := ledger.NewOrchestrator(repository.NewLedgerStore(s.db), ledger.Config{LoanAnnualRate: ledger.DefaultLoanAnnualRate})
	movements := NewLedgerCommandService(orch, views, s.publisher, testStream)

	created, err := accounts.CreateAccount(ctx, cqrs.CreateAccountCommand{UserID: owner.User.ID, AccountType: models.AccountTypeChecking})
	if err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}
	if _, err := movements.Deposit(ctx, cqrs.DepositCommand{UserID: owner.User.ID, AccountID: created.ID, Amount: decimal.NewFromInt(25)}); err != nil {
		t.Fatalf("Deposit: %v", err)
	}
	if got := views.get(t, created.ID); !got.Balance.Equal(decimal.NewFromInt(25)) {
		t.Fatalf("expected balance 25 after deposit, got %s", got.Balance)
	}

	views.invalidated = nil
	if _, err := accounts.UpdateAccount(ctx, cqrs.UpdateAccountCommand{AccountID: created.ID, RequestingUserID: owner.User.ID, AccountType: models.AccountTypeBusiness}); err != nil {
		t.Fatalf("UpdateAccount: %v", err)
	}
	if _, ok := views.cached[created.ID]; ok {
		t.Errorf("expected update to drop the cached view")
	}
	if len(views.invalidated) != 1 || views.invalidated[0] != created.ID {
		t.Errorf("expected %s to be invalidated, got %v", created.ID, views.invalidated)
	}

	got := views.get(t, created.ID)
	if got.AccountType != models.AccountTypeBusiness || !got.Balance.Equal(decimal.NewFromInt(25)) {
		t.Errorf("unexpected view after update: %+v", got)
	}
}
