package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/Adebayoisreal122/Banking-Backend/internal/cqrs"
	"github.com/Adebayoisreal122/Banking-Backend/internal/ledger"
	"github.com/Adebayoisreal122/Banking-Backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ---- mock implementations ----

type mockAccountCommander struct {
	createFn func(cqrs.CreateAccountCommand) (*models.AccountView, error)
	updateFn func(cqrs.UpdateAccountCommand) (*models.AccountView, error)
	closeFn  func(cqrs.CloseAccountCommand) (*models.AccountView, error)
}

func (m *mockAccountCommander) CreateAccount(_ context.Context, cmd cqrs.CreateAccountCommand) (*models.AccountView, error) {
	if m.createFn != nil {
		return m.createFn(cmd)
	}
	return nil, fmt.Errorf("not configured")
}
func (m *mockAccountCommander) UpdateAccount(_ context.Context, cmd cqrs.UpdateAccountCommand) (*models.AccountView, error) {
	if m.updateFn != nil {
		return m.updateFn(cmd)
	}
	return nil, fmt.Errorf("not configured")
}
func (m *mockAccountCommander) CloseAccount(_ context.Context, cmd cqrs.CloseAccountCommand) (*models.AccountView, error) {
	if m.closeFn != nil {
		return m.closeFn(cmd)
	}
	return nil, fmt.Errorf("not configured")
}

type mockAccountQuerier struct {
	getFn       func(cqrs.GetAccountQuery) (*models.AccountView, error)
	listFn      func(cqrs.ListAccountsQuery) ([]models.AccountView, error)
	dashboardFn func(cqrs.DashboardQuery) (*models.DashboardView, error)
}

func (m *mockAccountQuerier) GetAccount(_ context.Context, q cqrs.GetAccountQuery) (*models.AccountView, error) {
	if m.getFn != nil {
		return m.getFn(q)
	}
	return nil, fmt.Errorf("not configured")
}
func (m *mockAccountQuerier) ListAccounts(_ context.Context, q cqrs.ListAccountsQuery) ([]models.AccountView, error) {
	if m.listFn != nil {
		return m.listFn(q)
	}
	return nil, fmt.Errorf("not configured")
}
func (m *mockAccountQuerier) Dashboard(_ context.Context, q cqrs.DashboardQuery) (*models.DashboardView, error) {
	if m.dashboardFn != nil {
		return m.dashboardFn(q)
	}
	return nil, fmt.Errorf("not configured")
}

// ---- helpers ----

func newAccountTestRouter(cmds AccountCommander, qrys AccountQuerier, authUserID string) *gin.Engine {
	r := newTestEngine(authUserID)
	h := NewAccountHandler(cmds, qrys)
	g := r.Group("/api/accounts")
	g.POST("", h.CreateAccount)
	g.GET("", h.ListAccounts)
	g.GET("/dashboard", h.Dashboard)
	g.GET("/:id", h.GetAccount)
	g.PATCH("/:id", h.UpdateAccount)
	g.DELETE("/:id", h.CloseAccount)
	return r
}

// ---- test data ----

var aTestAccountView = &models.AccountView{
	ID: "acc-001", UserID: "usr-001", AccountNumber: "1012345678",
	AccountType: models.AccountTypeSavings, Balance: decimal.RequireFromString("150.25"),
	Status: models.AccountStatusActive, CreatedAt: time.Now(), UpdatedAt: time.Now(),
}

// ---- tests ----

func TestCreateAccount(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		createFn       func(cqrs.CreateAccountCommand) (*models.AccountView, error)
		expectedStatus int
	}{
		{
			name:           "success - open checking account",
			body:           map[string]interface{}{"accountType": "checking"},
			createFn:       func(cmd cqrs.CreateAccountCommand) (*models.AccountView, error) { return aTestAccountView, nil },
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "bad request - missing account type",
			body:           map[string]interface{}{},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "bad request - unknown account type",
			body:           map[string]interface{}{"accountType": "crypto"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "service unavailable - account numbers exhausted",
			body: map[string]interface{}{"accountType": "savings"},
			createFn: func(cmd cqrs.CreateAccountCommand) (*models.AccountView, error) {
				return nil, ledger.ErrDuplicateAccountNumber
			},
			expectedStatus: http.StatusServiceUnavailable,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newAccountTestRouter(&mockAccountCommander{createFn: tt.createFn}, &mockAccountQuerier{}, "usr-001")
			w := doRequest(router, http.MethodPost, "/api/accounts", tt.body)
			if w.Code != tt.expectedStatus {
				t.Errorf("[%s] expected %d got %d; body: %s", tt.name, tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestListAccounts(t *testing.T) {
	views := []models.AccountView{*aTestAccountView}
	listFn := func(q cqrs.ListAccountsQuery) ([]models.AccountView, error) { return views, nil }
	router := newAccountTestRouter(&mockAccountCommander{}, &mockAccountQuerier{listFn: listFn}, "usr-001")
	w := doRequest(router, http.MethodGet, "/api/accounts", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d; body: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Accounts []map[string]interface{} `json:"accounts"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Accounts) != 1 {
		t.Fatalf("expected 1 account, got %d", len(resp.Accounts))
	}
	if resp.Accounts[0]["balance"] != "150.25" {
		t.Errorf("expected balance serialised as \"150.25\", got %v", resp.Accounts[0]["balance"])
	}
	if _, leaked := resp.Accounts[0]["userId"]; leaked {
		t.Error("owner id must not be serialised")
	}
}

func TestGetAccount(t *testing.T) {
	tests := []struct {
		name           string
		accountID      string
		getFn          func(cqrs.GetAccountQuery) (*models.AccountView, error)
		expectedStatus int
	}{
		{
			name:           "success - fetch own account",
			accountID:      "acc-001",
			getFn:          func(q cqrs.GetAccountQuery) (*models.AccountView, error) { return aTestAccountView, nil },
			expectedStatus: http.StatusOK,
		},
		{
			name:           "not found - another user's account",
			accountID:      "acc-999",
			getFn:          func(q cqrs.GetAccountQuery) (*models.AccountView, error) { return nil, ledger.ErrAccountNotFound },
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "service unavailable - store down",
			accountID:      "acc-001",
			getFn:          func(q cqrs.GetAccountQuery) (*models.AccountView, error) { return nil, ledger.ErrStoreUnavailable },
			expectedStatus: http.StatusServiceUnavailable,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newAccountTestRouter(&mockAccountCommander{}, &mockAccountQuerier{getFn: tt.getFn}, "usr-001")
			w := doRequest(router, http.MethodGet, "/api/accounts/"+tt.accountID, nil)
			if w.Code != tt.expectedStatus {
				t.Errorf("[%s] expected %d got %d; body: %s", tt.name, tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestUpdateAccount(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		updateFn       func(cqrs.UpdateAccountCommand) (*models.AccountView, error)
		expectedStatus int
	}{
		{
			name:           "success - change account type",
			body:           map[string]interface{}{"accountType": "business"},
			updateFn:       func(cmd cqrs.UpdateAccountCommand) (*models.AccountView, error) { return aTestAccountView, nil },
			expectedStatus: http.StatusOK,
		},
		{
			name:           "bad request - unknown account type",
			body:           map[string]interface{}{"accountType": "joint"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "not found - account does not exist",
			body:           map[string]interface{}{"accountType": "business"},
			updateFn:       func(cmd cqrs.UpdateAccountCommand) (*models.AccountView, error) { return nil, ledger.ErrAccountNotFound },
			expectedStatus: http.StatusNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newAccountTestRouter(&mockAccountCommander{updateFn: tt.updateFn}, &mockAccountQuerier{}, "usr-001")
			w := doRequest(router, http.MethodPatch, "/api/accounts/acc-001", tt.body)
			if w.Code != tt.expectedStatus {
				t.Errorf("[%s] expected %d got %d; body: %s", tt.name, tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestCloseAccount(t *testing.T) {
	tests := []struct {
		name           string
		closeFn        func(cqrs.CloseAccountCommand) (*models.AccountView, error)
		expectedStatus int
	}{
		{
			name: "success - close empty account",
			closeFn: func(cmd cqrs.CloseAccountCommand) (*models.AccountView, error) {
				closed := *aTestAccountView
				closed.Status = models.AccountStatusClosed
				closed.Balance = decimal.Zero
				return &closed, nil
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "unprocessable - account still holds money",
			closeFn:        func(cmd cqrs.CloseAccountCommand) (*models.AccountView, error) { return nil, ledger.ErrAccountNotEmpty },
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name:           "not found - already closed",
			closeFn:        func(cmd cqrs.CloseAccountCommand) (*models.AccountView, error) { return nil, ledger.ErrAccountNotFound },
			expectedStatus: http.StatusNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newAccountTestRouter(&mockAccountCommander{closeFn: tt.closeFn}, &mockAccountQuerier{}, "usr-001")
			w := doRequest(router, http.MethodDelete, "/api/accounts/acc-001", nil)
			if w.Code != tt.expectedStatus {
				t.Errorf("[%s] expected %d got %d; body: %s", tt.name, tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestDashboard(t *testing.T) {
	var gotUserID string
	dashboardFn := func(q cqrs.DashboardQuery) (*models.DashboardView, error) {
		gotUserID = q.UserID
		return &models.DashboardView{
			Accounts:           []models.AccountView{*aTestAccountView},
			RecentTransactions: []models.Transaction{},
			ActiveLoans:        []models.Loan{},
			TotalBalance:       aTestAccountView.Balance,
		}, nil
	}
	router := newAccountTestRouter(&mockAccountCommander{}, &mockAccountQuerier{dashboardFn: dashboardFn}, "usr-001")
	w := doRequest(router, http.MethodGet, "/api/accounts/dashboard", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d; body: %s", w.Code, w.Body.String())
	}
	if gotUserID != "usr-001" {
		t.Errorf("expected caller id usr-001, got %q", gotUserID)
	}
}
