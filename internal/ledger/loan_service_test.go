package ledger

import (
	"errors"
	"testing"
	"time"

	"github.com/Adebayoisreal122/Banking-Backend/internal/models"
	"github.com/shopspring/decimal"
)

func newTestLoanService() *LoanService {
	fixed := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return NewLoanService(DefaultLoanAnnualRate, func(prefix string) string { return prefix + "-1" }, func() time.Time { return fixed })
}

func TestLoanService_Originate(t *testing.T) {
	loan, err := newTestLoanService().Originate("user-1", "acct-1", decimal.NewFromInt(10000), 12)
	if err != nil {
		t.Fatalf("Originate: %v", err)
	}
	if loan.ID != "loan-1" || loan.Status != models.LoanStatusActive {
		t.Errorf("unexpected loan identity: %+v", loan)
	}
	if !loan.OutstandingBalance.Equal(loan.Principal) {
		t.Errorf("outstanding %s should equal principal %s", loan.OutstandingBalance, loan.Principal)
	}
	if !loan.MonthlyPayment.Equal(decimal.RequireFromString("858.37")) {
		t.Errorf("expected monthly payment 858.37 got %s", loan.MonthlyPayment)
	}
	if !loan.InterestRate.Equal(DefaultLoanAnnualRate) {
		t.Errorf("expected rate %s got %s", DefaultLoanAnnualRate, loan.InterestRate)
	}

	if _, err := newTestLoanService().Originate("user-1", "acct-1", decimal.NewFromInt(100), 0); !errors.Is(err, ErrInvalidTerm) {
		t.Errorf("expected ErrInvalidTerm got %v", err)
	}
}

func TestLoanService_Repayment(t *testing.T) {
	active := func(outstanding string) *models.Loan {
		return &models.Loan{OutstandingBalance: decimal.RequireFromString(outstanding), Status: models.LoanStatusActive}
	}
	tests := []struct {
		name            string
		loan            *models.Loan
		amount          string
		wantOutstanding string
		wantStatus      string
		wantErr         error
	}{
		{"partial", active("1000"), "250.50", "749.5", models.LoanStatusActive, nil},
		{"exact payoff", active("1000"), "1000", "0", models.LoanStatusPaid, nil},
		{"overpayment", active("100"), "100.01", "", "", ErrAmountExceedsBalance},
		{"paid loan", &models.Loan{OutstandingBalance: decimal.Zero, Status: models.LoanStatusPaid}, "1", "", "", ErrLoanNotFound},
		{"defaulted loan", &models.Loan{OutstandingBalance: decimal.NewFromInt(5), Status: models.LoanStatusDefaulted}, "1", "", "", ErrLoanNotFound},
		{"zero amount", active("100"), "0", "", "", ErrInvalidAmount},
	}
	svc := newTestLoanService()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outstanding, status, err := svc.Repayment(tt.loan, decimal.RequireFromString(tt.amount))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("[%s] expected %v got %v", tt.name, tt.wantErr, err)
			}
			if tt.wantErr != nil {
				return
			}
			if !outstanding.Equal(decimal.RequireFromString(tt.wantOutstanding)) || status != tt.wantStatus {
				t.Errorf("[%s] expected %s/%s got %s/%s", tt.name, tt.wantOutstanding, tt.wantStatus, outstanding, status)
			}
		})
	}
}
