package ledger

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestMonthlyPayment(t *testing.T) {
	tests := []struct {
		name      string
		principal string
		rate      string
		term      int
		expected  string
	}{
		{"one year", "10000", "5.5", 12, "858.37"},
		{"two years", "5000", "5.5", 24, "220.48"},
		{"single month", "1000", "5.5", 1, "1004.58"},
		{"thirty year mortgage", "250000", "5.5", 360, "1419.47"},
		{"small loan", "100", "5.5", 3, "33.64"},
		{"zero rate", "1200", "0", 12, "100"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MonthlyPayment(decimal.RequireFromString(tt.principal), decimal.RequireFromString(tt.rate), tt.term)
			if err != nil {
				t.Fatalf("[%s] unexpected error: %v", tt.name, err)
			}
			if !got.Equal(decimal.RequireFromString(tt.expected)) {
				t.Errorf("[%s] expected %s got %s", tt.name, tt.expected, got)
			}
		})
	}
}

func TestMonthlyPayment_Rejects(t *testing.T) {
	rate := decimal.RequireFromString("5.5")
	tests := []struct {
		name      string
		principal string
		term      int
		wantErr   error
	}{
		{"zero term", "1000", 0, ErrInvalidTerm},
		{"negative term", "1000", -6, ErrInvalidTerm},
		{"term beyond forty years", "1000", MaxTermMonths + 1, ErrInvalidTerm},
		{"zero principal", "0", 12, ErrInvalidAmount},
		{"negative principal", "-50", 12, ErrInvalidAmount},
		{"sub-cent principal", "100.001", 12, ErrInvalidAmount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := MonthlyPayment(decimal.RequireFromString(tt.principal), rate, tt.term)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("[%s] expected %v got %v", tt.name, tt.wantErr, err)
			}
		})
	}
}

// Paying the rounded instalment every month retires the loan to within one
// instalment's rounding.
func TestMonthlyPayment_RetiresPrincipal(t *testing.T) {
	principal := decimal.RequireFromString("10000")
	rate := decimal.RequireFromString("5.5")
	payment, err := MonthlyPayment(principal, rate, 12)
	if err != nil {
		t.Fatal(err)
	}
	r := rate.Div(decimal.NewFromInt(1200))
	balance := principal
	for i := 0; i < 12; i++ {
		balance = balance.Add(balance.Mul(r)).Sub(payment)
	}
	if balance.Abs().GreaterThan(decimal.RequireFromString("0.10")) {
		t.Errorf("expected near-zero balance after the term, got %s", balance)
	}
}
