package ledger

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestValidateAmount(t *testing.T) {
	tests := []struct {
		amount  string
		wantErr bool
	}{
		{"0.01", false},
		{"100", false},
		{"1234.50", false},
		{"1000000000000", false},
		{"0", true},
		{"-1", true},
		{"0.001", true},
		{"10.125", true},
		{"1000000000000.01", true},
		{"184467440737095517.16", true},
	}
	for _, tt := range tests {
		err := ValidateAmount(decimal.RequireFromString(tt.amount))
		if tt.wantErr && !errors.Is(err, ErrInvalidAmount) {
			t.Errorf("[%s] expected ErrInvalidAmount got %v", tt.amount, err)
		}
		if !tt.wantErr && err != nil {
			t.Errorf("[%s] unexpected error %v", tt.amount, err)
		}
	}
}

func TestCents(t *testing.T) {
	amount := decimal.RequireFromString("1234.56")
	got, err := ToCents(amount)
	if err != nil || got != 123456 {
		t.Errorf("expected 123456 cents got %d (%v)", got, err)
	}
	if back := FromCents(123456); !back.Equal(amount) {
		t.Errorf("expected %s got %s", amount, back)
	}
}

func TestToCents_FailsClosed(t *testing.T) {
	tests := []struct {
		name   string
		amount string
	}{
		{"wraps past int64", "184467440737095517.16"},
		{"just above max int64 cents", "92233720368547758.08"},
		{"sub-cent digits", "1.005"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got, err := ToCents(decimal.RequireFromString(tt.amount)); !errors.Is(err, ErrInvalidAmount) {
				t.Errorf("[%s] expected ErrInvalidAmount got %d, %v", tt.name, got, err)
			}
		})
	}
	if got, err := ToCents(decimal.RequireFromString("92233720368547758.07")); err != nil || got != 9223372036854775807 {
		t.Errorf("expected max int64 cents got %d (%v)", got, err)
	}
}
