package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// MaxTermMonths bounds loan terms to forty years.
const MaxTermMonths = 480

// Intermediate results keep this many fractional digits before the final
// payment is rounded to the cent.
const amortizationPrecision = 24

var (
	one              = decimal.NewFromInt(1)
	monthsByPercents = decimal.NewFromInt(1200)
)

// MonthlyPayment returns the fixed annuity payment that retires principal over
// termMonths at annualRate percent:
//
//	payment = P·r·(1+r)^n / ((1+r)^n − 1), r = annualRate/100/12
//
// rounded half away from zero to the cent. A zero rate divides the principal
// evenly over the term.
func MonthlyPayment(principal, annualRate decimal.Decimal, termMonths int) (decimal.Decimal, error) {
	if err := ValidateAmount(principal); err != nil {
		return decimal.Zero, err
	}
	if termMonths < 1 || termMonths > MaxTermMonths {
		return decimal.Zero, fmt.Errorf("%w: term must be between 1 and %d months", ErrInvalidTerm, MaxTermMonths)
	}
	if annualRate.IsNegative() {
		return decimal.Zero, fmt.Errorf("negative interest rate %s", annualRate)
	}

	n := decimal.NewFromInt(int64(termMonths))
	if annualRate.IsZero() {
		return principal.DivRound(n, CurrencyPlaces), nil
	}

	r := annualRate.DivRound(monthsByPercents, amortizationPrecision)
	growth := powInt(one.Add(r), termMonths)
	payment := principal.Mul(r).Mul(growth).DivRound(growth.Sub(one), amortizationPrecision)
	return payment.Round(CurrencyPlaces), nil
}

func powInt(base decimal.Decimal, exp int) decimal.Decimal {
	result := one
	for exp > 0 {
		if exp&1 == 1 {
			result = result.Mul(base).Truncate(amortizationPrecision)
		}
		base = base.Mul(base).Truncate(amortizationPrecision)
		exp >>= 1
	}
	return result
}
