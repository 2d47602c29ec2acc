package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// CurrencyPlaces is the number of fractional digits every amount carries.
const CurrencyPlaces = 2

// MaxAmount caps a single movement at one trillion.
var MaxAmount = decimal.New(1_000_000_000_000, 0)

// ValidateAmount rejects non-positive amounts, amounts finer than a cent and
// amounts above MaxAmount.
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: must be greater than zero", ErrInvalidAmount)
	}
	if !amount.Equal(amount.Truncate(CurrencyPlaces)) {
		return fmt.Errorf("%w: at most %d decimal places", ErrInvalidAmount, CurrencyPlaces)
	}
	if amount.GreaterThan(MaxAmount) {
		return fmt.Errorf("%w: must not exceed %s", ErrInvalidAmount, MaxAmount)
	}
	return nil
}

// ToCents converts an amount to minor units. It fails instead of truncating
// or wrapping when the amount has sub-cent digits or does not fit in int64.
func ToCents(amount decimal.Decimal) (int64, error) {
	shifted := amount.Shift(CurrencyPlaces)
	if !shifted.IsInteger() {
		return 0, fmt.Errorf("%w: %s has more than %d decimal places", ErrInvalidAmount, amount, CurrencyPlaces)
	}
	cents := shifted.BigInt()
	if !cents.IsInt64() {
		return 0, fmt.Errorf("%w: %s is out of range", ErrInvalidAmount, amount)
	}
	return cents.Int64(), nil
}

// FromCents converts minor units back to a decimal amount.
func FromCents(cents int64) decimal.Decimal {
	return decimal.New(cents, -CurrencyPlaces)
}
