package ledger

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"

	"go.uber.org/zap"
)

// AccountNumberPrefix starts every issued account number.
const AccountNumberPrefix = "10"

var accountNumberSpace = big.NewInt(100000000)

// NumberChecker reports whether an account number is already taken.
type NumberChecker interface {
	AccountNumberExists(ctx context.Context, number string) (bool, error)
}

// AccountNumberIssuer hands out account numbers that are not yet in use,
// drawing again on collision. The store's unique constraint stays the final
// arbiter for numbers issued concurrently.
type AccountNumberIssuer struct {
	checker  NumberChecker
	attempts int
	draw     func() (string, error)
}

func NewAccountNumberIssuer(checker NumberChecker, attempts int) *AccountNumberIssuer {
	if attempts < 1 {
		attempts = 1
	}
	return &AccountNumberIssuer{checker: checker, attempts: attempts, draw: randomAccountNumber}
}

// Attempts is the number of draws Issue makes before giving up.
func (i *AccountNumberIssuer) Attempts() int {
	return i.attempts
}

// Issue returns an unused account number or ErrDuplicateAccountNumber once
// every attempt collided.
func (i *AccountNumberIssuer) Issue(ctx context.Context) (string, error) {
	for attempt := 1; attempt <= i.attempts; attempt++ {
		number, err := i.draw()
		if err != nil {
			return "", fmt.Errorf("failed to draw account number: %w", err)
		}
		taken, err := i.checker.AccountNumberExists(ctx, number)
		if err != nil {
			return "", Unavailable("issue_account_number", err)
		}
		if !taken {
			return number, nil
		}
		zap.L().Debug("Account number collision", zap.String("account_number", number), zap.Int("attempt", attempt))
	}
	return "", fmt.Errorf("%w: no free number after %d attempts", ErrDuplicateAccountNumber, i.attempts)
}

func randomAccountNumber() (string, error) {
	n, err := rand.Int(rand.Reader, accountNumberSpace)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%08d", AccountNumberPrefix, n.Int64()), nil
}
