package ledger

import (
	"errors"
	"fmt"
)

// Error kinds returned by the ledger. Callers match them with errors.Is.
var (
	ErrInvalidAmount          = errors.New("invalid amount")
	ErrInvalidTerm            = errors.New("invalid loan term")
	ErrAccountNotFound        = errors.New("account not found")
	ErrInsufficientFunds      = errors.New("insufficient funds")
	ErrLoanNotFound           = errors.New("loan not found")
	ErrAmountExceedsBalance   = errors.New("amount exceeds outstanding balance")
	ErrDuplicateAccountNumber = errors.New("duplicate account number")
	ErrSelfTransfer           = errors.New("cannot transfer to the same account")
	ErrAccountNotEmpty        = errors.New("account balance must be zero")
	ErrConcurrentModification = errors.New("concurrent modification detected")
	ErrStoreUnavailable       = errors.New("ledger store unavailable")
)

var domainErrors = []error{
	ErrInvalidAmount,
	ErrInvalidTerm,
	ErrAccountNotFound,
	ErrInsufficientFunds,
	ErrLoanNotFound,
	ErrAmountExceedsBalance,
	ErrDuplicateAccountNumber,
	ErrSelfTransfer,
	ErrAccountNotEmpty,
	ErrConcurrentModification,
	ErrStoreUnavailable,
}

// IsDomainError reports whether err carries one of the ledger error kinds.
func IsDomainError(err error) bool {
	for _, kind := range domainErrors {
		if errors.Is(err, kind) {
			return true
		}
	}
	return false
}

// Unavailable wraps a store failure so that it matches ErrStoreUnavailable
// while keeping the driver error inspectable.
func Unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStoreUnavailable, err)
}

func classify(op string, err error) error {
	if IsDomainError(err) {
		return err
	}
	return Unavailable(op, err)
}
