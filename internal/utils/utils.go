package utils

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// GenerateID generates a unique ID with the given prefix
func GenerateID(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, uuid.NewString())
}

// HashPassword hashes a password using bcrypt. A cost outside bcrypt's range
// falls back to bcrypt.DefaultCost.
func HashPassword(password string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	return string(bytes), err
}

// CheckPassword checks if a password matches a hash
func CheckPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// ValidateAccountNumber validates the account number format: "10" followed by eight digits.
func ValidateAccountNumber(accountNumber string) bool {
	if len(accountNumber) != 10 || !strings.HasPrefix(accountNumber, "10") {
		return false
	}
	for _, r := range accountNumber {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// HasPrefixedID reports whether id was produced by GenerateID with prefix.
func HasPrefixedID(id, prefix string) bool {
	rest, ok := strings.CutPrefix(id, prefix+"-")
	if !ok {
		return false
	}
	_, err := uuid.Parse(rest)
	return err == nil
}
