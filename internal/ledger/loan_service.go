package ledger

import (
	"fmt"
	"time"

	"github.com/Adebayoisreal122/Banking-Backend/internal/models"
	"github.com/shopspring/decimal"
)

// LoanService prices loans at a fixed annual rate and drives their lifecycle.
type LoanService struct {
	annualRate decimal.Decimal
	newID      func(prefix string) string
	now        func() time.Time
}

func NewLoanService(annualRate decimal.Decimal, newID func(prefix string) string, now func() time.Time) *LoanService {
	return &LoanService{annualRate: annualRate, newID: newID, now: now}
}

// AnnualRate is the percentage applied to every new loan.
func (s *LoanService) AnnualRate() decimal.Decimal {
	return s.annualRate
}

// Originate builds an active loan whose outstanding balance equals its principal.
func (s *LoanService) Originate(userID, accountID string, principal decimal.Decimal, termMonths int) (*models.Loan, error) {
	payment, err := MonthlyPayment(principal, s.annualRate, termMonths)
	if err != nil {
		return nil, err
	}

	now := s.now()
	return &models.Loan{
		ID:                 s.newID("loan"),
		UserID:             userID,
		AccountID:          accountID,
		Principal:          principal,
		InterestRate:       s.annualRate,
		TermMonths:         termMonths,
		MonthlyPayment:     payment,
		OutstandingBalance: principal,
		Status:             models.LoanStatusActive,
		ApprovedAt:         now,
		CreatedAt:          now,
		UpdatedAt:          now,
	}, nil
}

// Repayment computes the outstanding balance and status that follow a
// repayment of amount. Paid and defaulted loans are rejected as not found.
func (s *LoanService) Repayment(loan *models.Loan, amount decimal.Decimal) (decimal.Decimal, string, error) {
	if err := ValidateAmount(amount); err != nil {
		return decimal.Zero, "", err
	}
	if loan.Status != models.LoanStatusActive {
		return decimal.Zero, "", ErrLoanNotFound
	}
	if amount.GreaterThan(loan.OutstandingBalance) {
		return decimal.Zero, "", fmt.Errorf("%w: outstanding %s", ErrAmountExceedsBalance, loan.OutstandingBalance.StringFixed(CurrencyPlaces))
	}

	outstanding := loan.OutstandingBalance.Sub(amount).RoundBank(CurrencyPlaces)
	if !outstanding.IsPositive() {
		return decimal.Zero, models.LoanStatusPaid, nil
	}
	return outstanding, models.LoanStatusActive, nil
}
