package repository

import (
	"github.com/Adebayoisreal122/Banking-Backend/internal/ledger"
	"github.com/Adebayoisreal122/Banking-Backend/internal/models"
)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	var u models.User
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.Phone, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

func scanAccount(row rowScanner) (*models.Account, error) {
	var (
		a       models.Account
		balance int64
	)
	if err := row.Scan(&a.ID, &a.UserID, &a.AccountNumber, &a.AccountType, &balance, &a.Status, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	a.Balance = ledger.FromCents(balance)
	return &a, nil
}

func scanTransaction(row rowScanner) (*models.Transaction, error) {
	var (
		t                    models.Transaction
		amount, balanceAfter int64
	)
	if err := row.Scan(&t.ID, &t.AccountID, &t.Type, &amount, &balanceAfter,
		&t.Description, &t.Counterparty, &t.Status, &t.CreatedAt); err != nil {
		return nil, err
	}
	t.Amount = ledger.FromCents(amount)
	t.BalanceAfter = ledger.FromCents(balanceAfter)
	return &t, nil
}

func scanLoan(row rowScanner) (*models.Loan, error) {
	var (
		l                               models.Loan
		principal, payment, outstanding int64
	)
	if err := row.Scan(&l.ID, &l.UserID, &l.AccountID, &principal, &l.InterestRate, &l.TermMonths,
		&payment, &outstanding, &l.Status, &l.ApprovedAt, &l.CreatedAt, &l.UpdatedAt); err != nil {
		return nil, err
	}
	l.Principal = ledger.FromCents(principal)
	l.MonthlyPayment = ledger.FromCents(payment)
	l.OutstandingBalance = ledger.FromCents(outstanding)
	return &l, nil
}

func scanBill(row rowScanner) (*models.BillPayment, error) {
	var (
		b      models.BillPayment
		amount int64
	)
	if err := row.Scan(&b.ID, &b.AccountID, &b.BillerName, &amount, &b.ReferenceNumber, &b.Status, &b.PaymentDate); err != nil {
		return nil, err
	}
	b.Amount = ledger.FromCents(amount)
	return &b, nil
}
