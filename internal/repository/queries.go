package repository

// Placeholders are numbered in order of first appearance in every statement;
// SQLite binds $N parameters positionally by that order.

const (
	accountColumns     = `id, user_id, account_number, account_type, balance_cents, status, created_at, updated_at`
	transactionColumns = `id, account_id, transaction_type, amount_cents, balance_after_cents, description, counterparty, status, created_at`
	loanColumns        = `id, user_id, account_id, principal_cents, interest_rate, term_months, monthly_payment_cents, outstanding_cents, status, approved_at, created_at, updated_at`
	billColumns        = `id, account_id, biller_name, amount_cents, reference_number, status, payment_date`
	userColumns        = `id, email, password_hash, full_name, phone, created_at, updated_at`
)

// Users
const (
	queryInsertUser = `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	queryGetUserByID = `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	queryGetUserByEmail = `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	queryUserEmailExists = `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`

	queryUpdateUserProfile = `
		UPDATE users SET full_name = $1, phone = $2, updated_at = $3
		WHERE id = $4`

	queryUpdateUserPassword = `
		UPDATE users SET password_hash = $1, updated_at = $2
		WHERE id = $3`
)

// Accounts
const (
	queryInsertAccount = `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	queryGetAccountByID = `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`

	queryGetActiveAccount = `SELECT ` + accountColumns + ` FROM accounts WHERE status = 'active'`

	queryAccountNumberExists = `SELECT EXISTS(SELECT 1 FROM accounts WHERE account_number = $1)`

	queryListAccountsByUser = `
		SELECT ` + accountColumns + ` FROM accounts
		WHERE user_id = $1
		ORDER BY created_at ASC, id ASC`

	queryDecrementBalance = `
		UPDATE accounts
		SET balance_cents = balance_cents - $1, updated_at = $2
		WHERE id = $3 AND status = 'active' AND balance_cents >= $1
		RETURNING balance_cents`

	queryIncrementBalance = `
		UPDATE accounts
		SET balance_cents = balance_cents + $1, updated_at = $2
		WHERE id = $3 AND status = 'active'
		RETURNING balance_cents`

	queryUpdateAccountType = `
		UPDATE accounts SET account_type = $1, updated_at = $2
		WHERE id = $3 AND user_id = $4 AND status <> 'closed'`

	queryCloseAccount = `
		UPDATE accounts SET status = 'closed', updated_at = $1
		WHERE id = $2 AND user_id = $3 AND status <> 'closed' AND balance_cents = 0`
)

// Transactions
const (
	queryInsertTransaction = `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	queryListTransactionsByAccount = `
		SELECT ` + transactionColumns + ` FROM transactions
		WHERE account_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2`

	queryListTransactionsByUser = `
		SELECT t.id, t.account_id, t.transaction_type, t.amount_cents, t.balance_after_cents,
		       t.description, t.counterparty, t.status, t.created_at
		FROM transactions t
		JOIN accounts a ON a.id = t.account_id
		WHERE a.user_id = $1
		ORDER BY t.created_at DESC, t.id DESC
		LIMIT $2`

	queryReconcileAccount = `
		SELECT a.balance_cents,
		       COALESCE(SUM(CASE
		           WHEN t.transaction_type IN ('deposit', 'transfer_in', 'loan_disbursement') THEN t.amount_cents
		           ELSE -t.amount_cents
		       END), 0),
		       COUNT(t.id)
		FROM accounts a
		LEFT JOIN transactions t ON t.account_id = a.id
		WHERE a.id = $1
		GROUP BY a.id, a.balance_cents`
)

// Loans
const (
	queryInsertLoan = `
		INSERT INTO loans (` + loanColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	queryGetActiveLoanForOwner = `
		SELECT ` + loanColumns + ` FROM loans
		WHERE id = $1 AND user_id = $2 AND status = 'active'`

	queryGetLoanForOwner = `
		SELECT ` + loanColumns + ` FROM loans
		WHERE id = $1 AND user_id = $2`

	queryListLoansByUser = `
		SELECT ` + loanColumns + ` FROM loans
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC`

	queryListActiveLoansByUser = `
		SELECT ` + loanColumns + ` FROM loans
		WHERE user_id = $1 AND status = 'active'
		ORDER BY created_at DESC, id DESC`

	queryApplyRepayment = `
		UPDATE loans SET outstanding_cents = $1, status = $2, updated_at = $3
		WHERE id = $4 AND status = 'active' AND outstanding_cents = $5`
)

// Bill payments
const (
	queryInsertBillPayment = `
		INSERT INTO bill_payments (` + billColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	queryListBillPaymentsByUser = `
		SELECT b.id, b.account_id, b.biller_name, b.amount_cents, b.reference_number, b.status, b.payment_date
		FROM bill_payments b
		JOIN accounts a ON a.id = b.account_id
		WHERE a.user_id = $1
		ORDER BY b.payment_date DESC, b.id DESC
		LIMIT $2`
)
