package cqrs

// ---------- User queries ----------

// GetProfileQuery fetches the caller's own profile.
type GetProfileQuery struct {
	UserID string
}

// ---------- Account queries ----------

// GetAccountQuery fetches a single account by id, scoped to its owner.
type GetAccountQuery struct {
	AccountID        string
	RequestingUserID string
}

// ListAccountsQuery fetches all accounts belonging to a user.
type ListAccountsQuery struct {
	UserID string
}

type DashboardQuery struct {
	UserID string
}

// ---------- Transaction queries ----------

// ListTransactionsQuery fetches the newest transactions of one account, or of
// every account the user owns when AccountID is empty.
type ListTransactionsQuery struct {
	UserID    string
	AccountID string
	Limit     int
}

// ---------- Loan queries ----------

type GetLoanQuery struct {
	LoanID string
	UserID string
}

type ListLoansQuery struct {
	UserID string
}

// ---------- Bill queries ----------

type ListBillPaymentsQuery struct {
	UserID string
	Limit  int
}
