package query

import (
	"context"

	"github.com/Adebayoisreal122/Banking-Backend/internal/cqrs"
	"github.com/Adebayoisreal122/Banking-Backend/internal/ledger"
	"github.com/Adebayoisreal122/Banking-Backend/internal/models"
	"github.com/Adebayoisreal122/Banking-Backend/internal/repository"
	"github.com/shopspring/decimal"
)

// dashboardTransactions is how many recent transactions the dashboard shows.
const dashboardTransactions = 10

type AccountQueryService struct {
	readRepo *repository.AccountReadRepository
	txnRepo  *repository.TransactionReadRepository
	loanRepo *repository.LoanReadRepository
}

func NewAccountQueryService(
	readRepo *repository.AccountReadRepository,
	txnRepo *repository.TransactionReadRepository,
	loanRepo *repository.LoanReadRepository,
) *AccountQueryService {
	return &AccountQueryService{readRepo: readRepo, txnRepo: txnRepo, loanRepo: loanRepo}
}

// GetAccount fetches a single account view. Accounts owned by someone else
// are reported as not found.
func (s *AccountQueryService) GetAccount(ctx context.Context, q cqrs.GetAccountQuery) (*models.AccountView, error) {
	view, err := s.readRepo.GetByID(ctx, q.AccountID)
	if err != nil {
		return nil, err
	}

	// Ownership check: the AccountView carries UserID (json:"-") for this purpose.
	if view.UserID != q.RequestingUserID {
		return nil, ledger.ErrAccountNotFound
	}

	return view, nil
}

func (s *AccountQueryService) ListAccounts(ctx context.Context, q cqrs.ListAccountsQuery) ([]models.AccountView, error) {
	return s.readRepo.ListByUserID(ctx, q.UserID)
}

func (s *AccountQueryService) Dashboard(ctx context.Context, q cqrs.DashboardQuery) (*models.DashboardView, error) {
	accounts, err := s.readRepo.ListByUserID(ctx, q.UserID)
	if err != nil {
		return nil, err
	}
	recent, err := s.txnRepo.ListByUser(ctx, q.UserID, dashboardTransactions)
	if err != nil {
		return nil, err
	}
	loans, err := s.loanRepo.ListActiveByUser(ctx, q.UserID)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, a := range accounts {
		total = total.Add(a.Balance)
	}

	return &models.DashboardView{
		Accounts:           accounts,
		RecentTransactions: recent,
		ActiveLoans:        loans,
		TotalBalance:       total,
	}, nil
}
