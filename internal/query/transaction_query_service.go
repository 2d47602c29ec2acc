package query

import (
	"context"

	"github.com/Adebayoisreal122/Banking-Backend/internal/cqrs"
	"github.com/Adebayoisreal122/Banking-Backend/internal/ledger"
	"github.com/Adebayoisreal122/Banking-Backend/internal/models"
	"github.com/Adebayoisreal122/Banking-Backend/internal/repository"
)

// TransactionQueryService serves transaction history. Ownership is always
// checked against the account view before returning results.
type TransactionQueryService struct {
	readRepo     *repository.TransactionReadRepository
	accountRepo  *repository.AccountReadRepository
	defaultLimit int
	maxLimit     int
}

func NewTransactionQueryService(
	readRepo *repository.TransactionReadRepository,
	accountRepo *repository.AccountReadRepository,
	defaultLimit, maxLimit int,
) *TransactionQueryService {
	return &TransactionQueryService{
		readRepo:     readRepo,
		accountRepo:  accountRepo,
		defaultLimit: defaultLimit,
		maxLimit:     maxLimit,
	}
}

// ListTransactions returns the newest transactions first, for one account
// when AccountID is set and across all of the user's accounts otherwise.
func (s *TransactionQueryService) ListTransactions(ctx context.Context, q cqrs.ListTransactionsQuery) ([]models.Transaction, error) {
	limit := s.clampLimit(q.Limit)

	if q.AccountID == "" {
		return s.readRepo.ListByUser(ctx, q.UserID, limit)
	}

	account, err := s.accountRepo.GetByID(ctx, q.AccountID)
	if err != nil {
		return nil, err
	}
	if account.UserID != q.UserID {
		return nil, ledger.ErrAccountNotFound
	}
	return s.readRepo.ListByAccount(ctx, q.AccountID, limit)
}

func (s *TransactionQueryService) clampLimit(limit int) int {
	if limit <= 0 {
		return s.defaultLimit
	}
	if limit > s.maxLimit {
		return s.maxLimit
	}
	return limit
}
