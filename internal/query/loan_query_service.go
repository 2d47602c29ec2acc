package query

import (
	"context"

	"github.com/Adebayoisreal122/Banking-Backend/internal/cqrs"
	"github.com/Adebayoisreal122/Banking-Backend/internal/models"
	"github.com/Adebayoisreal122/Banking-Backend/internal/repository"
)

type LoanQueryService struct {
	readRepo *repository.LoanReadRepository
}

func NewLoanQueryService(readRepo *repository.LoanReadRepository) *LoanQueryService {
	return &LoanQueryService{readRepo: readRepo}
}

func (s *LoanQueryService) GetLoan(ctx context.Context, q cqrs.GetLoanQuery) (*models.Loan, error) {
	return s.readRepo.GetForOwner(ctx, q.LoanID, q.UserID)
}

func (s *LoanQueryService) ListLoans(ctx context.Context, q cqrs.ListLoansQuery) ([]models.Loan, error) {
	return s.readRepo.ListByUser(ctx, q.UserID)
}
