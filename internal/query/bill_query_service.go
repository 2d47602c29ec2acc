package query

import (
	"context"

	"github.com/Adebayoisreal122/Banking-Backend/internal/cqrs"
	"github.com/Adebayoisreal122/Banking-Backend/internal/models"
	"github.com/Adebayoisreal122/Banking-Backend/internal/repository"
)

type BillQueryService struct {
	readRepo *repository.BillReadRepository
	limit    int
}

func NewBillQueryService(readRepo *repository.BillReadRepository, limit int) *BillQueryService {
	return &BillQueryService{readRepo: readRepo, limit: limit}
}

func (s *BillQueryService) ListBillPayments(ctx context.Context, q cqrs.ListBillPaymentsQuery) ([]models.BillPayment, error) {
	limit := q.Limit
	if limit <= 0 || limit > s.limit {
		limit = s.limit
	}
	return s.readRepo.ListByUser(ctx, q.UserID, limit)
}
