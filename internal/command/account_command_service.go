package command

import (
	"context"
	"errors"
	"time"

	"github.com/Adebayoisreal122/Banking-Backend/internal/cqrs"
	"github.com/Adebayoisreal122/Banking-Backend/internal/events"
	"github.com/Adebayoisreal122/Banking-Backend/internal/ledger"
	"github.com/Adebayoisreal122/Banking-Backend/internal/models"
	"github.com/Adebayoisreal122/Banking-Backend/internal/repository"
	"go.uber.org/zap"
)

// AccountViewCache is the account read model as seen by writers.
type AccountViewCache interface {
	ViewInvalidator
	CacheAccountView(ctx context.Context, view *models.AccountView)
}

// AccountCommandService writes account state and keeps the read model in sync.
type AccountCommandService struct {
	writeRepo *repository.AccountWriteRepository
	readRepo  AccountViewCache
	issuer    *ledger.AccountNumberIssuer
	publisher events.Publisher
	stream    string
	now       func() time.Time
}

func NewAccountCommandService(
	writeRepo *repository.AccountWriteRepository,
	readRepo AccountViewCache,
	issuer *ledger.AccountNumberIssuer,
	publisher events.Publisher,
	stream string,
) *AccountCommandService {
	return &AccountCommandService{
		writeRepo: writeRepo,
		readRepo:  readRepo,
		issuer:    issuer,
		publisher: publisher,
		stream:    stream,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *AccountCommandService) CreateAccount(ctx context.Context, cmd cqrs.CreateAccountCommand) (*models.AccountView, error) {
	var account *models.Account
	for attempt := 1; ; attempt++ {
		number, err := s.issuer.Issue(ctx)
		if err != nil {
			return nil, err
		}
		account = newAccount(cmd.UserID, number, cmd.AccountType, s.now())
		err = s.writeRepo.Create(ctx, account)
		if err == nil {
			break
		}
		if !errors.Is(err, ledger.ErrDuplicateAccountNumber) || attempt >= s.issuer.Attempts() {
			return nil, err
		}
	}

	view := models.AccountToView(account)
	s.readRepo.CacheAccountView(ctx, view)
	if err := s.publisher.Publish(ctx, s.stream, events.AccountCreated, events.AccountCreatedEvent{
		AccountID:     account.ID,
		AccountNumber: account.AccountNumber,
		UserID:        account.UserID,
		AccountType:   account.AccountType,
	}); err != nil {
		zap.L().Warn("Failed to publish account.created event", zap.Error(err))
	}
	return view, nil
}

func (s *AccountCommandService) UpdateAccount(ctx context.Context, cmd cqrs.UpdateAccountCommand) (*models.AccountView, error) {
	account, err := s.writeRepo.UpdateType(ctx, cmd.AccountID, cmd.RequestingUserID, cmd.AccountType, s.now())
	if err != nil {
		return nil, err
	}

	view := models.AccountToView(account)
	s.readRepo.InvalidateAccountView(ctx, account.ID)
	if err := s.publisher.Publish(ctx, s.stream, events.AccountUpdated, events.AccountUpdatedEvent{
		AccountID:   account.ID,
		UserID:      account.UserID,
		AccountType: account.AccountType,
	}); err != nil {
		zap.L().Warn("Failed to publish account.updated event", zap.Error(err))
	}
	return view, nil
}

// CloseAccount soft-closes an account once its balance is zero.
func (s *AccountCommandService) CloseAccount(ctx context.Context, cmd cqrs.CloseAccountCommand) (*models.AccountView, error) {
	account, err := s.writeRepo.Close(ctx, cmd.AccountID, cmd.RequestingUserID, s.now())
	if err != nil {
		return nil, err
	}

	s.readRepo.InvalidateAccountView(ctx, account.ID)
	if err := s.publisher.Publish(ctx, s.stream, events.AccountClosed, events.AccountClosedEvent{
		AccountID:     account.ID,
		AccountNumber: account.AccountNumber,
		UserID:        account.UserID,
	}); err != nil {
		zap.L().Warn("Failed to publish account.closed event", zap.Error(err))
	}
	zap.L().Info("Account closed", zap.String("account_id", account.ID))
	return models.AccountToView(account), nil
}
