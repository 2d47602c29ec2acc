package command

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Adebayoisreal122/Banking-Backend/internal/cqrs"
	"github.com/Adebayoisreal122/Banking-Backend/internal/events"
	"github.com/Adebayoisreal122/Banking-Backend/internal/ledger"
	"github.com/Adebayoisreal122/Banking-Backend/internal/models"
	"github.com/Adebayoisreal122/Banking-Backend/internal/repository"
	"github.com/Adebayoisreal122/Banking-Backend/internal/token"
	"github.com/Adebayoisreal122/Banking-Backend/internal/utils"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// AuthCommandService handles signup and the user-initiated profile writes.
type AuthCommandService struct {
	users      *repository.UserRepository
	issuer     *ledger.AccountNumberIssuer
	tokens     *token.Manager
	publisher  events.Publisher
	stream     string
	bcryptCost int
	now        func() time.Time
}

func NewAuthCommandService(
	users *repository.UserRepository,
	issuer *ledger.AccountNumberIssuer,
	tokens *token.Manager,
	publisher events.Publisher,
	stream string,
	bcryptCost int,
) *AuthCommandService {
	return &AuthCommandService{
		users:      users,
		issuer:     issuer,
		tokens:     tokens,
		publisher:  publisher,
		stream:     stream,
		bcryptCost: bcryptCost,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Signup creates the user together with a savings account and signs them in.
func (s *AuthCommandService) Signup(ctx context.Context, cmd cqrs.SignupCommand) (*models.AuthResult, error) {
	hash, err := utils.HashPassword(cmd.Password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.now()
	user := &models.User{
		ID:           utils.GenerateID("user"),
		Email:        strings.ToLower(strings.TrimSpace(cmd.Email)),
		PasswordHash: hash,
		FullName:     cmd.FullName,
		Phone:        cmd.Phone,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	var account *models.Account
	for attempt := 1; ; attempt++ {
		number, err := s.issuer.Issue(ctx)
		if err != nil {
			return nil, err
		}
		account = newAccount(user.ID, number, models.AccountTypeSavings, now)
		err = s.users.CreateWithAccount(ctx, user, account)
		if err == nil {
			break
		}
		if !errors.Is(err, ledger.ErrDuplicateAccountNumber) || attempt >= s.issuer.Attempts() {
			return nil, err
		}
		zap.L().Debug("Account number taken at insert, retrying", zap.Int("attempt", attempt))
	}

	signed, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	if err := s.publisher.Publish(ctx, s.stream, events.UserCreated, events.UserCreatedEvent{
		UserID:        user.ID,
		Email:         user.Email,
		FullName:      user.FullName,
		AccountID:     account.ID,
		AccountNumber: account.AccountNumber,
	}); err != nil {
		zap.L().Warn("Failed to publish user.created event", zap.Error(err))
	}

	return &models.AuthResult{
		Token:   signed,
		User:    models.UserToView(user),
		Account: models.AccountToView(account),
	}, nil
}

func (s *AuthCommandService) UpdateProfile(ctx context.Context, cmd cqrs.UpdateProfileCommand) (*models.UserView, error) {
	user, err := s.users.GetByID(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}
	if cmd.FullName != "" {
		user.FullName = cmd.FullName
	}
	if cmd.Phone != "" {
		user.Phone = cmd.Phone
	}
	user.UpdatedAt = s.now()

	if err := s.users.UpdateProfile(ctx, user.ID, user.FullName, user.Phone, user.UpdatedAt); err != nil {
		return nil, err
	}
	return models.UserToView(user), nil
}

func (s *AuthCommandService) ChangePassword(ctx context.Context, cmd cqrs.ChangePasswordCommand) error {
	user, err := s.users.GetByID(ctx, cmd.UserID)
	if err != nil {
		return err
	}
	if !utils.CheckPassword(cmd.CurrentPassword, user.PasswordHash) {
		return cqrs.ErrInvalidCredentials
	}
	hash, err := utils.HashPassword(cmd.NewPassword, s.bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.users.UpdatePassword(ctx, user.ID, hash, s.now()); err != nil {
		return err
	}
	zap.L().Info("Password changed", zap.String("user_id", user.ID))
	return nil
}

func newAccount(userID, number, accountType string, now time.Time) *models.Account {
	return &models.Account{
		ID:            utils.GenerateID("acct"),
		UserID:        userID,
		AccountNumber: number,
		AccountType:   accountType,
		Balance:       decimal.Zero,
		Status:        models.AccountStatusActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}
