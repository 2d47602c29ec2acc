package query

import (
	"context"
	"errors"
	"strings"

	"github.com/Adebayoisreal122/Banking-Backend/internal/cqrs"
	"github.com/Adebayoisreal122/Banking-Backend/internal/models"
	"github.com/Adebayoisreal122/Banking-Backend/internal/repository"
	"github.com/Adebayoisreal122/Banking-Backend/internal/token"
	"github.com/Adebayoisreal122/Banking-Backend/internal/utils"
)

// AuthQueryService handles login, token refresh and profile reads. None of
// them mutate application state.
type AuthQueryService struct {
	userRepo *repository.UserRepository
	tokens   *token.Manager
}

func NewAuthQueryService(userRepo *repository.UserRepository, tokens *token.Manager) *AuthQueryService {
	return &AuthQueryService{userRepo: userRepo, tokens: tokens}
}

func (s *AuthQueryService) Login(ctx context.Context, cmd cqrs.LoginCommand) (*models.AuthResult, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(cmd.Email)))
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, cqrs.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !utils.CheckPassword(cmd.Password, user.PasswordHash) {
		return nil, cqrs.ErrInvalidCredentials
	}

	signed, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	return &models.AuthResult{Token: signed, User: models.UserToView(user)}, nil
}

// RefreshToken exchanges a still-valid token for a fresh one.
func (s *AuthQueryService) RefreshToken(ctx context.Context, cmd cqrs.RefreshTokenCommand) (*models.AuthResult, error) {
	claims, err := s.tokens.Parse(cmd.Token)
	if err != nil {
		return nil, cqrs.ErrInvalidCredentials
	}
	signed, err := s.tokens.Issue(claims.UserID, claims.Email)
	if err != nil {
		return nil, err
	}
	return &models.AuthResult{Token: signed}, nil
}

func (s *AuthQueryService) GetProfile(ctx context.Context, q cqrs.GetProfileQuery) (*models.UserView, error) {
	user, err := s.userRepo.GetByID(ctx, q.UserID)
	if err != nil {
		return nil, err
	}
	return models.UserToView(user), nil
}
