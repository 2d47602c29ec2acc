package handler

import (
	"context"
	"net/http"

	"github.com/Adebayoisreal122/Banking-Backend/internal/cqrs"
	"github.com/Adebayoisreal122/Banking-Backend/internal/middleware"
	"github.com/Adebayoisreal122/Banking-Backend/internal/models"
	"github.com/gin-gonic/gin"
)

// AuthCommander defines the write-side operations used by AuthHandler.
type AuthCommander interface {
	Signup(context.Context, cqrs.SignupCommand) (*models.AuthResult, error)
	UpdateProfile(context.Context, cqrs.UpdateProfileCommand) (*models.UserView, error)
	ChangePassword(context.Context, cqrs.ChangePasswordCommand) error
}

// AuthQuerier defines the read-side operations used by AuthHandler.
type AuthQuerier interface {
	Login(context.Context, cqrs.LoginCommand) (*models.AuthResult, error)
	RefreshToken(context.Context, cqrs.RefreshTokenCommand) (*models.AuthResult, error)
	GetProfile(context.Context, cqrs.GetProfileQuery) (*models.UserView, error)
}

type AuthHandler struct {
	commands AuthCommander
	queries  AuthQuerier
}

type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"fullName" validate:"required,max=255"`
	Phone    string `json:"phone" validate:"omitempty,max=20"`
}

type SigninRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	Token string `json:"token" validate:"required"`
}

type UpdateProfileRequest struct {
	FullName string `json:"fullName" validate:"omitempty,max=255"`
	Phone    string `json:"phone" validate:"omitempty,max=20"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8"`
}

func NewAuthHandler(commands AuthCommander, queries AuthQuerier) *AuthHandler {
	return &AuthHandler{commands: commands, queries: queries}
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if !bindAndValidate(c, &req) {
		return
	}

	result, err := h.commands.Signup(c.Request.Context(), cqrs.SignupCommand{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Phone:    req.Phone,
	})
	if err != nil {
		respondWithDomainError(c, err, "Failed to create user")
		return
	}

	c.JSON(http.StatusCreated, result)
}

func (h *AuthHandler) Signin(c *gin.Context) {
	var req SigninRequest
	if !bindAndValidate(c, &req) {
		return
	}

	result, err := h.queries.Login(c.Request.Context(), cqrs.LoginCommand{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondWithDomainError(c, err, "Failed to sign in")
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req RefreshTokenRequest
	if !bindAndValidate(c, &req) {
		return
	}

	result, err := h.queries.RefreshToken(c.Request.Context(), cqrs.RefreshTokenCommand{Token: req.Token})
	if err != nil {
		middleware.RespondWithError(c, http.StatusUnauthorized, "Invalid token")
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	view, err := h.queries.GetProfile(c.Request.Context(), cqrs.GetProfileQuery{UserID: userID})
	if err != nil {
		respondWithDomainError(c, err, "Failed to get profile")
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	var req UpdateProfileRequest
	if !bindAndValidate(c, &req) {
		return
	}

	view, err := h.commands.UpdateProfile(c.Request.Context(), cqrs.UpdateProfileCommand{
		UserID:   userID,
		FullName: req.FullName,
		Phone:    req.Phone,
	})
	if err != nil {
		respondWithDomainError(c, err, "Failed to update profile")
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	var req ChangePasswordRequest
	if !bindAndValidate(c, &req) {
		return
	}

	err := h.commands.ChangePassword(c.Request.Context(), cqrs.ChangePasswordCommand{
		UserID:          userID,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		respondWithDomainError(c, err, "Failed to change password")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password updated successfully"})
}
