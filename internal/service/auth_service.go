package service

import (
	"context"
	"log/slog"

	"github.com/Hariksh/Expense-tracker/internal/apperr"
	"github.com/Hariksh/Expense-tracker/internal/auth"
	"github.com/Hariksh/Expense-tracker/internal/models"
	"github.com/Hariksh/Expense-tracker/internal/storage"
)

// Session is an authenticated user plus their token.
type Session struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// AuthService handles registration, login and user listing.
type AuthService struct {
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
	store         storage.Store
}

// NewAuthService creates a new authentication service.
func NewAuthService(authenticator auth.Authenticator, jwtManager *auth.JWTManager, store storage.Store) *AuthService {
	return &AuthService{
		authenticator: authenticator,
		jwtManager:    jwtManager,
		store:         store,
	}
}

// Register creates a new user account and issues a token.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*Session, error) {
	if len(name) < 2 {
		return nil, apperr.Validationf("name must be at least 2 characters")
	}
	if email == "" {
		return nil, apperr.Validationf("email is required")
	}

	user, err := s.authenticator.Register(ctx, name, email, password)
	if err != nil {
		slog.Warn("Registration failed", "email", email, "error", err)
		return nil, err
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		slog.Error("Failed to generate token", "user_id", user.ID, "error", err)
		return nil, apperr.Transactionf("generate token: %v", err)
	}

	slog.Info("User registered", "user_id", user.ID, "email", user.Email)
	return &Session{Token: token, User: user}, nil
}

// Login authenticates a user and issues a token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	if email == "" || password == "" {
		return nil, apperr.Validationf("email and password are required")
	}

	user, err := s.authenticator.Authenticate(ctx, email, password)
	if err != nil {
		slog.Warn("Login failed", "email", email)
		return nil, err
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		slog.Error("Failed to generate token", "user_id", user.ID, "error", err)
		return nil, apperr.Transactionf("generate token: %v", err)
	}

	slog.Info("User logged in", "user_id", user.ID)
	return &Session{Token: token, User: user}, nil
}

// ListUsers returns every registered user except the requester, for the
// contact picker.
func (s *AuthService) ListUsers(ctx context.Context, requesterID string) ([]*models.User, error) {
	users, err := s.store.ListUsersExcept(ctx, requesterID)
	if err != nil {
		return nil, apperr.Transactionf("list users: %v", err)
	}
	return users, nil
}
