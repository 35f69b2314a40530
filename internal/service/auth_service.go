package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/bookseller-api/internal/auth"
	"github.com/spec-kit/bookseller-api/internal/config"
	"github.com/spec-kit/bookseller-api/internal/domain"
	"github.com/spec-kit/bookseller-api/internal/repository"
	apperrors "github.com/spec-kit/bookseller-api/pkg/util/errorutil"
)

// AuthService registers users, authenticates credentials and verifies tokens.
type AuthService struct {
	users    repository.CredentialStore
	hasher   *auth.PasswordHasher
	tokenMgr *auth.TokenManager
	logger   *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, users repository.CredentialStore, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:    users,
		hasher:   auth.NewPasswordHasher(cfg.BcryptCost),
		tokenMgr: auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTL()),
		logger:   logger,
	}
}

// Register stores a new user with a bcrypt hash of password.
func (s *AuthService) Register(ctx context.Context, username, password string, role domain.Role) error {
	if username == "" || password == "" || role == "" {
		return apperrors.NewValidationError("Missing required fields: username, password, and role are mandatory", nil)
	}

	if _, err := s.users.FindByUsername(ctx, username); err == nil {
		return errUsernameTaken()
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return apperrors.NewInternalError(err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooLong) {
			return apperrors.NewValidationError(
				fmt.Sprintf("Password must be at most %d bytes", auth.MaxPasswordBytes),
				map[string]any{"fields": []string{"password"}})
		}
		return apperrors.NewInternalError(err)
	}

	user := &domain.User{Username: username, PasswordHash: hash, Role: role}
	if err := s.users.Insert(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUserExists) {
			return errUsernameTaken()
		}
		return apperrors.NewInternalError(err)
	}
	s.logger.Info("user registered", zap.String("username", username), zap.String("role", string(role)))
	return nil
}

// Authenticate checks credentials and issues a signed token.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*domain.Token, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errInvalidCredentials()
		}
		return nil, apperrors.NewInternalError(err)
	}
	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		if !errors.Is(err, auth.ErrPasswordMismatch) {
			s.logger.Warn("stored password hash unusable", zap.String("username", username), zap.Error(err))
		}
		return nil, errInvalidCredentials()
	}

	token, err := s.tokenMgr.GenerateToken(user.Username, user.Role)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return token, nil
}

// Verify validates a presented token and returns the caller identity.
func (s *AuthService) Verify(token string) (*domain.Identity, error) {
	if token == "" {
		return nil, apperrors.NewUnauthorized("Token is missing!")
	}
	claims, err := s.tokenMgr.ParseToken(token)
	if err != nil {
		return nil, apperrors.NewUnauthorized("Token is invalid!")
	}
	return &domain.Identity{Subject: claims.Subject, Role: claims.Role}, nil
}

// TokenManager exposes the underlying token manager.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func errUsernameTaken() error {
	return apperrors.NewConflict("Username already exists", nil)
}

func errInvalidCredentials() error {
	return apperrors.NewUnauthorized("Invalid credentials")
}
