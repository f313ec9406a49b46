package service

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/commerce-mesh/internal/api/dto"
	"github.com/spec-kit/commerce-mesh/internal/auth"
	"github.com/spec-kit/commerce-mesh/internal/client"
	"github.com/spec-kit/commerce-mesh/internal/config"
	"github.com/spec-kit/commerce-mesh/internal/domain"
	"github.com/spec-kit/commerce-mesh/internal/repository"
	apperrors "github.com/spec-kit/commerce-mesh/pkg/util"
)

// AuthService coordinates login, registration and token refresh.
type AuthService struct {
	creds      repository.CredentialRepository
	users      client.UserServiceClient
	tokens     *auth.TokenManager
	bcryptCost int
	logger     *zap.Logger
}

// AuthDependencies encapsulates collaborator requirements.
type AuthDependencies struct {
	CredentialRepo repository.CredentialRepository
	UserClient     client.UserServiceClient
	Logger         *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		creds:      deps.CredentialRepo,
		users:      deps.UserClient,
		tokens:     auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL(), cfg.Auth.RefreshTokenTTL()),
		bcryptCost: cfg.Auth.BcryptCost,
		logger:     deps.Logger,
	}
}

// Login authenticates by email+password and issues a fresh pair.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.TokenPair, error) {
	cred, err := s.creds.GetByEmail(ctx, email)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.TokenPair{}, apperrors.NewUnauthorized("invalid credentials")
		}
		return domain.TokenPair{}, err
	}
	if err := auth.ComparePassword(cred.PasswordHash, password); err != nil {
		return domain.TokenPair{}, apperrors.NewUnauthorized("invalid credentials")
	}
	return s.tokens.Issue(domain.Identity{Subject: cred.Email, Roles: cred.Roles})
}

// Register creates the profile in user-service, stores credentials with
// ROLE_USER, and issues the initial pair. If storing credentials fails
// after the profile was created, the profile is deleted best-effort so
// the two services do not drift.
func (s *AuthService) Register(ctx context.Context, email, password, name, surname string, birthDate *time.Time) (domain.TokenPair, error) {
	exists, err := s.creds.ExistsByEmail(ctx, email)
	if err != nil {
		return domain.TokenPair{}, err
	}
	if exists {
		return domain.TokenPair{}, apperrors.NewConflict("email already registered", nil)
	}

	profile, err := s.users.CreateUser(ctx, dto.CreateUserRequest{
		Email:     email,
		Name:      name,
		Surname:   surname,
		BirthDate: birthDate,
	})
	if err != nil {
		return domain.TokenPair{}, apperrors.NewInternalError(err)
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		s.rollbackProfile(ctx, profile.ID)
		return domain.TokenPair{}, err
	}

	cred := &domain.Credential{
		UserID:       profile.ID,
		Email:        email,
		PasswordHash: hash,
		Roles:        []domain.Role{domain.RoleUser},
	}
	if err := s.creds.Create(ctx, cred); err != nil {
		s.rollbackProfile(ctx, profile.ID)
		return domain.TokenPair{}, err
	}

	return s.tokens.Issue(domain.Identity{Subject: cred.Email, Roles: cred.Roles})
}

func (s *AuthService) rollbackProfile(ctx context.Context, userID int64) {
	if err := s.users.DeleteUser(ctx, userID); err != nil {
		s.logger.Error("rollback failed: could not delete profile in user-service",
			zap.Int64("user_id", userID), zap.Error(err))
	}
}

// Refresh exchanges a valid refresh token for a new pair. An access
// token presented here is an access denial, not a validation error.
// The role snapshot is re-read so revoked or added roles take effect.
func (s *AuthService) Refresh(ctx context.Context, token string) (domain.TokenPair, error) {
	if !s.tokens.Validate(token) || !s.tokens.IsRefreshToken(token) {
		return domain.TokenPair{}, apperrors.NewForbidden("invalid or expired refresh token")
	}

	subject, err := s.tokens.ExtractSubject(token)
	if err != nil {
		return domain.TokenPair{}, apperrors.NewForbidden("invalid or expired refresh token")
	}

	cred, err := s.creds.GetByEmail(ctx, subject)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.TokenPair{}, apperrors.NewForbidden("unknown subject")
		}
		return domain.TokenPair{}, err
	}

	return s.tokens.Issue(domain.Identity{Subject: cred.Email, Roles: cred.Roles})
}

// Validate reports whether the token passes signature and expiry checks.
func (s *AuthService) Validate(token string) bool {
	return s.tokens.Validate(token)
}

// TokenManager exposes the underlying manager for middleware wiring.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokens
}
