package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/characters/characters-api/internal/api/metrics"
	"github.com/characters/characters-api/internal/core/domain"
	"github.com/characters/characters-api/internal/core/ports"
)

// AuthService implements registration, login and revocation on top of the
// credential store and the revocation registry.
type AuthService struct {
	store   *CredentialStore
	tokens  ports.TokenIssuer
	revoked ports.RevocationRegistry
	log     zerolog.Logger
}

func NewAuthService(store *CredentialStore, tokens ports.TokenIssuer, revoked ports.RevocationRegistry, log zerolog.Logger) *AuthService {
	return &AuthService{store: store, tokens: tokens, revoked: revoked, log: log}
}

func (s *AuthService) Register(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.store.Create(ctx, email, password)
	if err != nil {
		return nil, err
	}
	metrics.UsersRegisteredTotal.WithLabelValues(string(user.Role)).Inc()
	s.log.Info().Int64("user_id", user.ID).Msg("user registered")
	return user, nil
}

// Login does not distinguish an unknown email from a wrong password.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.Session, *domain.User, error) {
	if email == "" || password == "" {
		return nil, nil, domain.ErrInvalidCredentials
	}

	user, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.store.ValidatePassword(nil, password)
			return nil, nil, domain.ErrInvalidCredentials
		}
		return nil, nil, err
	}
	if !s.store.ValidatePassword(user, password) {
		return nil, nil, domain.ErrInvalidCredentials
	}

	access, expiresAt, err := s.tokens.IssueAccessToken(user)
	if err != nil {
		return nil, nil, err
	}
	refresh, err := s.tokens.IssueRefreshToken(user)
	if err != nil {
		return nil, nil, err
	}
	if err := s.store.SetRefreshToken(ctx, user.Email, refresh); err != nil {
		return nil, nil, fmt.Errorf("store refresh token: %w", err)
	}

	return &ports.Session{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    expiresAt,
	}, user, nil
}

// Logout revokes the access token the identity was authenticated with and
// drops the user's refresh session.
func (s *AuthService) Logout(ctx context.Context, identity *domain.Identity) error {
	if identity == nil || identity.Token == "" {
		return domain.ErrMissingCredential
	}
	if err := s.revoked.Revoke(ctx, identity.Token); err != nil {
		return err
	}
	metrics.TokensRevokedTotal.Inc()

	if _, err := s.store.RevokeRefreshToken(ctx, identity.Email); err != nil {
		return err
	}
	s.log.Info().Int64("user_id", identity.UserID).Str("jti", identity.TokenID).Msg("session revoked")
	return nil
}

// RevokeUser clears another user's refresh session.
func (s *AuthService) RevokeUser(ctx context.Context, email string) error {
	found, err := s.store.RevokeRefreshToken(ctx, email)
	if err != nil {
		return err
	}
	if !found {
		return domain.ErrUserNotFound
	}
	return nil
}

// EnsureAdmin provisions an admin account if email is not yet registered.
func (s *AuthService) EnsureAdmin(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return nil
	}
	_, err := s.store.CreateWithRole(ctx, email, password, domain.RoleAdmin)
	switch {
	case err == nil:
		s.log.Info().Str("email", email).Msg("admin account provisioned")
		return nil
	case errors.Is(err, domain.ErrUserExists):
		existing, findErr := s.store.FindByEmail(ctx, email)
		if findErr != nil {
			return fmt.Errorf("provision admin: %w", findErr)
		}
		if existing.Role != domain.RoleAdmin {
			s.log.Warn().
				Str("email", email).
				Str("role", string(existing.Role)).
				Msg("admin email belongs to a non-admin account; no admin provisioned")
		}
		return nil
	default:
		return fmt.Errorf("provision admin: %w", err)
	}
}
