package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/characters/characters-api/internal/core/domain"
	"github.com/characters/characters-api/internal/core/ports"
)

const (
	minPasswordLen = 6
	// bcrypt only reads the first 72 bytes and rejects longer input.
	maxPasswordLen = 72

	dummyPassword = "characters-api/no-such-user"
)

// CredentialStore owns user records: it validates and hashes on the way in
// and is the only writer of the underlying repository.
type CredentialStore struct {
	repo     ports.UserRepository
	hasher   ports.PasswordHasher
	validate *validator.Validate

	dummyOnce sync.Once
	dummyHash string
}

func NewCredentialStore(repo ports.UserRepository, hasher ports.PasswordHasher) *CredentialStore {
	return &CredentialStore{
		repo:     repo,
		hasher:   hasher,
		validate: validator.New(),
	}
}

// Create registers email with the default user role.
func (s *CredentialStore) Create(ctx context.Context, email, password string) (*domain.User, error) {
	return s.CreateWithRole(ctx, email, password, domain.RoleUser)
}

// CreateWithRole is for operator-provisioned accounts; public registration
// always goes through Create.
func (s *CredentialStore) CreateWithRole(ctx context.Context, email, password string, role domain.Role) (*domain.User, error) {
	email = strings.TrimSpace(email)
	if err := s.validate.Var(email, "required,email"); err != nil {
		return nil, fmt.Errorf("%w: email must be a valid address", domain.ErrInvalidInput)
	}
	if len(password) < minPasswordLen {
		return nil, fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, minPasswordLen)
	}
	if len(password) > maxPasswordLen {
		return nil, fmt.Errorf("%w: password must be at most %d bytes", domain.ErrInvalidInput, maxPasswordLen)
	}
	if !role.Valid() {
		return nil, domain.ErrInvalidRole
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	return s.repo.Create(ctx, &domain.User{
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	})
}

func (s *CredentialStore) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.repo.FindByEmail(ctx, strings.TrimSpace(email))
}

// ValidatePassword reports whether candidate matches the user's hash. A nil
// user still costs one hash comparison, so unknown accounts answer as slowly
// as known ones.
func (s *CredentialStore) ValidatePassword(user *domain.User, candidate string) bool {
	if user == nil || user.PasswordHash == "" {
		s.hasher.Compare(s.placeholderHash(), candidate)
		return false
	}
	return s.hasher.Compare(user.PasswordHash, candidate)
}

func (s *CredentialStore) SetRefreshToken(ctx context.Context, email, token string) error {
	return s.repo.SetRefreshToken(ctx, strings.TrimSpace(email), token)
}

// RevokeRefreshToken clears the user's refresh token and reports whether
// the user exists.
func (s *CredentialStore) RevokeRefreshToken(ctx context.Context, email string) (bool, error) {
	return s.repo.ClearRefreshToken(ctx, strings.TrimSpace(email))
}

func (s *CredentialStore) placeholderHash() string {
	s.dummyOnce.Do(func() {
		// On error the hash stays empty and Compare fails fast.
		s.dummyHash, _ = s.hasher.Hash(dummyPassword)
	})
	return s.dummyHash
}
