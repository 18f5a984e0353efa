package ports

import (
	"time"

	"github.com/characters/characters-api/internal/core/domain"
)

// TokenVerifier checks signature and expiry of an access token and decodes it.
type TokenVerifier interface {
	Verify(token string) (*domain.Identity, error)
}

// TokenIssuer signs access and refresh tokens for a user.
type TokenIssuer interface {
	IssueAccessToken(user *domain.User) (token string, expiresAt time.Time, err error)
	IssueRefreshToken(user *domain.User) (string, error)
}

// PasswordHasher hashes and compares passwords.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Compare(hash, plain string) bool
}
