package ports

import (
	"context"
	"time"

	"github.com/characters/characters-api/internal/core/domain"
)

// Session is the credential pair handed out on login.
type Session struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

type AuthService interface {
	Register(ctx context.Context, email, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*Session, *domain.User, error)
	Logout(ctx context.Context, identity *domain.Identity) error
	RevokeUser(ctx context.Context, email string) error
}
