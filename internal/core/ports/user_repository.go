package ports

import (
	"context"

	"github.com/characters/characters-api/internal/core/domain"
)

// UserRepository persists user records keyed by email.
//
// Create assigns the numeric ID and must reject a second record for the same
// email with domain.ErrUserExists. Lookups of unknown emails return
// domain.ErrUserNotFound.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	SetRefreshToken(ctx context.Context, email, token string) error
	// ClearRefreshToken reports whether a user with that email exists.
	ClearRefreshToken(ctx context.Context, email string) (bool, error)
}
