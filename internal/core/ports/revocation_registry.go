package ports

import "context"

// RevocationRegistry holds access tokens that must no longer be honoured.
// Revoke is idempotent and a completed Revoke is visible to every later
// IsRevoked call.
type RevocationRegistry interface {
	Revoke(ctx context.Context, token string) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}
