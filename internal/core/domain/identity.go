package domain

import (
	"errors"
	"time"
)

// Gate failure causes. They never reach the client; the response body is
// the same for all of them.
var (
	ErrMissingCredential = errors.New("missing bearer credential")
	ErrRevokedCredential = errors.New("credential revoked")
	ErrInvalidCredential = errors.New("credential invalid")
	ErrInsufficientRole  = errors.New("insufficient role")
)

// Identity is the decoded access token attached to a request once it has
// passed authentication. It lives only for that request.
type Identity struct {
	UserID    int64
	Email     string
	Role      Role
	TokenID   string
	ExpiresAt time.Time

	// Token is the raw bearer string, kept so the holder can revoke it.
	Token string
}
