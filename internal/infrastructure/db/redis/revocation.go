package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "revoked:"

// RevocationRegistry stores revoked access tokens in Redis so every API
// replica sees the same set.
// Key format: revoked:<hex sha256 of token>
//
// Each key lives for ttl, which must be at least the access-token lifetime:
// by the time a key expires the token it names has expired too and is
// rejected by signature verification instead.
type RevocationRegistry struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRevocationRegistry wraps client. A non-positive ttl keeps keys forever.
func NewRevocationRegistry(client *redis.Client, ttl time.Duration) *RevocationRegistry {
	if ttl < 0 {
		ttl = 0
	}
	return &RevocationRegistry{client: client, ttl: ttl}
}

func (r *RevocationRegistry) Revoke(ctx context.Context, token string) error {
	if err := r.client.Set(ctx, r.key(token), "1", r.ttl).Err(); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

func (r *RevocationRegistry) IsRevoked(ctx context.Context, token string) (bool, error) {
	n, err := r.client.Exists(ctx, r.key(token)).Result()
	if err != nil {
		return false, fmt.Errorf("revocation check: %w", err)
	}
	return n > 0, nil
}

// Tokens are hashed so raw credentials never sit in Redis.
func (r *RevocationRegistry) key(token string) string {
	sum := sha256.Sum256([]byte(token))
	return keyPrefix + hex.EncodeToString(sum[:])
}
