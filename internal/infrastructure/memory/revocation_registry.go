package memory

import (
	"context"
	"sync"
)

// RevocationRegistry is a grow-only set of revoked tokens. Entries are never
// evicted, so membership is monotonic for the life of the process.
type RevocationRegistry struct {
	mu      sync.RWMutex
	revoked map[string]struct{}
}

func NewRevocationRegistry() *RevocationRegistry {
	return &RevocationRegistry{revoked: make(map[string]struct{})}
}

func (r *RevocationRegistry) Revoke(_ context.Context, token string) error {
	r.mu.Lock()
	r.revoked[token] = struct{}{}
	r.mu.Unlock()
	return nil
}

func (r *RevocationRegistry) IsRevoked(_ context.Context, token string) (bool, error) {
	r.mu.RLock()
	_, ok := r.revoked[token]
	r.mu.RUnlock()
	return ok, nil
}

// Len returns the number of revoked tokens.
func (r *RevocationRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.revoked)
}
