// Package memory holds process-local implementations of the repository
// ports. Nothing here survives a restart.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/characters/characters-api/internal/core/domain"
)

// UserRepository keeps users in a map keyed by email.
type UserRepository struct {
	mu     sync.RWMutex
	users  map[string]*domain.User
	nextID int64
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}

// Create rejects a duplicate email; the check and the ID assignment happen
// under one write lock.
func (r *UserRepository) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[user.Email]; exists {
		return nil, domain.ErrUserExists
	}

	r.nextID++
	stored := cloneUser(user)
	stored.ID = r.nextID
	if stored.CreatedAt.IsZero() {
		now := time.Now().UTC()
		stored.CreatedAt, stored.UpdatedAt = now, now
	}
	r.users[stored.Email] = stored

	return cloneUser(stored), nil
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *UserRepository) SetRefreshToken(_ context.Context, email, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[email]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.RefreshToken = token
	u.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *UserRepository) ClearRefreshToken(_ context.Context, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[email]
	if !ok {
		return false, nil
	}
	u.RefreshToken = ""
	u.UpdatedAt = time.Now().UTC()
	return true, nil
}
