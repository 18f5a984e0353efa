package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/characters/characters-api/internal/core/domain"
)

type CharacterRepository struct {
	mu         sync.RWMutex
	characters map[int64]domain.Character
	nextID     int64
}

func NewCharacterRepository() *CharacterRepository {
	return &CharacterRepository{characters: make(map[int64]domain.Character)}
}

// List returns characters ordered by ID.
func (r *CharacterRepository) List(_ context.Context) ([]domain.Character, error) {
	r.mu.RLock()
	out := make([]domain.Character, 0, len(r.characters))
	for _, c := range r.characters {
		out = append(out, c)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *CharacterRepository) Get(_ context.Context, id int64) (*domain.Character, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.characters[id]
	if !ok {
		return nil, domain.ErrCharacterNotFound
	}
	return &c, nil
}

func (r *CharacterRepository) Create(_ context.Context, c domain.Character) (*domain.Character, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	c.ID = r.nextID
	r.characters[c.ID] = c
	return &c, nil
}

func (r *CharacterRepository) Update(_ context.Context, c domain.Character) (*domain.Character, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.characters[c.ID]; !ok {
		return nil, domain.ErrCharacterNotFound
	}
	r.characters[c.ID] = c
	return &c, nil
}

func (r *CharacterRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.characters[id]; !ok {
		return domain.ErrCharacterNotFound
	}
	delete(r.characters, id)
	return nil
}
