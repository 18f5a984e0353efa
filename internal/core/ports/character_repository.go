package ports

import (
	"context"

	"github.com/characters/characters-api/internal/core/domain"
)

// CharacterRepository is a keyed collection of characters. Unknown IDs
// yield domain.ErrCharacterNotFound.
type CharacterRepository interface {
	List(ctx context.Context) ([]domain.Character, error)
	Get(ctx context.Context, id int64) (*domain.Character, error)
	Create(ctx context.Context, c domain.Character) (*domain.Character, error)
	Update(ctx context.Context, c domain.Character) (*domain.Character, error)
	Delete(ctx context.Context, id int64) error
}
