package ports

import (
	"context"

	"github.com/characters/characters-api/internal/core/domain"
)

// CharacterInput carries the writable fields of a character.
type CharacterInput struct {
	Name     string `json:"name" validate:"required,min=6"`
	LastName string `json:"lastName" validate:"required,min=6"`
}

type CharacterService interface {
	List(ctx context.Context) ([]domain.Character, error)
	Get(ctx context.Context, id int64) (*domain.Character, error)
	Create(ctx context.Context, in CharacterInput) (*domain.Character, error)
	Update(ctx context.Context, id int64, in CharacterInput) (*domain.Character, error)
	Delete(ctx context.Context, id int64) error
}
