package service

import (
	"context"

	"github.com/characters/characters-api/internal/core/domain"
	"github.com/characters/characters-api/internal/core/ports"
)

type characterService struct {
	repo ports.CharacterRepository
}

func NewCharacterService(repo ports.CharacterRepository) ports.CharacterService {
	return &characterService{repo: repo}
}

func (s *characterService) List(ctx context.Context) ([]domain.Character, error) {
	return s.repo.List(ctx)
}

func (s *characterService) Get(ctx context.Context, id int64) (*domain.Character, error) {
	return s.repo.Get(ctx, id)
}

func (s *characterService) Create(ctx context.Context, in ports.CharacterInput) (*domain.Character, error) {
	return s.repo.Create(ctx, domain.Character{Name: in.Name, LastName: in.LastName})
}

func (s *characterService) Update(ctx context.Context, id int64, in ports.CharacterInput) (*domain.Character, error) {
	return s.repo.Update(ctx, domain.Character{ID: id, Name: in.Name, LastName: in.LastName})
}

func (s *characterService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
