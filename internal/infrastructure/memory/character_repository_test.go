package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/characters/characters-api/internal/core/domain"
)

func TestCharacterRepository_CRUD(t *testing.T) {
	repo := NewCharacterRepository()
	ctx := context.Background()

	rick, err := repo.Create(ctx, domain.Character{Name: "Rickkk", LastName: "Sanchez"})
	require.NoError(t, err)
	morty, err := repo.Create(ctx, domain.Character{Name: "Mortyy", LastName: "Smithh"})
	require.NoError(t, err)
	assert.NotEqual(t, rick.ID, morty.ID)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, rick.ID, all[0].ID)

	rick.LastName = "Sanchez-C137"
	updated, err := repo.Update(ctx, *rick)
	require.NoError(t, err)
	assert.Equal(t, "Sanchez-C137", updated.LastName)

	require.NoError(t, repo.Delete(ctx, morty.ID))
	_, err = repo.Get(ctx, morty.ID)
	require.ErrorIs(t, err, domain.ErrCharacterNotFound)

	_, err = repo.Update(ctx, domain.Character{ID: 999})
	require.ErrorIs(t, err, domain.ErrCharacterNotFound)
	require.ErrorIs(t, repo.Delete(ctx, 999), domain.ErrCharacterNotFound)
}
