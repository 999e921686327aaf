//go:build integration

package characters_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/chronicle-bot-discord/internal/domain/character"
	"github.com/KirkDiggler/chronicle-bot-discord/internal/domain/shared"
	apperr "github.com/KirkDiggler/chronicle-bot-discord/internal/errors"
	"github.com/KirkDiggler/chronicle-bot-discord/internal/repositories/characters"
	"github.com/KirkDiggler/chronicle-bot-discord/internal/testutils"
)

func setupRepo(t *testing.T) characters.Repository {
	t.Helper()
	client := testutils.CreateTestRedisClientOrSkip(t)
	return characters.NewRedisRepository(&characters.RedisRepoConfig{Client: client})
}

func TestRedisRepo_RoundTrip(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	char := testutils.CreateTestMage("", "player-1", "chronicle-1", "Morgan")
	require.NoError(t, repo.Create(ctx, char))
	require.NotEmpty(t, char.ID)

	got, err := repo.Get(ctx, char.ID)
	require.NoError(t, err)
	assert.Equal(t, "Morgan", got.Name)
	assert.Equal(t, shared.ArchetypeMage, got.Archetype)
	assert.Equal(t, 2, got.TraitRating("Forces"))

	byOwner, err := repo.GetByOwner(ctx, "player-1")
	require.NoError(t, err)
	assert.Len(t, byOwner, 1)

	byChronicle, err := repo.GetByChronicle(ctx, "chronicle-1")
	require.NoError(t, err)
	assert.Len(t, byChronicle, 1)

	_, err = repo.Get(ctx, "nope")
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

func TestRedisRepo_UpdateAtomic_ConcurrentIncrements(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	char := testutils.CreateTestMortal("mortal-1", "player-1", "chronicle-1", "Alex")
	require.NoError(t, repo.Create(ctx, char))

	// Each goroutine grants one XP; under WATCH none of the writes may
	// clobber another. Every committed transaction costs the losers one
	// of their retries, so the worker count stays below the retry cap.
	const workers = 5
	var group errgroup.Group
	for i := 0; i < workers; i++ {
		group.Go(func() error {
			_, err := repo.UpdateAtomic(ctx, char.ID, func(c *character.Character) error {
				c.XP++
				return nil
			})
			return err
		})
	}
	require.NoError(t, group.Wait())

	got, err := repo.Get(ctx, char.ID)
	require.NoError(t, err)
	assert.Equal(t, workers, got.XP)
}

func TestRedisRepo_UpdateAtomic_ErrorDoesNotPersist(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	char := testutils.CreateTestMortal("mortal-1", "player-1", "chronicle-1", "Alex")
	require.NoError(t, repo.Create(ctx, char))

	_, err := repo.UpdateAtomic(ctx, char.ID, func(c *character.Character) error {
		c.XP = 999
		return apperr.Validation("nope")
	})
	require.Error(t, err)

	got, err := repo.Get(ctx, char.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.XP)
}
