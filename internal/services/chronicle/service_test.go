package chronicle_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperr "github.com/KirkDiggler/chronicle-bot-discord/internal/errors"
	"github.com/KirkDiggler/chronicle-bot-discord/internal/repositories/chronicles"
	chronicleService "github.com/KirkDiggler/chronicle-bot-discord/internal/services/chronicle"
)

func setupService(t *testing.T) chronicleService.Service {
	t.Helper()
	return chronicleService.NewService(&chronicleService.ServiceConfig{
		ChronicleRepository: chronicles.NewInMemoryRepository(),
	})
}

func TestCreateChronicle(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	chron, err := svc.CreateChronicle(ctx, &chronicleService.CreateChronicleInput{
		GuildID:       "guild-1",
		Name:          "Blood and Smoke",
		Setting:       "Chicago, 1993",
		StorytellerID: "storyteller-1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, chron.ID)
	assert.Equal(t, "Blood and Smoke", chron.Name)

	byGuild, err := svc.GetByGuild(ctx, "guild-1")
	require.NoError(t, err)
	assert.Equal(t, chron.ID, byGuild.ID)

	isST, err := svc.IsStoryteller(ctx, "guild-1", "storyteller-1")
	require.NoError(t, err)
	assert.True(t, isST)
}

func TestCreateChronicle_Validation(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	_, err := svc.CreateChronicle(ctx, nil)
	require.Error(t, err)
	assert.True(t, apperr.IsInvalidArgument(err))

	_, err = svc.CreateChronicle(ctx, &chronicleService.CreateChronicleInput{
		GuildID:       "guild-1",
		StorytellerID: "storyteller-1",
	})
	require.Error(t, err)
	assert.True(t, apperr.IsInvalidArgument(err))
}

func TestJoin_IsIdempotent(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	_, err := svc.CreateChronicle(ctx, &chronicleService.CreateChronicleInput{
		GuildID:       "guild-1",
		Name:          "Blood and Smoke",
		StorytellerID: "storyteller-1",
	})
	require.NoError(t, err)

	chron, err := svc.Join(ctx, "guild-1", "player-1")
	require.NoError(t, err)
	assert.True(t, chron.HasPlayer("player-1"))

	// Joining again changes nothing
	chron, err = svc.Join(ctx, "guild-1", "player-1")
	require.NoError(t, err)
	assert.Len(t, chron.PlayerIDs, 1)

	// The storyteller is already on the roster
	chron, err = svc.Join(ctx, "guild-1", "storyteller-1")
	require.NoError(t, err)
	assert.Len(t, chron.PlayerIDs, 1)
}

func TestJoin_UnknownGuild(t *testing.T) {
	svc := setupService(t)

	_, err := svc.Join(context.Background(), "guild-missing", "player-1")
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))

	isST, err := svc.IsStoryteller(context.Background(), "guild-missing", "player-1")
	require.Error(t, err)
	assert.False(t, isST)
}
