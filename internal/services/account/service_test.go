package account_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperr "github.com/KirkDiggler/chronicle-bot-discord/internal/errors"
	"github.com/KirkDiggler/chronicle-bot-discord/internal/repositories/profiles"
	accountService "github.com/KirkDiggler/chronicle-bot-discord/internal/services/account"
)

func setupService() accountService.Service {
	return accountService.NewService(&accountService.ServiceConfig{
		ProfileRepository: profiles.NewInMemoryRepository(),
	})
}

func TestEnsureProfile_CreatesOnFirstContact(t *testing.T) {
	svc := setupService()
	ctx := context.Background()

	profile, err := svc.EnsureProfile(ctx, "user-1", "morgan")
	require.NoError(t, err)
	assert.Equal(t, "user-1", profile.UserID)
	assert.Equal(t, "morgan", profile.Username)

	got, err := svc.GetProfile(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "morgan", got.Username)
}

func TestEnsureProfile_RefreshesStaleUsername(t *testing.T) {
	svc := setupService()
	ctx := context.Background()

	_, err := svc.EnsureProfile(ctx, "user-1", "morgan")
	require.NoError(t, err)

	profile, err := svc.EnsureProfile(ctx, "user-1", "morgan_le_fay")
	require.NoError(t, err)
	assert.Equal(t, "morgan_le_fay", profile.Username)

	// An empty username never clobbers the stored one
	profile, err = svc.EnsureProfile(ctx, "user-1", "")
	require.NoError(t, err)
	assert.Equal(t, "morgan_le_fay", profile.Username)
}

func TestGetProfile_Validation(t *testing.T) {
	svc := setupService()

	_, err := svc.GetProfile(context.Background(), "")
	require.Error(t, err)
	assert.True(t, apperr.IsInvalidArgument(err))

	_, err = svc.GetProfile(context.Background(), "ghost")
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}
