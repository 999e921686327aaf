package character_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/chronicle-bot-discord/internal/domain/character"
	"github.com/KirkDiggler/chronicle-bot-discord/internal/domain/shared"
	apperr "github.com/KirkDiggler/chronicle-bot-discord/internal/errors"
)

func TestDeduct_RefusesOverdraw(t *testing.T) {
	char := &character.Character{XP: 5, Freebies: 3}

	err := char.Deduct(shared.PoolExperience, 6)
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
	assert.Equal(t, 5, char.XP)

	require.NoError(t, char.Deduct(shared.PoolExperience, 5))
	assert.Equal(t, 0, char.XP)

	err = char.Deduct(shared.PoolFreebies, 4)
	require.Error(t, err)
	assert.Equal(t, 3, char.Freebies)
}

func TestDeductRefund_RoundTrip(t *testing.T) {
	char := &character.Character{Freebies: 15}

	require.NoError(t, char.Deduct(shared.PoolFreebies, 5))
	assert.Equal(t, 10, char.Freebies)

	char.Refund(shared.PoolFreebies, 5)
	assert.Equal(t, 15, char.Freebies)

	// Refunding nothing or a negative amount is a no-op
	char.Refund(shared.PoolFreebies, 0)
	char.Refund(shared.PoolFreebies, -3)
	assert.Equal(t, 15, char.Freebies)
}

func TestTraitMutation(t *testing.T) {
	char := &character.Character{}

	assert.Equal(t, 0, char.TraitRating("Forces"))
	assert.Equal(t, 1, char.IncrementTrait("Forces", 1))
	assert.Equal(t, 2, char.IncrementTrait("Forces", 1))

	// Decrement floors at zero
	assert.Equal(t, 0, char.DecrementTrait("Forces", 5))

	char.SetTrait("Strength", -2)
	assert.Equal(t, 0, char.TraitRating("Strength"))
}

func TestStatusTransitions(t *testing.T) {
	char := &character.Character{
		Name:   "Lifecycle",
		Status: shared.CharacterStatusUnfinished,
	}

	require.NoError(t, char.Submit())
	assert.Equal(t, shared.CharacterStatusSubmitted, char.Status)

	// Submit is not repeatable
	err := char.Submit()
	require.Error(t, err)
	assert.True(t, apperr.IsConflict(err))

	require.NoError(t, char.Approve())
	assert.True(t, char.IsApproved())

	require.NoError(t, char.Retire())
	assert.Equal(t, shared.CharacterStatusRetired, char.Status)

	// Terminal states reject further transitions
	assert.Error(t, char.Retire())
	assert.Error(t, char.MarkDeceased())
}

func TestApprove_RequiresSubmitted(t *testing.T) {
	char := &character.Character{
		Name:   "Eager",
		Status: shared.CharacterStatusUnfinished,
	}

	err := char.Approve()
	require.Error(t, err)
	assert.True(t, apperr.IsConflict(err))
}
