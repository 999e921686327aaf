package dice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/chronicle-bot-discord/internal/dice"
)

func rollQueued(t *testing.T, difficulty int, values ...int) *dice.PoolResult {
	t.Helper()
	roller := dice.NewMockRoller()
	roller.QueueRolls(values...)
	result, err := roller.RollPool(len(values), difficulty)
	require.NoError(t, err)
	return result
}

func TestRollPool_Scoring(t *testing.T) {
	tests := []struct {
		name       string
		rolls      []int
		difficulty int
		successes  int
		botch      bool
	}{
		{"all successes", []int{6, 7, 10}, 6, 3, false},
		{"all failures", []int{2, 3, 5}, 6, 0, false},
		{"ones cancel successes", []int{1, 8, 9}, 6, 1, false},
		{"ones floor at zero with a success", []int{1, 1, 7}, 6, 0, false},
		{"botch on ones and no successes", []int{1, 2, 3}, 6, 0, true},
		{"lone one botches", []int{1}, 6, 0, true},
		{"die at difficulty counts", []int{6}, 6, 1, false},
		{"high difficulty", []int{8, 9, 10}, 9, 2, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := rollQueued(t, tt.difficulty, tt.rolls...)
			assert.Equal(t, tt.successes, result.Successes)
			assert.Equal(t, tt.botch, result.Botch)
			assert.Equal(t, tt.rolls, result.Rolls)
		})
	}
}

func TestRollPool_Validation(t *testing.T) {
	roller := dice.NewRandomRoller()

	_, err := roller.RollPool(0, 6)
	assert.Error(t, err)

	_, err = roller.RollPool(5, 1)
	assert.Error(t, err)

	_, err = roller.RollPool(5, 11)
	assert.Error(t, err)
}

func TestRollPool_RandomRollerBounds(t *testing.T) {
	roller := dice.NewRandomRoller()

	result, err := roller.RollPool(20, 6)
	require.NoError(t, err)
	require.Len(t, result.Rolls, 20)
	for _, roll := range result.Rolls {
		assert.GreaterOrEqual(t, roll, 1)
		assert.LessOrEqual(t, roll, 10)
	}
}

func TestMockRoller_ConsumesQueueInOrder(t *testing.T) {
	roller := dice.NewMockRoller()
	roller.QueueRolls(10, 1, 5)

	first, err := roller.RollPool(2, 6)
	require.NoError(t, err)
	assert.Equal(t, []int{10, 1}, first.Rolls)

	second, err := roller.RollPool(1, 6)
	require.NoError(t, err)
	assert.Equal(t, []int{5}, second.Rolls)

	_, err = roller.RollPool(1, 6)
	assert.Error(t, err)
}

func TestPoolResult_String(t *testing.T) {
	assert.Contains(t, rollQueued(t, 6, 7, 8).String(), "**2 successes**")
	assert.Contains(t, rollQueued(t, 6, 7).String(), "**1 success**")
	assert.Contains(t, rollQueued(t, 6, 1, 2).String(), "Botch!")
}
