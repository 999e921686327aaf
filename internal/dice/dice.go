package dice

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
)

// PoolResult holds the outcome of one d10 dice pool roll
type PoolResult struct {
	Rolls      []int
	Difficulty int
	// Successes is the net count after ones cancel successes, never
	// negative unless the roll botched
	Successes int
	Ones      int
	Botch     bool
}

// RollPool rolls count d10s against a difficulty. Each die at or above the
// difficulty is a success; each 1 cancels one success. A roll with at least
// one 1 and no raw successes is a botch.
func RollPool(count, difficulty int) (*PoolResult, error) {
	if count < 1 {
		return nil, errors.New("invalid dice count")
	}
	if difficulty < 2 || difficulty > 10 {
		return nil, errors.New("difficulty must be between 2 and 10")
	}

	rolls := make([]int, count)
	for i := range rolls {
		rolls[i] = rand.Intn(10) + 1
	}

	return scorePool(rolls, difficulty), nil
}

func scorePool(rolls []int, difficulty int) *PoolResult {
	raw, ones := 0, 0
	for _, roll := range rolls {
		if roll >= difficulty {
			raw++
		}
		if roll == 1 {
			ones++
		}
	}

	result := &PoolResult{
		Rolls:      rolls,
		Difficulty: difficulty,
		Ones:       ones,
	}
	if raw == 0 && ones > 0 {
		result.Botch = true
		return result
	}

	result.Successes = raw - ones
	if result.Successes < 0 {
		result.Successes = 0
	}
	return result
}

func (r *PoolResult) String() string {
	compact := strings.ReplaceAll(fmt.Sprintf("%v", r.Rolls), " ", ",")
	if r.Botch {
		return fmt.Sprintf("**Botch!** %s vs %d", compact, r.Difficulty)
	}
	noun := "successes"
	if r.Successes == 1 {
		noun = "success"
	}
	return fmt.Sprintf("**%d %s** %s vs %d", r.Successes, noun, compact, r.Difficulty)
}
