package dice

import (
	"errors"
	"sync"
)

// MockRoller implements Roller for testing with predetermined dice
type MockRoller struct {
	mu        sync.Mutex
	rolls     []int
	rollIndex int
}

// NewMockRoller creates a new mock dice roller
func NewMockRoller() *MockRoller {
	return &MockRoller{
		rolls: []int{},
	}
}

// QueueRolls adds dice values to be returned in order by RollPool
func (m *MockRoller) QueueRolls(values ...int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rolls = append(m.rolls, values...)
}

// RollPool consumes queued dice and scores them against the difficulty
func (m *MockRoller) RollPool(count, difficulty int) (*PoolResult, error) {
	if count < 1 {
		return nil, errors.New("invalid dice count")
	}
	if difficulty < 2 || difficulty > 10 {
		return nil, errors.New("difficulty must be between 2 and 10")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.rollIndex+count > len(m.rolls) {
		return nil, errors.New("mock roller ran out of queued rolls")
	}

	rolls := make([]int, count)
	copy(rolls, m.rolls[m.rollIndex:m.rollIndex+count])
	m.rollIndex += count

	return scorePool(rolls, difficulty), nil
}
