package dice

// randomRoller implements Roller with math/rand
type randomRoller struct{}

// NewRandomRoller creates a new random dice roller
func NewRandomRoller() Roller {
	return &randomRoller{}
}

// RollPool implements Roller.RollPool
func (r *randomRoller) RollPool(count, difficulty int) (*PoolResult, error) {
	return RollPool(count, difficulty)
}
