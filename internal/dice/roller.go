package dice

// Roller provides an interface for rolling dice pools
// This allows us to inject different implementations for testing
type Roller interface {
	// RollPool rolls a pool of d10s against a difficulty
	RollPool(count, difficulty int) (*PoolResult, error)
}
