package player

import "time"

// Profile is the per-user record the bot keeps for every player it has
// seen. It is created explicitly on first interaction rather than by an
// implicit side effect, so the dependency is visible and testable.
type Profile struct {
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
