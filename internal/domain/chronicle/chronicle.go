package chronicle

import (
	"time"
)

// Chronicle is a campaign instance. The creator is its storyteller and the
// only one allowed to approve characters and freebie spends.
type Chronicle struct {
	ID            string    `json:"id"`
	GuildID       string    `json:"guild_id"`
	Name          string    `json:"name"`
	Setting       string    `json:"setting,omitempty"`
	StorytellerID string    `json:"storyteller_id"`
	PlayerIDs     []string  `json:"player_ids"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// HasPlayer reports whether the user has joined the chronicle
func (c *Chronicle) HasPlayer(userID string) bool {
	for _, id := range c.PlayerIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// AddPlayer adds a user to the chronicle roster, deduplicating
func (c *Chronicle) AddPlayer(userID string) {
	if c.HasPlayer(userID) || userID == c.StorytellerID {
		return
	}
	c.PlayerIDs = append(c.PlayerIDs, userID)
}

// IsStoryteller reports whether the user runs the chronicle
func (c *Chronicle) IsStoryteller(userID string) bool {
	return c.StorytellerID == userID
}
