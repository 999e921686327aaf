package profiles

import (
	"context"

	"github.com/KirkDiggler/chronicle-bot-discord/internal/domain/player"
)

// Repository defines the interface for player profile persistence
type Repository interface {
	// Create stores a new profile
	Create(ctx context.Context, profile *player.Profile) error

	// Get retrieves a profile by user ID
	Get(ctx context.Context, userID string) (*player.Profile, error)

	// Update persists an existing profile
	Update(ctx context.Context, profile *player.Profile) error
}
