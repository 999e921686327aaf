package chronicles

import (
	"context"

	"github.com/KirkDiggler/chronicle-bot-discord/internal/domain/chronicle"
)

// Repository defines the interface for chronicle persistence
type Repository interface {
	// Create stores a new chronicle
	Create(ctx context.Context, chron *chronicle.Chronicle) error

	// Get retrieves a chronicle by ID
	Get(ctx context.Context, id string) (*chronicle.Chronicle, error)

	// GetByGuild retrieves the chronicle bound to a Discord guild
	GetByGuild(ctx context.Context, guildID string) (*chronicle.Chronicle, error)

	// Update persists an existing chronicle
	Update(ctx context.Context, chron *chronicle.Chronicle) error
}
