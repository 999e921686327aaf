package characters

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks -source=interface.go

import (
	"context"

	"github.com/KirkDiggler/chronicle-bot-discord/internal/domain/character"
)

// UpdateFunc mutates a freshly loaded character inside an atomic update.
// Returning an error aborts the update with no mutation persisted.
type UpdateFunc func(*character.Character) error

// Repository defines the interface for character persistence. Characters
// are never deleted, only status-transitioned, so there is no Delete.
type Repository interface {
	// Create stores a new character
	Create(ctx context.Context, char *character.Character) error

	// Get retrieves a character by ID
	Get(ctx context.Context, id string) (*character.Character, error)

	// GetByOwner retrieves all characters for a specific owner
	GetByOwner(ctx context.Context, ownerID string) ([]*character.Character, error)

	// GetByChronicle retrieves all characters in a chronicle
	GetByChronicle(ctx context.Context, chronicleID string) ([]*character.Character, error)

	// Update persists an existing character
	Update(ctx context.Context, char *character.Character) error

	// UpdateAtomic re-reads the character, applies fn and persists the
	// result as one atomic step. Concurrent updates to the same
	// character cannot interleave; one of them retries against the
	// other's result. All advancement mutations go through here.
	UpdateAtomic(ctx context.Context, id string, fn UpdateFunc) (*character.Character, error)
}
