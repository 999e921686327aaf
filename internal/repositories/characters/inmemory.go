package characters

import (
	"context"
	"sync"
	"time"

	"github.com/KirkDiggler/chronicle-bot-discord/internal/domain/character"
	apperr "github.com/KirkDiggler/chronicle-bot-discord/internal/errors"
	"github.com/KirkDiggler/chronicle-bot-discord/internal/uuid"
)

// inMemoryRepo implements the Repository interface with a map, for local
// development and tests. A single mutex serializes every update, so
// UpdateAtomic gets the same no-interleaving guarantee the Redis WATCH
// path provides.
type inMemoryRepo struct {
	mu            sync.RWMutex
	characters    map[string]*character.Character
	uuidGenerator uuid.Generator
}

// NewInMemoryRepository creates a new in-memory character repository
func NewInMemoryRepository() Repository {
	return &inMemoryRepo{
		characters:    make(map[string]*character.Character),
		uuidGenerator: uuid.NewGoogleUUIDGenerator(),
	}
}

// clone copies a character so callers cannot mutate the stored entity
func clone(char *character.Character) *character.Character {
	if char == nil {
		return nil
	}
	copied := *char
	copied.Traits = make(map[string]int, len(char.Traits))
	for name, rating := range char.Traits {
		copied.Traits[name] = rating
	}
	return &copied
}

// Create stores a new character
func (r *inMemoryRepo) Create(ctx context.Context, char *character.Character) error {
	if char == nil {
		return apperr.InvalidArgument("character cannot be nil")
	}
	if char.ID == "" {
		char.ID = r.uuidGenerator.New()
	}
	if char.OwnerID == "" {
		return apperr.InvalidArgument("character owner ID is required")
	}
	if char.ChronicleID == "" {
		return apperr.InvalidArgument("character chronicle ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.characters[char.ID]; exists {
		return apperr.AlreadyExistsf("character with ID '%s' already exists", char.ID)
	}

	stored := clone(char)
	stored.CreatedAt = time.Now().UTC()
	stored.UpdatedAt = stored.CreatedAt
	r.characters[char.ID] = stored

	return nil
}

// Get retrieves a character by ID
func (r *inMemoryRepo) Get(ctx context.Context, id string) (*character.Character, error) {
	if id == "" {
		return nil, apperr.InvalidArgument("character ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	char, exists := r.characters[id]
	if !exists {
		return nil, apperr.NotFoundf("character with ID '%s' not found", id)
	}

	return clone(char), nil
}

// GetByOwner retrieves all characters for a specific owner
func (r *inMemoryRepo) GetByOwner(ctx context.Context, ownerID string) ([]*character.Character, error) {
	if ownerID == "" {
		return nil, apperr.InvalidArgument("owner ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var chars []*character.Character
	for _, char := range r.characters {
		if char.OwnerID == ownerID {
			chars = append(chars, clone(char))
		}
	}

	return chars, nil
}

// GetByChronicle retrieves all characters in a chronicle
func (r *inMemoryRepo) GetByChronicle(ctx context.Context, chronicleID string) ([]*character.Character, error) {
	if chronicleID == "" {
		return nil, apperr.InvalidArgument("chronicle ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var chars []*character.Character
	for _, char := range r.characters {
		if char.ChronicleID == chronicleID {
			chars = append(chars, clone(char))
		}
	}

	return chars, nil
}

// Update persists an existing character
func (r *inMemoryRepo) Update(ctx context.Context, char *character.Character) error {
	if char == nil {
		return apperr.InvalidArgument("character cannot be nil")
	}
	if char.ID == "" {
		return apperr.InvalidArgument("character ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.characters[char.ID]
	if !exists {
		return apperr.NotFoundf("character with ID '%s' not found", char.ID)
	}

	stored := clone(char)
	stored.CreatedAt = existing.CreatedAt
	stored.UpdatedAt = time.Now().UTC()
	r.characters[char.ID] = stored

	return nil
}

// UpdateAtomic applies fn to a copy of the stored character under the
// repository lock and persists the result if fn succeeds
func (r *inMemoryRepo) UpdateAtomic(ctx context.Context, id string, fn UpdateFunc) (*character.Character, error) {
	if id == "" {
		return nil, apperr.InvalidArgument("character ID is required")
	}
	if fn == nil {
		return nil, apperr.InvalidArgument("update function is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.characters[id]
	if !exists {
		return nil, apperr.NotFoundf("character with ID '%s' not found", id)
	}

	working := clone(existing)
	if err := fn(working); err != nil {
		return nil, err
	}

	working.CreatedAt = existing.CreatedAt
	working.UpdatedAt = time.Now().UTC()
	r.characters[id] = working

	return clone(working), nil
}
