package chronicles

import (
	"context"
	"sync"
	"time"

	"github.com/KirkDiggler/chronicle-bot-discord/internal/domain/chronicle"
	apperr "github.com/KirkDiggler/chronicle-bot-discord/internal/errors"
	"github.com/KirkDiggler/chronicle-bot-discord/internal/uuid"
)

// inMemoryRepo implements the Repository interface with maps
type inMemoryRepo struct {
	mu            sync.RWMutex
	chronicles    map[string]*chronicle.Chronicle
	byGuild       map[string]string
	uuidGenerator uuid.Generator
}

// NewInMemoryRepository creates a new in-memory chronicle repository
func NewInMemoryRepository() Repository {
	return &inMemoryRepo{
		chronicles:    make(map[string]*chronicle.Chronicle),
		byGuild:       make(map[string]string),
		uuidGenerator: uuid.NewGoogleUUIDGenerator(),
	}
}

func cloneChronicle(chron *chronicle.Chronicle) *chronicle.Chronicle {
	copied := *chron
	copied.PlayerIDs = append([]string(nil), chron.PlayerIDs...)
	return &copied
}

// Create stores a new chronicle
func (r *inMemoryRepo) Create(ctx context.Context, chron *chronicle.Chronicle) error {
	if chron == nil {
		return apperr.InvalidArgument("chronicle cannot be nil")
	}
	if chron.ID == "" {
		chron.ID = r.uuidGenerator.New()
	}
	if chron.StorytellerID == "" {
		return apperr.InvalidArgument("chronicle storyteller ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if chron.GuildID != "" {
		if _, exists := r.byGuild[chron.GuildID]; exists {
			return apperr.AlreadyExistsf("guild '%s' already has a chronicle", chron.GuildID)
		}
	}

	chron.CreatedAt = time.Now().UTC()
	chron.UpdatedAt = chron.CreatedAt

	r.chronicles[chron.ID] = cloneChronicle(chron)
	if chron.GuildID != "" {
		r.byGuild[chron.GuildID] = chron.ID
	}

	return nil
}

// Get retrieves a chronicle by ID
func (r *inMemoryRepo) Get(ctx context.Context, id string) (*chronicle.Chronicle, error) {
	if id == "" {
		return nil, apperr.InvalidArgument("chronicle ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	chron, exists := r.chronicles[id]
	if !exists {
		return nil, apperr.NotFoundf("chronicle with ID '%s' not found", id)
	}

	return cloneChronicle(chron), nil
}

// GetByGuild retrieves the chronicle bound to a Discord guild
func (r *inMemoryRepo) GetByGuild(ctx context.Context, guildID string) (*chronicle.Chronicle, error) {
	if guildID == "" {
		return nil, apperr.InvalidArgument("guild ID is required")
	}

	r.mu.RLock()
	id, exists := r.byGuild[guildID]
	r.mu.RUnlock()

	if !exists {
		return nil, apperr.NotFoundf("guild '%s' has no chronicle", guildID)
	}

	return r.Get(ctx, id)
}

// Update persists an existing chronicle
func (r *inMemoryRepo) Update(ctx context.Context, chron *chronicle.Chronicle) error {
	if chron == nil {
		return apperr.InvalidArgument("chronicle cannot be nil")
	}
	if chron.ID == "" {
		return apperr.InvalidArgument("chronicle ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.chronicles[chron.ID]
	if !exists {
		return apperr.NotFoundf("chronicle with ID '%s' not found", chron.ID)
	}

	stored := cloneChronicle(chron)
	stored.CreatedAt = existing.CreatedAt
	stored.UpdatedAt = time.Now().UTC()
	r.chronicles[chron.ID] = stored

	return nil
}
