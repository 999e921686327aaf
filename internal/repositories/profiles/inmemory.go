package profiles

import (
	"context"
	"sync"
	"time"

	"github.com/KirkDiggler/chronicle-bot-discord/internal/domain/player"
	apperr "github.com/KirkDiggler/chronicle-bot-discord/internal/errors"
)

// inMemoryRepo implements the Repository interface with a map
type inMemoryRepo struct {
	mu       sync.RWMutex
	profiles map[string]*player.Profile
}

// NewInMemoryRepository creates a new in-memory profile repository
func NewInMemoryRepository() Repository {
	return &inMemoryRepo{
		profiles: make(map[string]*player.Profile),
	}
}

// Create stores a new profile
func (r *inMemoryRepo) Create(ctx context.Context, profile *player.Profile) error {
	if profile == nil {
		return apperr.InvalidArgument("profile cannot be nil")
	}
	if profile.UserID == "" {
		return apperr.InvalidArgument("profile user ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.profiles[profile.UserID]; exists {
		return apperr.AlreadyExistsf("profile for user '%s' already exists", profile.UserID)
	}

	stored := *profile
	stored.CreatedAt = time.Now().UTC()
	stored.UpdatedAt = stored.CreatedAt
	r.profiles[profile.UserID] = &stored

	return nil
}

// Get retrieves a profile by user ID
func (r *inMemoryRepo) Get(ctx context.Context, userID string) (*player.Profile, error) {
	if userID == "" {
		return nil, apperr.InvalidArgument("user ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	profile, exists := r.profiles[userID]
	if !exists {
		return nil, apperr.NotFoundf("profile for user '%s' not found", userID)
	}

	copied := *profile
	return &copied, nil
}

// Update persists an existing profile
func (r *inMemoryRepo) Update(ctx context.Context, profile *player.Profile) error {
	if profile == nil {
		return apperr.InvalidArgument("profile cannot be nil")
	}
	if profile.UserID == "" {
		return apperr.InvalidArgument("profile user ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.profiles[profile.UserID]
	if !exists {
		return apperr.NotFoundf("profile for user '%s' not found", profile.UserID)
	}

	stored := *profile
	stored.CreatedAt = existing.CreatedAt
	stored.UpdatedAt = time.Now().UTC()
	r.profiles[profile.UserID] = &stored

	return nil
}
