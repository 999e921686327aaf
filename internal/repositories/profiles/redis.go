package profiles

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/chronicle-bot-discord/internal/domain/player"
	apperr "github.com/KirkDiggler/chronicle-bot-discord/internal/errors"
)

// redisRepo implements the Repository interface using Redis
type redisRepo struct {
	client redis.UniversalClient
}

// RedisRepoConfig holds configuration for the Redis repository
type RedisRepoConfig struct {
	Client redis.UniversalClient
}

// NewRedisRepository creates a new Redis-backed profile repository
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	if cfg == nil {
		panic("RedisRepoConfig cannot be nil")
	}
	if cfg.Client == nil {
		panic("Redis client cannot be nil")
	}

	return &redisRepo{client: cfg.Client}
}

func (r *redisRepo) key(userID string) string {
	return fmt.Sprintf("profile:%s", userID)
}

// Create stores a new profile
func (r *redisRepo) Create(ctx context.Context, profile *player.Profile) error {
	if profile == nil {
		return apperr.InvalidArgument("profile cannot be nil")
	}
	if profile.UserID == "" {
		return apperr.InvalidArgument("profile user ID is required")
	}

	profile.CreatedAt = time.Now().UTC()
	profile.UpdatedAt = profile.CreatedAt

	jsonData, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}

	ok, err := r.client.SetNX(ctx, r.key(profile.UserID), jsonData, 0).Result()
	if err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}
	if !ok {
		return apperr.AlreadyExistsf("profile for user '%s' already exists", profile.UserID)
	}

	return nil
}

// Get retrieves a profile by user ID
func (r *redisRepo) Get(ctx context.Context, userID string) (*player.Profile, error) {
	if userID == "" {
		return nil, apperr.InvalidArgument("user ID is required")
	}

	jsonData, err := r.client.Get(ctx, r.key(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, apperr.NotFoundf("profile for user '%s' not found", userID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	var profile player.Profile
	if unmarshalErr := json.Unmarshal([]byte(jsonData), &profile); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to unmarshal profile: %w", unmarshalErr)
	}

	return &profile, nil
}

// Update persists an existing profile
func (r *redisRepo) Update(ctx context.Context, profile *player.Profile) error {
	if profile == nil {
		return apperr.InvalidArgument("profile cannot be nil")
	}
	if profile.UserID == "" {
		return apperr.InvalidArgument("profile user ID is required")
	}

	exists, err := r.client.Exists(ctx, r.key(profile.UserID)).Result()
	if err != nil {
		return fmt.Errorf("failed to check profile existence: %w", err)
	}
	if exists == 0 {
		return apperr.NotFoundf("profile for user '%s' not found", profile.UserID)
	}

	profile.UpdatedAt = time.Now().UTC()

	jsonData, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}

	if err := r.client.Set(ctx, r.key(profile.UserID), string(jsonData), 0).Err(); err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}

	return nil
}
