package chronicles

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/chronicle-bot-discord/internal/domain/chronicle"
	apperr "github.com/KirkDiggler/chronicle-bot-discord/internal/errors"
	"github.com/KirkDiggler/chronicle-bot-discord/internal/uuid"
)

// redisRepo implements the Repository interface using Redis. One chronicle
// per guild; the guild index key points at the chronicle ID.
type redisRepo struct {
	client        redis.UniversalClient
	uuidGenerator uuid.Generator
}

// RedisRepoConfig holds configuration for the Redis repository
type RedisRepoConfig struct {
	Client        redis.UniversalClient
	UUIDGenerator uuid.Generator
}

// NewRedisRepository creates a new Redis-backed chronicle repository
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	if cfg == nil {
		panic("RedisRepoConfig cannot be nil")
	}
	if cfg.Client == nil {
		panic("Redis client cannot be nil")
	}
	if cfg.UUIDGenerator == nil {
		cfg.UUIDGenerator = uuid.NewGoogleUUIDGenerator()
	}

	return &redisRepo{
		client:        cfg.Client,
		uuidGenerator: cfg.UUIDGenerator,
	}
}

func (r *redisRepo) key(id string) string {
	return fmt.Sprintf("chronicle:%s", id)
}

func (r *redisRepo) guildKey(guildID string) string {
	return fmt.Sprintf("guild:%s:chronicle", guildID)
}

// Create stores a new chronicle
func (r *redisRepo) Create(ctx context.Context, chron *chronicle.Chronicle) error {
	if chron == nil {
		return apperr.InvalidArgument("chronicle cannot be nil")
	}
	if chron.ID == "" {
		chron.ID = r.uuidGenerator.New()
	}
	if chron.StorytellerID == "" {
		return apperr.InvalidArgument("chronicle storyteller ID is required")
	}
	if chron.GuildID != "" {
		existing, err := r.client.Get(ctx, r.guildKey(chron.GuildID)).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return fmt.Errorf("failed to check guild chronicle: %w", err)
		}
		if existing != "" {
			return apperr.AlreadyExistsf("guild '%s' already has a chronicle", chron.GuildID).
				WithMeta("guild_id", chron.GuildID)
		}
	}

	chron.CreatedAt = time.Now().UTC()
	chron.UpdatedAt = chron.CreatedAt

	jsonData, err := json.Marshal(chron)
	if err != nil {
		return fmt.Errorf("failed to marshal chronicle: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, r.key(chron.ID), string(jsonData), 0)
	if chron.GuildID != "" {
		pipe.Set(ctx, r.guildKey(chron.GuildID), chron.ID, 0)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to create chronicle: %w", err)
	}

	return nil
}

// Get retrieves a chronicle by ID
func (r *redisRepo) Get(ctx context.Context, id string) (*chronicle.Chronicle, error) {
	if id == "" {
		return nil, apperr.InvalidArgument("chronicle ID is required")
	}

	jsonData, err := r.client.Get(ctx, r.key(id)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, apperr.NotFoundf("chronicle with ID '%s' not found", id).
			WithMeta("chronicle_id", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get chronicle: %w", err)
	}

	var chron chronicle.Chronicle
	if unmarshalErr := json.Unmarshal([]byte(jsonData), &chron); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to unmarshal chronicle: %w", unmarshalErr)
	}

	return &chron, nil
}

// GetByGuild retrieves the chronicle bound to a Discord guild
func (r *redisRepo) GetByGuild(ctx context.Context, guildID string) (*chronicle.Chronicle, error) {
	if guildID == "" {
		return nil, apperr.InvalidArgument("guild ID is required")
	}

	id, err := r.client.Get(ctx, r.guildKey(guildID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, apperr.NotFoundf("guild '%s' has no chronicle", guildID).
			WithMeta("guild_id", guildID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve guild chronicle: %w", err)
	}

	return r.Get(ctx, id)
}

// Update persists an existing chronicle
func (r *redisRepo) Update(ctx context.Context, chron *chronicle.Chronicle) error {
	if chron == nil {
		return apperr.InvalidArgument("chronicle cannot be nil")
	}
	if chron.ID == "" {
		return apperr.InvalidArgument("chronicle ID is required")
	}

	exists, err := r.client.Exists(ctx, r.key(chron.ID)).Result()
	if err != nil {
		return fmt.Errorf("failed to check chronicle existence: %w", err)
	}
	if exists == 0 {
		return apperr.NotFoundf("chronicle with ID '%s' not found", chron.ID)
	}

	chron.UpdatedAt = time.Now().UTC()

	jsonData, err := json.Marshal(chron)
	if err != nil {
		return fmt.Errorf("failed to marshal chronicle: %w", err)
	}

	if err := r.client.Set(ctx, r.key(chron.ID), string(jsonData), 0).Err(); err != nil {
		return fmt.Errorf("failed to update chronicle: %w", err)
	}

	return nil
}
