package characters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/chronicle-bot-discord/internal/domain/character"
	"github.com/KirkDiggler/chronicle-bot-discord/internal/domain/shared"
	apperr "github.com/KirkDiggler/chronicle-bot-discord/internal/errors"
	"github.com/KirkDiggler/chronicle-bot-discord/internal/uuid"
)

// CharacterData represents the serialized form of a character in Redis
type CharacterData struct {
	ID          string                 `json:"id"`
	OwnerID     string                 `json:"owner_id"`
	ChronicleID string                 `json:"chronicle_id"`
	Name        string                 `json:"name"`
	Archetype   shared.Archetype       `json:"archetype"`
	Status      shared.CharacterStatus `json:"status"`
	XP          int                    `json:"xp"`
	Freebies    int                    `json:"freebies"`
	Traits      map[string]int         `json:"traits"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}

// maxUpdateRetries bounds optimistic-lock retries before giving up
const maxUpdateRetries = 5

// redisRepo implements the Repository interface using Redis
type redisRepo struct {
	client        redis.UniversalClient
	uuidGenerator uuid.Generator
}

// RedisRepoConfig holds configuration for the Redis repository
type RedisRepoConfig struct {
	Client        redis.UniversalClient
	UUIDGenerator uuid.Generator
}

// NewRedisRepository creates a new Redis-backed character repository
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

// key generates the Redis key for a character
func (r *redisRepo) key(id string) string {
	return fmt.Sprintf("character:%s", id)
}

// ownerCharactersKey generates the Redis key for an owner's character list
func (r *redisRepo) ownerCharactersKey(ownerID string) string {
	return fmt.Sprintf("owner:%s:characters", ownerID)
}

// chronicleCharactersKey generates the Redis key for a chronicle's character list
func (r *redisRepo) chronicleCharactersKey(chronicleID string) string {
	return fmt.Sprintf("chronicle:%s:characters", chronicleID)
}

// Create stores a new character
func (r *redisRepo) Create(ctx context.Context, char *character.Character) error {
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

	exists, err := r.client.Exists(ctx, r.key(char.ID)).Result()
	if err != nil {
		return fmt.Errorf("failed to check character existence: %w", err)
	}
	if exists > 0 {
		return apperr.AlreadyExistsf("character with ID '%s' already exists", char.ID).
			WithMeta("character_id", char.ID)
	}

	data := toCharacterData(char)
	data.CreatedAt = time.Now().UTC()
	data.UpdatedAt = data.CreatedAt

	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal character: %w", err)
	}

	// Store data and index sets atomically
	pipe := r.client.Pipeline()
	pipe.Set(ctx, r.key(char.ID), string(jsonData), 0)
	pipe.SAdd(ctx, r.ownerCharactersKey(char.OwnerID), char.ID)
	pipe.SAdd(ctx, r.chronicleCharactersKey(char.ChronicleID), char.ID)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to create character: %w", err)
	}

	return nil
}

// Get retrieves a character by ID
func (r *redisRepo) Get(ctx context.Context, id string) (*character.Character, error) {
	if id == "" {
		return nil, apperr.InvalidArgument("character ID is required")
	}

	jsonData, err := r.client.Get(ctx, r.key(id)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, apperr.NotFoundf("character with ID '%s' not found", id).
			WithMeta("character_id", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get character: %w", err)
	}

	var data CharacterData
	if unmarshalErr := json.Unmarshal([]byte(jsonData), &data); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to unmarshal character: %w", unmarshalErr)
	}

	return fromCharacterData(&data), nil
}

// GetByOwner retrieves all characters for a specific owner
func (r *redisRepo) GetByOwner(ctx context.Context, ownerID string) ([]*character.Character, error) {
	if ownerID == "" {
		return nil, apperr.InvalidArgument("owner ID is required")
	}
	return r.getBySet(ctx, r.ownerCharactersKey(ownerID))
}

// GetByChronicle retrieves all characters in a chronicle
func (r *redisRepo) GetByChronicle(ctx context.Context, chronicleID string) ([]*character.Character, error) {
	if chronicleID == "" {
		return nil, apperr.InvalidArgument("chronicle ID is required")
	}
	return r.getBySet(ctx, r.chronicleCharactersKey(chronicleID))
}

func (r *redisRepo) getBySet(ctx context.Context, setKey string) ([]*character.Character, error) {
	ids, err := r.client.SMembers(ctx, setKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list character IDs: %w", err)
	}

	chars := make([]*character.Character, 0, len(ids))
	for _, id := range ids {
		char, err := r.Get(ctx, id)
		if err != nil {
			// Skip characters that can't be loaded
			continue
		}
		chars = append(chars, char)
	}

	return chars, nil
}

// Update persists an existing character
func (r *redisRepo) Update(ctx context.Context, char *character.Character) error {
	if char == nil {
		return apperr.InvalidArgument("character cannot be nil")
	}
	if char.ID == "" {
		return apperr.InvalidArgument("character ID is required")
	}

	existingData, err := r.client.Get(ctx, r.key(char.ID)).Result()
	if errors.Is(err, redis.Nil) {
		return apperr.NotFoundf("character with ID '%s' not found", char.ID).
			WithMeta("character_id", char.ID)
	}
	if err != nil {
		return fmt.Errorf("failed to get existing character: %w", err)
	}

	var existing CharacterData
	if unmarshalErr := json.Unmarshal([]byte(existingData), &existing); unmarshalErr != nil {
		return fmt.Errorf("failed to unmarshal existing character: %w", unmarshalErr)
	}

	data := toCharacterData(char)
	data.CreatedAt = existing.CreatedAt // Preserve creation time
	data.UpdatedAt = time.Now().UTC()

	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal character: %w", err)
	}

	if err := r.client.Set(ctx, r.key(char.ID), string(jsonData), 0).Err(); err != nil {
		return fmt.Errorf("failed to update character: %w", err)
	}

	return nil
}

// UpdateAtomic re-reads the character under WATCH, applies fn and writes
// the result in a transaction. A concurrent write to the same key aborts
// the transaction and the whole read-modify-write retries, so two spends
// can never both deduct from the same stale balance.
func (r *redisRepo) UpdateAtomic(ctx context.Context, id string, fn UpdateFunc) (*character.Character, error) {
	if id == "" {
		return nil, apperr.InvalidArgument("character ID is required")
	}
	if fn == nil {
		return nil, apperr.InvalidArgument("update function is required")
	}

	key := r.key(id)
	var updated *character.Character

	txf := func(tx *redis.Tx) error {
		jsonData, err := tx.Get(ctx, key).Result()
		if errors.Is(err, redis.Nil) {
			return apperr.NotFoundf("character with ID '%s' not found", id).
				WithMeta("character_id", id)
		}
		if err != nil {
			return fmt.Errorf("failed to get character: %w", err)
		}

		var data CharacterData
		if unmarshalErr := json.Unmarshal([]byte(jsonData), &data); unmarshalErr != nil {
			return fmt.Errorf("failed to unmarshal character: %w", unmarshalErr)
		}

		char := fromCharacterData(&data)
		if fnErr := fn(char); fnErr != nil {
			return fnErr
		}

		newData := toCharacterData(char)
		newData.CreatedAt = data.CreatedAt
		newData.UpdatedAt = time.Now().UTC()

		newJSON, err := json.Marshal(newData)
		if err != nil {
			return fmt.Errorf("failed to marshal character: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, string(newJSON), 0)
			return nil
		})
		if err != nil {
			return err
		}

		updated = char
		return nil
	}

	for i := 0; i < maxUpdateRetries; i++ {
		err := r.client.Watch(ctx, txf, key)
		if err == nil {
			return updated, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			// Lost the race, reload and try again
			continue
		}
		return nil, err
	}

	return nil, apperr.Newf(apperr.CodeUnavailable, "character '%s' is too contended, giving up after %d attempts", id, maxUpdateRetries)
}

// toCharacterData converts an entity to the data struct for storage
func toCharacterData(char *character.Character) *CharacterData {
	return &CharacterData{
		ID:          char.ID,
		OwnerID:     char.OwnerID,
		ChronicleID: char.ChronicleID,
		Name:        char.Name,
		Archetype:   char.Archetype,
		Status:      char.Status,
		XP:          char.XP,
		Freebies:    char.Freebies,
		Traits:      char.Traits,
		CreatedAt:   char.CreatedAt,
		UpdatedAt:   char.UpdatedAt,
	}
}

// fromCharacterData converts a data struct to an entity
func fromCharacterData(data *CharacterData) *character.Character {
	return &character.Character{
		ID:          data.ID,
		OwnerID:     data.OwnerID,
		ChronicleID: data.ChronicleID,
		Name:        data.Name,
		Archetype:   data.Archetype,
		Status:      data.Status,
		XP:          data.XP,
		Freebies:    data.Freebies,
		Traits:      data.Traits,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}
