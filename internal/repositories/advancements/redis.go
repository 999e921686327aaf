package advancements

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/chronicle-bot-discord/internal/domain/advancement"
	apperr "github.com/KirkDiggler/chronicle-bot-discord/internal/errors"
	"github.com/KirkDiggler/chronicle-bot-discord/internal/uuid"
)

// redisRepo implements the Repository interface using Redis. Spend records
// and freebie requests are JSON blobs; per-character lists keep insertion
// order and a per-chronicle set tracks pending requests for storytellers.
type redisRepo struct {
	client        redis.UniversalClient
	uuidGenerator uuid.Generator
}

// RedisRepoConfig holds configuration for the Redis repository
type RedisRepoConfig struct {
	Client        redis.UniversalClient
	UUIDGenerator uuid.Generator
}

// NewRedisRepository creates a new Redis-backed advancement repository
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

func (r *redisRepo) spendRecordKey(id string) string {
	return fmt.Sprintf("spendrecord:%s", id)
}

func (r *redisRepo) characterSpendsKey(characterID string) string {
	return fmt.Sprintf("character:%s:spends", characterID)
}

func (r *redisRepo) freebieRequestKey(id string) string {
	return fmt.Sprintf("freebierequest:%s", id)
}

func (r *redisRepo) characterFreebiesKey(characterID string) string {
	return fmt.Sprintf("character:%s:freebies", characterID)
}

func (r *redisRepo) chroniclePendingKey(chronicleID string) string {
	return fmt.Sprintf("chronicle:%s:freebies:pending", chronicleID)
}

// CreateSpendRecord appends an experience spend to the audit log
func (r *redisRepo) CreateSpendRecord(ctx context.Context, record *advancement.SpendRecord) error {
	if record == nil {
		return apperr.InvalidArgument("spend record cannot be nil")
	}
	if record.CharacterID == "" {
		return apperr.InvalidArgument("spend record character ID is required")
	}
	if record.ID == "" {
		record.ID = r.uuidGenerator.New()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	jsonData, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal spend record: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, r.spendRecordKey(record.ID), string(jsonData), 0)
	pipe.RPush(ctx, r.characterSpendsKey(record.CharacterID), record.ID)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to create spend record: %w", err)
	}

	return nil
}

// ListSpendRecords returns a character's spend history, oldest first
func (r *redisRepo) ListSpendRecords(ctx context.Context, characterID string) ([]*advancement.SpendRecord, error) {
	if characterID == "" {
		return nil, apperr.InvalidArgument("character ID is required")
	}

	ids, err := r.client.LRange(ctx, r.characterSpendsKey(characterID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list spend record IDs: %w", err)
	}

	records := make([]*advancement.SpendRecord, 0, len(ids))
	for _, id := range ids {
		jsonData, err := r.client.Get(ctx, r.spendRecordKey(id)).Result()
		if err != nil {
			continue
		}
		var record advancement.SpendRecord
		if unmarshalErr := json.Unmarshal([]byte(jsonData), &record); unmarshalErr != nil {
			continue
		}
		records = append(records, &record)
	}

	return records, nil
}

// CreateFreebieRequest stores a new pending freebie spend request
func (r *redisRepo) CreateFreebieRequest(ctx context.Context, request *advancement.FreebieSpendRequest) error {
	if request == nil {
		return apperr.InvalidArgument("freebie request cannot be nil")
	}
	if request.CharacterID == "" {
		return apperr.InvalidArgument("freebie request character ID is required")
	}
	if request.ID == "" {
		request.ID = r.uuidGenerator.New()
	}
	if request.Status == "" {
		request.Status = advancement.ApprovalStatusPending
	}
	if request.CreatedAt.IsZero() {
		request.CreatedAt = time.Now().UTC()
	}

	jsonData, err := json.Marshal(request)
	if err != nil {
		return fmt.Errorf("failed to marshal freebie request: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, r.freebieRequestKey(request.ID), string(jsonData), 0)
	pipe.RPush(ctx, r.characterFreebiesKey(request.CharacterID), request.ID)
	if request.Status == advancement.ApprovalStatusPending && request.ChronicleID != "" {
		pipe.SAdd(ctx, r.chroniclePendingKey(request.ChronicleID), request.ID)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to create freebie request: %w", err)
	}

	return nil
}

// GetFreebieRequest retrieves a freebie request by ID
func (r *redisRepo) GetFreebieRequest(ctx context.Context, id string) (*advancement.FreebieSpendRequest, error) {
	if id == "" {
		return nil, apperr.InvalidArgument("freebie request ID is required")
	}

	jsonData, err := r.client.Get(ctx, r.freebieRequestKey(id)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, apperr.NotFoundf("freebie request with ID '%s' not found", id).
			WithMeta("request_id", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get freebie request: %w", err)
	}

	var request advancement.FreebieSpendRequest
	if unmarshalErr := json.Unmarshal([]byte(jsonData), &request); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to unmarshal freebie request: %w", unmarshalErr)
	}

	return &request, nil
}

// UpdateFreebieRequest persists a status change on a request
func (r *redisRepo) UpdateFreebieRequest(ctx context.Context, request *advancement.FreebieSpendRequest) error {
	if request == nil {
		return apperr.InvalidArgument("freebie request cannot be nil")
	}
	if request.ID == "" {
		return apperr.InvalidArgument("freebie request ID is required")
	}

	exists, err := r.client.Exists(ctx, r.freebieRequestKey(request.ID)).Result()
	if err != nil {
		return fmt.Errorf("failed to check freebie request existence: %w", err)
	}
	if exists == 0 {
		return apperr.NotFoundf("freebie request with ID '%s' not found", request.ID)
	}

	jsonData, err := json.Marshal(request)
	if err != nil {
		return fmt.Errorf("failed to marshal freebie request: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, r.freebieRequestKey(request.ID), string(jsonData), 0)
	if request.Status != advancement.ApprovalStatusPending && request.ChronicleID != "" {
		pipe.SRem(ctx, r.chroniclePendingKey(request.ChronicleID), request.ID)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to update freebie request: %w", err)
	}

	return nil
}

// ListFreebieRequests returns all freebie requests for a character, oldest first
func (r *redisRepo) ListFreebieRequests(ctx context.Context, characterID string) ([]*advancement.FreebieSpendRequest, error) {
	if characterID == "" {
		return nil, apperr.InvalidArgument("character ID is required")
	}

	ids, err := r.client.LRange(ctx, r.characterFreebiesKey(characterID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list freebie request IDs: %w", err)
	}

	return r.getRequests(ctx, ids)
}

// ListPendingByChronicle returns the pending requests in a chronicle
func (r *redisRepo) ListPendingByChronicle(ctx context.Context, chronicleID string) ([]*advancement.FreebieSpendRequest, error) {
	if chronicleID == "" {
		return nil, apperr.InvalidArgument("chronicle ID is required")
	}

	ids, err := r.client.SMembers(ctx, r.chroniclePendingKey(chronicleID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list pending freebie request IDs: %w", err)
	}

	return r.getRequests(ctx, ids)
}

func (r *redisRepo) getRequests(ctx context.Context, ids []string) ([]*advancement.FreebieSpendRequest, error) {
	requests := make([]*advancement.FreebieSpendRequest, 0, len(ids))
	for _, id := range ids {
		request, err := r.GetFreebieRequest(ctx, id)
		if err != nil {
			continue
		}
		requests = append(requests, request)
	}
	return requests, nil
}
