package advancements

import (
	"context"
	"sync"
	"time"

	"github.com/KirkDiggler/chronicle-bot-discord/internal/domain/advancement"
	apperr "github.com/KirkDiggler/chronicle-bot-discord/internal/errors"
	"github.com/KirkDiggler/chronicle-bot-discord/internal/uuid"
)

// inMemoryRepo implements the Repository interface with maps, for local
// development and tests
type inMemoryRepo struct {
	mu            sync.RWMutex
	spendRecords  map[string]*advancement.SpendRecord
	spendOrder    map[string][]string // characterID -> record IDs, insertion order
	requests      map[string]*advancement.FreebieSpendRequest
	requestOrder  map[string][]string // characterID -> request IDs, insertion order
	uuidGenerator uuid.Generator
}

// NewInMemoryRepository creates a new in-memory advancement repository
func NewInMemoryRepository() Repository {
	return &inMemoryRepo{
		spendRecords:  make(map[string]*advancement.SpendRecord),
		spendOrder:    make(map[string][]string),
		requests:      make(map[string]*advancement.FreebieSpendRequest),
		requestOrder:  make(map[string][]string),
		uuidGenerator: uuid.NewGoogleUUIDGenerator(),
	}
}

func cloneRecord(record *advancement.SpendRecord) *advancement.SpendRecord {
	copied := *record
	return &copied
}

func cloneRequest(request *advancement.FreebieSpendRequest) *advancement.FreebieSpendRequest {
	copied := *request
	if request.ResolvedAt != nil {
		resolved := *request.ResolvedAt
		copied.ResolvedAt = &resolved
	}
	return &copied
}

// CreateSpendRecord appends an experience spend to the audit log
func (r *inMemoryRepo) CreateSpendRecord(ctx context.Context, record *advancement.SpendRecord) error {
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

	r.mu.Lock()
	defer r.mu.Unlock()

	r.spendRecords[record.ID] = cloneRecord(record)
	r.spendOrder[record.CharacterID] = append(r.spendOrder[record.CharacterID], record.ID)

	return nil
}

// ListSpendRecords returns a character's spend history, oldest first
func (r *inMemoryRepo) ListSpendRecords(ctx context.Context, characterID string) ([]*advancement.SpendRecord, error) {
	if characterID == "" {
		return nil, apperr.InvalidArgument("character ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.spendOrder[characterID]
	records := make([]*advancement.SpendRecord, 0, len(ids))
	for _, id := range ids {
		if record, ok := r.spendRecords[id]; ok {
			records = append(records, cloneRecord(record))
		}
	}

	return records, nil
}

// CreateFreebieRequest stores a new pending freebie spend request
func (r *inMemoryRepo) CreateFreebieRequest(ctx context.Context, request *advancement.FreebieSpendRequest) error {
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

	r.mu.Lock()
	defer r.mu.Unlock()

	r.requests[request.ID] = cloneRequest(request)
	r.requestOrder[request.CharacterID] = append(r.requestOrder[request.CharacterID], request.ID)

	return nil
}

// GetFreebieRequest retrieves a freebie request by ID
func (r *inMemoryRepo) GetFreebieRequest(ctx context.Context, id string) (*advancement.FreebieSpendRequest, error) {
	if id == "" {
		return nil, apperr.InvalidArgument("freebie request ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	request, ok := r.requests[id]
	if !ok {
		return nil, apperr.NotFoundf("freebie request with ID '%s' not found", id)
	}

	return cloneRequest(request), nil
}

// UpdateFreebieRequest persists a status change on a request
func (r *inMemoryRepo) UpdateFreebieRequest(ctx context.Context, request *advancement.FreebieSpendRequest) error {
	if request == nil {
		return apperr.InvalidArgument("freebie request cannot be nil")
	}
	if request.ID == "" {
		return apperr.InvalidArgument("freebie request ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.requests[request.ID]; !ok {
		return apperr.NotFoundf("freebie request with ID '%s' not found", request.ID)
	}

	r.requests[request.ID] = cloneRequest(request)

	return nil
}

// ListFreebieRequests returns all freebie requests for a character, oldest first
func (r *inMemoryRepo) ListFreebieRequests(ctx context.Context, characterID string) ([]*advancement.FreebieSpendRequest, error) {
	if characterID == "" {
		return nil, apperr.InvalidArgument("character ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.requestOrder[characterID]
	requests := make([]*advancement.FreebieSpendRequest, 0, len(ids))
	for _, id := range ids {
		if request, ok := r.requests[id]; ok {
			requests = append(requests, cloneRequest(request))
		}
	}

	return requests, nil
}

// ListPendingByChronicle returns the pending requests in a chronicle
func (r *inMemoryRepo) ListPendingByChronicle(ctx context.Context, chronicleID string) ([]*advancement.FreebieSpendRequest, error) {
	if chronicleID == "" {
		return nil, apperr.InvalidArgument("chronicle ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var requests []*advancement.FreebieSpendRequest
	for _, request := range r.requests {
		if request.ChronicleID == chronicleID && request.IsPending() {
			requests = append(requests, cloneRequest(request))
		}
	}

	return requests, nil
}
