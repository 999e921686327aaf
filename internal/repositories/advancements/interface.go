package advancements

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks -source=interface.go

import (
	"context"

	"github.com/KirkDiggler/chronicle-bot-discord/internal/domain/advancement"
)

// Repository persists advancement records: the append-only experience spend
// log and the freebie spend requests awaiting storyteller review.
type Repository interface {
	// CreateSpendRecord appends an experience spend to the audit log.
	// Records are never updated or deleted.
	CreateSpendRecord(ctx context.Context, record *advancement.SpendRecord) error

	// ListSpendRecords returns a character's spend history, oldest first
	ListSpendRecords(ctx context.Context, characterID string) ([]*advancement.SpendRecord, error)

	// CreateFreebieRequest stores a new pending freebie spend request
	CreateFreebieRequest(ctx context.Context, request *advancement.FreebieSpendRequest) error

	// GetFreebieRequest retrieves a freebie request by ID
	GetFreebieRequest(ctx context.Context, id string) (*advancement.FreebieSpendRequest, error)

	// UpdateFreebieRequest persists a status change on a request
	UpdateFreebieRequest(ctx context.Context, request *advancement.FreebieSpendRequest) error

	// ListFreebieRequests returns all freebie requests for a character,
	// oldest first
	ListFreebieRequests(ctx context.Context, characterID string) ([]*advancement.FreebieSpendRequest, error)

	// ListPendingByChronicle returns the pending requests a storyteller
	// has waiting in a chronicle
	ListPendingByChronicle(ctx context.Context, chronicleID string) ([]*advancement.FreebieSpendRequest, error)
}
