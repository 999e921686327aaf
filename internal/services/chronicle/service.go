package chronicle

import (
	"context"
	"strings"
	"time"

	"github.com/KirkDiggler/chronicle-bot-discord/internal/domain/chronicle"
	apperr "github.com/KirkDiggler/chronicle-bot-discord/internal/errors"
	chronicleRepo "github.com/KirkDiggler/chronicle-bot-discord/internal/repositories/chronicles"
	"github.com/KirkDiggler/chronicle-bot-discord/internal/uuid"
)

// Service defines the chronicle management interface
type Service interface {
	// CreateChronicle starts a new chronicle in a guild. The creator
	// becomes its storyteller.
	CreateChronicle(ctx context.Context, input *CreateChronicleInput) (*chronicle.Chronicle, error)

	// GetChronicle retrieves a chronicle by ID
	GetChronicle(ctx context.Context, chronicleID string) (*chronicle.Chronicle, error)

	// GetByGuild retrieves the chronicle bound to a Discord guild
	GetByGuild(ctx context.Context, guildID string) (*chronicle.Chronicle, error)

	// Join adds a player to the guild's chronicle roster
	Join(ctx context.Context, guildID, userID string) (*chronicle.Chronicle, error)

	// IsStoryteller reports whether the user runs the guild's chronicle
	IsStoryteller(ctx context.Context, guildID, userID string) (bool, error)
}

// CreateChronicleInput holds the fields for a new chronicle
type CreateChronicleInput struct {
	GuildID       string
	Name          string
	Setting       string
	StorytellerID string
}

// service implements the Service interface
type service struct {
	chronicleRepo chronicleRepo.Repository
	uuidGenerator uuid.Generator
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	ChronicleRepository chronicleRepo.Repository // Required
	UUIDGenerator       uuid.Generator           // Optional
}

// NewService creates a new chronicle service
func NewService(cfg *ServiceConfig) Service {
	if cfg.ChronicleRepository == nil {
		panic("chronicle repository is required")
	}

	gen := cfg.UUIDGenerator
	if gen == nil {
		gen = uuid.NewGoogleUUIDGenerator()
	}

	return &service{
		chronicleRepo: cfg.ChronicleRepository,
		uuidGenerator: gen,
	}
}

// CreateChronicle starts a new chronicle in a guild
func (s *service) CreateChronicle(ctx context.Context, input *CreateChronicleInput) (*chronicle.Chronicle, error) {
	if input == nil {
		return nil, apperr.InvalidArgument("create chronicle input cannot be nil")
	}
	if strings.TrimSpace(input.GuildID) == "" {
		return nil, apperr.InvalidArgument("guild ID is required")
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, apperr.InvalidArgument("chronicle name is required")
	}
	if strings.TrimSpace(input.StorytellerID) == "" {
		return nil, apperr.InvalidArgument("storyteller ID is required")
	}

	chron := &chronicle.Chronicle{
		ID:            s.uuidGenerator.New(),
		GuildID:       input.GuildID,
		Name:          strings.TrimSpace(input.Name),
		Setting:       strings.TrimSpace(input.Setting),
		StorytellerID: input.StorytellerID,
		CreatedAt:     time.Now().UTC(),
		UpdatedAt:     time.Now().UTC(),
	}

	if err := s.chronicleRepo.Create(ctx, chron); err != nil {
		return nil, apperr.Wrap(err, "failed to create chronicle").
			WithMeta("guild_id", input.GuildID)
	}

	return chron, nil
}

// GetChronicle retrieves a chronicle by ID
func (s *service) GetChronicle(ctx context.Context, chronicleID string) (*chronicle.Chronicle, error) {
	if strings.TrimSpace(chronicleID) == "" {
		return nil, apperr.InvalidArgument("chronicle ID is required")
	}
	return s.chronicleRepo.Get(ctx, chronicleID)
}

// GetByGuild retrieves the chronicle bound to a Discord guild
func (s *service) GetByGuild(ctx context.Context, guildID string) (*chronicle.Chronicle, error) {
	if strings.TrimSpace(guildID) == "" {
		return nil, apperr.InvalidArgument("guild ID is required")
	}
	return s.chronicleRepo.GetByGuild(ctx, guildID)
}

// Join adds a player to the guild's chronicle roster
func (s *service) Join(ctx context.Context, guildID, userID string) (*chronicle.Chronicle, error) {
	if strings.TrimSpace(guildID) == "" {
		return nil, apperr.InvalidArgument("guild ID is required")
	}
	if strings.TrimSpace(userID) == "" {
		return nil, apperr.InvalidArgument("user ID is required")
	}

	chron, err := s.chronicleRepo.GetByGuild(ctx, guildID)
	if err != nil {
		return nil, err
	}
	if chron.HasPlayer(userID) || chron.IsStoryteller(userID) {
		return chron, nil
	}

	chron.AddPlayer(userID)
	if err := s.chronicleRepo.Update(ctx, chron); err != nil {
		return nil, apperr.Wrapf(err, "failed to update chronicle '%s'", chron.ID).
			WithMeta("chronicle_id", chron.ID)
	}

	return chron, nil
}

// IsStoryteller reports whether the user runs the guild's chronicle
func (s *service) IsStoryteller(ctx context.Context, guildID, userID string) (bool, error) {
	chron, err := s.GetByGuild(ctx, guildID)
	if err != nil {
		return false, err
	}
	return chron.IsStoryteller(userID), nil
}
