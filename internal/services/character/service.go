package character

import (
	"context"
	"strings"
	"time"

	"github.com/KirkDiggler/chronicle-bot-discord/internal/domain/character"
	"github.com/KirkDiggler/chronicle-bot-discord/internal/domain/shared"
	apperr "github.com/KirkDiggler/chronicle-bot-discord/internal/errors"
	characterRepo "github.com/KirkDiggler/chronicle-bot-discord/internal/repositories/characters"
	chronicleRepo "github.com/KirkDiggler/chronicle-bot-discord/internal/repositories/chronicles"
	"github.com/KirkDiggler/chronicle-bot-discord/internal/uuid"
)

// Service defines the character lifecycle interface
type Service interface {
	// CreateCharacter starts a new unfinished character for a player
	CreateCharacter(ctx context.Context, input *CreateCharacterInput) (*character.Character, error)

	// GetCharacter retrieves a character by ID
	GetCharacter(ctx context.Context, characterID string) (*character.Character, error)

	// ListCharacters returns a player's characters
	ListCharacters(ctx context.Context, ownerID string) ([]*character.Character, error)

	// ListByChronicle returns all characters in a chronicle
	ListByChronicle(ctx context.Context, chronicleID string) ([]*character.Character, error)

	// AssignTrait sets a trait rating during creation. Only the owner may
	// assign, and only while the character is unfinished.
	AssignTrait(ctx context.Context, input *AssignTraitInput) (*character.Character, error)

	// GrantExperience awards experience points, storyteller only
	GrantExperience(ctx context.Context, input *GrantInput) (*character.Character, error)

	// GrantFreebies awards freebie points, storyteller only
	GrantFreebies(ctx context.Context, input *GrantInput) (*character.Character, error)

	// Submit sends an unfinished character for storyteller review
	Submit(ctx context.Context, characterID, userID string) (*character.Character, error)

	// ApproveCharacter moves a submitted character into active play
	ApproveCharacter(ctx context.Context, characterID, approverID string) (*character.Character, error)

	// Retire takes a character out of play
	Retire(ctx context.Context, characterID, userID string) (*character.Character, error)

	// MarkDeceased records an in-game death, storyteller only
	MarkDeceased(ctx context.Context, characterID, approverID string) (*character.Character, error)
}

// CreateCharacterInput holds the fields for a new character
type CreateCharacterInput struct {
	OwnerID     string
	ChronicleID string
	Name        string
	Archetype   shared.Archetype
	// StartingFreebies seeds the freebie balance; zero is valid
	StartingFreebies int
}

// AssignTraitInput sets one trait during creation
type AssignTraitInput struct {
	CharacterID string
	UserID      string
	TraitName   string
	Rating      int
}

// GrantInput awards points to a character
type GrantInput struct {
	CharacterID string
	GranterID   string
	Amount      int
	Note        string
}

// service implements the Service interface
type service struct {
	characterRepo characterRepo.Repository
	chronicleRepo chronicleRepo.Repository
	uuidGenerator uuid.Generator
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	CharacterRepository characterRepo.Repository // Required
	ChronicleRepository chronicleRepo.Repository // Required
	UUIDGenerator       uuid.Generator           // Optional
}

// NewService creates a new character service
func NewService(cfg *ServiceConfig) Service {
	if cfg.CharacterRepository == nil {
		panic("character repository is required")
	}
	if cfg.ChronicleRepository == nil {
		panic("chronicle repository is required")
	}

	gen := cfg.UUIDGenerator
	if gen == nil {
		gen = uuid.NewGoogleUUIDGenerator()
	}

	return &service{
		characterRepo: cfg.CharacterRepository,
		chronicleRepo: cfg.ChronicleRepository,
		uuidGenerator: gen,
	}
}

// CreateCharacter starts a new unfinished character
func (s *service) CreateCharacter(ctx context.Context, input *CreateCharacterInput) (*character.Character, error) {
	if err := validateCreateInput(input); err != nil {
		return nil, err
	}

	chron, err := s.chronicleRepo.Get(ctx, input.ChronicleID)
	if err != nil {
		return nil, apperr.Wrapf(err, "failed to get chronicle '%s'", input.ChronicleID).
			WithMeta("chronicle_id", input.ChronicleID)
	}
	if !chron.HasPlayer(input.OwnerID) && !chron.IsStoryteller(input.OwnerID) {
		return nil, apperr.PermissionDeniedf("user '%s' has not joined chronicle '%s'", input.OwnerID, chron.Name)
	}

	char := &character.Character{
		ID:          s.uuidGenerator.New(),
		OwnerID:     input.OwnerID,
		ChronicleID: input.ChronicleID,
		Name:        strings.TrimSpace(input.Name),
		Archetype:   input.Archetype,
		Status:      shared.CharacterStatusUnfinished,
		Freebies:    input.StartingFreebies,
		Traits:      make(map[string]int),
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}

	if err := s.characterRepo.Create(ctx, char); err != nil {
		return nil, apperr.Wrap(err, "failed to create character").
			WithMeta("owner_id", input.OwnerID)
	}

	return char, nil
}

// GetCharacter retrieves a character by ID
func (s *service) GetCharacter(ctx context.Context, characterID string) (*character.Character, error) {
	if strings.TrimSpace(characterID) == "" {
		return nil, apperr.InvalidArgument("character ID is required")
	}
	return s.characterRepo.Get(ctx, characterID)
}

// ListCharacters returns a player's characters
func (s *service) ListCharacters(ctx context.Context, ownerID string) ([]*character.Character, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, apperr.InvalidArgument("owner ID is required")
	}
	return s.characterRepo.GetByOwner(ctx, ownerID)
}

// ListByChronicle returns all characters in a chronicle
func (s *service) ListByChronicle(ctx context.Context, chronicleID string) ([]*character.Character, error) {
	if strings.TrimSpace(chronicleID) == "" {
		return nil, apperr.InvalidArgument("chronicle ID is required")
	}
	return s.characterRepo.GetByChronicle(ctx, chronicleID)
}

// AssignTrait sets a trait rating while the character is still unfinished
func (s *service) AssignTrait(ctx context.Context, input *AssignTraitInput) (*character.Character, error) {
	if input == nil {
		return nil, apperr.InvalidArgument("assign trait input cannot be nil")
	}
	if strings.TrimSpace(input.CharacterID) == "" {
		return nil, apperr.InvalidArgument("character ID is required")
	}
	if strings.TrimSpace(input.TraitName) == "" {
		return nil, apperr.InvalidArgument("trait name is required")
	}
	if input.Rating < 0 {
		return nil, apperr.InvalidArgument("trait rating cannot be negative")
	}

	return s.characterRepo.UpdateAtomic(ctx, input.CharacterID, func(char *character.Character) error {
		if char.OwnerID != input.UserID {
			return apperr.PermissionDeniedf("user '%s' does not own character '%s'", input.UserID, char.Name)
		}
		if char.Status != shared.CharacterStatusUnfinished {
			return apperr.Conflictf("character '%s' is %s; traits are assigned only during creation", char.Name, char.Status)
		}
		char.SetTrait(strings.TrimSpace(input.TraitName), input.Rating)
		return nil
	})
}

// GrantExperience awards experience points
func (s *service) GrantExperience(ctx context.Context, input *GrantInput) (*character.Character, error) {
	return s.grant(ctx, input, shared.PoolExperience)
}

// GrantFreebies awards freebie points
func (s *service) GrantFreebies(ctx context.Context, input *GrantInput) (*character.Character, error) {
	return s.grant(ctx, input, shared.PoolFreebies)
}

func (s *service) grant(ctx context.Context, input *GrantInput, pool shared.PointPool) (*character.Character, error) {
	if input == nil {
		return nil, apperr.InvalidArgument("grant input cannot be nil")
	}
	if strings.TrimSpace(input.CharacterID) == "" {
		return nil, apperr.InvalidArgument("character ID is required")
	}
	if input.Amount <= 0 {
		return nil, apperr.InvalidArgument("grant amount must be positive")
	}

	return s.characterRepo.UpdateAtomic(ctx, input.CharacterID, func(char *character.Character) error {
		if err := s.requireStoryteller(ctx, char.ChronicleID, input.GranterID); err != nil {
			return err
		}
		if char.Status.IsTerminal() {
			return apperr.Conflictf("character '%s' is %s and cannot receive points", char.Name, char.Status)
		}
		char.Refund(pool, input.Amount)
		return nil
	})
}

// Submit sends an unfinished character for review
func (s *service) Submit(ctx context.Context, characterID, userID string) (*character.Character, error) {
	if strings.TrimSpace(characterID) == "" {
		return nil, apperr.InvalidArgument("character ID is required")
	}

	return s.characterRepo.UpdateAtomic(ctx, characterID, func(char *character.Character) error {
		if char.OwnerID != userID {
			return apperr.PermissionDeniedf("user '%s' does not own character '%s'", userID, char.Name)
		}
		if err := validateForSubmission(char); err != nil {
			return err
		}
		return char.Submit()
	})
}

// ApproveCharacter moves a submitted character into active play
func (s *service) ApproveCharacter(ctx context.Context, characterID, approverID string) (*character.Character, error) {
	if strings.TrimSpace(characterID) == "" {
		return nil, apperr.InvalidArgument("character ID is required")
	}

	return s.characterRepo.UpdateAtomic(ctx, characterID, func(char *character.Character) error {
		if err := s.requireStoryteller(ctx, char.ChronicleID, approverID); err != nil {
			return err
		}
		return char.Approve()
	})
}

// Retire takes a character out of play. The owner or the storyteller may
// retire.
func (s *service) Retire(ctx context.Context, characterID, userID string) (*character.Character, error) {
	if strings.TrimSpace(characterID) == "" {
		return nil, apperr.InvalidArgument("character ID is required")
	}

	return s.characterRepo.UpdateAtomic(ctx, characterID, func(char *character.Character) error {
		if char.OwnerID != userID {
			if err := s.requireStoryteller(ctx, char.ChronicleID, userID); err != nil {
				return err
			}
		}
		return char.Retire()
	})
}

// MarkDeceased records an in-game death
func (s *service) MarkDeceased(ctx context.Context, characterID, approverID string) (*character.Character, error) {
	if strings.TrimSpace(characterID) == "" {
		return nil, apperr.InvalidArgument("character ID is required")
	}

	return s.characterRepo.UpdateAtomic(ctx, characterID, func(char *character.Character) error {
		if err := s.requireStoryteller(ctx, char.ChronicleID, approverID); err != nil {
			return err
		}
		return char.MarkDeceased()
	})
}

func (s *service) requireStoryteller(ctx context.Context, chronicleID, userID string) error {
	if strings.TrimSpace(userID) == "" {
		return apperr.InvalidArgument("user ID is required")
	}

	chron, err := s.chronicleRepo.Get(ctx, chronicleID)
	if err != nil {
		return apperr.Wrapf(err, "failed to get chronicle '%s'", chronicleID).
			WithMeta("chronicle_id", chronicleID)
	}
	if !chron.IsStoryteller(userID) {
		return apperr.PermissionDeniedf("only the storyteller of '%s' may do that", chron.Name)
	}
	return nil
}
