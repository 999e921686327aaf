package advancement

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/KirkDiggler/chronicle-bot-discord/internal/domain/advancement"
	"github.com/KirkDiggler/chronicle-bot-discord/internal/domain/character"
	"github.com/KirkDiggler/chronicle-bot-discord/internal/domain/rulebook"
	"github.com/KirkDiggler/chronicle-bot-discord/internal/domain/shared"
	apperr "github.com/KirkDiggler/chronicle-bot-discord/internal/errors"
	advancementRepo "github.com/KirkDiggler/chronicle-bot-discord/internal/repositories/advancements"
	characterRepo "github.com/KirkDiggler/chronicle-bot-discord/internal/repositories/characters"
	"github.com/KirkDiggler/chronicle-bot-discord/internal/uuid"
)

// Service defines the advancement service interface. It is the only path
// that mutates trait ratings on characters in active play.
type Service interface {
	// ListOptions computes the categories and examples the character can
	// spend on right now, for the given point pool
	ListOptions(ctx context.Context, characterID string, pool shared.PointPool) (*ListOptionsOutput, error)

	// Spend validates and executes one trait increase against a pool.
	// Experience spends are final and logged; freebie spends apply
	// optimistically and create a pending request for review.
	Spend(ctx context.Context, input *SpendInput) (*SpendOutput, error)

	// Approve finalizes a pending freebie request. Ratings are untouched.
	Approve(ctx context.Context, input *ReviewInput) (*ReviewOutput, error)

	// Deny rejects a pending freebie request, reversing the trait step
	// and refunding the cost exactly.
	Deny(ctx context.Context, input *ReviewInput) (*ReviewOutput, error)

	// History returns a character's experience spend log, oldest first
	History(ctx context.Context, characterID string) ([]*advancement.SpendRecord, error)

	// PendingRequests returns the freebie requests awaiting review in a
	// chronicle
	PendingRequests(ctx context.Context, chronicleID string) ([]*advancement.FreebieSpendRequest, error)
}

// SpendInput describes one requested trait increase
type SpendInput struct {
	CharacterID string
	Pool        shared.PointPool
	Category    rulebook.Category
	// Example names the trait instance within the category. Optional for
	// singleton categories (Willpower, Arete, Image); required otherwise.
	Example string
	Note    string
}

// SpendOutput reports the applied spend
type SpendOutput struct {
	Character *character.Character
	TraitName string
	NewRating int
	Cost      int
	// Record is set for experience spends
	Record *advancement.SpendRecord
	// Request is set for freebie spends, always pending
	Request *advancement.FreebieSpendRequest
}

// ListOptionsOutput carries the offerable categories for a pool
type ListOptionsOutput struct {
	Pool   shared.PointPool
	Offers []rulebook.CategoryOffer
}

// ReviewInput identifies a freebie request and the storyteller acting on it
type ReviewInput struct {
	RequestID  string
	ApproverID string
}

// ReviewOutput reports the resolved request and, for denials, the reversed
// character state
type ReviewOutput struct {
	Request   *advancement.FreebieSpendRequest
	Character *character.Character
}

// service implements the Service interface
type service struct {
	characterRepo   characterRepo.Repository
	advancementRepo advancementRepo.Repository
	uuidGenerator   uuid.Generator
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	CharacterRepository   characterRepo.Repository   // Required
	AdvancementRepository advancementRepo.Repository // Required
	UUIDGenerator         uuid.Generator             // Optional
}

// NewService creates a new advancement service
func NewService(cfg *ServiceConfig) Service {
	if cfg.CharacterRepository == nil {
		panic("character repository is required")
	}
	if cfg.AdvancementRepository == nil {
		panic("advancement repository is required")
	}

	gen := cfg.UUIDGenerator
	if gen == nil {
		gen = uuid.NewGoogleUUIDGenerator()
	}

	return &service{
		characterRepo:   cfg.CharacterRepository,
		advancementRepo: cfg.AdvancementRepository,
		uuidGenerator:   gen,
	}
}

// ListOptions computes the offerable categories for a character and pool
func (s *service) ListOptions(ctx context.Context, characterID string, pool shared.PointPool) (*ListOptionsOutput, error) {
	if strings.TrimSpace(characterID) == "" {
		return nil, apperr.InvalidArgument("character ID is required")
	}
	if !pool.IsValid() {
		return nil, apperr.InvalidArgumentf("unknown point pool '%s'", pool)
	}

	char, err := s.characterRepo.Get(ctx, characterID)
	if err != nil {
		return nil, apperr.Wrapf(err, "failed to get character '%s'", characterID).
			WithMeta("character_id", characterID)
	}

	return &ListOptionsOutput{
		Pool:   pool,
		Offers: rulebook.Available(char, pool),
	}, nil
}

// Spend validates and executes one trait increase. The whole
// read-validate-mutate sequence runs inside the repository's atomic update,
// so a concurrent spend on the same character sees the committed result,
// never the stale balance.
func (s *service) Spend(ctx context.Context, input *SpendInput) (*SpendOutput, error) {
	if input == nil {
		return nil, apperr.InvalidArgument("spend input cannot be nil")
	}
	if strings.TrimSpace(input.CharacterID) == "" {
		return nil, apperr.InvalidArgument("character ID is required")
	}
	if !input.Pool.IsValid() {
		return nil, apperr.InvalidArgumentf("unknown point pool '%s'", input.Pool)
	}

	var (
		trait     string
		newRating int
		cost      int
		step      int
	)

	updated, err := s.characterRepo.UpdateAtomic(ctx, input.CharacterID, func(char *character.Character) error {
		// Experience flows only to characters in active play. Freebies
		// may also be spent during creation and review.
		if input.Pool == shared.PoolExperience && !char.IsApproved() {
			return apperr.Conflictf("character '%s' is %s and cannot spend experience", char.Name, char.Status)
		}
		if char.Status.IsTerminal() {
			return apperr.Conflictf("character '%s' is %s and cannot spend points", char.Name, char.Status)
		}

		// Category must exist in the cost tables before anything else.
		// A miss here means the client and the rulebook drifted apart.
		if !categoryKnown(char.Archetype, input.Pool, input.Category) {
			log.Printf("advancement: unknown %s category '%s' for archetype '%s' (character %s)",
				poolNoun(input.Pool), input.Category, char.Archetype, char.ID)
			return apperr.Internalf("Unknown %s category", poolNoun(input.Pool)).
				WithMeta("category", string(input.Category)).
				WithMeta("archetype", string(char.Archetype))
		}

		example, err := resolveExample(char, input.Category, input.Example)
		if err != nil {
			return err
		}

		// Re-check eligibility at spend time; the balance or ratings
		// may have moved since the options were rendered.
		if err := rulebook.CheckExample(char, input.Pool, input.Category, example); err != nil {
			return err
		}

		trait = rulebook.ResolveTrait(input.Category, example)
		step = input.Category.Step()

		spendCost, err := rulebook.Cost(char.Archetype, input.Pool, input.Category, char.TraitRating(trait))
		if err != nil {
			return err
		}
		cost = spendCost

		if err := char.Deduct(input.Pool, cost); err != nil {
			return err
		}
		if step > 0 {
			newRating = char.IncrementTrait(trait, step)
		} else {
			newRating = char.DecrementTrait(trait, -step)
		}
		if input.Category == rulebook.CategoryRote {
			// A rote consumes a rote point alongside the freebie cost
			char.DecrementTrait(rulebook.TraitRotePoints, 1)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	output := &SpendOutput{
		Character: updated,
		TraitName: trait,
		NewRating: newRating,
		Cost:      cost,
	}

	if input.Pool == shared.PoolExperience {
		record := &advancement.SpendRecord{
			ID:          s.uuidGenerator.New(),
			CharacterID: updated.ID,
			Category:    input.Category,
			TraitName:   trait,
			NewRating:   newRating,
			Cost:        cost,
			Note:        input.Note,
			CreatedAt:   time.Now().UTC(),
		}
		if err := s.advancementRepo.CreateSpendRecord(ctx, record); err != nil {
			s.rollbackSpend(ctx, updated.ID, input.Pool, input.Category, trait, step, cost)
			return nil, apperr.Wrap(err, "failed to record experience spend").
				WithMeta("character_id", updated.ID).
				WithMeta("trait", trait)
		}
		output.Record = record
		return output, nil
	}

	request := &advancement.FreebieSpendRequest{
		ID:          s.uuidGenerator.New(),
		CharacterID: updated.ID,
		ChronicleID: updated.ChronicleID,
		Category:    input.Category,
		TraitName:   trait,
		NewRating:   newRating,
		Step:        step,
		Cost:        cost,
		Note:        input.Note,
		Status:      advancement.ApprovalStatusPending,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.advancementRepo.CreateFreebieRequest(ctx, request); err != nil {
		s.rollbackSpend(ctx, updated.ID, input.Pool, input.Category, trait, step, cost)
		return nil, apperr.Wrap(err, "failed to record freebie spend").
			WithMeta("character_id", updated.ID).
			WithMeta("trait", trait)
	}
	output.Request = request

	return output, nil
}

// rollbackSpend undoes an applied spend when the record write fails, so the
// character never keeps an unrecorded increase
func (s *service) rollbackSpend(ctx context.Context, characterID string, pool shared.PointPool, category rulebook.Category, trait string, step, cost int) {
	_, err := s.characterRepo.UpdateAtomic(ctx, characterID, func(char *character.Character) error {
		if step > 0 {
			char.DecrementTrait(trait, step)
		} else {
			char.IncrementTrait(trait, -step)
		}
		if category == rulebook.CategoryRote {
			char.IncrementTrait(rulebook.TraitRotePoints, 1)
		}
		char.Refund(pool, cost)
		return nil
	})
	if err != nil {
		log.Printf("advancement: rollback failed for character %s trait %s: %v", characterID, trait, err)
	}
}

// Approve finalizes a pending freebie request
func (s *service) Approve(ctx context.Context, input *ReviewInput) (*ReviewOutput, error) {
	if err := validateReviewInput(input); err != nil {
		return nil, err
	}

	request, err := s.advancementRepo.GetFreebieRequest(ctx, input.RequestID)
	if err != nil {
		return nil, apperr.Wrapf(err, "failed to get freebie request '%s'", input.RequestID).
			WithMeta("request_id", input.RequestID)
	}

	if err := request.Approve(input.ApproverID, time.Now().UTC()); err != nil {
		return nil, err
	}

	if err := s.advancementRepo.UpdateFreebieRequest(ctx, request); err != nil {
		return nil, apperr.Wrapf(err, "failed to update freebie request '%s'", request.ID).
			WithMeta("request_id", request.ID)
	}

	return &ReviewOutput{Request: request}, nil
}

// Deny rejects a pending freebie request and reverses the spend. The
// request is re-read inside the character's atomic update, so a denial that
// lands after another review has persisted is rejected as a conflict before
// touching the character. The status write itself lands after the reversal;
// reviews come from a chronicle's storyteller, not concurrent writers.
func (s *service) Deny(ctx context.Context, input *ReviewInput) (*ReviewOutput, error) {
	if err := validateReviewInput(input); err != nil {
		return nil, err
	}

	request, err := s.advancementRepo.GetFreebieRequest(ctx, input.RequestID)
	if err != nil {
		return nil, apperr.Wrapf(err, "failed to get freebie request '%s'", input.RequestID).
			WithMeta("request_id", input.RequestID)
	}
	if !request.IsPending() {
		return nil, apperr.Conflictf("freebie request '%s' is already %s", request.ID, request.Status)
	}

	var denied *advancement.FreebieSpendRequest
	updated, err := s.characterRepo.UpdateAtomic(ctx, request.CharacterID, func(char *character.Character) error {
		fresh, err := s.advancementRepo.GetFreebieRequest(ctx, request.ID)
		if err != nil {
			return err
		}
		if err := fresh.Deny(input.ApproverID, time.Now().UTC()); err != nil {
			return err
		}

		// Reverse exactly the step the spend applied; unrelated traits
		// stay untouched.
		if fresh.Step > 0 {
			char.DecrementTrait(fresh.TraitName, fresh.Step)
		} else {
			char.IncrementTrait(fresh.TraitName, -fresh.Step)
		}
		if fresh.Category == rulebook.CategoryRote {
			char.IncrementTrait(rulebook.TraitRotePoints, 1)
		}
		char.Refund(shared.PoolFreebies, fresh.Cost)

		denied = fresh
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.advancementRepo.UpdateFreebieRequest(ctx, denied); err != nil {
		return nil, apperr.Wrapf(err, "failed to update freebie request '%s'", denied.ID).
			WithMeta("request_id", denied.ID)
	}

	return &ReviewOutput{Request: denied, Character: updated}, nil
}

// History returns a character's experience spend log
func (s *service) History(ctx context.Context, characterID string) ([]*advancement.SpendRecord, error) {
	if strings.TrimSpace(characterID) == "" {
		return nil, apperr.InvalidArgument("character ID is required")
	}
	return s.advancementRepo.ListSpendRecords(ctx, characterID)
}

// PendingRequests returns the freebie requests awaiting review in a chronicle
func (s *service) PendingRequests(ctx context.Context, chronicleID string) ([]*advancement.FreebieSpendRequest, error) {
	if strings.TrimSpace(chronicleID) == "" {
		return nil, apperr.InvalidArgument("chronicle ID is required")
	}
	return s.advancementRepo.ListPendingByChronicle(ctx, chronicleID)
}

// resolveExample picks the trait instance a spend targets. Singleton
// categories default to their only trait; everything else requires an
// explicit, valid example.
func resolveExample(char *character.Character, category rulebook.Category, example string) (string, error) {
	example = strings.TrimSpace(example)

	if category.IsSingleton() {
		if example == "" {
			return category.SingletonTrait(), nil
		}
		if example != category.SingletonTrait() {
			return "", apperr.Validationf("%s is not a valid choice for %s", example, category.Display()).
				WithMeta(rulebook.ReasonKey, rulebook.ReasonCategoryNotEligible)
		}
		return example, nil
	}

	if example == "" {
		return "", apperr.InvalidArgumentf("%s requires choosing a trait", category.Display())
	}
	if !rulebook.ValidExample(char, category, example) {
		return "", apperr.Validationf("%s is not a valid choice for %s", example, category.Display()).
			WithMeta(rulebook.ReasonKey, rulebook.ReasonCategoryNotEligible)
	}
	return example, nil
}

func validateReviewInput(input *ReviewInput) error {
	if input == nil {
		return apperr.InvalidArgument("review input cannot be nil")
	}
	if strings.TrimSpace(input.RequestID) == "" {
		return apperr.InvalidArgument("request ID is required")
	}
	if strings.TrimSpace(input.ApproverID) == "" {
		return apperr.InvalidArgument("approver ID is required")
	}
	return nil
}

func categoryKnown(archetype shared.Archetype, pool shared.PointPool, category rulebook.Category) bool {
	for _, known := range rulebook.KnownCategories(archetype, pool) {
		if known == category {
			return true
		}
	}
	return false
}

func poolNoun(pool shared.PointPool) string {
	if pool == shared.PoolFreebies {
		return "freebie"
	}
	return "experience"
}
