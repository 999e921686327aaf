package character

import (
	"strings"

	"github.com/KirkDiggler/chronicle-bot-discord/internal/domain/character"
	"github.com/KirkDiggler/chronicle-bot-discord/internal/domain/rulebook"
	apperr "github.com/KirkDiggler/chronicle-bot-discord/internal/errors"
)

func validateCreateInput(input *CreateCharacterInput) error {
	if input == nil {
		return apperr.InvalidArgument("create character input cannot be nil")
	}
	if strings.TrimSpace(input.OwnerID) == "" {
		return apperr.InvalidArgument("owner ID is required")
	}
	if strings.TrimSpace(input.ChronicleID) == "" {
		return apperr.InvalidArgument("chronicle ID is required")
	}
	if strings.TrimSpace(input.Name) == "" {
		return apperr.InvalidArgument("character name is required")
	}
	if !input.Archetype.IsValid() {
		return apperr.InvalidArgumentf("unknown archetype '%s'", input.Archetype)
	}
	if input.StartingFreebies < 0 {
		return apperr.InvalidArgument("starting freebies cannot be negative")
	}
	return nil
}

// validateForSubmission checks that a character sheet is complete enough to
// go to the storyteller. Point totals are the storyteller's call; this only
// catches sheets that were never filled in.
func validateForSubmission(char *character.Character) error {
	var missing []string
	for _, attr := range rulebook.AttributeNames {
		if char.TraitRating(attr) == 0 {
			missing = append(missing, attr)
		}
	}
	if len(missing) > 0 {
		return apperr.Validationf("character '%s' has unrated attributes: %s",
			char.Name, strings.Join(missing, ", "))
	}

	for name, rating := range char.Traits {
		category, ok := categoryForTrait(char, name)
		if !ok {
			continue
		}
		if ceiling := rulebook.Max(char, category, name); rating > ceiling {
			return apperr.Validationf("%s is rated %d, above its maximum of %d", name, rating, ceiling)
		}
	}

	return nil
}

// categoryForTrait maps a trait name back to its rulebook category, best
// effort. Bookkeeping traits with no category are skipped.
func categoryForTrait(char *character.Character, name string) (rulebook.Category, bool) {
	switch name {
	case rulebook.TraitWillpower:
		return rulebook.CategoryWillpower, true
	case rulebook.TraitArete:
		return rulebook.CategoryArete, true
	}
	for _, category := range []rulebook.Category{
		rulebook.CategoryAttribute,
		rulebook.CategoryAbility,
		rulebook.CategoryBackground,
		rulebook.CategorySphere,
		rulebook.CategoryDiscipline,
		rulebook.CategoryGift,
		rulebook.CategoryResonance,
		rulebook.CategoryPractice,
	} {
		if rulebook.ValidExample(char, category, name) {
			return category, true
		}
	}
	return "", false
}
