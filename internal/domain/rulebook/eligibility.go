package rulebook

import (
	"github.com/KirkDiggler/chronicle-bot-discord/internal/domain/character"
	"github.com/KirkDiggler/chronicle-bot-discord/internal/domain/shared"
	apperr "github.com/KirkDiggler/chronicle-bot-discord/internal/errors"
)

// ReasonKey is the error metadata key carrying the rejection reason
const ReasonKey = "reason"

// Rejection reasons attached to validation errors
const (
	ReasonInsufficientPoints    = "insufficient_points"
	ReasonTraitAtMaximum        = "trait_at_maximum"
	ReasonPrerequisiteViolation = "prerequisite_violation"
	ReasonCategoryNotEligible   = "category_not_eligible"
)

// CategoryOffer is a category the character can spend on right now, with
// the examples that pass every check. Freeform categories (rotes) carry no
// example list; the player names the trait.
type CategoryOffer struct {
	Category Category
	Examples []string
}

// Reason extracts the rejection reason from a validation error, empty when
// the error carries none
func Reason(err error) string {
	meta := apperr.GetMeta(err)
	if meta == nil {
		return ""
	}
	reason, _ := meta[ReasonKey].(string)
	return reason
}

func insufficientPoints(pool shared.PointPool) *apperr.Error {
	return apperr.Validationf("Not enough %s", poolNoun(pool)).
		WithMeta(ReasonKey, ReasonInsufficientPoints)
}

func traitAtMaximum(trait string) *apperr.Error {
	return apperr.Validationf("%s is at maximum", trait).
		WithMeta(ReasonKey, ReasonTraitAtMaximum)
}

func prerequisiteViolation(format string, args ...any) *apperr.Error {
	return apperr.Validationf(format, args...).
		WithMeta(ReasonKey, ReasonPrerequisiteViolation)
}

func poolNoun(pool shared.PointPool) string {
	if pool == shared.PoolFreebies {
		return "freebies"
	}
	return "experience"
}

// CheckExample verifies that spending on the given (category, example) pair
// cannot fail in the orchestrator: structural prerequisites hold, the trait
// is not at its cap, and the cost fits the pool balance. The orchestrator
// re-runs this at spend time, so eligibility never offers a spend it would
// later refuse.
func CheckExample(c *character.Character, pool shared.PointPool, category Category, example string) error {
	trait := ResolveTrait(category, example)
	current := c.TraitRating(trait)

	switch category {
	case CategorySphere:
		arete := c.TraitRating(TraitArete)
		if arete == 0 {
			return prerequisiteViolation("spheres require Arete")
		}
		if current >= arete {
			return prerequisiteViolation("%s cannot exceed Arete", example)
		}
	case CategoryArete:
		if current >= Max(c, CategoryArete, example) {
			return prerequisiteViolation("Arete requires another practice before it can rise")
		}
	case CategoryRote:
		if c.TraitRating(TraitRotePoints) < 1 {
			return prerequisiteViolation("rotes require an unspent rote point")
		}
		if current >= Max(c, CategoryRote, example) {
			return traitAtMaximum(trait)
		}
	case CategoryRemoveTenet:
		if len(Tenets(c)) <= tenetFloor {
			return prerequisiteViolation("a mage must keep at least %d tenets", tenetFloor)
		}
		if current < 1 {
			return prerequisiteViolation("%s is not a held tenet", example)
		}
	default:
		if current >= Max(c, category, example) {
			return traitAtMaximum(trait)
		}
	}

	cost, err := Cost(c.Archetype, pool, category, current)
	if err != nil {
		return err
	}
	if cost > c.Balance(pool) {
		return insufficientPoints(pool)
	}

	return nil
}

// Available computes the categories currently offerable to the character
// for a point pool. A category with zero passing examples is excluded, even
// if its cost rule exists; eligibility is over actual examples, not
// category-level flags.
func Available(c *character.Character, pool shared.PointPool) []CategoryOffer {
	var offers []CategoryOffer

	for _, category := range KnownCategories(c.Archetype, pool) {
		if category.IsFreeform() {
			// No enumeration; check the category gates with a
			// placeholder name.
			if err := CheckExample(c, pool, category, "new rote"); err == nil {
				offers = append(offers, CategoryOffer{Category: category})
			}
			continue
		}

		var eligible []string
		for _, example := range Examples(c, category) {
			if err := CheckExample(c, pool, category, example); err == nil {
				eligible = append(eligible, example)
			}
		}
		if len(eligible) > 0 {
			offers = append(offers, CategoryOffer{Category: category, Examples: eligible})
		}
	}

	return offers
}
