package rulebook

import (
	"sort"
	"strings"

	"github.com/KirkDiggler/chronicle-bot-discord/internal/domain/character"
)

// AttributeNames are the nine World of Darkness attributes
var AttributeNames = []string{
	"Strength", "Dexterity", "Stamina",
	"Charisma", "Manipulation", "Appearance",
	"Perception", "Intelligence", "Wits",
}

// AbilityNames covers talents, skills and knowledges
var AbilityNames = []string{
	"Alertness", "Athletics", "Brawl", "Dodge", "Empathy",
	"Expression", "Intimidation", "Leadership", "Streetwise", "Subterfuge",
	"Crafts", "Drive", "Etiquette", "Firearms", "Melee",
	"Performance", "Security", "Stealth", "Survival",
	"Academics", "Computer", "Investigation", "Law", "Linguistics",
	"Medicine", "Occult", "Science",
}

// BackgroundNames lists purchasable backgrounds
var BackgroundNames = []string{
	"Allies", "Arcane", "Avatar", "Contacts", "Influence",
	"Mentor", "Node", "Resources", "Retainers",
}

// SphereNames are the nine spheres of magick
var SphereNames = []string{
	"Correspondence", "Entropy", "Forces", "Life", "Matter",
	"Mind", "Prime", "Spirit", "Time",
}

// DisciplineNames are the common vampire disciplines
var DisciplineNames = []string{
	"Animalism", "Auspex", "Celerity", "Dominate", "Fortitude",
	"Obfuscate", "Potence", "Presence",
}

// GiftNames lists werewolf gifts
var GiftNames = []string{
	"Hare's Leap", "Mother's Touch", "Persuasion", "Razor Claws",
	"Sense Wyrm", "Truth of Gaia",
}

// ResonanceNames are the three resonance flavors
var ResonanceNames = []string{"Dynamic", "Entropic", "Static"}

// PracticeNames lists magickal practices
var PracticeNames = []string{
	"Alchemy", "Faith", "High Ritual Magick", "Martial Arts",
	"Reality Hacking", "Shamanism", "Witchcraft",
}

// MeritNames lists purchasable merits
var MeritNames = []string{
	"Acute Senses", "Ambidextrous", "Code of Honor", "Common Sense",
	"Danger Sense", "Iron Will", "Lightning Reflexes", "Time Sense",
}

// tenetFloor is the minimum number of tenets a mage must keep; tenets
// beyond the floor may be bought off
const tenetFloor = 3

// areteBaseCap is the Arete ceiling before any practices are learned
const areteBaseCap = 3

// Examples returns the concrete trait names a spend in the category may
// target for this character. Freeform categories (rotes) return nil; the
// player names the trait. Remove Tenet enumerates the character's current
// tenets.
func Examples(c *character.Character, category Category) []string {
	switch category {
	case CategoryAttribute:
		return AttributeNames
	case CategoryAbility:
		return AbilityNames
	case CategoryBackground:
		return BackgroundNames
	case CategoryMeritFlaw:
		return MeritNames
	case CategoryWillpower, CategoryArete, CategoryImage:
		return []string{category.SingletonTrait()}
	case CategoryDiscipline:
		return DisciplineNames
	case CategoryGift:
		return GiftNames
	case CategorySphere:
		return SphereNames
	case CategoryResonance:
		return ResonanceNames
	case CategoryPractice:
		return PracticeNames
	case CategoryRote:
		return nil
	case CategoryRemoveTenet:
		return Tenets(c)
	default:
		return nil
	}
}

// ValidExample reports whether a trait name is a legal example for the
// category. Freeform categories accept any non-empty name.
func ValidExample(c *character.Character, category Category, example string) bool {
	if category.IsFreeform() {
		return strings.TrimSpace(example) != ""
	}
	for _, name := range Examples(c, category) {
		if name == example {
			return true
		}
	}
	return false
}

// Max returns the rating cap for an example in the category. Sphere ratings
// are capped by the character's Arete; Arete itself is capped by practices
// learned.
func Max(c *character.Character, category Category, example string) int {
	switch category {
	case CategoryAttribute, CategoryAbility, CategoryWillpower:
		return 10
	case CategoryBackground, CategoryMeritFlaw, CategoryImage, CategoryResonance, CategoryPractice,
		CategoryDiscipline, CategoryGift:
		return 5
	case CategorySphere:
		return c.TraitRating(TraitArete)
	case CategoryArete:
		ceiling := areteBaseCap + PracticeCount(c)
		if ceiling > 10 {
			ceiling = 10
		}
		return ceiling
	case CategoryRote:
		return 1
	default:
		return 0
	}
}

// PracticeCount counts practices the character has learned
func PracticeCount(c *character.Character) int {
	count := 0
	for _, name := range PracticeNames {
		if c.TraitRating(name) > 0 {
			count++
		}
	}
	return count
}

// Tenets returns the character's current tenet names, sorted
func Tenets(c *character.Character) []string {
	var out []string
	for name, rating := range c.Traits {
		if strings.HasPrefix(name, TenetPrefix) && rating > 0 {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// ResolveTrait maps a (category, example) pair to the trait name the spend
// mutates. Rote examples are prefixed so player-named rotes cannot collide
// with rulebook trait names.
func ResolveTrait(category Category, example string) string {
	if category == CategoryRote {
		return RotePrefix + strings.TrimSpace(example)
	}
	if category.IsSingleton() {
		return category.SingletonTrait()
	}
	return example
}
