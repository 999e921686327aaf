package rulebook

// Category is a class of trait that points can be spent on. Base categories
// apply to every archetype; the rest exist only where an archetype's cost
// table defines them.
type Category string

const (
	// Base categories
	CategoryAttribute  Category = "attribute"
	CategoryAbility    Category = "ability"
	CategoryBackground Category = "background"
	CategoryWillpower  Category = "willpower"
	CategoryMeritFlaw  Category = "merit_flaw"
	CategoryImage      Category = "image"

	// Vampire categories
	CategoryDiscipline Category = "discipline"

	// Werewolf categories
	CategoryGift Category = "gift"

	// Mage categories
	CategorySphere      Category = "sphere"
	CategoryArete       Category = "arete"
	CategoryResonance   Category = "resonance"
	CategoryPractice    Category = "practice"
	CategoryRote        Category = "rote"
	CategoryRemoveTenet Category = "remove_tenet"
)

// Display returns the category name as shown to players
func (c Category) Display() string {
	switch c {
	case CategoryAttribute:
		return "Attribute"
	case CategoryAbility:
		return "Ability"
	case CategoryBackground:
		return "Background"
	case CategoryWillpower:
		return "Willpower"
	case CategoryMeritFlaw:
		return "Merit/Flaw"
	case CategoryImage:
		return "Image"
	case CategoryDiscipline:
		return "Discipline"
	case CategoryGift:
		return "Gift"
	case CategorySphere:
		return "Sphere"
	case CategoryArete:
		return "Arete"
	case CategoryResonance:
		return "Resonance"
	case CategoryPractice:
		return "Practice"
	case CategoryRote:
		return "Rote"
	case CategoryRemoveTenet:
		return "Remove Tenet"
	default:
		return string(c)
	}
}

// Singleton trait names. These categories always resolve to one trait, so a
// spend does not need an example.
const (
	TraitWillpower  = "Willpower"
	TraitArete      = "Arete"
	TraitImage      = "Image"
	TraitRotePoints = "Rote Points"
)

// Freeform trait prefixes. Rotes and tenets are named by the player, so
// their ratings live under prefixed trait names.
const (
	RotePrefix  = "Rote: "
	TenetPrefix = "Tenet: "
)

// Step returns the rating change one spend in this category applies.
// Removing a tenet lowers the tenet trait; everything else raises by one.
func (c Category) Step() int {
	if c == CategoryRemoveTenet {
		return -1
	}
	return 1
}

// IsSingleton reports whether the category maps to exactly one trait
func (c Category) IsSingleton() bool {
	switch c {
	case CategoryWillpower, CategoryArete, CategoryImage:
		return true
	default:
		return false
	}
}

// IsFreeform reports whether the category accepts player-named examples
// rather than a fixed enumeration
func (c Category) IsFreeform() bool {
	return c == CategoryRote
}

// SingletonTrait returns the trait name for singleton categories
func (c Category) SingletonTrait() string {
	switch c {
	case CategoryWillpower:
		return TraitWillpower
	case CategoryArete:
		return TraitArete
	case CategoryImage:
		return TraitImage
	default:
		return ""
	}
}
