package rulebook

import (
	"github.com/KirkDiggler/chronicle-bot-discord/internal/domain/shared"
	apperr "github.com/KirkDiggler/chronicle-bot-discord/internal/errors"
)

// CostRule describes how much one step in a category costs. Flat wins when
// set; otherwise the cost is PerRating times the current rating. New, when
// set, replaces the computed cost at rating zero so a fresh trait never
// costs PerRating * 0.
type CostRule struct {
	Flat      int
	PerRating int
	New       int
}

// Cost evaluates the rule at a current rating
func (r CostRule) Cost(currentRating int) int {
	if currentRating == 0 && r.New > 0 {
		return r.New
	}
	if r.Flat > 0 {
		return r.Flat
	}
	return r.PerRating * currentRating
}

// CostTable maps categories to cost rules for one archetype and pool
type CostTable map[Category]CostRule

// Experience cost tables. The mortal table is the base; archetype tables
// extend it. Lookup falls back to mortal for categories an archetype table
// does not override.
var xpCosts = map[shared.Archetype]CostTable{
	shared.ArchetypeMortal: {
		CategoryAttribute:  {PerRating: 4},
		CategoryAbility:    {PerRating: 2, New: 3},
		CategoryBackground: {PerRating: 3, New: 5},
		CategoryWillpower:  {PerRating: 1},
	},
	shared.ArchetypeMage: {
		CategorySphere:    {PerRating: 8, New: 10},
		CategoryArete:     {PerRating: 8},
		CategoryResonance: {PerRating: 3, New: 5},
		CategoryPractice:  {PerRating: 3, New: 4},
	},
	shared.ArchetypeVampire: {
		CategoryDiscipline: {PerRating: 7, New: 10},
	},
	shared.ArchetypeWerewolf: {
		CategoryGift: {PerRating: 3, New: 7},
	},
}

// Freebie cost tables. Freebie costs are flat per step.
var freebieCosts = map[shared.Archetype]CostTable{
	shared.ArchetypeMortal: {
		CategoryAttribute:  {Flat: 5},
		CategoryAbility:    {Flat: 2},
		CategoryBackground: {Flat: 1},
		CategoryWillpower:  {Flat: 1},
		CategoryMeritFlaw:  {Flat: 1},
		CategoryImage:      {Flat: 1},
	},
	shared.ArchetypeMage: {
		CategorySphere:      {Flat: 7},
		CategoryArete:       {Flat: 4},
		CategoryResonance:   {Flat: 2},
		CategoryPractice:    {Flat: 2},
		CategoryRote:        {Flat: 1},
		CategoryRemoveTenet: {Flat: 10},
	},
	shared.ArchetypeVampire: {
		CategoryDiscipline: {Flat: 7},
	},
	shared.ArchetypeWerewolf: {
		CategoryGift: {Flat: 7},
	},
}

func tablesFor(pool shared.PointPool) map[shared.Archetype]CostTable {
	if pool == shared.PoolFreebies {
		return freebieCosts
	}
	return xpCosts
}

// lookupRule finds the cost rule for a category, archetype table first,
// mortal table as fallback
func lookupRule(archetype shared.Archetype, pool shared.PointPool, category Category) (CostRule, bool) {
	tables := tablesFor(pool)
	if table, ok := tables[archetype]; ok {
		if rule, ok := table[category]; ok {
			return rule, true
		}
	}
	if rule, ok := tables[shared.ArchetypeMortal][category]; ok {
		return rule, true
	}
	return CostRule{}, false
}

// Cost returns the point cost to raise a trait in the category by one step,
// given its current rating. An unknown category is a configuration error
// between the eligibility layer and these tables, not a user mistake, so it
// surfaces as an internal error rather than an unaffordable sentinel.
func Cost(archetype shared.Archetype, pool shared.PointPool, category Category, currentRating int) (int, error) {
	rule, ok := lookupRule(archetype, pool, category)
	if !ok {
		return 0, apperr.Internalf("no %s cost rule for category '%s'", pool, category).
			WithMeta("archetype", string(archetype)).
			WithMeta("category", string(category))
	}
	return rule.Cost(currentRating), nil
}

// categoryOrder fixes the order categories are offered in
var categoryOrder = []Category{
	CategoryAttribute,
	CategoryAbility,
	CategoryBackground,
	CategoryWillpower,
	CategoryMeritFlaw,
	CategoryImage,
	CategoryDiscipline,
	CategoryGift,
	CategorySphere,
	CategoryArete,
	CategoryResonance,
	CategoryPractice,
	CategoryRote,
	CategoryRemoveTenet,
}

// KnownCategories returns every category with a cost rule for the archetype
// and pool, mortal fallback included, in presentation order
func KnownCategories(archetype shared.Archetype, pool shared.PointPool) []Category {
	var out []Category
	for _, category := range categoryOrder {
		if _, ok := lookupRule(archetype, pool, category); ok {
			out = append(out, category)
		}
	}
	return out
}
