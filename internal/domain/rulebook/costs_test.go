package rulebook_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/chronicle-bot-discord/internal/domain/rulebook"
	"github.com/KirkDiggler/chronicle-bot-discord/internal/domain/shared"
	apperr "github.com/KirkDiggler/chronicle-bot-discord/internal/errors"
)

func TestCost_ExperienceTables(t *testing.T) {
	tests := []struct {
		name      string
		archetype shared.Archetype
		category  rulebook.Category
		current   int
		want      int
	}{
		{"attribute scales with current rating", shared.ArchetypeMortal, rulebook.CategoryAttribute, 3, 12},
		{"ability at zero uses new cost", shared.ArchetypeMortal, rulebook.CategoryAbility, 0, 3},
		{"ability scales after first dot", shared.ArchetypeMortal, rulebook.CategoryAbility, 2, 4},
		{"background at zero uses new cost", shared.ArchetypeMortal, rulebook.CategoryBackground, 0, 5},
		{"willpower costs current rating", shared.ArchetypeMortal, rulebook.CategoryWillpower, 5, 5},
		{"sphere costs eight per current dot", shared.ArchetypeMage, rulebook.CategorySphere, 2, 16},
		{"new sphere costs flat ten", shared.ArchetypeMage, rulebook.CategorySphere, 0, 10},
		{"arete costs eight per dot", shared.ArchetypeMage, rulebook.CategoryArete, 3, 24},
		{"new practice costs four", shared.ArchetypeMage, rulebook.CategoryPractice, 0, 4},
		{"new discipline costs flat ten", shared.ArchetypeVampire, rulebook.CategoryDiscipline, 0, 10},
		{"discipline costs seven per dot", shared.ArchetypeVampire, rulebook.CategoryDiscipline, 2, 14},
		{"new gift costs seven", shared.ArchetypeWerewolf, rulebook.CategoryGift, 0, 7},
		{"mage falls back to mortal attributes", shared.ArchetypeMage, rulebook.CategoryAttribute, 2, 8},
		{"vampire falls back to mortal abilities", shared.ArchetypeVampire, rulebook.CategoryAbility, 1, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := rulebook.Cost(tt.archetype, shared.PoolExperience, tt.category, tt.current)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCost_FreebieTables(t *testing.T) {
	tests := []struct {
		name      string
		archetype shared.Archetype
		category  rulebook.Category
		want      int
	}{
		{"attribute costs five", shared.ArchetypeMortal, rulebook.CategoryAttribute, 5},
		{"ability costs two", shared.ArchetypeMortal, rulebook.CategoryAbility, 2},
		{"background costs one", shared.ArchetypeMortal, rulebook.CategoryBackground, 1},
		{"sphere costs seven", shared.ArchetypeMage, rulebook.CategorySphere, 7},
		{"arete costs four", shared.ArchetypeMage, rulebook.CategoryArete, 4},
		{"rote costs one", shared.ArchetypeMage, rulebook.CategoryRote, 1},
		{"removing a tenet costs ten", shared.ArchetypeMage, rulebook.CategoryRemoveTenet, 10},
		{"werewolf falls back to mortal merits", shared.ArchetypeWerewolf, rulebook.CategoryMeritFlaw, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Freebie costs are flat, current rating must not matter
			for _, current := range []int{0, 2, 4} {
				got, err := rulebook.Cost(tt.archetype, shared.PoolFreebies, tt.category, current)
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestCost_UnknownCategoryIsInternalError(t *testing.T) {
	// Mortals have no sphere rule and no mortal fallback exists for it
	_, err := rulebook.Cost(shared.ArchetypeMortal, shared.PoolExperience, rulebook.CategorySphere, 1)
	require.Error(t, err)
	assert.True(t, apperr.IsInternal(err))

	// Rote is freebie-only even for mages
	_, err = rulebook.Cost(shared.ArchetypeMage, shared.PoolExperience, rulebook.CategoryRote, 0)
	require.Error(t, err)
	assert.True(t, apperr.IsInternal(err))
}

func TestKnownCategories(t *testing.T) {
	mortalXP := rulebook.KnownCategories(shared.ArchetypeMortal, shared.PoolExperience)
	assert.Equal(t, []rulebook.Category{
		rulebook.CategoryAttribute,
		rulebook.CategoryAbility,
		rulebook.CategoryBackground,
		rulebook.CategoryWillpower,
	}, mortalXP)

	mageFreebies := rulebook.KnownCategories(shared.ArchetypeMage, shared.PoolFreebies)
	assert.Contains(t, mageFreebies, rulebook.CategorySphere)
	assert.Contains(t, mageFreebies, rulebook.CategoryRote)
	assert.Contains(t, mageFreebies, rulebook.CategoryRemoveTenet)
	// Mortal fallback categories are included
	assert.Contains(t, mageFreebies, rulebook.CategoryAttribute)
	// Vampire categories are not
	assert.NotContains(t, mageFreebies, rulebook.CategoryDiscipline)

	// Order is stable across calls
	assert.Equal(t, mageFreebies, rulebook.KnownCategories(shared.ArchetypeMage, shared.PoolFreebies))
}
