package rulebook_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/chronicle-bot-discord/internal/domain/character"
	"github.com/KirkDiggler/chronicle-bot-discord/internal/domain/rulebook"
	"github.com/KirkDiggler/chronicle-bot-discord/internal/domain/shared"
)

func newTestMage() *character.Character {
	char := &character.Character{
		ID:        "mage-1",
		Name:      "Testing Mage",
		Archetype: shared.ArchetypeMage,
		Status:    shared.CharacterStatusApproved,
		Traits:    make(map[string]int),
	}
	char.SetTrait(rulebook.TraitArete, 3)
	char.SetTrait("Forces", 2)
	char.SetTrait("Shamanism", 1)
	return char
}

func TestCheckExample_SphereRequiresArete(t *testing.T) {
	char := newTestMage()
	char.XP = 50
	char.SetTrait(rulebook.TraitArete, 0)

	err := rulebook.CheckExample(char, shared.PoolExperience, rulebook.CategorySphere, "Forces")
	require.Error(t, err)
	assert.Equal(t, rulebook.ReasonPrerequisiteViolation, rulebook.Reason(err))
}

func TestCheckExample_SphereCappedByArete(t *testing.T) {
	char := newTestMage()
	char.XP = 50
	char.SetTrait(rulebook.TraitArete, 2)
	char.SetTrait("Forces", 2)

	err := rulebook.CheckExample(char, shared.PoolExperience, rulebook.CategorySphere, "Forces")
	require.Error(t, err)
	assert.Equal(t, rulebook.ReasonPrerequisiteViolation, rulebook.Reason(err))
	assert.Contains(t, err.Error(), "cannot exceed Arete")
}

func TestCheckExample_SphereBelowAretePasses(t *testing.T) {
	char := newTestMage()
	char.XP = 50

	err := rulebook.CheckExample(char, shared.PoolExperience, rulebook.CategorySphere, "Forces")
	require.NoError(t, err)
}

func TestCheckExample_InsufficientPoints(t *testing.T) {
	char := newTestMage()
	char.XP = 5 // Forces 2 -> 3 costs 16

	err := rulebook.CheckExample(char, shared.PoolExperience, rulebook.CategorySphere, "Forces")
	require.Error(t, err)
	assert.Equal(t, rulebook.ReasonInsufficientPoints, rulebook.Reason(err))
	assert.Contains(t, err.Error(), "Not enough experience")
	assert.Equal(t, 5, char.XP)
}

func TestCheckExample_TraitAtMaximum(t *testing.T) {
	char := newTestMage()
	char.XP = 100
	char.SetTrait("Strength", 10)

	err := rulebook.CheckExample(char, shared.PoolExperience, rulebook.CategoryAttribute, "Strength")
	require.Error(t, err)
	assert.Equal(t, rulebook.ReasonTraitAtMaximum, rulebook.Reason(err))
}

func TestCheckExample_AreteNeedsPracticeHeadroom(t *testing.T) {
	char := newTestMage()
	char.XP = 100
	// One practice learned, cap is 3 + 1 = 4
	char.SetTrait(rulebook.TraitArete, 4)

	err := rulebook.CheckExample(char, shared.PoolExperience, rulebook.CategoryArete, rulebook.TraitArete)
	require.Error(t, err)
	assert.Equal(t, rulebook.ReasonPrerequisiteViolation, rulebook.Reason(err))

	// Learning another practice lifts the cap
	char.SetTrait("Alchemy", 1)
	require.NoError(t, rulebook.CheckExample(char, shared.PoolExperience, rulebook.CategoryArete, rulebook.TraitArete))
}

func TestCheckExample_RoteNeedsRotePoint(t *testing.T) {
	char := newTestMage()
	char.Freebies = 10

	err := rulebook.CheckExample(char, shared.PoolFreebies, rulebook.CategoryRote, "Fireball")
	require.Error(t, err)
	assert.Equal(t, rulebook.ReasonPrerequisiteViolation, rulebook.Reason(err))

	char.SetTrait(rulebook.TraitRotePoints, 1)
	require.NoError(t, rulebook.CheckExample(char, shared.PoolFreebies, rulebook.CategoryRote, "Fireball"))
}

func TestCheckExample_RemoveTenetKeepsFloor(t *testing.T) {
	char := newTestMage()
	char.Freebies = 20
	char.SetTrait(rulebook.TenetPrefix+"One", 1)
	char.SetTrait(rulebook.TenetPrefix+"Two", 1)
	char.SetTrait(rulebook.TenetPrefix+"Three", 1)

	// Exactly at the floor, nothing may be removed
	err := rulebook.CheckExample(char, shared.PoolFreebies, rulebook.CategoryRemoveTenet, rulebook.TenetPrefix+"One")
	require.Error(t, err)
	assert.Equal(t, rulebook.ReasonPrerequisiteViolation, rulebook.Reason(err))

	char.SetTrait(rulebook.TenetPrefix+"Four", 1)
	require.NoError(t, rulebook.CheckExample(char, shared.PoolFreebies, rulebook.CategoryRemoveTenet, rulebook.TenetPrefix+"One"))

	// A tenet the character does not hold is not removable
	err = rulebook.CheckExample(char, shared.PoolFreebies, rulebook.CategoryRemoveTenet, rulebook.TenetPrefix+"Five")
	require.Error(t, err)
}

// Every offer Available returns must survive CheckExample unchanged; the
// options list never promises a spend the rules would refuse.
func TestAvailable_NoFalsePositives(t *testing.T) {
	chars := []*character.Character{
		func() *character.Character {
			c := newTestMage()
			c.XP = 3
			c.Freebies = 1
			return c
		}(),
		func() *character.Character {
			c := newTestMage()
			c.XP = 200
			c.Freebies = 50
			c.SetTrait(rulebook.TraitRotePoints, 2)
			return c
		}(),
		{
			Archetype: shared.ArchetypeMortal,
			XP:        4,
			Traits:    map[string]int{"Strength": 2, "Brawl": 3},
		},
		{
			Archetype: shared.ArchetypeVampire,
			Freebies:  7,
			Traits:    map[string]int{"Celerity": 1},
		},
	}

	for _, char := range chars {
		for _, pool := range []shared.PointPool{shared.PoolExperience, shared.PoolFreebies} {
			for _, offer := range rulebook.Available(char, pool) {
				if offer.Category.IsFreeform() {
					assert.NoError(t, rulebook.CheckExample(char, pool, offer.Category, "new rote"))
					continue
				}
				require.NotEmpty(t, offer.Examples)
				for _, example := range offer.Examples {
					assert.NoErrorf(t, rulebook.CheckExample(char, pool, offer.Category, example),
						"offered %s/%s must pass validation", offer.Category, example)
				}
			}
		}
	}
}

func TestAvailable_ExcludesEmptyCategories(t *testing.T) {
	// Freebie costs are all flat and positive, so a character with no
	// freebies gets no offers at all
	char := &character.Character{
		Archetype: shared.ArchetypeMortal,
		Traits:    map[string]int{"Strength": 2},
	}
	assert.Empty(t, rulebook.Available(char, shared.PoolFreebies))
}

func TestMax_SphereTracksArete(t *testing.T) {
	char := newTestMage()
	assert.Equal(t, 3, rulebook.Max(char, rulebook.CategorySphere, "Forces"))

	char.SetTrait(rulebook.TraitArete, 5)
	assert.Equal(t, 5, rulebook.Max(char, rulebook.CategorySphere, "Forces"))
}

func TestResolveTrait(t *testing.T) {
	assert.Equal(t, "Forces", rulebook.ResolveTrait(rulebook.CategorySphere, "Forces"))
	assert.Equal(t, rulebook.TraitWillpower, rulebook.ResolveTrait(rulebook.CategoryWillpower, ""))
	assert.Equal(t, rulebook.RotePrefix+"Fireball", rulebook.ResolveTrait(rulebook.CategoryRote, "Fireball"))
}
