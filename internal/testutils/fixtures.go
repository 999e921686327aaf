package testutils

import (
	"time"

	"github.com/KirkDiggler/chronicle-bot-discord/internal/domain/character"
	"github.com/KirkDiggler/chronicle-bot-discord/internal/domain/chronicle"
	"github.com/KirkDiggler/chronicle-bot-discord/internal/domain/rulebook"
	"github.com/KirkDiggler/chronicle-bot-discord/internal/domain/shared"
)

// CreateTestChronicle creates a test chronicle
func CreateTestChronicle(id, guildID, storytellerID string) *chronicle.Chronicle {
	return &chronicle.Chronicle{
		ID:            id,
		GuildID:       guildID,
		Name:          "Shadows Over Testing",
		StorytellerID: storytellerID,
		CreatedAt:     time.Now().UTC(),
		UpdatedAt:     time.Now().UTC(),
	}
}

// CreateTestMortal creates an approved mortal with a filled-in sheet
func CreateTestMortal(id, ownerID, chronicleID, name string) *character.Character {
	char := &character.Character{
		ID:          id,
		OwnerID:     ownerID,
		ChronicleID: chronicleID,
		Name:        name,
		Archetype:   shared.ArchetypeMortal,
		Status:      shared.CharacterStatusApproved,
		Traits:      make(map[string]int),
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}

	for _, attr := range rulebook.AttributeNames {
		char.SetTrait(attr, 2)
	}
	char.SetTrait("Brawl", 2)
	char.SetTrait("Occult", 1)
	char.SetTrait("Resources", 1)
	char.SetTrait(rulebook.TraitWillpower, 5)

	return char
}

// CreateTestMage creates an approved mage with Arete, spheres and a practice
func CreateTestMage(id, ownerID, chronicleID, name string) *character.Character {
	char := CreateTestMortal(id, ownerID, chronicleID, name)
	char.Archetype = shared.ArchetypeMage
	char.SetTrait(rulebook.TraitArete, 3)
	char.SetTrait("Forces", 2)
	char.SetTrait("Prime", 1)
	char.SetTrait("Shamanism", 1)
	char.SetTrait("Dynamic", 1)
	char.SetTrait(rulebook.TenetPrefix+"Do No Harm", 1)
	char.SetTrait(rulebook.TenetPrefix+"Honor the Spirits", 1)
	char.SetTrait(rulebook.TenetPrefix+"Keep the Secret", 1)
	char.SetTrait(rulebook.TenetPrefix+"Seek the Truth", 1)
	return char
}

// CreateTestVampire creates an approved vampire with disciplines
func CreateTestVampire(id, ownerID, chronicleID, name string) *character.Character {
	char := CreateTestMortal(id, ownerID, chronicleID, name)
	char.Archetype = shared.ArchetypeVampire
	char.SetTrait("Celerity", 1)
	char.SetTrait("Presence", 2)
	return char
}
