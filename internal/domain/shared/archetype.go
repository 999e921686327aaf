package shared

// Archetype identifies the game line a character belongs to. Mortal is the
// base template; archetype rulebook tables override or extend the mortal
// tables.
type Archetype string

const (
	ArchetypeNone       Archetype = ""
	ArchetypeMortal     Archetype = "mortal"
	ArchetypeMage       Archetype = "mage"
	ArchetypeVampire    Archetype = "vampire"
	ArchetypeWerewolf   Archetype = "werewolf"
	ArchetypeChangeling Archetype = "changeling"
	ArchetypeWraith     Archetype = "wraith"
	ArchetypeDemon      Archetype = "demon"
	ArchetypeHunter     Archetype = "hunter"
	ArchetypeMummy      Archetype = "mummy"
)

var Archetypes = []Archetype{
	ArchetypeMortal,
	ArchetypeMage,
	ArchetypeVampire,
	ArchetypeWerewolf,
	ArchetypeChangeling,
	ArchetypeWraith,
	ArchetypeDemon,
	ArchetypeHunter,
	ArchetypeMummy,
}

// ParseArchetype returns the archetype for a string, or ArchetypeNone
func ParseArchetype(s string) Archetype {
	for _, a := range Archetypes {
		if string(a) == s {
			return a
		}
	}
	return ArchetypeNone
}

// IsValid reports whether the archetype is a known game line
func (a Archetype) IsValid() bool {
	return ParseArchetype(string(a)) != ArchetypeNone
}
