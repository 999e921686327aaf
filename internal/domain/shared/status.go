package shared

// CharacterStatus tracks a character through its lifecycle. Characters are
// never deleted, only transitioned to retired or deceased.
type CharacterStatus string

const (
	CharacterStatusUnfinished CharacterStatus = "unfinished"
	CharacterStatusSubmitted  CharacterStatus = "submitted"
	CharacterStatusApproved   CharacterStatus = "approved"
	CharacterStatusRetired    CharacterStatus = "retired"
	CharacterStatusDeceased   CharacterStatus = "deceased"
)

// IsTerminal reports whether the status allows no further transitions
func (s CharacterStatus) IsTerminal() bool {
	return s == CharacterStatusRetired || s == CharacterStatusDeceased
}
