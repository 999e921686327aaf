package character

import (
	"time"

	"github.com/KirkDiggler/chronicle-bot-discord/internal/domain/shared"
	apperr "github.com/KirkDiggler/chronicle-bot-discord/internal/errors"
)

// Character is a player's in-game persona. Trait ratings live in a flat
// name -> rating map; attributes, abilities, backgrounds, spheres, Willpower,
// Arete and bookkeeping traits like "Rote Points" all share the namespace.
//
// During active play trait ratings change only through the advancement
// service. While the character is still unfinished, creation flows may assign
// traits freely via SetTrait.
type Character struct {
	ID          string                 `json:"id"`
	OwnerID     string                 `json:"owner_id"`
	ChronicleID string                 `json:"chronicle_id"`
	Name        string                 `json:"name"`
	Archetype   shared.Archetype       `json:"archetype"`
	Status      shared.CharacterStatus `json:"status"`

	// XP and Freebies never go negative; spends that would overdraw are
	// rejected before any mutation.
	XP       int `json:"xp"`
	Freebies int `json:"freebies"`

	Traits map[string]int `json:"traits"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TraitRating returns the current rating for a trait, zero if unset
func (c *Character) TraitRating(name string) int {
	if c.Traits == nil {
		return 0
	}
	return c.Traits[name]
}

// SetTrait assigns a rating directly. Creation-time use only; advancement
// goes through IncrementTrait/DecrementTrait.
func (c *Character) SetTrait(name string, rating int) {
	if c.Traits == nil {
		c.Traits = make(map[string]int)
	}
	if rating < 0 {
		rating = 0
	}
	c.Traits[name] = rating
}

// IncrementTrait raises a trait by step and returns the new rating
func (c *Character) IncrementTrait(name string, step int) int {
	if c.Traits == nil {
		c.Traits = make(map[string]int)
	}
	c.Traits[name] += step
	return c.Traits[name]
}

// DecrementTrait lowers a trait by step, flooring at zero
func (c *Character) DecrementTrait(name string, step int) int {
	if c.Traits == nil {
		c.Traits = make(map[string]int)
	}
	c.Traits[name] -= step
	if c.Traits[name] < 0 {
		c.Traits[name] = 0
	}
	return c.Traits[name]
}

// Balance returns the character's balance for the given pool
func (c *Character) Balance(pool shared.PointPool) int {
	if pool == shared.PoolFreebies {
		return c.Freebies
	}
	return c.XP
}

// Deduct removes points from a pool. It is the caller's job to have
// verified affordability; Deduct refuses to overdraw.
func (c *Character) Deduct(pool shared.PointPool, amount int) error {
	if amount < 0 {
		return apperr.InvalidArgument("deduction amount cannot be negative")
	}
	if c.Balance(pool) < amount {
		return apperr.Validationf("not enough %s", pool)
	}
	if pool == shared.PoolFreebies {
		c.Freebies -= amount
	} else {
		c.XP -= amount
	}
	return nil
}

// Refund returns points to a pool
func (c *Character) Refund(pool shared.PointPool, amount int) {
	if amount <= 0 {
		return
	}
	if pool == shared.PoolFreebies {
		c.Freebies += amount
	} else {
		c.XP += amount
	}
}

// IsApproved reports whether the character is in active play
func (c *Character) IsApproved() bool {
	return c.Status == shared.CharacterStatusApproved
}

// Submit moves an unfinished character to submitted for storyteller review
func (c *Character) Submit() error {
	if c.Status != shared.CharacterStatusUnfinished {
		return apperr.Conflictf("character '%s' cannot be submitted from status '%s'", c.Name, c.Status)
	}
	c.Status = shared.CharacterStatusSubmitted
	return nil
}

// Approve moves a submitted character into active play
func (c *Character) Approve() error {
	if c.Status != shared.CharacterStatusSubmitted {
		return apperr.Conflictf("character '%s' cannot be approved from status '%s'", c.Name, c.Status)
	}
	c.Status = shared.CharacterStatusApproved
	return nil
}

// Retire takes an approved character out of play
func (c *Character) Retire() error {
	if c.Status.IsTerminal() {
		return apperr.Conflictf("character '%s' is already %s", c.Name, c.Status)
	}
	c.Status = shared.CharacterStatusRetired
	return nil
}

// MarkDeceased records an in-game death
func (c *Character) MarkDeceased() error {
	if c.Status.IsTerminal() {
		return apperr.Conflictf("character '%s' is already %s", c.Name, c.Status)
	}
	c.Status = shared.CharacterStatusDeceased
	return nil
}
