package helpers

import (
	"context"
	"strings"

	"github.com/KirkDiggler/chronicle-bot-discord/internal/domain/character"
	apperr "github.com/KirkDiggler/chronicle-bot-discord/internal/errors"
	"github.com/KirkDiggler/chronicle-bot-discord/internal/services"
)

// FindCharacter resolves which of the user's characters in the guild's
// chronicle a command targets. With no name given it returns the sole
// non-terminal character, or an error asking the player to name one.
func FindCharacter(ctx context.Context, provider *services.Provider, guildID, ownerID, name string) (*character.Character, error) {
	chron, err := provider.ChronicleService.GetByGuild(ctx, guildID)
	if err != nil {
		return nil, err
	}

	chars, err := provider.CharacterService.ListCharacters(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	var candidates []*character.Character
	for _, c := range chars {
		if c.ChronicleID != chron.ID {
			continue
		}
		if name != "" {
			if strings.EqualFold(c.Name, name) {
				return c, nil
			}
			continue
		}
		if !c.Status.IsTerminal() {
			candidates = append(candidates, c)
		}
	}

	if name != "" {
		return nil, apperr.NotFoundf("you have no character named '%s' in %s", name, chron.Name)
	}
	switch len(candidates) {
	case 0:
		return nil, apperr.NotFoundf("you have no character in %s", chron.Name)
	case 1:
		return candidates[0], nil
	default:
		return nil, apperr.InvalidArgument("you have multiple characters here; pass the character name")
	}
}
