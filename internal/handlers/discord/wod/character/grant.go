package character

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/KirkDiggler/chronicle-bot-discord/internal/domain/shared"
	"github.com/KirkDiggler/chronicle-bot-discord/internal/handlers/discord/wod/helpers"
	"github.com/KirkDiggler/chronicle-bot-discord/internal/services"
	characterService "github.com/KirkDiggler/chronicle-bot-discord/internal/services/character"
)

type GrantRequest struct {
	Session       *discordgo.Session
	Interaction   *discordgo.InteractionCreate
	OwnerID       string
	CharacterName string
	Pool          string
	Amount        int
	Note          string
}

// GrantHandler awards experience or freebie points, storyteller only
type GrantHandler struct {
	services *services.Provider
}

func NewGrantHandler(services *services.Provider) *GrantHandler {
	return &GrantHandler{
		services: services,
	}
}

func (h *GrantHandler) Handle(req *GrantRequest) error {
	if err := helpers.DeferResponse(req.Session, req.Interaction); err != nil {
		return err
	}

	ctx := context.Background()
	granterID := helpers.UserID(req.Interaction)

	char, err := helpers.FindCharacter(ctx, h.services, req.Interaction.GuildID, req.OwnerID, req.CharacterName)
	if err != nil {
		return helpers.ErrorResponse(req.Session, req.Interaction, "%v", err)
	}

	input := &characterService.GrantInput{
		CharacterID: char.ID,
		GranterID:   granterID,
		Amount:      req.Amount,
		Note:        req.Note,
	}

	pool := shared.PointPool(req.Pool)
	switch pool {
	case shared.PoolExperience:
		char, err = h.services.CharacterService.GrantExperience(ctx, input)
	case shared.PoolFreebies:
		char, err = h.services.CharacterService.GrantFreebies(ctx, input)
	default:
		return helpers.ErrorResponse(req.Session, req.Interaction, "Unknown point pool '%s'.", req.Pool)
	}
	if err != nil {
		return helpers.ErrorResponse(req.Session, req.Interaction, "Failed to grant points: %v", err)
	}

	return helpers.EditResponse(req.Session, req.Interaction,
		fmt.Sprintf("🎁 **%s** gains %d %s. Balance: %d XP, %d freebies.",
			char.Name, req.Amount, pool, char.XP, char.Freebies))
}
