package advancement

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/KirkDiggler/chronicle-bot-discord/internal/domain/rulebook"
	"github.com/KirkDiggler/chronicle-bot-discord/internal/domain/shared"
	"github.com/KirkDiggler/chronicle-bot-discord/internal/handlers/discord/wod/helpers"
	"github.com/KirkDiggler/chronicle-bot-discord/internal/services"
	advancementService "github.com/KirkDiggler/chronicle-bot-discord/internal/services/advancement"
)

type SpendRequest struct {
	Session       *discordgo.Session
	Interaction   *discordgo.InteractionCreate
	CharacterName string
	Pool          string
	Category      string
	Example       string
	Note          string
}

type SpendHandler struct {
	services *services.Provider
}

func NewSpendHandler(services *services.Provider) *SpendHandler {
	return &SpendHandler{
		services: services,
	}
}

func (h *SpendHandler) Handle(req *SpendRequest) error {
	if err := helpers.DeferResponse(req.Session, req.Interaction); err != nil {
		return err
	}

	ctx := context.Background()

	char, err := helpers.FindCharacter(ctx, h.services, req.Interaction.GuildID, helpers.UserID(req.Interaction), req.CharacterName)
	if err != nil {
		return helpers.ErrorResponse(req.Session, req.Interaction, "%v", err)
	}

	output, err := h.services.AdvancementService.Spend(ctx, &advancementService.SpendInput{
		CharacterID: char.ID,
		Pool:        shared.PointPool(req.Pool),
		Category:    rulebook.Category(req.Category),
		Example:     req.Example,
		Note:        req.Note,
	})
	if err != nil {
		return helpers.ErrorResponse(req.Session, req.Interaction, "Spend failed: %v", err)
	}

	char = output.Character
	if output.Request != nil {
		return helpers.EditResponse(req.Session, req.Interaction,
			fmt.Sprintf("⏳ **%s**: %s is now %d for %d freebies, pending storyteller approval.\nRequest `%s`. Balance: %d freebies.",
				char.Name, output.TraitName, output.NewRating, output.Cost, output.Request.ID, char.Freebies))
	}

	return helpers.EditResponse(req.Session, req.Interaction,
		fmt.Sprintf("✨ **%s**: %s is now %d for %d XP. Balance: %d XP.",
			char.Name, output.TraitName, output.NewRating, output.Cost, char.XP))
}
