package character

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/KirkDiggler/chronicle-bot-discord/internal/handlers/discord/wod/helpers"
	"github.com/KirkDiggler/chronicle-bot-discord/internal/services"
	characterService "github.com/KirkDiggler/chronicle-bot-discord/internal/services/character"
)

type AssignRequest struct {
	Session       *discordgo.Session
	Interaction   *discordgo.InteractionCreate
	CharacterName string
	TraitName     string
	Rating        int
}

// AssignHandler sets trait ratings during character creation
type AssignHandler struct {
	services *services.Provider
}

func NewAssignHandler(services *services.Provider) *AssignHandler {
	return &AssignHandler{
		services: services,
	}
}

func (h *AssignHandler) Handle(req *AssignRequest) error {
	if err := helpers.DeferResponse(req.Session, req.Interaction); err != nil {
		return err
	}

	ctx := context.Background()
	userID := helpers.UserID(req.Interaction)

	char, err := helpers.FindCharacter(ctx, h.services, req.Interaction.GuildID, userID, req.CharacterName)
	if err != nil {
		return helpers.ErrorResponse(req.Session, req.Interaction, "%v", err)
	}

	updated, err := h.services.CharacterService.AssignTrait(ctx, &characterService.AssignTraitInput{
		CharacterID: char.ID,
		UserID:      userID,
		TraitName:   req.TraitName,
		Rating:      req.Rating,
	})
	if err != nil {
		return helpers.ErrorResponse(req.Session, req.Interaction, "Failed to assign trait: %v", err)
	}

	return helpers.EditResponse(req.Session, req.Interaction,
		fmt.Sprintf("✅ **%s**: %s set to %d.", updated.Name, req.TraitName, updated.TraitRating(req.TraitName)))
}
