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

type CreateRequest struct {
	Session          *discordgo.Session
	Interaction      *discordgo.InteractionCreate
	Name             string
	Archetype        string
	StartingFreebies int
}

type CreateHandler struct {
	services *services.Provider
}

func NewCreateHandler(services *services.Provider) *CreateHandler {
	return &CreateHandler{
		services: services,
	}
}

func (h *CreateHandler) Handle(req *CreateRequest) error {
	if err := helpers.DeferResponse(req.Session, req.Interaction); err != nil {
		return err
	}

	ctx := context.Background()
	userID := helpers.UserID(req.Interaction)

	archetype := shared.ParseArchetype(req.Archetype)
	if archetype == shared.ArchetypeNone {
		return helpers.ErrorResponse(req.Session, req.Interaction, "Unknown archetype '%s'.", req.Archetype)
	}

	chron, err := h.services.ChronicleService.GetByGuild(ctx, req.Interaction.GuildID)
	if err != nil {
		return helpers.ErrorResponse(req.Session, req.Interaction, "No chronicle here yet. Create one with `/wod chronicle create`.")
	}

	char, err := h.services.CharacterService.CreateCharacter(ctx, &characterService.CreateCharacterInput{
		OwnerID:          userID,
		ChronicleID:      chron.ID,
		Name:             req.Name,
		Archetype:        archetype,
		StartingFreebies: req.StartingFreebies,
	})
	if err != nil {
		return helpers.ErrorResponse(req.Session, req.Interaction, "Failed to create character: %v", err)
	}

	embed := &discordgo.MessageEmbed{
		Title: "🩸 Character Created!",
		Description: fmt.Sprintf("**%s** the %s joins **%s**.\nAssign traits with `/wod character assign`, then `/wod character submit` for review.",
			char.Name, char.Archetype, chron.Name),
		Color: 0x9b59b6,
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Character ID: %s", char.ID),
		},
	}

	return helpers.EditResponseEmbed(req.Session, req.Interaction, embed)
}
