package chronicle

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/KirkDiggler/chronicle-bot-discord/internal/handlers/discord/wod/helpers"
	"github.com/KirkDiggler/chronicle-bot-discord/internal/services"
	chronicleService "github.com/KirkDiggler/chronicle-bot-discord/internal/services/chronicle"
)

type CreateRequest struct {
	Session     *discordgo.Session
	Interaction *discordgo.InteractionCreate
	Name        string
	Setting     string
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

	if strings.TrimSpace(req.Name) == "" {
		return helpers.ErrorResponse(req.Session, req.Interaction, "Chronicle name is required!")
	}

	userID := helpers.UserID(req.Interaction)
	if _, err := h.services.AccountService.EnsureProfile(context.Background(), userID, helpers.Username(req.Interaction)); err != nil {
		return helpers.ErrorResponse(req.Session, req.Interaction, "Failed to load your profile: %v", err)
	}

	chron, err := h.services.ChronicleService.CreateChronicle(context.Background(), &chronicleService.CreateChronicleInput{
		GuildID:       req.Interaction.GuildID,
		Name:          req.Name,
		Setting:       req.Setting,
		StorytellerID: userID,
	})
	if err != nil {
		return helpers.ErrorResponse(req.Session, req.Interaction, "Failed to create chronicle: %v", err)
	}

	embed := &discordgo.MessageEmbed{
		Title:       "🕯️ Chronicle Created!",
		Description: fmt.Sprintf("**%s** is underway. <@%s> is the storyteller.", chron.Name, chron.StorytellerID),
		Color:       0x2ecc71,
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Chronicle ID: %s", chron.ID),
		},
	}
	if chron.Setting != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "📖 Setting",
			Value: chron.Setting,
		})
	}

	return helpers.EditResponseEmbed(req.Session, req.Interaction, embed)
}
