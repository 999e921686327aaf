package character

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/KirkDiggler/chronicle-bot-discord/internal/handlers/discord/wod/helpers"
	"github.com/KirkDiggler/chronicle-bot-discord/internal/services"
)

type ListRequest struct {
	Session     *discordgo.Session
	Interaction *discordgo.InteractionCreate
}

type ListHandler struct {
	services *services.Provider
}

func NewListHandler(services *services.Provider) *ListHandler {
	return &ListHandler{
		services: services,
	}
}

func (h *ListHandler) Handle(req *ListRequest) error {
	if err := helpers.DeferResponse(req.Session, req.Interaction); err != nil {
		return err
	}

	userID := helpers.UserID(req.Interaction)
	chars, err := h.services.CharacterService.ListCharacters(context.Background(), userID)
	if err != nil {
		return helpers.ErrorResponse(req.Session, req.Interaction, "Failed to list characters: %v", err)
	}
	if len(chars) == 0 {
		return helpers.EditResponse(req.Session, req.Interaction, "You have no characters yet. Create one with `/wod character create`.")
	}

	var sb strings.Builder
	for _, c := range chars {
		fmt.Fprintf(&sb, "• **%s** (%s, %s) XP: %d, Freebies: %d\n", c.Name, c.Archetype, c.Status, c.XP, c.Freebies)
	}

	embed := &discordgo.MessageEmbed{
		Title:       "🎭 Your Characters",
		Description: sb.String(),
		Color:       0x3498db,
	}

	return helpers.EditResponseEmbed(req.Session, req.Interaction, embed)
}
