package chronicle

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/KirkDiggler/chronicle-bot-discord/internal/handlers/discord/wod/helpers"
	"github.com/KirkDiggler/chronicle-bot-discord/internal/services"
)

type JoinRequest struct {
	Session     *discordgo.Session
	Interaction *discordgo.InteractionCreate
}

type JoinHandler struct {
	services *services.Provider
}

func NewJoinHandler(services *services.Provider) *JoinHandler {
	return &JoinHandler{
		services: services,
	}
}

func (h *JoinHandler) Handle(req *JoinRequest) error {
	if err := helpers.DeferResponse(req.Session, req.Interaction); err != nil {
		return err
	}

	userID := helpers.UserID(req.Interaction)
	if _, err := h.services.AccountService.EnsureProfile(context.Background(), userID, helpers.Username(req.Interaction)); err != nil {
		return helpers.ErrorResponse(req.Session, req.Interaction, "Failed to load your profile: %v", err)
	}

	chron, err := h.services.ChronicleService.Join(context.Background(), req.Interaction.GuildID, userID)
	if err != nil {
		return helpers.ErrorResponse(req.Session, req.Interaction, "Failed to join: %v", err)
	}

	return helpers.EditResponse(req.Session, req.Interaction,
		fmt.Sprintf("🌙 <@%s> has joined **%s**! Create a character with `/wod character create`.", userID, chron.Name))
}
