package chronicle

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/KirkDiggler/chronicle-bot-discord/internal/handlers/discord/wod/helpers"
	"github.com/KirkDiggler/chronicle-bot-discord/internal/services"
)

type PendingRequest struct {
	Session     *discordgo.Session
	Interaction *discordgo.InteractionCreate
}

// PendingHandler lists the freebie spend requests awaiting the storyteller
type PendingHandler struct {
	services *services.Provider
}

func NewPendingHandler(services *services.Provider) *PendingHandler {
	return &PendingHandler{
		services: services,
	}
}

func (h *PendingHandler) Handle(req *PendingRequest) error {
	if err := helpers.DeferResponse(req.Session, req.Interaction); err != nil {
		return err
	}

	ctx := context.Background()
	userID := helpers.UserID(req.Interaction)

	chron, err := h.services.ChronicleService.GetByGuild(ctx, req.Interaction.GuildID)
	if err != nil {
		return helpers.ErrorResponse(req.Session, req.Interaction, "No chronicle here: %v", err)
	}
	if !chron.IsStoryteller(userID) {
		return helpers.ErrorResponse(req.Session, req.Interaction, "Only the storyteller may review spends.")
	}

	pending, err := h.services.AdvancementService.PendingRequests(ctx, chron.ID)
	if err != nil {
		return helpers.ErrorResponse(req.Session, req.Interaction, "Failed to list pending spends: %v", err)
	}
	if len(pending) == 0 {
		return helpers.EditResponse(req.Session, req.Interaction, "✨ No freebie spends waiting for review.")
	}

	var sb strings.Builder
	for _, r := range pending {
		char, err := h.services.CharacterService.GetCharacter(ctx, r.CharacterID)
		name := r.CharacterID
		if err == nil {
			name = char.Name
		}
		fmt.Fprintf(&sb, "• **%s**: %s → %d (%d freebies)\n  `%s`\n", name, r.TraitName, r.NewRating, r.Cost, r.ID)
	}

	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("⏳ Pending Freebie Spends in %s", chron.Name),
		Description: sb.String(),
		Color:       0xf39c12,
		Footer: &discordgo.MessageEmbedFooter{
			Text: "Resolve with /wod spend approve or /wod spend deny",
		},
	}

	return helpers.EditResponseEmbed(req.Session, req.Interaction, embed)
}
