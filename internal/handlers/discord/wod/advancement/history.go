package advancement

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/KirkDiggler/chronicle-bot-discord/internal/handlers/discord/wod/helpers"
	"github.com/KirkDiggler/chronicle-bot-discord/internal/services"
)

type HistoryRequest struct {
	Session       *discordgo.Session
	Interaction   *discordgo.InteractionCreate
	CharacterName string
}

// HistoryHandler shows a character's experience spend log
type HistoryHandler struct {
	services *services.Provider
}

func NewHistoryHandler(services *services.Provider) *HistoryHandler {
	return &HistoryHandler{
		services: services,
	}
}

func (h *HistoryHandler) Handle(req *HistoryRequest) error {
	if err := helpers.DeferResponse(req.Session, req.Interaction); err != nil {
		return err
	}

	ctx := context.Background()

	char, err := helpers.FindCharacter(ctx, h.services, req.Interaction.GuildID, helpers.UserID(req.Interaction), req.CharacterName)
	if err != nil {
		return helpers.ErrorResponse(req.Session, req.Interaction, "%v", err)
	}

	records, err := h.services.AdvancementService.History(ctx, char.ID)
	if err != nil {
		return helpers.ErrorResponse(req.Session, req.Interaction, "Failed to load history: %v", err)
	}
	if len(records) == 0 {
		return helpers.EditResponse(req.Session, req.Interaction,
			fmt.Sprintf("**%s** has not spent any experience yet.", char.Name))
	}

	var sb strings.Builder
	total := 0
	for _, r := range records {
		total += r.Cost
		fmt.Fprintf(&sb, "• %s → %d (%d XP)", r.TraitName, r.NewRating, r.Cost)
		if r.Note != "" {
			fmt.Fprintf(&sb, " — %s", r.Note)
		}
		sb.WriteString("\n")
	}

	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("📖 %s's Experience Log", char.Name),
		Description: sb.String(),
		Color:       0x95a5a6,
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("%d XP spent, %d remaining", total, char.XP),
		},
	}

	return helpers.EditResponseEmbed(req.Session, req.Interaction, embed)
}
