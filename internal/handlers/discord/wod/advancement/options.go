package advancement

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/KirkDiggler/chronicle-bot-discord/internal/domain/shared"
	"github.com/KirkDiggler/chronicle-bot-discord/internal/handlers/discord/wod/helpers"
	"github.com/KirkDiggler/chronicle-bot-discord/internal/services"
)

type OptionsRequest struct {
	Session       *discordgo.Session
	Interaction   *discordgo.InteractionCreate
	CharacterName string
	Pool          string
}

// OptionsHandler shows what a character can spend points on right now
type OptionsHandler struct {
	services *services.Provider
}

func NewOptionsHandler(services *services.Provider) *OptionsHandler {
	return &OptionsHandler{
		services: services,
	}
}

func (h *OptionsHandler) Handle(req *OptionsRequest) error {
	if err := helpers.DeferResponse(req.Session, req.Interaction); err != nil {
		return err
	}

	ctx := context.Background()
	pool := shared.PointPool(req.Pool)

	char, err := helpers.FindCharacter(ctx, h.services, req.Interaction.GuildID, helpers.UserID(req.Interaction), req.CharacterName)
	if err != nil {
		return helpers.ErrorResponse(req.Session, req.Interaction, "%v", err)
	}

	output, err := h.services.AdvancementService.ListOptions(ctx, char.ID, pool)
	if err != nil {
		return helpers.ErrorResponse(req.Session, req.Interaction, "Failed to list options: %v", err)
	}
	if len(output.Offers) == 0 {
		return helpers.EditResponse(req.Session, req.Interaction,
			fmt.Sprintf("**%s** has nothing to spend %s on right now (balance: %d).", char.Name, pool, char.Balance(pool)))
	}

	var sb strings.Builder
	for _, offer := range output.Offers {
		examples := offer.Examples
		suffix := ""
		if len(examples) > 6 {
			suffix = fmt.Sprintf(", … %d more", len(examples)-6)
			examples = examples[:6]
		}
		if len(examples) == 0 {
			fmt.Fprintf(&sb, "• **%s** (name your own)\n", offer.Category.Display())
			continue
		}
		fmt.Fprintf(&sb, "• **%s**: %s%s\n", offer.Category.Display(), strings.Join(examples, ", "), suffix)
	}

	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("💠 %s can spend %s on:", char.Name, pool),
		Description: sb.String(),
		Color:       0x3498db,
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Balance: %d %s", char.Balance(pool), pool),
		},
	}

	return helpers.EditResponseEmbed(req.Session, req.Interaction, embed)
}
