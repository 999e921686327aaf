package advancement

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/KirkDiggler/chronicle-bot-discord/internal/handlers/discord/wod/helpers"
	"github.com/KirkDiggler/chronicle-bot-discord/internal/services"
	advancementService "github.com/KirkDiggler/chronicle-bot-discord/internal/services/advancement"
)

type ReviewRequest struct {
	Session     *discordgo.Session
	Interaction *discordgo.InteractionCreate
	RequestID   string
	Approve     bool
}

// ReviewHandler resolves pending freebie spend requests, storyteller only
type ReviewHandler struct {
	services *services.Provider
}

func NewReviewHandler(services *services.Provider) *ReviewHandler {
	return &ReviewHandler{
		services: services,
	}
}

func (h *ReviewHandler) Handle(req *ReviewRequest) error {
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

	input := &advancementService.ReviewInput{
		RequestID:  req.RequestID,
		ApproverID: userID,
	}

	if req.Approve {
		output, err := h.services.AdvancementService.Approve(ctx, input)
		if err != nil {
			return helpers.ErrorResponse(req.Session, req.Interaction, "Approve failed: %v", err)
		}
		return helpers.EditResponse(req.Session, req.Interaction,
			fmt.Sprintf("✅ Approved: %s → %d (%d freebies).",
				output.Request.TraitName, output.Request.NewRating, output.Request.Cost))
	}

	output, err := h.services.AdvancementService.Deny(ctx, input)
	if err != nil {
		return helpers.ErrorResponse(req.Session, req.Interaction, "Deny failed: %v", err)
	}
	return helpers.EditResponse(req.Session, req.Interaction,
		fmt.Sprintf("🚫 Denied: %s reverted, %d freebies refunded to **%s**.",
			output.Request.TraitName, output.Request.Cost, output.Character.Name))
}
