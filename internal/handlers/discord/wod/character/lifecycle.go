package character

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	domainCharacter "github.com/KirkDiggler/chronicle-bot-discord/internal/domain/character"
	"github.com/KirkDiggler/chronicle-bot-discord/internal/handlers/discord/wod/helpers"
	"github.com/KirkDiggler/chronicle-bot-discord/internal/services"
)

// LifecycleAction names a character status transition a player or
// storyteller can trigger from Discord
type LifecycleAction string

const (
	ActionSubmit   LifecycleAction = "submit"
	ActionApprove  LifecycleAction = "approve"
	ActionRetire   LifecycleAction = "retire"
	ActionDeceased LifecycleAction = "deceased"
)

type LifecycleRequest struct {
	Session       *discordgo.Session
	Interaction   *discordgo.InteractionCreate
	Action        LifecycleAction
	CharacterName string
	// OwnerID targets another player's character, storyteller actions only
	OwnerID string
}

// LifecycleHandler routes status transitions to the character service
type LifecycleHandler struct {
	services *services.Provider
}

func NewLifecycleHandler(services *services.Provider) *LifecycleHandler {
	return &LifecycleHandler{
		services: services,
	}
}

func (h *LifecycleHandler) Handle(req *LifecycleRequest) error {
	if err := helpers.DeferResponse(req.Session, req.Interaction); err != nil {
		return err
	}

	ctx := context.Background()
	userID := helpers.UserID(req.Interaction)

	ownerID := userID
	if req.OwnerID != "" {
		ownerID = req.OwnerID
	}

	char, err := helpers.FindCharacter(ctx, h.services, req.Interaction.GuildID, ownerID, req.CharacterName)
	if err != nil {
		return helpers.ErrorResponse(req.Session, req.Interaction, "%v", err)
	}

	var updated *domainCharacter.Character
	var verb string
	switch req.Action {
	case ActionSubmit:
		updated, err = h.services.CharacterService.Submit(ctx, char.ID, userID)
		verb = "submitted for review"
	case ActionApprove:
		updated, err = h.services.CharacterService.ApproveCharacter(ctx, char.ID, userID)
		verb = "approved for play"
	case ActionRetire:
		updated, err = h.services.CharacterService.Retire(ctx, char.ID, userID)
		verb = "retired"
	case ActionDeceased:
		updated, err = h.services.CharacterService.MarkDeceased(ctx, char.ID, userID)
		verb = "marked deceased"
	default:
		return helpers.ErrorResponse(req.Session, req.Interaction, "Unknown action '%s'.", req.Action)
	}
	if err != nil {
		return helpers.ErrorResponse(req.Session, req.Interaction, "Failed: %v", err)
	}

	return helpers.EditResponse(req.Session, req.Interaction,
		fmt.Sprintf("📜 **%s** has been %s.", updated.Name, verb))
}
