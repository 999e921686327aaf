package roll

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/KirkDiggler/chronicle-bot-discord/internal/dice"
	"github.com/KirkDiggler/chronicle-bot-discord/internal/handlers/discord/wod/helpers"
)

type RollRequest struct {
	Session     *discordgo.Session
	Interaction *discordgo.InteractionCreate
	Pool        int
	Difficulty  int
}

// RollHandler rolls a d10 dice pool
type RollHandler struct {
	roller dice.Roller
}

type RollHandlerConfig struct {
	Roller dice.Roller // Optional, defaults to the random roller
}

func NewRollHandler(cfg *RollHandlerConfig) *RollHandler {
	roller := cfg.Roller
	if roller == nil {
		roller = dice.NewRandomRoller()
	}
	return &RollHandler{roller: roller}
}

func (h *RollHandler) Handle(req *RollRequest) error {
	if err := helpers.DeferResponse(req.Session, req.Interaction); err != nil {
		return err
	}

	difficulty := req.Difficulty
	if difficulty == 0 {
		difficulty = 6
	}

	result, err := h.roller.RollPool(req.Pool, difficulty)
	if err != nil {
		return helpers.ErrorResponse(req.Session, req.Interaction, "Roll failed: %v", err)
	}

	return helpers.EditResponse(req.Session, req.Interaction,
		fmt.Sprintf("🎲 <@%s> rolls %d dice: %s", helpers.UserID(req.Interaction), req.Pool, result))
}
