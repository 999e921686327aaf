package discord

import (
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"

	"github.com/KirkDiggler/chronicle-bot-discord/internal/handlers/discord/wod/advancement"
	"github.com/KirkDiggler/chronicle-bot-discord/internal/handlers/discord/wod/character"
	"github.com/KirkDiggler/chronicle-bot-discord/internal/handlers/discord/wod/chronicle"
	"github.com/KirkDiggler/chronicle-bot-discord/internal/handlers/discord/wod/roll"
	"github.com/KirkDiggler/chronicle-bot-discord/internal/services"
)

// Handler handles all Discord interactions
type Handler struct {
	ServiceProvider *services.Provider
	defaultFreebies int

	// Chronicle handlers
	chronicleCreateHandler  *chronicle.CreateHandler
	chronicleJoinHandler    *chronicle.JoinHandler
	chroniclePendingHandler *chronicle.PendingHandler

	// Character handlers
	characterCreateHandler    *character.CreateHandler
	characterListHandler      *character.ListHandler
	characterSheetHandler     *character.SheetHandler
	characterAssignHandler    *character.AssignHandler
	characterLifecycleHandler *character.LifecycleHandler
	characterGrantHandler     *character.GrantHandler

	// Advancement handlers
	spendHandler   *advancement.SpendHandler
	optionsHandler *advancement.OptionsHandler
	historyHandler *advancement.HistoryHandler
	reviewHandler  *advancement.ReviewHandler

	// Dice handler
	rollHandler *roll.RollHandler
}

// HandlerConfig holds configuration for the Discord handler
type HandlerConfig struct {
	ServiceProvider *services.Provider
	// DefaultFreebies seeds new characters' freebie balance
	DefaultFreebies int
}

// NewHandler creates a new Discord handler
func NewHandler(cfg *HandlerConfig) *Handler {
	return &Handler{
		ServiceProvider: cfg.ServiceProvider,
		defaultFreebies: cfg.DefaultFreebies,

		chronicleCreateHandler:  chronicle.NewCreateHandler(cfg.ServiceProvider),
		chronicleJoinHandler:    chronicle.NewJoinHandler(cfg.ServiceProvider),
		chroniclePendingHandler: chronicle.NewPendingHandler(cfg.ServiceProvider),

		characterCreateHandler:    character.NewCreateHandler(cfg.ServiceProvider),
		characterListHandler:      character.NewListHandler(cfg.ServiceProvider),
		characterSheetHandler:     character.NewSheetHandler(cfg.ServiceProvider),
		characterAssignHandler:    character.NewAssignHandler(cfg.ServiceProvider),
		characterLifecycleHandler: character.NewLifecycleHandler(cfg.ServiceProvider),
		characterGrantHandler:     character.NewGrantHandler(cfg.ServiceProvider),

		spendHandler:   advancement.NewSpendHandler(cfg.ServiceProvider),
		optionsHandler: advancement.NewOptionsHandler(cfg.ServiceProvider),
		historyHandler: advancement.NewHistoryHandler(cfg.ServiceProvider),
		reviewHandler:  advancement.NewReviewHandler(cfg.ServiceProvider),

		rollHandler: roll.NewRollHandler(&roll.RollHandlerConfig{}),
	}
}

// RegisterCommands registers all slash commands with Discord
func (h *Handler) RegisterCommands(s *discordgo.Session, guildID string) error {
	characterNameOption := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "character",
		Description: "Character name (optional if you have one character)",
	}
	poolOption := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "pool",
		Description: "Point pool",
		Required:    true,
		Choices: []*discordgo.ApplicationCommandOptionChoice{
			{Name: "Experience", Value: "experience"},
			{Name: "Freebies", Value: "freebies"},
		},
	}

	commands := []*discordgo.ApplicationCommand{
		{
			Name:        "wod",
			Description: "World of Darkness chronicle commands",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "chronicle",
					Description: "Chronicle management commands",
					Type:        discordgo.ApplicationCommandOptionSubCommandGroup,
					Options: []*discordgo.ApplicationCommandOption{
						{
							Name:        "create",
							Description: "Start a new chronicle, you become its storyteller",
							Type:        discordgo.ApplicationCommandOptionSubCommand,
							Options: []*discordgo.ApplicationCommandOption{
								{
									Type:        discordgo.ApplicationCommandOptionString,
									Name:        "name",
									Description: "Chronicle name",
									Required:    true,
								},
								{
									Type:        discordgo.ApplicationCommandOptionString,
									Name:        "setting",
									Description: "Setting blurb (optional)",
								},
							},
						},
						{
							Name:        "join",
							Description: "Join this server's chronicle as a player",
							Type:        discordgo.ApplicationCommandOptionSubCommand,
						},
						{
							Name:        "pending",
							Description: "List freebie spends waiting for review (storyteller)",
							Type:        discordgo.ApplicationCommandOptionSubCommand,
						},
					},
				},
				{
					Name:        "character",
					Description: "Character management commands",
					Type:        discordgo.ApplicationCommandOptionSubCommandGroup,
					Options: []*discordgo.ApplicationCommandOption{
						{
							Name:        "create",
							Description: "Create a new character",
							Type:        discordgo.ApplicationCommandOptionSubCommand,
							Options: []*discordgo.ApplicationCommandOption{
								{
									Type:        discordgo.ApplicationCommandOptionString,
									Name:        "name",
									Description: "Character name",
									Required:    true,
								},
								{
									Type:        discordgo.ApplicationCommandOptionString,
									Name:        "archetype",
									Description: "Game line",
									Required:    true,
									Choices: []*discordgo.ApplicationCommandOptionChoice{
										{Name: "Mortal", Value: "mortal"},
										{Name: "Mage", Value: "mage"},
										{Name: "Vampire", Value: "vampire"},
										{Name: "Werewolf", Value: "werewolf"},
										{Name: "Changeling", Value: "changeling"},
										{Name: "Wraith", Value: "wraith"},
										{Name: "Demon", Value: "demon"},
										{Name: "Hunter", Value: "hunter"},
										{Name: "Mummy", Value: "mummy"},
									},
								},
							},
						},
						{
							Name:        "list",
							Description: "List all your characters",
							Type:        discordgo.ApplicationCommandOptionSubCommand,
						},
						{
							Name:        "sheet",
							Description: "Show a character sheet",
							Type:        discordgo.ApplicationCommandOptionSubCommand,
							Options:     []*discordgo.ApplicationCommandOption{characterNameOption},
						},
						{
							Name:        "assign",
							Description: "Set a trait rating during creation",
							Type:        discordgo.ApplicationCommandOptionSubCommand,
							Options: []*discordgo.ApplicationCommandOption{
								{
									Type:        discordgo.ApplicationCommandOptionString,
									Name:        "trait",
									Description: "Trait name",
									Required:    true,
								},
								{
									Type:        discordgo.ApplicationCommandOptionInteger,
									Name:        "rating",
									Description: "New rating",
									Required:    true,
								},
								characterNameOption,
							},
						},
						{
							Name:        "submit",
							Description: "Submit your character for storyteller review",
							Type:        discordgo.ApplicationCommandOptionSubCommand,
							Options:     []*discordgo.ApplicationCommandOption{characterNameOption},
						},
						{
							Name:        "approve",
							Description: "Approve a submitted character (storyteller)",
							Type:        discordgo.ApplicationCommandOptionSubCommand,
							Options: []*discordgo.ApplicationCommandOption{
								{
									Type:        discordgo.ApplicationCommandOptionUser,
									Name:        "player",
									Description: "The character's player",
									Required:    true,
								},
								characterNameOption,
							},
						},
						{
							Name:        "retire",
							Description: "Retire a character",
							Type:        discordgo.ApplicationCommandOptionSubCommand,
							Options:     []*discordgo.ApplicationCommandOption{characterNameOption},
						},
						{
							Name:        "deceased",
							Description: "Mark a character deceased (storyteller)",
							Type:        discordgo.ApplicationCommandOptionSubCommand,
							Options: []*discordgo.ApplicationCommandOption{
								{
									Type:        discordgo.ApplicationCommandOptionUser,
									Name:        "player",
									Description: "The character's player",
									Required:    true,
								},
								characterNameOption,
							},
						},
						{
							Name:        "grant",
							Description: "Grant points to a character (storyteller)",
							Type:        discordgo.ApplicationCommandOptionSubCommand,
							Options: []*discordgo.ApplicationCommandOption{
								{
									Type:        discordgo.ApplicationCommandOptionUser,
									Name:        "player",
									Description: "The character's player",
									Required:    true,
								},
								poolOption,
								{
									Type:        discordgo.ApplicationCommandOptionInteger,
									Name:        "amount",
									Description: "Points to grant",
									Required:    true,
								},
								characterNameOption,
								{
									Type:        discordgo.ApplicationCommandOptionString,
									Name:        "note",
									Description: "Why (optional)",
								},
							},
						},
					},
				},
				{
					Name:        "spend",
					Description: "Point spending commands",
					Type:        discordgo.ApplicationCommandOptionSubCommandGroup,
					Options: []*discordgo.ApplicationCommandOption{
						{
							Name:        "options",
							Description: "Show what you can spend points on",
							Type:        discordgo.ApplicationCommandOptionSubCommand,
							Options: []*discordgo.ApplicationCommandOption{
								poolOption,
								characterNameOption,
							},
						},
						{
							Name:        "buy",
							Description: "Spend points to raise a trait",
							Type:        discordgo.ApplicationCommandOptionSubCommand,
							Options: []*discordgo.ApplicationCommandOption{
								poolOption,
								{
									Type:        discordgo.ApplicationCommandOptionString,
									Name:        "category",
									Description: "Trait category",
									Required:    true,
								},
								{
									Type:        discordgo.ApplicationCommandOptionString,
									Name:        "trait",
									Description: "Trait to raise (not needed for Willpower, Arete, Image)",
								},
								characterNameOption,
								{
									Type:        discordgo.ApplicationCommandOptionString,
									Name:        "note",
									Description: "Note for the log (optional)",
								},
							},
						},
						{
							Name:        "history",
							Description: "Show a character's experience log",
							Type:        discordgo.ApplicationCommandOptionSubCommand,
							Options:     []*discordgo.ApplicationCommandOption{characterNameOption},
						},
						{
							Name:        "approve",
							Description: "Approve a pending freebie spend (storyteller)",
							Type:        discordgo.ApplicationCommandOptionSubCommand,
							Options: []*discordgo.ApplicationCommandOption{
								{
									Type:        discordgo.ApplicationCommandOptionString,
									Name:        "request",
									Description: "Request ID from /wod chronicle pending",
									Required:    true,
								},
							},
						},
						{
							Name:        "deny",
							Description: "Deny a pending freebie spend (storyteller)",
							Type:        discordgo.ApplicationCommandOptionSubCommand,
							Options: []*discordgo.ApplicationCommandOption{
								{
									Type:        discordgo.ApplicationCommandOptionString,
									Name:        "request",
									Description: "Request ID from /wod chronicle pending",
									Required:    true,
								},
							},
						},
					},
				},
				{
					Name:        "roll",
					Description: "Roll a d10 dice pool",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "pool",
							Description: "Number of dice",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "difficulty",
							Description: "Difficulty (default 6)",
						},
					},
				},
			},
		},
	}

	for _, cmd := range commands {
		_, err := s.ApplicationCommandCreate(s.State.User.ID, guildID, cmd)
		if err != nil {
			return fmt.Errorf("failed to create command '%s': %w", cmd.Name, err)
		}
	}

	return nil
}

// HandleInteraction routes Discord interactions to their handlers
func (h *Handler) HandleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type == discordgo.InteractionApplicationCommand {
		h.handleCommand(s, i)
	}
}

// handleCommand handles slash command interactions
func (h *Handler) handleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	data := i.ApplicationCommandData()

	if data.Name != "wod" {
		return
	}
	if len(data.Options) == 0 {
		return
	}

	top := data.Options[0]

	// Direct subcommands
	if top.Type == discordgo.ApplicationCommandOptionSubCommand {
		if top.Name == "roll" {
			req := &roll.RollRequest{
				Session:     s,
				Interaction: i,
			}
			for _, opt := range top.Options {
				switch opt.Name {
				case "pool":
					req.Pool = int(opt.IntValue())
				case "difficulty":
					req.Difficulty = int(opt.IntValue())
				}
			}
			if err := h.rollHandler.Handle(req); err != nil {
				log.Printf("Error handling roll: %v", err)
			}
		}
		return
	}

	if len(top.Options) == 0 {
		return
	}
	sub := top.Options[0]

	switch top.Name {
	case "chronicle":
		h.handleChronicle(s, i, sub)
	case "character":
		h.handleCharacter(s, i, sub)
	case "spend":
		h.handleSpend(s, i, sub)
	}
}

func (h *Handler) handleChronicle(s *discordgo.Session, i *discordgo.InteractionCreate, sub *discordgo.ApplicationCommandInteractionDataOption) {
	switch sub.Name {
	case "create":
		req := &chronicle.CreateRequest{
			Session:     s,
			Interaction: i,
		}
		for _, opt := range sub.Options {
			switch opt.Name {
			case "name":
				req.Name = opt.StringValue()
			case "setting":
				req.Setting = opt.StringValue()
			}
		}
		if err := h.chronicleCreateHandler.Handle(req); err != nil {
			log.Printf("Error handling chronicle create: %v", err)
		}
	case "join":
		req := &chronicle.JoinRequest{
			Session:     s,
			Interaction: i,
		}
		if err := h.chronicleJoinHandler.Handle(req); err != nil {
			log.Printf("Error handling chronicle join: %v", err)
		}
	case "pending":
		req := &chronicle.PendingRequest{
			Session:     s,
			Interaction: i,
		}
		if err := h.chroniclePendingHandler.Handle(req); err != nil {
			log.Printf("Error handling chronicle pending: %v", err)
		}
	}
}

func (h *Handler) handleCharacter(s *discordgo.Session, i *discordgo.InteractionCreate, sub *discordgo.ApplicationCommandInteractionDataOption) {
	switch sub.Name {
	case "create":
		req := &character.CreateRequest{
			Session:          s,
			Interaction:      i,
			StartingFreebies: h.defaultFreebies,
		}
		for _, opt := range sub.Options {
			switch opt.Name {
			case "name":
				req.Name = opt.StringValue()
			case "archetype":
				req.Archetype = opt.StringValue()
			}
		}
		if err := h.characterCreateHandler.Handle(req); err != nil {
			log.Printf("Error handling character create: %v", err)
		}
	case "list":
		req := &character.ListRequest{
			Session:     s,
			Interaction: i,
		}
		if err := h.characterListHandler.Handle(req); err != nil {
			log.Printf("Error handling character list: %v", err)
		}
	case "sheet":
		req := &character.SheetRequest{
			Session:       s,
			Interaction:   i,
			CharacterName: stringOption(sub, "character"),
		}
		if err := h.characterSheetHandler.Handle(req); err != nil {
			log.Printf("Error handling character sheet: %v", err)
		}
	case "assign":
		req := &character.AssignRequest{
			Session:       s,
			Interaction:   i,
			CharacterName: stringOption(sub, "character"),
		}
		for _, opt := range sub.Options {
			switch opt.Name {
			case "trait":
				req.TraitName = opt.StringValue()
			case "rating":
				req.Rating = int(opt.IntValue())
			}
		}
		if err := h.characterAssignHandler.Handle(req); err != nil {
			log.Printf("Error handling character assign: %v", err)
		}
	case "submit", "approve", "retire", "deceased":
		req := &character.LifecycleRequest{
			Session:       s,
			Interaction:   i,
			Action:        character.LifecycleAction(sub.Name),
			CharacterName: stringOption(sub, "character"),
			OwnerID:       userOption(s, sub, "player"),
		}
		if err := h.characterLifecycleHandler.Handle(req); err != nil {
			log.Printf("Error handling character %s: %v", sub.Name, err)
		}
	case "grant":
		req := &character.GrantRequest{
			Session:       s,
			Interaction:   i,
			OwnerID:       userOption(s, sub, "player"),
			CharacterName: stringOption(sub, "character"),
			Pool:          stringOption(sub, "pool"),
			Note:          stringOption(sub, "note"),
		}
		for _, opt := range sub.Options {
			if opt.Name == "amount" {
				req.Amount = int(opt.IntValue())
			}
		}
		if err := h.characterGrantHandler.Handle(req); err != nil {
			log.Printf("Error handling character grant: %v", err)
		}
	}
}

func (h *Handler) handleSpend(s *discordgo.Session, i *discordgo.InteractionCreate, sub *discordgo.ApplicationCommandInteractionDataOption) {
	switch sub.Name {
	case "options":
		req := &advancement.OptionsRequest{
			Session:       s,
			Interaction:   i,
			Pool:          stringOption(sub, "pool"),
			CharacterName: stringOption(sub, "character"),
		}
		if err := h.optionsHandler.Handle(req); err != nil {
			log.Printf("Error handling spend options: %v", err)
		}
	case "buy":
		req := &advancement.SpendRequest{
			Session:       s,
			Interaction:   i,
			Pool:          stringOption(sub, "pool"),
			Category:      stringOption(sub, "category"),
			Example:       stringOption(sub, "trait"),
			CharacterName: stringOption(sub, "character"),
			Note:          stringOption(sub, "note"),
		}
		if err := h.spendHandler.Handle(req); err != nil {
			log.Printf("Error handling spend buy: %v", err)
		}
	case "history":
		req := &advancement.HistoryRequest{
			Session:       s,
			Interaction:   i,
			CharacterName: stringOption(sub, "character"),
		}
		if err := h.historyHandler.Handle(req); err != nil {
			log.Printf("Error handling spend history: %v", err)
		}
	case "approve", "deny":
		req := &advancement.ReviewRequest{
			Session:     s,
			Interaction: i,
			RequestID:   stringOption(sub, "request"),
			Approve:     sub.Name == "approve",
		}
		if err := h.reviewHandler.Handle(req); err != nil {
			log.Printf("Error handling spend %s: %v", sub.Name, err)
		}
	}
}

func stringOption(sub *discordgo.ApplicationCommandInteractionDataOption, name string) string {
	for _, opt := range sub.Options {
		if opt.Name == name {
			return opt.StringValue()
		}
	}
	return ""
}

func userOption(s *discordgo.Session, sub *discordgo.ApplicationCommandInteractionDataOption, name string) string {
	for _, opt := range sub.Options {
		if opt.Name == name {
			if user := opt.UserValue(s); user != nil {
				return user.ID
			}
		}
	}
	return ""
}
