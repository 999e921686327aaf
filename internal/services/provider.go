package services

import (
	"github.com/KirkDiggler/chronicle-bot-discord/internal/repositories/advancements"
	"github.com/KirkDiggler/chronicle-bot-discord/internal/repositories/characters"
	"github.com/KirkDiggler/chronicle-bot-discord/internal/repositories/chronicles"
	"github.com/KirkDiggler/chronicle-bot-discord/internal/repositories/profiles"
	accountService "github.com/KirkDiggler/chronicle-bot-discord/internal/services/account"
	advancementService "github.com/KirkDiggler/chronicle-bot-discord/internal/services/advancement"
	characterService "github.com/KirkDiggler/chronicle-bot-discord/internal/services/character"
	chronicleService "github.com/KirkDiggler/chronicle-bot-discord/internal/services/chronicle"
)

// Provider holds all service instances
type Provider struct {
	AccountService     accountService.Service
	ChronicleService   chronicleService.Service
	CharacterService   characterService.Service
	AdvancementService advancementService.Service
}

// ProviderConfig holds configuration for creating services
type ProviderConfig struct {
	CharacterRepository   characters.Repository
	AdvancementRepository advancements.Repository
	ChronicleRepository   chronicles.Repository
	ProfileRepository     profiles.Repository
}

// NewProvider creates a new service provider with all services initialized
func NewProvider(cfg *ProviderConfig) *Provider {
	// Use in-memory repositories if none provided
	charRepo := cfg.CharacterRepository
	if charRepo == nil {
		charRepo = characters.NewInMemoryRepository()
	}

	advRepo := cfg.AdvancementRepository
	if advRepo == nil {
		advRepo = advancements.NewInMemoryRepository()
	}

	chronRepo := cfg.ChronicleRepository
	if chronRepo == nil {
		chronRepo = chronicles.NewInMemoryRepository()
	}

	profRepo := cfg.ProfileRepository
	if profRepo == nil {
		profRepo = profiles.NewInMemoryRepository()
	}

	acctService := accountService.NewService(&accountService.ServiceConfig{
		ProfileRepository: profRepo,
	})

	chronService := chronicleService.NewService(&chronicleService.ServiceConfig{
		ChronicleRepository: chronRepo,
	})

	charService := characterService.NewService(&characterService.ServiceConfig{
		CharacterRepository: charRepo,
		ChronicleRepository: chronRepo,
	})

	advService := advancementService.NewService(&advancementService.ServiceConfig{
		CharacterRepository:   charRepo,
		AdvancementRepository: advRepo,
	})

	return &Provider{
		AccountService:     acctService,
		ChronicleService:   chronService,
		CharacterService:   charService,
		AdvancementService: advService,
	}
}
