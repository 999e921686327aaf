package account

import (
	"context"
	"strings"
	"time"

	"github.com/KirkDiggler/chronicle-bot-discord/internal/domain/player"
	apperr "github.com/KirkDiggler/chronicle-bot-discord/internal/errors"
	profileRepo "github.com/KirkDiggler/chronicle-bot-discord/internal/repositories/profiles"
)

// Service defines the account interface
type Service interface {
	// EnsureProfile fetches the player's profile, creating it on first
	// contact and refreshing a stale username
	EnsureProfile(ctx context.Context, userID, username string) (*player.Profile, error)

	// GetProfile retrieves a profile by user ID
	GetProfile(ctx context.Context, userID string) (*player.Profile, error)
}

// service implements the Service interface
type service struct {
	profileRepo profileRepo.Repository
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	ProfileRepository profileRepo.Repository // Required
}

// NewService creates a new account service
func NewService(cfg *ServiceConfig) Service {
	if cfg.ProfileRepository == nil {
		panic("profile repository is required")
	}

	return &service{profileRepo: cfg.ProfileRepository}
}

// EnsureProfile fetches or lazily creates a player profile
func (s *service) EnsureProfile(ctx context.Context, userID, username string) (*player.Profile, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, apperr.InvalidArgument("user ID is required")
	}

	profile, err := s.profileRepo.Get(ctx, userID)
	if err == nil {
		if username != "" && profile.Username != username {
			profile.Username = username
			if updateErr := s.profileRepo.Update(ctx, profile); updateErr != nil {
				return nil, apperr.Wrapf(updateErr, "failed to refresh profile '%s'", userID)
			}
		}
		return profile, nil
	}
	if !apperr.IsNotFound(err) {
		return nil, err
	}

	profile = &player.Profile{
		UserID:    userID,
		Username:  username,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	if createErr := s.profileRepo.Create(ctx, profile); createErr != nil {
		// Lost a race with another handler; the profile exists now
		if apperr.IsAlreadyExists(createErr) {
			return s.profileRepo.Get(ctx, userID)
		}
		return nil, apperr.Wrapf(createErr, "failed to create profile '%s'", userID)
	}

	return profile, nil
}

// GetProfile retrieves a profile by user ID
func (s *service) GetProfile(ctx context.Context, userID string) (*player.Profile, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, apperr.InvalidArgument("user ID is required")
	}
	return s.profileRepo.Get(ctx, userID)
}
