package helpers

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// DeferResponse acknowledges an interaction so the handler has time to work
func DeferResponse(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})
	if err != nil {
		return fmt.Errorf("failed to acknowledge interaction: %w", err)
	}
	return nil
}

// EditResponse replaces the deferred response with plain content
func EditResponse(s *discordgo.Session, i *discordgo.InteractionCreate, content string) error {
	_, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Content: &content,
	})
	return err
}

// EditResponseEmbed replaces the deferred response with an embed
func EditResponseEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) error {
	_, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Embeds: &[]*discordgo.MessageEmbed{embed},
	})
	return err
}

// ErrorResponse replaces the deferred response with an error message
func ErrorResponse(s *discordgo.Session, i *discordgo.InteractionCreate, format string, args ...any) error {
	return EditResponse(s, i, "❌ "+fmt.Sprintf(format, args...))
}

// UserID extracts the acting user's ID from guild or DM interactions
func UserID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}

// Username extracts the acting user's name
func Username(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.Username
	}
	if i.User != nil {
		return i.User.Username
	}
	return ""
}
