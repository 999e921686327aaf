package character

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/bwmarrin/discordgo"

	domainCharacter "github.com/KirkDiggler/chronicle-bot-discord/internal/domain/character"
	"github.com/KirkDiggler/chronicle-bot-discord/internal/domain/rulebook"
	"github.com/KirkDiggler/chronicle-bot-discord/internal/handlers/discord/wod/helpers"
	"github.com/KirkDiggler/chronicle-bot-discord/internal/services"
)

type SheetRequest struct {
	Session       *discordgo.Session
	Interaction   *discordgo.InteractionCreate
	CharacterName string
}

type SheetHandler struct {
	services *services.Provider
}

func NewSheetHandler(services *services.Provider) *SheetHandler {
	return &SheetHandler{
		services: services,
	}
}

func (h *SheetHandler) Handle(req *SheetRequest) error {
	if err := helpers.DeferResponse(req.Session, req.Interaction); err != nil {
		return err
	}

	char, err := helpers.FindCharacter(context.Background(), h.services,
		req.Interaction.GuildID, helpers.UserID(req.Interaction), req.CharacterName)
	if err != nil {
		return helpers.ErrorResponse(req.Session, req.Interaction, "%v", err)
	}

	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("%s (%s)", char.Name, char.Archetype),
		Color: 0x9b59b6,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "Status",
				Value:  string(char.Status),
				Inline: true,
			},
			{
				Name:   "Points",
				Value:  fmt.Sprintf("XP: %d\nFreebies: %d", char.XP, char.Freebies),
				Inline: true,
			},
		},
	}

	sections := []struct {
		name  string
		names []string
	}{
		{"Attributes", rulebook.AttributeNames},
		{"Abilities", rulebook.AbilityNames},
		{"Backgrounds", rulebook.BackgroundNames},
		{"Spheres", rulebook.SphereNames},
		{"Disciplines", rulebook.DisciplineNames},
		{"Gifts", rulebook.GiftNames},
	}
	for _, section := range sections {
		if value := ratedTraits(char, section.names); value != "" {
			embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
				Name:   section.name,
				Value:  value,
				Inline: true,
			})
		}
	}

	if extras := specialTraits(char); extras != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "Other Traits",
			Value:  extras,
			Inline: true,
		})
	}

	return helpers.EditResponseEmbed(req.Session, req.Interaction, embed)
}

func ratedTraits(char *domainCharacter.Character, names []string) string {
	var sb strings.Builder
	for _, name := range names {
		if rating := char.TraitRating(name); rating > 0 {
			fmt.Fprintf(&sb, "%s %s\n", name, dots(rating))
		}
	}
	return sb.String()
}

// specialTraits gathers singletons, rotes, tenets and anything else the
// section lists above do not cover
func specialTraits(char *domainCharacter.Character) string {
	var names []string
	for _, name := range []string{rulebook.TraitWillpower, rulebook.TraitArete, rulebook.TraitImage, rulebook.TraitRotePoints} {
		if char.TraitRating(name) > 0 {
			names = append(names, name)
		}
	}
	var prefixed []string
	for name, rating := range char.Traits {
		if rating > 0 && (strings.HasPrefix(name, rulebook.RotePrefix) || strings.HasPrefix(name, rulebook.TenetPrefix)) {
			prefixed = append(prefixed, name)
		}
	}
	sort.Strings(prefixed)
	names = append(names, prefixed...)

	var sb strings.Builder
	for _, name := range names {
		fmt.Fprintf(&sb, "%s %s\n", name, dots(char.TraitRating(name)))
	}
	return sb.String()
}

func dots(rating int) string {
	if rating > 10 {
		return fmt.Sprintf("%d", rating)
	}
	return strings.Repeat("●", rating)
}
