package template

import (
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/jonny/ranobe-bot/internal/domain/model"
)

// CustomIDSelectBook identifies the book select menu in component interactions.
const CustomIDSelectBook = model.SelectBookCustomID

const (
	maxOptionLabel = 100
	maxOptions     = 25
)

// BuildBookSelect renders books as a single-row select menu. Option values
// are catalog ids so a selection can be resolved without any saved state.
func BuildBookSelect(books []model.Book) discordgo.ActionsRow {
	if len(books) > maxOptions {
		books = books[:maxOptions]
	}

	options := make([]discordgo.SelectMenuOption, 0, len(books))
	for _, b := range books {
		options = append(options, discordgo.SelectMenuOption{
			Label:       truncateRunes(b.DisplayTitle(), maxOptionLabel),
			Value:       model.OptionValue(b.ID),
			Description: "Language: " + languageLabel(b.Lang),
		})
	}

	return discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.SelectMenu{
				MenuType:    discordgo.StringSelectMenu,
				CustomID:    CustomIDSelectBook,
				Placeholder: "Choose a book",
				Options:     options,
			},
		},
	}
}

func languageLabel(lang string) string {
	if lang == "" {
		return "?"
	}
	return strings.ToUpper(lang)
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
