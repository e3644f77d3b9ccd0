package template

import (
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/jonny/ranobe-bot/internal/domain/model"
)

const (
	// DescriptionLimit is the maximum rune length of a card description.
	DescriptionLimit = 400
	truncationMarker = "…"

	cardColor  = 0x0099ff
	footerText = "Powered by RanobeDB"
)

// Links holds the public URLs cards point to.
type Links struct {
	SiteURL  string
	ImageURL string
}

// DefaultLinks are RanobeDB's public site and image host.
var DefaultLinks = Links{
	SiteURL:  "https://ranobedb.org",
	ImageURL: "https://images.ranobedb.org",
}

// BuildBookEmbed renders one book as a Discord embed. It is deterministic.
func BuildBookEmbed(b model.Book, links Links) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       b.DisplayTitle(),
		URL:         strings.TrimRight(links.SiteURL, "/") + "/book/" + strconv.Itoa(b.ID),
		Color:       cardColor,
		Description: TruncateDescription(b.Description),
		Fields:      []*discordgo.MessageEmbedField{},
		Footer:      &discordgo.MessageEmbedFooter{Text: footerText},
	}

	if b.TitleOrig != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Original Title",
			Value: b.TitleOrig,
		})
	}
	if date := b.FormattedReleaseDate(); date != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "Release Date",
			Value:  date,
			Inline: true,
		})
	}
	if b.Lang != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "Language",
			Value:  strings.ToUpper(b.Lang),
			Inline: true,
		})
	}
	if b.ImageFilename != "" {
		embed.Image = &discordgo.MessageEmbedImage{
			URL: strings.TrimRight(links.ImageURL, "/") + "/" + b.ImageFilename,
		}
	}

	return embed
}

// TruncateDescription shortens s to DescriptionLimit runes, ending with a
// marker when anything was cut.
func TruncateDescription(s string) string {
	runes := []rune(s)
	if len(runes) <= DescriptionLimit {
		return s
	}
	keep := DescriptionLimit - len([]rune(truncationMarker))
	return string(runes[:keep]) + truncationMarker
}
