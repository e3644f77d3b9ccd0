package discord

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/jonny/ranobe-bot/internal/adapter/outbound/discord/template"
	"github.com/jonny/ranobe-bot/internal/domain/model"
	"github.com/jonny/ranobe-bot/internal/domain/port/outbound"
)

// ErrUnknownMode is returned for a follow-up without a valid mode.
var ErrUnknownMode = errors.New("unknown follow-up mode")

// Config holds Discord follow-up configuration.
type Config struct {
	BotToken      string
	ApplicationID string
	Timeout       time.Duration
	Links         template.Links
	// HTTPClient overrides the client used for REST calls. Its Timeout is
	// replaced by Config.Timeout when that is set.
	HTTPClient *http.Client
}

// Sender implements outbound.FollowUpSender via Discord's interaction webhooks.
type Sender struct {
	session *discordgo.Session
	appID   string
	links   template.Links
}

var _ outbound.FollowUpSender = (*Sender)(nil)

// NewSender creates a Sender authorised with the bot token. Rate-limit and
// 5xx retries inside discordgo are disabled: every follow-up is one attempt.
func NewSender(cfg Config) (*Sender, error) {
	session, err := discordgo.New("Bot " + cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}
	session.ShouldRetryOnRateLimit = false
	session.MaxRestRetries = 0

	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{}
	}
	if cfg.Timeout > 0 {
		client.Timeout = cfg.Timeout
	}
	session.Client = client

	links := cfg.Links
	if links == (template.Links{}) {
		links = template.DefaultLinks
	}

	return &Sender{
		session: session,
		appID:   cfg.ApplicationID,
		links:   links,
	}, nil
}

// Send delivers msg to the webhook addressed by the application id and token.
// FollowUpCreate posts a new message; FollowUpUpdateOriginal edits the
// message the interaction originated from.
func (s *Sender) Send(ctx context.Context, token string, msg model.FollowUp) error {
	target := &discordgo.Interaction{AppID: s.appID, Token: token}

	embeds := make([]*discordgo.MessageEmbed, 0, len(msg.Books))
	for _, b := range msg.Books {
		embeds = append(embeds, template.BuildBookEmbed(b, s.links))
	}

	components := []discordgo.MessageComponent{}
	if len(msg.Choices) > 0 {
		components = append(components, template.BuildBookSelect(msg.Choices))
	}

	switch msg.Mode {
	case model.FollowUpCreate:
		params := &discordgo.WebhookParams{
			Content: msg.Content,
			Embeds:  embeds,
		}
		// Without choices a new message carries no component rows.
		if len(components) > 0 {
			params.Components = components
		}
		if _, err := s.session.FollowupMessageCreate(target, false, params, discordgo.WithContext(ctx)); err != nil {
			return fmt.Errorf("discord follow-up create: %w", err)
		}
		return nil

	case model.FollowUpUpdateOriginal:
		content := msg.Content
		edit := &discordgo.WebhookEdit{
			Content: &content,
			Embeds:  &embeds,
		}
		if msg.ClearComponents || len(components) > 0 {
			edit.Components = &components
		}
		if _, err := s.session.InteractionResponseEdit(target, edit, discordgo.WithContext(ctx)); err != nil {
			return fmt.Errorf("discord follow-up update: %w", err)
		}
		return nil

	default:
		return fmt.Errorf("%w: %d", ErrUnknownMode, int(msg.Mode))
	}
}
