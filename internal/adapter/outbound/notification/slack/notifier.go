package slack

import (
	"context"
	"fmt"

	slackapi "github.com/slack-go/slack"

	"github.com/jonny/ranobe-bot/internal/domain/port/outbound"
)

// Config holds Slack notifier configuration.
type Config struct {
	BotToken string
	Channel  string
	// APIURL overrides the Slack Web API base URL. Must end with a slash.
	APIURL string
}

// Notifier implements outbound.OpsNotifier via the Slack API.
type Notifier struct {
	client *slackapi.Client
	config Config
}

var _ outbound.OpsNotifier = (*Notifier)(nil)

// NewNotifier creates a new Slack Notifier.
func NewNotifier(cfg Config) *Notifier {
	opts := []slackapi.Option{}
	if cfg.APIURL != "" {
		opts = append(opts, slackapi.OptionAPIURL(cfg.APIURL))
	}
	return &Notifier{
		client: slackapi.New(cfg.BotToken, opts...),
		config: cfg,
	}
}

// ReportDroppedFollowUp posts a summary of an undelivered follow-up.
func (n *Notifier) ReportDroppedFollowUp(ctx context.Context, event outbound.DroppedFollowUp) error {
	blocks := BuildDroppedFollowUpBlocks(event)

	_, _, err := n.client.PostMessageContext(ctx, n.config.Channel,
		slackapi.MsgOptionBlocks(blocks...),
		slackapi.MsgOptionText(fmt.Sprintf("Follow-up dropped for interaction %s", event.InteractionID), false),
	)
	if err != nil {
		return fmt.Errorf("slack ReportDroppedFollowUp: %w", err)
	}
	return nil
}

// SendMessage posts a simple text message with an emoji for the level.
func (n *Notifier) SendMessage(ctx context.Context, message string, level outbound.NotificationLevel) error {
	text := fmt.Sprintf("%s %s", levelEmoji(level), message)

	_, _, err := n.client.PostMessageContext(ctx, n.config.Channel,
		slackapi.MsgOptionText(text, false),
	)
	if err != nil {
		return fmt.Errorf("slack SendMessage: %w", err)
	}
	return nil
}

// levelEmoji maps a notification level to an emoji.
func levelEmoji(level outbound.NotificationLevel) string {
	switch level {
	case outbound.NotificationWarning:
		return ":large_yellow_circle:"
	default:
		return ":information_source:"
	}
}
