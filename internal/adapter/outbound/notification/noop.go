package notification

import (
	"context"
	"log/slog"

	"github.com/jonny/ranobe-bot/internal/domain/port/outbound"
)

// NoopNotifier logs ops events instead of sending them.
// Used when no Slack ops channel is configured.
type NoopNotifier struct {
	logger *slog.Logger
}

// NewNoopNotifier creates a new NoopNotifier.
func NewNoopNotifier(logger *slog.Logger) *NoopNotifier {
	return &NoopNotifier{logger: logger}
}

var _ outbound.OpsNotifier = (*NoopNotifier)(nil)

func (n *NoopNotifier) ReportDroppedFollowUp(_ context.Context, event outbound.DroppedFollowUp) error {
	n.logger.Debug("noop: dropped follow-up",
		"taskID", event.TaskID,
		"interactionID", event.InteractionID,
		"kind", event.Kind,
		"mode", event.Mode,
	)
	return nil
}

func (n *NoopNotifier) SendMessage(_ context.Context, message string, level outbound.NotificationLevel) error {
	n.logger.Debug("noop: message",
		"message", message,
		"level", level,
	)
	return nil
}
