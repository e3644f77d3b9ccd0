package outbound

import "context"

type NotificationLevel string

const (
	NotificationInfo    NotificationLevel = "info"
	NotificationWarning NotificationLevel = "warning"
)

// DroppedFollowUp describes a follow-up that could not be delivered.
type DroppedFollowUp struct {
	TaskID        string
	InteractionID string
	Kind          string
	Mode          string
	Err           string
}

// OpsNotifier reports operational events to the team running the bot. It is
// never on the user-facing path.
type OpsNotifier interface {
	ReportDroppedFollowUp(ctx context.Context, event DroppedFollowUp) error
	SendMessage(ctx context.Context, message string, level NotificationLevel) error
}
