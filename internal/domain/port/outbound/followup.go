package outbound

import (
	"context"

	"github.com/jonny/ranobe-bot/internal/domain/model"
)

// FollowUpSender delivers the deferred answer for an interaction to the
// webhook addressed by its token.
type FollowUpSender interface {
	Send(ctx context.Context, token string, msg model.FollowUp) error
}
