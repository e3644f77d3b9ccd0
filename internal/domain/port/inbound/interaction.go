package inbound

import (
	"context"
	"errors"

	"github.com/jonny/ranobe-bot/internal/domain/model"
)

var (
	ErrUnknownInteraction = errors.New("unknown interaction kind")
	ErrOverloaded         = errors.New("no capacity to schedule continuation")
)

// InteractionPort answers a verified interaction synchronously and schedules
// any work that has to happen after the answer.
type InteractionPort interface {
	Dispatch(ctx context.Context, in model.Interaction) (model.Ack, error)
}
