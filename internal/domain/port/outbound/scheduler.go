package outbound

import (
	"context"
	"errors"
)

var (
	ErrSchedulerFull   = errors.New("scheduler queue is full")
	ErrSchedulerClosed = errors.New("scheduler is shut down")
)

// Task is a unit of background work. The context it receives is not tied to
// any inbound request.
type Task func(ctx context.Context)

// Scheduler accepts background tasks without blocking the caller.
type Scheduler interface {
	Submit(name string, task Task) error
}

type taskIDKey struct{}

// WithTaskID tags ctx with the id of the task running under it.
func WithTaskID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, taskIDKey{}, id)
}

// TaskID returns the id set by WithTaskID, or "".
func TaskID(ctx context.Context) string {
	id, _ := ctx.Value(taskIDKey{}).(string)
	return id
}
