package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jonny/ranobe-bot/internal/domain/model"
	"github.com/jonny/ranobe-bot/internal/domain/port/inbound"
	"github.com/jonny/ranobe-bot/internal/domain/port/outbound"
	"github.com/jonny/ranobe-bot/internal/metrics"
)

// DefaultSearchLimit caps the number of books a search offers.
const DefaultSearchLimit = 5

const (
	flowSearch = "search"
	flowSelect = "select"
)

// Deps groups the collaborators of a Dispatcher.
type Deps struct {
	Catalog   outbound.Catalog
	Sender    outbound.FollowUpSender
	Scheduler outbound.Scheduler
	Notifier  outbound.OpsNotifier
	Metrics   *metrics.Metrics
	Logger    *slog.Logger
}

// Dispatcher answers verified interactions and schedules the catalog work
// that completes them. It keeps no state between interactions.
type Dispatcher struct {
	catalog     outbound.Catalog
	sender      outbound.FollowUpSender
	scheduler   outbound.Scheduler
	notifier    outbound.OpsNotifier
	metrics     *metrics.Metrics
	logger      *slog.Logger
	searchLimit int
}

// NewDispatcher creates a Dispatcher. searchLimit <= 0 selects DefaultSearchLimit.
func NewDispatcher(deps Deps, searchLimit int) *Dispatcher {
	if searchLimit <= 0 {
		searchLimit = DefaultSearchLimit
	}
	return &Dispatcher{
		catalog:     deps.Catalog,
		sender:      deps.Sender,
		scheduler:   deps.Scheduler,
		notifier:    deps.Notifier,
		metrics:     deps.Metrics,
		logger:      deps.Logger,
		searchLimit: searchLimit,
	}
}

var _ inbound.InteractionPort = (*Dispatcher)(nil)

// Dispatch returns the synchronous acknowledgment for in. Commands and
// component selections are handed to the scheduler before returning; no
// catalog call happens on the caller's goroutine.
func (d *Dispatcher) Dispatch(_ context.Context, in model.Interaction) (model.Ack, error) {
	var (
		ack model.Ack
		err error
	)

	switch v := in.(type) {
	case model.Ping:
		ack = model.AckPong
	case model.Command:
		ack = model.AckDeferredChannelMessage
		err = d.schedule(flowSearch, v.Meta(), func(ctx context.Context) { d.runSearch(ctx, v) })
	case model.ComponentSelect:
		ack = model.AckDeferredUpdateMessage
		err = d.schedule(flowSelect, v.Meta(), func(ctx context.Context) { d.runSelect(ctx, v) })
	default:
		err = fmt.Errorf("%w: %T", inbound.ErrUnknownInteraction, in)
	}

	kind := model.InteractionKind(0).String()
	if in != nil {
		kind = in.Kind().String()
	}
	if err != nil {
		d.metrics.InteractionsTotal.WithLabelValues(kind, "rejected").Inc()
		return 0, err
	}
	d.metrics.InteractionsTotal.WithLabelValues(kind, ack.String()).Inc()
	return ack, nil
}

func (d *Dispatcher) schedule(flow string, env model.Envelope, task outbound.Task) error {
	if err := d.scheduler.Submit(flow, task); err != nil {
		d.logger.Warn("continuation refused",
			"flow", flow,
			"interaction_id", env.ID,
			"error", err,
		)
		return fmt.Errorf("%w: %v", inbound.ErrOverloaded, err)
	}
	return nil
}

func (d *Dispatcher) runSearch(ctx context.Context, cmd model.Command) {
	logger := d.taskLogger(ctx, flowSearch, cmd.Meta())
	msg, result := d.searchFollowUp(ctx, logger, cmd.Query)
	d.deliver(ctx, logger, flowSearch, result, cmd.Meta(), msg)
}

func (d *Dispatcher) runSelect(ctx context.Context, sel model.ComponentSelect) {
	logger := d.taskLogger(ctx, flowSelect, sel.Meta())
	msg, result := d.selectFollowUp(ctx, logger, sel.BookID)
	d.deliver(ctx, logger, flowSelect, result, sel.Meta(), msg)
}

func (d *Dispatcher) taskLogger(ctx context.Context, flow string, env model.Envelope) *slog.Logger {
	return d.logger.With(
		"task_id", outbound.TaskID(ctx),
		"flow", flow,
		"interaction_id", env.ID,
	)
}

// deliver sends msg once. A failed delivery is logged, counted and reported,
// then dropped.
func (d *Dispatcher) deliver(ctx context.Context, logger *slog.Logger, flow, result string, env model.Envelope, msg model.FollowUp) {
	d.metrics.ContinuationsTotal.WithLabelValues(flow, result).Inc()

	if err := d.sender.Send(ctx, env.Token, msg); err != nil {
		d.metrics.FollowUpsTotal.WithLabelValues(msg.Mode.String(), "failed").Inc()
		logger.Error("follow-up delivery failed", "mode", msg.Mode.String(), "error", err)

		report := outbound.DroppedFollowUp{
			TaskID:        outbound.TaskID(ctx),
			InteractionID: env.ID,
			Kind:          flow,
			Mode:          msg.Mode.String(),
			Err:           err.Error(),
		}
		if nerr := d.notifier.ReportDroppedFollowUp(ctx, report); nerr != nil {
			logger.Warn("ops notification failed", "error", nerr)
		}
		return
	}

	d.metrics.FollowUpsTotal.WithLabelValues(msg.Mode.String(), "sent").Inc()
	logger.Info("follow-up delivered", "mode", msg.Mode.String(), "result", result)
}
