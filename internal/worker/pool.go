package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonny/ranobe-bot/internal/domain/port/outbound"
	"github.com/jonny/ranobe-bot/internal/metrics"
)

// ErrDrainTimeout is returned by Run when in-flight tasks outlive the drain window.
var ErrDrainTimeout = errors.New("worker pool drain timed out")

// Config holds worker pool configuration.
type Config struct {
	Workers      int
	QueueSize    int
	DrainTimeout time.Duration
}

type job struct {
	id       string
	name     string
	task     outbound.Task
	enqueued time.Time
}

// Pool runs submitted tasks on a fixed set of workers. Submission never
// blocks; shutdown stops intake and drains everything already accepted.
type Pool struct {
	cfg     Config
	logger  *slog.Logger
	metrics *metrics.Metrics

	mu     sync.RWMutex
	closed bool
	queue  chan job

	base       context.Context
	cancelBase context.CancelFunc
}

var _ outbound.Scheduler = (*Pool)(nil)

// NewPool creates a Pool. Workers start when Run is called; tasks submitted
// before that wait in the queue.
func NewPool(cfg Config, logger *slog.Logger, m *metrics.Metrics) *Pool {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.QueueSize < 0 {
		cfg.QueueSize = 0
	}
	base, cancel := context.WithCancel(context.Background())
	return &Pool{
		cfg:        cfg,
		logger:     logger,
		metrics:    m,
		queue:      make(chan job, cfg.QueueSize),
		base:       base,
		cancelBase: cancel,
	}
}

// Submit enqueues task under a fresh task id.
func (p *Pool) Submit(name string, task outbound.Task) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return outbound.ErrSchedulerClosed
	}

	j := job{id: uuid.NewString(), name: name, task: task, enqueued: time.Now()}
	select {
	case p.queue <- j:
		p.metrics.QueueDepth.Inc()
		p.logger.Debug("task queued", "task_id", j.id, "task", name)
		return nil
	default:
		return outbound.ErrSchedulerFull
	}
}

// Accepting reports whether the pool still takes new work.
func (p *Pool) Accepting(_ context.Context) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return outbound.ErrSchedulerClosed
	}
	return nil
}

// Run starts the workers and blocks until ctx is cancelled and the queue has
// drained. If draining takes longer than DrainTimeout the context handed to
// running tasks is cancelled and ErrDrainTimeout is returned.
func (p *Pool) Run(ctx context.Context) error {
	var g errgroup.Group
	for i := 0; i < p.cfg.Workers; i++ {
		g.Go(func() error {
			for j := range p.queue {
				p.metrics.QueueDepth.Dec()
				p.execute(j)
			}
			return nil
		})
	}

	<-ctx.Done()
	p.close()

	done := make(chan error, 1)
	go func() { done <- g.Wait() }()

	if p.cfg.DrainTimeout <= 0 {
		err := <-done
		p.cancelBase()
		return err
	}

	timer := time.NewTimer(p.cfg.DrainTimeout)
	defer timer.Stop()

	select {
	case err := <-done:
		p.cancelBase()
		return err
	case <-timer.C:
		p.cancelBase()
		p.logger.Warn("worker pool drain timed out", "timeout", p.cfg.DrainTimeout)
		return ErrDrainTimeout
	}
}

func (p *Pool) close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	close(p.queue)
	p.logger.Info("worker pool draining", "queued", len(p.queue))
}

func (p *Pool) execute(j job) {
	p.metrics.ContinuationsActive.Inc()
	defer p.metrics.ContinuationsActive.Dec()

	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("task panicked",
				"task_id", j.id,
				"task", j.name,
				"panic", fmt.Sprint(r),
			)
		}
	}()

	ctx := outbound.WithTaskID(p.base, j.id)
	j.task(ctx)

	p.logger.Debug("task finished",
		"task_id", j.id,
		"task", j.name,
		"queued_for", start.Sub(j.enqueued).Round(time.Millisecond),
		"ran_for", time.Since(start).Round(time.Millisecond),
	)
}
