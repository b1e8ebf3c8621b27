// Package admin coordinates the administrative operations of the content
// store (backup, restore, compaction, garbage collection) and exposes their
// statuses to the management surface.
package admin

import (
	"context"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/stratumstore/opsmon/internal/config"
	"github.com/stratumstore/opsmon/internal/domain/ops"
	"github.com/stratumstore/opsmon/pkg/common/logger"
)

// TaskFn is the body of an administrative task. The manager measures its
// wall time; the resulting operation's value is the elapsed duration.
type TaskFn func(ctx context.Context) error

// Manager tracks at most one in-flight operation per registered kind and
// runs them on a bounded worker pool. Each kind's slot starts as an
// already-done sentinel, so before anything is launched the reported status
// is NONE ("<kind> not started"). Launching replaces the slot only when the
// previous operation has settled; the slot always answers StatusOf, so a
// finished operation's outcome stays observable until the next launch.
//
// The manager never retries: a failed operation stays failed until a caller
// launches a new one.
type Manager struct {
	id string

	ids      *ops.IDSource
	statuses ops.StatusFactory

	mu    sync.Mutex
	slots map[string]*ops.Operation

	queue     chan *ops.Operation
	workers   int
	opTimeout time.Duration

	clock   clock.Clock
	logger  *logger.Logger
	metrics AdminMetrics
	tracer  trace.Tracer
}

// NewManager creates a manager with one slot per configured kind. The
// config must have been validated by its loader.
func NewManager(
	cfg *config.Config,
	ids *ops.IDSource,
	cl clock.Clock,
	log *logger.Logger,
	metrics AdminMetrics,
	tracer trace.Tracer,
) *Manager {
	id := uuid.New().String()
	componentLogger := log.With(
		"component", "admin_manager",
		"manager_id", id,
		"num_workers", cfg.Workers,
	)

	m := &Manager{
		id:        id,
		ids:       ids,
		statuses:  ops.NewStatusFactory(ids),
		slots:     make(map[string]*ops.Operation, len(cfg.Kinds)),
		queue:     make(chan *ops.Operation, cfg.QueueSize),
		workers:   cfg.Workers,
		opTimeout: cfg.OperationTimeout,
		clock:     cl,
		logger:    componentLogger,
		metrics:   metrics,
		tracer:    tracer,
	}

	for _, kind := range cfg.Kinds {
		m.slots[kind] = ops.Done(kind, 0, ids)
	}

	return m
}

// ID returns the manager instance id used for log and span correlation.
func (m *Manager) ID() string { return m.id }

// Launch accepts a new run of the given kind and returns its point-in-time
// status. If an operation of that kind is still in flight, its status is
// returned and nothing new is started. An unregistered kind reports a
// standalone UNAVAILABLE status.
func (m *Manager) Launch(ctx context.Context, kind string, fn TaskFn) ops.Status {
	ctx, span := m.tracer.Start(ctx, "admin_manager.launch",
		trace.WithAttributes(
			attribute.String("manager_id", m.id),
			attribute.String("kind", kind),
		))
	defer span.End()

	m.mu.Lock()
	current, ok := m.slots[kind]
	if !ok {
		m.mu.Unlock()
		span.SetStatus(codes.Error, "unknown operation kind")
		return m.statuses.Unavailable(kind + " not supported")
	}
	if !current.IsDone() {
		m.mu.Unlock()
		span.AddEvent("operation_already_in_flight")
		m.logger.Debug(ctx, "operation already in flight", "kind", kind, "operation_id", current.ID())
		return current.Status()
	}

	op := ops.New(kind, m.timed(fn), m.ids, m.logger)
	m.slots[kind] = op
	m.mu.Unlock()

	span.SetAttributes(attribute.Int("operation_id", int(op.ID())))

	select {
	case m.queue <- op:
	case <-ctx.Done():
		op.Cancel()
		span.SetStatus(codes.Error, "context done before enqueue")
		return op.Status()
	}

	m.metrics.IncOperationsLaunched(ctx, kind)
	m.logger.Info(ctx, "operation launched", "kind", kind, "operation_id", op.ID())

	return op.Status()
}

// StatusOf returns the current status of the given kind's slot. An
// unregistered kind reports a standalone UNAVAILABLE status.
func (m *Manager) StatusOf(kind string) ops.Status {
	m.mu.Lock()
	op, ok := m.slots[kind]
	m.mu.Unlock()

	if !ok {
		return m.statuses.Unavailable(kind + " not supported")
	}
	return op.Status()
}

// Statuses reports the status of every registered kind.
func (m *Manager) Statuses() map[string]ops.Status {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make(map[string]ops.Status, len(m.slots))
	for kind, op := range m.slots {
		out[kind] = op.Status()
	}
	return out
}

// Cancel requests cooperative cancellation of the kind's in-flight
// operation and returns the resulting status. Cancelling a settled slot has
// no effect; an unregistered kind reports UNAVAILABLE.
func (m *Manager) Cancel(ctx context.Context, kind string) ops.Status {
	m.mu.Lock()
	op, ok := m.slots[kind]
	m.mu.Unlock()

	if !ok {
		return m.statuses.Unavailable(kind + " not supported")
	}

	if !op.IsDone() {
		op.Cancel()
		m.metrics.IncOperationsCancelled(ctx, kind)
		m.logger.Info(ctx, "operation cancel requested", "kind", kind, "operation_id", op.ID())
	}
	return op.Status()
}

// Run starts the worker pool and blocks until ctx is done. Operations
// still queued at shutdown are cancelled so their status does not stay
// RUNNING forever.
func (m *Manager) Run(ctx context.Context) error {
	initCtx, initSpan := m.tracer.Start(ctx, "admin_manager.init",
		trace.WithAttributes(
			attribute.String("manager_id", m.id),
			attribute.Int("num_workers", m.workers),
		))

	m.logger.Info(initCtx, "AdminManager: starting workers")

	initSpan.AddEvent("starting_workers")
	var wg sync.WaitGroup
	wg.Add(m.workers)
	for i := range m.workers {
		go func(workerID int) {
			defer wg.Done()
			m.workerLoop(ctx, workerID)
		}(i)
	}
	m.metrics.AddActiveWorkers(initCtx, m.workers)
	initSpan.End()

	<-ctx.Done()
	m.logger.Info(ctx, "AdminManager: stopping")
	wg.Wait()
	m.metrics.AddActiveWorkers(ctx, -m.workers)

	for {
		select {
		case op := <-m.queue:
			op.Cancel()
		default:
			return ctx.Err()
		}
	}
}

func (m *Manager) workerLoop(ctx context.Context, workerID int) {
	for {
		select {
		case <-ctx.Done():
			return
		case op := <-m.queue:
			m.execute(ctx, workerID, op)
		}
	}
}

func (m *Manager) execute(ctx context.Context, workerID int, op *ops.Operation) {
	ctx, span := m.tracer.Start(ctx, "admin_manager.execute",
		trace.WithAttributes(
			attribute.String("kind", op.Name()),
			attribute.Int("operation_id", int(op.ID())),
			attribute.Int("worker_id", workerID),
		))
	defer span.End()

	start := m.clock.Now()
	op.Run(ctx)
	m.metrics.ObserveOperationDuration(ctx, op.Name(), m.clock.Since(start))

	status := op.Status()
	switch {
	case status.IsSuccess():
		m.metrics.IncOperationsSucceeded(ctx, op.Name())
		span.AddEvent("operation_succeeded")
		m.logger.Info(ctx, "operation finished", "kind", op.Name(), "operation_id", op.ID(), "status", status.Message())
	case status.IsFailure():
		m.metrics.IncOperationsFailed(ctx, op.Name())
		span.SetStatus(codes.Error, status.Message())
		m.logger.Warn(ctx, "operation failed", "kind", op.Name(), "operation_id", op.ID(), "status", status.Message())
	}
}

// timed wraps a task body so the operation's value is the elapsed wall time
// of the body, and applies the configured per-operation timeout.
func (m *Manager) timed(fn TaskFn) ops.Task {
	return func(ctx context.Context) (time.Duration, error) {
		if m.opTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, m.opTimeout)
			defer cancel()
		}

		start := m.clock.Now()
		if err := fn(ctx); err != nil {
			return 0, err
		}
		return m.clock.Since(start), nil
	}
}
