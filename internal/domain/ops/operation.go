package ops

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/atomic"

	"github.com/stratumstore/opsmon/pkg/common/logger"
)

// Task is the unit of work wrapped by an Operation. It reports the elapsed
// duration of the work it performed. A task is invoked at most once, by
// whichever worker runs the operation.
type Task func(ctx context.Context) (time.Duration, error)

// Internal run states. Transitions are irreversible:
// stateNew -> stateRunning -> settled (done channel closed).
const (
	stateNew int32 = iota
	stateRunning
)

// outcomeKind tags the settled result variant of an operation.
type outcomeKind int

const (
	outcomeSuccess outcomeKind = iota
	outcomeCancelled
	outcomeInterrupted
	outcomeFailed
)

// outcome is the single-assignment result of a run. It is written exactly
// once, before the done channel is closed.
type outcome struct {
	kind  outcomeKind
	value time.Duration
	err   error
}

// Operation wraps a single unit of asynchronous administrative work with an
// externally observable Status. It is one of two variants: a pending
// operation owning a task, or an already-done sentinel constructed by Done
// that never executes.
//
// Status, ID, and Name are safe to call from any goroutine at any time,
// including concurrently with the running task and with Cancel.
type Operation struct {
	id   int32
	name string
	task Task

	// Done sentinel variant.
	sentinel bool
	value    time.Duration

	state     atomic.Int32
	cancelled atomic.Bool
	done      chan struct{}
	result    outcome // written once before done is closed

	mu        sync.Mutex
	cancelRun context.CancelFunc

	log *logger.Logger
}

// New constructs an Operation in not-started state with a fresh id from the
// shared source. The name is an informal label attached to the operation;
// it has no uniqueness requirements. Construction has no side effect beyond
// consuming one id.
func New(name string, task Task, ids *IDSource, log *logger.Logger) *Operation {
	return &Operation{
		id:   ids.Next(),
		name: name,
		task: task,
		done: make(chan struct{}),
		log:  log,
	}
}

// Done constructs a sentinel Operation that is already finished with the
// given value and never executes. Its status is NONE ("no work was needed")
// rather than SUCCEEDED; callers must treat the two as distinct outcomes.
// The sentinel must never be handed to a worker: Run panics.
func Done(name string, value time.Duration, ids *IDSource) *Operation {
	return &Operation{
		id:       ids.Next(),
		name:     name,
		sentinel: true,
		value:    value,
	}
}

// ID returns the unique id assigned at construction.
func (o *Operation) ID() int32 { return o.id }

// Name returns the informal name of the operation.
func (o *Operation) Name() string { return o.name }

// IsDone reports whether the operation has settled.
func (o *Operation) IsDone() bool {
	if o.sentinel {
		return true
	}
	select {
	case <-o.done:
		return true
	default:
		return false
	}
}

// Run executes the task on the calling goroutine. The one-shot contract
// permits exactly one execution attempt: a second call returns without
// executing. Running a Done sentinel is a programming error in the caller's
// scheduler and panics.
func (o *Operation) Run(ctx context.Context) {
	if o.sentinel {
		panic(fmt.Sprintf("operation %q is already done", o.name))
	}
	if !o.state.CompareAndSwap(stateNew, stateRunning) {
		return
	}

	if o.cancelled.Load() {
		o.settle(outcome{kind: outcomeCancelled, err: context.Canceled})
		return
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	o.mu.Lock()
	if o.cancelled.Load() {
		o.settleLocked(outcome{kind: outcomeCancelled, err: context.Canceled})
		o.mu.Unlock()
		return
	}
	o.cancelRun = cancel
	o.mu.Unlock()

	v, err := o.task(runCtx)

	// Classification and settlement happen under mu so they cannot
	// interleave with Cancel: a cancel observed here wins regardless of
	// how the task returned, and a cancel arriving after the done channel
	// closes is a no-op.
	o.mu.Lock()
	defer o.mu.Unlock()
	switch {
	case o.cancelled.Load():
		if err == nil {
			err = context.Canceled
		}
		o.settleLocked(outcome{kind: outcomeCancelled, err: err})
	case err == nil:
		o.settleLocked(outcome{kind: outcomeSuccess, value: v})
	case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
		// The surrounding context was torn down while the task ran. The
		// context error is preserved on the outcome, not absorbed.
		o.settleLocked(outcome{kind: outcomeInterrupted, err: err})
	default:
		o.settleLocked(outcome{kind: outcomeFailed, err: err})
	}
}

func (o *Operation) settle(res outcome) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.settleLocked(res)
}

// settleLocked writes the single-assignment result and closes the done
// channel. Callers must hold o.mu.
func (o *Operation) settleLocked(res outcome) {
	o.result = res
	close(o.done)
}

// Cancel requests cooperative cancellation. It sets the cancelled flag and
// cancels the running task's context; it does not forcibly stop the task.
// Cancelling a settled operation or a Done sentinel has no effect.
// Cancellation is irreversible.
//
// The done check and the flag set are one atomic step with respect to
// settlement: an operation that settled first stays settled, and a cancel
// that lands first forces the eventual outcome to cancelled.
func (o *Operation) Cancel() {
	if o.sentinel {
		return
	}

	o.mu.Lock()
	if o.IsDone() || !o.cancelled.CompareAndSwap(false, true) {
		o.mu.Unlock()
		return
	}
	cancel := o.cancelRun
	o.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

// Wait blocks until the operation settles or ctx is done, and returns the
// task's value. For a Done sentinel it returns the sentinel value
// immediately. Reading an already settled result never blocks.
func (o *Operation) Wait(ctx context.Context) (time.Duration, error) {
	if o.sentinel {
		return o.value, nil
	}
	select {
	case <-o.done:
		if o.result.err != nil {
			return 0, o.result.err
		}
		return o.result.value, nil
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

// Status derives a point-in-time Status from the operation's state:
//
//   - cancelled: FAILED "<name> cancelled"
//   - settled successfully: SUCCEEDED "<name> completed in <m> minutes"
//   - settled by a context error: FAILED "<name> status unknown: <err>"
//   - settled by a task failure: FAILED "<name> failed: <err>"; the full
//     cause is logged at error severity, the only side effect of Status
//   - not settled: RUNNING "<name> running", even when the operation is
//     queued but not yet picked up by a worker
//
// A Done sentinel reports NONE "<name> not started". Status never blocks
// and never panics; every failure path is converted into a FAILED status.
func (o *Operation) Status() Status {
	if o.sentinel {
		return None(o.id, o.name+" not started")
	}
	if o.cancelled.Load() {
		return Failed(o.id, o.name+" cancelled")
	}
	if !o.IsDone() {
		return Running(o.id, o.name+" running")
	}
	return o.statusOf(o.result)
}

// statusOf collapses a settled outcome into the reported Status. The error
// log on task failure is the only effect.
func (o *Operation) statusOf(res outcome) Status {
	switch res.kind {
	case outcomeSuccess:
		return Succeeded(o.id, fmt.Sprintf("%s completed in %s", o.name, formatMinutes(res.value)))
	case outcomeCancelled:
		return Failed(o.id, o.name+" cancelled")
	case outcomeInterrupted:
		return Failed(o.id, fmt.Sprintf("%s status unknown: %s", o.name, res.err))
	default:
		if o.log != nil {
			o.log.Error(context.Background(), o.name+" failed", "operation_id", o.id, "err", res.err)
		}
		return Failed(o.id, fmt.Sprintf("%s failed: %s", o.name, res.err))
	}
}

// formatMinutes truncates a duration to whole minutes, so anything under a
// minute reports "0 minutes".
func formatMinutes(d time.Duration) string {
	return fmt.Sprintf("%d minutes", int64(d/time.Minute))
}
