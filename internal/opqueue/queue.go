package opqueue

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/dshills/refactorengine/internal/concurrency"
	"github.com/dshills/refactorengine/internal/lockmgr"
)

// Queue is a single-worker, unbounded FIFO queue of file-mutating
// Operations. The worker takes a write lock on each operation's FilePath
// via the supplied lockmgr.Manager before running it, so two operations on
// the same path never run concurrently, while operations on different
// paths may overlap across successive Queue instances sharing one Manager.
type Queue struct {
	mu       sync.Mutex
	cond     *sync.Cond
	items    []queuedOp
	inFlight bool
	closed   bool
	done     chan struct{}

	stats Stats

	locks  *lockmgr.Manager
	logger *slog.Logger

	debouncer *concurrency.Debouncer
}

type queuedOp struct {
	op     Operation
	result chan Result
}

// Option configures a Queue.
type Option func(*Queue)

// WithQueueLogger sets the logger used for crash-isolation diagnostics.
// Defaults to slog.Default().
func WithQueueLogger(logger *slog.Logger) Option {
	return func(q *Queue) { q.logger = logger }
}

// WithReenqueueDebounce wires a filesystem-change channel to onIdleTrigger,
// coalescing bursts of events into a single call after delay of quiet. This
// is the optional hook the analysis engine uses to re-scan a workspace
// shortly after its files stop changing, rather than on every individual
// fsnotify event.
func WithReenqueueDebounce(events <-chan struct{}, delay time.Duration, onIdleTrigger func()) Option {
	return func(q *Queue) {
		q.debouncer = concurrency.NewDebouncer(delay, onIdleTrigger)
		go func() {
			for range events {
				q.debouncer.Call()
			}
		}()
	}
}

// New creates a Queue backed by locks and starts its worker goroutine.
func New(locks *lockmgr.Manager, opts ...Option) *Queue {
	q := &Queue{
		locks:  locks,
		logger: slog.Default(),
		done:   make(chan struct{}),
	}
	q.cond = sync.NewCond(&q.mu)
	for _, opt := range opts {
		opt(q)
	}
	go q.run()
	return q
}

// Enqueue appends op to the tail of the queue and returns a channel that
// receives exactly one Result once the operation has been dispatched (or
// the queue closes first). Enqueue never blocks on dispatch; it only
// blocks briefly on the internal mutex.
func (q *Queue) Enqueue(op Operation) <-chan Result {
	result := make(chan Result, 1)

	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		result <- Result{Operation: op, Err: ErrClosed}
		return result
	}
	q.items = append(q.items, queuedOp{op: op, result: result})
	q.stats.Pending = len(q.items)
	q.cond.Broadcast()
	q.mu.Unlock()

	return result
}

// Stats returns a snapshot of the queue's counters.
func (q *Queue) Stats() Stats {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.stats
}

// WaitUntilIdle blocks until the queue has no pending operations and none
// in flight, or ctx is done, whichever comes first.
func (q *Queue) WaitUntilIdle(ctx context.Context) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if ctx.Done() != nil {
		stop := context.AfterFunc(ctx, func() {
			q.mu.Lock()
			q.cond.Broadcast()
			q.mu.Unlock()
		})
		defer stop()
	}

	for len(q.items) > 0 || q.inFlight {
		if err := ctx.Err(); err != nil {
			return err
		}
		q.cond.Wait()
	}
	return ctx.Err()
}

// Close stops accepting new operations and drains whatever is still
// pending to a failure Result carrying ErrClosed. It returns once the
// worker goroutine has exited; any operation already dispatched is allowed
// to finish first.
func (q *Queue) Close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		<-q.done
		return
	}
	q.closed = true
	drained := q.items
	q.items = nil
	q.stats.Pending = 0
	q.cond.Broadcast()
	q.mu.Unlock()

	for _, qo := range drained {
		qo.result <- Result{Operation: qo.op, Err: ErrClosed}
	}

	<-q.done
}

func (q *Queue) run() {
	defer close(q.done)
	for {
		q.mu.Lock()
		for len(q.items) == 0 && !q.closed {
			q.cond.Wait()
		}
		if len(q.items) == 0 && q.closed {
			q.mu.Unlock()
			return
		}
		next := q.items[0]
		q.items = q.items[1:]
		q.stats.Pending = len(q.items)
		q.inFlight = true
		q.mu.Unlock()

		err := q.dispatch(next.op)

		q.mu.Lock()
		q.inFlight = false
		if err != nil {
			q.stats.Failed++
		} else {
			q.stats.Completed++
		}
		q.cond.Broadcast()
		q.mu.Unlock()

		next.result <- Result{Operation: next.op, Err: err}
	}
}

// dispatch runs one operation under a write lock on its path, isolating
// the worker loop from both errors and panics — a failing operation is
// recorded as Failed, never crashes the queue.
func (q *Queue) dispatch(op Operation) (err error) {
	guard := q.locks.AcquireWrite(op.FilePath)
	defer guard.Release()

	defer func() {
		if r := recover(); r != nil {
			q.logger.Error("opqueue: operation panicked", "operation_id", op.ID, "file_path", op.FilePath, "panic", r)
			err = &PanicError{OperationID: op.ID, Value: r}
		}
	}()

	if op.Run == nil {
		return nil
	}
	return op.Run()
}
