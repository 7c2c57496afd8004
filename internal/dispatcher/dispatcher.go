package dispatcher

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/dshills/refactorengine/internal/opqueue"
	"github.com/dshills/refactorengine/internal/plan"
)

// DefaultWaitTimeout is the 30-second cap spec.md puts on the post-handler
// wait_until_idle call.
const DefaultWaitTimeout = 30 * time.Second

// HandlerFunc implements one MCP tool. params is the tool call's raw JSON
// arguments; the returned value is serialized back to the caller as-is.
type HandlerFunc func(ctx context.Context, params json.RawMessage) (any, error)

// Dispatcher maps MCP tool names to handlers and settles the operation
// queue after any handler that returns a plan.
type Dispatcher struct {
	handlers    map[string]HandlerFunc
	queue       *opqueue.Queue
	waitTimeout time.Duration
	logger      *slog.Logger
	metrics     *Metrics
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithWaitTimeout overrides the default 30-second wait_until_idle cap.
func WithWaitTimeout(d time.Duration) Option {
	return func(disp *Dispatcher) { disp.waitTimeout = d }
}

// WithLogger sets the logger used to report a wait_until_idle timeout.
func WithLogger(logger *slog.Logger) Option {
	return func(disp *Dispatcher) { disp.logger = logger }
}

// WithMetrics attaches Prometheus counters/histograms to every Dispatch
// call. Omit this option to run without metrics.
func WithMetrics(m *Metrics) Option {
	return func(disp *Dispatcher) { disp.metrics = m }
}

// New creates a Dispatcher that settles queue after plan-returning handlers.
func New(queue *opqueue.Queue, opts ...Option) *Dispatcher {
	disp := &Dispatcher{
		handlers:    make(map[string]HandlerFunc),
		queue:       queue,
		waitTimeout: DefaultWaitTimeout,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(disp)
	}
	return disp
}

// Register binds tool to handler. Registering the same tool name twice
// replaces the previous handler.
func (d *Dispatcher) Register(tool string, handler HandlerFunc) {
	d.handlers[tool] = handler
}

// Dispatch looks up tool's handler and runs it. If the handler returns a
// plan, Dispatch blocks on the operation queue idling (up to waitTimeout)
// before returning, so handler-scheduled async work has settled.
func (d *Dispatcher) Dispatch(ctx context.Context, tool string, params json.RawMessage) (any, error) {
	handler, ok := d.handlers[tool]
	if !ok {
		if d.metrics != nil {
			d.metrics.observe(tool, time.Now(), &UnknownToolError{Tool: tool})
		}
		return nil, &UnknownToolError{Tool: tool}
	}

	start := time.Now()
	result, err := handler(ctx, params)
	if d.metrics != nil {
		d.metrics.observe(tool, start, err)
	}
	if err != nil {
		return nil, err
	}

	if isPlan(result) && d.queue != nil {
		waitCtx, cancel := context.WithTimeout(ctx, d.waitTimeout)
		defer cancel()
		if waitErr := d.queue.WaitUntilIdle(waitCtx); waitErr != nil {
			d.logger.Warn("operation queue did not idle within cap",
				"tool", tool, "timeout", d.waitTimeout, "error", waitErr)
		}
	}

	return result, nil
}

func isPlan(v any) bool {
	switch v.(type) {
	case *plan.EditPlan, *plan.RenamePlan:
		return true
	default:
		return false
	}
}
