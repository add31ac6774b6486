// Package coordinator drives a workflow tree end to end: it owns the shared
// state lifecycle, the overall deadline, whole-pipeline retries with a fixed
// backoff delay, and the external stop signal. Every invocation yields
// exactly one RunResult; the coordinator never raises past its Run boundary.
package coordinator

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/hupe1980/tripmesh/core"
	"github.com/hupe1980/tripmesh/logging"
	"github.com/hupe1980/tripmesh/workflow"
)

// Options holds dependency and configuration overrides passed to New().
type Options struct {
	// Config supplies the retry/timeout envelope. Defaults to DefaultConfig().
	Config Config
	// Logger receives structured run instrumentation. Defaults to NoOp.
	Logger logging.Logger
}

// Coordinator assembles a tree of workflow groups into one pipeline and
// drives its execution. Public methods are safe for concurrent use, but a
// single coordinator runs at most one pipeline attempt at a time per Run
// invocation; shared state is owned exclusively by that invocation.
type Coordinator struct {
	root   core.Node
	cfg    Config
	logger logging.Logger

	mu          sync.Mutex
	stopPending bool
	cancelRun   context.CancelCauseFunc
}

// New constructs a Coordinator for the given workflow root. The tree is
// validated at assembly time; misconfigured trees (duplicate parallel output
// keys, non-positive loop caps, node reuse) are rejected here, not at run time.
func New(root core.Node, optFns ...func(o *Options)) (*Coordinator, error) {
	opts := Options{
		Config: DefaultConfig(),
		Logger: logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	if err := opts.Config.validate(); err != nil {
		return nil, err
	}

	if err := workflow.Validate(root); err != nil {
		return nil, err
	}

	return &Coordinator{
		root:   root,
		cfg:    opts.Config,
		logger: opts.Logger,
	}, nil
}

// Stop requests cooperative cancellation. A run in flight is signaled to
// abandon work and reports Stopped; with no run in flight the request is
// latched and the next Run short-circuits to Stopped without starting stage
// work, clearing the latch. Each stop request affects exactly one run.
func (c *Coordinator) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cancelRun != nil {
		c.cancelRun(core.ErrStopped)
		return
	}
	c.stopPending = true
}

// Run executes the pipeline for one request and always returns a RunResult.
//
// The run is wrapped in the overall deadline; on any failure surfaced by the
// root group (not a timeout or stop) the entire pipeline is retried with a
// fresh shared state, up to the configured attempt bound, sleeping the retry
// delay in between. On success the designated terminal output key's value
// becomes the payload.
func (c *Coordinator) Run(ctx context.Context, request map[string]any) RunResult {
	start := time.Now()

	if ctx == nil {
		ctx = context.Background()
	}

	deadlineCtx, cancelDeadline := context.WithTimeout(ctx, c.cfg.OverallTimeout)
	defer cancelDeadline()

	runCtx, cancelRun := context.WithCancelCause(deadlineCtx)
	defer cancelRun(nil)

	// Consuming a pending stop and registering the cancel hook is one locked
	// decision: a concurrent Stop either latches before this run starts or
	// cancels this run, never a later one.
	c.mu.Lock()
	if c.stopPending {
		c.stopPending = false
		c.mu.Unlock()
		return c.finish(stoppedResult(time.Since(start)), 0)
	}
	c.cancelRun = cancelRun
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.cancelRun = nil
		c.mu.Unlock()
	}()

	policy := RetryPolicy{MaxAttempts: c.cfg.MaxRetries, Delay: c.cfg.RetryDelay}

	var lastErr error
	for attempt := 1; attempt <= policy.MaxAttempts; attempt++ {
		if runCtx.Err() != nil {
			return c.finish(c.cancelledResult(runCtx, start), attempt-1)
		}

		// A fresh run scope per attempt: late writes from a cancelled or
		// failed attempt land in a state that is discarded, never merged
		// into the next attempt.
		rc := core.NewRunContext(runCtx, request, c.logger)

		rc.LogInfo("Workflow attempt starting", "run_id", rc.RunID, "attempt", attempt, "root", c.root.Name())

		err := c.root.Run(rc)
		if err == nil {
			payload := c.terminalPayload(rc)
			rc.LogInfo("Workflow attempt succeeded", "run_id", rc.RunID, "attempt", attempt)
			return c.finish(successResult(payload, time.Since(start)), attempt)
		}

		if runCtx.Err() != nil {
			return c.finish(c.cancelledResult(runCtx, start), attempt)
		}

		lastErr = err
		rc.LogWarn("Workflow attempt failed", "run_id", rc.RunID, "attempt", attempt, "error", err)

		if attempt < policy.MaxAttempts {
			if waitErr := policy.Wait(runCtx); waitErr != nil {
				return c.finish(c.cancelledResult(runCtx, start), attempt)
			}
		}
	}

	exhausted := &core.RetriesExhaustedError{Attempts: policy.MaxAttempts, Last: lastErr}
	return c.finish(errorResult(exhausted, time.Since(start)), policy.MaxAttempts)
}

// cancelledResult distinguishes a stop request from a deadline breach once
// the run context has been cancelled.
func (c *Coordinator) cancelledResult(runCtx context.Context, start time.Time) RunResult {
	elapsed := time.Since(start)

	if errors.Is(context.Cause(runCtx), core.ErrStopped) {
		return stoppedResult(elapsed)
	}

	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		return timeoutResult(elapsed)
	}

	// The caller's outer context was cancelled; treat it like a stop.
	return stoppedResult(elapsed)
}

// terminalPayload extracts the designated terminal key's value from the
// attempt's final state. A textual value that decodes as JSON is returned
// structured; a malformed one is returned raw rather than escalated to an
// error, since an unparseable response is still the pipeline's answer.
func (c *Coordinator) terminalPayload(rc *core.RunContext) any {
	key := c.cfg.TerminalOutputKey
	if key == "" {
		keys := c.root.OutputKeys()
		if len(keys) == 0 {
			return nil
		}
		key = keys[len(keys)-1]
	}

	value, ok := rc.State.Get(key)
	if !ok {
		return nil
	}

	if text, isText := value.(string); isText {
		var structured map[string]any
		if err := json.Unmarshal([]byte(text), &structured); err == nil {
			return structured
		}
		return text
	}

	return value
}

func (c *Coordinator) finish(res RunResult, attempts int) RunResult {
	observeRun(string(res.Status), attempts, res.Elapsed)
	c.logger.Info("Workflow run finished", "status", string(res.Status), "attempts", attempts, "elapsed", res.Elapsed)
	return res
}
