package core

import (
	"context"
	"maps"

	"github.com/hupe1980/tripmesh/logging"
)

// RunContext encapsulates the mutable, per-attempt execution scope passed
// down the workflow tree. It aggregates:
//
//   - The ambient cancellation Context (overall deadline, stop signal)
//   - The run identifier
//   - The caller's request payload (read-only input surface)
//   - The SharedState stages communicate through
//   - A logger adapter for structured instrumentation
//
// A fresh RunContext (with a fresh SharedState) is created for every
// coordinator attempt and discarded afterwards, so late writes from a
// cancelled attempt land in a state that is never read again. It is
// explicitly run-scoped; never a process-wide singleton.
type RunContext struct {
	Context context.Context
	RunID   string
	Request map[string]any
	State   *SharedState

	*loggerAdapter
}

// NewRunContext constructs a RunContext with a fresh empty SharedState.
func NewRunContext(ctx context.Context, request map[string]any, logger logging.Logger) *RunContext {
	if ctx == nil {
		ctx = context.Background()
	}
	return &RunContext{
		Context:       ctx,
		RunID:         NewID(),
		Request:       request,
		State:         NewSharedState(),
		loggerAdapter: newLoggerAdapter(logger),
	}
}

// Done returns a channel closed when the underlying context is cancelled.
func (rc *RunContext) Done() <-chan struct{} { return rc.Context.Done() }

// Err returns the cancellation error (if any) from the underlying context.
func (rc *RunContext) Err() error { return rc.Context.Err() }

// RequestValue returns the value stored under key in the request payload.
func (rc *RunContext) RequestValue(key string) (any, bool) {
	v, ok := rc.Request[key]
	return v, ok
}

// CloneRequest returns a top-level copy of the request payload, safe for a
// stage to pass to a collaborator without exposing the original map.
func (rc *RunContext) CloneRequest() map[string]any {
	out := make(map[string]any, len(rc.Request))
	maps.Copy(out, rc.Request)
	return out
}
