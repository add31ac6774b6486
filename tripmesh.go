// Package tripmesh provides a high-level façade over the workflow
// coordinator and its services. Most applications interact with this package
// by:
//  1. Assembling a workflow tree (see the workflow and travel packages)
//  2. Creating a TripMesh via New() with configuration overrides
//  3. Invoking Plan() per request; every call yields one RunResult
//
// The façade delegates execution to coordinator.Coordinator while keeping
// setup ergonomics concise. Defaults are safe for local development and
// testing; production deployments typically supply a structured logger and
// tuned retry/timeout configuration.
package tripmesh

import (
	"context"

	"github.com/hupe1980/tripmesh/coordinator"
	"github.com/hupe1980/tripmesh/core"
	"github.com/hupe1980/tripmesh/logging"
)

// Options configures the TripMesh instance.
type Options struct {
	// Config supplies the coordinator's retry/timeout envelope.
	Config coordinator.Config
	// Logger receives structured instrumentation (defaults to NoOp if nil).
	Logger logging.Logger
}

// TripMesh is the high-level façade aggregating the coordinator and services.
type TripMesh struct {
	coord *coordinator.Coordinator
}

// New creates a TripMesh for the given workflow root with optional overrides.
// The tree is validated during construction.
func New(root core.Node, optFns ...func(o *Options)) (*TripMesh, error) {
	opts := Options{
		Config: coordinator.DefaultConfig(),
		Logger: logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	coord, err := coordinator.New(root, func(o *coordinator.Options) {
		o.Config = opts.Config
		o.Logger = opts.Logger
	})
	if err != nil {
		return nil, err
	}

	return &TripMesh{coord: coord}, nil
}

// Plan runs the workflow for one request and returns its terminal outcome.
func (t *TripMesh) Plan(ctx context.Context, request map[string]any) coordinator.RunResult {
	return t.coord.Run(ctx, request)
}

// Stop requests cooperative cancellation of the in-flight run, if any, and
// short-circuits the next Plan call.
func (t *TripMesh) Stop() {
	t.coord.Stop()
}
