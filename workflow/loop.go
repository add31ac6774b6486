package workflow

import (
	"fmt"

	"github.com/hupe1980/tripmesh/core"
)

// LoopState enumerates the lifecycle of a Loop group during one run.
type LoopState int

const (
	// LoopRunning means the loop is still iterating.
	LoopRunning LoopState = iota
	// LoopConverged means the continue predicate turned false before the cap.
	LoopConverged
	// LoopCappedOut means the iteration ceiling was hit before convergence.
	// It is a terminal success: the workflow proceeds with the last
	// iteration's state, since an unmet condition after the cap is a
	// business outcome, not a system error.
	LoopCappedOut
)

// String returns the string representation of the loop state.
func (s LoopState) String() string {
	switch s {
	case LoopRunning:
		return "running"
	case LoopConverged:
		return "converged"
	case LoopCappedOut:
		return "capped_out"
	default:
		return "unknown"
	}
}

// Predicate decides whether a loop should run another iteration. It receives
// a snapshot of shared state after each body pass and returns true to
// continue. Predicates must be pure: they must not mutate the snapshot.
type Predicate func(snap core.Snapshot) bool

// Loop repeats an ordered body of nodes until the continue predicate turns
// false (convergence) or an iteration ceiling is hit. The body runs as an
// implicit sequential group, so a body failure fails the loop immediately.
// The ceiling is always enforced even if the predicate never turns false; a
// nil predicate means the loop always runs to its cap.
type Loop struct {
	BaseNode
	body          *Sequential
	maxIterations int
	predicate     Predicate
}

// NewLoop constructs a loop around an ordered body. maxIterations must be
// strictly positive; it is the hard termination guarantee.
func NewLoop(name string, maxIterations int, predicate Predicate, body ...core.Node) (*Loop, error) {
	if maxIterations <= 0 {
		return nil, fmt.Errorf("loop %s: max iterations must be positive, got %d", name, maxIterations)
	}

	return &Loop{
		BaseNode:      NewBaseNode(name),
		body:          NewSequential(name+".body", body...),
		maxIterations: maxIterations,
		predicate:     predicate,
	}, nil
}

// MaxIterations returns the iteration ceiling.
func (l *Loop) MaxIterations() int { return l.maxIterations }

// Children returns the ordered body nodes.
func (l *Loop) Children() []core.Node { return l.body.Children() }

// OutputKeys implements core.Node, returning the body's declared keys.
func (l *Loop) OutputKeys() []string { return l.body.OutputKeys() }

// Run implements core.Node. Both terminal states, converged and capped out,
// complete the loop successfully; only a body failure or cancellation
// surfaces as an error.
func (l *Loop) Run(rc *core.RunContext) error {
	state, iters, err := l.iterate(rc)
	if err != nil {
		return err
	}

	observeLoop(l.Name(), state, iters)
	rc.LogInfo("Loop finished", "loop", l.Name(), "state", state.String(), "iterations", iters)

	return nil
}

// iterate drives the body passes. After each pass the predicate votes on
// another iteration; a false vote converges the loop even on the final
// allowed pass, while a true vote at the ceiling caps the loop out rather
// than re-running, guaranteeing termination.
func (l *Loop) iterate(rc *core.RunContext) (LoopState, int, error) {
	for i := 1; i <= l.maxIterations; i++ {
		select {
		case <-rc.Done():
			return LoopRunning, i - 1, rc.Err()
		default:
		}

		rc.LogDebug("Loop iteration starting", "loop", l.Name(), "iteration", i)

		if err := l.body.Run(rc); err != nil {
			return LoopRunning, i, &core.GroupError{
				Group: l.Name(),
				Errs:  []error{fmt.Errorf("iteration %d: %w", i, err)},
			}
		}

		if l.predicate != nil && !l.predicate(rc.State.Snapshot()) {
			return LoopConverged, i, nil
		}

		if i == l.maxIterations {
			return LoopCappedOut, i, nil
		}
	}

	// Unreachable: the counted loop above always returns.
	return LoopCappedOut, l.maxIterations, nil
}
