package core

import (
	"errors"
	"fmt"
	"strings"
)

// ErrStopped signals that a run was cancelled by an external stop request
// rather than by a timeout or failure.
var ErrStopped = errors.New("run stopped")

// CollaboratorError reports a failed external tool call: a transport-level
// fault or a result carrying an error status discriminator. Stages convert
// collaborator faults into this type instead of propagating raw transport
// errors.
type CollaboratorError struct {
	Tool    string // Name of the collaborator that failed
	Status  string // Result status discriminator, if one was returned
	Message string // Human-readable failure description
	Err     error  // Underlying transport error, if any
}

// Error implements the error interface.
func (e *CollaboratorError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	return fmt.Sprintf("collaborator %s failed: %s", e.Tool, msg)
}

// Unwrap returns the underlying transport error.
func (e *CollaboratorError) Unwrap() error { return e.Err }

// StageError wraps a collaborator failure or internal fault surfaced by a
// single stage. Stage failures are always caught and converted into this
// typed value at the stage boundary.
type StageError struct {
	Stage string // Name of the stage that failed
	Err   error  // Wrapped cause
}

// Error implements the error interface.
func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s failed: %v", e.Stage, e.Err)
}

// Unwrap returns the wrapped cause.
func (e *StageError) Unwrap() error { return e.Err }

// GroupError reports failure of a composition group: fail-fast propagation
// from sequential and loop groups carries a single cause, while parallel
// groups aggregate every failed child after the join.
type GroupError struct {
	Group string  // Name of the failed group
	Errs  []error // One (fail-fast) or more (aggregated) child failures
}

// Error implements the error interface.
func (e *GroupError) Error() string {
	msgs := make([]string, len(e.Errs))
	for i, err := range e.Errs {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("group %s failed: %s", e.Group, strings.Join(msgs, "; "))
}

// Unwrap returns the child failures for errors.Is / errors.As traversal.
func (e *GroupError) Unwrap() []error { return e.Errs }

// RetriesExhaustedError is returned by the coordinator once every pipeline
// attempt has failed. Last carries the failure of the final attempt.
type RetriesExhaustedError struct {
	Attempts int
	Last     error
}

// Error implements the error interface.
func (e *RetriesExhaustedError) Error() string {
	return fmt.Sprintf("failed after %d attempts: %v", e.Attempts, e.Last)
}

// Unwrap returns the last attempt's failure.
func (e *RetriesExhaustedError) Unwrap() error { return e.Last }
