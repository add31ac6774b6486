// Package tool implements the collaborator subsystem that lets workflow
// stages invoke external capabilities (APIs, computations, side effects)
// through one synchronous contract with consistent error handling.
package tool

import (
	"context"
	"fmt"
)

// Result status discriminator values every collaborator response carries.
const (
	// StatusSuccess indicates the collaborator completed and produced a payload.
	StatusSuccess = "success"
	// StatusError indicates the collaborator ran but reported a failure.
	StatusError = "error"
	// StatusPending indicates the collaborator deferred to an external party
	// (e.g. a human approval) and returned an interim payload.
	StatusPending = "pending"
)

// Result is the structured outcome of a collaborator call: a status
// discriminator plus either a payload mapping or a failure message.
type Result struct {
	Status  string         `json:"status"`
	Payload map[string]any `json:"payload,omitempty"`
	Message string         `json:"message,omitempty"`
}

// IsError reports whether the result carries the error discriminator.
func (r Result) IsError() bool { return r.Status == StatusError }

// Success constructs a success result with the given payload.
func Success(payload map[string]any) Result {
	return Result{Status: StatusSuccess, Payload: payload}
}

// Pending constructs a pending result with the given interim payload.
func Pending(payload map[string]any) Result {
	return Result{Status: StatusPending, Payload: payload}
}

// Errorf constructs an error result with a formatted message.
func Errorf(format string, args ...any) Result {
	return Result{Status: StatusError, Message: fmt.Sprintf(format, args...)}
}

// Tool defines the interface every external collaborator implements: a
// synchronous function from named inputs to a structured result.
//
// Tool implementations should:
//   - Provide clear, descriptive names (snake_case recommended)
//   - Convert transport-level faults (non-2xx, network error, malformed
//     response) into a returned error rather than panicking
//   - Observe ctx cancellation on any blocking work
//   - Be safe for concurrent use; parallel stages may call tools simultaneously
type Tool interface {
	// Name returns the unique identifier for this collaborator.
	Name() string

	// Description returns a human-readable description of what this collaborator does.
	Description() string

	// Call executes the collaborator with the named inputs assembled by a
	// stage. It returns a Result with a status discriminator, or an error
	// for transport-level failures.
	Call(ctx context.Context, args map[string]any) (Result, error)
}
