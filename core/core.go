package core

import (
	"github.com/google/uuid"

	"github.com/hupe1980/tripmesh/logging"
)

// Node is implemented by every element of a workflow tree: atomic stages and
// the composition groups (sequential, parallel, loop) that arrange them.
// Nodes are stateless across runs; all per-run data flows through the
// RunContext they receive.
type Node interface {
	// Name returns the human-readable identifier for this node.
	Name() string

	// OutputKeys returns the shared-state keys this node (or its subtree)
	// declares ownership of. Used for assembly-time disjointness validation
	// of parallel groups.
	OutputKeys() []string

	// Run executes the node against the supplied run context. Failures are
	// returned as typed errors, never raised as uncaught faults.
	Run(rc *RunContext) error
}

// NewID generates a new unique identifier for runs.
func NewID() string {
	return uuid.NewString()
}

// loggerAdapter wraps a logging.Logger and exposes convenience methods
// (LogDebug/LogInfo/LogWarn/LogError). It guarantees a non-nil logger by
// substituting a NoOpLogger when constructed with nil.
type loggerAdapter struct {
	logger logging.Logger
}

// newLoggerAdapter constructs a loggerAdapter with a non-nil logger.
func newLoggerAdapter(l logging.Logger) *loggerAdapter {
	if l == nil {
		l = logging.NoOpLogger{}
	}
	return &loggerAdapter{logger: l}
}

// Logger returns the underlying logger.
func (l *loggerAdapter) Logger() logging.Logger {
	return l.logger
}

// LogDebug logs a debug message.
func (l *loggerAdapter) LogDebug(msg string, args ...any) {
	l.logger.Debug(msg, args...)
}

// LogInfo logs an info message.
func (l *loggerAdapter) LogInfo(msg string, args ...any) {
	l.logger.Info(msg, args...)
}

// LogWarn logs a warning message.
func (l *loggerAdapter) LogWarn(msg string, args ...any) {
	l.logger.Warn(msg, args...)
}

// LogError logs an error message.
func (l *loggerAdapter) LogError(msg string, args ...any) {
	l.logger.Error(msg, args...)
}
