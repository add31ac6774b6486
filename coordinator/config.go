package coordinator

import (
	"context"
	"fmt"
	"time"
)

// Config holds the coordinator's plain configuration knobs.
type Config struct {
	// MaxRetries is the total number of whole-pipeline attempts (the first
	// run plus MaxRetries-1 retries). Must be at least 1.
	MaxRetries int
	// RetryDelay is the fixed sleep between attempts.
	RetryDelay time.Duration
	// OverallTimeout bounds one Run invocation end to end, across all attempts.
	OverallTimeout time.Duration
	// TerminalOutputKey designates the shared-state key whose value becomes
	// the success payload. When empty, the last declared output key of the
	// root group is used.
	TerminalOutputKey string
}

// DefaultConfig mirrors the defaults of the reference travel deployment.
func DefaultConfig() Config {
	return Config{
		MaxRetries:     3,
		RetryDelay:     5 * time.Second,
		OverallTimeout: 2 * time.Minute,
	}
}

func (c Config) validate() error {
	if c.MaxRetries < 1 {
		return fmt.Errorf("max retries must be at least 1, got %d", c.MaxRetries)
	}
	if c.RetryDelay < 0 {
		return fmt.Errorf("retry delay must not be negative, got %v", c.RetryDelay)
	}
	if c.OverallTimeout <= 0 {
		return fmt.Errorf("overall timeout must be positive, got %v", c.OverallTimeout)
	}
	return nil
}

// RetryPolicy centralizes the whole-pipeline retry behavior. The coordinator
// is the sole retry authority; stages and groups never retry themselves.
type RetryPolicy struct {
	MaxAttempts int
	Delay       time.Duration
}

// Wait sleeps for the fixed delay between attempts, returning early with the
// context error if the run is cancelled or times out mid-sleep.
func (p RetryPolicy) Wait(ctx context.Context) error {
	if p.Delay <= 0 {
		return ctx.Err()
	}

	t := time.NewTimer(p.Delay)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
