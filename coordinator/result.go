package coordinator

import "time"

// Status is the terminal outcome category of one coordinator invocation.
type Status string

const (
	// StatusSuccess means the pipeline completed and a payload was extracted.
	StatusSuccess Status = "success"
	// StatusError means every attempt failed.
	StatusError Status = "error"
	// StatusTimeout means the overall deadline elapsed before completion.
	StatusTimeout Status = "timeout"
	// StatusStopped means an external stop request short-circuited the run.
	StatusStopped Status = "stopped"
)

// RunResult is the terminal outcome of a coordinator invocation. Exactly one
// is produced per Run call; it is never persisted.
type RunResult struct {
	Status  Status        `json:"status"`
	Payload any           `json:"payload,omitempty"`
	Message string        `json:"message,omitempty"`
	Elapsed time.Duration `json:"elapsed,omitempty"`
}

// IsSuccess reports whether the run completed successfully.
func (r RunResult) IsSuccess() bool { return r.Status == StatusSuccess }

func successResult(payload any, elapsed time.Duration) RunResult {
	return RunResult{Status: StatusSuccess, Payload: payload, Elapsed: elapsed}
}

func errorResult(err error, elapsed time.Duration) RunResult {
	return RunResult{Status: StatusError, Message: err.Error(), Elapsed: elapsed}
}

func timeoutResult(elapsed time.Duration) RunResult {
	return RunResult{Status: StatusTimeout, Message: "overall deadline exceeded", Elapsed: elapsed}
}

func stoppedResult(elapsed time.Duration) RunResult {
	return RunResult{Status: StatusStopped, Message: "run stopped before completion", Elapsed: elapsed}
}
