package workflow

import (
	"fmt"
	"time"

	"github.com/hupe1980/tripmesh/core"
	"github.com/hupe1980/tripmesh/tool"
)

// InputSelector assembles the named inputs for a collaborator call from the
// run context. Selectors read the request payload and previously written
// state keys; they must not mutate shared state.
type InputSelector func(rc *core.RunContext) map[string]any

// Stage is the atomic unit of work: it reads specified keys from shared
// state, invokes one external collaborator, and writes the result back under
// its declared output key. Stages are stateless across runs and never retry
// themselves; retry is the coordinator's responsibility at whole-pipeline
// granularity.
type Stage struct {
	BaseNode
	outputKey string
	inputs    InputSelector
	collab    tool.Tool
}

// StageOption configures construction of a Stage.
type StageOption func(*Stage)

// WithInputs sets the input selector invoked before each collaborator call.
// The default selector passes through a copy of the request payload.
func WithInputs(sel InputSelector) StageOption {
	return func(s *Stage) { s.inputs = sel }
}

// WithStageDescription overrides the generated description.
func WithStageDescription(desc string) StageOption {
	return func(s *Stage) { s.SetDescription(desc) }
}

// NewStage constructs a stage owning the given output key and collaborator.
func NewStage(name, outputKey string, collab tool.Tool, opts ...StageOption) *Stage {
	s := &Stage{
		BaseNode:  NewBaseNode(name),
		outputKey: outputKey,
		collab:    collab,
		inputs:    func(rc *core.RunContext) map[string]any { return rc.CloneRequest() },
	}

	for _, o := range opts {
		o(s)
	}

	return s
}

// OutputKey returns the shared-state slot this stage owns.
func (s *Stage) OutputKey() string { return s.outputKey }

// OutputKeys implements core.Node.
func (s *Stage) OutputKeys() []string { return []string{s.outputKey} }

// Run implements core.Node. It assembles inputs, invokes the collaborator
// synchronously, and on success writes the result under the stage's output
// key after the call returns, so the write is never visible to concurrent
// siblings mid-execution. Any fault, including a panic inside the
// collaborator, is converted into a typed *core.StageError at this boundary.
func (s *Stage) Run(rc *core.RunContext) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &core.StageError{Stage: s.Name(), Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	select {
	case <-rc.Done():
		return rc.Err()
	default:
	}

	args := s.inputs(rc)

	start := time.Now()
	res, callErr := s.collab.Call(rc.Context, args)
	dur := time.Since(start)

	observeStage(s.Name(), dur, callErr == nil && !res.IsError())

	if callErr != nil {
		rc.LogError("Collaborator call failed", "stage", s.Name(), "tool", s.collab.Name(), "error", callErr)
		return &core.StageError{
			Stage: s.Name(),
			Err:   &core.CollaboratorError{Tool: s.collab.Name(), Err: callErr},
		}
	}

	if res.IsError() {
		rc.LogError("Collaborator reported failure", "stage", s.Name(), "tool", s.collab.Name(), "message", res.Message)
		return &core.StageError{
			Stage: s.Name(),
			Err:   &core.CollaboratorError{Tool: s.collab.Name(), Status: res.Status, Message: res.Message},
		}
	}

	// A pending result (e.g. awaiting human approval) is a business outcome,
	// not a failure; its interim payload is written through like any other.
	value := s.resultValue(res)
	rc.State.Set(s.outputKey, value)

	rc.LogDebug("Stage completed", "stage", s.Name(), "output_key", s.outputKey, "duration", dur)

	return nil
}

// resultValue picks what gets written under the output key: the structured
// payload when present, otherwise the raw textual message.
func (s *Stage) resultValue(res tool.Result) any {
	if res.Payload != nil {
		return res.Payload
	}
	return res.Message
}
