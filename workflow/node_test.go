package workflow

import (
	"context"
	"sync"

	"github.com/hupe1980/tripmesh/core"
	"github.com/hupe1980/tripmesh/tool"
)

// testNode is a lightweight concrete node used for testing composite groups.
// It records invocations and optionally returns an error.
type testNode struct {
	BaseNode
	keys  []string
	runFn func(*core.RunContext) error

	mu    sync.Mutex
	calls int
}

func newTestNode(name string, keys []string, runFn func(*core.RunContext) error) *testNode {
	if runFn == nil {
		runFn = func(*core.RunContext) error { return nil }
	}
	return &testNode{BaseNode: NewBaseNode(name), keys: keys, runFn: runFn}
}

func (t *testNode) OutputKeys() []string { return t.keys }

func (t *testNode) Run(rc *core.RunContext) error {
	t.mu.Lock()
	t.calls++
	t.mu.Unlock()
	return t.runFn(rc)
}

func (t *testNode) Calls() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.calls
}

func newRunContext(request map[string]any) *core.RunContext {
	return core.NewRunContext(context.Background(), request, nil)
}

// scriptedTool returns canned results in sequence, repeating the last one.
type scriptedTool struct {
	name string

	mu      sync.Mutex
	results []tool.Result
	errs    []error
	calls   int
	gotArgs []map[string]any
}

func newScriptedTool(name string, results ...tool.Result) *scriptedTool {
	return &scriptedTool{name: name, results: results}
}

func (s *scriptedTool) Name() string        { return s.name }
func (s *scriptedTool) Description() string { return "scripted test collaborator" }

func (s *scriptedTool) Call(_ context.Context, args map[string]any) (tool.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.calls
	s.calls++
	s.gotArgs = append(s.gotArgs, args)

	if idx < len(s.errs) && s.errs[idx] != nil {
		return tool.Result{}, s.errs[idx]
	}
	if len(s.results) == 0 {
		return tool.Success(map[string]any{}), nil
	}
	if idx >= len(s.results) {
		idx = len(s.results) - 1
	}
	return s.results[idx], nil
}

func (s *scriptedTool) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}
