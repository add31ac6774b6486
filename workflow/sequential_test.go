package workflow

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/tripmesh/core"
)

func TestNewSequential(t *testing.T) {
	c1 := newTestNode("Child1", []string{"k1"}, nil)
	c2 := newTestNode("Child2", []string{"k2"}, nil)

	seq := NewSequential("SequentialGroup", c1, c2)

	assert.Equal(t, "SequentialGroup", seq.Name())
	assert.Len(t, seq.Children(), 2)
	assert.Equal(t, []string{"k1", "k2"}, seq.OutputKeys())
}

func TestSequential_Run_Order(t *testing.T) {
	var order []string

	mk := func(name string) *testNode {
		return newTestNode(name, []string{name + "_out"}, func(rc *core.RunContext) error {
			order = append(order, name)
			rc.State.Set(name+"_out", name)
			return nil
		})
	}

	seq := NewSequential("SequentialGroup", mk("first"), mk("second"), mk("third"))

	require.NoError(t, seq.Run(newRunContext(nil)))
	assert.Equal(t, []string{"first", "second", "third"}, order)
}

func TestSequential_Run_StateVisibleToSuccessors(t *testing.T) {
	producer := newTestNode("producer", []string{"value"}, func(rc *core.RunContext) error {
		rc.State.Set("value", 42)
		return nil
	})

	var seen any
	consumer := newTestNode("consumer", []string{"derived"}, func(rc *core.RunContext) error {
		seen, _ = rc.State.Get("value")
		return nil
	})

	seq := NewSequential("SequentialGroup", producer, consumer)

	require.NoError(t, seq.Run(newRunContext(nil)))
	assert.Equal(t, 42, seen)
}

func TestSequential_Run_FailFast(t *testing.T) {
	sentinel := errors.New("boom")

	first := newTestNode("first", []string{"first_out"}, func(rc *core.RunContext) error {
		rc.State.Set("first_out", "done")
		return nil
	})
	failing := newTestNode("failing", []string{"failing_out"}, func(*core.RunContext) error {
		return sentinel
	})
	never := newTestNode("never", []string{"never_out"}, nil)

	seq := NewSequential("SequentialGroup", first, failing, never)
	rc := newRunContext(nil)

	err := seq.Run(rc)
	require.Error(t, err)
	assert.ErrorIs(t, err, sentinel)

	var groupErr *core.GroupError
	require.ErrorAs(t, err, &groupErr)
	assert.Equal(t, "SequentialGroup", groupErr.Group)

	// Partial-write containment: only completed predecessors wrote state.
	assert.Zero(t, never.Calls())
	_, ok := rc.State.Get("first_out")
	assert.True(t, ok)
	_, ok = rc.State.Get("failing_out")
	assert.False(t, ok)
	assert.Equal(t, 1, rc.State.Len())
}

func TestSequential_Run_NoChildren(t *testing.T) {
	seq := NewSequential("Empty")
	assert.NoError(t, seq.Run(newRunContext(nil)))
}
