package workflow

import (
	"fmt"

	"github.com/hupe1980/tripmesh/core"
)

// Sequential coordinates the execution of child nodes in strict declared
// order, passing the accumulated shared state between them. A child only
// starts after its predecessor's write to shared state is visible; if any
// child fails the group fails immediately without running the remaining
// children (fail-fast).
type Sequential struct {
	BaseNode
	children []core.Node // Child nodes to execute in order
}

// NewSequential creates a new sequential execution group.
func NewSequential(name string, children ...core.Node) *Sequential {
	return &Sequential{
		BaseNode: NewBaseNode(name),
		children: children,
	}
}

// Children returns the ordered child nodes.
func (s *Sequential) Children() []core.Node { return s.children }

// OutputKeys implements core.Node, returning the union of the children's
// declared keys in child order.
func (s *Sequential) OutputKeys() []string {
	var keys []string
	for _, child := range s.children {
		keys = append(keys, child.OutputKeys()...)
	}
	return keys
}

// Run implements core.Node. It executes each child in declared order;
// failures stop further processing immediately, so shared state contains
// writes only from the children that completed.
func (s *Sequential) Run(rc *core.RunContext) error {
	for _, child := range s.children {
		select {
		case <-rc.Done():
			return rc.Err()
		default:
		}

		if err := child.Run(rc); err != nil {
			return &core.GroupError{
				Group: s.Name(),
				Errs:  []error{fmt.Errorf("node %s: %w", child.Name(), err)},
			}
		}
	}

	return nil
}
