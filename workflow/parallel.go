package workflow

import (
	"fmt"
	"sync"

	"github.com/hupe1980/tripmesh/core"
)

// Parallel coordinates the concurrent execution of child nodes against the
// shared state. All children are started together and joined before the
// group completes; siblings are not cancelled on first failure, so each
// child either fully completes its write or is cleanly reported as failed,
// never left half-applied. Failures from distinct children are aggregated
// after the join into a single *core.GroupError.
//
// Children must declare disjoint output keys; NewParallel rejects a group
// whose children claim the same slot, so no write-write race is possible by
// construction.
type Parallel struct {
	BaseNode
	children []core.Node // Child nodes to execute concurrently
}

// NewParallel creates a new parallel execution group. It returns an error if
// two children declare ownership of the same output key.
func NewParallel(name string, children ...core.Node) (*Parallel, error) {
	owners := map[string]string{}
	for _, child := range children {
		for _, key := range child.OutputKeys() {
			if owner, dup := owners[key]; dup {
				return nil, fmt.Errorf("parallel group %s: output key %q declared by both %s and %s", name, key, owner, child.Name())
			}
			owners[key] = child.Name()
		}
	}

	return &Parallel{
		BaseNode: NewBaseNode(name),
		children: children,
	}, nil
}

// Children returns the child nodes.
func (p *Parallel) Children() []core.Node { return p.children }

// OutputKeys implements core.Node, returning the union of the children's
// declared keys. Disjointness is guaranteed by construction.
func (p *Parallel) OutputKeys() []string {
	var keys []string
	for _, child := range p.children {
		keys = append(keys, child.OutputKeys()...)
	}
	return keys
}

// Run implements core.Node, launching all children concurrently and joining
// them before returning. The group's effective output is the union of each
// child's individual shared-state write; no aggregate value is synthesized.
func (p *Parallel) Run(rc *core.RunContext) error {
	var wg sync.WaitGroup
	errCh := make(chan error, len(p.children))

	for _, child := range p.children {
		wg.Add(1)
		go func(c core.Node) {
			defer wg.Done()

			if err := c.Run(rc); err != nil {
				errCh <- fmt.Errorf("node %s: %w", c.Name(), err)
			}
		}(child)
	}

	wg.Wait()
	close(errCh)

	var errs []error
	for err := range errCh {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return &core.GroupError{Group: p.Name(), Errs: errs}
	}

	return nil
}
