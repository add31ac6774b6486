package workflow

import (
	"fmt"

	"github.com/hupe1980/tripmesh/core"
)

// container is implemented by composite nodes exposing their children for
// tree traversal.
type container interface {
	Children() []core.Node
}

// Validate checks a workflow tree before it is handed to a coordinator:
// the tree must be finite and acyclic (a node may appear only once), every
// stage must declare a non-empty output key, and parallel groups must have
// disjoint child output keys. Constructors already reject most misuse;
// Validate covers trees assembled or mutated by hand.
func Validate(root core.Node) error {
	if root == nil {
		return fmt.Errorf("workflow root must not be nil")
	}

	seen := map[core.Node]bool{}

	return validateNode(root, seen)
}

func validateNode(node core.Node, seen map[core.Node]bool) error {
	if node == nil {
		return fmt.Errorf("workflow tree contains a nil node")
	}

	if seen[node] {
		return fmt.Errorf("workflow tree must be acyclic: node %s appears more than once", node.Name())
	}
	seen[node] = true

	switch n := node.(type) {
	case *Stage:
		if n.OutputKey() == "" {
			return fmt.Errorf("stage %s declares an empty output key", n.Name())
		}
	case *Loop:
		if n.MaxIterations() <= 0 {
			return fmt.Errorf("loop %s: max iterations must be positive", n.Name())
		}
	case *Parallel:
		owners := map[string]string{}
		for _, child := range n.Children() {
			for _, key := range child.OutputKeys() {
				if owner, dup := owners[key]; dup {
					return fmt.Errorf("parallel group %s: output key %q declared by both %s and %s", n.Name(), key, owner, child.Name())
				}
				owners[key] = child.Name()
			}
		}
	}

	if c, ok := node.(container); ok {
		for _, child := range c.Children() {
			if err := validateNode(child, seen); err != nil {
				return err
			}
		}
	}

	return nil
}
