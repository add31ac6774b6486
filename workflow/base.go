package workflow

import "fmt"

// BaseNode bundles shared identity helpers. Embed it in concrete node
// implementations and supply OutputKeys and Run to satisfy core.Node.
type BaseNode struct {
	name        string // Human-readable name
	description string // Detailed description of the node's purpose
}

// NewBaseNode constructs a BaseNode with a generated description
// (customizable via SetDescription).
func NewBaseNode(name string) BaseNode {
	return BaseNode{
		name:        name,
		description: fmt.Sprintf("Node %s", name),
	}
}

// Name returns the human-readable name for this node.
func (b *BaseNode) Name() string { return b.name }

// Description returns a detailed description of this node's purpose.
func (b *BaseNode) Description() string { return b.description }

// SetDescription updates the node's description.
func (b *BaseNode) SetDescription(desc string) { b.description = desc }
