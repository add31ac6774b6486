package tool

import "context"

// FunctionTool is a generic adapter that exposes a plain Go function as a
// tripmesh collaborator.
//
// A FunctionTool has no internal mutable state after construction and is safe
// for concurrent use by multiple goroutines. The wrapped function receives
// the stage-assembled named inputs and should honor ctx cancellation if it
// blocks.
type FunctionTool struct {
	// Collaborator identifier (snake_case recommended)
	name string
	// Human-readable description of the capability
	description string
	// User supplied implementation
	fn func(ctx context.Context, args map[string]any) (Result, error)
}

// NewFunctionTool constructs a FunctionTool from a name, description and function.
//
// Example:
//
//	budget := tool.NewFunctionTool(
//	  "check_budget",
//	  "Check if total costs are within budget",
//	  func(_ context.Context, args map[string]any) (tool.Result, error) {
//	    total := args["flight_cost"].(float64) + args["hotel_cost"].(float64)
//	    return tool.Success(map[string]any{
//	      "within_budget": total <= args["budget"].(float64),
//	      "total_cost":    total,
//	    }), nil
//	  },
//	)
func NewFunctionTool(
	name, description string,
	fn func(ctx context.Context, args map[string]any) (Result, error),
) *FunctionTool {
	return &FunctionTool{name: name, description: description, fn: fn}
}

// Name returns the unique collaborator name.
func (t *FunctionTool) Name() string { return t.name }

// Description returns the human-readable description.
func (t *FunctionTool) Description() string { return t.description }

// Call invokes the wrapped function.
func (t *FunctionTool) Call(ctx context.Context, args map[string]any) (Result, error) {
	return t.fn(ctx, args)
}
