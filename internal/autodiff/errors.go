package autodiff

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrCyclicGraph   = errors.New("operand graph contains a cycle")
	ErrStaleGradient = errors.New("graph holds gradients from a previous backward pass; call ZeroGrad first")
	ErrNotLeaf       = errors.New("node is not a leaf")
	ErrNilNode       = errors.New("nil node")
)

// GraphError describes a failure tied to a specific node.
type GraphError struct {
	Op   string // Operation that failed (e.g. "backward", "set value")
	Node *Node  // Offending node, may be nil
	Err  error  // Underlying sentinel
}

// Error implements the error interface.
func (e *GraphError) Error() string {
	if e.Node == nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: node %s: %v", e.Op, e.Node, e.Err)
}

// Unwrap returns the underlying sentinel error.
func (e *GraphError) Unwrap() error {
	return e.Err
}
