package autodiff

// GradientTape caches the topological order of one graph so it can be
// differentiated and reset repeatedly without walking it again.
//
// Usage:
//
//	tape, err := autodiff.NewGradientTape(loss)
//	if err != nil {
//	    return err
//	}
//	if err := tape.Backward(autodiff.BackwardOptions{}); err != nil {
//	    return err
//	}
//	// ... read gradients ...
//	tape.ZeroGrad()
//
// The graph must not grow underneath the tape: nodes created after
// NewGradientTape that consume the root are not part of it.
type GradientTape struct {
	order []*Node // Consumers before operands, order[0] is the root
}

// NewGradientTape sorts the graph reachable from root.
func NewGradientTape(root *Node) (*GradientTape, error) {
	order, err := TopologicalOrder(root)
	if err != nil {
		return nil, err
	}
	return &GradientTape{order: order}, nil
}

// Root returns the node the tape differentiates.
func (t *GradientTape) Root() *Node {
	return t.order[0]
}

// Backward runs one backward pass over the recorded graph.
func (t *GradientTape) Backward(opts BackwardOptions) error {
	return runBackward(t.order, opts)
}

// ZeroGrad resets the gradient of every node on the tape, interior nodes
// included, so the next Backward starts from a clean graph.
func (t *GradientTape) ZeroGrad() {
	ZeroGrad(t.order...)
}

// Nodes returns the recorded nodes, consumers first. The slice must not be
// modified.
func (t *GradientTape) Nodes() []*Node {
	return t.order
}

// NumOps returns the number of interior (operator) nodes on the tape.
func (t *GradientTape) NumOps() int {
	count := 0
	for _, n := range t.order {
		if !n.IsLeaf() {
			count++
		}
	}
	return count
}

// Leaves returns the leaf nodes on the tape in tape order.
func (t *GradientTape) Leaves() []*Node {
	var leaves []*Node
	for _, n := range t.order {
		if n.IsLeaf() {
			leaves = append(leaves, n)
		}
	}
	return leaves
}
