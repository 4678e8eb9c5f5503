package autodiff

// BackwardOptions configures a backward pass.
type BackwardOptions struct {
	// Accumulate sums the new gradients into whatever the graph already
	// holds instead of rejecting a graph with non-zero gradients. Use it for
	// deliberate accumulation across several roots; the caller is then
	// responsible for resetting gradients between steps.
	Accumulate bool
}

// Visit states for the depth-first traversal.
const (
	unvisited uint8 = iota
	onStack
	finished
)

// Backward computes ∂root/∂x for every node x reachable from root.
//
// Algorithm:
//  1. Depth-first post-order over the operand graph, each node once
//  2. Reverse it so every consumer precedes its operands
//  3. Seed root.grad = 1
//  4. Run each node's local rule in that order
//
// Every reachable node must hold a zero gradient beforehand, otherwise
// ErrStaleGradient is returned and nothing is modified. A cyclic operand
// relation yields ErrCyclicGraph, also without side effects.
func Backward(root *Node) error {
	return BackwardWithOptions(root, BackwardOptions{})
}

// BackwardWithOptions is Backward with explicit options.
func BackwardWithOptions(root *Node, opts BackwardOptions) error {
	order, err := TopologicalOrder(root)
	if err != nil {
		return err
	}
	return runBackward(order, opts)
}

// runBackward checks the preconditions on an already sorted graph and then
// propagates. order[0] must be the root.
func runBackward(order []*Node, opts BackwardOptions) error {
	if !opts.Accumulate {
		for _, n := range order {
			if n.grad != 0 {
				return &GraphError{Op: "backward", Node: n, Err: ErrStaleGradient}
			}
		}
	}

	order[0].grad = 1
	for _, n := range order {
		propagate(n)
	}
	return nil
}

// TopologicalOrder returns every node reachable from root with each consumer
// placed before all of its operands. root is always first.
//
// The traversal is iterative so deep graphs (long chains of Add in a loss
// over many samples) cannot overflow the goroutine stack.
func TopologicalOrder(root *Node) ([]*Node, error) {
	if root == nil {
		return nil, &GraphError{Op: "backward", Err: ErrNilNode}
	}

	type frame struct {
		node *Node
		next int // index of the next operand to visit
	}

	state := make(map[*Node]uint8)
	post := make([]*Node, 0, 64)
	stack := []frame{{node: root}}
	state[root] = onStack

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next < len(top.node.operands) {
			child := top.node.operands[top.next]
			top.next++
			if child == nil {
				return nil, &GraphError{Op: "backward", Node: top.node, Err: ErrNilNode}
			}
			switch state[child] {
			case onStack:
				return nil, &GraphError{Op: "backward", Node: child, Err: ErrCyclicGraph}
			case finished:
				continue
			}
			state[child] = onStack
			stack = append(stack, frame{node: child})
			continue
		}

		state[top.node] = finished
		post = append(post, top.node)
		stack = stack[:len(stack)-1]
	}

	for i, j := 0, len(post)-1; i < j; i, j = i+1, j-1 {
		post[i], post[j] = post[j], post[i]
	}
	return post, nil
}
