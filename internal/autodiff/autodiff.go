// Package autodiff implements reverse-mode automatic differentiation over scalars.
//
// Every value produced by a differentiable operator is a *Node that remembers
// which operator produced it and from which operand nodes. The operands form a
// directed acyclic graph rooted at whatever node the caller treats as the
// output (usually a loss).
//
// Architecture:
//   - Node: cached forward value, gradient accumulator, operands, operator tag
//   - Op: tagged variant {Leaf, Add, Mul, Pow, Exp, Log, ReLU, Tanh}
//   - propagate: single dispatch function holding every local derivative rule
//   - Backward: depth-first post-order, reversed, then one propagate per node
//
// Usage:
//
//	a := autodiff.NewLeaf(2.0)
//	b := autodiff.NewLeaf(3.0)
//	c := autodiff.Mul(a, b) // c = a*b
//
//	if err := autodiff.Backward(c); err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(a.Grad()) // dc/da = b = 3.0
package autodiff

// Node is a single scalar produced by a computation.
//
// The forward fields (value, operands, op) are written once by the
// constructor and only read afterwards, so a graph may be shared freely
// between readers. The gradient is the only field mutated after creation and
// only during a backward pass or an explicit reset.
type Node struct {
	value    float64 // Forward result
	grad     float64 // ∂root/∂this, valid after a backward pass
	operands []*Node // Inputs of the producing operator (0, 1 or 2)
	op       Op      // Producing operator; OpLeaf for free variables and constants
	name     string  // Optional diagnostic name
}

// NewLeaf creates a node with no operands and a zero gradient.
func NewLeaf(value float64) *Node {
	return &Node{value: value, op: Op{Kind: OpLeaf}}
}

// NewNamedLeaf creates a leaf carrying a diagnostic name (e.g. "w0").
func NewNamedLeaf(value float64, name string) *Node {
	n := NewLeaf(value)
	n.name = name
	return n
}

// Scalar wraps a constant. It is a leaf like any other; the name only
// documents intent at call sites.
func Scalar(value float64) *Node {
	return NewLeaf(value)
}

// newNode creates an interior node. Operands must already exist, which is
// what keeps the graph acyclic.
func newNode(value float64, op Op, operands ...*Node) *Node {
	return &Node{
		value:    value,
		operands: operands,
		op:       op,
	}
}

// Value returns the cached forward value.
func (n *Node) Value() float64 {
	return n.value
}

// Grad returns the accumulated gradient.
func (n *Node) Grad() float64 {
	return n.grad
}

// Operands returns the nodes this node was computed from.
//
// The same node may appear twice (x*x). The returned slice must not be
// modified.
func (n *Node) Operands() []*Node {
	return n.operands
}

// Op returns the operator that produced this node.
func (n *Node) Op() Op {
	return n.op
}

// Label returns the operator tag ("" for leaves, "+" for Add, "*" for Mul).
func (n *Node) Label() string {
	return n.op.Kind.String()
}

// Name returns the diagnostic name, if any.
func (n *Node) Name() string {
	return n.name
}

// IsLeaf reports whether the node has no producing operator.
func (n *Node) IsLeaf() bool {
	return n.op.Kind == OpLeaf
}

// SetValue replaces the value of a leaf.
//
// Optimizers use this to update parameters between training steps. Interior
// nodes are derived from their operands and cannot be overwritten; graphs
// built before the update keep the value they cached.
func (n *Node) SetValue(value float64) error {
	if !n.IsLeaf() {
		return &GraphError{Op: "set value", Node: n, Err: ErrNotLeaf}
	}
	n.value = value
	return nil
}

// ZeroGrad resets the gradient of this node to 0.
func (n *Node) ZeroGrad() {
	n.grad = 0
}

// ZeroGrad resets the gradient of every given node to 0.
func ZeroGrad(nodes ...*Node) {
	for _, n := range nodes {
		n.grad = 0
	}
}

// AddGrad adds delta to the gradient accumulator.
//
// Gradients are only ever accumulated, never assigned, apart from the root
// seed and explicit resets.
func (n *Node) AddGrad(delta float64) {
	n.grad += delta
}

// String implements fmt.Stringer in the form Value(data=3, grad=1).
func (n *Node) String() string {
	return formatNode(n)
}
