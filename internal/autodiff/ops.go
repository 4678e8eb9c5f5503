package autodiff

import "math"

// Add returns a + b.
//
// Backward:
//   - ∂(a+b)/∂a = 1, so a.grad += out.grad
//   - ∂(a+b)/∂b = 1, so b.grad += out.grad
func Add(a, b *Node) *Node {
	return newNode(a.value+b.value, Op{Kind: OpAdd}, a, b)
}

// Mul returns a * b.
//
// Backward:
//   - ∂(a*b)/∂a = b, so a.grad += b.value * out.grad
//   - ∂(a*b)/∂b = a, so b.grad += a.value * out.grad
func Mul(a, b *Node) *Node {
	return newNode(a.value*b.value, Op{Kind: OpMul}, a, b)
}

// Neg returns -a, built as a * (-1).
func Neg(a *Node) *Node {
	return Mul(a, Scalar(-1))
}

// Sub returns a - b, built as a + (-b).
func Sub(a, b *Node) *Node {
	return Add(a, Neg(b))
}

// Pow returns a^k for a constant exponent k.
//
// Backward: ∂(a^k)/∂a = k * a^(k-1).
func Pow(a *Node, k float64) *Node {
	return newNode(math.Pow(a.value, k), Op{Kind: OpPow, Exponent: k}, a)
}

// Div returns a / b, built as a * b^-1.
func Div(a, b *Node) *Node {
	return Mul(a, Pow(b, -1))
}

// Exp returns e^a.
func Exp(a *Node) *Node {
	return newNode(math.Exp(a.value), Op{Kind: OpExp}, a)
}

// Log returns ln(a). a must be positive for a finite gradient.
func Log(a *Node) *Node {
	return newNode(math.Log(a.value), Op{Kind: OpLog}, a)
}

// ReLU returns max(0, a). The gradient is 1 where the output is positive and
// 0 otherwise.
func ReLU(a *Node) *Node {
	return newNode(math.Max(0, a.value), Op{Kind: OpReLU}, a)
}

// Tanh returns tanh(a).
//
// Backward: ∂tanh(a)/∂a = 1 - tanh²(a), computed from the cached output.
func Tanh(a *Node) *Node {
	return newNode(math.Tanh(a.value), Op{Kind: OpTanh}, a)
}

// Sum folds nodes with Add from left to right.
//
// Sum of no nodes is a fresh zero leaf; Sum of one node is that node.
func Sum(nodes ...*Node) *Node {
	if len(nodes) == 0 {
		return Scalar(0)
	}
	out := nodes[0]
	for _, n := range nodes[1:] {
		out = Add(out, n)
	}
	return out
}

// Add returns n + other.
func (n *Node) Add(other *Node) *Node { return Add(n, other) }

// Mul returns n * other.
func (n *Node) Mul(other *Node) *Node { return Mul(n, other) }

// Sub returns n - other.
func (n *Node) Sub(other *Node) *Node { return Sub(n, other) }

// Neg returns -n.
func (n *Node) Neg() *Node { return Neg(n) }

// Pow returns n^k.
func (n *Node) Pow(k float64) *Node { return Pow(n, k) }

// Div returns n / other.
func (n *Node) Div(other *Node) *Node { return Div(n, other) }

// ReLU returns max(0, n).
func (n *Node) ReLU() *Node { return ReLU(n) }

// Tanh returns tanh(n).
func (n *Node) Tanh() *Node { return Tanh(n) }
