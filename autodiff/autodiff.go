// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides scalar reverse-mode automatic differentiation.
//
// Every value is a *Node in a directed acyclic graph. Operators build new
// nodes from existing ones; Backward walks the graph from a root in reverse
// topological order and accumulates d(root)/d(node) into every node.
//
// Example:
//
//	import "github.com/born-ml/micrograd/autodiff"
//
//	func main() {
//	    a := autodiff.NewLeaf(2)
//	    b := autodiff.NewLeaf(-3)
//	    c := autodiff.Tanh(autodiff.Add(autodiff.Mul(a, b), autodiff.NewLeaf(10)))
//
//	    if err := autodiff.Backward(c); err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(a.Grad(), b.Grad())
//	}
package autodiff

import (
	"io"

	"github.com/born-ml/micrograd/internal/autodiff"
)

// Node is a scalar value in a computation graph.
type Node = autodiff.Node

// Op identifies the operator that produced a node.
type Op = autodiff.Op

// OpKind enumerates the supported operators.
type OpKind = autodiff.OpKind

// Operator kinds.
const (
	OpLeaf = autodiff.OpLeaf
	OpAdd  = autodiff.OpAdd
	OpMul  = autodiff.OpMul
	OpPow  = autodiff.OpPow
	OpExp  = autodiff.OpExp
	OpLog  = autodiff.OpLog
	OpReLU = autodiff.OpReLU
	OpTanh = autodiff.OpTanh
)

// BackwardOptions controls a backward pass.
type BackwardOptions = autodiff.BackwardOptions

// GradientTape caches the topological order of one graph.
type GradientTape = autodiff.GradientTape

// GraphError describes a failure tied to a specific node.
type GraphError = autodiff.GraphError

// Errors returned by graph operations.
var (
	ErrCyclicGraph   = autodiff.ErrCyclicGraph
	ErrStaleGradient = autodiff.ErrStaleGradient
	ErrNotLeaf       = autodiff.ErrNotLeaf
	ErrNilNode       = autodiff.ErrNilNode
)

// NewLeaf creates an input or parameter node.
func NewLeaf(value float64) *Node { return autodiff.NewLeaf(value) }

// NewNamedLeaf creates a leaf with a display name.
func NewNamedLeaf(value float64, name string) *Node { return autodiff.NewNamedLeaf(value, name) }

// Scalar creates a constant leaf.
func Scalar(value float64) *Node { return autodiff.Scalar(value) }

// Add returns a + b.
func Add(a, b *Node) *Node { return autodiff.Add(a, b) }

// Mul returns a * b.
func Mul(a, b *Node) *Node { return autodiff.Mul(a, b) }

// Sub returns a - b.
func Sub(a, b *Node) *Node { return autodiff.Sub(a, b) }

// Neg returns -a.
func Neg(a *Node) *Node { return autodiff.Neg(a) }

// Div returns a / b.
func Div(a, b *Node) *Node { return autodiff.Div(a, b) }

// Pow returns a raised to the constant exponent k.
func Pow(a *Node, k float64) *Node { return autodiff.Pow(a, k) }

// Exp returns e^a.
func Exp(a *Node) *Node { return autodiff.Exp(a) }

// Log returns ln(a).
func Log(a *Node) *Node { return autodiff.Log(a) }

// ReLU returns max(0, a).
func ReLU(a *Node) *Node { return autodiff.ReLU(a) }

// Tanh returns tanh(a).
func Tanh(a *Node) *Node { return autodiff.Tanh(a) }

// Sum adds all nodes.
func Sum(nodes ...*Node) *Node { return autodiff.Sum(nodes...) }

// ZeroGrad resets the gradient of every node.
func ZeroGrad(nodes ...*Node) { autodiff.ZeroGrad(nodes...) }

// Backward computes d(root)/d(node) for every node reachable from root.
func Backward(root *Node) error { return autodiff.Backward(root) }

// BackwardWithOptions is Backward with explicit options.
func BackwardWithOptions(root *Node, opts BackwardOptions) error {
	return autodiff.BackwardWithOptions(root, opts)
}

// TopologicalOrder returns the graph reachable from root, consumers first.
func TopologicalOrder(root *Node) ([]*Node, error) { return autodiff.TopologicalOrder(root) }

// NewGradientTape records the order of the graph reachable from root.
func NewGradientTape(root *Node) (*GradientTape, error) { return autodiff.NewGradientTape(root) }

// WriteDot writes the graph reachable from root in Graphviz DOT format.
func WriteDot(w io.Writer, root *Node) error { return autodiff.WriteDot(w, root) }
