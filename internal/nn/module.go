// Package nn builds neural network modules on top of scalar autodiff nodes.
//
// This package provides:
//   - Module interface: Parameters and ZeroGrad, shared by every component
//   - Neuron: weighted sum of its inputs plus a bias
//   - Layer: a row of neurons applied to the same inputs
//   - MLP: layers chained so each layer's width feeds the next
//   - MarginLoss: max-margin loss with L2 regularization
//   - Checkpoint: saving and restoring MLP parameters
//
// Every parameter is a leaf *autodiff.Node, so after autodiff.Backward on a
// loss the gradient of each weight is read straight from its node.
package nn

import "github.com/born-ml/micrograd/internal/autodiff"

// Module is the capability shared by Neuron, Layer and MLP.
//
// Modules can be composed; a composite's parameters are its children's
// parameters concatenated in order:
//
//	model := nn.NewMLP(2, []int{16, 16, 1}, nn.MLPConfig{})
//	for _, p := range model.Parameters() {
//	    fmt.Println(p.Value(), p.Grad())
//	}
type Module interface {
	// Parameters returns every learnable leaf, in a stable order.
	Parameters() []*autodiff.Node

	// ZeroGrad resets the gradient of every parameter to 0.
	//
	// Call it before each backward pass; autodiff.Backward refuses a graph
	// that still holds gradients from a previous pass.
	ZeroGrad()
}

// Network is a module that maps a sequence of input nodes to output nodes.
// Layer and MLP implement it.
type Network interface {
	Module
	Forward(inputs []*autodiff.Node) ([]*autodiff.Node, error)
}

// ZeroGrad resets every parameter of m.
func ZeroGrad(m Module) {
	autodiff.ZeroGrad(m.Parameters()...)
}

// Inputs wraps raw values as leaf nodes for a forward pass.
func Inputs(values []float64) []*autodiff.Node {
	nodes := make([]*autodiff.Node, len(values))
	for i, v := range values {
		nodes[i] = autodiff.NewLeaf(v)
	}
	return nodes
}
