package nn

import (
	"fmt"

	"github.com/born-ml/micrograd/internal/autodiff"
)

// NeuronConfig holds construction options shared by Neuron, Layer and MLP.
type NeuronConfig struct {
	Nonlinear  bool        // Mark the neuron as hidden (non-output)
	Activation Activation  // Applied only when Nonlinear is set (default: ActivationNone)
	WeightInit Initializer // Weight initializer (default: Constant(DefaultWeight))
	BiasInit   float64     // Initial bias (default: DefaultBias)
}

// Neuron computes bias + Σ wᵢ·xᵢ over its inputs.
//
// Weights and bias are leaf nodes owned by the neuron; every forward pass
// builds a fresh graph that consumes them, so gradients land on the same
// leaves across steps.
//
// Example:
//
//	n := nn.NewNeuron(3, nn.NeuronConfig{})
//	out, err := n.Forward(nn.Inputs([]float64{1, 2, 3}))
type Neuron struct {
	weights    []*autodiff.Node // [input_width]
	bias       *autodiff.Node
	nonlinear  bool
	activation Activation
}

// NewNeuron creates a neuron expecting inputWidth inputs.
//
// Panics if inputWidth is negative.
func NewNeuron(inputWidth int, config NeuronConfig) *Neuron {
	if inputWidth < 0 {
		panic(fmt.Sprintf("NewNeuron: negative input width %d", inputWidth))
	}
	if config.WeightInit == nil {
		config.WeightInit = Constant(DefaultWeight)
	}

	weights := make([]*autodiff.Node, inputWidth)
	for i := range weights {
		weights[i] = autodiff.NewNamedLeaf(config.WeightInit(inputWidth), fmt.Sprintf("w%d", i))
	}

	return &Neuron{
		weights:    weights,
		bias:       autodiff.NewNamedLeaf(config.BiasInit, "b"),
		nonlinear:  config.Nonlinear,
		activation: config.Activation,
	}
}

// Forward builds the neuron's output node for the given inputs.
//
// Returns a *ShapeError when len(inputs) differs from the configured width;
// no node is created in that case.
func (n *Neuron) Forward(inputs []*autodiff.Node) (*autodiff.Node, error) {
	if len(inputs) != len(n.weights) {
		return nil, &ShapeError{Module: "Neuron", Want: len(n.weights), Got: len(inputs)}
	}
	for i, x := range inputs {
		if x == nil {
			return nil, fmt.Errorf("neuron: input %d: %w", i, autodiff.ErrNilNode)
		}
	}

	act := n.bias
	for i, w := range n.weights {
		act = autodiff.Add(act, autodiff.Mul(w, inputs[i]))
	}

	if n.nonlinear {
		act = n.activation.apply(act)
	}
	return act, nil
}

// Parameters returns the weights followed by the bias.
func (n *Neuron) Parameters() []*autodiff.Node {
	params := make([]*autodiff.Node, 0, len(n.weights)+1)
	params = append(params, n.weights...)
	return append(params, n.bias)
}

// NamedParameters returns "w.<i>" for each weight and "b" for the bias.
func (n *Neuron) NamedParameters() []NamedParameter {
	params := make([]NamedParameter, 0, len(n.weights)+1)
	for i, w := range n.weights {
		params = append(params, NamedParameter{Name: fmt.Sprintf("w.%d", i), Node: w})
	}
	return append(params, NamedParameter{Name: "b", Node: n.bias})
}

// ZeroGrad resets the gradients of the weights and the bias.
func (n *Neuron) ZeroGrad() {
	ZeroGrad(n)
}

// Weights returns the weight nodes.
func (n *Neuron) Weights() []*autodiff.Node {
	return n.weights
}

// Bias returns the bias node.
func (n *Neuron) Bias() *autodiff.Node {
	return n.bias
}

// InputWidth returns the number of inputs the neuron expects.
func (n *Neuron) InputWidth() int {
	return len(n.weights)
}

// Nonlinear reports whether the neuron was built as a hidden neuron.
func (n *Neuron) Nonlinear() bool {
	return n.nonlinear
}

// Activation returns the configured activation.
func (n *Neuron) Activation() Activation {
	return n.activation
}

// String returns e.g. "LinearNeuron(2)" or "ReLUNeuron(2)".
func (n *Neuron) String() string {
	kind := "Linear"
	if n.nonlinear {
		switch n.activation {
		case ActivationReLU:
			kind = "ReLU"
		case ActivationTanh:
			kind = "Tanh"
		}
	}
	return fmt.Sprintf("%sNeuron(%d)", kind, len(n.weights))
}
