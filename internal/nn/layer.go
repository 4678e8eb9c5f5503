package nn

import (
	"fmt"
	"strings"

	"github.com/born-ml/micrograd/internal/autodiff"
)

// Layer applies outputWidth neurons to the same inputs.
//
// Example:
//
//	layer := nn.NewLayer(2, 3, nn.NeuronConfig{})
//	outs, err := layer.Forward(nn.Inputs([]float64{1, 2})) // 3 nodes
type Layer struct {
	inputWidth int
	neurons    []*Neuron
}

// NewLayer creates a layer of outputWidth neurons, each expecting
// inputWidth inputs.
//
// Panics if either width is negative.
func NewLayer(inputWidth, outputWidth int, config NeuronConfig) *Layer {
	if outputWidth < 0 {
		panic(fmt.Sprintf("NewLayer: negative output width %d", outputWidth))
	}

	neurons := make([]*Neuron, outputWidth)
	for i := range neurons {
		neurons[i] = NewNeuron(inputWidth, config)
	}

	return &Layer{
		inputWidth: inputWidth,
		neurons:    neurons,
	}
}

// Forward returns one output node per neuron, in neuron order.
//
// The input width is checked once up front so a mismatch fails before any
// neuron builds a node.
func (l *Layer) Forward(inputs []*autodiff.Node) ([]*autodiff.Node, error) {
	if len(inputs) != l.inputWidth {
		return nil, &ShapeError{Module: "Layer", Want: l.inputWidth, Got: len(inputs)}
	}

	outputs := make([]*autodiff.Node, len(l.neurons))
	for i, n := range l.neurons {
		out, err := n.Forward(inputs)
		if err != nil {
			return nil, fmt.Errorf("neuron %d: %w", i, err)
		}
		outputs[i] = out
	}
	return outputs, nil
}

// Parameters concatenates the neurons' parameters, neuron by neuron.
func (l *Layer) Parameters() []*autodiff.Node {
	var params []*autodiff.Node
	for _, n := range l.neurons {
		params = append(params, n.Parameters()...)
	}
	return params
}

// NamedParameters returns "neurons.<i>.<name>" for every neuron parameter.
func (l *Layer) NamedParameters() []NamedParameter {
	var params []NamedParameter
	for i, n := range l.neurons {
		params = append(params, prefixed(fmt.Sprintf("neurons.%d", i), n.NamedParameters())...)
	}
	return params
}

// ZeroGrad resets every parameter of the layer.
func (l *Layer) ZeroGrad() {
	ZeroGrad(l)
}

// Neurons returns the layer's neurons.
func (l *Layer) Neurons() []*Neuron {
	return l.neurons
}

// InputWidth returns the number of inputs each neuron expects.
func (l *Layer) InputWidth() int {
	return l.inputWidth
}

// OutputWidth returns the number of neurons.
func (l *Layer) OutputWidth() int {
	return len(l.neurons)
}

// String returns e.g. "Layer of [LinearNeuron(2), LinearNeuron(2)]".
func (l *Layer) String() string {
	parts := make([]string, len(l.neurons))
	for i, n := range l.neurons {
		parts[i] = n.String()
	}
	return "Layer of [" + strings.Join(parts, ", ") + "]"
}
