package nn

import (
	"fmt"
	"strings"

	"github.com/born-ml/micrograd/internal/autodiff"
)

// MLPConfig holds construction options for an MLP.
type MLPConfig struct {
	// Activation applied by hidden (nonlinear) neurons. The zero value
	// ActivationNone keeps the hidden layers linear.
	Activation Activation
	WeightInit Initializer // Weight initializer (default: Constant(DefaultWeight))
	BiasInit   float64     // Initial bias (default: DefaultBias)
}

// MLP is a multi-layer perceptron: layers chained so that layer i takes the
// outputs of layer i-1 (or the external inputs for layer 0).
//
// Every layer except the last is marked nonlinear.
//
// Example:
//
//	model := nn.NewMLP(2, []int{16, 16, 1}, nn.MLPConfig{
//	    Activation: nn.ActivationReLU,
//	    WeightInit: nn.Uniform(1337),
//	})
//	outs, err := model.Forward(nn.Inputs([]float64{0.5, -1}))
type MLP struct {
	inputWidth int
	activation Activation
	layers     []*Layer
}

// NewMLP creates an MLP taking inputWidth inputs with one layer per entry of
// outputWidths.
//
// Panics if any width is negative.
func NewMLP(inputWidth int, outputWidths []int, config MLPConfig) *MLP {
	layers := make([]*Layer, len(outputWidths))
	in := inputWidth
	for i, out := range outputWidths {
		layers[i] = NewLayer(in, out, NeuronConfig{
			Nonlinear:  i != len(outputWidths)-1,
			Activation: config.Activation,
			WeightInit: config.WeightInit,
			BiasInit:   config.BiasInit,
		})
		in = out
	}

	return &MLP{
		inputWidth: inputWidth,
		activation: config.Activation,
		layers:     layers,
	}
}

// Forward threads inputs through every layer and returns the last layer's
// outputs. With no layers the inputs are returned unchanged.
func (m *MLP) Forward(inputs []*autodiff.Node) ([]*autodiff.Node, error) {
	if len(inputs) != m.inputWidth {
		return nil, &ShapeError{Module: "MLP", Want: m.inputWidth, Got: len(inputs)}
	}

	x := inputs
	for i, layer := range m.layers {
		out, err := layer.Forward(x)
		if err != nil {
			return nil, fmt.Errorf("layer %d: %w", i, err)
		}
		x = out
	}
	return x, nil
}

// Parameters concatenates the layers' parameters in layer order.
func (m *MLP) Parameters() []*autodiff.Node {
	var params []*autodiff.Node
	for _, layer := range m.layers {
		params = append(params, layer.Parameters()...)
	}
	return params
}

// NamedParameters returns "layers.<i>.neurons.<j>.<name>" for every parameter,
// in the same order as Parameters.
func (m *MLP) NamedParameters() []NamedParameter {
	var params []NamedParameter
	for i, layer := range m.layers {
		params = append(params, prefixed(fmt.Sprintf("layers.%d", i), layer.NamedParameters())...)
	}
	return params
}

// ZeroGrad resets every parameter of the model.
func (m *MLP) ZeroGrad() {
	ZeroGrad(m)
}

// NumParameters returns the total number of weights and biases.
func (m *MLP) NumParameters() int {
	count := 0
	for _, layer := range m.layers {
		count += layer.OutputWidth() * (layer.InputWidth() + 1)
	}
	return count
}

// Layers returns the model's layers.
func (m *MLP) Layers() []*Layer {
	return m.layers
}

// InputWidth returns the number of external inputs.
func (m *MLP) InputWidth() int {
	return m.inputWidth
}

// OutputWidths returns the width of each layer.
func (m *MLP) OutputWidths() []int {
	widths := make([]int, len(m.layers))
	for i, layer := range m.layers {
		widths[i] = layer.OutputWidth()
	}
	return widths
}

// Activation returns the hidden-layer activation.
func (m *MLP) Activation() Activation {
	return m.activation
}

// String returns e.g. "MLP of [Layer of [...], Layer of [...]]".
func (m *MLP) String() string {
	parts := make([]string, len(m.layers))
	for i, layer := range m.layers {
		parts[i] = layer.String()
	}
	return "MLP of [" + strings.Join(parts, ", ") + "]"
}
