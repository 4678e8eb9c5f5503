package nn

import (
	"fmt"
	"strings"

	"github.com/born-ml/micrograd/internal/autodiff"
)

// Activation selects the function a nonlinear neuron applies to its output.
//
// ActivationNone is the default: neurons carry the nonlinear flag but their
// output stays the raw weighted sum.
type Activation int

// Supported activations.
const (
	ActivationNone Activation = iota
	ActivationReLU
	ActivationTanh
)

// String returns the lowercase activation name.
func (a Activation) String() string {
	switch a {
	case ActivationNone:
		return "none"
	case ActivationReLU:
		return "relu"
	case ActivationTanh:
		return "tanh"
	default:
		return fmt.Sprintf("activation(%d)", int(a))
	}
}

// ParseActivation parses "none", "relu" or "tanh" (case-insensitive).
func ParseActivation(s string) (Activation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none", "linear":
		return ActivationNone, nil
	case "relu":
		return ActivationReLU, nil
	case "tanh":
		return ActivationTanh, nil
	default:
		return ActivationNone, fmt.Errorf("%w: %q", ErrUnknownActivation, s)
	}
}

// apply wraps x in the activation's operator.
func (a Activation) apply(x *autodiff.Node) *autodiff.Node {
	switch a {
	case ActivationReLU:
		return autodiff.ReLU(x)
	case ActivationTanh:
		return autodiff.Tanh(x)
	default:
		return x
	}
}
