package nn

import (
	"fmt"

	"github.com/born-ml/micrograd/internal/autodiff"
)

// NamedParameter pairs a parameter node with a stable dotted name such as
// "layers.1.neurons.3.w.0" or "layers.1.neurons.3.b".
//
// Names identify parameters in checkpoints independently of slice order.
type NamedParameter struct {
	Name string
	Node *autodiff.Node
}

// prefixed returns params with prefix + "." prepended to every name.
func prefixed(prefix string, params []NamedParameter) []NamedParameter {
	out := make([]NamedParameter, len(params))
	for i, p := range params {
		out[i] = NamedParameter{Name: fmt.Sprintf("%s.%s", prefix, p.Name), Node: p.Node}
	}
	return out
}
