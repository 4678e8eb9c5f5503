package optim

import (
	"fmt"

	"github.com/born-ml/micrograd/internal/autodiff"
)

// SGD implements Stochastic Gradient Descent optimizer with optional momentum.
//
// Update rule without momentum:
//
//	param = param - lr * gradient
//
// Update rule with momentum:
//
//	velocity = momentum * velocity + gradient
//	param = param - lr * velocity
//
// Example:
//
//	optimizer := optim.NewSGD(model.Parameters(), optim.SGDConfig{
//	    LR:       0.01,
//	    Momentum: 0.9,
//	})
type SGD struct {
	params     []*autodiff.Node
	lr         float64
	momentum   float64
	velocities []float64 // Parallel to params; nil until the first momentum step
}

// SGDConfig holds configuration for SGD optimizer.
type SGDConfig struct {
	LR       float64 // Learning rate (default: 0.01)
	Momentum float64 // Momentum factor (default: 0.0, range: [0, 1))
}

// NewSGD creates a new SGD optimizer.
//
// Panics if any parameter is not a leaf node.
func NewSGD(params []*autodiff.Node, config SGDConfig) *SGD {
	checkParams("NewSGD", params)

	// Set defaults
	if config.LR == 0 {
		config.LR = 0.01
	}

	return &SGD{
		params:   params,
		lr:       config.LR,
		momentum: config.Momentum,
	}
}

// Step performs a single optimization step.
//
//   - Without momentum: param -= lr * grad
//   - With momentum: velocity = momentum * velocity + grad, param -= lr * velocity
func (s *SGD) Step() error {
	if s.momentum != 0 && s.velocities == nil {
		s.velocities = make([]float64, len(s.params))
	}

	for i, p := range s.params {
		update := p.Grad()
		if s.momentum != 0 {
			s.velocities[i] = s.momentum*s.velocities[i] + update
			update = s.velocities[i]
		}

		if err := p.SetValue(p.Value() - s.lr*update); err != nil {
			return fmt.Errorf("sgd: parameter %d: %w", i, err)
		}
	}
	return nil
}

// ZeroGrad clears gradients for all parameters.
func (s *SGD) ZeroGrad() {
	zeroGrad(s.params)
}

// GetLR returns the current learning rate.
func (s *SGD) GetLR() float64 {
	return s.lr
}

// SetLR updates the learning rate.
func (s *SGD) SetLR(lr float64) {
	s.lr = lr
}

// Name returns "SGD".
func (s *SGD) Name() string {
	return "SGD"
}

// Velocities returns a copy of the momentum buffers, or nil before the first
// momentum step.
func (s *SGD) Velocities() []float64 {
	if s.velocities == nil {
		return nil
	}
	return append([]float64(nil), s.velocities...)
}
