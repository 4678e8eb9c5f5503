// Package optim implements optimization algorithms for training scalar
// networks.
//
// This package provides:
//   - Optimizer interface: Base interface for all optimizers
//   - SGD: Stochastic Gradient Descent with momentum
//   - Adam: Adaptive Moment Estimation
//   - ClipGradNorm: global gradient norm clipping
//   - LinearDecay: learning rate schedule
//
// Design inspired by PyTorch's torch.optim.
//
// Example usage:
//
//	optimizer := optim.NewSGD(model.Parameters(), optim.SGDConfig{LR: 0.1})
//
//	for step := range steps {
//	    model.ZeroGrad()
//	    res, _ := nn.MarginLoss(model, xs, ys, nn.LossConfig{})
//	    _ = autodiff.Backward(res.Total)
//	    _ = optimizer.Step()
//	}
package optim

import (
	"fmt"

	"github.com/born-ml/micrograd/internal/autodiff"
)

// Optimizer is the base interface for all optimization algorithms.
//
// Optimizers read the gradient stored on each parameter leaf and write the
// updated value back with autodiff.Node.SetValue.
type Optimizer interface {
	// Step applies one update to every parameter from its current gradient.
	Step() error

	// ZeroGrad clears all parameter gradients.
	//
	// This should be called before each backward pass; autodiff.Backward
	// rejects graphs that still hold gradients.
	ZeroGrad()

	// GetLR returns the current learning rate.
	GetLR() float64

	// SetLR updates the learning rate, for scheduling.
	SetLR(lr float64)

	// Name returns the optimizer type ("SGD", "Adam").
	Name() string
}

// Config is the base configuration for all optimizers.
type Config struct {
	LR float64 // Learning rate
}

// checkParams panics if any parameter is not a leaf.
func checkParams(kind string, params []*autodiff.Node) {
	for i, p := range params {
		if p == nil || !p.IsLeaf() {
			panic(fmt.Sprintf("%s: parameter %d is not a leaf node", kind, i))
		}
	}
}

// zeroGrad clears the gradients of params.
func zeroGrad(params []*autodiff.Node) {
	autodiff.ZeroGrad(params...)
}
