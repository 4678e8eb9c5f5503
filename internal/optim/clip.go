package optim

import (
	"gonum.org/v1/gonum/floats"

	"github.com/born-ml/micrograd/internal/autodiff"
)

// ClipGradNorm rescales the gradients of params so that their global L2 norm
// is at most maxNorm, and returns the norm measured before clipping.
//
// A non-positive maxNorm only measures the norm.
func ClipGradNorm(params []*autodiff.Node, maxNorm float64) float64 {
	grads := make([]float64, len(params))
	for i, p := range params {
		grads[i] = p.Grad()
	}

	norm := floats.Norm(grads, 2)
	if maxNorm <= 0 || norm <= maxNorm {
		return norm
	}

	scaled := make([]float64, len(grads))
	floats.ScaleTo(scaled, maxNorm/norm, grads)
	for i, p := range params {
		p.AddGrad(scaled[i] - grads[i])
	}
	return norm
}
