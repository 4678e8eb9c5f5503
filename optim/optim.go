// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package optim

import (
	"github.com/born-ml/micrograd/internal/autodiff"
	"github.com/born-ml/micrograd/internal/optim"
)

// Optimizer interface defines the common interface for all optimizers.
type Optimizer = optim.Optimizer

// Config represents the base configuration for optimizers.
type Config = optim.Config

// SGD (Stochastic Gradient Descent)

// SGD represents the SGD optimizer with optional momentum.
type SGD = optim.SGD

// SGDConfig contains configuration for SGD optimizer.
type SGDConfig = optim.SGDConfig

// NewSGD creates a new SGD optimizer.
//
// Example:
//
//	optimizer := optim.NewSGD(model.Parameters(), optim.SGDConfig{
//	    LR:       0.01,
//	    Momentum: 0.9,
//	})
func NewSGD(params []*autodiff.Node, config SGDConfig) *SGD {
	return optim.NewSGD(params, config)
}

// Adam (Adaptive Moment Estimation)

// Adam represents the Adam optimizer.
type Adam = optim.Adam

// AdamConfig contains configuration for Adam optimizer.
type AdamConfig = optim.AdamConfig

// NewAdam creates a new Adam optimizer with bias correction.
func NewAdam(params []*autodiff.Node, config AdamConfig) *Adam {
	return optim.NewAdam(params, config)
}

// Scheduling and clipping

// Scheduler maps a training step to a learning rate.
type Scheduler = optim.Scheduler

// ConstantLR always returns the same rate.
type ConstantLR = optim.ConstantLR

// LinearDecay interpolates the learning rate from Start to End over Steps.
type LinearDecay = optim.LinearDecay

// Apply sets the optimizer's learning rate for step.
func Apply(opt Optimizer, sched Scheduler, step int) {
	optim.Apply(opt, sched, step)
}

// ClipGradNorm rescales gradients to a global L2 norm of at most maxNorm
// and returns the norm before clipping.
func ClipGradNorm(params []*autodiff.Node, maxNorm float64) float64 {
	return optim.ClipGradNorm(params, maxNorm)
}
