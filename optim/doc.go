// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides optimization algorithms for training scalar networks.
//
// # Overview
//
// This package contains:
//   - SGD: Stochastic Gradient Descent with momentum
//   - Adam: Adaptive Moment Estimation with bias correction
//   - ClipGradNorm: global gradient norm clipping
//   - LinearDecay: learning rate schedule
//
// # Basic Usage
//
//	model := nn.NewMLP(2, []int{16, 16, 1}, nn.MLPConfig{Activation: nn.ActivationReLU})
//	optimizer := optim.NewSGD(model.Parameters(), optim.SGDConfig{LR: 1.0})
//	schedule := optim.LinearDecay{Start: 1.0, End: 0.1, Steps: 100}
//
//	for step := range 100 {
//	    model.ZeroGrad()
//	    res, err := nn.MarginLoss(model, xs, ys, nn.LossConfig{})
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    if err := autodiff.Backward(res.Total); err != nil {
//	        log.Fatal(err)
//	    }
//	    optim.Apply(optimizer, schedule, step)
//	    if err := optimizer.Step(); err != nil {
//	        log.Fatal(err)
//	    }
//	}
package optim
