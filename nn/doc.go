// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides neural network building blocks over scalar autodiff nodes.
//
// # Overview
//
// This package contains:
//   - Modules: Neuron, Layer, MLP
//   - Activations: None, ReLU, Tanh
//   - Loss functions: MarginLoss, L2
//   - Initialization: Constant, Uniform, Xavier
//   - Checkpoints: Checkpoint, LoadCheckpoint, LoadMLP
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/micrograd/autodiff"
//	    "github.com/born-ml/micrograd/nn"
//	)
//
//	func main() {
//	    // Build a 2-16-16-1 network
//	    model := nn.NewMLP(2, []int{16, 16, 1}, nn.MLPConfig{
//	        Activation: nn.ActivationReLU,
//	        WeightInit: nn.Uniform(1337),
//	    })
//
//	    // Forward pass
//	    out, err := model.Forward(nn.Inputs([]float64{0.5, -1.0}))
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    // Backward pass
//	    model.ZeroGrad()
//	    if err := autodiff.Backward(out[0]); err != nil {
//	        log.Fatal(err)
//	    }
//	}
//
// # Parameters
//
// Every weight and bias is a leaf *autodiff.Node. Parameters are returned in
// a stable order (layer by layer, neuron by neuron, weights then bias), and
// NamedParameters pairs each one with a dotted name used by checkpoints:
//
//	for _, p := range model.NamedParameters() {
//	    fmt.Println(p.Name, p.Node.Value(), p.Node.Grad())
//	}
//
// # Loss
//
// MarginLoss evaluates the max-margin loss of a single-output network over a
// batch of labeled samples (labels -1 or +1) and adds an L2 penalty:
//
//	res, err := nn.MarginLoss(model, xs, ys, nn.LossConfig{})
//	fmt.Printf("loss %.4f, accuracy %.1f%%\n", res.Total.Value(), res.Accuracy*100)
//
// # Checkpoints
//
// Checkpoints store parameter values in the .born format together with the
// architecture, so a model can be rebuilt without knowing its shape:
//
//	ckpt, err := nn.LoadMLP("model.born")
//	model := ckpt.Model
package nn
