// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/born-ml/micrograd/autodiff"
	"github.com/born-ml/micrograd/nn"
	"github.com/born-ml/micrograd/optim"
)

// TestModuleInterface verifies that concrete types implement Module interface.
func TestModuleInterface(t *testing.T) {
	tests := []struct {
		name   string
		module nn.Module
		params int
	}{
		{name: "Neuron", module: nn.NewNeuron(3, nn.NeuronConfig{}), params: 4},
		{name: "Layer", module: nn.NewLayer(3, 2, nn.NeuronConfig{}), params: 8},
		{name: "MLP", module: nn.NewMLP(3, []int{4, 4, 1}, nn.MLPConfig{}), params: 41},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := tt.module.Parameters()
			if len(params) != tt.params {
				t.Errorf("len(Parameters()) = %d, want %d", len(params), tt.params)
			}
			for i, p := range params {
				if !p.IsLeaf() {
					t.Errorf("parameter %d is not a leaf", i)
				}
			}
		})
	}
}

// TestNetworkInterface verifies Layer and MLP satisfy Network.
func TestNetworkInterface(_ *testing.T) {
	var _ nn.Network = nn.NewLayer(2, 2, nn.NeuronConfig{})
	var _ nn.Network = nn.NewMLP(2, []int{1}, nn.MLPConfig{})
}

// TestPublicAPI_TrainStep runs one forward/backward/update cycle through the
// public packages only.
func TestPublicAPI_TrainStep(t *testing.T) {
	model := nn.NewMLP(2, []int{4, 1}, nn.MLPConfig{
		Activation: nn.ActivationTanh,
		WeightInit: nn.Uniform(7),
	})
	opt := optim.NewSGD(model.Parameters(), optim.SGDConfig{LR: 0.1})

	xs := [][]float64{{1, 2}, {-1, -2}, {2, -1}, {-2, 1}}
	ys := []float64{1, -1, 1, -1}

	var first, last float64
	for step := range 20 {
		model.ZeroGrad()
		res, err := nn.MarginLoss(model, xs, ys, nn.LossConfig{})
		if err != nil {
			t.Fatalf("MarginLoss: %v", err)
		}
		if err := autodiff.Backward(res.Total); err != nil {
			t.Fatalf("Backward: %v", err)
		}
		if err := opt.Step(); err != nil {
			t.Fatalf("Step: %v", err)
		}
		if step == 0 {
			first = res.Total.Value()
		}
		last = res.Total.Value()
	}

	if last >= first {
		t.Errorf("loss did not decrease: first %.4f, last %.4f", first, last)
	}
}

// TestPublicAPI_ShapeMismatch verifies error sentinels survive re-export.
func TestPublicAPI_ShapeMismatch(t *testing.T) {
	model := nn.NewMLP(2, []int{1}, nn.MLPConfig{})
	_, err := model.Forward(nn.Inputs([]float64{1}))
	if !errors.Is(err, nn.ErrShapeMismatch) {
		t.Fatalf("Forward error = %v, want ErrShapeMismatch", err)
	}

	var shapeErr *nn.ShapeError
	if !errors.As(err, &shapeErr) {
		t.Fatalf("Forward error %v is not a *ShapeError", err)
	}
	if shapeErr.Want != 2 || shapeErr.Got != 1 {
		t.Errorf("ShapeError = %+v, want Want=2 Got=1", shapeErr)
	}
}

// TestPublicAPI_Checkpoint saves and rebuilds a model.
func TestPublicAPI_Checkpoint(t *testing.T) {
	model := nn.NewMLP(2, []int{3, 1}, nn.MLPConfig{WeightInit: nn.Xavier(1)})
	path := filepath.Join(t.TempDir(), "model.born")

	ckpt := &nn.Checkpoint{Model: model, Step: 5, Loss: 0.5}
	if err := ckpt.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := nn.LoadMLP(path)
	if err != nil {
		t.Fatalf("LoadMLP: %v", err)
	}

	want := model.Parameters()
	got := loaded.Model.Parameters()
	if len(got) != len(want) {
		t.Fatalf("loaded %d parameters, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Value() != want[i].Value() {
			t.Errorf("parameter %d = %v, want %v", i, got[i].Value(), want[i].Value())
		}
	}
	if loaded.Step != 5 {
		t.Errorf("Step = %d, want 5", loaded.Step)
	}
}
