// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"github.com/born-ml/micrograd/internal/autodiff"
	"github.com/born-ml/micrograd/internal/nn"
)

// Module is the interface shared by all network components.
type Module = nn.Module

// Network is a Module that maps input nodes to output nodes.
type Network = nn.Network

// NamedParameter pairs a parameter with its dotted name.
type NamedParameter = nn.NamedParameter

// ZeroGrad resets every parameter of m.
func ZeroGrad(m Module) { nn.ZeroGrad(m) }

// Inputs wraps raw values as leaf nodes.
func Inputs(values []float64) []*autodiff.Node { return nn.Inputs(values) }

// Modules

// Neuron computes bias + Σ wᵢ·xᵢ.
type Neuron = nn.Neuron

// NeuronConfig holds construction options for neurons.
type NeuronConfig = nn.NeuronConfig

// NewNeuron creates a neuron expecting inputWidth inputs.
func NewNeuron(inputWidth int, config NeuronConfig) *Neuron {
	return nn.NewNeuron(inputWidth, config)
}

// Layer applies several neurons to the same inputs.
type Layer = nn.Layer

// NewLayer creates a layer of outputWidth neurons.
func NewLayer(inputWidth, outputWidth int, config NeuronConfig) *Layer {
	return nn.NewLayer(inputWidth, outputWidth, config)
}

// MLP chains layers into a multi-layer perceptron.
type MLP = nn.MLP

// MLPConfig holds construction options for an MLP.
type MLPConfig = nn.MLPConfig

// NewMLP creates an MLP with one layer per entry of outputWidths.
//
// Example:
//
//	model := nn.NewMLP(3, []int{4, 4, 1}, nn.MLPConfig{})
//	fmt.Println(model.NumParameters()) // 41
func NewMLP(inputWidth int, outputWidths []int, config MLPConfig) *MLP {
	return nn.NewMLP(inputWidth, outputWidths, config)
}

// Activations

// Activation selects the function applied by hidden neurons.
type Activation = nn.Activation

// Supported activations.
const (
	ActivationNone = nn.ActivationNone
	ActivationReLU = nn.ActivationReLU
	ActivationTanh = nn.ActivationTanh
)

// ParseActivation parses "none", "relu" or "tanh".
func ParseActivation(s string) (Activation, error) { return nn.ParseActivation(s) }

// Initialization

// Initializer produces the starting value of one weight.
type Initializer = nn.Initializer

// Default parameter values.
const (
	DefaultWeight = nn.DefaultWeight
	DefaultBias   = nn.DefaultBias
)

// Constant initializes every weight to c.
func Constant(c float64) Initializer { return nn.Constant(c) }

// Uniform draws weights from U(-1, 1).
func Uniform(seed int64) Initializer { return nn.Uniform(seed) }

// Xavier draws weights from a fan-in scaled uniform distribution.
func Xavier(seed int64) Initializer { return nn.Xavier(seed) }

// Loss

// LossConfig holds configuration for MarginLoss.
type LossConfig = nn.LossConfig

// LossResult is the outcome of one loss evaluation.
type LossResult = nn.LossResult

// DefaultAlpha is the default L2 regularization strength.
const DefaultAlpha = nn.DefaultAlpha

// MarginLoss computes the max-margin loss with L2 regularization.
func MarginLoss(model Network, inputs [][]float64, labels []float64, config LossConfig) (*LossResult, error) {
	return nn.MarginLoss(model, inputs, labels, config)
}

// L2 returns alpha · Σ p².
func L2(params []*autodiff.Node, alpha float64) *autodiff.Node { return nn.L2(params, alpha) }

// Checkpoints

// Checkpoint is a saved model plus training metadata.
type Checkpoint = nn.Checkpoint

// OptimizerInfo is the optimizer state recorded in a checkpoint.
type OptimizerInfo = nn.OptimizerInfo

// LoadCheckpoint restores parameter values into model.
func LoadCheckpoint(path string, model *MLP) (*Checkpoint, error) {
	return nn.LoadCheckpoint(path, model)
}

// LoadMLP rebuilds a model from a checkpoint.
func LoadMLP(path string) (*Checkpoint, error) { return nn.LoadMLP(path) }

// Errors

// ShapeError reports an input of the wrong width.
type ShapeError = nn.ShapeError

// Common errors.
var (
	ErrShapeMismatch      = nn.ErrShapeMismatch
	ErrEmptyBatch         = nn.ErrEmptyBatch
	ErrUnknownActivation  = nn.ErrUnknownActivation
	ErrCheckpointMismatch = nn.ErrCheckpointMismatch
)
