package nn

import (
	"fmt"

	"github.com/born-ml/micrograd/internal/autodiff"
	"github.com/born-ml/micrograd/internal/parallel"
)

// DefaultAlpha is the L2 regularization strength used when LossConfig.Alpha
// is zero.
const DefaultAlpha = 1e-4

// LossConfig holds configuration for MarginLoss.
type LossConfig struct {
	// Alpha scales the L2 penalty Σ p². Zero selects DefaultAlpha; a
	// negative value disables regularization.
	Alpha float64

	// Parallel controls how per-sample forward graphs are built. The zero
	// value builds them sequentially. Building concurrently is safe because
	// a forward pass only reads parameter values and allocates new nodes;
	// the backward pass over the returned loss is always sequential.
	Parallel parallel.Config
}

// LossResult is the outcome of one loss evaluation.
type LossResult struct {
	Total    *autodiff.Node   // Data + Reg; call autodiff.Backward on this
	Data     *autodiff.Node   // Mean hinge loss
	Reg      *autodiff.Node   // Alpha · Σ p², nil when disabled
	Scores   []*autodiff.Node // One score per sample
	Accuracy float64          // Fraction of samples with sign(score) == sign(label)
}

// MarginLoss computes the max-margin (SVM) loss of a single-output network
// with L2 regularization over its parameters.
//
//	data = Σ relu(1 - yᵢ·scoreᵢ) / n
//	reg  = alpha · Σ p²
//	loss = data + reg
//
// Labels are expected to be -1 or +1. Each call builds a fresh graph over
// the model's parameters; zero the model's gradients before running
// backward on Total.
func MarginLoss(model Network, inputs [][]float64, labels []float64, config LossConfig) (*LossResult, error) {
	if len(inputs) == 0 {
		return nil, ErrEmptyBatch
	}
	if len(labels) != len(inputs) {
		return nil, &ShapeError{Module: "MarginLoss", Want: len(inputs), Got: len(labels)}
	}

	scores, err := forwardScores(model, inputs, config.Parallel)
	if err != nil {
		return nil, err
	}

	losses := make([]*autodiff.Node, len(scores))
	correct := 0
	for i, score := range scores {
		// 1 + (-y)·score
		margin := autodiff.Add(autodiff.Scalar(1), autodiff.Mul(autodiff.Scalar(-labels[i]), score))
		losses[i] = autodiff.ReLU(margin)

		if (labels[i] > 0) == (score.Value() > 0) {
			correct++
		}
	}

	n := float64(len(scores))
	data := autodiff.Mul(autodiff.Sum(losses...), autodiff.Scalar(1/n))
	result := &LossResult{
		Total:    data,
		Data:     data,
		Scores:   scores,
		Accuracy: float64(correct) / n,
	}

	alpha := config.Alpha
	if alpha == 0 {
		alpha = DefaultAlpha
	}
	if alpha > 0 {
		result.Reg = L2(model.Parameters(), alpha)
		result.Total = autodiff.Add(data, result.Reg)
	}

	return result, nil
}

// L2 returns alpha · Σ p² over params.
func L2(params []*autodiff.Node, alpha float64) *autodiff.Node {
	squares := make([]*autodiff.Node, len(params))
	for i, p := range params {
		squares[i] = autodiff.Mul(p, p)
	}
	return autodiff.Mul(autodiff.Scalar(alpha), autodiff.Sum(squares...))
}

// forwardScores runs the model on every sample and returns its single output.
func forwardScores(model Network, inputs [][]float64, cfg parallel.Config) ([]*autodiff.Node, error) {
	scores := make([]*autodiff.Node, len(inputs))
	errs := make([]error, len(inputs))

	parallel.For(len(inputs), func(i int) {
		out, err := model.Forward(Inputs(inputs[i]))
		if err != nil {
			errs[i] = err
			return
		}
		if len(out) != 1 {
			errs[i] = &ShapeError{Module: "MarginLoss", Want: 1, Got: len(out)}
			return
		}
		scores[i] = out[0]
	}, cfg)

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("sample %d: %w", i, err)
		}
	}
	return scores, nil
}
