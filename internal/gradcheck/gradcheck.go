// Package gradcheck compares gradients from autodiff.Backward with central
// finite differences.
//
// Example:
//
//	build := func() (*autodiff.Node, error) {
//	    res, err := nn.MarginLoss(model, xs, ys, nn.LossConfig{})
//	    if err != nil {
//	        return nil, err
//	    }
//	    return res.Total, nil
//	}
//	report, err := gradcheck.Check(build, model.Parameters(), gradcheck.Config{})
package gradcheck

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/diff/fd"

	"github.com/born-ml/micrograd/internal/autodiff"
)

// ErrGradientMismatch is returned when an analytic gradient disagrees with
// its finite-difference estimate by more than the tolerance.
var ErrGradientMismatch = errors.New("gradient mismatch")

// Config holds options for Check.
type Config struct {
	Step      float64 // Finite-difference step (default: 1e-6)
	Tolerance float64 // Allowed error, scaled by max(1, |numeric|) (default: 1e-4)
}

// Entry is the comparison for one parameter.
type Entry struct {
	Index    int
	Analytic float64
	Numeric  float64
	AbsErr   float64
}

// Report collects one Entry per parameter.
type Report struct {
	Entries   []Entry
	MaxAbsErr float64
	Worst     int // Index of the entry with the largest scaled error, -1 if none
}

// Check builds the graph once, runs backward, and compares every parameter's
// gradient with fd.Derivative evaluated by rebuilding the graph around a
// perturbed value.
//
// params must be leaves reachable from the root; their gradients are cleared
// first and hold the analytic gradients afterwards. Every value is restored
// before Check returns. build must construct a fresh graph on each call.
func Check(build func() (*autodiff.Node, error), params []*autodiff.Node, config Config) (*Report, error) {
	if config.Step == 0 {
		config.Step = 1e-6
	}
	if config.Tolerance == 0 {
		config.Tolerance = 1e-4
	}

	autodiff.ZeroGrad(params...)
	root, err := build()
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	if err := autodiff.Backward(root); err != nil {
		return nil, fmt.Errorf("backward: %w", err)
	}

	report := &Report{Entries: make([]Entry, len(params)), Worst: -1}
	settings := &fd.Settings{Formula: fd.Central, Step: config.Step}
	worstScaled := 0.0

	for i, p := range params {
		numeric, err := derivative(build, p, settings)
		if err != nil {
			return nil, fmt.Errorf("parameter %d: %w", i, err)
		}

		entry := Entry{
			Index:    i,
			Analytic: p.Grad(),
			Numeric:  numeric,
			AbsErr:   math.Abs(p.Grad() - numeric),
		}
		report.Entries[i] = entry
		report.MaxAbsErr = math.Max(report.MaxAbsErr, entry.AbsErr)

		if scaled := entry.AbsErr / math.Max(1, math.Abs(numeric)); report.Worst < 0 || scaled > worstScaled {
			report.Worst = i
			worstScaled = scaled
		}
	}

	if worstScaled > config.Tolerance {
		w := report.Entries[report.Worst]
		return report, fmt.Errorf("%w: parameter %d: analytic %g, numeric %g",
			ErrGradientMismatch, w.Index, w.Analytic, w.Numeric)
	}
	return report, nil
}

// derivative estimates d root / d p, restoring p's value afterwards.
func derivative(build func() (*autodiff.Node, error), p *autodiff.Node, settings *fd.Settings) (float64, error) {
	orig := p.Value()
	var evalErr error

	f := func(x float64) float64 {
		if evalErr != nil {
			return math.NaN()
		}
		if err := p.SetValue(x); err != nil {
			evalErr = err
			return math.NaN()
		}
		root, err := build()
		if err != nil {
			evalErr = fmt.Errorf("build: %w", err)
			return math.NaN()
		}
		return root.Value()
	}

	numeric := fd.Derivative(f, orig, settings)

	if err := p.SetValue(orig); err != nil && evalErr == nil {
		evalErr = err
	}
	return numeric, evalErr
}
