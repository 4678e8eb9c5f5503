// Package train runs the optimization loop for an MLP on a labeled dataset.
//
// Every step builds a fresh graph: zero the gradients, evaluate MarginLoss,
// run backward, optionally clip, update, then report.
package train

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"math/rand"
	"strconv"
	"strings"

	"github.com/born-ml/micrograd/internal/autodiff"
	"github.com/born-ml/micrograd/internal/data"
	"github.com/born-ml/micrograd/internal/history"
	"github.com/born-ml/micrograd/internal/nn"
	"github.com/born-ml/micrograd/internal/optim"
)

// Common errors.
var (
	ErrNoData        = errors.New("no training data")
	ErrNonFiniteLoss = errors.New("loss is not finite")
)

// Config holds training options.
type Config struct {
	Steps           int             // Number of optimization steps (default: 100)
	BatchSize       int             // Samples per step; 0 uses the full dataset
	Seed            int64           // Seed for minibatch sampling
	ClipNorm        float64         // Global gradient norm limit; 0 disables clipping
	Schedule        optim.Scheduler // Learning rate per step; nil keeps the optimizer's rate
	LogEvery        int             // Log every N steps (default: 1); negative disables logging
	CheckpointPath  string          // Where checkpoints are written; empty disables them
	CheckpointEvery int             // Save every N steps; 0 saves only after the last step
	Loss            nn.LossConfig   // Passed to nn.MarginLoss
}

// Result summarizes a run.
type Result struct {
	RunID         int64 // History run ID, 0 without a store
	Steps         int   // Completed steps
	InitialLoss   float64
	FinalLoss     float64
	FinalAccuracy float64
	BestLoss      float64
	BestStep      int
}

// Trainer fits Model to Data with Optimizer.
//
// Example:
//
//	t := &train.Trainer{
//	    Model:     model,
//	    Optimizer: optim.NewSGD(model.Parameters(), optim.SGDConfig{LR: 1.0}),
//	    Data:      data.Moons(100, 0.1, 1337),
//	    Config:    train.Config{Steps: 100, Schedule: optim.LinearDecay{Start: 1.0, End: 0.1, Steps: 100}},
//	}
//	result, err := t.Run(ctx)
type Trainer struct {
	Model     *nn.MLP
	Optimizer optim.Optimizer
	Data      *data.Dataset
	Config    Config
	History   *history.Store // Optional step log
	Logger    *log.Logger    // Progress output (default: log.Default())
}

// Run executes Config.Steps optimization steps.
//
// Cancellation is checked between steps; on cancellation the partial Result
// is returned together with the context's error. A NaN or infinite loss stops
// the run before that step's update with an error wrapping ErrNonFiniteLoss.
func (t *Trainer) Run(ctx context.Context) (*Result, error) {
	cfg := t.Config
	if cfg.Steps == 0 {
		cfg.Steps = 100
	}
	if cfg.Steps < 0 {
		return nil, fmt.Errorf("invalid step count %d", cfg.Steps)
	}
	if cfg.LogEvery == 0 {
		cfg.LogEvery = 1
	}
	logger := t.Logger
	if logger == nil {
		logger = log.Default()
	}

	if t.Data == nil || t.Data.Len() == 0 {
		return nil, ErrNoData
	}
	if err := t.Data.Validate(); err != nil {
		return nil, fmt.Errorf("invalid dataset: %w", err)
	}

	result := &Result{BestStep: -1}
	if t.History != nil {
		id, err := t.History.StartRun(ctx, history.RunInfo{
			Architecture: Architecture(t.Model),
			Activation:   t.Model.Activation().String(),
			Optimizer:    t.Optimizer.Name(),
			Samples:      t.Data.Len(),
			Seed:         cfg.Seed,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to start run: %w", err)
		}
		result.RunID = id
	}

	//nolint:gosec // Using math/rand for minibatch sampling (not security-critical)
	rng := rand.New(rand.NewSource(cfg.Seed))
	params := t.Model.Parameters()

	for step := 0; step < cfg.Steps; step++ {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("stopped after %d steps: %w", step, err)
		}

		if cfg.Schedule != nil {
			optim.Apply(t.Optimizer, cfg.Schedule, step)
		}

		batch := t.Data.Batch(cfg.BatchSize, rng)

		t.Model.ZeroGrad()
		res, err := nn.MarginLoss(t.Model, batch.X, batch.Y, cfg.Loss)
		if err != nil {
			return result, fmt.Errorf("step %d: loss: %w", step, err)
		}
		if loss := res.Total.Value(); math.IsNaN(loss) || math.IsInf(loss, 0) {
			logger.Printf("step %d loss %v: stopping", step, loss)
			if t.History != nil {
				rec := history.StepRecord{Step: step, Loss: loss, Accuracy: res.Accuracy, LR: t.Optimizer.GetLR(), GradNorm: math.NaN()}
				if err := t.History.RecordStep(ctx, result.RunID, rec); err != nil {
					return result, err
				}
			}
			return result, fmt.Errorf("step %d: %w (%v)", step, ErrNonFiniteLoss, loss)
		}
		if err := autodiff.Backward(res.Total); err != nil {
			return result, fmt.Errorf("step %d: backward: %w", step, err)
		}

		gradNorm := optim.ClipGradNorm(params, cfg.ClipNorm)

		if err := t.Optimizer.Step(); err != nil {
			return result, fmt.Errorf("step %d: update: %w", step, err)
		}

		loss := res.Total.Value()
		result.Steps = step + 1
		result.FinalLoss = loss
		result.FinalAccuracy = res.Accuracy
		if step == 0 {
			result.InitialLoss = loss
		}
		if result.BestStep < 0 || loss < result.BestLoss {
			result.BestLoss = loss
			result.BestStep = step
		}

		if cfg.LogEvery > 0 && (step%cfg.LogEvery == 0 || step == cfg.Steps-1) {
			logger.Printf("step %d loss %.6f, accuracy %.1f%%", step, loss, res.Accuracy*100)
		}

		if t.History != nil {
			rec := history.StepRecord{
				Step:     step,
				Loss:     loss,
				Accuracy: res.Accuracy,
				LR:       t.Optimizer.GetLR(),
				GradNorm: gradNorm,
			}
			if err := t.History.RecordStep(ctx, result.RunID, rec); err != nil {
				return result, err
			}
		}

		last := step == cfg.Steps-1
		if cfg.CheckpointPath != "" && (last || (cfg.CheckpointEvery > 0 && (step+1)%cfg.CheckpointEvery == 0)) {
			if err := t.checkpoint(cfg.CheckpointPath, step+1, loss); err != nil {
				return result, err
			}
		}
	}

	return result, nil
}

func (t *Trainer) checkpoint(path string, step int, loss float64) error {
	ckpt := &nn.Checkpoint{
		Model:     t.Model,
		Optimizer: t.Optimizer,
		Step:      int64(step),
		Loss:      loss,
		Metadata: map[string]string{
			"samples": strconv.Itoa(t.Data.Len()),
		},
	}
	if err := ckpt.Save(path); err != nil {
		return fmt.Errorf("checkpoint at step %d: %w", step, err)
	}
	return nil
}

// Architecture renders a model's widths as "in-h1-...-out", e.g. "2-16-16-1".
func Architecture(m *nn.MLP) string {
	parts := []string{strconv.Itoa(m.InputWidth())}
	for _, w := range m.OutputWidths() {
		parts = append(parts, strconv.Itoa(w))
	}
	return strings.Join(parts, "-")
}
