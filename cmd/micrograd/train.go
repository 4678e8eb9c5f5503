package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"runtime"
	"strconv"
	"strings"

	"github.com/born-ml/micrograd/internal/data"
	"github.com/born-ml/micrograd/internal/history"
	"github.com/born-ml/micrograd/internal/nn"
	"github.com/born-ml/micrograd/internal/optim"
	"github.com/born-ml/micrograd/internal/parallel"
	"github.com/born-ml/micrograd/internal/train"
)

func runTrain(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("train", flag.ContinueOnError)
	fs.SetOutput(out)
	steps := fs.Int("steps", 100, "Number of optimization steps")
	lr := fs.Float64("lr", 1.0, "Initial learning rate")
	decay := fs.Bool("decay", true, "Decay the learning rate linearly to 10% over the run")
	optimizer := fs.String("optimizer", "sgd", "Optimizer: sgd or adam")
	momentum := fs.Float64("momentum", 0, "SGD momentum")
	hidden := fs.String("hidden", "16,16", "Comma-separated hidden layer widths")
	activation := fs.String("activation", "relu", "Hidden activation: none, relu or tanh")
	initName := fs.String("init", "uniform", "Weight init: uniform, xavier or constant")
	samples := fs.Int("samples", 100, "Number of two-moons samples")
	noise := fs.Float64("noise", 0.1, "Two-moons noise")
	seed := fs.Int64("seed", 1337, "Random seed for data, init and batches")
	split := fs.Float64("split", 1.0, "Fraction of samples used for training; the rest is evaluated")
	alpha := fs.Float64("alpha", nn.DefaultAlpha, "L2 regularization strength (negative disables)")
	batch := fs.Int("batch", 0, "Minibatch size (0 = full batch)")
	clip := fs.Float64("clip", 0, "Clip the global gradient norm (0 = off)")
	workers := fs.Int("workers", 1, "Goroutines building per-sample graphs")
	historyPath := fs.String("history", "", "SQLite file recording every step")
	ckptPath := fs.String("checkpoint", "", "Write a .born checkpoint to this file")
	ckptEvery := fs.Int("checkpoint-every", 0, "Checkpoint every N steps (0 = at the end)")
	logEvery := fs.Int("log-every", 1, "Log every N steps")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *steps <= 0 {
		return fmt.Errorf("-steps must be positive, got %d", *steps)
	}

	widths, err := parseWidths(*hidden)
	if err != nil {
		return err
	}
	act, err := nn.ParseActivation(*activation)
	if err != nil {
		return err
	}
	weightInit, err := parseInit(*initName, *seed)
	if err != nil {
		return err
	}

	//nolint:gosec // Using math/rand for shuffling (not security-critical)
	all := data.Moons(*samples, *noise, *seed).Shuffle(rand.New(rand.NewSource(*seed)))
	trainSet, testSet := all.Split(*split)

	model := nn.NewMLP(2, append(widths, 1), nn.MLPConfig{
		Activation: act,
		WeightInit: weightInit,
	})
	fmt.Fprintf(out, "%s\n", model)
	fmt.Fprintf(out, "number of parameters %d\n", model.NumParameters())

	var opt optim.Optimizer
	switch strings.ToLower(*optimizer) {
	case "sgd":
		opt = optim.NewSGD(model.Parameters(), optim.SGDConfig{LR: *lr, Momentum: *momentum})
	case "adam":
		opt = optim.NewAdam(model.Parameters(), optim.AdamConfig{LR: *lr})
	default:
		return fmt.Errorf("unknown optimizer %q", *optimizer)
	}

	lossCfg := nn.LossConfig{Alpha: *alpha}
	if *workers > 1 {
		lossCfg.Parallel = parallel.Config{
			Enabled:      true,
			NumWorkers:   min(*workers, runtime.NumCPU()),
			MinChunkSize: parallel.DefaultConfig().MinChunkSize,
		}
	}

	cfg := train.Config{
		Steps:           *steps,
		BatchSize:       *batch,
		Seed:            *seed,
		ClipNorm:        *clip,
		LogEvery:        *logEvery,
		CheckpointPath:  *ckptPath,
		CheckpointEvery: *ckptEvery,
		Loss:            lossCfg,
	}
	if *decay {
		cfg.Schedule = optim.LinearDecay{Start: *lr, End: *lr * 0.1, Steps: *steps}
	}

	trainer := &train.Trainer{
		Model:     model,
		Optimizer: opt,
		Data:      trainSet,
		Config:    cfg,
		Logger:    log.New(out, "", 0),
	}

	if *historyPath != "" {
		store, err := history.Open(*historyPath)
		if err != nil {
			return err
		}
		defer store.Close()
		trainer.History = store
	}

	result, err := trainer.Run(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "best loss %.6f at step %d\n", result.BestLoss, result.BestStep)
	if result.RunID != 0 {
		fmt.Fprintf(out, "history run %d in %s\n", result.RunID, *historyPath)
	}

	if testSet.Len() > 0 {
		res, err := nn.MarginLoss(model, testSet.X, testSet.Y, lossCfg)
		if err != nil {
			return fmt.Errorf("evaluate: %w", err)
		}
		fmt.Fprintf(out, "held-out loss %.6f, accuracy %.1f%% on %d samples\n",
			res.Total.Value(), res.Accuracy*100, testSet.Len())
	}
	return nil
}

// parseWidths parses "16,16" into []int{16, 16}. An empty string means no
// hidden layers.
func parseWidths(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	fields := strings.Split(s, ",")
	widths := make([]int, len(fields))
	for i, f := range fields {
		w, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil || w <= 0 {
			return nil, fmt.Errorf("invalid layer width %q", f)
		}
		widths[i] = w
	}
	return widths, nil
}

func parseInit(name string, seed int64) (nn.Initializer, error) {
	switch strings.ToLower(name) {
	case "uniform":
		return nn.Uniform(seed), nil
	case "xavier":
		return nn.Xavier(seed), nil
	case "constant":
		return nn.Constant(nn.DefaultWeight), nil
	default:
		return nil, fmt.Errorf("unknown init %q", name)
	}
}
