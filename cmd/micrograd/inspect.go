package main

import (
	"flag"
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/born-ml/micrograd/internal/nn"
	"github.com/born-ml/micrograd/internal/serialization"
)

func runInspect(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	fs.SetOutput(out)
	showParams := fs.Bool("params", false, "Print every parameter value")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: micrograd inspect [-params] <checkpoint.born>")
	}
	path := fs.Arg(0)

	r, err := serialization.NewReader(path)
	if err != nil {
		return err
	}
	defer r.Close()

	h := r.Header()
	fmt.Fprintf(out, "file:       %s\n", path)
	fmt.Fprintf(out, "format:     v%d (written by %s)\n", h.FormatVersion, h.Version)
	fmt.Fprintf(out, "model:      %s\n", h.ModelType)
	fmt.Fprintf(out, "created:    %s\n", h.CreatedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(out, "parameters: %d\n", len(h.Params))

	if m := h.CheckpointMeta; m != nil {
		fmt.Fprintf(out, "inputs:     %d\n", m.InputWidth)
		fmt.Fprintf(out, "layers:     %v\n", m.Architecture)
		fmt.Fprintf(out, "activation: %s\n", m.Activation)
		fmt.Fprintf(out, "step:       %d\n", m.Step)
		fmt.Fprintf(out, "loss:       %.6f\n", m.Loss)
		if m.Optimizer != "" {
			fmt.Fprintf(out, "optimizer:  %s (lr %g)\n", m.Optimizer, m.LearningRate)
		}
	}
	for _, k := range slices.Sorted(maps.Keys(h.Metadata)) {
		fmt.Fprintf(out, "meta %s = %s\n", k, h.Metadata[k])
	}

	if h.ModelType == nn.ModelTypeMLP && h.CheckpointMeta != nil {
		ckpt, err := nn.LoadMLP(path)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s\n", ckpt.Model)
	}

	if *showParams {
		params, err := r.ReadParams()
		if err != nil {
			return err
		}
		for _, p := range params {
			fmt.Fprintf(out, "  %-28s % .6f\n", p.Name, p.Value)
		}
	}
	return nil
}
