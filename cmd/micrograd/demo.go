package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/born-ml/micrograd/internal/autodiff"
)

func runDemo(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("demo", flag.ContinueOnError)
	fs.SetOutput(out)
	dotPath := fs.String("dot", "", "Write the expression graph in Graphviz DOT format to this file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	a := autodiff.NewNamedLeaf(1, "a")
	b := autodiff.NewNamedLeaf(2, "b")
	c := autodiff.NewNamedLeaf(3, "c")
	d := autodiff.NewNamedLeaf(4, "d")
	sum := autodiff.Add(a, b)
	prod := autodiff.Mul(c, d)
	g := autodiff.Add(sum, prod)

	tape, err := autodiff.NewGradientTape(g)
	if err != nil {
		return err
	}
	if err := tape.Backward(autodiff.BackwardOptions{}); err != nil {
		return fmt.Errorf("backward: %w", err)
	}

	fmt.Fprintln(out, "g = (a + b) + (c * d)")
	for _, row := range []struct {
		name string
		node *autodiff.Node
	}{
		{"a", a}, {"b", b}, {"c", c}, {"d", d},
		{"a+b", sum}, {"c*d", prod}, {"g", g},
	} {
		fmt.Fprintf(out, "  %-4s data %-6g grad %g\n", row.name, row.node.Value(), row.node.Grad())
	}

	fmt.Fprintf(out, "%d nodes, %d operations, %d leaves\n", len(tape.Nodes()), tape.NumOps(), len(tape.Leaves()))

	if *dotPath != "" {
		//nolint:gosec // G304: Output path comes from the command line
		f, err := os.Create(*dotPath)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", *dotPath, err)
		}
		if err := autodiff.WriteDot(f, g); err != nil {
			_ = f.Close()
			return fmt.Errorf("failed to write graph: %w", err)
		}
		if err := f.Close(); err != nil {
			return err
		}
		fmt.Fprintf(out, "graph written to %s\n", *dotPath)
	}
	return nil
}
