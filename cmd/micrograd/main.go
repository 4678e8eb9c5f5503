// Package main provides the micrograd CLI.
//
// Usage:
//
//	micrograd version
//	micrograd demo [-dot graph.dot]
//	micrograd train [flags]
//	micrograd inspect [-params] <checkpoint.born>
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
)

const version = "v0.1.0"

func main() {
	log.SetFlags(0)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("micrograd: %v", err)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	if len(args) == 0 {
		usage(out)
		return nil
	}

	switch args[0] {
	case "version":
		fmt.Fprintf(out, "micrograd %s\n", version)
		return nil
	case "demo":
		return runDemo(args[1:], out)
	case "train":
		return runTrain(ctx, args[1:], out)
	case "inspect":
		return runInspect(args[1:], out)
	case "help", "-h", "--help":
		usage(out)
		return nil
	default:
		usage(out)
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func usage(out io.Writer) {
	fmt.Fprintln(out, "micrograd - scalar autodiff and MLP training")
	fmt.Fprintf(out, "Version: %s\n\n", version)
	fmt.Fprintln(out, "Commands:")
	fmt.Fprintln(out, "  version    Show version")
	fmt.Fprintln(out, "  demo       Run backward on a small expression and print gradients")
	fmt.Fprintln(out, "  train      Train an MLP on the two-moons dataset")
	fmt.Fprintln(out, "  inspect    Describe a checkpoint file")
}
