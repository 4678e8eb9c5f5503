package nn

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrShapeMismatch      = errors.New("shape mismatch")
	ErrEmptyBatch         = errors.New("empty batch")
	ErrUnknownActivation  = errors.New("unknown activation")
	ErrCheckpointMismatch = errors.New("checkpoint does not match model")
)

// ShapeError reports an input sequence whose length disagrees with the
// width a module was configured with. It matches ErrShapeMismatch.
type ShapeError struct {
	Module string // Module that rejected the input (e.g. "Neuron", "Layer")
	Want   int    // Configured width
	Got    int    // Received length
}

// Error implements the error interface.
func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s: expected width %d, got %d", e.Module, e.Want, e.Got)
}

// Unwrap returns ErrShapeMismatch.
func (e *ShapeError) Unwrap() error {
	return ErrShapeMismatch
}
