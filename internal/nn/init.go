package nn

import (
	"math"
	"math/rand"
)

// Default parameter values used when no initializer is configured.
const (
	DefaultWeight = 1.0
	DefaultBias   = 0.0
)

// Initializer produces the starting value of one weight given the fan-in of
// its neuron. It is called sequentially during construction.
type Initializer func(fanIn int) float64

// Constant initializes every weight to c.
//
// With constant weights all neurons of a layer start identical and receive
// identical gradients; use it for deterministic tests, not for training.
func Constant(c float64) Initializer {
	return func(int) float64 { return c }
}

// Uniform draws weights from U(-1, 1) with a seeded generator.
func Uniform(seed int64) Initializer {
	//nolint:gosec // Using math/rand for weight initialization (not security-critical)
	rng := rand.New(rand.NewSource(seed))
	return func(int) float64 {
		return rng.Float64()*2 - 1
	}
}

// Xavier draws weights from U(-sqrt(6/(fanIn+fanOut)), sqrt(6/(fanIn+fanOut))).
//
// Only the fan-in is known per neuron, so fanOut is taken as 1, which keeps
// the bound at sqrt(6/(fanIn+1)).
func Xavier(seed int64) Initializer {
	//nolint:gosec // Using math/rand for weight initialization (not security-critical)
	rng := rand.New(rand.NewSource(seed))
	return func(fanIn int) float64 {
		bound := math.Sqrt(6.0 / float64(fanIn+1))
		return (rng.Float64()*2 - 1) * bound
	}
}
