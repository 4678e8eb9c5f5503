// Package data provides small labeled datasets for binary classification.
package data

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
)

// ErrLengthMismatch is returned when X and Y disagree in length.
var ErrLengthMismatch = errors.New("inputs and labels differ in length")

// Dataset holds inputs and their ±1 labels.
type Dataset struct {
	X [][]float64
	Y []float64
}

// Len returns the number of samples.
func (d *Dataset) Len() int {
	return len(d.Y)
}

// Validate checks that every sample has a label and all inputs share a width.
func (d *Dataset) Validate() error {
	if len(d.X) != len(d.Y) {
		return fmt.Errorf("%w: %d inputs, %d labels", ErrLengthMismatch, len(d.X), len(d.Y))
	}
	for i, x := range d.X {
		if len(x) != len(d.X[0]) {
			return fmt.Errorf("sample %d has width %d, want %d", i, len(x), len(d.X[0]))
		}
	}
	return nil
}

// Batch returns size samples drawn without replacement using rng.
// A non-positive size, or one at least Len, returns d itself.
func (d *Dataset) Batch(size int, rng *rand.Rand) *Dataset {
	if size <= 0 || size >= d.Len() {
		return d
	}

	idx := rng.Perm(d.Len())[:size]
	return d.subset(idx)
}

// Shuffle returns a copy of d with samples in a random order.
func (d *Dataset) Shuffle(rng *rand.Rand) *Dataset {
	return d.subset(rng.Perm(d.Len()))
}

// Split returns the first fraction of samples and the rest.
// fraction is clamped to [0, 1].
func (d *Dataset) Split(fraction float64) (first, rest *Dataset) {
	fraction = math.Min(1, math.Max(0, fraction))
	n := int(fraction * float64(d.Len()))

	first = &Dataset{X: d.X[:n:n], Y: d.Y[:n:n]}
	rest = &Dataset{X: d.X[n:], Y: d.Y[n:]}
	return first, rest
}

func (d *Dataset) subset(idx []int) *Dataset {
	out := &Dataset{
		X: make([][]float64, len(idx)),
		Y: make([]float64, len(idx)),
	}
	for i, j := range idx {
		out.X[i] = d.X[j]
		out.Y[i] = d.Y[j]
	}
	return out
}

// Moons generates two interleaving half circles, the toy problem used to
// demonstrate the MLP.
//
// The upper moon is labeled -1 and the lower moon +1. Gaussian noise with
// standard deviation noise is added to both coordinates. Samples are
// returned upper moon first; use Shuffle before Split.
func Moons(n int, noise float64, seed int64) *Dataset {
	if n < 0 {
		panic(fmt.Sprintf("Moons: negative sample count %d", n))
	}

	//nolint:gosec // Using math/rand for synthetic data (not security-critical)
	rng := rand.New(rand.NewSource(seed))

	nOuter := n / 2
	nInner := n - nOuter
	d := &Dataset{
		X: make([][]float64, 0, n),
		Y: make([]float64, 0, n),
	}

	for _, t := range span(nOuter) {
		d.X = append(d.X, []float64{math.Cos(t), math.Sin(t)})
		d.Y = append(d.Y, -1)
	}
	for _, t := range span(nInner) {
		d.X = append(d.X, []float64{1 - math.Cos(t), 0.5 - math.Sin(t)})
		d.Y = append(d.Y, 1)
	}

	if noise > 0 {
		for _, x := range d.X {
			x[0] += rng.NormFloat64() * noise
			x[1] += rng.NormFloat64() * noise
		}
	}
	return d
}

// span returns n evenly spaced angles over [0, π].
func span(n int) []float64 {
	switch n {
	case 0:
		return nil
	case 1:
		return []float64{0}
	}
	return floats.Span(make([]float64, n), 0, math.Pi)
}
