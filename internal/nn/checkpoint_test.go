package nn_test

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/micrograd/internal/nn"
	"github.com/born-ml/micrograd/internal/serialization"
)

type fakeOptimizer struct{}

func (fakeOptimizer) Name() string   { return "Fake" }
func (fakeOptimizer) GetLR() float64 { return 0.25 }

func paramValues(m *nn.MLP) []float64 {
	params := m.Parameters()
	values := make([]float64, len(params))
	for i, p := range params {
		values[i] = p.Value()
	}
	return values
}

func TestCheckpoint_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.born")
	model := nn.NewMLP(2, []int{3, 1}, nn.MLPConfig{
		Activation: nn.ActivationTanh,
		WeightInit: nn.Uniform(3),
	})

	ckpt := &nn.Checkpoint{
		Model:     model,
		Optimizer: fakeOptimizer{},
		Step:      17,
		Loss:      0.75,
		Metadata:  map[string]string{"dataset": "moons"},
	}
	require.NoError(t, ckpt.Save(path))

	t.Run("LoadMLP", func(t *testing.T) {
		loaded, err := nn.LoadMLP(path)
		require.NoError(t, err)

		assert.Equal(t, int64(17), loaded.Step)
		assert.Equal(t, 0.75, loaded.Loss)
		assert.Equal(t, "moons", loaded.Metadata["dataset"])
		assert.Equal(t, nn.ActivationTanh, loaded.Model.Activation())
		assert.Equal(t, []int{3, 1}, loaded.Model.OutputWidths())
		assert.Equal(t, paramValues(model), paramValues(loaded.Model))

		in := nn.Inputs([]float64{0.3, -0.7})
		want, err := model.Forward(in)
		require.NoError(t, err)
		got, err := loaded.Model.Forward(nn.Inputs([]float64{0.3, -0.7}))
		require.NoError(t, err)
		assert.Equal(t, want[0].Value(), got[0].Value())
	})

	t.Run("LoadCheckpoint", func(t *testing.T) {
		fresh := nn.NewMLP(2, []int{3, 1}, nn.MLPConfig{Activation: nn.ActivationTanh})

		loaded, err := nn.LoadCheckpoint(path, fresh)
		require.NoError(t, err)
		assert.Same(t, fresh, loaded.Model)
		assert.Equal(t, int64(17), loaded.Step)
		assert.Equal(t, paramValues(model), paramValues(fresh))
	})

	t.Run("header", func(t *testing.T) {
		header, params, err := serialization.ReadFile(path)
		require.NoError(t, err)

		assert.Equal(t, nn.ModelTypeMLP, header.ModelType)
		require.NotNil(t, header.CheckpointMeta)
		assert.Equal(t, "Fake", header.CheckpointMeta.Optimizer)
		assert.Equal(t, 0.25, header.CheckpointMeta.LearningRate)
		assert.Equal(t, 2, header.CheckpointMeta.InputWidth)
		assert.Equal(t, "tanh", header.CheckpointMeta.Activation)
		assert.Len(t, params, model.NumParameters())
		assert.Equal(t, "layers.0.neurons.0.w.0", params[0].Name)
	})
}

func TestLoadCheckpoint_Mismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.born")
	require.NoError(t, (&nn.Checkpoint{Model: nn.NewMLP(2, []int{3, 1}, nn.MLPConfig{})}).Save(path))

	t.Run("count", func(t *testing.T) {
		other := nn.NewMLP(2, []int{4, 1}, nn.MLPConfig{WeightInit: nn.Constant(0.5)})
		before := paramValues(other)

		_, err := nn.LoadCheckpoint(path, other)
		assert.ErrorIs(t, err, nn.ErrCheckpointMismatch)
		assert.Equal(t, before, paramValues(other))
	})

	t.Run("names", func(t *testing.T) {
		// Same count (13) under different names.
		other := nn.NewMLP(2, []int{1, 1, 1, 1, 1, 1}, nn.MLPConfig{WeightInit: nn.Constant(0.5)})
		require.Equal(t, 13, other.NumParameters())
		before := paramValues(other)

		_, err := nn.LoadCheckpoint(path, other)
		assert.ErrorIs(t, err, nn.ErrCheckpointMismatch)
		assert.Equal(t, before, paramValues(other))
	})
}

func TestLoadMLP_NotACheckpoint(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain.born")
	params := []serialization.Param{{Name: "w", Value: 1}}
	require.NoError(t, serialization.WriteFile(path, params, serialization.Header{ModelType: "Other"}))

	_, err := nn.LoadMLP(path)
	assert.ErrorIs(t, err, nn.ErrCheckpointMismatch)
}

func TestLoadMLP_MissingFile(t *testing.T) {
	_, err := nn.LoadMLP(filepath.Join(t.TempDir(), "missing.born"))
	assert.Error(t, err)
}

func TestLoadMLP_ForgedArchitecture(t *testing.T) {
	tests := []struct {
		name  string
		input int
		arch  []int
		param int
	}{
		{"huge layers, no params", 3000, []int{3000, 3000}, 0},
		{"count disagrees", 2, []int{3, 1}, 1},
		{"overflowing width", math.MaxInt / 2, []int{math.MaxInt / 2}, 0},
		{"negative width", 2, []int{-1}, 0},
		{"negative input", -2, []int{1}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "forged.born")
			params := make([]serialization.Param, tt.param)
			for i := range params {
				params[i] = serialization.Param{Name: "p" + string(rune('a'+i)), Value: 1}
			}
			header := serialization.Header{
				ModelType: nn.ModelTypeMLP,
				CheckpointMeta: &serialization.CheckpointMeta{
					InputWidth:   tt.input,
					Architecture: tt.arch,
				},
			}
			require.NoError(t, serialization.WriteFile(path, params, header))

			_, err := nn.LoadMLP(path)
			assert.ErrorIs(t, err, nn.ErrCheckpointMismatch)
		})
	}
}

func TestCheckpoint_NonFiniteLoss(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diverged.born")
	model := nn.NewMLP(2, []int{1}, nn.MLPConfig{})

	require.NoError(t, (&nn.Checkpoint{Model: model, Step: 3, Loss: math.NaN()}).Save(path))

	loaded, err := nn.LoadMLP(path)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(loaded.Loss))
	assert.Equal(t, int64(3), loaded.Step)
	assert.Equal(t, paramValues(model), paramValues(loaded.Model))
}
