package history_test

import (
	"context"
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/micrograd/internal/history"
)

func openStore(t *testing.T) *history.Store {
	t.Helper()
	store, err := history.Open(filepath.Join(t.TempDir(), "nested", "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStore_RunRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)

	started := time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)
	id, err := store.StartRun(ctx, history.RunInfo{
		StartedAt:    started,
		Architecture: "2-16-16-1",
		Activation:   "relu",
		Optimizer:    "SGD",
		Samples:      100,
		Seed:         1337,
	})
	require.NoError(t, err)
	assert.Positive(t, id)

	run, err := store.Run(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, run.ID)
	assert.True(t, started.Equal(run.StartedAt))
	assert.Equal(t, "2-16-16-1", run.Architecture)
	assert.Equal(t, int64(1337), run.Seed)

	ids, err := store.Runs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{id}, ids)

	_, err = store.Run(ctx, id+1)
	assert.ErrorIs(t, err, history.ErrRunNotFound)
}

func TestStore_Steps(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)

	id, err := store.StartRun(ctx, history.RunInfo{Architecture: "2-1"})
	require.NoError(t, err)
	other, err := store.StartRun(ctx, history.RunInfo{Architecture: "2-1"})
	require.NoError(t, err)

	records := []history.StepRecord{
		{Step: 2, Loss: 0.5, Accuracy: 0.75, LR: 0.9, GradNorm: 1.5},
		{Step: 0, Loss: 1.2, Accuracy: 0.5, LR: 1.0, GradNorm: 3},
		{Step: 1, Loss: 0.8, Accuracy: 0.6, LR: 0.95, GradNorm: 2},
	}
	for _, rec := range records {
		require.NoError(t, store.RecordStep(ctx, id, rec))
	}
	require.NoError(t, store.RecordStep(ctx, other, history.StepRecord{Step: 0, Loss: 0.1}))

	steps, err := store.Steps(ctx, id)
	require.NoError(t, err)
	require.Len(t, steps, 3)
	for i, s := range steps {
		assert.Equal(t, i, s.Step)
	}
	assert.Equal(t, records[0], steps[2])

	best, err := store.Best(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 2, best.Step)

	// Re-recording a step replaces it.
	require.NoError(t, store.RecordStep(ctx, id, history.StepRecord{Step: 2, Loss: 0.4}))
	steps, err = store.Steps(ctx, id)
	require.NoError(t, err)
	require.Len(t, steps, 3)
	assert.Equal(t, 0.4, steps[2].Loss)
}

func TestStore_BestWithoutSteps(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)

	id, err := store.StartRun(ctx, history.RunInfo{})
	require.NoError(t, err)

	_, err = store.Best(ctx, id)
	assert.ErrorIs(t, err, history.ErrNoSteps)

	steps, err := store.Steps(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, steps)
}

func TestStore_Reopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "history.db")

	store, err := history.Open(path)
	require.NoError(t, err)
	id, err := store.StartRun(ctx, history.RunInfo{Architecture: "2-4-1"})
	require.NoError(t, err)
	require.NoError(t, store.RecordStep(ctx, id, history.StepRecord{Step: 0, Loss: 1}))
	require.NoError(t, store.Close())

	store, err = history.Open(path)
	require.NoError(t, err)
	defer store.Close()

	steps, err := store.Steps(ctx, id)
	require.NoError(t, err)
	assert.Len(t, steps, 1)
}

func TestStore_Memory(t *testing.T) {
	store, err := history.Open(":memory:")
	require.NoError(t, err)
	defer store.Close()

	_, err = store.StartRun(context.Background(), history.RunInfo{})
	assert.NoError(t, err)
}

func TestStore_CanceledContext(t *testing.T) {
	store := openStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.StartRun(ctx, history.RunInfo{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStore_NonFiniteMetrics(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)

	id, err := store.StartRun(ctx, history.RunInfo{Architecture: "2-1", Activation: "none", Optimizer: "SGD"})
	require.NoError(t, err)

	require.NoError(t, store.RecordStep(ctx, id, history.StepRecord{Step: 0, Loss: 0.8, Accuracy: 0.5, LR: 1}))
	require.NoError(t, store.RecordStep(ctx, id, history.StepRecord{Step: 1, Loss: math.Inf(1), Accuracy: 0.5, LR: 1}))
	require.NoError(t, store.RecordStep(ctx, id, history.StepRecord{Step: 2, Loss: math.NaN(), Accuracy: 0.5, LR: 1, GradNorm: math.NaN()}))

	steps, err := store.Steps(ctx, id)
	require.NoError(t, err)
	require.Len(t, steps, 3)
	assert.True(t, math.IsInf(steps[1].Loss, 1))
	assert.True(t, math.IsNaN(steps[2].Loss))
	assert.True(t, math.IsNaN(steps[2].GradNorm))
	assert.Equal(t, 0.5, steps[2].Accuracy)

	best, err := store.Best(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 0, best.Step)
	assert.InDelta(t, 0.8, best.Loss, 1e-12)
}
