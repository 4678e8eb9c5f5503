package nn

import (
	"fmt"
	"time"

	"github.com/born-ml/micrograd/internal/serialization"
)

// ModelTypeMLP is the model type recorded in MLP checkpoints.
const ModelTypeMLP = "MLP"

// OptimizerInfo describes the optimizer that produced a checkpoint.
//
// Optimizers from the optim package implement this interface; it lives here
// to avoid an import cycle.
type OptimizerInfo interface {
	// Name returns the optimizer type ("SGD", "Adam", ...).
	Name() string

	// GetLR returns the current learning rate.
	GetLR() float64
}

// Checkpoint represents a training state snapshot of an MLP.
//
// The file records every parameter by its dotted name together with the
// architecture, so a model can be rebuilt with LoadMLP or loaded into an
// existing model with LoadCheckpoint.
//
// Example:
//
//	ckpt := &nn.Checkpoint{Model: model, Optimizer: opt, Step: 100, Loss: 0.05}
//	if err := ckpt.Save("moons.born"); err != nil {
//	    log.Fatal(err)
//	}
type Checkpoint struct {
	Model     *MLP              // The network
	Optimizer OptimizerInfo     // Optional; recorded as type and learning rate
	Step      int64             // Training step number
	Loss      float64           // Loss value at this checkpoint
	Metadata  map[string]string // Additional training metadata
	CreatedAt time.Time         // When the checkpoint was created
}

// Save writes the checkpoint to a .born file.
func (c *Checkpoint) Save(path string) error {
	if c.Model == nil {
		return fmt.Errorf("checkpoint: nil model")
	}

	named := c.Model.NamedParameters()
	params := make([]serialization.Param, len(named))
	for i, p := range named {
		params[i] = serialization.Param{Name: p.Name, Value: p.Node.Value()}
	}

	meta := &serialization.CheckpointMeta{
		Step:         c.Step,
		Loss:         c.Loss,
		InputWidth:   c.Model.InputWidth(),
		Architecture: c.Model.OutputWidths(),
		Activation:   c.Model.Activation().String(),
	}
	if c.Optimizer != nil {
		meta.Optimizer = c.Optimizer.Name()
		meta.LearningRate = c.Optimizer.GetLR()
	}

	createdAt := c.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	header := serialization.Header{
		ModelType:      ModelTypeMLP,
		CreatedAt:      createdAt,
		Metadata:       c.Metadata,
		CheckpointMeta: meta,
	}

	if err := serialization.WriteFile(path, params, header); err != nil {
		return fmt.Errorf("failed to write checkpoint: %w", err)
	}
	return nil
}

// LoadCheckpoint loads parameter values from a .born file into model.
//
// The file must contain exactly the model's parameters, matched by name;
// otherwise an error wrapping ErrCheckpointMismatch is returned and the model
// is left untouched. The returned Checkpoint carries the training metadata;
// its Optimizer field is nil.
func LoadCheckpoint(path string, model *MLP) (*Checkpoint, error) {
	header, params, err := serialization.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read checkpoint: %w", err)
	}

	if err := loadParams(model, params); err != nil {
		return nil, err
	}

	ckpt := &Checkpoint{
		Model:     model,
		Metadata:  header.Metadata,
		CreatedAt: header.CreatedAt,
	}
	if meta := header.CheckpointMeta; meta != nil {
		ckpt.Step = meta.Step
		ckpt.Loss = meta.Loss
	}
	return ckpt, nil
}

// LoadMLP rebuilds an MLP from the architecture recorded in a checkpoint and
// loads its parameters.
func LoadMLP(path string) (*Checkpoint, error) {
	header, params, err := serialization.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read checkpoint: %w", err)
	}

	meta := header.CheckpointMeta
	if header.ModelType != ModelTypeMLP || meta == nil {
		return nil, fmt.Errorf("%w: %s is not an MLP checkpoint", ErrCheckpointMismatch, path)
	}

	count, err := architectureParams(meta.InputWidth, meta.Architecture)
	if err != nil {
		return nil, err
	}
	if count != len(params) {
		return nil, fmt.Errorf("%w: file has %d parameters, architecture %d-%v needs %d",
			ErrCheckpointMismatch, len(params), meta.InputWidth, meta.Architecture, count)
	}

	activation, err := ParseActivation(meta.Activation)
	if err != nil {
		return nil, err
	}

	model := NewMLP(meta.InputWidth, meta.Architecture, MLPConfig{Activation: activation})
	if err := loadParams(model, params); err != nil {
		return nil, err
	}

	return &Checkpoint{
		Model:     model,
		Step:      meta.Step,
		Loss:      meta.Loss,
		Metadata:  header.Metadata,
		CreatedAt: header.CreatedAt,
	}, nil
}

// architectureParams returns Σ out·(in+1) over the layers without building
// them. Negative widths and totals above serialization.MaxParamCount are
// rejected before any multiplication can overflow.
func architectureParams(inputWidth int, widths []int) (int, error) {
	if inputWidth < 0 {
		return 0, fmt.Errorf("%w: negative input width %d", ErrCheckpointMismatch, inputWidth)
	}

	const limit = serialization.MaxParamCount
	total := 0
	in := inputWidth
	for i, out := range widths {
		if out < 0 {
			return 0, fmt.Errorf("%w: negative width %d for layer %d", ErrCheckpointMismatch, out, i)
		}
		if out > 0 && (in >= limit || out > (limit-total)/(in+1)) {
			return 0, fmt.Errorf("%w: layer %d (%d->%d) exceeds %d parameters",
				ErrCheckpointMismatch, i, in, out, limit)
		}
		total += out * (in + 1)
		in = out
	}
	return total, nil
}

// loadParams validates params against the model before assigning any value.
func loadParams(model *MLP, params []serialization.Param) error {
	named := model.NamedParameters()
	if len(params) != len(named) {
		return fmt.Errorf("%w: file has %d parameters, model has %d", ErrCheckpointMismatch, len(params), len(named))
	}

	values := make(map[string]float64, len(params))
	for _, p := range params {
		values[p.Name] = p.Value
	}

	for _, p := range named {
		if _, ok := values[p.Name]; !ok {
			return fmt.Errorf("%w: parameter %q missing from file", ErrCheckpointMismatch, p.Name)
		}
	}

	for _, p := range named {
		if err := p.Node.SetValue(values[p.Name]); err != nil {
			return fmt.Errorf("parameter %q: %w", p.Name, err)
		}
	}
	return nil
}
