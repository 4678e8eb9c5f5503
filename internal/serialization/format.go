package serialization

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"
)

// Format constants.
const (
	MagicBytes       = "BORN"
	FormatVersion    = 2    // Scalar parameters with SHA-256 checksum
	FixedHeaderSize  = 64   // Fixed header size (0x40 bytes)
	ChecksumSize     = 32   // SHA-256 checksum size (32 bytes)
	ChecksumOffset   = 0x20 // Checksum offset in the fixed header
	DataAlignment    = 8    // Parameter data starts on a float64 boundary
	BytesPerParam    = 8    // Every parameter is one float64
	headerSizeOffset = 0x10
	dataSizeOffset   = 0x18
)

// Flags for the .born format.
const (
	FlagHasMetadata   uint32 = 1 << 2 // bit 2: custom metadata included
	FlagHasCheckpoint uint32 = 1 << 3 // bit 3: training state included
)

// Header represents the JSON header in a .born file.
type Header struct {
	FormatVersion  int               `json:"format_version"`       // Version of the .born format
	Version        string            `json:"version"`              // Version of the tool that created this file
	ModelType      string            `json:"model_type"`           // Type of model (e.g., "MLP")
	CreatedAt      time.Time         `json:"created_at"`           // When the file was created
	Params         []ParamMeta       `json:"params"`               // Parameter metadata, in file order
	Metadata       map[string]string `json:"metadata"`             // Custom metadata
	CheckpointMeta *CheckpointMeta   `json:"checkpoint,omitempty"` // Checkpoint metadata (optional)
}

// CheckpointMeta contains training state and the architecture needed to
// rebuild a model from the file alone.
type CheckpointMeta struct {
	Step         int64   `json:"step"`          // Training step number
	Loss         float64 `json:"loss"`          // Loss value at checkpoint
	InputWidth   int     `json:"input_width"`   // Number of model inputs
	Architecture []int   `json:"architecture"`  // Output width of every layer
	Activation   string  `json:"activation"`    // Hidden-layer activation name
	Optimizer    string  `json:"optimizer"`     // Optimizer type ("SGD", "Adam", ...)
	LearningRate float64 `json:"learning_rate"` // Learning rate at checkpoint
}

// checkpointMetaAlias drops CheckpointMeta's JSON methods.
type checkpointMetaAlias CheckpointMeta

// checkpointMetaJSON shadows Loss so a non-finite value can be written as a
// string ("NaN", "+Inf", "-Inf"); JSON numbers cannot hold them.
type checkpointMetaJSON struct {
	*checkpointMetaAlias
	Loss json.RawMessage `json:"loss"`
}

// MarshalJSON implements json.Marshaler.
func (m CheckpointMeta) MarshalJSON() ([]byte, error) {
	loss, err := marshalFloat(m.Loss)
	if err != nil {
		return nil, err
	}
	alias := checkpointMetaAlias(m)
	return json.Marshal(checkpointMetaJSON{checkpointMetaAlias: &alias, Loss: loss})
}

// UnmarshalJSON implements json.Unmarshaler.
func (m *CheckpointMeta) UnmarshalJSON(data []byte) error {
	aux := checkpointMetaJSON{checkpointMetaAlias: (*checkpointMetaAlias)(m)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	loss, err := unmarshalFloat(aux.Loss)
	if err != nil {
		return fmt.Errorf("checkpoint loss: %w", err)
	}
	m.Loss = loss
	return nil
}

func marshalFloat(v float64) (json.RawMessage, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return json.Marshal(strconv.FormatFloat(v, 'g', -1, 64))
	}
	return json.Marshal(v)
}

func unmarshalFloat(raw json.RawMessage) (float64, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, err
		}
		return strconv.ParseFloat(s, 64)
	}
	var v float64
	err := json.Unmarshal(raw, &v)
	return v, err
}

// ParamMeta describes one parameter in the data section.
type ParamMeta struct {
	Name   string `json:"name"`   // Parameter name (e.g., "layers.0.neurons.1.w.0")
	Offset int64  `json:"offset"` // Byte offset from the start of the data section
}

// Param is a named scalar parameter value.
type Param struct {
	Name  string
	Value float64
}
