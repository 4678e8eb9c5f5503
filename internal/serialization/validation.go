package serialization

import (
	"fmt"
	"sort"
	"strings"
)

// Validation limits for security and resource protection.
const (
	MaxHeaderSize   = 100 * 1024 * 1024 // 100MB - maximum header size
	MaxParamCount   = 10_000_000        // Maximum number of parameters in a file
	MaxParamNameLen = 4096              // Maximum parameter name length
)

// ValidationLevel controls the strictness of validation.
type ValidationLevel int

const (
	// ValidationStrict performs all validation checks (default, recommended for production).
	ValidationStrict ValidationLevel = iota
	// ValidationNormal checks names and counts but not offsets.
	ValidationNormal
	// ValidationNone skips validation (dangerous! Use only with trusted input).
	ValidationNone
)

// ValidateParamOffsets checks that every parameter occupies its own aligned
// float64 slot inside the data section.
func ValidateParamOffsets(params []ParamMeta, dataSize int64) error {
	if len(params) > MaxParamCount {
		return &ValidationError{
			Type:    "too_many_params",
			Details: fmt.Sprintf("got %d, max %d", len(params), MaxParamCount),
			Err:     ErrTooManyParams,
		}
	}

	sorted := make([]ParamMeta, len(params))
	copy(sorted, params)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Offset < sorted[j].Offset
	})

	for i, p := range sorted {
		if p.Offset < 0 || p.Offset%BytesPerParam != 0 {
			return &ValidationError{
				Type:    "bad_offset",
				Param:   p.Name,
				Details: fmt.Sprintf("offset=%d (must be a non-negative multiple of %d)", p.Offset, BytesPerParam),
				Err:     ErrOutOfBounds,
			}
		}

		if p.Offset+BytesPerParam > dataSize {
			return &ValidationError{
				Type:    "out_of_bounds",
				Param:   p.Name,
				Details: fmt.Sprintf("offset %d + %d > data_size %d", p.Offset, BytesPerParam, dataSize),
				Err:     ErrOutOfBounds,
			}
		}

		if i > 0 && sorted[i-1].Offset == p.Offset {
			return &ValidationError{
				Type:    "offset_overlap",
				Param:   sorted[i-1].Name,
				Param2:  p.Name,
				Details: fmt.Sprintf("both at offset %d", p.Offset),
				Err:     ErrOffsetOverlap,
			}
		}
	}

	return nil
}

// ValidateParamName rejects empty, oversized and malformed parameter names.
func ValidateParamName(name string) error {
	invalid := func(details string) error {
		return &ValidationError{Type: "invalid_name", Param: name, Details: details, Err: ErrInvalidParamName}
	}

	switch {
	case name == "":
		return invalid("empty name")
	case len(name) > MaxParamNameLen:
		return invalid(fmt.Sprintf("length %d > max %d", len(name), MaxParamNameLen))
	case strings.Contains(name, ".."):
		return invalid("contains '..'")
	case strings.ContainsAny(name, "/\\"):
		return invalid("contains path separator (/ or \\)")
	case strings.Contains(name, "\x00"):
		return invalid("contains null byte")
	}
	return nil
}

// ValidateHeader performs comprehensive header validation.
func ValidateHeader(h *Header, dataSize int64, level ValidationLevel) error {
	if level == ValidationNone {
		return nil
	}

	if len(h.Params) > MaxParamCount {
		return &ValidationError{
			Type:    "too_many_params",
			Details: fmt.Sprintf("got %d, max %d", len(h.Params), MaxParamCount),
			Err:     ErrTooManyParams,
		}
	}

	seen := make(map[string]struct{}, len(h.Params))
	for _, p := range h.Params {
		if err := ValidateParamName(p.Name); err != nil {
			return err
		}
		if _, dup := seen[p.Name]; dup {
			return &ValidationError{
				Type:    "duplicate_name",
				Param:   p.Name,
				Details: "name appears more than once",
				Err:     ErrInvalidParamName,
			}
		}
		seen[p.Name] = struct{}{}
	}

	if level == ValidationStrict {
		if err := ValidateParamOffsets(h.Params, dataSize); err != nil {
			return err
		}
	}

	return nil
}
