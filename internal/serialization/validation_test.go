package serialization

import (
	"errors"
	"strings"
	"testing"
)

// TestValidateParamOffsets_Valid verifies that packed parameters pass validation.
func TestValidateParamOffsets_Valid(t *testing.T) {
	params := []ParamMeta{
		{Name: "w.0", Offset: 0},
		{Name: "w.1", Offset: 8},
		{Name: "b", Offset: 16},
	}

	if err := ValidateParamOffsets(params, 24); err != nil {
		t.Errorf("Expected no error for valid params, got: %v", err)
	}
}

// TestValidateParamOffsets_Invalid covers every offset failure mode.
func TestValidateParamOffsets_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		params   []ParamMeta
		dataSize int64
		wantType string
		wantErr  error
	}{
		{
			name:     "shared offset",
			params:   []ParamMeta{{Name: "a", Offset: 8}, {Name: "b", Offset: 8}},
			dataSize: 16,
			wantType: "offset_overlap",
			wantErr:  ErrOffsetOverlap,
		},
		{
			name:     "past end",
			params:   []ParamMeta{{Name: "a", Offset: 0}, {Name: "b", Offset: 8}},
			dataSize: 8,
			wantType: "out_of_bounds",
			wantErr:  ErrOutOfBounds,
		},
		{
			name:     "negative",
			params:   []ParamMeta{{Name: "a", Offset: -8}},
			dataSize: 8,
			wantType: "bad_offset",
			wantErr:  ErrOutOfBounds,
		},
		{
			name:     "misaligned",
			params:   []ParamMeta{{Name: "a", Offset: 3}},
			dataSize: 16,
			wantType: "bad_offset",
			wantErr:  ErrOutOfBounds,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateParamOffsets(tt.params, tt.dataSize)
			var validationErr *ValidationError
			if !errors.As(err, &validationErr) {
				t.Fatalf("Expected ValidationError, got %T (%v)", err, err)
			}
			if validationErr.Type != tt.wantType {
				t.Errorf("Expected %s error, got %s", tt.wantType, validationErr.Type)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected errors.Is(%v), got %v", tt.wantErr, err)
			}
		})
	}
}

// TestValidateParamName checks name rules.
func TestValidateParamName(t *testing.T) {
	tests := []struct {
		name    string
		param   string
		wantErr bool
	}{
		{"dotted path", "layers.0.neurons.1.w.0", false},
		{"bias", "layers.2.neurons.0.b", false},
		{"empty", "", true},
		{"traversal", "layers..w", true},
		{"slash", "layers/0", true},
		{"backslash", "layers\\0", true},
		{"null byte", "w\x00", true},
		{"too long", strings.Repeat("a", MaxParamNameLen+1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateParamName(tt.param)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateParamName(%q) error = %v, wantErr %v", tt.param, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidParamName) {
				t.Errorf("Expected ErrInvalidParamName, got %v", err)
			}
		})
	}
}

// TestValidateHeader_Levels verifies which checks each level runs.
func TestValidateHeader_Levels(t *testing.T) {
	badOffsets := &Header{Params: []ParamMeta{{Name: "a", Offset: 0}, {Name: "b", Offset: 0}}}
	duplicate := &Header{Params: []ParamMeta{{Name: "a", Offset: 0}, {Name: "a", Offset: 8}}}

	if err := ValidateHeader(badOffsets, 16, ValidationStrict); !errors.Is(err, ErrOffsetOverlap) {
		t.Errorf("strict: expected ErrOffsetOverlap, got %v", err)
	}
	if err := ValidateHeader(badOffsets, 16, ValidationNormal); err != nil {
		t.Errorf("normal: offsets should not be checked, got %v", err)
	}
	if err := ValidateHeader(duplicate, 16, ValidationNormal); !errors.Is(err, ErrInvalidParamName) {
		t.Errorf("normal: expected duplicate name error, got %v", err)
	}
	if err := ValidateHeader(duplicate, 16, ValidationNone); err != nil {
		t.Errorf("none: expected no error, got %v", err)
	}
}

// TestValidationError_Format verifies error messages.
func TestValidationError_Format(t *testing.T) {
	tests := []struct {
		err  *ValidationError
		want string
	}{
		{&ValidationError{Type: "too_many_params", Details: "got 2"}, "too_many_params: got 2"},
		{&ValidationError{Type: "invalid_name", Param: "w", Details: "bad"}, `invalid_name: param "w": bad`},
		{&ValidationError{Type: "offset_overlap", Param: "a", Param2: "b", Details: "x"}, `offset_overlap: params "a" and "b": x`},
	}

	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}
