package serialization

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
)

// Reader reads parameters from .born format.
//
// The whole file is read and verified when the reader is opened; parameter
// files are small enough that lazy loading buys nothing.
type Reader struct {
	file   *os.File
	header Header
	flags  uint32
	data   []byte
	opts   ReaderOptions
	closed bool
}

// ReaderOptions configures the behavior of Reader.
type ReaderOptions struct {
	SkipChecksumValidation bool            // Skip checksum validation (faster but less safe)
	ValidationLevel        ValidationLevel // Validation strictness level
}

// NewReader creates a new .born file reader with default options (strict validation).
func NewReader(path string) (*Reader, error) {
	return NewReaderWithOptions(path, ReaderOptions{
		ValidationLevel: ValidationStrict,
	})
}

// NewReaderWithOptions creates a new .born file reader with custom options.
func NewReaderWithOptions(path string, opts ReaderOptions) (*Reader, error) {
	//nolint:gosec // G304: File path comes from user input, which is expected for model loading
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	reader := &Reader{file: file, opts: opts}
	if err := reader.parse(file); err != nil {
		_ = file.Close() // Best effort close on error
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return reader, nil
}

// parse reads the fixed header, JSON header and parameter data from src.
func (r *Reader) parse(src io.Reader) error {
	fixedHeader := make([]byte, FixedHeaderSize)
	if _, err := io.ReadFull(src, fixedHeader); err != nil {
		return fmt.Errorf("failed to read fixed header: %w", err)
	}

	if string(fixedHeader[0:4]) != MagicBytes {
		return ErrInvalidMagic
	}

	version := binary.LittleEndian.Uint32(fixedHeader[4:8])
	if version != FormatVersion {
		return fmt.Errorf("%w: got %d, expected %d", ErrUnsupportedVersion, version, FormatVersion)
	}

	r.flags = binary.LittleEndian.Uint32(fixedHeader[8:12])
	headerSize := binary.LittleEndian.Uint64(fixedHeader[headerSizeOffset:])
	dataSize := binary.LittleEndian.Uint64(fixedHeader[dataSizeOffset:])

	var stored [32]byte
	copy(stored[:], fixedHeader[ChecksumOffset:ChecksumOffset+ChecksumSize])

	if headerSize > MaxHeaderSize {
		return ErrHeaderTooLarge
	}
	if dataSize > MaxParamCount*BytesPerParam {
		return fmt.Errorf("%w: data section of %d bytes", ErrTooManyParams, dataSize)
	}

	headerJSON := make([]byte, headerSize)
	if _, err := io.ReadFull(src, headerJSON); err != nil {
		return fmt.Errorf("failed to read header JSON: %w", err)
	}

	if padding := dataPadding(int(headerSize)); padding > 0 {
		if _, err := io.CopyN(io.Discard, src, int64(padding)); err != nil {
			return fmt.Errorf("failed to skip padding: %w", err)
		}
	}

	r.data = make([]byte, dataSize)
	if _, err := io.ReadFull(src, r.data); err != nil {
		return fmt.Errorf("failed to read parameter data: %w", err)
	}

	if !r.opts.SkipChecksumValidation {
		if err := ValidateChecksum(ComputeChecksum(headerJSON, r.data), stored); err != nil {
			return err
		}
	}

	if err := json.Unmarshal(headerJSON, &r.header); err != nil {
		return fmt.Errorf("failed to parse header JSON: %w", err)
	}

	if err := ValidateHeader(&r.header, int64(len(r.data)), r.opts.ValidationLevel); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

// Header returns the file header.
func (r *Reader) Header() Header {
	return r.header
}

// Flags returns the flag bits from the fixed header.
func (r *Reader) Flags() uint32 {
	return r.flags
}

// Metadata returns the metadata map from the header.
func (r *Reader) Metadata() map[string]string {
	return r.header.Metadata
}

// ParamNames returns the names of all parameters in file order.
func (r *Reader) ParamNames() []string {
	names := make([]string, len(r.header.Params))
	for i, meta := range r.header.Params {
		names[i] = meta.Name
	}
	return names
}

// ReadParams decodes every parameter in file order.
func (r *Reader) ReadParams() ([]Param, error) {
	if r.closed {
		return nil, ErrClosed
	}

	params := make([]Param, len(r.header.Params))
	for i, meta := range r.header.Params {
		end := meta.Offset + BytesPerParam
		if meta.Offset < 0 || end > int64(len(r.data)) {
			return nil, &ValidationError{
				Type:    "out_of_bounds",
				Param:   meta.Name,
				Details: fmt.Sprintf("offset %d outside data section of %d bytes", meta.Offset, len(r.data)),
				Err:     ErrOutOfBounds,
			}
		}
		bits := binary.LittleEndian.Uint64(r.data[meta.Offset:end])
		params[i] = Param{Name: meta.Name, Value: math.Float64frombits(bits)}
	}
	return params, nil
}

// Close closes the reader and the underlying file.
func (r *Reader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	if r.file == nil {
		return nil
	}
	return r.file.Close()
}

// ReadFile opens path and returns its header and parameters.
func ReadFile(path string) (Header, []Param, error) {
	r, err := NewReader(path)
	if err != nil {
		return Header{}, nil, err
	}
	defer func() { _ = r.Close() }()

	params, err := r.ReadParams()
	if err != nil {
		return Header{}, nil, err
	}
	return r.Header(), params, nil
}

// ReadFrom decodes a .born stream with strict validation.
// This is useful for reading from buffers or network connections.
func ReadFrom(src io.Reader) (Header, []Param, error) {
	r := &Reader{opts: ReaderOptions{ValidationLevel: ValidationStrict}}
	if err := r.parse(src); err != nil {
		return Header{}, nil, err
	}
	params, err := r.ReadParams()
	if err != nil {
		return Header{}, nil, err
	}
	return r.header, params, nil
}
