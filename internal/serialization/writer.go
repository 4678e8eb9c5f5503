package serialization

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"time"
)

// ToolVersion is recorded in every header this package writes.
const ToolVersion = "0.1.0"

// Writer writes parameters in .born format.
type Writer struct {
	file   *os.File
	closed bool
}

// NewWriter creates a new .born file writer.
func NewWriter(path string) (*Writer, error) {
	//nolint:gosec // G304: File path comes from user input, which is expected for model saving
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}

	return &Writer{file: file}, nil
}

// WriteParams writes params, in order, with the given header.
//
// Header.Params is computed from params; FormatVersion, Version and an unset
// CreatedAt are filled in.
func (w *Writer) WriteParams(params []Param, header Header) error {
	if w.closed {
		return ErrClosed
	}
	return WriteTo(w.file, params, header)
}

// Close closes the writer and the underlying file.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	return w.file.Close()
}

// WriteFile writes params to path atomically: the data goes to a temporary
// file in the same directory, which is renamed over path only after it has
// been written and synced. A failed write leaves any existing file intact.
func WriteFile(path string, params []Param, header Header) error {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}

	tmp, err := os.CreateTemp(dir, "."+base+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	tmpPath := tmp.Name()

	w := &Writer{file: tmp}
	if err := w.WriteParams(params, header); err != nil {
		_ = w.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = w.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to sync file: %w", err)
	}
	if err := w.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to close file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

// WriteTo writes params in .born format to an io.Writer.
// This is useful for writing to buffers or network connections.
func WriteTo(writer io.Writer, params []Param, header Header) error {
	header.FormatVersion = FormatVersion
	if header.Version == "" {
		header.Version = ToolVersion
	}
	if header.CreatedAt.IsZero() {
		header.CreatedAt = time.Now().UTC()
	}
	if header.Metadata == nil {
		header.Metadata = make(map[string]string)
	}

	// Lay out parameters back to back, one float64 each.
	header.Params = make([]ParamMeta, len(params))
	data := make([]byte, len(params)*BytesPerParam)
	for i, p := range params {
		offset := i * BytesPerParam
		header.Params[i] = ParamMeta{Name: p.Name, Offset: int64(offset)}
		binary.LittleEndian.PutUint64(data[offset:], math.Float64bits(p.Value))
	}

	if err := ValidateHeader(&header, int64(len(data)), ValidationStrict); err != nil {
		return fmt.Errorf("invalid parameters: %w", err)
	}

	headerJSON, err := json.Marshal(header)
	if err != nil {
		return fmt.Errorf("failed to marshal header: %w", err)
	}

	checksum := ComputeChecksum(headerJSON, data)

	fixedHeader := make([]byte, FixedHeaderSize)

	// 0x00-0x03: Magic bytes "BORN"
	copy(fixedHeader[0:4], MagicBytes)

	// 0x04-0x07: Version
	binary.LittleEndian.PutUint32(fixedHeader[4:8], uint32(FormatVersion))

	// 0x08-0x0B: Flags
	flags := uint32(0)
	if len(header.Metadata) > 0 {
		flags |= FlagHasMetadata
	}
	if header.CheckpointMeta != nil {
		flags |= FlagHasCheckpoint
	}
	binary.LittleEndian.PutUint32(fixedHeader[8:12], flags)

	// 0x0C-0x0F: Reserved (0)

	// 0x10-0x1F: Header and data sizes
	binary.LittleEndian.PutUint64(fixedHeader[headerSizeOffset:], uint64(len(headerJSON)))
	binary.LittleEndian.PutUint64(fixedHeader[dataSizeOffset:], uint64(len(data)))

	// 0x20-0x3F: SHA-256 checksum
	copy(fixedHeader[ChecksumOffset:ChecksumOffset+ChecksumSize], checksum[:])

	if _, err := writer.Write(fixedHeader); err != nil {
		return fmt.Errorf("failed to write fixed header: %w", err)
	}
	if _, err := writer.Write(headerJSON); err != nil {
		return fmt.Errorf("failed to write header JSON: %w", err)
	}

	if padding := dataPadding(len(headerJSON)); padding > 0 {
		if _, err := writer.Write(make([]byte, padding)); err != nil {
			return fmt.Errorf("failed to write padding: %w", err)
		}
	}

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write parameter data: %w", err)
	}
	return nil
}

// Bytes encodes params in .born format and returns the result.
func Bytes(params []Param, header Header) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteTo(&buf, params, header); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// dataPadding returns the zero bytes needed after a header of headerSize
// bytes so that parameter data starts on a DataAlignment boundary.
func dataPadding(headerSize int) int {
	pos := FixedHeaderSize + headerSize
	return (DataAlignment - pos%DataAlignment) % DataAlignment
}
