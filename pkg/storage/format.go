package storage

import (
	"encoding/binary"
	"fmt"
	"io"
)

const (
	// Magic bytes to identify a snapshot file
	MagicBytes = "GKVS"
	// Current version
	FormatVersion = 1
	// File extension for snapshot files
	FileExtension = ".gkvs"
)

// Header flags
const (
	FlagLZ4 uint8 = 1 << iota
)

// FileHeader represents the header of a snapshot file
type FileHeader struct {
	Magic    [4]byte // "GKVS"
	Version  uint8   // Format version
	Flags    uint8   // Compression flags
	Reserved [2]byte // Reserved for future use
}

// WriteHeader writes the file header to the given writer
func WriteHeader(w io.Writer, flags uint8) error {
	header := FileHeader{
		Magic:    [4]byte{'G', 'K', 'V', 'S'},
		Version:  FormatVersion,
		Flags:    flags,
		Reserved: [2]byte{0, 0},
	}

	return binary.Write(w, binary.LittleEndian, header)
}

// ReadHeader reads and validates the file header
func ReadHeader(r io.Reader) (*FileHeader, error) {
	var header FileHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	// Validate magic bytes
	if string(header.Magic[:]) != MagicBytes {
		return nil, fmt.Errorf("invalid file format: expected %s, got %s", MagicBytes, string(header.Magic[:]))
	}

	// Validate version
	if header.Version != FormatVersion {
		return nil, fmt.Errorf("unsupported file version: %d", header.Version)
	}

	return &header, nil
}

// SnapshotData is the msgpack payload of a snapshot file
type SnapshotData struct {
	Values   map[string][]byte      `msgpack:"values"`
	Sets     map[string][]string    `msgpack:"sets"`
	LSN      uint64                 `msgpack:"lsn"`
	Metadata map[string]interface{} `msgpack:"metadata,omitempty"`
}

// NewSnapshotData creates a new empty snapshot
func NewSnapshotData() *SnapshotData {
	return &SnapshotData{
		Values:   make(map[string][]byte),
		Sets:     make(map[string][]string),
		Metadata: make(map[string]interface{}),
	}
}
