package storage

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/pierrec/lz4/v4"
	"github.com/vmihailenco/msgpack/v5"
)

// SaveToFile writes every key and set to filename. The file is written
// next to its destination and renamed into place.
func (m *MemoryStore) SaveToFile(filename string) error {
	m.mu.RLock()
	version := m.version
	snapshot := NewSnapshotData()
	if m.wal != nil {
		snapshot.LSN = m.wal.lastLSN()
	}
	for key, value := range m.values {
		snapshot.Values[key] = append([]byte(nil), value...)
	}
	for setKey, members := range m.sets {
		snapshot.Sets[setKey] = sortedMembers(members)
	}
	m.mu.RUnlock()

	snapshot.Metadata["saved_at"] = time.Now().UTC().Format(time.RFC3339)
	snapshot.Metadata["keys"] = len(snapshot.Values)

	payload, err := msgpack.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to encode MessagePack: %w", err)
	}

	if dir := filepath.Dir(filename); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create snapshot directory: %w", err)
		}
	}

	tmp, err := os.CreateTemp(filepath.Dir(filename), filepath.Base(filename)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if err := m.writeSnapshot(tmp, payload); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close snapshot: %w", err)
	}
	if err := os.Rename(tmpName, filename); err != nil {
		return fmt.Errorf("failed to move snapshot into place: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if version > m.savedVersion {
		m.savedVersion = version
	}
	if snapshot.LSN > m.snapshotLSN {
		m.snapshotLSN = snapshot.LSN
	}
	// Entries appended while the snapshot was written are still needed.
	if m.wal != nil && m.wal.lastLSN() == snapshot.LSN {
		if err := m.wal.truncate(); err != nil {
			return err
		}
	}
	return nil
}

func (m *MemoryStore) writeSnapshot(w io.Writer, payload []byte) error {
	var flags uint8
	if m.compression {
		flags |= FlagLZ4
	}
	if err := WriteHeader(w, flags); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	if !m.compression {
		if _, err := w.Write(payload); err != nil {
			return fmt.Errorf("failed to write data: %w", err)
		}
		return nil
	}

	zw := lz4.NewWriter(w)
	if _, err := zw.Write(payload); err != nil {
		return fmt.Errorf("failed to compress data: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to compress data: %w", err)
	}
	return nil
}

// LoadFromFile replaces the store contents with the snapshot in filename.
// A missing file is not an error.
func (m *MemoryStore) LoadFromFile(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	r := bufio.NewReader(file)
	header, err := ReadHeader(r)
	if err != nil {
		return fmt.Errorf("invalid file header: %w", err)
	}

	var body io.Reader = r
	if header.Flags&FlagLZ4 != 0 {
		body = lz4.NewReader(r)
	}
	payload, err := io.ReadAll(body)
	if err != nil {
		return fmt.Errorf("failed to read snapshot data: %w", err)
	}

	var snapshot SnapshotData
	if err := msgpack.Unmarshal(payload, &snapshot); err != nil {
		return fmt.Errorf("failed to decode MessagePack: %w", err)
	}

	values := make(map[string][]byte, len(snapshot.Values))
	for key, value := range snapshot.Values {
		values[key] = value
	}
	sets := make(map[string]map[string]struct{}, len(snapshot.Sets))
	for setKey, members := range snapshot.Sets {
		set := make(map[string]struct{}, len(members))
		for _, member := range members {
			set[member] = struct{}{}
		}
		sets[setKey] = set
	}

	m.mu.Lock()
	m.values = values
	m.sets = sets
	m.snapshotLSN = snapshot.LSN
	m.savedVersion = m.version
	m.mu.Unlock()
	return nil
}

func sortedMembers(set map[string]struct{}) []string {
	members := make([]string, 0, len(set))
	for member := range set {
		members = append(members, member)
	}
	sort.Strings(members)
	return members
}
