package storage

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"hash/crc32"
	"log"
	"os"
	"sync"
)

// walOp identifies the write recorded by a log entry
type walOp uint8

const (
	walSet walOp = iota + 1
	walAddToSet
	walSetWithIndex
)

// walEntry is one line of the write-ahead log
type walEntry struct {
	LSN      uint64 `json:"lsn"`
	Op       walOp  `json:"op"`
	Key      string `json:"key,omitempty"`
	Value    []byte `json:"value,omitempty"`
	SetKey   string `json:"set_key,omitempty"`
	Member   string `json:"member,omitempty"`
	Checksum uint32 `json:"checksum"`
}

// walLog appends memory store writes to a file so that writes made after
// the last snapshot survive a crash. The log is truncated once a snapshot
// covering every entry has been written.
type walLog struct {
	mu     sync.Mutex
	path   string
	file   *os.File
	lsn    uint64
	fsync  bool
	closed bool
}

func openWAL(path string, lastLSN uint64, fsync bool) (*walLog, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open WAL file: %w", err)
	}
	return &walLog{path: path, file: file, lsn: lastLSN, fsync: fsync}, nil
}

// append assigns the next LSN to entry and writes it
func (w *walLog) append(entry *walEntry) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return fmt.Errorf("WAL is closed")
	}

	entry.LSN = w.lsn + 1
	entry.Checksum = walChecksum(entry)
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal WAL entry: %w", err)
	}
	if _, err := w.file.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write to WAL file: %w", err)
	}
	if w.fsync {
		if err := w.file.Sync(); err != nil {
			return fmt.Errorf("failed to sync WAL file: %w", err)
		}
	}
	w.lsn = entry.LSN
	return nil
}

func (w *walLog) lastLSN() uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lsn
}

// truncate empties the log. The LSN keeps counting from where it was.
func (w *walLog) truncate() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	if err := w.file.Truncate(0); err != nil {
		return fmt.Errorf("failed to truncate WAL file: %w", err)
	}
	return w.file.Sync()
}

func (w *walLog) close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true
	return w.file.Close()
}

// readWAL returns the entries in path in order. A missing file yields no
// entries. A corrupt final line is treated as a torn write and dropped;
// corruption anywhere else is an error.
func readWAL(path string) ([]*walEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read WAL file: %w", err)
	}

	var entries []*walEntry
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)
	line := 0
	var pending error
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(bytes.TrimSpace(raw)) == 0 {
			continue
		}
		if pending != nil {
			return nil, pending
		}

		var entry walEntry
		if err := json.Unmarshal(raw, &entry); err != nil {
			pending = fmt.Errorf("WAL line %d: failed to unmarshal entry: %w", line, err)
			continue
		}
		if entry.Checksum != walChecksum(&entry) {
			pending = fmt.Errorf("WAL line %d: checksum mismatch", line)
			continue
		}
		entries = append(entries, &entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan WAL file: %w", err)
	}
	if pending != nil {
		log.Printf("WARN: Dropping torn WAL tail in %s: %v", path, pending)
	}
	return entries, nil
}

func walChecksum(entry *walEntry) uint32 {
	entryCopy := *entry
	entryCopy.Checksum = 0

	data, err := json.Marshal(entryCopy)
	if err != nil {
		return 0
	}
	return crc32.ChecksumIEEE(data)
}
