package storage

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/adfharrison1/go-kvgate/pkg/domain"
)

// MemoryStore keeps keys and sets in process memory. With a snapshot file
// configured the data is loaded at startup and written back on Close.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string][]byte
	sets   map[string]map[string]struct{}

	// version counts writes; savedVersion is the version last persisted
	version      uint64
	savedVersion uint64

	// Configuration
	snapshotFile   string
	backgroundSave bool
	saveInterval   time.Duration
	compression    bool
	walPath        string
	walSync        bool

	// wal is open while the store is; snapshotLSN is the last log entry
	// covered by the loaded or saved snapshot
	wal         *walLog
	snapshotLSN uint64

	// Background workers
	backgroundWg sync.WaitGroup
	stopChan     chan struct{}
	stopOnce     sync.Once
	closed       bool
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore(options ...MemoryOption) *MemoryStore {
	store := &MemoryStore{
		values:       make(map[string][]byte),
		sets:         make(map[string]map[string]struct{}),
		saveInterval: 5 * time.Minute,
		compression:  true,
		stopChan:     make(chan struct{}),
	}

	for _, option := range options {
		option(store)
	}

	return store
}

// OpenMemoryStore creates a store, loads its snapshot and replays its
// write-ahead log if they are configured, and starts the background saver.
func OpenMemoryStore(options ...MemoryOption) (*MemoryStore, error) {
	store := NewMemoryStore(options...)
	if store.snapshotFile != "" {
		if err := store.LoadFromFile(store.snapshotFile); err != nil {
			return nil, fmt.Errorf("failed to load snapshot %s: %w", store.snapshotFile, err)
		}
		log.Printf("INFO: Loaded %d keys from snapshot %s", store.Len(), store.snapshotFile)
	}
	if store.walPath != "" {
		if err := store.openWAL(); err != nil {
			return nil, err
		}
	}
	store.StartBackgroundWorkers()
	return store, nil
}

// openWAL replays log entries newer than the snapshot and opens the log
// for appending.
func (m *MemoryStore) openWAL() error {
	entries, err := readWAL(m.walPath)
	if err != nil {
		return fmt.Errorf("failed to replay WAL %s: %w", m.walPath, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	lastLSN := m.snapshotLSN
	replayed := 0
	for _, entry := range entries {
		if entry.LSN <= m.snapshotLSN {
			continue
		}
		m.applyLocked(entry)
		lastLSN = entry.LSN
		replayed++
	}
	if replayed > 0 {
		log.Printf("INFO: Replayed %d WAL entries from %s", replayed, m.walPath)
	}

	wal, err := openWAL(m.walPath, lastLSN, m.walSync)
	if err != nil {
		return err
	}
	m.wal = wal
	return nil
}

func (m *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.values[key]
	if !ok {
		return nil, domain.ErrKeyNotFound
	}
	return append([]byte(nil), value...), nil
}

func (m *MemoryStore) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.logLocked(&walEntry{Op: walSet, Key: key, Value: value}); err != nil {
		return err
	}
	m.setLocked(key, value)
	return nil
}

func (m *MemoryStore) AddToSet(ctx context.Context, setKey, member string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.logLocked(&walEntry{Op: walAddToSet, SetKey: setKey, Member: member}); err != nil {
		return err
	}
	m.addLocked(setKey, member)
	return nil
}

func (m *MemoryStore) Members(ctx context.Context, setKey string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	set, ok := m.sets[setKey]
	if !ok {
		return []string{}, nil
	}
	return sortedMembers(set), nil
}

func (m *MemoryStore) SetWithIndex(ctx context.Context, key string, value []byte, setKey, member string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	entry := &walEntry{Op: walSetWithIndex, Key: key, Value: value, SetKey: setKey, Member: member}
	if err := m.logLocked(entry); err != nil {
		return err
	}
	m.setLocked(key, value)
	m.addLocked(setKey, member)
	return nil
}

func (m *MemoryStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

// Close stops the background saver, writes a final snapshot and closes
// the write-ahead log.
func (m *MemoryStore) Close() error {
	m.StopBackgroundWorkers()

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	m.mu.Unlock()

	var saveErr error
	if m.snapshotFile != "" {
		if saveErr = m.SaveToFile(m.snapshotFile); saveErr == nil {
			log.Printf("INFO: Saved snapshot to %s", m.snapshotFile)
		}
	}
	if m.wal != nil {
		if err := m.wal.close(); err != nil && saveErr == nil {
			saveErr = fmt.Errorf("failed to close WAL: %w", err)
		}
	}
	return saveErr
}

// Len returns the number of plain keys held.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.values)
}

func (m *MemoryStore) setLocked(key string, value []byte) {
	m.values[key] = append([]byte(nil), value...)
	m.version++
}

func (m *MemoryStore) addLocked(setKey, member string) {
	set, ok := m.sets[setKey]
	if !ok {
		set = make(map[string]struct{})
		m.sets[setKey] = set
	}
	if _, exists := set[member]; !exists {
		set[member] = struct{}{}
		m.version++
	}
}

func (m *MemoryStore) applyLocked(entry *walEntry) {
	switch entry.Op {
	case walSet:
		m.setLocked(entry.Key, entry.Value)
	case walAddToSet:
		m.addLocked(entry.SetKey, entry.Member)
	case walSetWithIndex:
		m.setLocked(entry.Key, entry.Value)
		m.addLocked(entry.SetKey, entry.Member)
	default:
		log.Printf("WARN: Skipping WAL entry %d with unknown op %d", entry.LSN, entry.Op)
	}
}

func (m *MemoryStore) logLocked(entry *walEntry) error {
	if m.wal == nil {
		return nil
	}
	return m.wal.append(entry)
}

// dirtyLocked reports whether there are writes not yet in a snapshot.
func (m *MemoryStore) dirtyLocked() bool {
	return m.version != m.savedVersion
}
