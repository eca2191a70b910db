package storage

import "time"

// MemoryOption configures a MemoryStore
type MemoryOption func(*MemoryStore)

// WithSnapshotFile enables loading from and saving to the given snapshot file
func WithSnapshotFile(path string) MemoryOption {
	return func(store *MemoryStore) {
		store.snapshotFile = path
	}
}

// WithBackgroundSave saves the snapshot periodically when there are unsaved writes.
// Has no effect without a snapshot file.
func WithBackgroundSave(interval time.Duration) MemoryOption {
	return func(store *MemoryStore) {
		if interval <= 0 {
			return
		}
		store.backgroundSave = true
		store.saveInterval = interval
	}
}

// WithCompression toggles lz4 compression of snapshot files (default: true)
func WithCompression(enabled bool) MemoryOption {
	return func(store *MemoryStore) {
		store.compression = enabled
	}
}

// WithWAL logs every write to path before applying it. Entries newer than
// the snapshot are replayed by OpenMemoryStore. With fsync set each
// append is synced to disk.
func WithWAL(path string, fsync bool) MemoryOption {
	return func(store *MemoryStore) {
		store.walPath = path
		store.walSync = fsync
	}
}
