package storage

import (
	"log"
	"runtime"
	"time"
)

// Stats returns current memory usage statistics
func (m *MemoryStore) Stats() map[string]interface{} {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	m.mu.RLock()
	defer m.mu.RUnlock()

	stats := map[string]interface{}{
		"alloc_mb":       ms.Alloc / 1024 / 1024,
		"sys_mb":         ms.Sys / 1024 / 1024,
		"num_goroutines": runtime.NumGoroutine(),
		"keys":           len(m.values),
		"sets":           len(m.sets),
		"dirty":          m.dirtyLocked(),
	}
	if m.wal != nil {
		stats["wal_lsn"] = m.wal.lastLSN()
		stats["snapshot_lsn"] = m.snapshotLSN
	}
	return stats
}

// StartBackgroundWorkers starts the periodic snapshot saver
func (m *MemoryStore) StartBackgroundWorkers() {
	if !m.backgroundSave || m.snapshotFile == "" {
		return
	}

	m.backgroundWg.Add(1)
	go func() {
		defer m.backgroundWg.Done()
		ticker := time.NewTicker(m.saveInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				m.saveIfDirty()
			case <-m.stopChan:
				return
			}
		}
	}()
}

// StopBackgroundWorkers stops background workers
func (m *MemoryStore) StopBackgroundWorkers() {
	m.stopOnce.Do(func() { close(m.stopChan) })
	m.backgroundWg.Wait()
}

func (m *MemoryStore) saveIfDirty() {
	m.mu.RLock()
	dirty := m.dirtyLocked()
	m.mu.RUnlock()
	if !dirty {
		return
	}

	if err := m.SaveToFile(m.snapshotFile); err != nil {
		log.Printf("ERROR: Background save to %s failed: %v", m.snapshotFile, err)
		return
	}
	log.Printf("INFO: Background save to %s completed", m.snapshotFile)
}
