// Package storage provides the key-value backends behind the gateway.
package storage

import (
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/adfharrison1/go-kvgate/pkg/domain"
)

// WALExtension is appended to the snapshot file name to form the WAL path
const WALExtension = ".wal"

// Supported backend names
const (
	BackendRedis  = "redis"
	BackendMemory = "memory"
	BackendBolt   = "bolt"
	BackendSqlite = "sqlite"
)

// Config selects and configures a backend
type Config struct {
	Backend string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// DataDir holds the bolt and sqlite files.
	DataDir string

	// SnapshotFile, BackgroundSave and WAL apply to the memory backend.
	// The write-ahead log lives at SnapshotFile + WALExtension.
	SnapshotFile   string
	BackgroundSave time.Duration
	WAL            bool
	WALSync        bool
}

// New creates a KVStore based on cfg.Backend.
//
// Supported backends:
//
//	"redis"  - Redis server at RedisAddr (default)
//	"memory" - In-memory, optionally persisted to SnapshotFile
//	"bolt"   - BoltDB file at DataDir/kvgate.bolt
//	"sqlite" - SQLite database at DataDir/kvgate.db
func New(cfg Config) (domain.KVStore, error) {
	switch cfg.Backend {
	case BackendRedis, "":
		return NewRedisStore(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}), nil
	case BackendMemory:
		var options []MemoryOption
		if cfg.SnapshotFile != "" {
			options = append(options, WithSnapshotFile(cfg.SnapshotFile))
			if cfg.BackgroundSave > 0 {
				options = append(options, WithBackgroundSave(cfg.BackgroundSave))
				log.Printf("INFO: Background save enabled: every %v", cfg.BackgroundSave)
			} else {
				log.Printf("WARN: Background save disabled - snapshot only saved on graceful shutdown")
			}
			if cfg.WAL {
				options = append(options, WithWAL(cfg.SnapshotFile+WALExtension, cfg.WALSync))
				log.Printf("INFO: WAL enabled: %s%s (fsync: %v)", cfg.SnapshotFile, WALExtension, cfg.WALSync)
			}
		} else if cfg.WAL {
			log.Printf("WARN: WAL ignored - it requires a snapshot file")
		}
		store, err := OpenMemoryStore(options...)
		if err != nil {
			return nil, err
		}
		return store, nil
	case BackendBolt:
		store, err := NewBoltStore(filepath.Join(cfg.DataDir, "kvgate.bolt"))
		if err != nil {
			return nil, err
		}
		return store, nil
	case BackendSqlite:
		store, err := NewSqliteStore(filepath.Join(cfg.DataDir, "kvgate.db"))
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown store backend: %q (supported: redis, memory, bolt, sqlite)", cfg.Backend)
	}
}
