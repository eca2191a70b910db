package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"

	"github.com/adfharrison1/go-kvgate/pkg/domain"
)

const (
	boltRecordsBucket = "records"
	boltSetsBucket    = "sets"
)

// BoltStore keeps values in a "records" bucket and every set as a nested
// bucket of "sets" whose keys are the members.
type BoltStore struct {
	db *bbolt.DB
}

// NewBoltStore opens (or creates) the database at dbPath
func NewBoltStore(dbPath string) (*BoltStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := bbolt.Open(dbPath, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open BoltDB: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, name := range []string{boltRecordsBucket, boltSetsBucket} {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BoltStore{db: db}, nil
}

func (b *BoltStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var result []byte
	err := b.db.View(func(tx *bbolt.Tx) error {
		value := tx.Bucket([]byte(boltRecordsBucket)).Get([]byte(key))
		if value == nil {
			return domain.ErrKeyNotFound
		}
		// values are only valid for the life of the transaction
		result = make([]byte, len(value))
		copy(result, value)
		return nil
	})
	return result, err
}

func (b *BoltStore) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return b.db.Update(func(tx *bbolt.Tx) error {
		return putRecord(tx, key, value)
	})
}

func (b *BoltStore) AddToSet(ctx context.Context, setKey, member string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return b.db.Update(func(tx *bbolt.Tx) error {
		return addMember(tx, setKey, member)
	})
}

func (b *BoltStore) Members(ctx context.Context, setKey string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	members := []string{}
	err := b.db.View(func(tx *bbolt.Tx) error {
		set := tx.Bucket([]byte(boltSetsBucket)).Bucket([]byte(setKey))
		if set == nil {
			return nil
		}
		return set.ForEach(func(k, _ []byte) error {
			members = append(members, string(k))
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return members, nil
}

// SetWithIndex writes the value and the set member in one bolt transaction.
func (b *BoltStore) SetWithIndex(ctx context.Context, key string, value []byte, setKey, member string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return b.db.Update(func(tx *bbolt.Tx) error {
		if err := putRecord(tx, key, value); err != nil {
			return err
		}
		return addMember(tx, setKey, member)
	})
}

func (b *BoltStore) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return b.db.View(func(tx *bbolt.Tx) error {
		if tx.Bucket([]byte(boltRecordsBucket)) == nil {
			return fmt.Errorf("bucket %s missing", boltRecordsBucket)
		}
		return nil
	})
}

func (b *BoltStore) Close() error {
	return b.db.Close()
}

// Stats reports bolt transaction counters.
func (b *BoltStore) Stats() map[string]interface{} {
	st := b.db.Stats()
	return map[string]interface{}{
		"path":        b.db.Path(),
		"open_tx":     st.OpenTxN,
		"total_tx":    st.TxN,
		"free_pages":  st.FreePageN,
		"write_count": st.TxStats.Write,
	}
}

func putRecord(tx *bbolt.Tx, key string, value []byte) error {
	return tx.Bucket([]byte(boltRecordsBucket)).Put([]byte(key), value)
}

func addMember(tx *bbolt.Tx, setKey, member string) error {
	set, err := tx.Bucket([]byte(boltSetsBucket)).CreateBucketIfNotExists([]byte(setKey))
	if err != nil {
		return fmt.Errorf("failed to create set %s: %w", setKey, err)
	}
	return set.Put([]byte(member), []byte{})
}
