package gateway

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/adfharrison1/go-kvgate/pkg/domain"
	"github.com/adfharrison1/go-kvgate/pkg/storage"
)

// mustRecord decodes a JSON object the same way request bodies are decoded
func mustRecord(t *testing.T, body string) domain.Record {
	t.Helper()
	rec, err := domain.DecodeRecord([]byte(body))
	require.NoError(t, err)
	return rec
}

var errBackend = errors.New("READONLY You can't write against a read only replica.")

// faultyStore wraps a MemoryStore and fails writes after failAfter
// successful ones, or every read when failReads is set.
type faultyStore struct {
	*storage.MemoryStore

	mu        sync.Mutex
	writes    int
	failAfter int
	failReads bool
}

func newFaultyStore(failAfter int) *faultyStore {
	return &faultyStore{MemoryStore: storage.NewMemoryStore(), failAfter: failAfter}
}

func (f *faultyStore) allowWrite() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAfter >= 0 && f.writes >= f.failAfter {
		return false
	}
	f.writes++
	return true
}

func (f *faultyStore) SetWithIndex(ctx context.Context, key string, value []byte, setKey, member string) error {
	if !f.allowWrite() {
		return errBackend
	}
	return f.MemoryStore.SetWithIndex(ctx, key, value, setKey, member)
}

func (f *faultyStore) Get(ctx context.Context, key string) ([]byte, error) {
	if f.failReads {
		return nil, errBackend
	}
	return f.MemoryStore.Get(ctx, key)
}

func (f *faultyStore) Members(ctx context.Context, setKey string) ([]string, error) {
	if f.failReads {
		return nil, errBackend
	}
	return f.MemoryStore.Members(ctx, setKey)
}
