package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adfharrison1/go-kvgate/pkg/domain"
)

type backendCase struct {
	name string
	open func(t *testing.T) domain.KVStore
}

func allBackends() []backendCase {
	return []backendCase{
		{
			name: BackendMemory,
			open: func(t *testing.T) domain.KVStore {
				return NewMemoryStore()
			},
		},
		{
			name: BackendRedis,
			open: func(t *testing.T) domain.KVStore {
				mr := miniredis.RunT(t)
				return NewRedisStore(&redis.Options{Addr: mr.Addr()})
			},
		},
		{
			name: BackendBolt,
			open: func(t *testing.T) domain.KVStore {
				store, err := NewBoltStore(filepath.Join(t.TempDir(), "test.bolt"))
				require.NoError(t, err)
				return store
			},
		},
		{
			name: BackendSqlite,
			open: func(t *testing.T) domain.KVStore {
				store, err := NewSqliteStore(filepath.Join(t.TempDir(), "test.db"))
				require.NoError(t, err)
				return store
			},
		},
	}
}

// TestKVStore_Contract runs the same checks against every backend
func TestKVStore_Contract(t *testing.T) {
	for _, bc := range allBackends() {
		t.Run(bc.name, func(t *testing.T) {
			ctx := context.Background()

			t.Run("ping", func(t *testing.T) {
				store := bc.open(t)
				defer store.Close()
				assert.NoError(t, store.Ping(ctx))
			})

			t.Run("get missing key", func(t *testing.T) {
				store := bc.open(t)
				defer store.Close()

				_, err := store.Get(ctx, "clientes:1")
				assert.ErrorIs(t, err, domain.ErrKeyNotFound)
			})

			t.Run("set then get", func(t *testing.T) {
				store := bc.open(t)
				defer store.Close()

				require.NoError(t, store.Set(ctx, "clientes:1", []byte(`{"id":1}`)))
				value, err := store.Get(ctx, "clientes:1")
				require.NoError(t, err)
				assert.Equal(t, `{"id":1}`, string(value))

				// Overwrite
				require.NoError(t, store.Set(ctx, "clientes:1", []byte(`{"id":1,"v":2}`)))
				value, err = store.Get(ctx, "clientes:1")
				require.NoError(t, err)
				assert.Equal(t, `{"id":1,"v":2}`, string(value))
			})

			t.Run("returned value is a copy", func(t *testing.T) {
				store := bc.open(t)
				defer store.Close()

				require.NoError(t, store.Set(ctx, "k", []byte("abc")))
				value, err := store.Get(ctx, "k")
				require.NoError(t, err)
				value[0] = 'x'

				again, err := store.Get(ctx, "k")
				require.NoError(t, err)
				assert.Equal(t, "abc", string(again))
			})

			t.Run("members of missing set", func(t *testing.T) {
				store := bc.open(t)
				defer store.Close()

				members, err := store.Members(ctx, "clientes:index")
				require.NoError(t, err)
				assert.NotNil(t, members)
				assert.Empty(t, members)
			})

			t.Run("add to set is idempotent", func(t *testing.T) {
				store := bc.open(t)
				defer store.Close()

				for _, member := range []string{"1", "2", "1", "3", "2"} {
					require.NoError(t, store.AddToSet(ctx, "clientes:index", member))
				}
				members, err := store.Members(ctx, "clientes:index")
				require.NoError(t, err)
				assert.ElementsMatch(t, []string{"1", "2", "3"}, members)
			})

			t.Run("set with index", func(t *testing.T) {
				store := bc.open(t)
				defer store.Close()

				require.NoError(t, store.SetWithIndex(ctx, "pedidos:7", []byte(`{"id":7}`), "pedidos:index", "7"))
				require.NoError(t, store.SetWithIndex(ctx, "pedidos:7", []byte(`{"id":7,"x":1}`), "pedidos:index", "7"))

				value, err := store.Get(ctx, "pedidos:7")
				require.NoError(t, err)
				assert.Equal(t, `{"id":7,"x":1}`, string(value))

				members, err := store.Members(ctx, "pedidos:index")
				require.NoError(t, err)
				assert.Equal(t, []string{"7"}, members)
			})

			t.Run("sets are independent", func(t *testing.T) {
				store := bc.open(t)
				defer store.Close()

				require.NoError(t, store.AddToSet(ctx, "a:index", "1"))
				require.NoError(t, store.AddToSet(ctx, "b:index", "2"))

				members, err := store.Members(ctx, "a:index")
				require.NoError(t, err)
				assert.Equal(t, []string{"1"}, members)
			})
		})
	}
}

func TestKVStore_ImplementsStats(t *testing.T) {
	for _, bc := range allBackends() {
		t.Run(bc.name, func(t *testing.T) {
			store := bc.open(t)
			defer store.Close()

			s, ok := store.(domain.Stats)
			require.True(t, ok)
			assert.NotEmpty(t, s.Stats())
		})
	}
}
