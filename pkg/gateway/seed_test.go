package gateway

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adfharrison1/go-kvgate/pkg/domain"
	"github.com/adfharrison1/go-kvgate/pkg/storage"
)

func writeDataset(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dataset.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const sampleDataset = `{
	"clientes": [{"id": 1, "nombre": "Ana"}, {"id": 2, "nombre": "Luis"}],
	"productos": [{"id": 101, "nombre": "Laptop", "precio": 899.90}],
	"pedidos": [{"id": 5001, "cliente_id": 1}],
	"detalle_pedido": [{"id": 1, "pedido_id": 5001}, {"id": 2, "pedido_id": 5001}],
	"ignorada": [{"id": 1}]
}`

func TestGateway_BulkSeed(t *testing.T) {
	gw := New(storage.NewMemoryStore())
	ctx := context.Background()

	summary, err := gw.BulkSeed(ctx, writeDataset(t, sampleDataset))
	require.NoError(t, err)

	assert.Equal(t, 6, summary.TotalInserted)
	assert.Equal(t, map[string]int{
		"clientes":       2,
		"productos":      1,
		"pedidos":        1,
		"detalle_pedido": 2,
	}, summary.Collections)
	assert.Empty(t, summary.Skipped)

	for collection, count := range summary.Collections {
		result, err := gw.List(ctx, collection)
		require.NoError(t, err)
		assert.Equal(t, count, result.Count, collection)
	}

	// Unknown dataset keys are not loaded
	result, err := gw.List(ctx, "ignorada")
	require.NoError(t, err)
	assert.Equal(t, 0, result.Count)

	got, err := gw.Read(ctx, "productos", "101")
	require.NoError(t, err)
	assert.Equal(t, "Laptop", got["nombre"])
}

func TestGateway_BulkSeedSkipsRecordsWithoutID(t *testing.T) {
	gw := New(storage.NewMemoryStore())

	summary, err := gw.BulkSeed(context.Background(), writeDataset(t, `{
		"clientes": [{"id": 1}, {"nombre": "sin id"}, null, {"id": 3}],
		"productos": null
	}`))
	require.NoError(t, err)

	assert.Equal(t, 2, summary.TotalInserted)
	assert.Equal(t, 2, summary.Collections["clientes"])
	assert.Equal(t, 2, summary.Skipped["clientes"])
	assert.Equal(t, 0, summary.Collections["productos"])
	assert.Equal(t, 0, summary.Collections["pedidos"])
}

func TestGateway_BulkSeedSkipsMalformedFields(t *testing.T) {
	gw := New(storage.NewMemoryStore())
	ctx := context.Background()

	summary, err := gw.BulkSeed(ctx, writeDataset(t, `{
		"clientes": "oops",
		"productos": [{"id": 1}, 5, "texto", [1], {"id": 2}],
		"pedidos": {"id": 9},
		"detalle_pedido": [{"id": 7}]
	}`))
	require.NoError(t, err)

	assert.Equal(t, 3, summary.TotalInserted)
	assert.Equal(t, map[string]int{
		"clientes":       0,
		"productos":      2,
		"pedidos":        0,
		"detalle_pedido": 1,
	}, summary.Collections)
	assert.Equal(t, map[string]int{"productos": 3}, summary.Skipped)

	result, err := gw.List(ctx, "productos")
	require.NoError(t, err)
	assert.Equal(t, 2, result.Count)

	result, err = gw.List(ctx, "pedidos")
	require.NoError(t, err)
	assert.Equal(t, 0, result.Count)
}

func TestGateway_BulkSeedErrors(t *testing.T) {
	tests := []struct {
		name     string
		path     func(t *testing.T) string
		expected domain.Kind
	}{
		{
			name:     "missing dataset",
			path:     func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.json") },
			expected: domain.KindNotFound,
		},
		{
			name:     "not json",
			path:     func(t *testing.T) string { return writeDataset(t, `{"clientes": [`) },
			expected: domain.KindInvalidFormat,
		},
		{
			name:     "top level array",
			path:     func(t *testing.T) string { return writeDataset(t, `[1, 2]`) },
			expected: domain.KindInvalidFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := New(storage.NewMemoryStore())
			_, err := gw.BulkSeed(context.Background(), tt.path(t))
			require.Error(t, err)
			assert.Equal(t, tt.expected, domain.KindOf(err))
		})
	}
}

func TestGateway_BulkSeedStopsOnStoreError(t *testing.T) {
	store := newFaultyStore(3)
	gw := New(store)
	ctx := context.Background()

	_, err := gw.BulkSeed(ctx, writeDataset(t, sampleDataset))
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindStore))

	// Writes before the failure are kept
	clientes, err := gw.List(ctx, "clientes")
	require.NoError(t, err)
	assert.Equal(t, 2, clientes.Count)

	productos, err := gw.List(ctx, "productos")
	require.NoError(t, err)
	assert.Equal(t, 1, productos.Count)

	pedidos, err := gw.List(ctx, "pedidos")
	require.NoError(t, err)
	assert.Equal(t, 0, pedidos.Count)
}

func TestGateway_BulkSeedDuration(t *testing.T) {
	start := time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC)
	calls := 0
	clock := func() time.Time {
		calls++
		return start.Add(time.Duration(calls-1) * 250 * time.Millisecond)
	}

	gw := New(storage.NewMemoryStore(), WithClock(clock))
	summary, err := gw.BulkSeed(context.Background(), writeDataset(t, sampleDataset))
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, summary.Duration)
}
