package api

import (
	"context"
	"sync"

	"github.com/adfharrison1/go-kvgate/pkg/domain"
)

// MockGateway provides a mock implementation of domain.CollectionGateway for testing
type MockGateway struct {
	mu         sync.Mutex
	err        error
	writeCalls int
	readCalls  int
	listCalls  int
	seedCalls  int
	lastSeed   string
}

// NewMockGateway creates a gateway whose every call fails with err
func NewMockGateway(err error) *MockGateway {
	return &MockGateway{err: err}
}

func (m *MockGateway) Write(ctx context.Context, collection string, rec domain.Record) (domain.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writeCalls++
	return nil, m.err
}

func (m *MockGateway) Read(ctx context.Context, collection, id string) (domain.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.readCalls++
	return nil, m.err
}

func (m *MockGateway) List(ctx context.Context, collection string) (*domain.ListResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listCalls++
	return nil, m.err
}

func (m *MockGateway) BulkSeed(ctx context.Context, datasetPath string) (*domain.SeedSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seedCalls++
	m.lastSeed = datasetPath
	return nil, m.err
}

// GetWriteCalls returns the number of Write calls
func (m *MockGateway) GetWriteCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writeCalls
}

// downStore is a KVStore whose Ping always fails
type downStore struct {
	domain.KVStore
	err error
}

func (d downStore) Ping(ctx context.Context) error {
	return d.err
}
