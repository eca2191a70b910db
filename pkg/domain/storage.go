package domain

import "context"

// KVStore is the capability set the gateway needs from a backend.
// Implementations must be safe for concurrent use.
type KVStore interface {
	// Get returns the value stored at key, or ErrKeyNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	AddToSet(ctx context.Context, setKey, member string) error
	// Members returns the members of setKey in backend order. A missing
	// set yields an empty slice.
	Members(ctx context.Context, setKey string) ([]string, error)
	// SetWithIndex stores value at key and adds member to setKey as one
	// atomic unit.
	SetWithIndex(ctx context.Context, key string, value []byte, setKey, member string) error
	Ping(ctx context.Context) error
	Close() error
}

// Stats is implemented by backends that can report runtime figures.
type Stats interface {
	Stats() map[string]interface{}
}
