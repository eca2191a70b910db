// Package gateway maps collection operations onto a key-value store.
//
// Every record lives under "<collection>:<id>" and its id is also added to
// the set "<collection>:index", which is what List enumerates.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/adfharrison1/go-kvgate/pkg/domain"
)

// Gateway implements Write, Read, List and BulkSeed on top of a KVStore.
// It holds no state of its own and is safe for concurrent use.
type Gateway struct {
	store domain.KVStore
	now   func() time.Time
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithClock overrides the clock used to time BulkSeed.
func WithClock(fn func() time.Time) Option {
	return func(g *Gateway) {
		if fn != nil {
			g.now = fn
		}
	}
}

// New creates a gateway over store.
func New(store domain.KVStore, opts ...Option) *Gateway {
	g := &Gateway{
		store: store,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Store returns the underlying store.
func (g *Gateway) Store() domain.KVStore {
	return g.store
}

// Write stores rec under collection and indexes its id. The record is
// returned unchanged. Writing an existing id overwrites it.
func (g *Gateway) Write(ctx context.Context, collection string, rec domain.Record) (domain.Record, error) {
	id, err := rec.ID()
	if err != nil {
		return nil, err
	}
	if reservedID(id) {
		return nil, domain.NewError(domain.KindValidation, "write",
			fmt.Errorf("el id %q está reservado", id))
	}

	payload, err := domain.EncodeRecord(rec)
	if err != nil {
		return nil, domain.NewError(domain.KindInvalidFormat, "write", err)
	}

	if err := g.store.SetWithIndex(ctx, RecordKey(collection, id), payload, IndexKey(collection), id); err != nil {
		return nil, domain.StoreErr("write", err)
	}
	return rec, nil
}

// Read returns the record stored under collection and id. The index set is
// not consulted. Reserved ids can never hold a record and are not found.
func (g *Gateway) Read(ctx context.Context, collection, id string) (domain.Record, error) {
	if reservedID(id) {
		return nil, domain.NewError(domain.KindNotFound, "read", domain.ErrRecordNotFound)
	}

	value, err := g.store.Get(ctx, RecordKey(collection, id))
	if errors.Is(err, domain.ErrKeyNotFound) {
		return nil, domain.NewError(domain.KindNotFound, "read", domain.ErrRecordNotFound)
	}
	if err != nil {
		return nil, domain.StoreErr("read", err)
	}

	rec, err := domain.DecodeRecord(value)
	if err != nil {
		return nil, domain.NewError(domain.KindInvalidFormat, "read",
			fmt.Errorf("stored value for %s is not a JSON object: %w", RecordKey(collection, id), err))
	}
	return rec, nil
}

// List returns every record whose id is in the collection's index set.
// Ids whose record key no longer resolves are skipped.
func (g *Gateway) List(ctx context.Context, collection string) (*domain.ListResult, error) {
	ids, err := g.store.Members(ctx, IndexKey(collection))
	if err != nil {
		return nil, domain.StoreErr("list", err)
	}

	result := &domain.ListResult{
		Collection: collection,
		Records:    make([]domain.Record, 0, len(ids)),
	}
	if len(ids) == 0 {
		return result, nil
	}

	for _, id := range ids {
		key := RecordKey(collection, id)
		value, err := g.store.Get(ctx, key)
		if errors.Is(err, domain.ErrKeyNotFound) {
			continue
		}
		if err != nil {
			return nil, domain.StoreErr("list", err)
		}

		rec, err := domain.DecodeRecord(value)
		if err != nil {
			return nil, domain.NewError(domain.KindInvalidFormat, "list",
				fmt.Errorf("stored value for %s is not a JSON object: %w", key, err))
		}
		result.Records = append(result.Records, rec)
	}

	result.Count = len(result.Records)
	return result, nil
}
