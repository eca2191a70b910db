package domain

import "context"

// CollectionGateway defines the collection operations served over HTTP
type CollectionGateway interface {
	Write(ctx context.Context, collection string, rec Record) (Record, error)
	Read(ctx context.Context, collection, id string) (Record, error)
	List(ctx context.Context, collection string) (*ListResult, error)
	BulkSeed(ctx context.Context, datasetPath string) (*SeedSummary, error)
}
