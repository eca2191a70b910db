package domain

import "time"

// KnownCollections are the dataset keys BulkSeed loads, in load order.
var KnownCollections = []string{"clientes", "productos", "pedidos", "detalle_pedido"}

// SeedSummary reports the outcome of a bulk seed.
type SeedSummary struct {
	TotalInserted int
	Duration      time.Duration
	// Collections holds the number of records written per collection.
	Collections map[string]int
	// Skipped holds records left out because they had no usable id.
	Skipped map[string]int
}

// ListResult is the output of a full collection scan.
type ListResult struct {
	Collection string
	Count      int
	Records    []Record
}
