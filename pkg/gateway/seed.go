package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/adfharrison1/go-kvgate/pkg/domain"
)

// BulkSeed loads the dataset at path and writes every record of the known
// collections, one at a time and in array order. The first failed write
// aborts the seed; records written before it stay in the store.
//
// A known field that is not an array is treated as absent. Elements that
// are not objects or lack a usable id are skipped and counted in Skipped.
func (g *Gateway) BulkSeed(ctx context.Context, path string) (*domain.SeedSummary, error) {
	start := g.now()

	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, domain.NewError(domain.KindNotFound, "seed",
			fmt.Errorf("dataset %s not found", path))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset %s: %w", path, err)
	}

	summary, err := g.seed(ctx, raw)
	if err != nil {
		return nil, err
	}
	summary.Duration = g.now().Sub(start)
	return summary, nil
}

func (g *Gateway) seed(ctx context.Context, raw []byte) (*domain.SeedSummary, error) {
	var dataset map[string]json.RawMessage
	if err := json.Unmarshal(raw, &dataset); err != nil {
		return nil, domain.NewError(domain.KindInvalidFormat, "seed",
			fmt.Errorf("dataset is not a JSON object: %w", err))
	}

	summary := &domain.SeedSummary{
		Collections: make(map[string]int, len(domain.KnownCollections)),
		Skipped:     make(map[string]int),
	}

	for _, collection := range domain.KnownCollections {
		summary.Collections[collection] = 0

		elements, ok := splitArray(dataset[collection])
		if !ok {
			if len(dataset[collection]) > 0 {
				log.Printf("WARN: Dataset field %q is not an array, skipping", collection)
			}
			continue
		}

		for i, element := range elements {
			rec, err := domain.DecodeRecord(element)
			if err != nil {
				log.Printf("WARN: Skipping %s[%d]: not a JSON object", collection, i)
				summary.Skipped[collection]++
				continue
			}
			if _, err := g.Write(ctx, collection, rec); err != nil {
				if domain.IsKind(err, domain.KindValidation) {
					log.Printf("WARN: Skipping %s[%d]: %v", collection, i, err)
					summary.Skipped[collection]++
					continue
				}
				return nil, err
			}
			summary.Collections[collection]++
			summary.TotalInserted++
		}
	}

	return summary, nil
}

// splitArray returns the raw elements of a dataset field. It reports false
// when the field is missing or is not an array.
func splitArray(raw json.RawMessage) ([]json.RawMessage, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, false
	}

	var elements []json.RawMessage
	if err := json.Unmarshal(trimmed, &elements); err != nil {
		return nil, false
	}
	return elements, true
}
