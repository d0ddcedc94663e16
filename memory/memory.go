package memory

import (
	"context"

	"github.com/membank/membank-go/core"
)

// Embedder converts text to a fixed-dimension vector embedding.
// Implementations: mock (testing/offline), onnx (local model), openai
// (API-based), cached (decorator).
//
// Embed is pure with respect to its input text: the same text always maps
// to the same vector for a given implementation.
type Embedder interface {
	// Embed converts a single text to an embedding vector of exactly
	// Dimensions() entries.
	Embed(ctx context.Context, text string) ([]float32, error)

	// Dimensions returns the embedding vector size.
	Dimensions() int
}

// Filter restricts query candidates by metadata. This design uses only an
// existence check on the memory_id field, a placeholder for future
// per-user scoping: nothing actually isolates one caller's records from
// another's inside a shared index. Known gap, kept on purpose.
type Filter struct {
	// RequireField keeps only records whose metadata carries this field.
	// Empty means no filtering.
	RequireField string
}

// Index is the similarity-search backend: an opaque nearest-neighbor
// oracle storing (key, embedding, metadata) triples.
// Implementations: chromem (embedded, in-process).
type Index interface {
	// Upsert inserts or replaces the record stored under key. Concurrent
	// upserts of the same key race with last-write-wins semantics; callers
	// must not assume a particular winner.
	Upsert(ctx context.Context, key string, embedding []float32, meta core.RecordMetadata) error

	// Query returns up to topK records nearest to embedding, ranked by
	// non-increasing similarity score. Ties keep the index's native order.
	Query(ctx context.Context, embedding []float32, topK int, filter Filter) ([]core.SearchMatch, error)

	// Delete removes the record stored under key. Deleting an absent key
	// is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources.
	Close() error
}

// IndexKey derives the deterministic index key for a memory ID.
func IndexKey(memoryID string) string {
	return "memory_" + memoryID
}
