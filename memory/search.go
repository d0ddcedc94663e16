package memory

import (
	"context"
	"fmt"
	"log"

	"github.com/membank/membank-go/core"
)

// DefaultTopK is the number of matches returned when the caller does not
// ask for a specific count.
const DefaultTopK = 5

// memoryIDField is the metadata field every indexed record carries; the
// retrieval filter requires its presence. See Filter for why this does not
// scope by user.
const memoryIDField = "memory_id"

// Retriever is the read path: it embeds a query and returns the nearest
// stored records. Stateless and safe for concurrent use.
type Retriever struct {
	embedder Embedder
	index    Index
}

// NewRetriever creates a Retriever over the given embedder and index.
func NewRetriever(embedder Embedder, index Index) *Retriever {
	return &Retriever{embedder: embedder, index: index}
}

// Search embeds query and returns up to topK matches ranked by
// non-increasing score, in the index's order, plus the query embedding.
// topK <= 0 selects DefaultTopK. No deduplication is performed.
func (r *Retriever) Search(ctx context.Context, query string, topK int) (*core.SearchResults, error) {
	if topK <= 0 {
		topK = DefaultTopK
	}

	embedding, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search: embed query: %w", err)
	}

	matches, err := r.index.Query(ctx, embedding, topK, Filter{RequireField: memoryIDField})
	if err != nil {
		return nil, fmt.Errorf("search: query index: %w", err)
	}

	log.Printf("[SEARCH] %d matches for query (topK=%d)", len(matches), topK)

	return &core.SearchResults{
		Matches:        matches,
		QueryEmbedding: embedding,
	}, nil
}
