// Package chromem implements the similarity index on chromem-go, a pure Go
// embedded vector database. Records live in one shared collection; scoping
// is left to the Filter placeholder (see memory.Filter).
package chromem

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	chromem "github.com/philippgille/chromem-go"

	"github.com/membank/membank-go/core"
	"github.com/membank/membank-go/memory"
)

const collectionName = "memories"

// Metadata field names as stored in the index.
const (
	fieldMemoryID  = "memory_id"
	fieldTitle     = "title"
	fieldTags      = "tags"
	fieldSentiment = "sentiment"
	fieldTimestamp = "timestamp"
)

// Index stores records in a chromem-go collection with cosine similarity.
// chromem serializes writes internally; Index adds no locking of its own.
type Index struct {
	db  *chromem.DB
	col *chromem.Collection
}

// New creates an in-memory index.
func New() (*Index, error) {
	return newIndex(chromem.NewDB())
}

// NewPersistent creates an index backed by files under path, so records
// survive restarts.
func NewPersistent(path string) (*Index, error) {
	db, err := chromem.NewPersistentDB(path, false)
	if err != nil {
		return nil, fmt.Errorf("open persistent store: %w", err)
	}
	return newIndex(db)
}

func newIndex(db *chromem.DB) (*Index, error) {
	// nil embedding func: callers always provide vectors. Default distance
	// is cosine.
	col, err := db.GetOrCreateCollection(collectionName, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("create collection: %w", err)
	}
	return &Index{db: db, col: col}, nil
}

// Upsert inserts or replaces the record stored under key. chromem keys
// documents by ID, so re-adding the same key overwrites the prior entry.
func (x *Index) Upsert(ctx context.Context, key string, embedding []float32, meta core.RecordMetadata) error {
	metadata, err := encodeMetadata(meta)
	if err != nil {
		return fmt.Errorf("encode metadata: %w", err)
	}

	doc := chromem.Document{
		ID:        key,
		Content:   meta.Content,
		Embedding: embedding,
		Metadata:  metadata,
	}
	if err := x.col.AddDocument(ctx, doc); err != nil {
		return fmt.Errorf("add document: %w", err)
	}

	log.Printf("[CHROMEM] Upserted %s (%d records total)", key, x.col.Count())
	return nil
}

// Query returns up to topK records nearest to embedding, ranked by
// descending cosine similarity. topK beyond the collection size is clamped;
// an empty collection yields no matches and no error.
func (x *Index) Query(ctx context.Context, embedding []float32, topK int, filter memory.Filter) ([]core.SearchMatch, error) {
	// chromem rejects nResults greater than the number of stored documents.
	count := x.col.Count()
	if count == 0 {
		return nil, nil
	}
	if topK > count {
		topK = count
	}

	results, err := x.col.QueryEmbedding(ctx, embedding, topK, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("query collection: %w", err)
	}

	matches := make([]core.SearchMatch, 0, len(results))
	for _, result := range results {
		if filter.RequireField != "" {
			if _, ok := result.Metadata[filter.RequireField]; !ok {
				continue
			}
		}
		matches = append(matches, decodeMatch(result))
	}
	return matches, nil
}

// Delete removes the record stored under key, if present.
func (x *Index) Delete(ctx context.Context, key string) error {
	if err := x.col.Delete(ctx, nil, nil, key); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}

// Close releases resources. The in-memory variant has nothing to release.
func (x *Index) Close() error {
	return nil
}

// encodeMetadata flattens record metadata to chromem's string map. Tags are
// stored as a JSON array, the timestamp as RFC 3339.
func encodeMetadata(meta core.RecordMetadata) (map[string]string, error) {
	tags, err := json.Marshal(meta.Tags)
	if err != nil {
		return nil, fmt.Errorf("marshal tags: %w", err)
	}
	return map[string]string{
		fieldMemoryID:  meta.MemoryID,
		fieldTitle:     meta.Title,
		fieldTags:      string(tags),
		fieldSentiment: string(meta.Sentiment),
		fieldTimestamp: meta.Timestamp.Format(time.RFC3339),
	}, nil
}

// decodeMatch rebuilds a search match from a chromem result. Malformed
// fields decode to zero values rather than failing the query.
func decodeMatch(result chromem.Result) core.SearchMatch {
	var tags []string
	if raw := result.Metadata[fieldTags]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &tags); err != nil {
			log.Printf("[CHROMEM] Skipping malformed tags for %s: %v", result.ID, err)
		}
	}

	timestamp, _ := time.Parse(time.RFC3339, result.Metadata[fieldTimestamp])

	return core.SearchMatch{
		MemoryID:  result.Metadata[fieldMemoryID],
		Title:     result.Metadata[fieldTitle],
		Content:   result.Content,
		Tags:      tags,
		Sentiment: core.Sentiment(result.Metadata[fieldSentiment]),
		Score:     result.Similarity,
		Timestamp: timestamp,
	}
}
