// Package cached decorates an Embedder with an in-process cache. Embedding
// is a pure function of its input text, so re-embedding the same text is
// wasted latency and, for API-based embedders, wasted money.
package cached

import (
	"context"
	"fmt"

	"github.com/dgraph-io/ristretto"

	"github.com/membank/membank-go/memory"
)

// DefaultMaxBytes bounds the cache at roughly 64 MB of vector data.
const DefaultMaxBytes = 64 << 20

// Embedder wraps another embedder with a ristretto cache keyed by text.
type Embedder struct {
	inner memory.Embedder
	cache *ristretto.Cache
}

// New creates a caching decorator around inner. maxBytes <= 0 selects
// DefaultMaxBytes.
func New(inner memory.Embedder, maxBytes int64) (*Embedder, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 100_000,
		MaxCost:     maxBytes,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("create embedding cache: %w", err)
	}
	return &Embedder{inner: inner, cache: cache}, nil
}

// Embed returns the cached vector for text, embedding and caching it on a
// miss. Cached vectors are shared; callers must not mutate them.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if v, ok := e.cache.Get(text); ok {
		return v.([]float32), nil
	}

	embedding, err := e.inner.Embed(ctx, text)
	if err != nil {
		return nil, err
	}

	// 4 bytes per float32; admission may still reject the entry.
	e.cache.Set(text, embedding, int64(len(embedding)*4))
	return embedding, nil
}

// Dimensions returns the inner embedder's vector size.
func (e *Embedder) Dimensions() int {
	return e.inner.Dimensions()
}

// Wait blocks until pending cache writes are applied. Tests use this to
// make admission deterministic.
func (e *Embedder) Wait() {
	e.cache.Wait()
}

// Close releases the cache.
func (e *Embedder) Close() {
	e.cache.Close()
}
