// Package engine composes the analysis and retrieval pipelines behind a
// single facade with the operations collaborators call: Analyze, Search,
// Chat, Health, Insights, and Forget.
package engine

import (
	"context"
	"log"
	"time"

	"github.com/membank/membank-go/analysis"
	"github.com/membank/membank-go/core"
	"github.com/membank/membank-go/memory"
)

// Engine wires the two process-lifetime collaborators (embedder, index)
// into the pipelines. Construct one Engine at process start and share it;
// all operations are safe for concurrent use.
type Engine struct {
	embedder  memory.Embedder
	index     memory.Index
	analyzer  *memory.Analyzer
	retriever *memory.Retriever
	responder Responder
	scorer    analysis.PolarityScorer
}

// Option configures the engine.
type Option func(*Engine)

// WithResponder sets an optional language-model responder for Chat. Without
// one, Chat uses deterministic templates; with one, responder failures fall
// back to the same templates, never to an error.
func WithResponder(r Responder) Option {
	return func(e *Engine) {
		e.responder = r
	}
}

// WithSentimentScorer overrides the polarity oracle used during analysis.
func WithSentimentScorer(s analysis.PolarityScorer) Option {
	return func(e *Engine) {
		e.scorer = s
	}
}

// New creates an engine over the given embedder and index.
func New(embedder memory.Embedder, index memory.Index, opts ...Option) *Engine {
	e := &Engine{
		embedder: embedder,
		index:    index,
	}
	for _, opt := range opts {
		opt(e)
	}

	var analyzerOpts []memory.AnalyzerOption
	if e.scorer != nil {
		analyzerOpts = append(analyzerOpts, memory.WithSentimentScorer(e.scorer))
	}
	e.analyzer = memory.NewAnalyzer(embedder, index, analyzerOpts...)
	e.retriever = memory.NewRetriever(embedder, index)
	return e
}

// Analyze runs the analysis pipeline for one memory: sentiment, tags,
// embedding, and an idempotent index upsert.
func (e *Engine) Analyze(ctx context.Context, mem core.Memory) (*core.AnalyzedMemory, error) {
	return e.analyzer.Analyze(ctx, mem)
}

// Search embeds query and returns up to topK nearest memories plus the
// query embedding. topK <= 0 selects the default of 5.
func (e *Engine) Search(ctx context.Context, query string, topK int) (*core.SearchResults, error) {
	return e.retriever.Search(ctx, query, topK)
}

// Forget removes a memory's entry from the index. Forgetting an unknown
// memory is not an error.
func (e *Engine) Forget(ctx context.Context, memoryID string) error {
	log.Printf("[INDEX] Forgetting memory %s", memoryID)
	return e.index.Delete(ctx, memory.IndexKey(memoryID))
}

// Insights aggregates caller-held record metadata into dashboard
// statistics. The engine owns no durable state, so the records to
// aggregate come from the caller.
func (e *Engine) Insights(records []core.RecordMetadata) core.InsightsReport {
	return analysis.Insights(records, time.Now())
}

// Health reports whether the embedding model and index handle are loaded.
// Pure introspection; it never fails.
func (e *Engine) Health() core.Health {
	h := core.Health{
		ModelsLoaded:   e.embedder != nil,
		IndexConnected: e.index != nil,
	}
	if h.ModelsLoaded && h.IndexConnected {
		h.Status = "healthy"
	} else {
		h.Status = "degraded"
	}
	return h
}
