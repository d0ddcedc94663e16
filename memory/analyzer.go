package memory

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/membank/membank-go/analysis"
	"github.com/membank/membank-go/core"
)

// contentPreviewLimit caps the content copy stored in index metadata.
// The preview is for display and chat grounding; the full text stays with
// the caller.
const contentPreviewLimit = 500

// Analyzer is the write path: it derives sentiment, tags, and an embedding
// for a memory and persists the result in the index.
//
// Analyzer is stateless and safe for concurrent use. Concurrent analysis of
// the same memory ID races on the index entry with last-write-wins.
type Analyzer struct {
	sentiment *analysis.SentimentClassifier
	tags      *analysis.TagExtractor
	embedder  Embedder
	index     Index
	now       func() time.Time
}

// AnalyzerOption configures an Analyzer.
type AnalyzerOption func(*Analyzer)

// WithSentimentScorer overrides the polarity oracle behind sentiment
// classification.
func WithSentimentScorer(scorer analysis.PolarityScorer) AnalyzerOption {
	return func(a *Analyzer) {
		a.sentiment = analysis.NewSentimentClassifier(scorer)
	}
}

// WithClock overrides the timestamp source. Used in tests.
func WithClock(now func() time.Time) AnalyzerOption {
	return func(a *Analyzer) {
		a.now = now
	}
}

// NewAnalyzer creates an Analyzer over the given embedder and index.
func NewAnalyzer(embedder Embedder, index Index, opts ...AnalyzerOption) *Analyzer {
	a := &Analyzer{
		sentiment: analysis.NewSentimentClassifier(nil),
		tags:      analysis.NewTagExtractor(),
		embedder:  embedder,
		index:     index,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze runs the full analysis pipeline for one memory and persists an
// indexed record. Sentiment and tag derivation degrade to safe defaults;
// embedding and index failures are fatal for the request and no partial
// result is returned.
func (a *Analyzer) Analyze(ctx context.Context, mem core.Memory) (*core.AnalyzedMemory, error) {
	if mem.ID == "" {
		mem.ID = uuid.New().String()
	}

	sentiment, confidence := a.sentiment.Classify(mem.Content)
	tags := a.tags.Extract(mem.Title+" "+mem.Content, mem.Tags)

	text := mem.Title + " " + mem.Content + " " + strings.Join(tags, " ")
	embedding, err := a.embedder.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("analyze memory %s: embed: %w", mem.ID, err)
	}

	key := IndexKey(mem.ID)
	meta := core.RecordMetadata{
		MemoryID:  mem.ID,
		Title:     mem.Title,
		Content:   core.Preview(mem.Content, contentPreviewLimit),
		Tags:      tags,
		Sentiment: sentiment,
		Timestamp: a.now(),
	}
	if err := a.index.Upsert(ctx, key, embedding, meta); err != nil {
		return nil, fmt.Errorf("analyze memory %s: upsert: %w", mem.ID, err)
	}

	log.Printf("[ANALYZE] Stored memory %s: sentiment=%s tags=%d dims=%d",
		mem.ID, sentiment, len(tags), len(embedding))

	return &core.AnalyzedMemory{
		ID:         mem.ID,
		Sentiment:  sentiment,
		Confidence: confidence,
		Tags:       tags,
		Embedding:  embedding,
		IndexKey:   key,
	}, nil
}
