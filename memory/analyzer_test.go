package memory_test

import (
	"context"
	"errors"
	"hash/fnv"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/membank/membank-go/core"
	"github.com/membank/membank-go/memory"
	"github.com/membank/membank-go/memory/index/chromem"
)

// bagEmbedder hashes words into buckets, so texts sharing words get high
// cosine similarity. Deterministic, and similarity-meaningful enough to
// exercise ranking without a real model.
type bagEmbedder struct {
	dims int
}

func newBagEmbedder() *bagEmbedder {
	return &bagEmbedder{dims: 384}
}

func (b *bagEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	embedding := make([]float32, b.dims)
	for _, word := range strings.Fields(strings.ToLower(text)) {
		h := fnv.New32a()
		h.Write([]byte(word))
		embedding[int(h.Sum32())%b.dims]++
	}
	var norm float32
	for _, v := range embedding {
		norm += v * v
	}
	if norm > 0 {
		norm = float32(math.Sqrt(float64(norm)))
		for i := range embedding {
			embedding[i] /= norm
		}
	}
	return embedding, nil
}

func (b *bagEmbedder) Dimensions() int {
	return b.dims
}

// failingEmbedder always errors.
type failingEmbedder struct{}

func (f *failingEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return nil, errors.New("model unavailable")
}

func (f *failingEmbedder) Dimensions() int { return 384 }

// fixedScorer pins polarity for deterministic sentiment.
type fixedScorer struct {
	polarity float64
}

func (s *fixedScorer) Score(text string) (float64, error) {
	return s.polarity, nil
}

func newTestIndex(t *testing.T) *chromem.Index {
	t.Helper()
	idx, err := chromem.New()
	if err != nil {
		t.Fatalf("create index: %v", err)
	}
	return idx
}

func TestAnalyzeDerivesAndStores(t *testing.T) {
	ctx := context.Background()
	embedder := newBagEmbedder()
	idx := newTestIndex(t)
	now := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)

	analyzer := memory.NewAnalyzer(embedder, idx,
		memory.WithSentimentScorer(&fixedScorer{polarity: 0.8}),
		memory.WithClock(func() time.Time { return now }),
	)

	analyzed, err := analyzer.Analyze(ctx, core.Memory{
		ID:      "t1",
		Title:   "Family Vacation to Hawaii",
		Content: "We had an amazing week at the beach with the whole family.",
	})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if analyzed.ID != "t1" {
		t.Errorf("ID = %q, want t1", analyzed.ID)
	}
	if analyzed.IndexKey != "memory_t1" {
		t.Errorf("IndexKey = %q, want memory_t1", analyzed.IndexKey)
	}
	if analyzed.Sentiment != core.SentimentPositive || analyzed.Confidence != 0.8 {
		t.Errorf("sentiment = (%q, %v), want (positive, 0.8)", analyzed.Sentiment, analyzed.Confidence)
	}
	if len(analyzed.Embedding) != embedder.Dimensions() {
		t.Errorf("embedding length = %d, want %d", len(analyzed.Embedding), embedder.Dimensions())
	}
	if !hasTag(analyzed.Tags, "family") || !hasTag(analyzed.Tags, "travel") {
		t.Errorf("tags = %v, want family and travel present", analyzed.Tags)
	}

	// Stored record round-trips through the index with its metadata.
	retriever := memory.NewRetriever(embedder, idx)
	results, err := retriever.Search(ctx, "Family Vacation to Hawaii", 1)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results.Matches) != 1 {
		t.Fatalf("got %d matches, want 1", len(results.Matches))
	}
	match := results.Matches[0]
	if match.MemoryID != "t1" || match.Sentiment != core.SentimentPositive {
		t.Errorf("match = %+v", match)
	}
	if !match.Timestamp.Equal(now) {
		t.Errorf("timestamp = %v, want %v", match.Timestamp, now)
	}
}

func TestAnalyzeSelfSimilarityRanksHighly(t *testing.T) {
	ctx := context.Background()
	embedder := newBagEmbedder()
	idx := newTestIndex(t)
	analyzer := memory.NewAnalyzer(embedder, idx,
		memory.WithSentimentScorer(&fixedScorer{polarity: 0}))

	memories := []core.Memory{
		{ID: "t1", Title: "Family Vacation to Hawaii", Content: "We had an amazing week at the beach."},
		{ID: "t2", Title: "Quarterly Budget Review", Content: "Long meeting about spreadsheets and projections."},
		{ID: "t3", Title: "Learning to Cook Ramen", Content: "Broth simmered for twelve hours."},
	}
	for _, mem := range memories {
		if _, err := analyzer.Analyze(ctx, mem); err != nil {
			t.Fatalf("Analyze %s: %v", mem.ID, err)
		}
	}

	retriever := memory.NewRetriever(embedder, idx)
	results, err := retriever.Search(ctx, "Family Vacation to Hawaii", 0)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results.Matches) == 0 {
		t.Fatal("no matches")
	}
	if got := results.Matches[0].MemoryID; got != "t1" {
		t.Errorf("top match = %q, want t1", got)
	}
	if score := results.Matches[0].Score; score < 0.5 {
		t.Errorf("self-similarity score = %v, want >= 0.5", score)
	}
}

func TestAnalyzeTruncatesStoredContent(t *testing.T) {
	ctx := context.Background()
	embedder := newBagEmbedder()
	idx := newTestIndex(t)
	analyzer := memory.NewAnalyzer(embedder, idx,
		memory.WithSentimentScorer(&fixedScorer{polarity: 0}))

	long := strings.Repeat("beach day ", 100) // 1000 chars
	if _, err := analyzer.Analyze(ctx, core.Memory{ID: "long", Title: "Beach", Content: long}); err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	retriever := memory.NewRetriever(embedder, idx)
	results, err := retriever.Search(ctx, "beach day", 1)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results.Matches) != 1 {
		t.Fatalf("got %d matches, want 1", len(results.Matches))
	}
	if got := len(results.Matches[0].Content); got > 500 {
		t.Errorf("stored content length = %d, want <= 500", got)
	}
}

func TestAnalyzeAssignsIDWhenMissing(t *testing.T) {
	ctx := context.Background()
	idx := newTestIndex(t)
	analyzer := memory.NewAnalyzer(newBagEmbedder(), idx,
		memory.WithSentimentScorer(&fixedScorer{polarity: 0}))

	analyzed, err := analyzer.Analyze(ctx, core.Memory{Title: "Untitled", Content: "note"})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if analyzed.ID == "" {
		t.Fatal("expected assigned ID")
	}
	if analyzed.IndexKey != memory.IndexKey(analyzed.ID) {
		t.Errorf("IndexKey = %q, want %q", analyzed.IndexKey, memory.IndexKey(analyzed.ID))
	}
}

func TestAnalyzeEmbedFailureIsFatal(t *testing.T) {
	ctx := context.Background()
	idx := newTestIndex(t)
	analyzer := memory.NewAnalyzer(&failingEmbedder{}, idx,
		memory.WithSentimentScorer(&fixedScorer{polarity: 0}))

	_, err := analyzer.Analyze(ctx, core.Memory{ID: "x", Title: "t", Content: "c"})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "analyze memory x") {
		t.Errorf("error not labeled with pipeline: %v", err)
	}
}

func hasTag(tags []string, want string) bool {
	for _, tag := range tags {
		if tag == want {
			return true
		}
	}
	return false
}
