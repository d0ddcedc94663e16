package core

import "time"

// Sentiment is the three-way sentiment label derived for a memory.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// Memory is a short free-text note submitted for analysis.
// Memories are immutable once submitted: re-analyzing the same ID produces
// a fresh analysis that replaces the prior index entry.
type Memory struct {
	// ID uniquely identifies the memory. If empty, the analyzer assigns one.
	ID string `json:"id"`

	// Title is a short human-readable name for the memory.
	Title string `json:"title"`

	// Content is the free-text body.
	Content string `json:"content"`

	// Tags are caller-supplied topical tags, in order. May be empty.
	// The analyzer preserves them and appends derived tags.
	Tags []string `json:"tags,omitempty"`
}

// AnalyzedMemory is the result of running a Memory through the analysis
// pipeline. It carries every derived field, including the full (untruncated)
// embedding that was persisted to the similarity index.
type AnalyzedMemory struct {
	ID         string    `json:"id"`
	Sentiment  Sentiment `json:"sentiment"`
	Confidence float64   `json:"confidence"` // in [0,1], |polarity|
	Tags       []string  `json:"tags"`
	Embedding  []float32 `json:"embedding"`
	IndexKey   string    `json:"index_key"`
}

// RecordMetadata is the metadata bag persisted alongside an embedding in the
// similarity index. Content is a length-capped preview, not the full memory;
// the full text is not recoverable from the index alone.
type RecordMetadata struct {
	MemoryID  string    `json:"memory_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags"`
	Sentiment Sentiment `json:"sentiment"`
	Timestamp time.Time `json:"timestamp"`
}

// SearchMatch is a single nearest-neighbor result. Score is the index's
// similarity measure, higher = more similar, passed through unnormalized.
type SearchMatch struct {
	MemoryID  string    `json:"memory_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"` // preview, capped at index time
	Tags      []string  `json:"tags"`
	Sentiment Sentiment `json:"sentiment"`
	Score     float32   `json:"score"`
	Timestamp time.Time `json:"timestamp"`
}

// SearchResults is the output of the retrieval pipeline: matches ranked by
// non-increasing score plus the embedding computed for the query.
type SearchResults struct {
	Matches        []SearchMatch `json:"results"`
	QueryEmbedding []float32     `json:"query_embedding"`
}

// RelatedMemory is a citation attached to a chat answer.
type RelatedMemory struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"` // preview
}

// ChatAnswer is a synthesized response grounded in retrieved memories.
// RelatedMemories preserves retrieval ranking regardless of which response
// template was used.
type ChatAnswer struct {
	Response        string          `json:"response"`
	RelatedMemories []RelatedMemory `json:"related_memories"`
}

// Health reports process introspection. It never fails.
type Health struct {
	Status         string `json:"status"`
	ModelsLoaded   bool   `json:"models_loaded"`
	IndexConnected bool   `json:"index_connected"`
}

// TagCount is one entry in the top-tags ranking of an InsightsReport.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// InsightsReport aggregates analyzed memories for dashboards: sentiment
// breakdown, most frequent tags, and week-over-week volume.
type InsightsReport struct {
	TotalMemories      int                `json:"total_memories"`
	SentimentBreakdown SentimentBreakdown `json:"sentiment_breakdown"`
	TopTags            []TagCount         `json:"top_tags"`
	ThisWeek           int                `json:"this_week"`
	LastWeek           int                `json:"last_week"`
}

// SentimentBreakdown counts memories per sentiment label. Records with an
// unknown or missing label count as neutral.
type SentimentBreakdown struct {
	Positive int `json:"positive"`
	Negative int `json:"negative"`
	Neutral  int `json:"neutral"`
}

// Preview returns s truncated to at most max characters.
func Preview(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
