package analysis_test

import (
	"testing"
	"time"

	"github.com/membank/membank-go/analysis"
	"github.com/membank/membank-go/core"
)

func TestInsightsAggregation(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	records := []core.RecordMetadata{
		{Sentiment: core.SentimentPositive, Tags: []string{"travel", "family"}, Timestamp: now.Add(-24 * time.Hour)},
		{Sentiment: core.SentimentPositive, Tags: []string{"travel"}, Timestamp: now.Add(-2 * 24 * time.Hour)},
		{Sentiment: core.SentimentNegative, Tags: []string{"work"}, Timestamp: now.Add(-10 * 24 * time.Hour)},
		{Sentiment: "", Tags: []string{"travel", "work"}, Timestamp: now.Add(-20 * 24 * time.Hour)},
	}

	report := analysis.Insights(records, now)

	if report.TotalMemories != 4 {
		t.Errorf("TotalMemories = %d, want 4", report.TotalMemories)
	}
	if report.SentimentBreakdown.Positive != 2 {
		t.Errorf("Positive = %d, want 2", report.SentimentBreakdown.Positive)
	}
	if report.SentimentBreakdown.Negative != 1 {
		t.Errorf("Negative = %d, want 1", report.SentimentBreakdown.Negative)
	}
	// Missing labels count as neutral.
	if report.SentimentBreakdown.Neutral != 1 {
		t.Errorf("Neutral = %d, want 1", report.SentimentBreakdown.Neutral)
	}

	if report.ThisWeek != 2 {
		t.Errorf("ThisWeek = %d, want 2", report.ThisWeek)
	}
	if report.LastWeek != 1 {
		t.Errorf("LastWeek = %d, want 1", report.LastWeek)
	}

	if len(report.TopTags) != 3 {
		t.Fatalf("TopTags = %v, want 3 entries", report.TopTags)
	}
	if report.TopTags[0].Tag != "travel" || report.TopTags[0].Count != 3 {
		t.Errorf("TopTags[0] = %+v, want travel x3", report.TopTags[0])
	}
	if report.TopTags[1].Tag != "work" || report.TopTags[1].Count != 2 {
		t.Errorf("TopTags[1] = %+v, want work x2", report.TopTags[1])
	}
}

func TestInsightsEmpty(t *testing.T) {
	report := analysis.Insights(nil, time.Now())

	if report.TotalMemories != 0 || len(report.TopTags) != 0 {
		t.Errorf("unexpected report for no records: %+v", report)
	}
}
