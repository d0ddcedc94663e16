package analysis

import (
	"sort"
	"time"

	"github.com/membank/membank-go/core"
)

const topTagLimit = 10

// Insights aggregates record metadata into dashboard statistics: sentiment
// breakdown, the ten most frequent tags, and week-over-week volume relative
// to now. It is a pure computation over whatever records the caller holds.
func Insights(records []core.RecordMetadata, now time.Time) core.InsightsReport {
	report := core.InsightsReport{TotalMemories: len(records)}

	tagCounts := make(map[string]int)
	weekAgo := now.Add(-7 * 24 * time.Hour)
	twoWeeksAgo := now.Add(-14 * 24 * time.Hour)

	for _, rec := range records {
		switch rec.Sentiment {
		case core.SentimentPositive:
			report.SentimentBreakdown.Positive++
		case core.SentimentNegative:
			report.SentimentBreakdown.Negative++
		default:
			report.SentimentBreakdown.Neutral++
		}

		for _, tag := range rec.Tags {
			tagCounts[tag]++
		}

		if !rec.Timestamp.Before(weekAgo) {
			report.ThisWeek++
		} else if !rec.Timestamp.Before(twoWeeksAgo) {
			report.LastWeek++
		}
	}

	report.TopTags = topTags(tagCounts, topTagLimit)
	return report
}

// topTags ranks tags by count descending, ties broken alphabetically so the
// ranking is stable.
func topTags(counts map[string]int, limit int) []core.TagCount {
	ranked := make([]core.TagCount, 0, len(counts))
	for tag, count := range counts {
		ranked = append(ranked, core.TagCount{Tag: tag, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Tag < ranked[j].Tag
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
