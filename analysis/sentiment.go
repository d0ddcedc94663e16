package analysis

import (
	"log"
	"strings"

	"github.com/jonreiter/govader"

	"github.com/membank/membank-go/core"
)

// Polarity thresholds for the three-way sentiment split. Scores inside
// [-0.1, 0.1] are treated as neutral.
const (
	positiveThreshold = 0.1
	negativeThreshold = -0.1
)

// PolarityScorer scores text polarity in [-1, 1], negative = unfavorable.
// It is treated as an opaque oracle: any failure it reports is absorbed by
// the classifier, never surfaced to callers.
type PolarityScorer interface {
	Score(text string) (float64, error)
}

// VaderScorer scores polarity with the VADER lexicon (govader's compound
// score, already in [-1, 1]).
type VaderScorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

// NewVaderScorer creates the default lexical polarity scorer.
func NewVaderScorer() *VaderScorer {
	return &VaderScorer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// Score returns the VADER compound polarity for text.
func (s *VaderScorer) Score(text string) (float64, error) {
	return s.analyzer.PolarityScores(text).Compound, nil
}

// SentimentClassifier maps text to a sentiment label with a confidence
// score. Classification is degradable: it never fails, falling back to
// (neutral, 0.0) when the polarity oracle errors.
type SentimentClassifier struct {
	scorer PolarityScorer
}

// NewSentimentClassifier creates a classifier backed by the given scorer.
// A nil scorer defaults to the VADER lexicon.
func NewSentimentClassifier(scorer PolarityScorer) *SentimentClassifier {
	if scorer == nil {
		scorer = NewVaderScorer()
	}
	return &SentimentClassifier{scorer: scorer}
}

// Classify returns the sentiment label and confidence (= |polarity|) for
// text. Blank text is neutral without consulting the oracle.
func (c *SentimentClassifier) Classify(text string) (core.Sentiment, float64) {
	if strings.TrimSpace(text) == "" {
		return core.SentimentNeutral, 0.0
	}

	polarity, err := c.scorer.Score(text)
	if err != nil {
		log.Printf("[SENTIMENT] Scorer failed, falling back to neutral: %v", err)
		return core.SentimentNeutral, 0.0
	}

	confidence := polarity
	if confidence < 0 {
		confidence = -confidence
	}

	switch {
	case polarity > positiveThreshold:
		return core.SentimentPositive, confidence
	case polarity < negativeThreshold:
		return core.SentimentNegative, confidence
	default:
		return core.SentimentNeutral, confidence
	}
}
