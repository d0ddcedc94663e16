package analysis_test

import (
	"reflect"
	"testing"

	"github.com/membank/membank-go/analysis"
)

func TestExtractCategoriesAndProperNouns(t *testing.T) {
	extractor := analysis.NewTagExtractor()

	tags := extractor.Extract("Family Vacation to Hawaii We spent a week at the beach", nil)

	want := []string{"family", "travel", "vacation", "hawaii"}
	if !reflect.DeepEqual(tags, want) {
		t.Errorf("tags = %v, want %v", tags, want)
	}
}

func TestExtractPreservesCallerTags(t *testing.T) {
	extractor := analysis.NewTagExtractor()

	tags := extractor.Extract("Family dinner at home", []string{"summer", "Family"})

	if len(tags) < 2 || tags[0] != "summer" || tags[1] != "Family" {
		t.Fatalf("caller tags not preserved in order: %v", tags)
	}
	// "family" category must not duplicate the caller's "Family".
	for _, tag := range tags[2:] {
		if tag == "family" {
			t.Errorf("case-insensitive duplicate appended: %v", tags)
		}
	}
}

func TestExtractSubstringMatchHasNoWordBoundary(t *testing.T) {
	extractor := analysis.NewTagExtractor()

	// "homework" contains "work": the loose substring match is intentional.
	tags := extractor.Extract("finished all my homework tonight", nil)

	if !contains(tags, "work") {
		t.Errorf("expected substring keyword match, got %v", tags)
	}
}

func TestExtractCapsAtEight(t *testing.T) {
	extractor := analysis.NewTagExtractor()

	text := "work travel food party doctor school music birthday award with friends"
	tags := extractor.Extract(text, []string{"one", "two", "three"})

	if len(tags) > 8 {
		t.Errorf("len(tags) = %d, want <= 8: %v", len(tags), tags)
	}
	if tags[0] != "one" || tags[1] != "two" || tags[2] != "three" {
		t.Errorf("caller tags dropped under cap: %v", tags)
	}
}

func TestExtractIdempotentOnOwnOutput(t *testing.T) {
	extractor := analysis.NewTagExtractor()
	text := "Family Vacation to Hawaii with friends and amazing food"

	first := extractor.Extract(text, nil)
	second := extractor.Extract(text, first)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("second pass grew the list: %v -> %v", first, second)
	}
}

func TestExtractShortProperNounsSkipped(t *testing.T) {
	extractor := analysis.NewTagExtractor()

	tags := extractor.Extract("Al went quietly home", nil)

	if contains(tags, "al") {
		t.Errorf("two-letter proper noun should be skipped: %v", tags)
	}
}

func TestExtractOnlyFirstThreeProperNounsConsidered(t *testing.T) {
	extractor := analysis.NewTagExtractor()

	// "Delta" is the fourth capitalized token and must be ignored even
	// though earlier tokens may be dropped as duplicates.
	tags := extractor.Extract("Alpha Bravo Charlie Delta", nil)

	if contains(tags, "delta") {
		t.Errorf("fourth capitalized token included: %v", tags)
	}
	want := []string{"alpha", "bravo", "charlie"}
	if !reflect.DeepEqual(tags, want) {
		t.Errorf("tags = %v, want %v", tags, want)
	}
}

func contains(tags []string, want string) bool {
	for _, tag := range tags {
		if tag == want {
			return true
		}
	}
	return false
}
