package analysis

import (
	"regexp"
	"strings"
)

// tagCategories maps topical categories to trigger keywords. A keyword
// matches as a plain substring of the case-folded text, without word
// boundaries, so "homework" triggers "work". That looseness is intentional
// and kept reproducible. Order is fixed: derived category tags are appended
// in this order.
var tagCategories = []struct {
	name     string
	keywords []string
}{
	{"family", []string{"family", "mom", "dad", "sister", "brother", "parent", "child", "relative"}},
	{"work", []string{"work", "job", "office", "meeting", "project", "colleague", "boss"}},
	{"travel", []string{"travel", "trip", "vacation", "flight", "hotel", "beach", "mountain"}},
	{"food", []string{"food", "restaurant", "dinner", "lunch", "cooking", "recipe"}},
	{"friends", []string{"friend", "buddy", "pal", "hangout", "party"}},
	{"health", []string{"doctor", "hospital", "medicine", "exercise", "gym", "health"}},
	{"education", []string{"school", "university", "class", "study", "exam", "teacher"}},
	{"hobby", []string{"hobby", "music", "art", "reading", "gaming", "sport"}},
	{"celebration", []string{"birthday", "anniversary", "wedding", "graduation", "holiday"}},
	{"achievement", []string{"success", "win", "accomplish", "achieve", "proud", "award"}},
}

// capitalizedWord matches a potential proper noun: one uppercase letter
// followed by lowercase letters.
var capitalizedWord = regexp.MustCompile(`\b[A-Z][a-z]+\b`)

const (
	maxTags        = 8
	maxProperNouns = 3
	minTagLength   = 3
)

// TagExtractor derives topical tags from text. Extraction is degradable:
// it only ever appends to the caller-supplied tags, and its worst case is
// returning them unchanged.
type TagExtractor struct{}

// NewTagExtractor creates a TagExtractor.
func NewTagExtractor() *TagExtractor {
	return &TagExtractor{}
}

// Extract returns an ordered, case-insensitively deduplicated tag list of
// at most 8 entries: the caller's tags first, then matched categories, then
// up to the first 3 capitalized words (lowercased, length > 2).
//
// Extract is idempotent when re-seeded with its own output.
func (e *TagExtractor) Extract(text string, existing []string) []string {
	tags := make([]string, 0, maxTags)
	seen := make(map[string]bool)

	for _, tag := range existing {
		key := strings.ToLower(tag)
		if seen[key] {
			continue
		}
		seen[key] = true
		tags = append(tags, tag)
	}

	folded := strings.ToLower(text)
	for _, category := range tagCategories {
		for _, keyword := range category.keywords {
			if !strings.Contains(folded, keyword) {
				continue
			}
			if !seen[category.name] {
				seen[category.name] = true
				tags = append(tags, category.name)
			}
			break
		}
	}

	// Only the first few capitalized tokens are considered, matched against
	// the original-case text.
	words := capitalizedWord.FindAllString(text, maxProperNouns)
	for _, word := range words {
		lower := strings.ToLower(word)
		if len(lower) < minTagLength || seen[lower] {
			continue
		}
		seen[lower] = true
		tags = append(tags, lower)
	}

	if len(tags) > maxTags {
		tags = tags[:maxTags]
	}
	return tags
}
