package extract

import (
	"strings"

	"github.com/phrazzld/vocaexam/internal/domain"
)

// Extractor collects exam words for a list of study days.
type Extractor struct {
	locator Locator
}

// New returns an Extractor using locator, or a default MarkerLocator when
// locator is nil.
func New(locator Locator) *Extractor {
	if locator == nil {
		locator = NewMarkerLocator(DefaultFallbackSpan)
	}
	return &Extractor{locator: locator}
}

// Extract processes days in the given order. Each day's words are gathered
// from its rows, counted, and appended to a running list; the running list is
// then deduplicated keeping first occurrences.
//
// Every day gets a DayCounts entry, zero when the day has no rows. Counts are
// taken before deduplication.
func (e *Extractor) Extract(ds domain.Dataset, days []int) domain.ExamWordSet {
	var all []string
	counts := make([]domain.DayCount, 0, len(days))

	for _, day := range days {
		words := RowWords(e.locator.Locate(ds, day))
		counts = append(counts, domain.DayCount{Day: day, Count: len(words)})
		all = append(all, words...)
	}

	return domain.ExamWordSet{
		Words:     Dedupe(all),
		DayCounts: counts,
	}
}

// RowWords returns the words of rows in row order. For each row it takes the
// headword, then the written form when it differs from the headword, then
// each derivative.
func RowWords(rows domain.Dataset) []string {
	words := make([]string, 0, len(rows))
	for _, rec := range rows {
		headword, hasHeadword := rec.Headword.Get()
		if hasHeadword {
			words = append(words, headword)
		}
		if writing, ok := rec.Writing.Get(); ok && writing != headword {
			words = append(words, writing)
		}
		if raw, ok := rec.Derivatives.Get(); ok {
			words = append(words, ParseDerivatives(raw)...)
		}
	}
	return words
}

// ParseDerivatives splits a derivatives cell such as "(banana, /cherry)" into
// its entries. Outer parentheses are removed, entries are split on commas and
// trimmed, and a leading slash marking an alternate form is dropped along
// with the spaces after it. Empty entries are skipped.
func ParseDerivatives(raw string) []string {
	raw = strings.Trim(strings.TrimSpace(raw), "()")
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		w := strings.TrimSpace(part)
		if strings.HasPrefix(w, "/") {
			w = strings.TrimLeft(w, "/ ")
		}
		if w != "" {
			out = append(out, w)
		}
	}
	return out
}

// Dedupe returns words without repeats, keeping the first occurrence of each
// and preserving order.
func Dedupe(words []string) []string {
	seen := make(map[string]struct{}, len(words))
	out := make([]string, 0, len(words))
	for _, w := range words {
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}
