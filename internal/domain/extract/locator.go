package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/phrazzld/vocaexam/internal/domain"
)

// DefaultFallbackSpan is the number of rows taken for a day when no later day
// marker exists after its start row.
const DefaultFallbackSpan = 15

// wordsPerDayOptions are the block sizes offered for position-based extraction.
var wordsPerDayOptions = [...]int{15, 20, 30}

// genericMarker matches any day marker and ends a marker-addressed block.
var genericMarker = regexp.MustCompile(`day\d+`)

// Mode selects the block addressing strategy.
type Mode string

const (
	// ModeMarker addresses days by their day-marker rows.
	ModeMarker Mode = "marker"
	// ModePosition addresses days by fixed-size row blocks.
	ModePosition Mode = "position"
)

// ParseMode converts s to a Mode. An empty string selects ModeMarker.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeMarker:
		return ModeMarker, nil
	case ModePosition:
		return ModePosition, nil
	default:
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidMode, s)
	}
}

// WordsPerDayOptions returns the supported block sizes for position mode.
func WordsPerDayOptions() []int {
	return append([]int(nil), wordsPerDayOptions[:]...)
}

// ValidWordsPerDay reports whether n is one of WordsPerDayOptions.
func ValidWordsPerDay(n int) bool {
	for _, opt := range wordsPerDayOptions {
		if n == opt {
			return true
		}
	}
	return false
}

// Locator finds the rows of a study day. Implementations return an empty
// slice, never an error, when the day cannot be found.
type Locator interface {
	Locate(ds domain.Dataset, day int) domain.Dataset
}

// MarkerLocator finds a day by the first row whose day marker carries the
// day's label. The block runs up to the next row holding any day marker, or to
// FallbackSpan rows from the start when no later marker exists.
type MarkerLocator struct {
	FallbackSpan int
}

// NewMarkerLocator returns a MarkerLocator. A non-positive span selects
// DefaultFallbackSpan.
func NewMarkerLocator(fallbackSpan int) MarkerLocator {
	if fallbackSpan <= 0 {
		fallbackSpan = DefaultFallbackSpan
	}
	return MarkerLocator{FallbackSpan: fallbackSpan}
}

// Locate implements Locator.
func (l MarkerLocator) Locate(ds domain.Dataset, day int) domain.Dataset {
	start := -1
	for i, rec := range ds {
		if markerHasDay(rec.DayMarker.Raw(), day) {
			start = i
			break
		}
	}
	if start < 0 {
		return domain.Dataset{}
	}

	for i := start + 1; i < len(ds); i++ {
		if genericMarker.MatchString(ds[i].DayMarker.Raw()) {
			return ds[start:i]
		}
	}

	span := l.FallbackSpan
	if span <= 0 {
		span = DefaultFallbackSpan
	}
	return ds[start:min(start+span, len(ds))]
}

// markerHasDay reports whether marker contains the label of day. An
// occurrence directly followed by another digit belongs to a different day:
// "day1" does not match inside "day12".
func markerHasDay(marker string, day int) bool {
	label := domain.DayLabel(day)
	for from := 0; from <= len(marker)-len(label); {
		i := strings.Index(marker[from:], label)
		if i < 0 {
			return false
		}
		end := from + i + len(label)
		if end == len(marker) || !isDigit(marker[end]) {
			return true
		}
		from = end
	}
	return false
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// PositionLocator slices the dataset into consecutive blocks of WordsPerDay
// rows: day d covers rows [(d-1)*WordsPerDay, d*WordsPerDay).
type PositionLocator struct {
	WordsPerDay int
}

// NewPositionLocator returns a PositionLocator, rejecting unsupported sizes.
func NewPositionLocator(wordsPerDay int) (PositionLocator, error) {
	if !ValidWordsPerDay(wordsPerDay) {
		return PositionLocator{}, fmt.Errorf("%w: %s", domain.ErrInvalidWordsPerDay, strconv.Itoa(wordsPerDay))
	}
	return PositionLocator{WordsPerDay: wordsPerDay}, nil
}

// Locate implements Locator.
func (l PositionLocator) Locate(ds domain.Dataset, day int) domain.Dataset {
	if l.WordsPerDay <= 0 || day < 1 {
		return domain.Dataset{}
	}
	// Compare block indexes so (day-1)*WordsPerDay is only computed when it
	// lies inside the dataset and cannot overflow.
	blocks := (len(ds) + l.WordsPerDay - 1) / l.WordsPerDay
	if day-1 >= blocks {
		return domain.Dataset{}
	}
	start := (day - 1) * l.WordsPerDay
	return ds[start:min(start+l.WordsPerDay, len(ds))]
}
