package domain

import (
	"strconv"
	"strings"
)

// Column headers of the source word sheet.
const (
	ColumnDayMarker   = "참고 사항"
	ColumnHeadword    = "표제어"
	ColumnDerivatives = "파생어"
	ColumnWriting     = "쓰기"
)

// Field is an optional cell of a word record. A zero Field is absent.
type Field struct {
	raw   string
	valid bool
}

// Some returns a present Field holding raw.
func Some(raw string) Field {
	return Field{raw: raw, valid: true}
}

// None returns an absent Field.
func None() Field {
	return Field{}
}

// Get returns the trimmed cell value and whether it is present and non-blank.
// Absent cells and cells holding only whitespace both report false.
func (f Field) Get() (string, bool) {
	if !f.valid {
		return "", false
	}
	v := strings.TrimSpace(f.raw)
	return v, v != ""
}

// Raw returns the untrimmed cell value, or "" when absent.
func (f Field) Raw() string {
	return f.raw
}

// Absent reports whether the cell was missing from the source row.
func (f Field) Absent() bool {
	return !f.valid
}

// WordRecord is one row of the source dataset. Every attribute is optional.
type WordRecord struct {
	// DayMarker tags the row that opens a study day block, e.g. "day12".
	DayMarker Field `json:"-"`

	// Headword is the primary vocabulary entry.
	Headword Field `json:"-"`

	// Derivatives is a parenthesized, comma-separated list of related forms,
	// e.g. "(banana, /cherry)". A leading slash marks an alternate form.
	Derivatives Field `json:"-"`

	// Writing is a free-form written form that may repeat Headword.
	Writing Field `json:"-"`
}

// Dataset is the ordered sequence of word records exactly as authored.
// Day boundaries are positional, so the order must never be changed.
type Dataset []WordRecord

// DayLabel returns the marker label for a study day, e.g. DayLabel(12) == "day12".
func DayLabel(day int) string {
	return "day" + strconv.Itoa(day)
}

// DatasetFromTable builds a Dataset from a header row and data rows, locating
// the known columns by header name. Columns missing from the header, and cells
// missing from short rows, become absent fields.
func DatasetFromTable(header []string, rows [][]string) Dataset {
	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, seen := index[name]; !seen {
			index[name] = i
		}
	}

	cell := func(row []string, column string) Field {
		i, ok := index[column]
		if !ok || i >= len(row) {
			return None()
		}
		return Some(row[i])
	}

	ds := make(Dataset, 0, len(rows))
	for _, row := range rows {
		ds = append(ds, WordRecord{
			DayMarker:   cell(row, ColumnDayMarker),
			Headword:    cell(row, ColumnHeadword),
			Derivatives: cell(row, ColumnDerivatives),
			Writing:     cell(row, ColumnWriting),
		})
	}
	return ds
}
