package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestField(t *testing.T) {
	t.Parallel()

	v, ok := None().Get()
	assert.False(t, ok)
	assert.Empty(t, v)
	assert.True(t, None().Absent())

	v, ok = Some("  apple ").Get()
	assert.True(t, ok)
	assert.Equal(t, "apple", v)
	assert.Equal(t, "  apple ", Some("  apple ").Raw())

	v, ok = Some("   ").Get()
	assert.False(t, ok, "blank cells are not present")
	assert.Empty(t, v)
	assert.False(t, Some("").Absent(), "an empty cell is still a cell")
}

func TestDayLabel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "day1", DayLabel(1))
	assert.Equal(t, "day120", DayLabel(120))
}

func TestDatasetFromTable(t *testing.T) {
	t.Parallel()

	header := []string{"번호", ColumnDayMarker, ColumnHeadword, ColumnDerivatives, ColumnWriting}
	rows := [][]string{
		{"1", "day1", "apple", "(banana, /cherry)", ""},
		{"2", "", "dog"},
	}

	ds := DatasetFromTable(header, rows)
	assert.Len(t, ds, 2)

	marker, ok := ds[0].DayMarker.Get()
	assert.True(t, ok)
	assert.Equal(t, "day1", marker)
	derivatives, _ := ds[0].Derivatives.Get()
	assert.Equal(t, "(banana, /cherry)", derivatives)
	_, ok = ds[0].Writing.Get()
	assert.False(t, ok)

	headword, _ := ds[1].Headword.Get()
	assert.Equal(t, "dog", headword)
	assert.True(t, ds[1].Derivatives.Absent(), "short rows leave trailing cells absent")
	assert.True(t, ds[1].Writing.Absent())
}

func TestDatasetFromTableMissingColumns(t *testing.T) {
	t.Parallel()

	ds := DatasetFromTable([]string{"\ufeff" + ColumnHeadword}, [][]string{{"apple"}})
	assert.Len(t, ds, 1)

	headword, ok := ds[0].Headword.Get()
	assert.True(t, ok, "a byte order mark on the first header is ignored")
	assert.Equal(t, "apple", headword)
	assert.True(t, ds[0].DayMarker.Absent())
	assert.True(t, ds[0].Derivatives.Absent())
}
