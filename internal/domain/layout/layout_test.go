package layout

import (
	"fmt"
	"strings"
	"testing"

	"github.com/phrazzld/vocaexam/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func words(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("word%d", i+1)
	}
	return out
}

func TestToTwoColumn(t *testing.T) {
	t.Parallel()

	t.Run("even count", func(t *testing.T) {
		rows := ToTwoColumn([]string{"a", "b", "c", "d"})
		assert.Equal(t, []Row{
			{LeftNumber: 1, LeftWord: "a", RightNumber: 2, RightWord: "b"},
			{LeftNumber: 3, LeftWord: "c", RightNumber: 4, RightWord: "d"},
		}, rows)
	})

	t.Run("odd count leaves last right triple blank", func(t *testing.T) {
		rows := ToTwoColumn([]string{"a", "b", "c"})
		require.Len(t, rows, 2)
		assert.False(t, rows[1].HasRight())
		assert.Equal(t, [6]string{"3", "c", "", "", "", ""}, rows[1].Cells())
	})

	t.Run("empty list", func(t *testing.T) {
		assert.Empty(t, ToTwoColumn(nil))
	})
}

func TestTableNumbering(t *testing.T) {
	t.Parallel()

	for n := 0; n <= 41; n++ {
		table := Table(words(n))
		require.Len(t, table, (n+1)/2+1, "n=%d", n)
		assert.Equal(t, Header, table[0])

		for k := 1; k < len(table); k++ {
			assert.Equal(t, fmt.Sprint(2*k-1), table[k][0], "left number n=%d k=%d", n, k)
			if 2*k <= n {
				assert.Equal(t, fmt.Sprint(2*k), table[k][3], "right number n=%d k=%d", n, k)
				assert.Equal(t, fmt.Sprintf("word%d", 2*k), table[k][4])
			} else {
				assert.Equal(t, "", table[k][3])
				assert.Equal(t, "", table[k][4])
				assert.Equal(t, "", table[k][5])
			}
		}
	}
}

func TestNumberingIgnoresWordOrder(t *testing.T) {
	t.Parallel()

	rows := ToTwoColumn([]string{"zeta", "alpha", "mu"})
	assert.Equal(t, 1, rows[0].LeftNumber)
	assert.Equal(t, "zeta", rows[0].LeftWord)
	assert.Equal(t, 2, rows[0].RightNumber)
	assert.Equal(t, 3, rows[1].LeftNumber)
}

func TestTitle(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Day50,49,47,43,36,20", Title([]int{50, 49, 47, 43, 36, 20}))
	assert.Equal(t, "Day12,10,3", Title([]int{3, 12, 10}), "days are sorted numerically, not lexically")
	assert.Equal(t, "Day1", Title([]int{1}))
}

func TestCountsLine(t *testing.T) {
	t.Parallel()

	line := CountsLine([]domain.DayCount{{Day: 5, Count: 12}, {Day: 4, Count: 0}})
	assert.Equal(t, "day5: 12개 / day4: 0개", line)
}

func TestMarkdownTable(t *testing.T) {
	t.Parallel()

	md := MarkdownTable([]string{"apple", "a|b", "cherry"})
	lines := strings.Split(strings.TrimSuffix(md, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "| 번호 | 단어 | 뜻 쓰기 | 번호. | 단어. | 뜻 쓰기. |", lines[0])
	assert.Equal(t, "| --- | --- | --- | --- | --- | --- |", lines[1])
	assert.Equal(t, `| 1 | apple |  | 2 | a\|b |  |`, lines[2])
	assert.Equal(t, "| 3 | cherry |  |  |  |  |", lines[3])
}

func TestNewDocument(t *testing.T) {
	t.Parallel()

	set := domain.ExamWordSet{
		Words:     []string{"a", "b", "c"},
		DayCounts: []domain.DayCount{{Day: 8, Count: 2}, {Day: 7, Count: 1}, {Day: 5, Count: 0}},
	}

	doc := NewDocument(set, "화이팅", DocumentOptions{})
	assert.Equal(t, "Day8,7,5", doc.Title)
	assert.Empty(t, doc.CountsLine)
	assert.Len(t, doc.Rows, 2)
	assert.Equal(t, "화이팅", doc.Message)

	doc = NewDocument(set, "", DocumentOptions{ShowDayCounts: true})
	assert.Equal(t, "day8: 2개 / day7: 1개 / day5: 0개", doc.CountsLine)
}
