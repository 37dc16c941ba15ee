// Package layout turns an exam word list into the two-column sheet layout
// shared by the preview and the printable document.
package layout

import (
	"sort"
	"strconv"
	"strings"

	"github.com/phrazzld/vocaexam/internal/domain"
)

// Header is the fixed header row of the two-column sheet. The right-hand
// labels carry a trailing dot so every column name is distinct.
var Header = [6]string{"번호", "단어", "뜻 쓰기", "번호.", "단어.", "뜻 쓰기."}

// Row is one printed row holding two numbered words with blank answer cells.
// RightNumber is zero when the row has no right-hand word.
type Row struct {
	LeftNumber  int    `json:"left_number"`
	LeftWord    string `json:"left_word"`
	LeftAnswer  string `json:"left_answer"`
	RightNumber int    `json:"right_number,omitempty"`
	RightWord   string `json:"right_word"`
	RightAnswer string `json:"right_answer"`
}

// HasRight reports whether the row carries a right-hand word.
func (r Row) HasRight() bool {
	return r.RightNumber > 0
}

// Cells returns the row as six display cells. A missing right-hand triple is
// three empty cells.
func (r Row) Cells() [6]string {
	cells := [6]string{strconv.Itoa(r.LeftNumber), r.LeftWord, r.LeftAnswer, "", "", ""}
	if r.HasRight() {
		cells[3] = strconv.Itoa(r.RightNumber)
		cells[4] = r.RightWord
		cells[5] = r.RightAnswer
	}
	return cells
}

// ToTwoColumn pairs words (0,1), (2,3), ... into rows. Row i is numbered
// 2i+1 on the left and 2i+2 on the right, so numbering always follows the
// current word order.
func ToTwoColumn(words []string) []Row {
	rows := make([]Row, 0, (len(words)+1)/2)
	for i := 0; i < len(words); i += 2 {
		r := Row{LeftNumber: i + 1, LeftWord: words[i]}
		if i+1 < len(words) {
			r.RightNumber = i + 2
			r.RightWord = words[i+1]
		}
		rows = append(rows, r)
	}
	return rows
}

// Table returns the header followed by the cells of every row, which is
// ceil(len(words)/2)+1 rows in total.
func Table(words []string) [][6]string {
	return TableFromRows(ToTwoColumn(words))
}

// TableFromRows returns the header followed by the cells of rows.
func TableFromRows(rows []Row) [][6]string {
	table := make([][6]string, 0, len(rows)+1)
	table = append(table, Header)
	for _, r := range rows {
		table = append(table, r.Cells())
	}
	return table
}

// Title builds the sheet title: "Day" followed by the day numbers in
// descending order, comma separated, e.g. "Day50,49,47,43,36,20".
func Title(days []int) string {
	sorted := append([]int(nil), days...)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))

	labels := make([]string, len(sorted))
	for i, d := range sorted {
		labels[i] = strconv.Itoa(d)
	}
	return "Day" + strings.Join(labels, ",")
}

// CountsLine renders per-day raw counts as "day50: 12개 / day49: 10개".
func CountsLine(counts []domain.DayCount) string {
	parts := make([]string, len(counts))
	for i, dc := range counts {
		parts[i] = domain.DayLabel(dc.Day) + ": " + strconv.Itoa(dc.Count) + "개"
	}
	return strings.Join(parts, " / ")
}

// MarkdownTable renders the two-column sheet as a GitHub-flavored markdown
// table: the header, a "| --- |" separator, then one line per row.
func MarkdownTable(words []string) string {
	return MarkdownFromRows(ToTwoColumn(words))
}

// MarkdownFromRows is MarkdownTable for rows already laid out.
func MarkdownFromRows(rows []Row) string {
	table := TableFromRows(rows)

	var b strings.Builder
	writeMarkdownRow(&b, table[0])
	b.WriteString("|")
	for range table[0] {
		b.WriteString(" --- |")
	}
	b.WriteString("\n")
	for _, cells := range table[1:] {
		writeMarkdownRow(&b, cells)
	}
	return b.String()
}

func writeMarkdownRow(b *strings.Builder, cells [6]string) {
	b.WriteString("|")
	for _, c := range cells {
		b.WriteString(" ")
		b.WriteString(strings.ReplaceAll(c, "|", `\|`))
		b.WriteString(" |")
	}
	b.WriteString("\n")
}
