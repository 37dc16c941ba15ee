package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/phrazzld/vocaexam/internal/domain/layout"
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

// coreRenderer renders with Helvetica, the only font available without
// shipping a TrueType file in the test data.
func coreRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := NewRenderer(Fonts{AllowCore: true})
	require.NoError(t, err)
	return r
}

func TestNewRendererRequiresFont(t *testing.T) {
	_, err := NewRenderer(Fonts{})
	assert.ErrorIs(t, err, ErrNoFont)

	_, err = NewRenderer(Fonts{Bold: "/fonts/bold.ttf"})
	assert.ErrorIs(t, err, ErrNoFont, "a bold font alone is not enough")
}

func TestNewRendererLoadsConfiguredFont(t *testing.T) {
	dir := t.TempDir()
	regular := filepath.Join(dir, "regular.ttf")
	bold := filepath.Join(dir, "bold.ttf")
	require.NoError(t, os.WriteFile(regular, []byte("regular"), 0o600))
	require.NoError(t, os.WriteFile(bold, []byte("bold"), 0o600))

	r, err := NewRenderer(Fonts{Regular: regular, AllowCore: true})
	require.NoError(t, err)
	assert.Equal(t, []byte("regular"), r.regular)
	assert.Equal(t, []byte("regular"), r.bold, "bold falls back to regular")

	r, err = NewRenderer(Fonts{Regular: regular, Bold: bold})
	require.NoError(t, err)
	assert.Equal(t, []byte("bold"), r.bold)
}

func TestBuildKeepsMessageInsideMargins(t *testing.T) {
	r := coreRenderer(t)
	message := strings.Repeat("Keep going, you are nearly there. ", 7)[:200]

	for n := 1; n < 200; n++ {
		doc := layout.Document{Title: "Day9", Rows: layout.ToTwoColumn(words(n)), Message: message}
		pdf, err := r.build(doc)
		require.NoError(t, err, "%d words", n)

		_, pageHeight := pdf.GetPageSize()
		assert.LessOrEqual(t, pdf.GetY(), pageHeight-pageMargin, "%d words", n)
	}
}

func TestBuildContinuesLongMessageOnNextPage(t *testing.T) {
	r := coreRenderer(t)
	message := strings.Repeat("line of encouragement\n", 60)

	pdf, err := r.build(layout.Document{Title: "Day1", Rows: layout.ToTwoColumn(words(2)), Message: message})
	require.NoError(t, err)

	_, pageHeight := pdf.GetPageSize()
	assert.GreaterOrEqual(t, pdf.PageCount(), 2)
	assert.LessOrEqual(t, pdf.GetY(), pageHeight-pageMargin)
}

func TestRenderWritesPDF(t *testing.T) {
	r := coreRenderer(t)

	doc := layout.Document{
		Title:      "Day5,4,2",
		CountsLine: "day5: 2개 / day4: 1개 / day2: 0개",
		Rows:       layout.ToTwoColumn(words(3)),
		Message:    "Good luck!",
	}

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, doc))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestBuildSinglePage(t *testing.T) {
	r := coreRenderer(t)

	pdf, err := r.build(layout.Document{Title: "Day1", Rows: layout.ToTwoColumn(words(20))})
	require.NoError(t, err)
	assert.Equal(t, 1, pdf.PageCount())
}

func TestBuildBreaksLongTablesAcrossPages(t *testing.T) {
	r := coreRenderer(t)

	// 200 words are 100 rows of 20pt, far more than one A4 page holds.
	pdf, err := r.build(layout.Document{Title: "Day120", Rows: layout.ToTwoColumn(words(200))})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, pdf.PageCount(), 3)
}

func TestBuildEmptyDocument(t *testing.T) {
	r := coreRenderer(t)

	pdf, err := r.build(layout.Document{Title: "Day"})
	require.NoError(t, err)
	assert.Equal(t, 1, pdf.PageCount())
}

func TestNewRendererMissingFont(t *testing.T) {
	_, err := NewRenderer(Fonts{Regular: filepath.Join(t.TempDir(), "missing.ttf")})
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestNewRendererMissingBoldFont(t *testing.T) {
	dir := t.TempDir()
	regular := filepath.Join(dir, "regular.ttf")
	require.NoError(t, os.WriteFile(regular, []byte("not really a font"), 0o600))

	_, err := NewRenderer(Fonts{Regular: regular, Bold: filepath.Join(dir, "bold.ttf")})
	assert.Error(t, err)
}
