// Package pdf renders exam documents as printable A4 sheets.
package pdf

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-pdf/fpdf"
	"github.com/phrazzld/vocaexam/internal/domain/layout"
)

// ErrRender wraps every failure to produce a PDF document.
var ErrRender = errors.New("pdf render failed")

// ErrNoFont is returned by NewRenderer when no TrueType font is configured and
// the core font fallback has not been allowed.
var ErrNoFont = errors.New("no TrueType font configured for Korean text")

// fontFamily is the family name registered for the configured TrueType fonts.
const fontFamily = "exam"

// coreFamily is used only when Fonts.AllowCore is set. It has no Hangul
// glyphs, so Korean text degrades to placeholders.
const coreFamily = "Helvetica"

// Page geometry in points.
var columnWidths = [6]float64{33, 90, 130, 34, 90, 130}

const (
	titleFontSize     = 24
	countsFontSize    = 10
	tableFontSize     = 10
	messageFontSize   = 12
	messageLineHeight = messageFontSize * 1.5
	rowHeight         = 20
	pageMargin        = 36
	gridLineWidth     = 0.25
)

// Fonts holds TrueType font paths. An empty Bold reuses Regular.
// AllowCore permits rendering with Helvetica when Regular is empty.
type Fonts struct {
	Regular   string
	Bold      string
	AllowCore bool
}

// Renderer produces PDF exam sheets.
type Renderer struct {
	regular []byte
	bold    []byte
}

// NewRenderer loads the configured fonts. Without a Regular font it returns
// ErrNoFont unless fonts.AllowCore is set.
func NewRenderer(fonts Fonts) (*Renderer, error) {
	r := &Renderer{}
	if fonts.Regular == "" {
		if !fonts.AllowCore {
			return nil, ErrNoFont
		}
		return r, nil
	}

	regular, err := os.ReadFile(fonts.Regular)
	if err != nil {
		return nil, fmt.Errorf("failed to read regular font: %w", err)
	}
	r.regular = regular
	r.bold = regular

	if fonts.Bold != "" {
		bold, err := os.ReadFile(fonts.Bold)
		if err != nil {
			return nil, fmt.Errorf("failed to read bold font: %w", err)
		}
		r.bold = bold
	}
	return r, nil
}

// Render writes doc to w as a PDF.
func (r *Renderer) Render(w io.Writer, doc layout.Document) error {
	pdf, err := r.build(doc)
	if err != nil {
		return err
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("%w: %w", ErrRender, err)
	}
	return nil
}

// build lays doc out on as many pages as needed. The table header is
// repeated at the top of every page the table continues on.
func (r *Renderer) build(doc layout.Document) (*fpdf.Fpdf, error) {
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetTitle(doc.Title, true)
	pdf.SetCreator("vocaexam", true)

	family, tr := coreFamily, func(s string) string { return s }
	if r.regular != nil {
		family = fontFamily
		pdf.AddUTF8FontFromBytes(family, "", r.regular)
		pdf.AddUTF8FontFromBytes(family, "B", r.bold)
	} else {
		tr = pdf.UnicodeTranslatorFromDescriptor("")
	}

	pageWidth, pageHeight := pdf.GetPageSize()
	tableWidth := 0.0
	for _, cw := range columnWidths {
		tableWidth += cw
	}
	left := (pageWidth - tableWidth) / 2
	pdf.SetMargins(left, pageMargin, left)
	pdf.SetAutoPageBreak(false, pageMargin)
	pdf.AddPage()

	pdf.SetFont(family, "B", titleFontSize)
	pdf.CellFormat(tableWidth, titleFontSize*1.5, tr(doc.Title), "", 1, "C", false, 0, "")

	if doc.CountsLine != "" {
		pdf.SetFont(family, "", countsFontSize)
		pdf.MultiCell(tableWidth, countsFontSize*1.4, tr(doc.CountsLine), "", "C", false)
	}
	pdf.Ln(rowHeight / 2)

	pdf.SetDrawColor(0xad, 0xb5, 0xbd)
	pdf.SetLineWidth(gridLineWidth)

	header := func() {
		pdf.SetFont(family, "B", tableFontSize)
		pdf.SetFillColor(0xf1, 0xf3, 0xf5)
		for i, label := range layout.Header {
			pdf.CellFormat(columnWidths[i], rowHeight, tr(label), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont(family, "", tableFontSize)
	}
	header()

	bottom := pageHeight - pageMargin
	for _, row := range doc.Rows {
		if pdf.GetY()+rowHeight > bottom {
			pdf.AddPage()
			header()
		}
		for i, cell := range row.Cells() {
			align := "L"
			if i == 0 || i == 3 {
				align = "C"
			}
			pdf.CellFormat(columnWidths[i], rowHeight, tr(cell), "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	if doc.Message != "" {
		pdf.SetFont(family, "", messageFontSize)
		text := tr(doc.Message)
		height := rowHeight + float64(r.lineCount(pdf, text, tableWidth))*messageLineHeight
		if pdf.GetY()+height > bottom {
			pdf.AddPage()
		} else {
			pdf.Ln(rowHeight)
		}
		// A message taller than a whole page continues on the next one.
		pdf.SetAutoPageBreak(true, pageMargin)
		pdf.MultiCell(tableWidth, messageLineHeight, text, "", "L", false)
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRender, err)
	}
	return pdf, nil
}

// lineCount returns how many lines MultiCell needs to print text at width in
// the current font. Core fonts measure the translated single-byte text.
func (r *Renderer) lineCount(pdf *fpdf.Fpdf, text string, width float64) int {
	if r.regular != nil {
		return len(pdf.SplitText(text, width))
	}
	return len(pdf.SplitLines([]byte(text), width))
}
