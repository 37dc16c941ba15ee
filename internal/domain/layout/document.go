package layout

import (
	"github.com/phrazzld/vocaexam/internal/domain"
)

// Document is everything a renderer needs to produce an exam sheet.
type Document struct {
	Title      string
	CountsLine string
	Rows       []Row
	Message    string
}

// DocumentOptions tunes NewDocument.
type DocumentOptions struct {
	// ShowDayCounts adds the per-day count line below the title.
	ShowDayCounts bool
}

// NewDocument lays out set for rendering with message printed after the table.
func NewDocument(set domain.ExamWordSet, message string, opts DocumentOptions) Document {
	doc := Document{
		Title:   Title(set.Days()),
		Rows:    ToTwoColumn(set.Words),
		Message: message,
	}
	if opts.ShowDayCounts {
		doc.CountsLine = CountsLine(set.DayCounts)
	}
	return doc
}
