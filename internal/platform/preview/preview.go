// Package preview renders an exam document as an HTML page for on-screen review.
//
// The sheet is first written as markdown, the same table the printable sheet
// uses, and then converted with goldmark's table extension. Raw HTML inside the
// encouragement message is never passed through.
package preview

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/phrazzld/vocaexam/internal/domain/layout"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var pageTemplate = template.Must(template.New("preview").Parse(`<!DOCTYPE html>
<html lang="ko">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; margin: 2rem; }
h1 { text-align: center; }
.counts { text-align: center; color: #495057; }
table { border-collapse: collapse; margin: 0 auto; }
th { background: #f1f3f5; }
th, td { border: 0.5px solid #adb5bd; padding: 0.3rem 0.6rem; min-width: 2rem; }
</style>
</head>
<body>
{{.Body}}
</body>
</html>
`))

// Renderer converts documents to HTML.
type Renderer struct {
	md goldmark.Markdown
}

// NewRenderer creates a Renderer with GitHub-flavored tables enabled.
func NewRenderer() *Renderer {
	return &Renderer{
		md: goldmark.New(goldmark.WithExtensions(extension.Table)),
	}
}

// Markdown returns the markdown source of doc.
func Markdown(doc layout.Document) string {
	var b strings.Builder
	b.WriteString("# ")
	b.WriteString(escapeInline(doc.Title))
	b.WriteString("\n\n")
	if doc.CountsLine != "" {
		b.WriteString(escapeInline(doc.CountsLine))
		b.WriteString("\n\n")
	}
	b.WriteString(layout.MarkdownFromRows(doc.Rows))
	if doc.Message != "" {
		b.WriteString("\n")
		b.WriteString(doc.Message)
		b.WriteString("\n")
	}
	return b.String()
}

// Render writes doc to w as a complete HTML page.
func (r *Renderer) Render(w io.Writer, doc layout.Document) error {
	var body bytes.Buffer
	if err := r.md.Convert([]byte(Markdown(doc)), &body); err != nil {
		return fmt.Errorf("failed to convert preview markdown: %w", err)
	}

	data := struct {
		Title string
		Body  template.HTML
	}{
		Title: doc.Title,
		// goldmark output is safe: raw HTML is omitted without html.WithUnsafe.
		Body: template.HTML(body.String()),
	}
	if err := pageTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("failed to render preview page: %w", err)
	}
	return nil
}

// escapeInline keeps markdown punctuation in generated lines literal.
func escapeInline(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, "*", `\*`, "_", `\_`, "#", `\#`, "<", "&lt;")
	return replacer.Replace(s)
}
