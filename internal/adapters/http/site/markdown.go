package site

import (
	"bytes"
	"html/template"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// markdown renders Markdown to sanitized HTML.
type markdown struct {
	md  goldmark.Markdown
	pol *bluemonday.Policy
}

func newMarkdown() *markdown {
	return &markdown{
		md:  goldmark.New(goldmark.WithExtensions(extension.GFM)),
		pol: bluemonday.UGCPolicy(),
	}
}

// Render converts src to sanitized HTML.
func (m *markdown) Render(src []byte) ([]byte, error) {
	var buf bytes.Buffer
	err := m.md.Convert(src, &buf)
	return m.pol.SanitizeReader(&buf).Bytes(), err
}

// Inline renders a single line of Markdown, dropping the paragraph that
// wraps it.
func (m *markdown) Inline(text string) (template.HTML, error) {
	out, err := m.Render([]byte(text))
	if err != nil {
		return "", err
	}
	out = bytes.TrimSpace(out)
	if bytes.HasPrefix(out, []byte("<p>")) && bytes.HasSuffix(out, []byte("</p>")) &&
		bytes.Count(out, []byte("<p>")) == 1 {
		out = out[len("<p>") : len(out)-len("</p>")]
	}
	return template.HTML(out), nil //nolint:gosec // sanitized by bluemonday
}
