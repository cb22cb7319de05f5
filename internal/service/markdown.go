package service

import (
	"bytes"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var contentMarkdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(html.WithUnsafe()),
)

var contentSanitizer = bluemonday.UGCPolicy()

// RenderMarkdown converts markdown to sanitized HTML for public serving
// and the newsletter body. Raw HTML in the source survives rendering but
// is stripped down to the UGC-safe subset afterwards.
func RenderMarkdown(source string) (string, error) {
	var buf bytes.Buffer
	if err := contentMarkdown.Convert([]byte(source), &buf); err != nil {
		return "", err
	}
	return contentSanitizer.Sanitize(buf.String()), nil
}

// StripHTML reduces HTML to its text content, used for excerpts and the
// plain-text alternative of newsletter emails.
func StripHTML(source string) string {
	return bluemonday.StrictPolicy().Sanitize(source)
}
