package text

import (
	"bytes"
	"html/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

var markdown = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
	),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
	),
	goldmark.WithRendererOptions(
		html.WithHardWraps(),
	),
)

// RenderMarkdown converts model output to HTML for display. Raw HTML in
// the source is not passed through.
func RenderMarkdown(source string) (template.HTML, error) {
	var buf bytes.Buffer

	if err := markdown.Convert([]byte(source), &buf); err != nil {
		return "", err
	}

	return template.HTML(buf.String()), nil
}
