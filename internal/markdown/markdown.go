// Package markdown renders post and comment bodies to safe HTML.
//
// Only a small subset of markdown is parsed: paragraphs, fenced code, code
// spans, emphasis, strikethrough and bare links. Raw HTML in the input is not
// parsed and therefore comes out escaped. Single newlines become <br>.
package markdown

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"

	"github.com/yatube-dev/yatube/internal/logger"
)

type TextProcessor struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

func New() *TextProcessor {
	p := parser.NewParser(
		parser.WithBlockParsers(
			util.Prioritized(parser.NewFencedCodeBlockParser(), 700),
			util.Prioritized(parser.NewParagraphParser(), 1000),
		),
		parser.WithInlineParsers(
			util.Prioritized(parser.NewCodeSpanParser(), 100),
			util.Prioritized(parser.NewEmphasisParser(), 500),
		),
	)

	md := goldmark.New(
		goldmark.WithParser(p),
		goldmark.WithRendererOptions(html.WithHardWraps()),
		goldmark.WithExtensions(extension.Strikethrough, extension.Linkify),
	)

	policy := bluemonday.UGCPolicy()
	policy.RequireNoFollowOnLinks(true)
	policy.AddTargetBlankToFullyQualifiedLinks(true)

	return &TextProcessor{md: md, policy: policy}
}

// Render converts text to sanitized HTML. On a render failure the text is
// returned escaped.
func (tp *TextProcessor) Render(text string) template.HTML {
	var buf bytes.Buffer
	if err := tp.md.Convert([]byte(text), &buf); err != nil {
		logger.Log.Warn("markdown render failed", "component", "markdown", "error", err)
		return template.HTML(template.HTMLEscapeString(text))
	}
	return template.HTML(strings.TrimSpace(tp.policy.Sanitize(buf.String())))
}
