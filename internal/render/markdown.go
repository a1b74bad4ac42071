package render

import (
	"bytes"
	"context"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/goliatone/go-cms-rest/internal/posts"
)

// Markdown converts markdown bodies to HTML. Posts stored as HTML pass through.
type Markdown struct {
	engine goldmark.Markdown
}

// NewMarkdown builds a GFM goldmark engine that keeps raw HTML so shortcodes
// and embedded markup survive conversion.
func NewMarkdown() *Markdown {
	return &Markdown{
		engine: goldmark.New(
			goldmark.WithExtensions(extension.GFM, extension.Linkify),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
	}
}

func (m *Markdown) Name() string { return "markdown" }

func (m *Markdown) Apply(_ context.Context, post *posts.Post, input string) (string, error) {
	if post == nil || post.Format != posts.FormatMarkdown {
		return input, nil
	}
	var buf bytes.Buffer
	if err := m.engine.Convert([]byte(input), &buf); err != nil {
		return "", fmt.Errorf("markdown parse: %w", err)
	}
	return buf.String(), nil
}
