package render

import (
	"context"
	"regexp"
	"strings"

	"github.com/goliatone/go-cms-rest/internal/posts"
)

var (
	paragraphBreak = regexp.MustCompile(`\n\s*\n`)
	blockTag       = regexp.MustCompile(`(?i)^</?(?:table|thead|tbody|tfoot|caption|col|colgroup|tr|td|th|div|dl|dd|dt|ul|ol|li|pre|form|map|area|blockquote|address|math|style|p|h[1-6]|hr|fieldset|legend|section|article|aside|hgroup|header|footer|nav|figure|figcaption|details|menu|summary|iframe|script|!--)\b`)
)

// Autop wraps loose text blocks of HTML posts in paragraphs and turns single
// newlines inside them into line breaks.
type Autop struct{}

// NewAutop returns the paragraph filter.
func NewAutop() Autop { return Autop{} }

func (Autop) Name() string { return "autop" }

func (Autop) Apply(_ context.Context, post *posts.Post, input string) (string, error) {
	if post != nil && post.Format == posts.FormatMarkdown {
		return input, nil
	}
	return autop(input), nil
}

func autop(input string) string {
	input = strings.ReplaceAll(input, "\r\n", "\n")
	if strings.TrimSpace(input) == "" {
		return ""
	}
	if strings.Contains(strings.ToLower(input), "<pre") {
		return strings.TrimSpace(input)
	}

	chunks := paragraphBreak.Split(strings.TrimSpace(input), -1)
	out := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		chunk = strings.TrimSpace(chunk)
		if chunk == "" {
			continue
		}
		if blockTag.MatchString(chunk) {
			out = append(out, chunk)
			continue
		}
		out = append(out, "<p>"+strings.ReplaceAll(chunk, "\n", "<br />\n")+"</p>")
	}
	return strings.Join(out, "\n")
}
