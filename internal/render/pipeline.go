package render

import (
	"context"
	"fmt"

	"github.com/goliatone/go-cms-rest/internal/logging"
	"github.com/goliatone/go-cms-rest/internal/posts"
	"github.com/goliatone/go-cms-rest/pkg/interfaces"
)

// Filter transforms post content. Filters receive the post they render so no
// implicit current item is needed.
type Filter interface {
	Name() string
	Apply(ctx context.Context, post *posts.Post, input string) (string, error)
}

// Pipeline runs filters in order over a post body.
type Pipeline struct {
	filters []Filter
	logger  interfaces.Logger
}

// NewPipeline composes filters. A nil logger is replaced with a no-op logger.
func NewPipeline(logger interfaces.Logger, filters ...Filter) *Pipeline {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Pipeline{filters: filters, logger: logger}
}

// NewDefaultPipeline converts markdown, expands shortcodes, then wraps
// paragraphs of HTML posts.
func NewDefaultPipeline(logger interfaces.Logger, shortcodes *Shortcodes) *Pipeline {
	if shortcodes == nil {
		shortcodes = NewShortcodes()
	}
	return NewPipeline(logger, NewMarkdown(), shortcodes, NewAutop())
}

// Render returns the transformed body of post.
func (p *Pipeline) Render(ctx context.Context, post *posts.Post) (string, error) {
	if post == nil {
		return "", nil
	}
	return p.Apply(ctx, post, post.Content)
}

// Apply runs every filter over input on behalf of post.
func (p *Pipeline) Apply(ctx context.Context, post *posts.Post, input string) (string, error) {
	output := input
	for _, filter := range p.filters {
		next, err := filter.Apply(ctx, post, output)
		if err != nil {
			p.logger.Error("render.filter.failed", "filter", filter.Name(), "post_id", postID(post), "error", err)
			return "", fmt.Errorf("render: %s: %w", filter.Name(), err)
		}
		output = next
	}
	return output, nil
}

func postID(post *posts.Post) int64 {
	if post == nil {
		return 0
	}
	return post.ID
}
