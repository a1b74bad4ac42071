package seo

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-cms-rest/internal/posts"
)

// TitleMetaKey stores a per-post title template override.
const TitleMetaKey = "_yoast_wpseo_title"

// DefaultTitleTemplate renders "<title> <sep> <site name>".
const DefaultTitleTemplate = "%%title%% %%sep%% %%sitename%%"

// Site carries the site-wide values available to title templates.
type Site struct {
	Name        string
	Description string
	Separator   string
}

// Provider computes SEO titles and reads SEO metadata stored as post meta.
type Provider struct {
	meta          posts.MetaRepository
	site          Site
	template      string
	kindTemplates map[string]string
}

// Option mutates the Provider configuration.
type Option func(*Provider)

// WithSite sets the site values used by templates.
func WithSite(site Site) Option {
	return func(p *Provider) {
		p.site = site
	}
}

// WithTitleTemplate overrides the default title template.
func WithTitleTemplate(template string) Option {
	return func(p *Provider) {
		if trimmed := strings.TrimSpace(template); trimmed != "" {
			p.template = trimmed
		}
	}
}

// WithKindTemplates sets per-kind title templates.
func WithKindTemplates(templates map[string]string) Option {
	return func(p *Provider) {
		for kind, template := range templates {
			if trimmed := strings.TrimSpace(template); trimmed != "" {
				p.kindTemplates[kind] = trimmed
			}
		}
	}
}

// NewProvider builds a Provider reading metadata from meta.
func NewProvider(meta posts.MetaRepository, opts ...Option) *Provider {
	provider := &Provider{
		meta:          meta,
		template:      DefaultTitleTemplate,
		kindTemplates: map[string]string{},
		site:          Site{Separator: "-"},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(provider)
		}
	}
	return provider
}

// Title renders the SEO title of post. A per-post override stored under
// TitleMetaKey wins over the kind template, which wins over the default.
func (p *Provider) Title(ctx context.Context, post *posts.Post) (string, error) {
	if post == nil {
		return "", nil
	}
	template := p.template
	if kindTemplate, ok := p.kindTemplates[post.Kind]; ok {
		template = kindTemplate
	}
	override, err := p.Meta(ctx, post.ID, TitleMetaKey)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(override) != "" {
		template = override
	}
	return p.render(template, post), nil
}

// Meta returns the raw metadata value stored under key.
func (p *Provider) Meta(ctx context.Context, postID int64, key string) (string, error) {
	if p.meta == nil {
		return "", nil
	}
	value, err := p.meta.GetMeta(ctx, postID, key)
	if err != nil {
		return "", fmt.Errorf("seo: read meta %s: %w", key, err)
	}
	return value, nil
}

func (p *Provider) render(template string, post *posts.Post) string {
	replacer := strings.NewReplacer(
		"%%title%%", post.Title,
		"%%sitename%%", p.site.Name,
		"%%sitedesc%%", p.site.Description,
		"%%sep%%", p.site.Separator,
		"%%excerpt%%", post.Excerpt,
		"%%kind%%", post.Kind,
	)
	rendered := strings.Join(strings.Fields(replacer.Replace(template)), " ")
	sep := strings.TrimSpace(p.site.Separator)
	if sep != "" {
		rendered = strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(rendered, sep), sep))
	}
	return rendered
}
