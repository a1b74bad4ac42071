package resources

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/goliatone/go-cms-rest/internal/logging"
	"github.com/goliatone/go-cms-rest/internal/menus"
	"github.com/goliatone/go-cms-rest/internal/posts"
	"github.com/goliatone/go-cms-rest/pkg/interfaces"
)

// ContentRenderer applies the content filters to a post body.
type ContentRenderer interface {
	Render(ctx context.Context, post *posts.Post) (string, error)
}

// LinkBuilder returns the canonical link of a post.
type LinkBuilder interface {
	Link(post *posts.Post) string
}

// PostAssembler builds content item documents.
type PostAssembler struct {
	renderer   ContentRenderer
	links      LinkBuilder
	extractors []Extractor
	logger     interfaces.Logger
}

// PostAssemblerOption customises a PostAssembler.
type PostAssemblerOption func(*PostAssembler)

// WithExtractors appends field extractors. Their results are attached in
// the order given.
func WithExtractors(extractors ...Extractor) PostAssemblerOption {
	return func(a *PostAssembler) {
		for _, extractor := range extractors {
			if extractor != nil {
				a.extractors = append(a.extractors, extractor)
			}
		}
	}
}

// WithLogger sets the assembler logger.
func WithLogger(logger interfaces.Logger) PostAssemblerOption {
	return func(a *PostAssembler) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// NewPostAssembler constructs an assembler. A nil renderer passes content
// through unchanged and a nil link builder leaves links empty.
func NewPostAssembler(renderer ContentRenderer, links LinkBuilder, opts ...PostAssemblerOption) *PostAssembler {
	a := &PostAssembler{
		renderer: renderer,
		links:    links,
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}
	return a
}

// Build returns the pruned document of post.
func (a *PostAssembler) Build(ctx context.Context, post *posts.Post) (Document, error) {
	if post == nil {
		return nil, fmt.Errorf("resources: nil post")
	}

	content := post.Content
	if a.renderer != nil {
		rendered, err := a.renderer.Render(ctx, post)
		if err != nil {
			return nil, fmt.Errorf("resources: render post %d: %w", post.ID, err)
		}
		content = rendered
	}
	link := ""
	if a.links != nil {
		link = a.links.Link(post)
	}

	doc := Document{
		"id":       post.ID,
		"title":    post.Title,
		"content":  content,
		"slug":     post.Slug,
		"excerpt":  post.Excerpt,
		"link":     link,
		"status":   string(post.Status),
		"date":     formatDate(post.Date),
		"modified": formatDate(post.Modified),
		"order":    post.MenuOrder,
	}
	for _, extractor := range a.extractors {
		value, err := extractor.Extract(ctx, post)
		if err != nil {
			a.logger.Error("resources.extract.failed", "extractor", extractor.Key(), "post_id", post.ID, "error", err)
			return nil, err
		}
		doc[extractor.Key()] = value
	}
	return Prune(doc), nil
}

// BuildAll assembles every post in input order.
func (a *PostAssembler) BuildAll(ctx context.Context, items []*posts.Post) ([]Document, error) {
	out := make([]Document, 0, len(items))
	for _, post := range items {
		doc, err := a.Build(ctx, post)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, nil
}

// MenuAssembler builds menu documents.
type MenuAssembler struct {
	items menus.MenuItemRepository
}

// NewMenuAssembler constructs a menu assembler reading items from repo.
func NewMenuAssembler(repo menus.MenuItemRepository) *MenuAssembler {
	return &MenuAssembler{items: repo}
}

// Build returns {id, title, slug, items}. Each item drops its zero-valued
// fields.
func (a *MenuAssembler) Build(ctx context.Context, menu *menus.Menu) (Document, error) {
	if menu == nil {
		return nil, fmt.Errorf("resources: nil menu")
	}
	records, err := a.items.ListByMenu(ctx, menu.ID)
	if err != nil {
		return nil, fmt.Errorf("resources: menu %d items: %w", menu.ID, err)
	}
	items := make([]Document, 0, len(records))
	for _, item := range records {
		items = append(items, PruneFalsy(Document{
			"id":          item.ID,
			"title":       item.Title,
			"order":       item.Order,
			"slug":        basename(item.URL),
			"url":         item.URL,
			"target":      item.Target,
			"description": item.Description,
			"class":       nonEmpty(item.Classes),
			"parent":      item.ParentID,
		}))
	}
	return Document{
		"id":    menu.ID,
		"title": menu.Name,
		"slug":  menu.Slug,
		"items": items,
	}, nil
}

// BuildAll assembles every menu in input order.
func (a *MenuAssembler) BuildAll(ctx context.Context, list []*menus.Menu) ([]Document, error) {
	out := make([]Document, 0, len(list))
	for _, menu := range list {
		doc, err := a.Build(ctx, menu)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, nil
}

// basename returns the trailing path component of raw, ignoring trailing
// slashes.
func basename(raw string) string {
	trimmed := strings.TrimRight(raw, "/")
	if trimmed == "" {
		return ""
	}
	return path.Base(trimmed)
}

func nonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			out = append(out, value)
		}
	}
	return out
}
