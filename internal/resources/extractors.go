package resources

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-cms-rest/internal/comments"
	"github.com/goliatone/go-cms-rest/internal/enrichment"
	"github.com/goliatone/go-cms-rest/internal/media"
	"github.com/goliatone/go-cms-rest/internal/posts"
	"github.com/goliatone/go-cms-rest/internal/users"
)

// Document keys written by the field extractors.
const (
	KeyAuthor       = "author"
	KeyCustomFields = "acf"
	KeyComments     = "comments"
	KeySEO          = "seo"
	KeyMedia        = "media"
)

// SEOKeys lists the SEO fields in output order. Each is read from post meta
// under the same key prefixed with "_", except the title which is computed.
var SEOKeys = []string{
	"yoast_wpseo_focuskw",
	"yoast_wpseo_title",
	"yoast_wpseo_metadesc",
	"yoast_wpseo_linkdex",
	"yoast_wpseo_metakeywords",
	"yoast_wpseo_meta-robots-noindex",
	"yoast_wpseo_meta-robots-nofollow",
	"yoast_wpseo_meta-robots-adv",
	"yoast_wpseo_canonical",
	"yoast_wpseo_redirect",
	"yoast_wpseo_opengraph-title",
	"yoast_wpseo_opengraph-description",
	"yoast_wpseo_opengraph-image",
	"yoast_wpseo_twitter-title",
	"yoast_wpseo_twitter-description",
	"yoast_wpseo_twitter-image",
}

const seoTitleKey = "yoast_wpseo_title"

// Extractor pulls one optional facet out of a post. A nil value means the
// facet is absent; errors are reserved for store failures.
type Extractor interface {
	Key() string
	Extract(ctx context.Context, post *posts.Post) (any, error)
}

// AuthorExtractor reports {id, name} for posts with an author id.
type AuthorExtractor struct {
	Users users.Repository
}

func (AuthorExtractor) Key() string { return KeyAuthor }

func (e AuthorExtractor) Extract(ctx context.Context, post *posts.Post) (any, error) {
	if post == nil || post.AuthorID == 0 {
		return nil, nil
	}
	author := Document{"id": post.AuthorID, "name": ""}
	if e.Users == nil {
		return author, nil
	}
	record, err := e.Users.GetByID(ctx, post.AuthorID)
	if err != nil {
		var notFound *users.NotFoundError
		if errors.As(err, &notFound) {
			return author, nil
		}
		return nil, fmt.Errorf("author %d: %w", post.AuthorID, err)
	}
	author["name"] = record.Name()
	return author, nil
}

// CommentsExtractor reports the comment summary of posts whose kind
// supports comments.
type CommentsExtractor struct {
	Kinds    *posts.KindRegistry
	Comments comments.Repository
}

func (CommentsExtractor) Key() string { return KeyComments }

func (e CommentsExtractor) Extract(ctx context.Context, post *posts.Post) (any, error) {
	if post == nil || e.Kinds == nil {
		return nil, nil
	}
	kind, ok := e.Kinds.Get(post.Kind)
	if !ok || !kind.Supports(posts.SupportComments) {
		return nil, nil
	}

	status := posts.CommentsClosed
	if post.CommentsOpen() {
		status = posts.CommentsOpen
	}
	summary := Document{"status": status, "count": 0, "items": []any{}}
	if e.Comments == nil {
		return summary, nil
	}

	count, err := e.Comments.CountApproved(ctx, post.ID)
	if err != nil {
		return nil, fmt.Errorf("comments count %d: %w", post.ID, err)
	}
	records, err := e.Comments.ListApproved(ctx, post.ID)
	if err != nil {
		return nil, fmt.Errorf("comments list %d: %w", post.ID, err)
	}
	items := make([]any, 0, len(records))
	for _, record := range records {
		items = append(items, Document{
			"id":          record.ID,
			"parent":      record.ParentID,
			"author_name": record.AuthorName,
			"author_url":  record.AuthorURL,
			"date":        formatDate(record.Date),
			"content":     record.Content,
		})
	}
	summary["count"] = count
	summary["items"] = items
	return summary, nil
}

// MediaExtractor reports the featured image in every registered size plus
// "full".
type MediaExtractor struct {
	Media media.Repository
	Sizes *media.SizeRegistry
}

func (MediaExtractor) Key() string { return KeyMedia }

func (e MediaExtractor) Extract(ctx context.Context, post *posts.Post) (any, error) {
	if post == nil || post.FeaturedMediaID == 0 || e.Media == nil {
		return nil, nil
	}
	att, err := e.Media.GetByID(ctx, post.FeaturedMediaID)
	if err != nil {
		var notFound *media.NotFoundError
		if errors.As(err, &notFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("media %d: %w", post.FeaturedMediaID, err)
	}

	sizes := e.Sizes
	if sizes == nil {
		sizes = media.NewSizeRegistry()
	}
	renditions := sizes.Resolve(att)
	out := make(Document, len(renditions))
	for _, name := range sizes.Names() {
		rendition := renditions[name]
		out[name] = Document{
			"link":   rendition.URL,
			"width":  rendition.Width,
			"height": rendition.Height,
		}
	}
	return Document{
		"id":      att.ID,
		"sizes":   out,
		"caption": att.Caption,
	}, nil
}

// SEOExtractor reports the SEO fields when the SEO subsystem is installed.
type SEOExtractor struct {
	Enrichment *enrichment.Registry
}

func (SEOExtractor) Key() string { return KeySEO }

func (e SEOExtractor) Extract(ctx context.Context, post *posts.Post) (any, error) {
	provider, ok := e.Enrichment.SEO()
	if !ok || post == nil {
		return nil, nil
	}
	fields := make(Document, len(SEOKeys))
	for _, key := range SEOKeys {
		var (
			value string
			err   error
		)
		if key == seoTitleKey {
			value, err = provider.Title(ctx, post)
		} else {
			value, err = provider.Meta(ctx, post.ID, "_"+key)
		}
		if err != nil {
			return nil, fmt.Errorf("seo %s: %w", key, err)
		}
		fields[key] = value
	}
	return fields, nil
}

// CustomFieldsExtractor reports the custom field mapping when the custom
// fields subsystem is installed and yields values.
type CustomFieldsExtractor struct {
	Enrichment *enrichment.Registry
}

func (CustomFieldsExtractor) Key() string { return KeyCustomFields }

func (e CustomFieldsExtractor) Extract(ctx context.Context, post *posts.Post) (any, error) {
	provider, ok := e.Enrichment.CustomFields()
	if !ok || post == nil {
		return nil, nil
	}
	fields, err := provider.Fields(ctx, post)
	if err != nil {
		return nil, fmt.Errorf("custom fields %d: %w", post.ID, err)
	}
	if len(fields) == 0 {
		return nil, nil
	}
	return fields, nil
}
