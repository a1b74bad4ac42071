package resources

import (
	"context"
	"testing"
	"time"

	"github.com/goliatone/go-cms-rest/internal/comments"
	"github.com/goliatone/go-cms-rest/internal/domain"
	"github.com/goliatone/go-cms-rest/internal/enrichment"
	"github.com/goliatone/go-cms-rest/internal/media"
	"github.com/goliatone/go-cms-rest/internal/menus"
	"github.com/goliatone/go-cms-rest/internal/posts"
	"github.com/goliatone/go-cms-rest/internal/users"
)

type siteFixture struct {
	kinds       *posts.KindRegistry
	posts       posts.Repository
	meta        posts.MetaRepository
	menus       menus.MenuRepository
	items       menus.MenuItemRepository
	assignments menus.LocationRepository
	locations   *menus.LocationRegistry
	media       media.Repository
	sizes       *media.SizeRegistry
	comments    comments.Repository
	users       users.Repository
	enrichment  *enrichment.Registry
}

var fixtureDate = time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

func newSiteFixture(t *testing.T) *siteFixture {
	t.Helper()
	meta := posts.NewMemoryMetaRepository()
	f := &siteFixture{
		kinds:       posts.NewKindRegistry(),
		posts:       posts.NewMemoryRepository(meta),
		meta:        meta,
		menus:       menus.NewMemoryMenuRepository(),
		items:       menus.NewMemoryMenuItemRepository(),
		assignments: menus.NewMemoryLocationRepository(),
		locations:   menus.NewLocationRegistry(),
		media:       media.NewMemoryRepository(),
		sizes: media.NewSizeRegistry(
			media.ImageSize{Name: "thumbnail", Width: 150, Height: 150, Crop: true},
			media.ImageSize{Name: "medium", Width: 300, Height: 300},
		),
		comments:   comments.NewMemoryRepository(),
		users:      users.NewMemoryRepository(),
		enrichment: enrichment.NewRegistry(),
	}
	f.locations.Register("primary", "Primary navigation")
	f.locations.Register("footer", "Footer links")
	return f
}

func (f *siteFixture) addPost(t *testing.T, post *posts.Post) *posts.Post {
	t.Helper()
	if post.Kind == "" {
		post.Kind = posts.KindArticle
	}
	if post.Status == "" {
		post.Status = domain.StatusPublished
	}
	if post.Date.IsZero() {
		post.Date = fixtureDate
		post.Modified = fixtureDate
	}
	created, err := f.posts.Create(context.Background(), post)
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	return created
}

func (f *siteFixture) resolver() *Resolver {
	return NewResolver(f.posts, f.menus, f.assignments, f.locations)
}

func (f *siteFixture) assembler() *PostAssembler {
	return NewPostAssembler(nil, staticLinks{}, WithExtractors(
		AuthorExtractor{Users: f.users},
		CustomFieldsExtractor{Enrichment: f.enrichment},
		CommentsExtractor{Kinds: f.kinds, Comments: f.comments},
		SEOExtractor{Enrichment: f.enrichment},
		MediaExtractor{Media: f.media, Sizes: f.sizes},
	))
}

type staticLinks struct{}

func (staticLinks) Link(post *posts.Post) string {
	return "https://example.com/" + post.Slug
}

func ptr[T any](v T) *T { return &v }
