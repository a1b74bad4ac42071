package fixtures_test

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/goliatone/go-cms-rest/internal/comments"
	"github.com/goliatone/go-cms-rest/internal/customfields"
	"github.com/goliatone/go-cms-rest/internal/domain"
	"github.com/goliatone/go-cms-rest/internal/fixtures"
	"github.com/goliatone/go-cms-rest/internal/markdown"
	"github.com/goliatone/go-cms-rest/internal/media"
	"github.com/goliatone/go-cms-rest/internal/menus"
	"github.com/goliatone/go-cms-rest/internal/posts"
	"github.com/goliatone/go-cms-rest/internal/users"
)

func memoryStores() fixtures.Stores {
	meta := posts.NewMemoryMetaRepository()
	return fixtures.Stores{
		Posts:     posts.NewMemoryRepository(meta),
		Meta:      meta,
		Menus:     menus.NewMemoryMenuRepository(),
		MenuItems: menus.NewMemoryMenuItemRepository(),
		Locations: menus.NewMemoryLocationRepository(),
		Media:     media.NewMemoryRepository(),
		Comments:  comments.NewMemoryRepository(),
		Authors:   users.NewMemoryRepository(),
	}
}

func TestImportManifest(t *testing.T) {
	ctx := context.Background()
	manifest, err := fixtures.LoadManifest("testdata/site.yaml")
	if err != nil {
		t.Fatalf("load manifest: %v", err)
	}

	stores := memoryStores()
	summary, err := fixtures.NewImporter(stores, nil).Import(ctx, manifest)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	want := fixtures.Summary{Authors: 1, Media: 1, Posts: 2, Comments: 2, Menus: 1, MenuItems: 2, Locations: 1}
	if summary != want {
		t.Fatalf("expected summary %+v, got %+v", want, summary)
	}

	post, err := stores.Posts.GetByID(ctx, 42)
	if err != nil {
		t.Fatalf("get post: %v", err)
	}
	if post.Slug != "hello" || post.Status != domain.StatusPublished || post.Format != posts.FormatHTML {
		t.Fatalf("unexpected post %+v", post)
	}
	if post.AuthorID != 2 || post.FeaturedMediaID != 10 || !post.CommentsOpen() {
		t.Fatalf("expected relations to be stored, got %+v", post)
	}

	page, err := stores.Posts.GetByID(ctx, 7)
	if err != nil {
		t.Fatalf("get page: %v", err)
	}
	if page.Slug != "about-us" || page.MenuOrder != 2 {
		t.Fatalf("expected derived slug and order, got %q %d", page.Slug, page.MenuOrder)
	}

	values, err := stores.Meta.ListMeta(ctx, 42)
	if err != nil {
		t.Fatalf("list meta: %v", err)
	}
	if values["subtitle"] != "First post" || values["rating"] != "4" || values["featured"] != "1" {
		t.Fatalf("unexpected meta %v", values)
	}

	count, err := stores.Comments.CountApproved(ctx, 42)
	if err != nil {
		t.Fatalf("count comments: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected one approved comment, got %d", count)
	}

	items, err := stores.MenuItems.ListByMenu(ctx, 3)
	if err != nil {
		t.Fatalf("list items: %v", err)
	}
	if len(items) != 2 || items[0].Order != 1 || items[1].Order != 2 || items[1].Classes[0] != "nav-about" {
		t.Fatalf("unexpected menu items %+v", items)
	}
	menu, err := stores.Menus.GetByID(ctx, 3)
	if err != nil || menu.Slug != "main" {
		t.Fatalf("expected menu slug main, got %+v (%v)", menu, err)
	}

	assigned, err := stores.Locations.Assignments(ctx)
	if err != nil {
		t.Fatalf("assignments: %v", err)
	}
	if assigned["primary"] != 3 {
		t.Fatalf("expected primary location to point at menu 3, got %v", assigned)
	}
}

func TestImportRejectsInvalidPosts(t *testing.T) {
	cases := []struct {
		name    string
		fixture fixtures.PostFixture
		want    error
	}{
		{name: "unknown kind", fixture: fixtures.PostFixture{Kind: "book", Title: "A"}, want: fixtures.ErrUnknownKind},
		{name: "missing title", fixture: fixtures.PostFixture{Title: "  "}, want: fixtures.ErrTitleRequired},
		{name: "bad status", fixture: fixtures.PostFixture{Title: "A", Status: "lost"}, want: fixtures.ErrStatusInvalid},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			manifest := &fixtures.Manifest{Posts: []fixtures.PostFixture{tc.fixture}}
			_, err := fixtures.NewImporter(memoryStores(), nil).Import(context.Background(), manifest)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestImportValidatesCustomFields(t *testing.T) {
	stores := memoryStores()
	provider, err := customfields.NewProvider(stores.Meta, []customfields.Group{{
		Name:   "details",
		Fields: []customfields.Field{{Name: "rating", Type: customfields.TypeNumber}},
	}})
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}

	manifest := &fixtures.Manifest{Posts: []fixtures.PostFixture{{
		Title:  "Rated",
		Status: "publish",
		Meta:   map[string]any{"rating": "five"},
	}}}
	_, err = fixtures.NewImporter(stores, nil, fixtures.WithFieldValidator(provider)).Import(context.Background(), manifest)
	if !errors.Is(err, customfields.ErrSchemaValidation) {
		t.Fatalf("expected schema validation error, got %v", err)
	}
}

func TestParseManifestRejectsUnknownKeys(t *testing.T) {
	_, err := fixtures.ParseManifest(strings.NewReader("pages:\n  - title: nope\n"))
	if err == nil {
		t.Fatalf("expected unknown key error")
	}

	empty, err := fixtures.ParseManifest(strings.NewReader(""))
	if err != nil || empty == nil {
		t.Fatalf("expected empty manifest, got %v", err)
	}
}

func TestImportDocuments(t *testing.T) {
	ctx := context.Background()
	kinds := posts.NewKindRegistry()
	if err := kinds.Register(posts.Kind{Name: "event", RestBase: "events", ShowInREST: true}); err != nil {
		t.Fatalf("register kind: %v", err)
	}
	docs, err := markdown.NewLoader(os.DirFS("testdata/content"), markdown.LoaderConfig{Recursive: true}).LoadDirectory(ctx, ".")
	if err != nil {
		t.Fatalf("load documents: %v", err)
	}

	stores := memoryStores()
	count, err := fixtures.NewImporter(stores, kinds).ImportDocuments(ctx, docs)
	if err != nil {
		t.Fatalf("import documents: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 documents, got %d", count)
	}

	second, err := stores.Posts.GetByID(ctx, 50)
	if err != nil {
		t.Fatalf("get post: %v", err)
	}
	if second.Kind != posts.KindArticle || second.Slug != "second-post" || second.Format != posts.FormatMarkdown {
		t.Fatalf("unexpected markdown post %+v", second)
	}
	if subtitle, _ := stores.Meta.GetMeta(ctx, 50, "subtitle"); subtitle != "From markdown" {
		t.Fatalf("expected frontmatter meta, got %q", subtitle)
	}

	events, err := stores.Posts.Query(ctx, posts.Query{Kind: "event", Slug: "launch"})
	if err != nil {
		t.Fatalf("query events: %v", err)
	}
	if len(events) != 1 || events[0].Content != "Join us." {
		t.Fatalf("expected launch event from directory kind, got %+v", events)
	}
}
