package resources

import (
	"context"
	"reflect"
	"sort"
	"testing"
	"time"

	"github.com/goliatone/go-cms-rest/internal/comments"
	"github.com/goliatone/go-cms-rest/internal/customfields"
	"github.com/goliatone/go-cms-rest/internal/media"
	"github.com/goliatone/go-cms-rest/internal/menus"
	"github.com/goliatone/go-cms-rest/internal/posts"
	"github.com/goliatone/go-cms-rest/internal/seo"
	"github.com/goliatone/go-cms-rest/internal/users"
)

func keysOf(doc Document) []string {
	keys := make([]string, 0, len(doc))
	for key := range doc {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func TestPostAssemblerMinimalArticle(t *testing.T) {
	f := newSiteFixture(t)
	post := f.addPost(t, &posts.Post{ID: 42, Title: "Hello", Content: "<p>Hi there</p>", Slug: "hello"})

	doc, err := f.assembler().Build(context.Background(), post)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	want := []string{"content", "date", "id", "link", "modified", "order", "slug", "status", "title"}
	if got := keysOf(doc); !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected keys\nwant %v\ngot  %v", want, got)
	}
	if doc["id"] != int64(42) || doc["title"] != "Hello" || doc["status"] != "published" {
		t.Fatalf("unexpected base fields %#v", doc)
	}
	if doc["date"] != "2024-03-01T09:30:00+00:00" {
		t.Fatalf("unexpected date %v", doc["date"])
	}
	if doc["link"] != "https://example.com/hello" {
		t.Fatalf("unexpected link %v", doc["link"])
	}
}

func TestPostAssemblerMediaCoversEverySize(t *testing.T) {
	ctx := context.Background()
	f := newSiteFixture(t)
	if _, err := f.media.Create(ctx, &media.Attachment{
		ID:      9,
		URL:     "https://example.com/cat.jpg",
		Width:   1200,
		Height:  800,
		Caption: "A cat",
		Renditions: map[string]media.Rendition{
			"thumbnail": {URL: "https://example.com/cat-150x150.jpg", Width: 150, Height: 150},
		},
	}); err != nil {
		t.Fatalf("create attachment: %v", err)
	}
	post := f.addPost(t, &posts.Post{ID: 1, Title: "Cat", Slug: "cat", FeaturedMediaID: 9})

	doc, err := f.assembler().Build(ctx, post)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	mediaDoc, ok := doc[KeyMedia].(map[string]any)
	if !ok {
		t.Fatalf("expected media, got %#v", doc[KeyMedia])
	}
	if mediaDoc["id"] != int64(9) || mediaDoc["caption"] != "A cat" {
		t.Fatalf("unexpected media %#v", mediaDoc)
	}
	sizes := mediaDoc["sizes"].(map[string]any)
	want := map[string]map[string]any{
		"thumbnail": {"link": "https://example.com/cat-150x150.jpg", "width": 150, "height": 150},
		"medium":    {"link": "https://example.com/cat.jpg", "width": 300, "height": 200},
		"full":      {"link": "https://example.com/cat.jpg", "width": 1200, "height": 800},
	}
	if len(sizes) != len(want) {
		t.Fatalf("expected %d sizes, got %#v", len(want), sizes)
	}
	for name, expected := range want {
		got, ok := sizes[name].(map[string]any)
		if !ok || !reflect.DeepEqual(got, expected) {
			t.Fatalf("size %s: want %#v, got %#v", name, expected, sizes[name])
		}
	}
}

func TestPostAssemblerMissingAttachmentOmitsMedia(t *testing.T) {
	f := newSiteFixture(t)
	post := f.addPost(t, &posts.Post{ID: 1, Title: "Cat", Slug: "cat", FeaturedMediaID: 404})

	doc, err := f.assembler().Build(context.Background(), post)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if _, ok := doc[KeyMedia]; ok {
		t.Fatalf("expected media to be absent, got %#v", doc[KeyMedia])
	}
}

func TestPostAssemblerAuthor(t *testing.T) {
	ctx := context.Background()
	f := newSiteFixture(t)
	if _, err := f.users.Create(ctx, &users.Author{ID: 5, Login: "ada", DisplayName: "Ada Lovelace"}); err != nil {
		t.Fatalf("create author: %v", err)
	}
	known := f.addPost(t, &posts.Post{ID: 1, Title: "A", Slug: "a", AuthorID: 5})
	unknown := f.addPost(t, &posts.Post{ID: 2, Title: "B", Slug: "b", AuthorID: 77})
	assembler := f.assembler()

	doc, err := assembler.Build(ctx, known)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if got := doc[KeyAuthor]; !reflect.DeepEqual(got, map[string]any{"id": int64(5), "name": "Ada Lovelace"}) {
		t.Fatalf("unexpected author %#v", got)
	}

	doc, err = assembler.Build(ctx, unknown)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if got := doc[KeyAuthor]; !reflect.DeepEqual(got, map[string]any{"id": int64(77)}) {
		t.Fatalf("unexpected author %#v", got)
	}
}

func TestPostAssemblerComments(t *testing.T) {
	ctx := context.Background()
	f := newSiteFixture(t)
	if err := f.kinds.AddSupport(posts.KindArticle, posts.SupportComments); err != nil {
		t.Fatalf("add support: %v", err)
	}
	post := f.addPost(t, &posts.Post{ID: 1, Title: "A", Slug: "a", CommentStatus: posts.CommentsOpen})
	page := f.addPost(t, &posts.Post{ID: 2, Kind: posts.KindPage, Title: "P", Slug: "p", CommentStatus: posts.CommentsOpen})
	for _, comment := range []*comments.Comment{
		{ID: 11, PostID: 1, AuthorName: "Second", Content: "later", Date: fixtureDate.Add(2 * time.Hour)},
		{ID: 10, PostID: 1, AuthorName: "First", Content: "earlier", Date: fixtureDate.Add(time.Hour)},
		{ID: 12, PostID: 1, AuthorName: "Spam", Content: "buy", Status: comments.StatusSpam, Date: fixtureDate},
	} {
		if _, err := f.comments.Create(ctx, comment); err != nil {
			t.Fatalf("create comment: %v", err)
		}
	}
	assembler := f.assembler()

	doc, err := assembler.Build(ctx, post)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	summary, ok := doc[KeyComments].(map[string]any)
	if !ok {
		t.Fatalf("expected comments, got %#v", doc[KeyComments])
	}
	if summary["status"] != posts.CommentsOpen || summary["count"] != 2 {
		t.Fatalf("unexpected summary %#v", summary)
	}
	items := summary["items"].([]any)
	if len(items) != 2 || items[0].(map[string]any)["author_name"] != "First" {
		t.Fatalf("unexpected comment items %#v", items)
	}

	doc, err = assembler.Build(ctx, page)
	if err != nil {
		t.Fatalf("build page: %v", err)
	}
	if _, ok := doc[KeyComments]; ok {
		t.Fatalf("pages do not support comments, got %#v", doc[KeyComments])
	}
}

func TestPostAssemblerEnrichment(t *testing.T) {
	ctx := context.Background()
	f := newSiteFixture(t)
	post := f.addPost(t, &posts.Post{ID: 1, Title: "Hello", Slug: "hello"})
	for key, value := range map[string]string{
		"_yoast_wpseo_metadesc": "A greeting",
		"subtitle":              "World",
	} {
		if err := f.meta.SetMeta(ctx, post.ID, key, value); err != nil {
			t.Fatalf("set meta: %v", err)
		}
	}
	assembler := f.assembler()

	doc, err := assembler.Build(ctx, post)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if _, ok := doc[KeySEO]; ok {
		t.Fatalf("seo must be absent without a provider")
	}
	if _, ok := doc[KeyCustomFields]; ok {
		t.Fatalf("acf must be absent without a provider")
	}

	f.enrichment.RegisterSEO(seo.NewProvider(f.meta, seo.WithSite(seo.Site{Name: "Site", Separator: "|"})))
	provider, err := customfields.NewProvider(f.meta, []customfields.Group{{
		Name:   "hero",
		Fields: []customfields.Field{{Name: "subtitle", Type: customfields.TypeText}},
	}})
	if err != nil {
		t.Fatalf("custom fields provider: %v", err)
	}
	f.enrichment.RegisterCustomFields(provider)

	doc, err = assembler.Build(ctx, post)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	wantSEO := map[string]any{
		"yoast_wpseo_title":    "Hello | Site",
		"yoast_wpseo_metadesc": "A greeting",
	}
	if got := doc[KeySEO]; !reflect.DeepEqual(got, wantSEO) {
		t.Fatalf("unexpected seo %#v", got)
	}
	if got := doc[KeyCustomFields]; !reflect.DeepEqual(got, map[string]any{"subtitle": "World"}) {
		t.Fatalf("unexpected acf %#v", got)
	}
}

func TestMenuAssembler(t *testing.T) {
	ctx := context.Background()
	f := newSiteFixture(t)
	menu, err := f.menus.Create(ctx, &menus.Menu{ID: 3, Name: "Main", Slug: "main"})
	if err != nil {
		t.Fatalf("create menu: %v", err)
	}
	for _, item := range []*menus.MenuItem{
		{ID: 21, MenuID: 3, Title: "About", URL: "https://example.com/about/", Order: 2, ParentID: 20, Classes: []string{""}},
		{ID: 20, MenuID: 3, Title: "Home", URL: "https://example.com/", Order: 1, Target: "_blank", Classes: []string{"home"}},
	} {
		if _, err := f.items.Create(ctx, item); err != nil {
			t.Fatalf("create item: %v", err)
		}
	}

	doc, err := NewMenuAssembler(f.items).Build(ctx, menu)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if doc["id"] != int64(3) || doc["title"] != "Main" || doc["slug"] != "main" {
		t.Fatalf("unexpected menu %#v", doc)
	}
	items := doc["items"].([]Document)
	want := []Document{
		{"id": int64(20), "title": "Home", "order": 1, "slug": "example.com", "url": "https://example.com/", "target": "_blank", "class": []string{"home"}},
		{"id": int64(21), "title": "About", "order": 2, "slug": "about", "url": "https://example.com/about/", "parent": int64(20)},
	}
	if !reflect.DeepEqual(items, want) {
		t.Fatalf("unexpected items\nwant %#v\ngot  %#v", want, items)
	}
}
