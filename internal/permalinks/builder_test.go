package permalinks_test

import (
	"testing"

	"github.com/goliatone/go-cms-rest/internal/domain"
	"github.com/goliatone/go-cms-rest/internal/permalinks"
	"github.com/goliatone/go-cms-rest/internal/posts"
)

func newBuilder(t *testing.T, routes map[string]string) *permalinks.Builder {
	t.Helper()
	builder, err := permalinks.NewBuilder(permalinks.Options{
		BaseURL: "https://example.com/",
		Routes:  routes,
		Kinds:   posts.NewKindRegistry().RESTKinds(),
	})
	if err != nil {
		t.Fatalf("new builder: %v", err)
	}
	return builder
}

func TestBuilderLink(t *testing.T) {
	builder := newBuilder(t, map[string]string{"page": "/pages/:slug"})

	cases := []struct {
		name string
		post *posts.Post
		want string
	}{
		{
			name: "published article",
			post: &posts.Post{ID: 42, Kind: posts.KindArticle, Slug: "hello", Status: domain.StatusPublished},
			want: "https://example.com/articles/hello",
		},
		{
			name: "page route override",
			post: &posts.Post{ID: 5, Kind: posts.KindPage, Slug: "about", Status: domain.StatusPublished},
			want: "https://example.com/pages/about",
		},
		{
			name: "draft uses query form",
			post: &posts.Post{ID: 7, Kind: posts.KindArticle, Slug: "wip", Status: domain.StatusDraft},
			want: "https://example.com/?p=7",
		},
		{
			name: "unknown kind uses query form",
			post: &posts.Post{ID: 8, Kind: "book", Slug: "dune", Status: domain.StatusPublished},
			want: "https://example.com/?p=8",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := builder.Link(tc.post); got != tc.want {
				t.Fatalf("Link() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestDefaultRoute(t *testing.T) {
	if got := permalinks.DefaultRoute(posts.Kind{Name: posts.KindPage, RestBase: "pages"}); got != "/:slug" {
		t.Fatalf("unexpected page route %q", got)
	}
	if got := permalinks.DefaultRoute(posts.Kind{Name: "book"}); got != "/book/:slug" {
		t.Fatalf("unexpected book route %q", got)
	}
}
