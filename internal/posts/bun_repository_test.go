package posts_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/goliatone/go-cms-rest/internal/domain"
	"github.com/goliatone/go-cms-rest/internal/posts"
	"github.com/goliatone/go-cms-rest/internal/storage"
	"github.com/goliatone/go-cms-rest/pkg/testsupport"
)

func TestBunRepositoryQueryMatchesMemorySemantics(t *testing.T) {
	db := testsupport.NewSQLiteBunDB(t)
	ctx := context.Background()
	if err := storage.CreateSchema(ctx, db); err != nil {
		t.Fatalf("create schema: %v", err)
	}

	repo := posts.NewBunRepository(db)
	meta := posts.NewBunMetaRepository(db)

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	for _, post := range []*posts.Post{
		{ID: 1, Kind: posts.KindArticle, Title: "Oldest", Slug: "shared", Status: domain.StatusPublished, Date: base, Modified: base},
		{ID: 2, Kind: posts.KindArticle, Title: "Newest", Slug: "newest", Status: domain.StatusPublished, Date: base.Add(48 * time.Hour), Modified: base},
		{ID: 3, Kind: posts.KindArticle, Title: "Draft", Slug: "draft", Status: domain.StatusDraft, Date: base.Add(72 * time.Hour), Modified: base},
		{ID: 4, Kind: posts.KindPage, Title: "Shared page", Slug: "shared", Status: domain.StatusPublished, Date: base, Modified: base},
	} {
		if _, err := repo.Create(ctx, post); err != nil {
			t.Fatalf("create post %d: %v", post.ID, err)
		}
	}
	if err := meta.SetMeta(ctx, 2, "featured", "yes"); err != nil {
		t.Fatalf("set meta: %v", err)
	}
	if err := meta.SetMeta(ctx, 2, "featured", "still-yes"); err != nil {
		t.Fatalf("overwrite meta: %v", err)
	}

	published, err := repo.Query(ctx, posts.Query{
		Kind:     posts.KindArticle,
		Statuses: []domain.Status{domain.StatusPublished},
		PerPage:  -1,
	})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(published) != 2 || published[0].ID != 2 || published[1].ID != 1 {
		t.Fatalf("expected [2 1], got %+v", published)
	}

	bySlug, err := repo.Query(ctx, posts.Query{Kind: posts.KindPage, Slug: "shared", PerPage: 1})
	if err != nil {
		t.Fatalf("Query by slug: %v", err)
	}
	if len(bySlug) != 1 || bySlug[0].ID != 4 {
		t.Fatalf("expected page 4, got %+v", bySlug)
	}

	featured, err := repo.Query(ctx, posts.Query{
		Kind: posts.KindArticle,
		Meta: []posts.MetaClause{{Key: "featured", Value: "still-yes"}},
	})
	if err != nil {
		t.Fatalf("Query by meta: %v", err)
	}
	if len(featured) != 1 || featured[0].ID != 2 {
		t.Fatalf("expected post 2, got %+v", featured)
	}

	value, err := meta.GetMeta(ctx, 2, "featured")
	if err != nil || value != "still-yes" {
		t.Fatalf("expected overwritten meta, got %q (%v)", value, err)
	}
	missing, err := meta.GetMeta(ctx, 2, "absent")
	if err != nil || missing != "" {
		t.Fatalf("expected empty value for missing key, got %q (%v)", missing, err)
	}

	_, err = repo.GetByID(ctx, 99)
	var notFound *posts.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestBunRepositoryReadsPastDefaultPageSize(t *testing.T) {
	db := testsupport.NewSQLiteBunDB(t)
	ctx := context.Background()
	if err := storage.CreateSchema(ctx, db); err != nil {
		t.Fatalf("create schema: %v", err)
	}

	repo := posts.NewBunRepository(db)
	meta := posts.NewBunMetaRepository(db)

	const total = 30
	base := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	for i := 1; i <= total; i++ {
		post := &posts.Post{
			ID:       int64(100 + i),
			Kind:     posts.KindArticle,
			Title:    fmt.Sprintf("Post %d", i),
			Slug:     fmt.Sprintf("post-%d", i),
			Status:   domain.StatusPublished,
			Date:     base.Add(time.Duration(i) * time.Hour),
			Modified: base,
		}
		if _, err := repo.Create(ctx, post); err != nil {
			t.Fatalf("create post %d: %v", post.ID, err)
		}
		if err := meta.SetMeta(ctx, 101, fmt.Sprintf("field_%02d", i), "v"); err != nil {
			t.Fatalf("set meta %d: %v", i, err)
		}
	}

	all, err := repo.Query(ctx, posts.Query{
		Kind:     posts.KindArticle,
		Statuses: []domain.Status{domain.StatusPublished},
		PerPage:  -1,
	})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(all) != total {
		t.Fatalf("expected %d posts for per_page -1, got %d", total, len(all))
	}
	if all[0].ID != 130 || all[total-1].ID != 101 {
		t.Fatalf("expected newest first, got first %d last %d", all[0].ID, all[total-1].ID)
	}

	page, err := repo.Query(ctx, posts.Query{Kind: posts.KindArticle, PerPage: 10, Page: 3})
	if err != nil {
		t.Fatalf("Query page 3: %v", err)
	}
	if len(page) != 10 || page[0].ID != 110 {
		t.Fatalf("expected 10 posts starting at 110, got %d", len(page))
	}

	values, err := meta.ListMeta(ctx, 101)
	if err != nil {
		t.Fatalf("ListMeta: %v", err)
	}
	if len(values) != total {
		t.Fatalf("expected %d meta keys, got %d", total, len(values))
	}
	if values["field_30"] != "v" {
		t.Fatalf("expected last meta key present, got %v", values)
	}
}
