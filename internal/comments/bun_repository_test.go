package comments_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/goliatone/go-cms-rest/internal/comments"
	"github.com/goliatone/go-cms-rest/internal/storage"
	"github.com/goliatone/go-cms-rest/pkg/testsupport"
)

func TestBunRepositoryListMatchesApprovedCount(t *testing.T) {
	db := testsupport.NewSQLiteBunDB(t)
	ctx := context.Background()
	if err := storage.CreateSchema(ctx, db); err != nil {
		t.Fatalf("create schema: %v", err)
	}

	repo := comments.NewBunRepository(db)
	base := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	for i := 1; i <= 32; i++ {
		comment := &comments.Comment{
			ID:      int64(i),
			PostID:  42,
			Content: fmt.Sprintf("comment %d", i),
			Date:    base.Add(time.Duration(i) * time.Minute),
		}
		if i > 30 {
			comment.Status = comments.StatusSpam
		}
		if _, err := repo.Create(ctx, comment); err != nil {
			t.Fatalf("create comment %d: %v", i, err)
		}
	}

	count, err := repo.CountApproved(ctx, 42)
	if err != nil {
		t.Fatalf("CountApproved: %v", err)
	}
	items, err := repo.ListApproved(ctx, 42)
	if err != nil {
		t.Fatalf("ListApproved: %v", err)
	}
	if count != 30 || len(items) != count {
		t.Fatalf("expected 30 approved comments listed and counted, got list %d count %d", len(items), count)
	}
	if items[0].ID != 1 || items[len(items)-1].ID != 30 {
		t.Fatalf("expected oldest first, got first %d last %d", items[0].ID, items[len(items)-1].ID)
	}
}
