package comments

import (
	"context"
	"fmt"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-cms-rest/internal/identity"
)

// NewCommentRepository creates a go-repository-bun repository for comments.
func NewCommentRepository(db *bun.DB) repository.Repository[*Comment] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Comment]{
		NewRecord: func() *Comment { return &Comment{} },
		GetID: func(c *Comment) uuid.UUID {
			return c.UID
		},
		SetID: func(c *Comment, id uuid.UUID) {
			c.UID = id
		},
		GetIdentifier: func() string {
			return "uid"
		},
		GetIdentifierValue: func(c *Comment) string {
			return c.UID.String()
		},
	})
}

// BunRepository implements Repository.
type BunRepository struct {
	repo repository.Repository[*Comment]
}

// NewBunRepository creates a comment repository backed by db.
func NewBunRepository(db *bun.DB) *BunRepository {
	return &BunRepository{repo: NewCommentRepository(db)}
}

func (r *BunRepository) Create(ctx context.Context, comment *Comment) (*Comment, error) {
	record := cloneComment(comment)
	if record.ID != 0 {
		record.UID = identity.CommentUUID(record.ID)
	}
	if record.Status == "" {
		record.Status = StatusApproved
	}
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("comment repository error: %w", err)
	}
	return created, nil
}

func (r *BunRepository) ListApproved(ctx context.Context, postID int64) ([]*Comment, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.post_id = ?", postID).
				Where("?TableAlias.status = ?", StatusApproved).
				OrderExpr("?TableAlias.date ASC").
				OrderExpr("?TableAlias.id ASC")
		}),
		selectAll(),
	)
	if err != nil {
		return nil, fmt.Errorf("comment repository error: %w", err)
	}
	return records, nil
}

func (r *BunRepository) CountApproved(ctx context.Context, postID int64) (int, error) {
	_, total, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.post_id = ?", postID).
				Where("?TableAlias.status = ?", StatusApproved)
		}),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return 0, fmt.Errorf("comment repository error: %w", err)
	}
	return total, nil
}

// selectAll lifts go-repository-bun's default page size so list reads return
// every matching row.
func selectAll() repository.SelectCriteria {
	return repository.SelectPaginate(0, 0)
}
