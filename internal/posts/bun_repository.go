package posts

import (
	"context"
	"fmt"
	"strconv"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-cms-rest/internal/identity"
)

// BunRepository implements Repository on top of go-repository-bun.
type BunRepository struct {
	repo repository.Repository[*Post]
}

// NewBunRepository creates a post repository backed by db.
func NewBunRepository(db *bun.DB) *BunRepository {
	return &BunRepository{repo: NewPostRepository(db)}
}

func (r *BunRepository) Create(ctx context.Context, post *Post) (*Post, error) {
	record := clonePost(post)
	if record.ID != 0 {
		record.UID = identity.PostUUID(record.ID)
	}
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("post repository error: %w", err)
	}
	return created, nil
}

func (r *BunRepository) GetByID(ctx context.Context, id int64) (*Post, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.id = ?", id)
		}),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "post", strconv.FormatInt(id, 10))
	}
	if len(records) == 0 {
		return nil, &NotFoundError{Resource: "post", Key: strconv.FormatInt(id, 10)}
	}
	return records[0], nil
}

func (r *BunRepository) Query(ctx context.Context, query Query) ([]*Post, error) {
	filter := repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		if query.Kind != "" {
			q = q.Where("?TableAlias.kind = ?", query.Kind)
		}
		if query.Slug != "" {
			q = q.Where("?TableAlias.slug = ?", query.Slug)
		}
		if len(query.Statuses) > 0 {
			q = q.Where("?TableAlias.status IN (?)", bun.In(query.Statuses))
		}
		for _, clause := range query.Meta {
			q = applyMetaClause(q, clause)
		}
		return q.OrderExpr("?TableAlias.date DESC").OrderExpr("?TableAlias.id DESC")
	})

	var (
		records []*Post
		err     error
	)
	if limit, offset, ok := query.limitOffset(); ok {
		records, _, err = r.repo.List(ctx, filter, repository.SelectPaginate(limit, offset))
	} else {
		records, _, err = r.repo.List(ctx, filter, selectAll())
	}
	if err != nil {
		return nil, mapRepositoryError(err, "post", query.Kind)
	}
	return records, nil
}

func applyMetaClause(q *bun.SelectQuery, clause MetaClause) *bun.SelectQuery {
	const exists = "EXISTS (SELECT 1 FROM post_meta AS m WHERE m.post_id = ?TableAlias.id AND m.meta_key = ?"
	switch clause.normalizedCompare() {
	case CompareExists:
		return q.Where(exists+")", clause.Key)
	case CompareNotExists:
		return q.Where("NOT "+exists+")", clause.Key)
	case CompareNotEqual:
		return q.Where(exists+" AND m.meta_value <> ?)", clause.Key, clause.Value)
	default:
		return q.Where(exists+" AND m.meta_value = ?)", clause.Key, clause.Value)
	}
}

// BunMetaRepository implements MetaRepository on top of go-repository-bun.
type BunMetaRepository struct {
	repo repository.Repository[*Meta]
}

// NewBunMetaRepository creates a post meta repository backed by db.
func NewBunMetaRepository(db *bun.DB) *BunMetaRepository {
	return &BunMetaRepository{repo: NewMetaRepository(db)}
}

func (r *BunMetaRepository) GetMeta(ctx context.Context, postID int64, key string) (string, error) {
	record, err := r.repo.GetByID(ctx, identity.PostMetaUUID(postID, key).String())
	if err != nil {
		if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("post_meta repository error: %w", err)
	}
	return record.Value, nil
}

func (r *BunMetaRepository) ListMeta(ctx context.Context, postID int64) (map[string]string, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.post_id = ?", postID)
		}),
		selectAll(),
	)
	if err != nil {
		return nil, fmt.Errorf("post_meta repository error: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	out := make(map[string]string, len(records))
	for _, record := range records {
		out[record.Key] = record.Value
	}
	return out, nil
}

func (r *BunMetaRepository) SetMeta(ctx context.Context, postID int64, key, value string) error {
	id := identity.PostMetaUUID(postID, key)
	existing, err := r.repo.GetByID(ctx, id.String())
	switch {
	case err == nil:
		existing.Value = value
		_, err = r.repo.Update(ctx, existing)
	case goerrors.IsCategory(err, repository.CategoryDatabaseNotFound):
		_, err = r.repo.Create(ctx, &Meta{ID: id, PostID: postID, Key: key, Value: value})
	}
	if err != nil {
		return fmt.Errorf("post_meta repository error: %w", err)
	}
	return nil
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{Resource: resource, Key: key}
	}
	return fmt.Errorf("%s repository error: %w", resource, err)
}

// selectAll lifts go-repository-bun's default page size so list reads return
// every matching row.
func selectAll() repository.SelectCriteria {
	return repository.SelectPaginate(0, 0)
}
