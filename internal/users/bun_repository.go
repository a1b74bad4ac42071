package users

import (
	"context"
	"fmt"
	"strconv"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-cms-rest/internal/identity"
)

// NewAuthorRepository creates a go-repository-bun repository for authors.
func NewAuthorRepository(db *bun.DB) repository.Repository[*Author] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Author]{
		NewRecord: func() *Author { return &Author{} },
		GetID: func(a *Author) uuid.UUID {
			return a.UID
		},
		SetID: func(a *Author, id uuid.UUID) {
			a.UID = id
		},
		GetIdentifier: func() string {
			return "login"
		},
		GetIdentifierValue: func(a *Author) string {
			return a.Login
		},
	})
}

// BunRepository implements Repository.
type BunRepository struct {
	repo repository.Repository[*Author]
}

// NewBunRepository creates an author repository backed by db.
func NewBunRepository(db *bun.DB) *BunRepository {
	return &BunRepository{repo: NewAuthorRepository(db)}
}

func (r *BunRepository) Create(ctx context.Context, author *Author) (*Author, error) {
	record := cloneAuthor(author)
	if record.ID != 0 {
		record.UID = identity.AuthorUUID(record.ID)
	}
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("author repository error: %w", err)
	}
	return created, nil
}

func (r *BunRepository) GetByID(ctx context.Context, id int64) (*Author, error) {
	key := strconv.FormatInt(id, 10)
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.id = ?", id)
		}),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
			return nil, &NotFoundError{Resource: "author", Key: key}
		}
		return nil, fmt.Errorf("author repository error: %w", err)
	}
	if len(records) == 0 {
		return nil, &NotFoundError{Resource: "author", Key: key}
	}
	return records[0], nil
}
