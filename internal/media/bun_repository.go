package media

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

// NewAttachmentRepository creates a go-repository-bun repository for attachments.
func NewAttachmentRepository(db *bun.DB) repository.Repository[*Attachment] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Attachment]{
		NewRecord: func() *Attachment { return &Attachment{} },
		GetID: func(a *Attachment) uuid.UUID {
			return a.UID
		},
		SetID: func(a *Attachment, id uuid.UUID) {
			a.UID = id
		},
		GetIdentifier: func() string {
			return "url"
		},
		GetIdentifierValue: func(a *Attachment) string {
			return a.URL
		},
	})
}

// BunRepository implements Repository.
type BunRepository struct {
	repo repository.Repository[*Attachment]
}

// NewBunRepository creates an attachment repository backed by db.
func NewBunRepository(db *bun.DB) *BunRepository {
	return &BunRepository{repo: NewAttachmentRepository(db)}
}

func (r *BunRepository) Create(ctx context.Context, att *Attachment) (*Attachment, error) {
	record := cloneAttachment(att)
	if record.ID != 0 {
		record.UID = identity.AttachmentUUID(record.ID)
	}
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("attachment repository error: %w", err)
	}
	return created, nil
}

func (r *BunRepository) GetByID(ctx context.Context, id int64) (*Attachment, error) {
	key := strconv.FormatInt(id, 10)
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.id = ?", id)
		}),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
			return nil, &NotFoundError{Resource: "attachment", Key: key}
		}
		return nil, fmt.Errorf("attachment repository error: %w", err)
	}
	if len(records) == 0 {
		return nil, &NotFoundError{Resource: "attachment", Key: key}
	}
	return records[0], nil
}
