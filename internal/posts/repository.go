package posts

import (
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// NewPostRepository creates a go-repository-bun repository for posts. The
// uid column backs the repository handlers; the integer id stays the public
// identifier.
func NewPostRepository(db *bun.DB) repository.Repository[*Post] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Post]{
		NewRecord: func() *Post { return &Post{} },
		GetID: func(p *Post) uuid.UUID {
			return p.UID
		},
		SetID: func(p *Post, id uuid.UUID) {
			p.UID = id
		},
		GetIdentifier: func() string {
			return "uid"
		},
		GetIdentifierValue: func(p *Post) string {
			return p.UID.String()
		},
	})
}

// NewMetaRepository creates a go-repository-bun repository for post meta.
func NewMetaRepository(db *bun.DB) repository.Repository[*Meta] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Meta]{
		NewRecord: func() *Meta { return &Meta{} },
		GetID: func(m *Meta) uuid.UUID {
			return m.ID
		},
		SetID: func(m *Meta, id uuid.UUID) {
			m.ID = id
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(m *Meta) string {
			return m.ID.String()
		},
	})
}
