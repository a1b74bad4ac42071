package menus

import (
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// NewMenuRepository creates a repository for Menu entities.
func NewMenuRepository(db *bun.DB) repository.Repository[*Menu] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Menu]{
		NewRecord: func() *Menu { return &Menu{} },
		GetID: func(m *Menu) uuid.UUID {
			return m.UID
		},
		SetID: func(m *Menu, id uuid.UUID) {
			m.UID = id
		},
		GetIdentifier: func() string {
			return "slug"
		},
		GetIdentifierValue: func(m *Menu) string {
			return m.Slug
		},
	})
}

// NewMenuItemRepository creates a repository for MenuItem entities.
func NewMenuItemRepository(db *bun.DB) repository.Repository[*MenuItem] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*MenuItem]{
		NewRecord: func() *MenuItem { return &MenuItem{} },
		GetID: func(item *MenuItem) uuid.UUID {
			return item.UID
		},
		SetID: func(item *MenuItem, id uuid.UUID) {
			item.UID = id
		},
		GetIdentifier: func() string {
			return "uid"
		},
		GetIdentifierValue: func(item *MenuItem) string {
			return item.UID.String()
		},
	})
}

// NewLocationRepository creates a repository for Location assignments.
func NewLocationRepository(db *bun.DB) repository.Repository[*Location] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Location]{
		NewRecord: func() *Location { return &Location{} },
		GetID: func(l *Location) uuid.UUID {
			return l.ID
		},
		SetID: func(l *Location, id uuid.UUID) {
			l.ID = id
		},
		GetIdentifier: func() string {
			return "location"
		},
		GetIdentifierValue: func(l *Location) string {
			return l.Location
		},
	})
}
