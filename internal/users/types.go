package users

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Author is the public profile of a content author.
type Author struct {
	bun.BaseModel `bun:"table:authors,alias:au"`

	ID          int64     `bun:"id,pk,autoincrement" json:"id"`
	UID         uuid.UUID `bun:"uid,type:uuid,notnull,unique" json:"-"`
	Login       string    `bun:"login,notnull" json:"login"`
	DisplayName string    `bun:"display_name" json:"display_name"`
	Email       string    `bun:"email" json:"-"`
}

// Name returns the display name, falling back to the login.
func (a *Author) Name() string {
	if a == nil {
		return ""
	}
	if a.DisplayName != "" {
		return a.DisplayName
	}
	return a.Login
}

// Repository exposes author lookups.
type Repository interface {
	Create(ctx context.Context, author *Author) (*Author, error)
	GetByID(ctx context.Context, id int64) (*Author, error)
}

// NotFoundError is returned when an author cannot be located.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

func cloneAuthor(a *Author) *Author {
	if a == nil {
		return nil
	}
	cloned := *a
	return &cloned
}
