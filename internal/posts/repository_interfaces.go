package posts

import (
	"context"
	"fmt"
)

// Repository exposes the read surface of the content store plus the create
// call used when seeding a site.
type Repository interface {
	Create(ctx context.Context, post *Post) (*Post, error)
	GetByID(ctx context.Context, id int64) (*Post, error)
	Query(ctx context.Context, query Query) ([]*Post, error)
}

// MetaRepository exposes per-post key/value metadata. Missing keys read as "".
type MetaRepository interface {
	GetMeta(ctx context.Context, postID int64, key string) (string, error)
	ListMeta(ctx context.Context, postID int64) (map[string]string, error)
	SetMeta(ctx context.Context, postID int64, key, value string) error
}

// NotFoundError is returned when a post cannot be located.
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
