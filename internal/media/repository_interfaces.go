package media

import (
	"context"
	"fmt"
)

// Repository exposes attachment lookups.
type Repository interface {
	Create(ctx context.Context, att *Attachment) (*Attachment, error)
	GetByID(ctx context.Context, id int64) (*Attachment, error)
}

// NotFoundError is returned when an attachment cannot be located.
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
