package comments

import "context"

// Repository exposes the comment threads of posts.
type Repository interface {
	Create(ctx context.Context, comment *Comment) (*Comment, error)
	// ListApproved returns the approved comments of a post, oldest first.
	ListApproved(ctx context.Context, postID int64) ([]*Comment, error)
	CountApproved(ctx context.Context, postID int64) (int, error)
}
