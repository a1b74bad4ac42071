package comments

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Moderation states a comment can be in.
const (
	StatusApproved = "approved"
	StatusPending  = "pending"
	StatusSpam     = "spam"
)

// Comment is a reader response attached to a post.
type Comment struct {
	bun.BaseModel `bun:"table:comments,alias:c"`

	ID         int64     `bun:"id,pk,autoincrement" json:"id"`
	UID        uuid.UUID `bun:"uid,type:uuid,notnull,unique" json:"-"`
	PostID     int64     `bun:"post_id,notnull" json:"post"`
	ParentID   int64     `bun:"parent_id" json:"parent"`
	AuthorName string    `bun:"author_name" json:"author_name"`
	AuthorURL  string    `bun:"author_url" json:"author_url"`
	Content    string    `bun:"content" json:"content"`
	Status     string    `bun:"status,notnull" json:"status"`
	Date       time.Time `bun:"date,notnull" json:"date"`
}

func cloneComment(c *Comment) *Comment {
	if c == nil {
		return nil
	}
	cloned := *c
	return &cloned
}
