package posts

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-cms-rest/internal/domain"
)

// Content formats understood by the render pipeline.
const (
	FormatHTML     = "html"
	FormatMarkdown = "markdown"
)

// Comment statuses a post can carry.
const (
	CommentsOpen   = "open"
	CommentsClosed = "closed"
)

// Post is a content item of any kind as persisted by the content store.
type Post struct {
	bun.BaseModel `bun:"table:posts,alias:p"`

	ID              int64         `bun:"id,pk,autoincrement" json:"id"`
	UID             uuid.UUID     `bun:"uid,type:uuid,notnull,unique" json:"-"`
	Kind            string        `bun:"kind,notnull" json:"kind"`
	Title           string        `bun:"title,notnull" json:"title"`
	Content         string        `bun:"content" json:"content,omitempty"`
	Format          string        `bun:"format,notnull,default:'html'" json:"format,omitempty"`
	Slug            string        `bun:"slug,notnull" json:"slug"`
	Excerpt         string        `bun:"excerpt" json:"excerpt,omitempty"`
	Status          domain.Status `bun:"status,notnull" json:"status"`
	AuthorID        int64         `bun:"author_id" json:"author_id,omitempty"`
	FeaturedMediaID int64         `bun:"featured_media_id" json:"featured_media_id,omitempty"`
	CommentStatus   string        `bun:"comment_status" json:"comment_status,omitempty"`
	MenuOrder       int           `bun:"menu_order" json:"menu_order"`
	Date            time.Time     `bun:"date,notnull" json:"date"`
	Modified        time.Time     `bun:"modified,notnull" json:"modified"`
}

// CommentsOpen reports whether new comments are currently accepted.
func (p *Post) CommentsOpen() bool {
	return p != nil && p.CommentStatus == CommentsOpen
}

// Meta is a single key/value entry attached to a post.
type Meta struct {
	bun.BaseModel `bun:"table:post_meta,alias:pm"`

	ID     uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	PostID int64     `bun:"post_id,notnull" json:"post_id"`
	Key    string    `bun:"meta_key,notnull" json:"key"`
	Value  string    `bun:"meta_value" json:"value"`
}

// Meta comparison operators accepted by MetaClause.
const (
	CompareEqual     = "="
	CompareNotEqual  = "!="
	CompareExists    = "EXISTS"
	CompareNotExists = "NOT EXISTS"
)

// MetaClause restricts a query to posts whose meta satisfies the comparison.
type MetaClause struct {
	Key     string
	Value   string
	Compare string
}

// Query selects posts from the store. Zero values mean "no restriction",
// except PerPage where -1 returns every match and 0 is treated as -1.
type Query struct {
	Kind     string
	Slug     string
	Statuses []domain.Status
	PerPage  int
	Page     int
	Meta     []MetaClause
}

func (q Query) limitOffset() (int, int, bool) {
	if q.PerPage <= 0 {
		return 0, 0, false
	}
	page := q.Page
	if page < 1 {
		page = 1
	}
	return q.PerPage, (page - 1) * q.PerPage, true
}

func clonePost(post *Post) *Post {
	if post == nil {
		return nil
	}
	cloned := *post
	return &cloned
}
