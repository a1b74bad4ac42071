package comments

import (
	"context"
	"sort"
	"sync"

	"github.com/goliatone/go-cms-rest/internal/identity"
)

type memoryRepository struct {
	mu     sync.RWMutex
	byPost map[int64][]*Comment
	nextID int64
}

// NewMemoryRepository constructs an in-memory comment repository.
func NewMemoryRepository() Repository {
	return &memoryRepository{byPost: make(map[int64][]*Comment)}
}

func (m *memoryRepository) Create(_ context.Context, comment *Comment) (*Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cloned := cloneComment(comment)
	if cloned.ID == 0 {
		cloned.ID = m.nextID + 1
	}
	m.nextID = max(m.nextID, cloned.ID)
	cloned.UID = identity.CommentUUID(cloned.ID)
	if cloned.Status == "" {
		cloned.Status = StatusApproved
	}
	m.byPost[cloned.PostID] = append(m.byPost[cloned.PostID], cloned)
	return cloneComment(cloned), nil
}

func (m *memoryRepository) ListApproved(_ context.Context, postID int64) ([]*Comment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Comment, 0, len(m.byPost[postID]))
	for _, comment := range m.byPost[postID] {
		if comment.Status == StatusApproved {
			out = append(out, cloneComment(comment))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *memoryRepository) CountApproved(ctx context.Context, postID int64) (int, error) {
	approved, err := m.ListApproved(ctx, postID)
	return len(approved), err
}
