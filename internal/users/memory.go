package users

import (
	"context"
	"strconv"
	"sync"

	"github.com/goliatone/go-cms-rest/internal/identity"
)

type memoryRepository struct {
	mu     sync.RWMutex
	byID   map[int64]*Author
	nextID int64
}

// NewMemoryRepository constructs an in-memory author repository.
func NewMemoryRepository() Repository {
	return &memoryRepository{byID: make(map[int64]*Author)}
}

func (m *memoryRepository) Create(_ context.Context, author *Author) (*Author, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cloned := cloneAuthor(author)
	if cloned.ID == 0 {
		cloned.ID = m.nextID + 1
	}
	m.nextID = max(m.nextID, cloned.ID)
	cloned.UID = identity.AuthorUUID(cloned.ID)
	m.byID[cloned.ID] = cloned
	return cloneAuthor(cloned), nil
}

func (m *memoryRepository) GetByID(_ context.Context, id int64) (*Author, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.byID[id]
	if !ok {
		return nil, &NotFoundError{Resource: "author", Key: strconv.FormatInt(id, 10)}
	}
	return cloneAuthor(record), nil
}
