package media

import (
	"context"
	"strconv"
	"sync"

	"github.com/goliatone/go-cms-rest/internal/identity"
)

type memoryRepository struct {
	mu     sync.RWMutex
	byID   map[int64]*Attachment
	nextID int64
}

// NewMemoryRepository constructs an in-memory attachment repository.
func NewMemoryRepository() Repository {
	return &memoryRepository{byID: make(map[int64]*Attachment)}
}

func (m *memoryRepository) Create(_ context.Context, att *Attachment) (*Attachment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cloned := cloneAttachment(att)
	if cloned.ID == 0 {
		cloned.ID = m.nextID + 1
	}
	m.nextID = max(m.nextID, cloned.ID)
	cloned.UID = identity.AttachmentUUID(cloned.ID)
	m.byID[cloned.ID] = cloned
	return cloneAttachment(cloned), nil
}

func (m *memoryRepository) GetByID(_ context.Context, id int64) (*Attachment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.byID[id]
	if !ok {
		return nil, &NotFoundError{Resource: "attachment", Key: strconv.FormatInt(id, 10)}
	}
	return cloneAttachment(record), nil
}
