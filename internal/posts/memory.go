package posts

import (
	"context"
	"maps"
	"slices"
	"sort"
	"strconv"
	"sync"

	"github.com/goliatone/go-cms-rest/internal/identity"
)

type memoryRepository struct {
	mu     sync.RWMutex
	byID   map[int64]*Post
	nextID int64
	meta   MetaRepository
}

// NewMemoryRepository constructs an in-memory post repository. Meta clauses
// in queries are evaluated against meta; a nil meta repository matches no
// clause that requires a key.
func NewMemoryRepository(meta MetaRepository) Repository {
	return &memoryRepository{
		byID: make(map[int64]*Post),
		meta: meta,
	}
}

func (m *memoryRepository) Create(_ context.Context, post *Post) (*Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cloned := clonePost(post)
	if cloned.ID == 0 {
		cloned.ID = m.nextID + 1
	}
	if cloned.ID > m.nextID {
		m.nextID = cloned.ID
	}
	cloned.UID = identity.PostUUID(cloned.ID)
	m.byID[cloned.ID] = cloned
	return clonePost(cloned), nil
}

func (m *memoryRepository) GetByID(_ context.Context, id int64) (*Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.byID[id]
	if !ok {
		return nil, &NotFoundError{Resource: "post", Key: strconv.FormatInt(id, 10)}
	}
	return clonePost(record), nil
}

func (m *memoryRepository) Query(ctx context.Context, query Query) ([]*Post, error) {
	m.mu.RLock()
	candidates := make([]*Post, 0, len(m.byID))
	for _, record := range m.byID {
		if query.Kind != "" && record.Kind != query.Kind {
			continue
		}
		if query.Slug != "" && record.Slug != query.Slug {
			continue
		}
		if len(query.Statuses) > 0 && !slices.Contains(query.Statuses, record.Status) {
			continue
		}
		candidates = append(candidates, clonePost(record))
	}
	m.mu.RUnlock()

	matched := candidates[:0]
	for _, record := range candidates {
		ok, err := m.matchesMeta(ctx, record.ID, query.Meta)
		if err != nil {
			return nil, err
		}
		if ok {
			matched = append(matched, record)
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].Date.Equal(matched[j].Date) {
			return matched[i].Date.After(matched[j].Date)
		}
		return matched[i].ID > matched[j].ID
	})

	limit, offset, paginate := query.limitOffset()
	if !paginate {
		return matched, nil
	}
	if offset >= len(matched) {
		return []*Post{}, nil
	}
	end := min(offset+limit, len(matched))
	return matched[offset:end], nil
}

func (m *memoryRepository) matchesMeta(ctx context.Context, postID int64, clauses []MetaClause) (bool, error) {
	if len(clauses) == 0 {
		return true, nil
	}
	var values map[string]string
	if m.meta != nil {
		var err error
		values, err = m.meta.ListMeta(ctx, postID)
		if err != nil {
			return false, err
		}
	}
	for _, clause := range clauses {
		if !clause.matches(values) {
			return false, nil
		}
	}
	return true, nil
}

func (c MetaClause) matches(values map[string]string) bool {
	value, exists := values[c.Key]
	switch c.normalizedCompare() {
	case CompareExists:
		return exists
	case CompareNotExists:
		return !exists
	case CompareNotEqual:
		return exists && value != c.Value
	default:
		return exists && value == c.Value
	}
}

type memoryMetaRepository struct {
	mu     sync.RWMutex
	byPost map[int64]map[string]string
}

// NewMemoryMetaRepository constructs an in-memory post meta repository.
func NewMemoryMetaRepository() MetaRepository {
	return &memoryMetaRepository{byPost: make(map[int64]map[string]string)}
}

func (m *memoryMetaRepository) GetMeta(_ context.Context, postID int64, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.byPost[postID][key], nil
}

func (m *memoryMetaRepository) ListMeta(_ context.Context, postID int64) (map[string]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return maps.Clone(m.byPost[postID]), nil
}

func (m *memoryMetaRepository) SetMeta(_ context.Context, postID int64, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entries, ok := m.byPost[postID]
	if !ok {
		entries = map[string]string{}
		m.byPost[postID] = entries
	}
	entries[key] = value
	return nil
}
