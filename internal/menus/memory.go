package menus

import (
	"context"
	"maps"
	"sort"
	"strconv"
	"sync"

	"github.com/goliatone/go-cms-rest/internal/identity"
)

type memoryMenuRepository struct {
	mu     sync.RWMutex
	byID   map[int64]*Menu
	nextID int64
}

// NewMemoryMenuRepository constructs an in-memory repository for menus.
func NewMemoryMenuRepository() MenuRepository {
	return &memoryMenuRepository{byID: make(map[int64]*Menu)}
}

func (m *memoryMenuRepository) Create(_ context.Context, menu *Menu) (*Menu, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cloned := cloneMenu(menu)
	if cloned.ID == 0 {
		cloned.ID = m.nextID + 1
	}
	m.nextID = max(m.nextID, cloned.ID)
	cloned.UID = identity.MenuUUID(cloned.ID)
	m.byID[cloned.ID] = cloned
	return cloneMenu(cloned), nil
}

func (m *memoryMenuRepository) GetByID(_ context.Context, id int64) (*Menu, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.byID[id]
	if !ok {
		return nil, &NotFoundError{Resource: "menu", Key: strconv.FormatInt(id, 10)}
	}
	return cloneMenu(record), nil
}

func (m *memoryMenuRepository) List(_ context.Context) ([]*Menu, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := make([]*Menu, 0, len(m.byID))
	for _, record := range m.byID {
		records = append(records, cloneMenu(record))
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].Name != records[j].Name {
			return records[i].Name < records[j].Name
		}
		return records[i].ID < records[j].ID
	})
	return records, nil
}

type memoryMenuItemRepository struct {
	mu       sync.RWMutex
	byID     map[int64]*MenuItem
	byMenuID map[int64][]int64
	nextID   int64
}

// NewMemoryMenuItemRepository constructs an in-memory repository for menu items.
func NewMemoryMenuItemRepository() MenuItemRepository {
	return &memoryMenuItemRepository{
		byID:     make(map[int64]*MenuItem),
		byMenuID: make(map[int64][]int64),
	}
}

func (m *memoryMenuItemRepository) Create(_ context.Context, item *MenuItem) (*MenuItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cloned := cloneMenuItem(item)
	if cloned.ID == 0 {
		cloned.ID = m.nextID + 1
	}
	m.nextID = max(m.nextID, cloned.ID)
	cloned.UID = identity.MenuItemUUID(cloned.ID)
	if _, exists := m.byID[cloned.ID]; !exists {
		m.byMenuID[cloned.MenuID] = append(m.byMenuID[cloned.MenuID], cloned.ID)
	}
	m.byID[cloned.ID] = cloned
	return cloneMenuItem(cloned), nil
}

func (m *memoryMenuItemRepository) ListByMenu(_ context.Context, menuID int64) ([]*MenuItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := m.byMenuID[menuID]
	records := make([]*MenuItem, 0, len(ids))
	for _, id := range ids {
		records = append(records, cloneMenuItem(m.byID[id]))
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].Order != records[j].Order {
			return records[i].Order < records[j].Order
		}
		return records[i].ID < records[j].ID
	})
	return records, nil
}

type memoryLocationRepository struct {
	mu          sync.RWMutex
	assignments map[string]int64
}

// NewMemoryLocationRepository constructs an in-memory location assignment store.
func NewMemoryLocationRepository() LocationRepository {
	return &memoryLocationRepository{assignments: map[string]int64{}}
}

func (m *memoryLocationRepository) Assign(_ context.Context, location string, menuID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.assignments[location] = menuID
	return nil
}

func (m *memoryLocationRepository) Assignments(context.Context) (map[string]int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return maps.Clone(m.assignments), nil
}
