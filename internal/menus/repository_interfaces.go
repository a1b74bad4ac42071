package menus

import (
	"context"
	"fmt"
)

// MenuRepository exposes persistence operations for menu records.
type MenuRepository interface {
	Create(ctx context.Context, menu *Menu) (*Menu, error)
	GetByID(ctx context.Context, id int64) (*Menu, error)
	// List returns every menu ordered by name, then id.
	List(ctx context.Context) ([]*Menu, error)
}

// MenuItemRepository exposes persistence operations for menu items.
type MenuItemRepository interface {
	Create(ctx context.Context, item *MenuItem) (*MenuItem, error)
	// ListByMenu returns the items of a menu ordered by order, then id.
	ListByMenu(ctx context.Context, menuID int64) ([]*MenuItem, error)
}

// LocationRepository stores which menu each layout slot displays.
type LocationRepository interface {
	Assign(ctx context.Context, location string, menuID int64) error
	Assignments(ctx context.Context) (map[string]int64, error)
}

// NotFoundError is returned when a menu resource cannot be located.
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
