package menus

import (
	"slices"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Menu is a named navigation structure.
type Menu struct {
	bun.BaseModel `bun:"table:menus,alias:m"`

	ID          int64     `bun:"id,pk,autoincrement" json:"id"`
	UID         uuid.UUID `bun:"uid,type:uuid,notnull,unique" json:"-"`
	Name        string    `bun:"name,notnull" json:"name"`
	Slug        string    `bun:"slug,notnull" json:"slug"`
	Description string    `bun:"description" json:"description,omitempty"`
}

// MenuItem is a single link entry inside a menu.
type MenuItem struct {
	bun.BaseModel `bun:"table:menu_items,alias:mi"`

	ID          int64     `bun:"id,pk,autoincrement" json:"id"`
	UID         uuid.UUID `bun:"uid,type:uuid,notnull,unique" json:"-"`
	MenuID      int64     `bun:"menu_id,notnull" json:"menu_id"`
	ParentID    int64     `bun:"parent_id" json:"parent_id,omitempty"`
	Title       string    `bun:"title" json:"title"`
	URL         string    `bun:"url" json:"url"`
	Target      string    `bun:"target" json:"target,omitempty"`
	Description string    `bun:"description" json:"description,omitempty"`
	Classes     []string  `bun:"classes,type:jsonb" json:"classes,omitempty"`
	Order       int       `bun:"menu_order" json:"order"`
}

// Location assigns a registered layout slot to a menu.
type Location struct {
	bun.BaseModel `bun:"table:menu_locations,alias:ml"`

	ID       uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	Location string    `bun:"location,notnull,unique" json:"location"`
	MenuID   int64     `bun:"menu_id,notnull" json:"menu_id"`
}

func cloneMenu(menu *Menu) *Menu {
	if menu == nil {
		return nil
	}
	cloned := *menu
	return &cloned
}

func cloneMenuItem(item *MenuItem) *MenuItem {
	if item == nil {
		return nil
	}
	cloned := *item
	cloned.Classes = slices.Clone(item.Classes)
	return &cloned
}
