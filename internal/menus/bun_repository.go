package menus

import (
	"context"
	"fmt"
	"strconv"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-cms-rest/internal/identity"
)

// BunMenuRepository implements MenuRepository.
type BunMenuRepository struct {
	repo repository.Repository[*Menu]
}

// NewBunMenuRepository creates a menu repository backed by db.
func NewBunMenuRepository(db *bun.DB) *BunMenuRepository {
	return &BunMenuRepository{repo: NewMenuRepository(db)}
}

func (r *BunMenuRepository) Create(ctx context.Context, menu *Menu) (*Menu, error) {
	record := cloneMenu(menu)
	if record.ID != 0 {
		record.UID = identity.MenuUUID(record.ID)
	}
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, mapRepositoryError(err, "menu", record.Slug)
	}
	return created, nil
}

func (r *BunMenuRepository) GetByID(ctx context.Context, id int64) (*Menu, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.id = ?", id)
		}),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "menu", strconv.FormatInt(id, 10))
	}
	if len(records) == 0 {
		return nil, &NotFoundError{Resource: "menu", Key: strconv.FormatInt(id, 10)}
	}
	return records[0], nil
}

func (r *BunMenuRepository) List(ctx context.Context) ([]*Menu, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.OrderExpr("?TableAlias.name ASC").OrderExpr("?TableAlias.id ASC")
		}),
		selectAll(),
	)
	if err != nil {
		return nil, fmt.Errorf("menu repository error: %w", err)
	}
	return records, nil
}

// BunMenuItemRepository implements MenuItemRepository.
type BunMenuItemRepository struct {
	repo repository.Repository[*MenuItem]
}

// NewBunMenuItemRepository creates a menu item repository backed by db.
func NewBunMenuItemRepository(db *bun.DB) *BunMenuItemRepository {
	return &BunMenuItemRepository{repo: NewMenuItemRepository(db)}
}

func (r *BunMenuItemRepository) Create(ctx context.Context, item *MenuItem) (*MenuItem, error) {
	record := cloneMenuItem(item)
	if record.ID != 0 {
		record.UID = identity.MenuItemUUID(record.ID)
	}
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, mapRepositoryError(err, "menu_item", strconv.FormatInt(record.ID, 10))
	}
	return created, nil
}

func (r *BunMenuItemRepository) ListByMenu(ctx context.Context, menuID int64) ([]*MenuItem, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.menu_id = ?", menuID).
				OrderExpr("?TableAlias.menu_order ASC").
				OrderExpr("?TableAlias.id ASC")
		}),
		selectAll(),
	)
	if err != nil {
		return nil, fmt.Errorf("menu_item repository error: %w", err)
	}
	return records, nil
}

// BunLocationRepository implements LocationRepository.
type BunLocationRepository struct {
	repo repository.Repository[*Location]
}

// NewBunLocationRepository creates a location assignment repository backed by db.
func NewBunLocationRepository(db *bun.DB) *BunLocationRepository {
	return &BunLocationRepository{repo: NewLocationRepository(db)}
}

func (r *BunLocationRepository) Assign(ctx context.Context, location string, menuID int64) error {
	existing, err := r.repo.GetByIdentifier(ctx, location)
	switch {
	case err == nil:
		existing.MenuID = menuID
		_, err = r.repo.Update(ctx, existing)
	case goerrors.IsCategory(err, repository.CategoryDatabaseNotFound):
		_, err = r.repo.Create(ctx, &Location{
			ID:       identity.LocationUUID(location),
			Location: location,
			MenuID:   menuID,
		})
	}
	if err != nil {
		return fmt.Errorf("menu_location repository error: %w", err)
	}
	return nil
}

func (r *BunLocationRepository) Assignments(ctx context.Context) (map[string]int64, error) {
	records, _, err := r.repo.List(ctx, selectAll())
	if err != nil {
		return nil, fmt.Errorf("menu_location repository error: %w", err)
	}
	out := make(map[string]int64, len(records))
	for _, record := range records {
		out[record.Location] = record.MenuID
	}
	return out, nil
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{Resource: resource, Key: key}
	}
	return fmt.Errorf("%s repository error: %w", resource, err)
}

// selectAll lifts go-repository-bun's default page size so list reads return
// every matching row.
func selectAll() repository.SelectCriteria {
	return repository.SelectPaginate(0, 0)
}
