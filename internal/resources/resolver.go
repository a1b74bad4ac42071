package resources

import (
	"context"
	"errors"

	"github.com/goliatone/go-cms-rest/internal/domain"
	"github.com/goliatone/go-cms-rest/internal/menus"
	"github.com/goliatone/go-cms-rest/internal/posts"
)

// ItemParams identifies a single content item. ID takes precedence over Slug.
type ItemParams struct {
	ID   *int64
	Slug *string
}

// MenuParams identifies a single menu. ID takes precedence over Location.
type MenuParams struct {
	ID       *int64
	Location *string
}

// Resolver locates the object a request refers to.
type Resolver struct {
	posts       posts.Repository
	menus       menus.MenuRepository
	assignments menus.LocationRepository
	locations   *menus.LocationRegistry
}

// NewResolver wires the stores a resolver reads from.
func NewResolver(postRepo posts.Repository, menuRepo menus.MenuRepository, assignments menus.LocationRepository, locations *menus.LocationRegistry) *Resolver {
	if locations == nil {
		locations = menus.NewLocationRegistry()
	}
	return &Resolver{
		posts:       postRepo,
		menus:       menuRepo,
		assignments: assignments,
		locations:   locations,
	}
}

// ResolveItem finds the item of kind named by params.
func (r *Resolver) ResolveItem(ctx context.Context, kind posts.Kind, params ItemParams) (*posts.Post, error) {
	switch {
	case params.ID != nil:
		return r.itemByID(ctx, kind, *params.ID)
	case params.Slug != nil:
		return r.itemBySlug(ctx, kind, *params.Slug)
	default:
		return nil, BadRequest("")
	}
}

func (r *Resolver) itemByID(ctx context.Context, kind posts.Kind, id int64) (*posts.Post, error) {
	post, err := r.posts.GetByID(ctx, id)
	if err != nil {
		var notFound *posts.NotFoundError
		if errors.As(err, &notFound) {
			return nil, InvalidItem(kind.Name)
		}
		return nil, err
	}
	if post.Kind != kind.Name {
		return nil, InvalidItem(kind.Name)
	}
	return post, nil
}

func (r *Resolver) itemBySlug(ctx context.Context, kind posts.Kind, slug string) (*posts.Post, error) {
	if slug == "" {
		return nil, InvalidSlug(kind.Name)
	}
	matches, err := r.posts.Query(ctx, posts.Query{
		Kind:     kind.Name,
		Slug:     slug,
		Statuses: []domain.Status{domain.StatusPublished},
		PerPage:  1,
		Page:     1,
	})
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 || matches[0].Kind != kind.Name {
		return nil, InvalidSlug(kind.Name)
	}
	return matches[0], nil
}

// ResolveMenu finds the menu named by params. Location keys must be
// registered and assigned to an existing menu.
func (r *Resolver) ResolveMenu(ctx context.Context, params MenuParams) (*menus.Menu, error) {
	switch {
	case params.ID != nil:
		return r.menuByID(ctx, *params.ID)
	case params.Location != nil:
		return r.menuByLocation(ctx, *params.Location)
	default:
		return nil, BadRequest("")
	}
}

func (r *Resolver) menuByID(ctx context.Context, id int64) (*menus.Menu, error) {
	menu, err := r.menus.GetByID(ctx, id)
	if err != nil {
		var notFound *menus.NotFoundError
		if errors.As(err, &notFound) {
			return nil, InvalidMenu()
		}
		return nil, err
	}
	return menu, nil
}

func (r *Resolver) menuByLocation(ctx context.Context, location string) (*menus.Menu, error) {
	if !r.locations.IsRegistered(location) {
		return nil, InvalidMenu()
	}
	assigned, err := r.assignments.Assignments(ctx)
	if err != nil {
		return nil, err
	}
	menuID, ok := assigned[location]
	if !ok || menuID == 0 {
		return nil, InvalidMenu()
	}
	return r.menuByID(ctx, menuID)
}

// Locations returns the registered menu location keys.
func (r *Resolver) Locations() []string {
	return r.locations.Keys()
}
