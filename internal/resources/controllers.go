package resources

import (
	"context"

	"github.com/goliatone/go-cms-rest/internal/domain"
	"github.com/goliatone/go-cms-rest/internal/menus"
	"github.com/goliatone/go-cms-rest/internal/posts"
)

// DefaultPerPage is the list page size when none is requested.
const DefaultPerPage = 10

// Actions checked through PermissionChecker.
const (
	ActionList = "list"
	ActionRead = "read"
)

// PermissionChecker decides whether a request may read a resource.
type PermissionChecker interface {
	Allowed(ctx context.Context, action, resource string) bool
}

// AllowAll permits every request.
type AllowAll struct{}

func (AllowAll) Allowed(context.Context, string, string) bool { return true }

// ListParams carries the paging and filter parameters of a list request.
// PerPage -1 returns every item and 0 selects the default page size.
type ListParams struct {
	PerPage int
	Page    int
	Meta    []posts.MetaClause
}

// PostController serves the items of one content kind.
type PostController struct {
	kind           posts.Kind
	posts          posts.Repository
	resolver       *Resolver
	assembler      *PostAssembler
	permissions    PermissionChecker
	defaultPerPage int
}

// PostControllerConfig wires a PostController.
type PostControllerConfig struct {
	Kind           posts.Kind
	Posts          posts.Repository
	Resolver       *Resolver
	Assembler      *PostAssembler
	Permissions    PermissionChecker
	DefaultPerPage int
}

// NewPostController constructs a controller for cfg.Kind.
func NewPostController(cfg PostControllerConfig) *PostController {
	permissions := cfg.Permissions
	if permissions == nil {
		permissions = AllowAll{}
	}
	perPage := cfg.DefaultPerPage
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	return &PostController{
		kind:           cfg.Kind,
		posts:          cfg.Posts,
		resolver:       cfg.Resolver,
		assembler:      cfg.Assembler,
		permissions:    permissions,
		defaultPerPage: perPage,
	}
}

// Kind returns the content kind served by the controller.
func (c *PostController) Kind() posts.Kind {
	return c.kind
}

// List returns the published items of the kind, newest first.
func (c *PostController) List(ctx context.Context, params ListParams) ([]Document, error) {
	if !c.permissions.Allowed(ctx, ActionList, c.kind.Name) {
		return nil, Forbidden()
	}
	perPage := params.PerPage
	if perPage == 0 {
		perPage = c.defaultPerPage
	}
	page := params.Page
	if page < 1 {
		page = 1
	}
	items, err := c.posts.Query(ctx, posts.Query{
		Kind:     c.kind.Name,
		Statuses: []domain.Status{domain.StatusPublished},
		PerPage:  perPage,
		Page:     page,
		Meta:     params.Meta,
	})
	if err != nil {
		return nil, err
	}
	return c.assembler.BuildAll(ctx, items)
}

// Get resolves a single item by id or slug.
func (c *PostController) Get(ctx context.Context, params ItemParams) (Document, error) {
	if !c.permissions.Allowed(ctx, ActionRead, c.kind.Name) {
		return nil, Forbidden()
	}
	post, err := c.resolver.ResolveItem(ctx, c.kind, params)
	if err != nil {
		return nil, err
	}
	return c.assembler.Build(ctx, post)
}

// MenuResource names the menu resource in permission checks.
const MenuResource = "menus"

// MenuController serves navigation menus.
type MenuController struct {
	menus       menus.MenuRepository
	resolver    *Resolver
	assembler   *MenuAssembler
	permissions PermissionChecker
}

// NewMenuController constructs a menu controller. A nil permission checker
// allows every request.
func NewMenuController(repo menus.MenuRepository, resolver *Resolver, assembler *MenuAssembler, permissions PermissionChecker) *MenuController {
	if permissions == nil {
		permissions = AllowAll{}
	}
	return &MenuController{
		menus:       repo,
		resolver:    resolver,
		assembler:   assembler,
		permissions: permissions,
	}
}

// List returns every menu.
func (c *MenuController) List(ctx context.Context) ([]Document, error) {
	if !c.permissions.Allowed(ctx, ActionList, MenuResource) {
		return nil, Forbidden()
	}
	list, err := c.menus.List(ctx)
	if err != nil {
		return nil, err
	}
	return c.assembler.BuildAll(ctx, list)
}

// Get resolves a single menu by id or location key.
func (c *MenuController) Get(ctx context.Context, params MenuParams) (Document, error) {
	if !c.permissions.Allowed(ctx, ActionRead, MenuResource) {
		return nil, Forbidden()
	}
	menu, err := c.resolver.ResolveMenu(ctx, params)
	if err != nil {
		return nil, err
	}
	return c.assembler.Build(ctx, menu)
}

// Locations returns the location keys accepted by Get.
func (c *MenuController) Locations() []string {
	return c.resolver.Locations()
}
