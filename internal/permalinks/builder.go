package permalinks

import (
	"fmt"
	"strings"

	urlkit "github.com/goliatone/go-urlkit"

	"github.com/goliatone/go-cms-rest/internal/logging"
	"github.com/goliatone/go-cms-rest/internal/posts"
	"github.com/goliatone/go-cms-rest/pkg/interfaces"
)

// GroupName is the urlkit route group that holds the public site routes.
const GroupName = "site"

// Builder produces canonical links for posts.
type Builder struct {
	baseURL string
	group   *urlkit.Group
	routes  map[string]string
	logger  interfaces.Logger
}

// Options configures a Builder.
type Options struct {
	BaseURL string
	// Routes overrides the route template per kind name.
	Routes map[string]string
	Kinds  []posts.Kind
	Logger interfaces.Logger
}

// NewBuilder registers one route per kind on a urlkit route manager.
func NewBuilder(opts Options) (*Builder, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")

	routes := make(map[string]string, len(opts.Kinds))
	for _, kind := range opts.Kinds {
		routes[kind.Name] = DefaultRoute(kind)
	}
	for name, template := range opts.Routes {
		if template = strings.TrimSpace(template); template != "" {
			routes[name] = template
		}
	}

	b := &Builder{baseURL: baseURL, routes: routes, logger: logger}
	if len(routes) == 0 {
		return b, nil
	}

	manager := urlkit.NewRouteManager(&urlkit.Config{
		Groups: []urlkit.GroupConfig{{
			Name:    GroupName,
			BaseURL: baseURL,
			Paths:   routes,
		}},
	})
	group, err := lookupGroup(manager)
	if err != nil {
		return nil, err
	}
	b.group = group
	return b, nil
}

// DefaultRoute is the template used for kind when no override is configured.
func DefaultRoute(kind posts.Kind) string {
	if kind.Name == posts.KindPage {
		return "/:slug"
	}
	return "/" + kind.Base() + "/:slug"
}

// Link returns the canonical link of post. Unpublished posts and posts whose
// route cannot be built get the query form.
func (b *Builder) Link(post *posts.Post) string {
	if post == nil {
		return ""
	}
	if !post.Status.IsPublished() || post.Slug == "" {
		return b.queryLink(post.ID)
	}
	if _, ok := b.routes[post.Kind]; !ok || b.group == nil {
		return b.queryLink(post.ID)
	}
	link, err := b.build(post.Kind, post.Slug)
	if err != nil {
		b.logger.Warn("permalinks.build.failed", "post_id", post.ID, "kind", post.Kind, "error", err)
		return b.queryLink(post.ID)
	}
	return link
}

func (b *Builder) queryLink(id int64) string {
	return fmt.Sprintf("%s/?p=%d", b.baseURL, id)
}

func (b *Builder) build(route, slug string) (link string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("permalinks: route %q: %v", route, rec)
		}
	}()
	builder := b.group.Builder(route)
	builder.WithParam("slug", slug)
	return builder.Build()
}

func lookupGroup(manager *urlkit.RouteManager) (group *urlkit.Group, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("permalinks: route group %q not found", GroupName)
		}
	}()
	return manager.Group(GroupName), nil
}
