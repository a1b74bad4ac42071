package di

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/uptrace/bun"

	sitecmd "github.com/goliatone/go-cms-rest/internal/commands/site"
	"github.com/goliatone/go-cms-rest/internal/comments"
	"github.com/goliatone/go-cms-rest/internal/customfields"
	"github.com/goliatone/go-cms-rest/internal/enrichment"
	"github.com/goliatone/go-cms-rest/internal/fixtures"
	apihttp "github.com/goliatone/go-cms-rest/internal/http"
	"github.com/goliatone/go-cms-rest/internal/logging"
	"github.com/goliatone/go-cms-rest/internal/logging/gologger"
	"github.com/goliatone/go-cms-rest/internal/media"
	"github.com/goliatone/go-cms-rest/internal/menus"
	"github.com/goliatone/go-cms-rest/internal/permalinks"
	"github.com/goliatone/go-cms-rest/internal/permissions"
	"github.com/goliatone/go-cms-rest/internal/posts"
	"github.com/goliatone/go-cms-rest/internal/render"
	"github.com/goliatone/go-cms-rest/internal/resources"
	"github.com/goliatone/go-cms-rest/internal/runtimeconfig"
	"github.com/goliatone/go-cms-rest/internal/seo"
	"github.com/goliatone/go-cms-rest/internal/storage"
	"github.com/goliatone/go-cms-rest/internal/users"
	"github.com/goliatone/go-cms-rest/pkg/interfaces"
)

// Container wires the content store, enrichment subsystems, resource core
// and HTTP surface from a runtime configuration.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	permissions    resources.PermissionChecker
	shortcodes     *render.Shortcodes

	bunDB  *bun.DB
	ownsDB bool
	stores fixtures.Stores

	kinds      *posts.KindRegistry
	locations  *menus.LocationRegistry
	sizes      *media.SizeRegistry
	enrichment *enrichment.Registry
	fields     *customfields.Provider

	resolver      *resources.Resolver
	postAssembler *resources.PostAssembler
	menuAssembler *resources.MenuAssembler
	controllers   []*resources.PostController

	metrics    *apihttp.Metrics
	handler    http.Handler
	siteImport *sitecmd.ImportSiteHandler
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithLoggerProvider overrides the go-logger provider built from config.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithBunDB uses db instead of opening the configured database. The caller
// keeps ownership of db.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithPermissions installs the permission checker used by all controllers.
func WithPermissions(checker resources.PermissionChecker) Option {
	return func(c *Container) {
		c.permissions = checker
	}
}

// WithShortcodes replaces the shortcode registry of the render pipeline.
func WithShortcodes(shortcodes *render.Shortcodes) Option {
	return func(c *Container) {
		c.shortcodes = shortcodes
	}
}

// NewContainer validates cfg and builds every component.
func NewContainer(ctx context.Context, cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{Config: cfg}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	steps := []func(context.Context) error{
		c.configureLoggerProvider,
		c.configureStores,
		c.configureRegistries,
		c.configureEnrichment,
		c.configureResources,
		c.configureHTTP,
	}
	for _, step := range steps {
		if err := step(ctx); err != nil {
			_ = c.Close()
			return nil, err
		}
	}
	return c, nil
}

func (c *Container) configureLoggerProvider(context.Context) error {
	if c.loggerProvider != nil {
		return nil
	}
	provider, err := gologger.NewProvider(gologger.Config{
		Level:     c.Config.Logging.Level,
		Format:    c.Config.Logging.Format,
		AddSource: c.Config.Logging.AddSource,
		Focus:     c.Config.Logging.Focus,
	})
	if err != nil {
		return fmt.Errorf("di: logger provider: %w", err)
	}
	c.loggerProvider = provider
	return nil
}

func (c *Container) configureStores(ctx context.Context) error {
	logger := logging.StorageLogger(c.loggerProvider)
	provider := strings.ToLower(strings.TrimSpace(c.Config.Storage.Provider))

	if c.bunDB == nil && (provider == "" || provider == storage.ProviderMemory) {
		meta := posts.NewMemoryMetaRepository()
		c.stores = fixtures.Stores{
			Posts:     posts.NewMemoryRepository(meta),
			Meta:      meta,
			Menus:     menus.NewMemoryMenuRepository(),
			MenuItems: menus.NewMemoryMenuItemRepository(),
			Locations: menus.NewMemoryLocationRepository(),
			Media:     media.NewMemoryRepository(),
			Comments:  comments.NewMemoryRepository(),
			Authors:   users.NewMemoryRepository(),
		}
		logger.Info("storage.configured", "provider", storage.ProviderMemory)
		return nil
	}

	if c.bunDB == nil {
		db, err := storage.Open(ctx, c.Config.Storage)
		if err != nil {
			return err
		}
		c.bunDB = db
		c.ownsDB = true
	}
	if err := storage.CreateSchema(ctx, c.bunDB); err != nil {
		return err
	}

	c.stores = fixtures.Stores{
		Posts:     posts.NewBunRepository(c.bunDB),
		Meta:      posts.NewBunMetaRepository(c.bunDB),
		Menus:     menus.NewBunMenuRepository(c.bunDB),
		MenuItems: menus.NewBunMenuItemRepository(c.bunDB),
		Locations: menus.NewBunLocationRepository(c.bunDB),
		Media:     media.NewBunRepository(c.bunDB),
		Comments:  comments.NewBunRepository(c.bunDB),
		Authors:   users.NewBunRepository(c.bunDB),
	}
	logger.Info("storage.configured", "provider", provider, "dialect", c.bunDB.Dialect().Name().String())
	return nil
}

func (c *Container) configureRegistries(context.Context) error {
	c.kinds = posts.NewKindRegistry()
	for _, kind := range c.Config.Kinds {
		name := strings.ToLower(strings.TrimSpace(kind.Name))
		if existing, ok := c.kinds.Get(name); ok && existing.Builtin {
			if err := c.kinds.AddSupport(name, kind.Supports...); err != nil {
				return fmt.Errorf("di: kind %s: %w", name, err)
			}
			continue
		}
		if err := c.kinds.Register(posts.Kind{
			Name:       name,
			Label:      kind.Label,
			RestBase:   kind.RestBase,
			ShowInREST: kind.ShowInREST,
			Features:   kind.Supports,
		}); err != nil {
			return fmt.Errorf("di: kind %s: %w", name, err)
		}
	}

	c.locations = menus.NewLocationRegistry()
	for _, location := range c.Config.Menus.Locations {
		c.locations.Register(location.Key, location.Description)
	}

	c.sizes = media.NewSizeRegistry()
	for _, size := range c.Config.Media.Sizes {
		c.sizes.Register(media.ImageSize{
			Name:   size.Name,
			Width:  size.Width,
			Height: size.Height,
			Crop:   size.Crop,
		})
	}
	return nil
}

func (c *Container) configureEnrichment(context.Context) error {
	c.enrichment = enrichment.NewRegistry()

	if c.Config.Enrichment.SEO.Enabled {
		c.enrichment.RegisterSEO(seo.NewProvider(c.stores.Meta,
			seo.WithSite(seo.Site{
				Name:        c.Config.Site.Name,
				Description: c.Config.Site.Description,
				Separator:   c.Config.Site.TitleSeparator,
			}),
			seo.WithTitleTemplate(c.Config.Enrichment.SEO.TitleTemplate),
			seo.WithKindTemplates(c.Config.Enrichment.SEO.KindTemplates),
		))
	}

	if c.Config.Enrichment.CustomFields.Enabled {
		provider, err := customfields.NewProvider(c.stores.Meta,
			fieldGroups(c.Config.Enrichment.CustomFields.Groups),
			customfields.WithMedia(c.stores.Media),
			customfields.WithLogger(logging.ResourcesLogger(c.loggerProvider)),
		)
		if err != nil {
			return fmt.Errorf("di: custom fields: %w", err)
		}
		c.fields = provider
		c.enrichment.RegisterCustomFields(provider)
	}
	return nil
}

func (c *Container) configureResources(context.Context) error {
	if c.permissions == nil && len(c.Config.API.Permissions) > 0 {
		c.permissions = permissions.NewSet(c.Config.API.Permissions...)
	}

	links, err := permalinks.NewBuilder(permalinks.Options{
		BaseURL: c.Config.Site.BaseURL,
		Routes:  c.Config.Permalinks.Routes,
		Kinds:   c.kinds.RESTKinds(),
		Logger:  logging.ResourcesLogger(c.loggerProvider),
	})
	if err != nil {
		return fmt.Errorf("di: permalinks: %w", err)
	}

	c.resolver = resources.NewResolver(c.stores.Posts, c.stores.Menus, c.stores.Locations, c.locations)
	c.postAssembler = resources.NewPostAssembler(
		render.NewDefaultPipeline(logging.RenderLogger(c.loggerProvider), c.shortcodes),
		links,
		resources.WithLogger(logging.ResourcesLogger(c.loggerProvider)),
		resources.WithExtractors(
			resources.AuthorExtractor{Users: c.stores.Authors},
			resources.CustomFieldsExtractor{Enrichment: c.enrichment},
			resources.CommentsExtractor{Kinds: c.kinds, Comments: c.stores.Comments},
			resources.SEOExtractor{Enrichment: c.enrichment},
			resources.MediaExtractor{Media: c.stores.Media, Sizes: c.sizes},
		),
	)
	c.menuAssembler = resources.NewMenuAssembler(c.stores.MenuItems)

	c.controllers = c.controllers[:0]
	for _, kind := range c.kinds.RESTKinds() {
		c.controllers = append(c.controllers, resources.NewPostController(resources.PostControllerConfig{
			Kind:           kind,
			Posts:          c.stores.Posts,
			Resolver:       c.resolver,
			Assembler:      c.postAssembler,
			Permissions:    c.permissions,
			DefaultPerPage: c.Config.API.DefaultPerPage,
		}))
	}

	importerOpts := []fixtures.ImporterOption{fixtures.WithLogger(logging.FixturesLogger(c.loggerProvider))}
	if c.fields != nil {
		importerOpts = append(importerOpts, fixtures.WithFieldValidator(c.fields))
	}
	importer := fixtures.NewImporter(c.stores, c.kinds, importerOpts...)
	c.siteImport = sitecmd.NewImportSiteHandler(importer, logging.FixturesLogger(c.loggerProvider))
	return nil
}

func (c *Container) configureHTTP(context.Context) error {
	apiLogger := logging.APILogger(c.loggerProvider)
	wrap := c.Config.API.WrapSingleItem

	handlers := make([]*apihttp.PostHandler, 0, len(c.controllers))
	for _, controller := range c.controllers {
		handlers = append(handlers, apihttp.NewPostHandler(controller, wrap, apiLogger))
	}
	menuController := resources.NewMenuController(c.stores.Menus, c.resolver, c.menuAssembler, c.permissions)

	if c.Config.Metrics.Enabled {
		c.metrics = apihttp.NewMetrics()
	}

	router, err := apihttp.NewRouter(apihttp.RouterConfig{
		BasePath:       c.Config.API.BasePath,
		Posts:          handlers,
		Menus:          apihttp.NewMenuHandler(menuController, wrap, apiLogger),
		Metrics:        c.metrics,
		MetricsPath:    c.Config.Metrics.Path,
		RequestTimeout: c.Config.Server.RequestTimeout,
		Logger:         apiLogger,
	})
	if err != nil {
		return fmt.Errorf("di: router: %w", err)
	}
	c.handler = router
	return nil
}

// Handler returns the HTTP handler serving the resource API.
func (c *Container) Handler() http.Handler {
	return c.handler
}

// Stores exposes the content store repositories.
func (c *Container) Stores() fixtures.Stores {
	return c.stores
}

// Kinds returns the content kind registry.
func (c *Container) Kinds() *posts.KindRegistry {
	return c.kinds
}

// SiteImporter returns the fixture import command handler.
func (c *Container) SiteImporter() *sitecmd.ImportSiteHandler {
	return c.siteImport
}

// SeedCommand builds the import command for the configured fixtures. The
// boolean is false when no fixture source is configured.
func (c *Container) SeedCommand() (sitecmd.ImportSiteCommand, bool) {
	cmd := sitecmd.ImportSiteCommand{
		ManifestPath: strings.TrimSpace(c.Config.Fixtures.Path),
		ContentDir:   strings.TrimSpace(c.Config.Fixtures.ContentDir),
		Recursive:    true,
	}
	return cmd, cmd.ManifestPath != "" || cmd.ContentDir != ""
}

// Logger returns the module logger for name.
func (c *Container) Logger(module string) interfaces.Logger {
	return logging.ModuleLogger(c.loggerProvider, module)
}

// Close releases the database opened by the container.
func (c *Container) Close() error {
	if c.bunDB == nil || !c.ownsDB {
		return nil
	}
	c.ownsDB = false
	return c.bunDB.Close()
}

func fieldGroups(groups []runtimeconfig.FieldGroupConfig) []customfields.Group {
	out := make([]customfields.Group, 0, len(groups))
	for _, group := range groups {
		fields := make([]customfields.Field, 0, len(group.Fields))
		for _, field := range group.Fields {
			fields = append(fields, customfields.Field{
				Name:     field.Name,
				Type:     field.Type,
				Default:  field.Default,
				Choices:  field.Choices,
				Required: field.Required,
			})
		}
		out = append(out, customfields.Group{Name: group.Name, Kinds: group.Kinds, Fields: fields})
	}
	return out
}
