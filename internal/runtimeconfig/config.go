package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrAPIBasePathInvalid = errors.New("cms config: api base path must start with /")
var ErrDefaultPerPageInvalid = errors.New("cms config: api default per page must be positive")
var ErrStorageProviderUnknown = errors.New("cms config: storage provider is invalid")
var ErrStorageDSNRequired = errors.New("cms config: storage dsn is required for database providers")
var ErrSiteBaseURLRequired = errors.New("cms config: site base url is required")
var ErrKindNameRequired = errors.New("cms config: content kind name is required")
var ErrKindDuplicate = errors.New("cms config: content kind declared twice")
var ErrLocationKeyRequired = errors.New("cms config: menu location key is required")
var ErrImageSizeInvalid = errors.New("cms config: image size is invalid")
var ErrFieldTypeUnknown = errors.New("cms config: custom field type is invalid")
var ErrLoggingLevelInvalid = errors.New("cms config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("cms config: logging format is invalid")

// Config aggregates the settings for the resource API process. Values are
// loaded from YAML and overridden by environment variables.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	API        APIConfig        `yaml:"api"`
	Storage    StorageConfig    `yaml:"storage"`
	Site       SiteConfig       `yaml:"site"`
	Kinds      []KindConfig     `yaml:"kinds"`
	Menus      MenusConfig      `yaml:"menus"`
	Media      MediaConfig      `yaml:"media"`
	Permalinks PermalinksConfig `yaml:"permalinks"`
	Enrichment EnrichmentConfig `yaml:"enrichment"`
	Fixtures   FixturesConfig   `yaml:"fixtures"`
	Logging    LoggingConfig    `yaml:"logging"`
	Metrics    MetricsConfig    `yaml:"metrics"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr            string        `yaml:"addr" env:"CMS_SERVER_ADDR"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"CMS_SERVER_READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"CMS_SERVER_WRITE_TIMEOUT"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env:"CMS_SERVER_IDLE_TIMEOUT"`
	RequestTimeout  time.Duration `yaml:"request_timeout" env:"CMS_SERVER_REQUEST_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"CMS_SERVER_SHUTDOWN_TIMEOUT"`
}

// APIConfig shapes the exposed resource surface.
type APIConfig struct {
	BasePath       string `yaml:"base_path" env:"CMS_API_BASE_PATH"`
	DefaultPerPage int    `yaml:"default_per_page" env:"CMS_API_DEFAULT_PER_PAGE"`
	// WrapSingleItem emits single-item responses as one-element arrays.
	WrapSingleItem bool `yaml:"wrap_single_item" env:"CMS_API_WRAP_SINGLE_ITEM"`
	// Permissions lists granted "resource:action" tokens. Empty allows every read.
	Permissions []string `yaml:"permissions" env:"CMS_API_PERMISSIONS" env-separator:","`
}

// StorageConfig selects the content store backend.
type StorageConfig struct {
	Provider string `yaml:"provider" env:"CMS_STORAGE_PROVIDER"`
	DSN      string `yaml:"dsn" env:"CMS_STORAGE_DSN"`
}

// SiteConfig carries site-wide values used by permalinks and SEO titles.
type SiteConfig struct {
	Name           string `yaml:"name" env:"CMS_SITE_NAME"`
	Description    string `yaml:"description" env:"CMS_SITE_DESCRIPTION"`
	BaseURL        string `yaml:"base_url" env:"CMS_SITE_BASE_URL"`
	TitleSeparator string `yaml:"title_separator" env:"CMS_SITE_TITLE_SEPARATOR"`
}

// KindConfig declares an additional content kind.
type KindConfig struct {
	Name       string   `yaml:"name"`
	Label      string   `yaml:"label"`
	RestBase   string   `yaml:"rest_base"`
	ShowInREST bool     `yaml:"show_in_rest"`
	Supports   []string `yaml:"supports"`
}

// MenusConfig lists the layout slots menus can be assigned to.
type MenusConfig struct {
	Locations []LocationConfig `yaml:"locations"`
}

// LocationConfig describes one registered menu location.
type LocationConfig struct {
	Key         string `yaml:"key"`
	Description string `yaml:"description"`
}

// MediaConfig lists the registered intermediate image sizes.
type MediaConfig struct {
	Sizes []ImageSizeConfig `yaml:"sizes"`
}

// ImageSizeConfig describes one intermediate image size.
type ImageSizeConfig struct {
	Name   string `yaml:"name"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Crop   bool   `yaml:"crop"`
}

// PermalinksConfig maps content kinds to their public route templates,
// e.g. "page": "/:slug".
type PermalinksConfig struct {
	Routes map[string]string `yaml:"routes"`
}

// EnrichmentConfig toggles the optional enrichment subsystems.
type EnrichmentConfig struct {
	SEO          SEOConfig          `yaml:"seo"`
	CustomFields CustomFieldsConfig `yaml:"custom_fields"`
}

// SEOConfig configures the SEO metadata provider.
type SEOConfig struct {
	Enabled       bool              `yaml:"enabled" env:"CMS_SEO_ENABLED"`
	TitleTemplate string            `yaml:"title_template" env:"CMS_SEO_TITLE_TEMPLATE"`
	KindTemplates map[string]string `yaml:"kind_templates"`
}

// CustomFieldsConfig declares custom field groups attached to content kinds.
type CustomFieldsConfig struct {
	Enabled bool               `yaml:"enabled" env:"CMS_CUSTOM_FIELDS_ENABLED"`
	Groups  []FieldGroupConfig `yaml:"groups"`
}

// FieldGroupConfig is a named set of fields shared by one or more kinds.
type FieldGroupConfig struct {
	Name   string        `yaml:"name"`
	Kinds  []string      `yaml:"kinds"`
	Fields []FieldConfig `yaml:"fields"`
}

// FieldConfig declares one custom field.
type FieldConfig struct {
	Name     string   `yaml:"name"`
	Type     string   `yaml:"type"`
	Default  any      `yaml:"default"`
	Choices  []string `yaml:"choices"`
	Required bool     `yaml:"required"`
}

// FixturesConfig points at the site seed data loaded at startup.
type FixturesConfig struct {
	Path       string `yaml:"path" env:"CMS_FIXTURES_PATH"`
	ContentDir string `yaml:"content_dir" env:"CMS_FIXTURES_CONTENT_DIR"`
}

// LoggingConfig captures go-logger options.
type LoggingConfig struct {
	Level     string   `yaml:"level" env:"CMS_LOG_LEVEL"`
	Format    string   `yaml:"format" env:"CMS_LOG_FORMAT"`
	AddSource bool     `yaml:"add_source" env:"CMS_LOG_ADD_SOURCE"`
	Focus     []string `yaml:"focus" env:"CMS_LOG_FOCUS" env-separator:","`
}

// MetricsConfig toggles the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" env:"CMS_METRICS_ENABLED"`
	Path    string `yaml:"path" env:"CMS_METRICS_PATH"`
}

// DefaultConfig returns defaults that serve an in-memory site under /iwp/v1.
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			RequestTimeout:  30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		API: APIConfig{
			BasePath:       "/iwp/v1",
			DefaultPerPage: 10,
		},
		Storage: StorageConfig{
			Provider: "memory",
		},
		Site: SiteConfig{
			Name:           "My Site",
			BaseURL:        "http://localhost:8080",
			TitleSeparator: "-",
		},
		Menus: MenusConfig{
			Locations: []LocationConfig{
				{Key: "primary", Description: "Primary navigation"},
				{Key: "footer", Description: "Footer navigation"},
			},
		},
		Media: MediaConfig{
			Sizes: []ImageSizeConfig{
				{Name: "thumbnail", Width: 150, Height: 150, Crop: true},
				{Name: "medium", Width: 300, Height: 300},
				{Name: "medium_large", Width: 768, Height: 0},
				{Name: "large", Width: 1024, Height: 1024},
			},
		},
		Permalinks: PermalinksConfig{
			Routes: map[string]string{},
		},
		Enrichment: EnrichmentConfig{
			SEO: SEOConfig{
				TitleTemplate: "%%title%% %%sep%% %%sitename%%",
				KindTemplates: map[string]string{},
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Metrics: MetricsConfig{
			Path: "/metrics",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if !strings.HasPrefix(strings.TrimSpace(cfg.API.BasePath), "/") {
		return fmt.Errorf("%w: %q", ErrAPIBasePathInvalid, cfg.API.BasePath)
	}
	if cfg.API.DefaultPerPage <= 0 {
		return ErrDefaultPerPageInvalid
	}

	switch provider := normalize(cfg.Storage.Provider); provider {
	case "memory":
	case "sqlite", "postgres":
		if strings.TrimSpace(cfg.Storage.DSN) == "" {
			return fmt.Errorf("%w: %s", ErrStorageDSNRequired, provider)
		}
	default:
		return fmt.Errorf("%w: %s", ErrStorageProviderUnknown, cfg.Storage.Provider)
	}

	if strings.TrimSpace(cfg.Site.BaseURL) == "" {
		return ErrSiteBaseURLRequired
	}

	seen := map[string]struct{}{}
	for _, kind := range cfg.Kinds {
		name := normalize(kind.Name)
		if name == "" {
			return ErrKindNameRequired
		}
		if _, ok := seen[name]; ok {
			return fmt.Errorf("%w: %s", ErrKindDuplicate, name)
		}
		seen[name] = struct{}{}
	}

	for _, location := range cfg.Menus.Locations {
		if strings.TrimSpace(location.Key) == "" {
			return ErrLocationKeyRequired
		}
	}

	for _, size := range cfg.Media.Sizes {
		name := normalize(size.Name)
		if name == "" || name == "full" {
			return fmt.Errorf("%w: name %q", ErrImageSizeInvalid, size.Name)
		}
		if size.Width < 0 || size.Height < 0 || (size.Width == 0 && size.Height == 0) {
			return fmt.Errorf("%w: %s dimensions", ErrImageSizeInvalid, size.Name)
		}
	}

	for _, group := range cfg.Enrichment.CustomFields.Groups {
		for _, field := range group.Fields {
			if !IsSupportedFieldType(field.Type) {
				return fmt.Errorf("%w: %s.%s (%s)", ErrFieldTypeUnknown, group.Name, field.Name, field.Type)
			}
		}
	}

	if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
		return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
	}
	return nil
}

// IsSupportedFieldType reports whether a custom field type can be coerced.
func IsSupportedFieldType(fieldType string) bool {
	switch normalize(fieldType) {
	case "text", "textarea", "number", "true_false", "select", "json", "image":
		return true
	default:
		return false
	}
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func isSupportedLevel(level string) bool {
	switch normalize(level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch normalize(format) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
