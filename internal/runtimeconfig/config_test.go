package runtimeconfig_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/goliatone/go-cms-rest/internal/runtimeconfig"
)

func TestDefaultConfigValidates(t *testing.T) {
	if err := runtimeconfig.DefaultConfig().Validate(); err != nil {
		t.Fatalf("Validate() returned unexpected error: %v", err)
	}
}

func TestConfigValidate_RequiresDSNForDatabaseProviders(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Storage.Provider = "sqlite"
	cfg.Storage.DSN = " "

	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrStorageDSNRequired) {
		t.Fatalf("expected ErrStorageDSNRequired, got %v", err)
	}
}

func TestConfigValidate_RejectsUnknownStorageProvider(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Storage.Provider = "mongo"

	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrStorageProviderUnknown) {
		t.Fatalf("expected ErrStorageProviderUnknown, got %v", err)
	}
}

func TestConfigValidate_RejectsRelativeBasePath(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.API.BasePath = "iwp/v1"

	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrAPIBasePathInvalid) {
		t.Fatalf("expected ErrAPIBasePathInvalid, got %v", err)
	}
}

func TestConfigValidate_RejectsDuplicateKinds(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Kinds = []runtimeconfig.KindConfig{{Name: "event"}, {Name: "Event"}}

	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrKindDuplicate) {
		t.Fatalf("expected ErrKindDuplicate, got %v", err)
	}
}

func TestConfigValidate_ReservesFullImageSize(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Media.Sizes = append(cfg.Media.Sizes, runtimeconfig.ImageSizeConfig{Name: "full", Width: 10, Height: 10})

	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrImageSizeInvalid) {
		t.Fatalf("expected ErrImageSizeInvalid, got %v", err)
	}
}

func TestConfigValidate_RejectsUnknownFieldType(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Enrichment.CustomFields.Groups = []runtimeconfig.FieldGroupConfig{{
		Name:   "hero",
		Fields: []runtimeconfig.FieldConfig{{Name: "colour", Type: "color_picker"}},
	}}

	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrFieldTypeUnknown) {
		t.Fatalf("expected ErrFieldTypeUnknown, got %v", err)
	}
}

func TestConfigValidate_RejectsInvalidLoggingFormat(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Logging.Format = "xml"

	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrLoggingFormatInvalid) {
		t.Fatalf("expected ErrLoggingFormatInvalid, got %v", err)
	}
}

func TestLoadMergesFileOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := `
api:
  base_path: /content/v2
  wrap_single_item: true
site:
  name: Field Notes
  base_url: https://example.com
server:
  read_timeout: 3s
kinds:
  - name: event
    rest_base: events
    show_in_rest: true
    supports: [comments]
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := runtimeconfig.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.API.BasePath != "/content/v2" || !cfg.API.WrapSingleItem {
		t.Fatalf("unexpected api config %+v", cfg.API)
	}
	if cfg.API.DefaultPerPage != 10 {
		t.Fatalf("expected default per page to survive, got %d", cfg.API.DefaultPerPage)
	}
	if cfg.Server.ReadTimeout != 3*time.Second {
		t.Fatalf("expected read timeout 3s, got %s", cfg.Server.ReadTimeout)
	}
	if len(cfg.Kinds) != 1 || cfg.Kinds[0].RestBase != "events" {
		t.Fatalf("unexpected kinds %+v", cfg.Kinds)
	}
}

func TestLoadAppliesEnvironmentOverrides(t *testing.T) {
	t.Setenv("CMS_SITE_NAME", "From Env")
	t.Setenv("CMS_API_DEFAULT_PER_PAGE", "25")

	cfg, err := runtimeconfig.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Site.Name != "From Env" || cfg.API.DefaultPerPage != 25 {
		t.Fatalf("expected env overrides, got site=%q per_page=%d", cfg.Site.Name, cfg.API.DefaultPerPage)
	}
}
