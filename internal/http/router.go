package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"github.com/goliatone/go-cms-rest/internal/logging"
	"github.com/goliatone/go-cms-rest/pkg/interfaces"
)

// MenusBase is the route segment of the menu resource.
const MenusBase = "menus"

var ErrRouteConflict = errors.New("http: route base already registered")

// RouterConfig lists the handlers mounted by NewRouter.
type RouterConfig struct {
	BasePath       string
	Posts          []*PostHandler
	Menus          *MenuHandler
	Metrics        *Metrics
	MetricsPath    string
	RequestTimeout time.Duration
	Logger         interfaces.Logger
}

// NewRouter mounts one sub-router per post handler plus the menu handler
// under cfg.BasePath.
func NewRouter(cfg RouterConfig) (chi.Router, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NoOp()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware)
	}
	if cfg.RequestTimeout > 0 {
		r.Use(middleware.Timeout(cfg.RequestTimeout))
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, map[string]string{"status": "ok"})
	})
	if cfg.Metrics != nil {
		path := strings.TrimSpace(cfg.MetricsPath)
		if path == "" {
			path = "/metrics"
		}
		r.Method(http.MethodGet, path, cfg.Metrics.Handler())
	}

	api := chi.NewRouter()
	api.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusNotFound, map[string]any{
			"code":    "rest_no_route",
			"message": "No route was found matching the URL and request method.",
			"status":  http.StatusNotFound,
		})
	})

	mounted := map[string]struct{}{}
	for _, handler := range cfg.Posts {
		if handler == nil {
			continue
		}
		base := handler.controller.Kind().Base()
		if _, exists := mounted[base]; exists || base == MenusBase {
			return nil, fmt.Errorf("%w: %s", ErrRouteConflict, base)
		}
		mounted[base] = struct{}{}
		api.Mount("/"+base, handler.Routes())
		logger.Debug("api.route.registered", "kind", handler.controller.Kind().Name, "base", base)
	}
	if cfg.Menus != nil {
		api.Mount("/"+MenusBase, cfg.Menus.Routes())
	}

	basePath := "/" + strings.Trim(strings.TrimSpace(cfg.BasePath), "/")
	if basePath == "/" {
		r.Mount("/", api)
	} else {
		r.Mount(basePath, api)
	}
	return r, nil
}
