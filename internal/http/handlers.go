package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/goliatone/go-cms-rest/internal/logging"
	"github.com/goliatone/go-cms-rest/internal/resources"
	"github.com/goliatone/go-cms-rest/pkg/interfaces"
)

// PostHandler binds a post controller to its routes.
type PostHandler struct {
	controller *resources.PostController
	wrapSingle bool
	logger     interfaces.Logger
}

// NewPostHandler constructs a handler. When wrapSingle is set single items
// are returned as one-element arrays.
func NewPostHandler(controller *resources.PostController, wrapSingle bool, logger interfaces.Logger) *PostHandler {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &PostHandler{controller: controller, wrapSingle: wrapSingle, logger: logger}
}

// Routes returns the kind's sub-router.
func (h *PostHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Get("/{id:[0-9]+}", h.GetByID)
	r.Get("/{slug}", h.GetBySlug)
	return r
}

func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	params, err := parseListParams(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	docs, err := h.controller.List(r.Context(), params)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeCollection(w, r, docs)
}

func (h *PostHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	h.get(w, r, resources.ItemParams{ID: id})
}

func (h *PostHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	h.get(w, r, resources.ItemParams{Slug: stringParam(r, "slug")})
}

func (h *PostHandler) get(w http.ResponseWriter, r *http.Request, params resources.ItemParams) {
	doc, err := h.controller.Get(r.Context(), params)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeSingle(w, r, doc, h.wrapSingle)
}

// MenuHandler binds the menu controller to its routes.
type MenuHandler struct {
	controller *resources.MenuController
	wrapSingle bool
	logger     interfaces.Logger
}

// NewMenuHandler constructs a menu handler.
func NewMenuHandler(controller *resources.MenuController, wrapSingle bool, logger interfaces.Logger) *MenuHandler {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &MenuHandler{controller: controller, wrapSingle: wrapSingle, logger: logger}
}

// Routes returns the menu sub-router.
func (h *MenuHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Get("/{id:[0-9]+}", h.GetByID)
	r.Get("/{location}", h.GetByLocation)
	return r
}

func (h *MenuHandler) List(w http.ResponseWriter, r *http.Request) {
	docs, err := h.controller.List(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeCollection(w, r, docs)
}

func (h *MenuHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	h.get(w, r, resources.MenuParams{ID: id})
}

func (h *MenuHandler) GetByLocation(w http.ResponseWriter, r *http.Request) {
	h.get(w, r, resources.MenuParams{Location: stringParam(r, "location")})
}

func (h *MenuHandler) get(w http.ResponseWriter, r *http.Request, params resources.MenuParams) {
	doc, err := h.controller.Get(r.Context(), params)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeSingle(w, r, doc, h.wrapSingle)
}
