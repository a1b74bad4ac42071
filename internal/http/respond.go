package http

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/goliatone/go-cms-rest/internal/logging"
	"github.com/goliatone/go-cms-rest/internal/resources"
	"github.com/goliatone/go-cms-rest/pkg/interfaces"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	render.Status(r, status)
	render.JSON(w, r, payload)
}

func writeCollection(w http.ResponseWriter, r *http.Request, docs []resources.Document) {
	if docs == nil {
		docs = []resources.Document{}
	}
	writeJSON(w, r, http.StatusOK, docs)
}

func writeSingle(w http.ResponseWriter, r *http.Request, doc resources.Document, wrap bool) {
	if wrap {
		writeJSON(w, r, http.StatusOK, []resources.Document{doc})
		return
	}
	writeJSON(w, r, http.StatusOK, doc)
}

func writeError(w http.ResponseWriter, r *http.Request, logger interfaces.Logger, err error) {
	reqErr := resources.AsRequestError(err)
	if reqErr.Status >= http.StatusInternalServerError {
		logging.FromContext(r.Context(), logger).Error("api.request.failed", "path", r.URL.Path, "error", err)
	}
	writeJSON(w, r, reqErr.Status, reqErr)
}
