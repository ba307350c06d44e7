// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"errors"
	"net/http"

	"github.com/roviahq/rovia/internal/mlmodel"
)

// ModelReloadHandler triggers an explicit model artifact reload, the only
// way a running process picks up a newly trained model.
type ModelReloadHandler struct {
	deps Dependencies
}

// NewModelReloadHandler creates a new model reload handler.
func NewModelReloadHandler(deps Dependencies) *ModelReloadHandler {
	return &ModelReloadHandler{deps: deps}
}

// HandleReload handles POST /api/model/reload requests.
func (h *ModelReloadHandler) HandleReload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	if err := h.deps.ReloadModel(r.Context()); err != nil {
		if errors.Is(err, mlmodel.ErrNoModel) {
			writeError(w, http.StatusNotFound, "no_model", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Status: "reloaded"})
}
