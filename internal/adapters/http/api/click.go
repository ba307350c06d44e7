// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// ClickHandler handles engagement posts for served recommendations.
type ClickHandler struct {
	deps Dependencies
}

// NewClickHandler creates a new click handler.
func NewClickHandler(deps Dependencies) *ClickHandler {
	return &ClickHandler{deps: deps}
}

// clickRequest mirrors the JSON schema for POST /api/click.
type clickRequest struct {
	RequestID   string  `json:"request_id"`
	Category    string  `json:"category"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	CandidateID int64   `json:"candidate_id"`
	Position    *int    `json:"position,omitempty"`
	UserID      string  `json:"user_id,omitempty"`
}

func (c clickRequest) validate() error {
	switch {
	case strings.TrimSpace(c.RequestID) == "":
		return fmt.Errorf("%w: missing request_id", ErrBadRequest)
	case strings.TrimSpace(c.Category) == "":
		return fmt.Errorf("%w: missing category", ErrBadRequest)
	case c.CandidateID <= 0:
		return fmt.Errorf("%w: missing candidate_id", ErrBadRequest)
	case c.Lat < -90 || c.Lat > 90:
		return fmt.Errorf("%w: lat out of range", ErrBadRequest)
	case c.Lng < -180 || c.Lng > 180:
		return fmt.Errorf("%w: lng out of range", ErrBadRequest)
	}
	if c.Position != nil && *c.Position < 0 {
		return fmt.Errorf("%w: position must not be negative", ErrBadRequest)
	}
	return nil
}

// HandleClick handles POST /api/click requests.
func (h *ClickHandler) HandleClick(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req clickRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: %w", ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	duplicate, err := h.deps.Click(r.Context(), ClickRequest{
		RequestID:   req.RequestID,
		Category:    req.Category,
		Lat:         req.Lat,
		Lng:         req.Lng,
		CandidateID: req.CandidateID,
		Position:    req.Position,
		UserID:      req.UserID,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", fmt.Errorf("%w: %w", ErrLogAppend, err))
		return
	}
	if duplicate {
		writeJSON(w, http.StatusOK, statusResponse{Status: "duplicate"})
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Status: "ok"})
}
