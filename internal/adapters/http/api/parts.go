// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/roviahq/rovia/internal/domain/parts"
)

// PartsHandler handles the spare-parts search and click endpoints.
type PartsHandler struct {
	deps Dependencies
}

// NewPartsHandler creates a new parts handler.
func NewPartsHandler(deps Dependencies) *PartsHandler {
	return &PartsHandler{deps: deps}
}

// partsSearchRequest mirrors the JSON schema for POST /api/parts/search.
// Page defaults to 1 and page_size to the catalog default when omitted.
type partsSearchRequest struct {
	Query    string   `json:"query"`
	Page     int      `json:"page,omitempty"`
	PageSize int      `json:"page_size,omitempty"`
	Category string   `json:"category,omitempty"`
	MinPrice *float64 `json:"min_price,omitempty"`
	MaxPrice *float64 `json:"max_price,omitempty"`
	InStock  *bool    `json:"in_stock,omitempty"`
	UserID   string   `json:"user_id,omitempty"`
}

func (p partsSearchRequest) validate() error {
	switch {
	case strings.TrimSpace(p.Query) == "":
		return fmt.Errorf("%w: missing query", ErrBadRequest)
	case p.Page < 0:
		return fmt.Errorf("%w: page must be at least 1", ErrBadRequest)
	case p.PageSize < 0 || p.PageSize > parts.MaxPageSize:
		return fmt.Errorf("%w: page_size must be between 1 and %d", ErrBadRequest, parts.MaxPageSize)
	}
	if p.MinPrice != nil && *p.MinPrice < 0 {
		return fmt.Errorf("%w: min_price must not be negative", ErrBadRequest)
	}
	if p.MaxPrice != nil && *p.MaxPrice < 0 {
		return fmt.Errorf("%w: max_price must not be negative", ErrBadRequest)
	}
	if p.MinPrice != nil && p.MaxPrice != nil && *p.MinPrice > *p.MaxPrice {
		return fmt.Errorf("%w: min_price exceeds max_price", ErrBadRequest)
	}
	return nil
}

type partsSearchResponse struct {
	RequestID  string             `json:"request_id"`
	Query      string             `json:"query"`
	Page       int                `json:"page"`
	PageSize   int                `json:"page_size"`
	Total      int                `json:"total"`
	TotalPages int                `json:"total_pages"`
	Results    []parts.ScoredPart `json:"results"`
}

// HandleSearch handles POST /api/parts/search requests.
func (h *PartsHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req partsSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: %w", ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	result, err := h.deps.SearchParts(r.Context(), PartsSearchRequest{
		Query:    req.Query,
		Page:     req.Page,
		PageSize: req.PageSize,
		Category: req.Category,
		MinPrice: req.MinPrice,
		MaxPrice: req.MaxPrice,
		InStock:  req.InStock,
		UserID:   req.UserID,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}

	items := result.Page.Items
	if items == nil {
		items = []parts.ScoredPart{}
	}
	writeJSON(w, http.StatusOK, partsSearchResponse{
		RequestID:  result.RequestID,
		Query:      req.Query,
		Page:       result.Page.Page,
		PageSize:   result.Page.PageSize,
		Total:      result.Page.Total,
		TotalPages: result.Page.TotalPages,
		Results:    items,
	})
}

// partsClickRequest mirrors the JSON schema for POST /api/parts/click.
type partsClickRequest struct {
	RequestID string `json:"request_id"`
	PartID    int64  `json:"part_id"`
	Position  *int   `json:"position,omitempty"`
	UserID    string `json:"user_id,omitempty"`
}

func (p partsClickRequest) validate() error {
	switch {
	case strings.TrimSpace(p.RequestID) == "":
		return fmt.Errorf("%w: missing request_id", ErrBadRequest)
	case p.PartID <= 0:
		return fmt.Errorf("%w: missing part_id", ErrBadRequest)
	}
	if p.Position != nil && *p.Position < 0 {
		return fmt.Errorf("%w: position must not be negative", ErrBadRequest)
	}
	return nil
}

// HandleClick handles POST /api/parts/click requests.
func (h *PartsHandler) HandleClick(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req partsClickRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: %w", ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	duplicate, err := h.deps.ClickPart(r.Context(), PartsClickRequest{
		RequestID: req.RequestID,
		PartID:    req.PartID,
		Position:  req.Position,
		UserID:    req.UserID,
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
