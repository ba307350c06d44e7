// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/roviahq/rovia/internal/domain/model"
)

// RecommendHandler handles ranking requests.
type RecommendHandler struct {
	deps Dependencies
}

// NewRecommendHandler creates a new recommend handler.
func NewRecommendHandler(deps Dependencies) *RecommendHandler {
	return &RecommendHandler{deps: deps}
}

// recommendRequest mirrors the JSON schema for POST /api/recommend.
type recommendRequest struct {
	Category string   `json:"category"`
	Lat      *float64 `json:"lat,omitempty"`
	Lng      *float64 `json:"lng,omitempty"`
	UserID   string   `json:"user_id,omitempty"`
	Learned  bool     `json:"learned,omitempty"`
}

func (r recommendRequest) validate() error {
	if strings.TrimSpace(r.Category) == "" {
		return fmt.Errorf("%w: missing category", ErrBadRequest)
	}
	if r.Lat != nil && (*r.Lat < -90 || *r.Lat > 90) {
		return fmt.Errorf("%w: lat out of range", ErrBadRequest)
	}
	if r.Lng != nil && (*r.Lng < -180 || *r.Lng > 180) {
		return fmt.Errorf("%w: lng out of range", ErrBadRequest)
	}
	if (r.Lat == nil) != (r.Lng == nil) {
		return fmt.Errorf("%w: lat and lng must be set together", ErrBadRequest)
	}
	return nil
}

type recommendResponse struct {
	RequestID       string                  `json:"request_id"`
	Mode            model.RankMode          `json:"mode"`
	Recommendations []model.RankedCandidate `json:"recommendations"`
}

// HandleRecommend handles POST /api/recommend requests.
func (h *RecommendHandler) HandleRecommend(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req recommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: %w", ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	result, err := h.deps.Recommend(r.Context(), RecommendRequest{
		Category: req.Category,
		Lat:      req.Lat,
		Lng:      req.Lng,
		UserID:   req.UserID,
		Learned:  req.Learned,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}

	recommendations := result.Recommendations
	if recommendations == nil {
		recommendations = []model.RankedCandidate{}
	}
	writeJSON(w, http.StatusOK, recommendResponse{
		RequestID:       result.RequestID,
		Mode:            result.Mode,
		Recommendations: recommendations,
	})
}
