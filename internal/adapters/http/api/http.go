// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	service "github.com/roviahq/rovia/internal/app"
)

// Request and result shapes are owned by the service layer; the handlers
// only translate JSON to and from them.
type (
	RecommendRequest   = service.RecommendRequest
	RecommendResult    = service.RecommendResult
	ClickRequest       = service.ClickRequest
	PartsSearchRequest = service.PartsSearchRequest
	PartsSearchResult  = service.PartsSearchResult
	PartsClickRequest  = service.PartsClickRequest
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	Recommend(ctx context.Context, req RecommendRequest) (*RecommendResult, error)
	Click(ctx context.Context, req ClickRequest) (bool, error)
	SearchParts(ctx context.Context, req PartsSearchRequest) (*PartsSearchResult, error)
	ClickPart(ctx context.Context, req PartsClickRequest) (bool, error)
	ReloadModel(ctx context.Context) error
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	recommendHandler   *RecommendHandler
	clickHandler       *ClickHandler
	partsHandler       *PartsHandler
	modelReloadHandler *ModelReloadHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:      NewHealthHandler(),
		statsHandler:       NewStatsHandler(statsProvider),
		recommendHandler:   NewRecommendHandler(deps),
		clickHandler:       NewClickHandler(deps),
		partsHandler:       NewPartsHandler(deps),
		modelReloadHandler: NewModelReloadHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/api/recommend", MetricsMiddleware(s.recommendHandler.HandleRecommend, "recommend"))
	mux.HandleFunc("/api/click", MetricsMiddleware(s.clickHandler.HandleClick, "click"))
	mux.HandleFunc("/api/parts/search", MetricsMiddleware(s.partsHandler.HandleSearch, "parts_search"))
	mux.HandleFunc("/api/parts/click", MetricsMiddleware(s.partsHandler.HandleClick, "parts_click"))
	mux.HandleFunc("/api/model/reload", MetricsMiddleware(s.modelReloadHandler.HandleReload, "model_reload"))
}

type statusResponse struct {
	Status string `json:"status"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
