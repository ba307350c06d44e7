// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/roviahq/rovia/internal/adapters/eventlog"
	"github.com/roviahq/rovia/internal/adapters/source"
	"github.com/roviahq/rovia/internal/config"
	"github.com/roviahq/rovia/internal/domain/availability"
	"github.com/roviahq/rovia/internal/domain/dedupe"
	"github.com/roviahq/rovia/internal/domain/model"
	"github.com/roviahq/rovia/internal/domain/parts"
	"github.com/roviahq/rovia/internal/domain/ranking"
	"github.com/roviahq/rovia/internal/mlmodel"
	"github.com/roviahq/rovia/pkg/logger"
	"github.com/roviahq/rovia/pkg/metrics"
)

// Service wires the ranking engine, the learned ranker, the event recorders
// and the spare-parts path behind one API surface.
type Service struct {
	mu sync.RWMutex

	cfg *config.Config

	// Core components
	source        source.Source
	engine        *ranking.Engine
	learned       *ranking.LearnedRanker
	registry      *mlmodel.Registry
	recorder      *eventlog.Recorder
	partsRecorder *eventlog.Recorder
	searcher      *parts.Searcher
	deduper       dedupe.Deduper

	// State
	started        bool
	candidateCount int

	now    func() time.Time
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithConfig sets the process configuration.
func WithConfig(cfg *config.Config) Option {
	return func(s *Service) {
		if cfg != nil {
			s.cfg = cfg
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithSource overrides the candidate source.
func WithSource(src source.Source) Option {
	return func(s *Service) {
		if src != nil {
			s.source = src
		}
	}
}

// WithRecorder overrides the ranking event recorder.
func WithRecorder(r *eventlog.Recorder) Option {
	return func(s *Service) {
		if r != nil {
			s.recorder = r
		}
	}
}

// WithPartsRecorder overrides the spare-parts event recorder.
func WithPartsRecorder(r *eventlog.Recorder) Option {
	return func(s *Service) {
		if r != nil {
			s.partsRecorder = r
		}
	}
}

// WithRegistry overrides the model registry.
func WithRegistry(r *mlmodel.Registry) Option {
	return func(s *Service) {
		if r != nil {
			s.registry = r
		}
	}
}

// WithClock injects the time source for deterministic tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		cfg: config.New(),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes the service components. Components injected via options
// are kept; everything else is built from the configuration.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Named("service")
	}

	s.logger.Info(ctx, "starting ranking service...")

	if s.source == nil {
		if s.cfg.CatalogPath != "" {
			src, err := source.NewYAMLSource(s.cfg.CatalogPath)
			if err != nil {
				return fmt.Errorf("load catalog: %w", err)
			}
			s.source = src
			s.logger.Info(ctx, "using yaml catalog", logger.String("path", s.cfg.CatalogPath))
		} else {
			s.source = source.NewStaticSource()
			s.logger.Info(ctx, "using built-in catalog")
		}
	}
	candidates, err := s.source.Candidates(ctx)
	if err != nil {
		return fmt.Errorf("probe candidate source: %w", err)
	}
	s.candidateCount = len(candidates)

	s.engine = ranking.NewEngine(s.cfg.Ranking,
		ranking.WithAvailability(availability.NewEvaluator(availability.WithClock(s.now))),
	)

	if s.registry == nil {
		s.registry = mlmodel.NewRegistry(s.cfg.ModelPath)
	}
	s.learned = ranking.NewLearnedRanker(s.registry)

	if s.recorder == nil {
		r, err := eventlog.NewRecorder(s.cfg.EventLogPath, eventlog.WithClock(s.now))
		if err != nil {
			return fmt.Errorf("open event log: %w", err)
		}
		s.recorder = r
	}
	if s.partsRecorder == nil {
		r, err := eventlog.NewRecorder(s.cfg.PartsLogPath, eventlog.WithClock(s.now))
		if err != nil {
			return fmt.Errorf("open parts log: %w", err)
		}
		s.partsRecorder = r
	}

	s.searcher = parts.NewSearcher(parts.DefaultCatalog())
	s.deduper = dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(s.cfg.DedupeSize))

	s.started = true
	s.logger.Info(ctx, "ranking service started",
		logger.Int("candidates", s.candidateCount),
		logger.Int("partsCatalog", s.searcher.CatalogSize()),
		logger.String("modelState", s.registry.State()),
	)
	return nil
}

// Stop closes the event recorders.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx := context.Background()
	s.logger.Info(ctx, "stopping ranking service...")
	if err := s.recorder.Close(); err != nil {
		s.logger.Error(ctx, "closing event log", logger.Error(err))
	}
	if err := s.partsRecorder.Close(); err != nil {
		s.logger.Error(ctx, "closing parts log", logger.Error(err))
	}
	s.started = false
	s.logger.Info(ctx, "ranking service stopped")
}

// RecommendRequest carries one ranking request. Nil coordinates fall back to
// the configured home location.
type RecommendRequest struct {
	Category string
	Lat      *float64
	Lng      *float64
	UserID   string
	Learned  bool
}

// RecommendResult is the ranked answer plus the request identity that later
// click posts must echo.
type RecommendResult struct {
	RequestID       string
	Mode            model.RankMode
	Recommendations []model.RankedCandidate
}

// Recommend ranks candidates for the request, optionally re-scores them with
// the learned model, and logs the impression. A failed impression append
// fails the whole request: an unlogged impression would starve the training
// loop invisibly.
func (s *Service) Recommend(ctx context.Context, req RecommendRequest) (*RecommendResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.started {
		return nil, ErrNotStarted
	}

	lat, lng := s.cfg.HomeLat, s.cfg.HomeLng
	if req.Lat != nil {
		lat = *req.Lat
	}
	if req.Lng != nil {
		lng = *req.Lng
	}

	candidates, err := s.source.Candidates(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch candidates: %w", err)
	}

	start := time.Now()
	ranked, features := s.engine.Rank(ctx, candidates, lat, lng, req.Category)
	metrics.RecordRankingLatency(float64(time.Since(start).Milliseconds()))
	metrics.RecordCandidatesRanked(len(ranked))
	if len(ranked) == 0 {
		metrics.RecordEmptyResult()
	}

	now := s.now().UTC()
	mode := model.ModeRuleBased
	if req.Learned {
		scores, err := s.learned.Score(ctx, ranked, features, now.Hour(), mondayIndexed(now.Weekday()))
		switch {
		case err == nil:
			ranking.ApplyLearnedScores(ranked, scores)
			mode = model.ModeLearned
		case errors.Is(err, mlmodel.ErrNoModel):
			// No artifact trained yet; rule order is the honest answer.
		default:
			mode = model.ModeLearnedFallback
			metrics.RecordInferenceFallback()
			s.logger.Warn(ctx, "learned scoring failed, serving rule order",
				logger.Error(err))
		}
	}
	metrics.RecordRequestMode(string(mode))

	reqCtx := model.RequestContext{
		RequestID:   uuid.NewString(),
		Category:    req.Category,
		UserLat:     lat,
		UserLng:     lng,
		UserID:      req.UserID,
		RequestTime: now,
		Mode:        mode,
	}
	if err := s.recorder.LogImpression(ctx, reqCtx, ranked, features); err != nil {
		return nil, fmt.Errorf("log impression: %w", err)
	}

	return &RecommendResult{
		RequestID:       reqCtx.RequestID,
		Mode:            mode,
		Recommendations: ranked,
	}, nil
}

// ClickRequest echoes a recommendation back with the clicked candidate.
type ClickRequest struct {
	RequestID   string
	Category    string
	Lat         float64
	Lng         float64
	CandidateID int64
	Position    *int
	UserID      string
}

// Click logs one engagement. Returns duplicate=true without logging when the
// (request, candidate) pair was already recorded. A failed append releases
// the idempotency key so the client may retry.
func (s *Service) Click(ctx context.Context, req ClickRequest) (duplicate bool, err error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.started {
		return false, ErrNotStarted
	}

	key := dedupe.ClickKey(req.RequestID, req.CandidateID)
	if s.deduper.SeenAndRecord(ctx, key) {
		metrics.RecordDuplicateClick()
		return true, nil
	}

	reqCtx := model.RequestContext{
		RequestID:   req.RequestID,
		Category:    req.Category,
		UserLat:     req.Lat,
		UserLng:     req.Lng,
		UserID:      req.UserID,
		RequestTime: s.now().UTC(),
	}
	if err := s.recorder.LogClick(ctx, reqCtx, req.CandidateID, req.Position); err != nil {
		s.deduper.Unrecord(ctx, key)
		return false, fmt.Errorf("log click: %w", err)
	}
	return false, nil
}

// PartsSearchRequest carries one spare-parts search.
type PartsSearchRequest struct {
	Query    string
	Page     int
	PageSize int
	Category string
	MinPrice *float64
	MaxPrice *float64
	InStock  *bool
	UserID   string
}

// PartsSearchResult is one page of matches plus the request identity.
type PartsSearchResult struct {
	RequestID string
	Page      parts.Page
}

// SearchParts runs the light path: keyword match, filters, pagination, and
// an impression append covering exactly the page served.
func (s *Service) SearchParts(ctx context.Context, req PartsSearchRequest) (*PartsSearchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.started {
		return nil, ErrNotStarted
	}

	matches := s.searcher.Search(ctx, req.Query)
	filtered := parts.Filters{
		Category: req.Category,
		MinPrice: req.MinPrice,
		MaxPrice: req.MaxPrice,
		InStock:  req.InStock,
	}.Apply(matches)
	page := parts.Paginate(filtered, req.Page, req.PageSize)
	metrics.RecordPartsSearch()

	reqCtx := model.RequestContext{
		RequestID:   uuid.NewString(),
		Category:    req.Category,
		UserID:      req.UserID,
		RequestTime: s.now().UTC(),
	}
	shown := make([]eventlog.PartRecord, len(page.Items))
	for i, p := range page.Items {
		shown[i] = eventlog.PartRecord{
			PartID:   p.ID,
			Position: (page.Page-1)*page.PageSize + i,
			Brand:    p.Brand,
			Category: p.Category,
			Price:    p.Price,
		}
	}
	if err := s.partsRecorder.LogPartsImpression(ctx, reqCtx, req.Query, shown); err != nil {
		return nil, fmt.Errorf("log parts impression: %w", err)
	}

	return &PartsSearchResult{RequestID: reqCtx.RequestID, Page: page}, nil
}

// PartsClickRequest echoes a parts search back with the clicked part.
type PartsClickRequest struct {
	RequestID string
	PartID    int64
	Position  *int
	UserID    string
}

// ClickPart logs one spare-parts engagement with the same idempotency rule
// as the ranking path.
func (s *Service) ClickPart(ctx context.Context, req PartsClickRequest) (duplicate bool, err error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.started {
		return false, ErrNotStarted
	}

	key := dedupe.ClickKey("parts:"+req.RequestID, req.PartID)
	if s.deduper.SeenAndRecord(ctx, key) {
		metrics.RecordDuplicateClick()
		return true, nil
	}

	reqCtx := model.RequestContext{
		RequestID:   req.RequestID,
		UserID:      req.UserID,
		RequestTime: s.now().UTC(),
	}
	if err := s.partsRecorder.LogPartsClick(ctx, reqCtx, req.PartID, req.Position); err != nil {
		s.deduper.Unrecord(ctx, key)
		return false, fmt.Errorf("log parts click: %w", err)
	}
	return false, nil
}

// ReloadModel re-reads the model artifact from disk. This is the only way a
// running process picks up a newly trained model.
func (s *Service) ReloadModel(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.started {
		return ErrNotStarted
	}
	return s.registry.Reload(ctx)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started": s.started,
	}
	if s.started {
		stats["candidates"] = s.candidateCount
		stats["parts_catalog"] = s.searcher.CatalogSize()
		stats["model_state"] = s.registry.State()
		stats["dedupe_entries"] = s.deduper.Size()
	}
	return stats
}

// mondayIndexed maps Go's Sunday-first weekday to Monday=0..Sunday=6, the
// convention the training columns use.
func mondayIndexed(d time.Weekday) int {
	return (int(d) + 6) % 7
}
