// Package ranking computes the ordered candidate list for a request: a
// rule-based pass over geometric and temporal signals, optionally re-scored
// by the learned click model.
package ranking

import (
	"context"
	"math"
	"sort"

	"github.com/roviahq/rovia/internal/domain/availability"
	"github.com/roviahq/rovia/internal/domain/feature"
	"github.com/roviahq/rovia/internal/domain/geo"
	"github.com/roviahq/rovia/internal/domain/model"
)

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithAvailability injects the availability evaluator (tests pin its clock).
func WithAvailability(e *availability.Evaluator) Option {
	return func(eng *Engine) {
		if e != nil {
			eng.avail = e
		}
	}
}

// Engine performs the rule-based ranking pass.
type Engine struct {
	cfg     feature.Config
	builder *feature.Builder
	avail   *availability.Evaluator
}

// NewEngine creates an Engine for the given feature config.
func NewEngine(cfg feature.Config, opts ...Option) *Engine {
	e := &Engine{
		cfg:     cfg,
		builder: feature.NewBuilder(cfg),
		avail:   availability.NewEvaluator(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Rank filters candidates to the requested category, computes the
// request-scoped overlays (distance, availability, features, score), sorts
// by (available desc, score desc) with insertion order as the tie-break,
// and truncates to the configured maximum. The full feature map is returned
// alongside for logging and learned re-ranking. No category match yields an
// empty result, not an error.
func (e *Engine) Rank(
	_ context.Context,
	candidates []model.Candidate,
	userLat, userLng float64,
	category string,
) ([]model.RankedCandidate, map[int64]model.FeatureVector) {
	ranked := make([]model.RankedCandidate, 0, len(candidates))
	features := make(map[int64]model.FeatureVector)

	for _, c := range candidates {
		if c.Category != category {
			continue
		}

		rc := model.RankedCandidate{Candidate: c}
		rc.DistanceKm = roundKm(geo.Distance(userLat, userLng, c.Lat, c.Lng))
		rc.Available, rc.Status = e.avail.Evaluate(c.Open, c.Close, rc.DistanceKm)

		feats := e.builder.Build(rc)
		features[c.ID] = feats
		rc.Score = e.builder.Score(feats)

		ranked = append(ranked, rc)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Available != ranked[j].Available {
			return ranked[i].Available
		}
		return ranked[i].Score > ranked[j].Score
	})

	if e.cfg.MaxResults > 0 && len(ranked) > e.cfg.MaxResults {
		ranked = ranked[:e.cfg.MaxResults]
	}
	return ranked, features
}

// roundKm rounds a distance to two decimals for stable logging and display.
func roundKm(d float64) float64 {
	return math.Round(d*100) / 100
}
