package ranking

import (
	"context"
	"fmt"
	"sort"

	"github.com/roviahq/rovia/internal/domain/feature"
	"github.com/roviahq/rovia/internal/domain/model"
	"github.com/roviahq/rovia/internal/mlmodel"
)

// LearnedRanker re-scores ranked candidates with the trained click model.
// All failures surface as errors at this boundary; the caller's contract is
// that any error degrades to the rule-based order. The learned subsystem
// must never fail a request.
type LearnedRanker struct {
	registry *mlmodel.Registry
}

// NewLearnedRanker creates a LearnedRanker backed by the given registry.
func NewLearnedRanker(registry *mlmodel.Registry) *LearnedRanker {
	return &LearnedRanker{registry: registry}
}

// Score returns a candidate-id to click-probability mapping. Rows combine
// the serving-time features with hour-of-day and day-of-week; position is
// pinned to 0 since candidates are scored before final ordering. Rows are
// assembled in the artifact's exact feature-column order. Returns
// mlmodel.ErrNoModel when no artifact is available.
func (r *LearnedRanker) Score(
	ctx context.Context,
	ranked []model.RankedCandidate,
	features map[int64]model.FeatureVector,
	hour, dayOfWeek int,
) (map[int64]float64, error) {
	artifact, ok := r.registry.Artifact(ctx)
	if !ok {
		return nil, mlmodel.ErrNoModel
	}

	scores := make(map[int64]float64, len(ranked))
	for _, c := range ranked {
		feats := features[c.ID]
		known := map[string]float64{
			"f_" + feature.NameRatingNorm:        feats[feature.NameRatingNorm],
			"f_" + feature.NameDistanceCloseness: feats[feature.NameDistanceCloseness],
			"f_" + feature.NameOpenNow:           feats[feature.NameOpenNow],
			"position":                           0,
			"hour":                               float64(hour),
			"dayofweek":                          float64(dayOfWeek),
		}

		row := make(map[string]float64, len(artifact.FeatureCols))
		for _, col := range artifact.FeatureCols {
			v, ok := known[col]
			if !ok {
				return nil, fmt.Errorf("%w: %s", mlmodel.ErrMissingColumn, col)
			}
			row[col] = v
		}
		scores[c.ID] = artifact.Model.Predict(row)
	}
	return scores, nil
}

// ApplyLearnedScores attaches the learned scores to the candidates and
// re-sorts by (available desc, learned score desc). Availability dominates
// the sort key in both serving modes. Candidates without a score sort as 0.
func ApplyLearnedScores(ranked []model.RankedCandidate, scores map[int64]float64) {
	for i := range ranked {
		s := scores[ranked[i].ID]
		ranked[i].LearnedScore = &s
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Available != ranked[j].Available {
			return ranked[i].Available
		}
		return *ranked[i].LearnedScore > *ranked[j].LearnedScore
	})
}
