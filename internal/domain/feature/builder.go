package feature

import "github.com/roviahq/rovia/internal/domain/model"

// Serving-time feature names. The trainer prefixes these with "f_" when it
// flattens them into dataset columns.
const (
	NameRatingNorm        = "rating_norm"
	NameDistanceCloseness = "distance_closeness"
	NameOpenNow           = "open_now"
)

// Builder produces the feature vector for a ranked candidate.
type Builder struct {
	cfg Config
}

// NewBuilder creates a Builder for the given config.
func NewBuilder(cfg Config) *Builder {
	return &Builder{cfg: cfg}
}

// Build returns the three serving-time features. The caller must have
// already computed DistanceKm and Available on the candidate; a negative
// DistanceKm means the distance is unknown and scores as max distance.
func (b *Builder) Build(c model.RankedCandidate) model.FeatureVector {
	distance := c.DistanceKm
	if distance < 0 {
		distance = b.cfg.MaxDistanceKm
	}

	openNow := 0.0
	if c.Available {
		openNow = 1.0
	}

	return model.FeatureVector{
		NameRatingNorm:        MinMax(c.Rating, b.cfg.MinRating, b.cfg.MaxRating),
		NameDistanceCloseness: DistanceCloseness(distance, b.cfg.MaxDistanceKm),
		NameOpenNow:           openNow,
	}
}

// Score computes the canonical rule-based score: the weighted sum of the
// normalized features.
func (b *Builder) Score(features model.FeatureVector) float64 {
	return features[NameRatingNorm]*b.cfg.WeightRating +
		features[NameDistanceCloseness]*b.cfg.WeightDistance +
		features[NameOpenNow]*b.cfg.WeightOpenNow
}
