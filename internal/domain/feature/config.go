// Package feature turns candidates into normalized numeric signals for
// scoring and for ML training.
package feature

// Config holds the feature weights and normalization bounds for one ranking
// pass. A Config is immutable once handed to the engine.
type Config struct {
	// Score weights for the normalized additive formula.
	WeightRating   float64 `koanf:"weight_rating"`
	WeightDistance float64 `koanf:"weight_distance"`
	WeightOpenNow  float64 `koanf:"weight_open_now"`

	// Rating normalization bounds.
	MinRating float64 `koanf:"min_rating"`
	MaxRating float64 `koanf:"max_rating"`

	// MaxDistanceKm is where distance closeness reaches zero.
	MaxDistanceKm float64 `koanf:"max_distance_km"`

	// MaxResults caps the ranked list.
	MaxResults int `koanf:"max_results"`
}

// DefaultConfig returns the serving defaults.
func DefaultConfig() Config {
	return Config{
		WeightRating:   2.0,
		WeightDistance: 1.0,
		WeightOpenNow:  0.5,
		MinRating:      0.0,
		MaxRating:      5.0,
		MaxDistanceKm:  25.0,
		MaxResults:     3,
	}
}
