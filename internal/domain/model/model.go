// Package model contains domain models passed between layers.
package model

import "time"

// Candidate is a service entity that can be ranked for a request.
// Master data only; request-scoped computations live on RankedCandidate.
type Candidate struct {
	ID       int64   `json:"id" yaml:"id"`
	Name     string  `json:"name" yaml:"name"`
	Category string  `json:"category" yaml:"category"`
	Lat      float64 `json:"lat" yaml:"lat"`
	Lng      float64 `json:"lng" yaml:"lng"`
	Rating   float64 `json:"rating" yaml:"rating"`
	Open     string  `json:"open" yaml:"open"`   // opening time-of-day, "HH:MM"
	Close    string  `json:"close" yaml:"close"` // closing time-of-day, "HH:MM"
}

// AvailabilityStatus describes whether a candidate can be reached in time.
type AvailabilityStatus string

const (
	StatusOpen        AvailabilityStatus = "open"
	StatusClosed      AvailabilityStatus = "closed"
	StatusClosingSoon AvailabilityStatus = "closing_soon"
)

// RankedCandidate overlays one Candidate with the attributes computed for a
// single request. Overlays are never shared across requests.
type RankedCandidate struct {
	Candidate

	DistanceKm   float64            `json:"distance_km"`
	Available    bool               `json:"is_available"`
	Status       AvailabilityStatus `json:"status"`
	Score        float64            `json:"score"`
	LearnedScore *float64           `json:"learned_score,omitempty"`
}

// FeatureVector maps feature names to values. Serving-time features are
// normalized to [0,1]; training adds unbounded derived columns.
type FeatureVector map[string]float64

// RankMode records which scoring path produced a response.
type RankMode string

const (
	ModeRuleBased       RankMode = "rule_based"
	ModeLearned         RankMode = "learned"
	ModeLearnedFallback RankMode = "learned_fallback"
)

// RequestContext identifies one inbound ranking request. Immutable once
// created; carried into every event logged for the request.
type RequestContext struct {
	RequestID   string    `json:"request_id"`
	Category    string    `json:"category"`
	UserLat     float64   `json:"user_lat"`
	UserLng     float64   `json:"user_lng"`
	UserID      string    `json:"user_id,omitempty"`
	RequestTime time.Time `json:"request_time"`
	Mode        RankMode  `json:"mode,omitempty"`
}
