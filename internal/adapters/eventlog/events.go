// Package eventlog appends impression and click events to a newline-
// delimited JSON log and reads them back for offline training jobs.
package eventlog

import (
	"time"

	"github.com/roviahq/rovia/internal/domain/model"
)

// EventType discriminates log records.
type EventType string

const (
	EventImpression      EventType = "impression"
	EventClick           EventType = "click"
	EventPartsImpression EventType = "parts_impression"
	EventPartsClick      EventType = "parts_click"
)

// Record is one event log line. Exactly one of the payload sections is set
// depending on the event type.
type Record struct {
	EventType EventType             `json:"event_type"`
	Timestamp time.Time             `json:"timestamp"`
	Context   *model.RequestContext `json:"context,omitempty"`

	// Impression payload: the ranked candidates as shown.
	Candidates []CandidateRecord `json:"candidates,omitempty"`

	// Click payload.
	Clicked *ClickRecord `json:"clicked,omitempty"`

	// Parts payload (lighter path, separate log file).
	Query string       `json:"query,omitempty"`
	Parts []PartRecord `json:"parts,omitempty"`
}

// CandidateRecord captures the computed attributes of one shown candidate,
// enough to reconstruct a training row without re-running the engine.
type CandidateRecord struct {
	CandidateID  int64              `json:"candidate_id"`
	Position     int                `json:"position"`
	Score        float64            `json:"score"`
	LearnedScore *float64           `json:"learned_score,omitempty"`
	DistanceKm   float64            `json:"distance_km"`
	Available    bool               `json:"is_available"`
	Status       string             `json:"status"`
	Features     map[string]float64 `json:"features"`
}

// ClickRecord identifies the clicked candidate within its impression.
type ClickRecord struct {
	CandidateID int64 `json:"candidate_id"`
	Position    *int  `json:"position,omitempty"`
}

// PartRecord captures one spare part shown for a search query.
type PartRecord struct {
	PartID   int64   `json:"part_id"`
	Position int     `json:"position"`
	Brand    string  `json:"brand,omitempty"`
	Category string  `json:"category,omitempty"`
	Price    float64 `json:"price"`
}
