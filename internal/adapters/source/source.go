// Package source provides candidate catalogs for the ranking engine, either
// built in or loaded from a YAML file.
package source

import (
	"context"

	"github.com/roviahq/rovia/internal/domain/model"
)

// Source yields the candidate set to rank. Implementations return a fresh
// copy per call so request-scoped mutation never leaks across requests.
type Source interface {
	Candidates(ctx context.Context) ([]model.Candidate, error)
}

// StaticSource serves a fixed in-memory candidate set.
type StaticSource struct {
	candidates []model.Candidate
}

// NewStaticSource creates a source over the given candidates. With no
// arguments it serves the built-in default set.
func NewStaticSource(candidates ...model.Candidate) *StaticSource {
	if len(candidates) == 0 {
		candidates = defaultCandidates()
	}
	return &StaticSource{candidates: candidates}
}

// Candidates implements Source.
func (s *StaticSource) Candidates(_ context.Context) ([]model.Candidate, error) {
	out := make([]model.Candidate, len(s.candidates))
	copy(out, s.candidates)
	return out, nil
}

func defaultCandidates() []model.Candidate {
	return []model.Candidate{
		{ID: 1, Name: "CleanCar Wash", Category: "wash", Lat: 52.5305, Lng: 13.4010, Rating: 4.5, Open: "08:00", Close: "20:00"},
		{ID: 2, Name: "Sparkle Auto Spa", Category: "wash", Lat: 52.5150, Lng: 13.3900, Rating: 4.8, Open: "09:00", Close: "21:00"},
		{ID: 3, Name: "Night Owl Wash", Category: "wash", Lat: 52.4900, Lng: 13.4300, Rating: 3.9, Open: "14:00", Close: "23:00"},
		{ID: 4, Name: "QuickFix Garage", Category: "maintenance", Lat: 52.5400, Lng: 13.4200, Rating: 4.2, Open: "07:30", Close: "18:00"},
		{ID: 5, Name: "AutoMeister Berlin", Category: "maintenance", Lat: 52.5050, Lng: 13.4450, Rating: 4.7, Open: "08:00", Close: "19:00"},
		{ID: 6, Name: "City Tire Service", Category: "maintenance", Lat: 52.5250, Lng: 13.3700, Rating: 4.0, Open: "09:00", Close: "17:30"},
		{ID: 7, Name: "Glanz Detailing", Category: "detailing", Lat: 52.5100, Lng: 13.4100, Rating: 4.9, Open: "10:00", Close: "18:00"},
		{ID: 8, Name: "Shine Studio", Category: "detailing", Lat: 52.5450, Lng: 13.3850, Rating: 4.3, Open: "09:30", Close: "19:30"},
	}
}
