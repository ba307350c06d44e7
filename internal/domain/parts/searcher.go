package parts

import (
	"context"
	"sort"
)

// Searcher runs keyword search over a fixed catalog.
type Searcher struct {
	catalog []Part
	matcher Matcher
}

// Option applies a configuration option to the Searcher.
type Option func(*Searcher)

// WithMatcher overrides the default substring matcher.
func WithMatcher(m Matcher) Option {
	return func(s *Searcher) {
		if m != nil {
			s.matcher = m
		}
	}
}

// NewSearcher creates a searcher over the given catalog.
func NewSearcher(catalog []Part, opts ...Option) *Searcher {
	s := &Searcher{
		catalog: catalog,
		matcher: NewSubstringMatcher(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Search scores every catalog entry against the query and returns the
// matches ordered by descending relevance. Catalog order breaks ties.
func (s *Searcher) Search(_ context.Context, query string) []ScoredPart {
	scored := make([]ScoredPart, 0, len(s.catalog))
	for _, p := range s.catalog {
		if sc := s.matcher.Score(query, p); sc > 0 {
			scored = append(scored, ScoredPart{Part: p, Score: sc})
		}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored
}

// CatalogSize returns the number of catalog entries.
func (s *Searcher) CatalogSize() int {
	return len(s.catalog)
}
