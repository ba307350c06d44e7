package parts

import "strings"

// Matcher scores how well a part answers a free-text query. A score of zero
// means no match.
type Matcher interface {
	Score(query string, p Part) float64
}

// Relevance weights for the substring matcher. Name hits count double since
// part names are the most specific field.
const (
	nameWeight     = 2.0
	descWeight     = 1.0
	brandWeight    = 1.5
	categoryWeight = 1.0
)

// SubstringMatcher scores by case-insensitive token containment in the name
// and description, plus exact token matches on brand and category.
type SubstringMatcher struct{}

// NewSubstringMatcher creates the default matcher.
func NewSubstringMatcher() *SubstringMatcher {
	return &SubstringMatcher{}
}

// Score implements Matcher.
func (m *SubstringMatcher) Score(query string, p Part) float64 {
	tokens := strings.Fields(strings.ToLower(query))
	if len(tokens) == 0 {
		return 0
	}

	name := strings.ToLower(p.Name)
	desc := strings.ToLower(p.Description)
	brand := strings.ToLower(p.Brand)
	category := strings.ToLower(p.Category)

	var score float64
	for _, t := range tokens {
		if strings.Contains(name, t) {
			score += nameWeight
		}
		if strings.Contains(desc, t) {
			score += descWeight
		}
		if t == brand {
			score += brandWeight
		}
		if t == category {
			score += categoryWeight
		}
	}
	return score
}
