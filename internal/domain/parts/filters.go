package parts

import "strings"

// Pagination bounds. A zero or missing page size falls back to the default.
const (
	DefaultPageSize = 10
	MaxPageSize     = 50
)

// Filters narrows a result set by part attributes. Nil pointer fields mean
// the filter is inactive.
type Filters struct {
	Category string
	MinPrice *float64
	MaxPrice *float64
	InStock  *bool
}

// Apply keeps the parts that pass every active filter.
func (f Filters) Apply(in []ScoredPart) []ScoredPart {
	out := make([]ScoredPart, 0, len(in))
	category := strings.ToLower(strings.TrimSpace(f.Category))
	for _, p := range in {
		if category != "" && strings.ToLower(strings.TrimSpace(p.Category)) != category {
			continue
		}
		if f.MinPrice != nil && p.Price < *f.MinPrice {
			continue
		}
		if f.MaxPrice != nil && p.Price > *f.MaxPrice {
			continue
		}
		if f.InStock != nil && p.InStock != *f.InStock {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Page is one slice of a paginated result set.
type Page struct {
	Items      []ScoredPart
	Total      int
	TotalPages int
	Page       int
	PageSize   int
}

// Paginate slices items into the requested page. The page number is clamped
// into [1, totalPages] so an overshooting client gets the last page instead
// of an empty one.
func Paginate(items []ScoredPart, page, pageSize int) Page {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	total := len(items)
	totalPages := (total + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Page{
		Items:      items[start:end],
		Total:      total,
		TotalPages: totalPages,
		Page:       page,
		PageSize:   pageSize,
	}
}
