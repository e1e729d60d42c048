package model

import "strings"

// CategoryAll is the category filter value meaning "no category filter".
const CategoryAll = "all"

// Filters are the structured narrowing criteria for the gallery. The numeric
// bounds are kept as raw strings because they come straight from user input;
// unparsable values mean "bound not applied".
type Filters struct {
	Author   string `json:"author"`
	Category string `json:"category"`
	MinViews string `json:"minViews"`
	MaxViews string `json:"maxViews"`
	MinLikes string `json:"minLikes"`
	MaxLikes string `json:"maxLikes"`
}

// DefaultFilters returns the filter state with everything off.
func DefaultFilters() Filters {
	return Filters{Category: CategoryAll}
}

// Active reports whether any structured filter field is set.
func (f Filters) Active() bool {
	return f.Author != "" ||
		(f.Category != "" && f.Category != CategoryAll) ||
		f.MinViews != "" || f.MaxViews != "" ||
		f.MinLikes != "" || f.MaxLikes != ""
}

// Query is the combination of free-text search and structured filters
// currently applied by the user.
type Query struct {
	Search  string  `json:"search"`
	Filters Filters `json:"filters"`
}

// Active reports whether the query narrows anything: a non-blank search term
// or any active filter field. This single predicate gates both the
// clear-filters affordance and match-count ranking.
func (q Query) Active() bool {
	return strings.TrimSpace(q.Search) != "" || q.Filters.Active()
}

// ResultMap holds per-platform filtered result counts.
type ResultMap map[Platform]int
