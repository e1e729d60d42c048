package gallery

import (
	"sort"

	"github.com/clipgallery/clipgallery-go/internal/model"
)

// Rank decides the display order of platform sections. With no active query
// it is the fixed default order. With an active query, platforms sort by
// descending filtered-result count; ties keep their default relative order
// (stable sort), so zero-count platforms stay visible at the end rather than
// disappearing.
func Rank(counts model.ResultMap, queryActive bool) []model.Platform {
	order := append([]model.Platform(nil), model.DefaultPlatformOrder...)
	if !queryActive {
		return order
	}
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	return order
}
