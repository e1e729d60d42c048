package gallery

import (
	"strconv"
	"strings"

	"github.com/clipgallery/clipgallery-go/internal/model"
)

// ApplyQuery narrows videos by the given query. All predicates are
// case-insensitive and AND-combined; a blank or default field is a no-op for
// its category. The input is never mutated, and when nothing would be
// filtered (inactive query or empty input) the input slice is returned
// as-is so memoized callers can compare by identity.
func ApplyQuery(videos []model.Video, q model.Query) []model.Video {
	if len(videos) == 0 || !q.Active() {
		return videos
	}

	search := strings.ToLower(strings.TrimSpace(q.Search))
	author := strings.ToLower(strings.TrimSpace(q.Filters.Author))
	category := strings.ToLower(strings.TrimSpace(q.Filters.Category))

	minViews, hasMinViews := parseBound(q.Filters.MinViews)
	maxViews, hasMaxViews := parseBound(q.Filters.MaxViews)
	minLikes, hasMinLikes := parseBound(q.Filters.MinLikes)
	maxLikes, hasMaxLikes := parseBound(q.Filters.MaxLikes)

	out := make([]model.Video, 0, len(videos))
	for _, v := range videos {
		if search != "" && !matchesSearch(v, search) {
			continue
		}
		if author != "" && !containsFold(v.AuthorName, author) && !containsFold(v.AuthorUser, author) {
			continue
		}
		if category != "" && category != model.CategoryAll && strings.ToLower(v.Category) != category {
			continue
		}
		if hasMinViews && v.Views < minViews {
			continue
		}
		if hasMaxViews && v.Views > maxViews {
			continue
		}
		if hasMinLikes && v.Likes < minLikes {
			continue
		}
		if hasMaxLikes && v.Likes > maxLikes {
			continue
		}
		out = append(out, v)
	}
	return out
}

// matchesSearch keeps a video when the term appears in any descriptive field.
func matchesSearch(v model.Video, term string) bool {
	return containsFold(v.Title, term) ||
		containsFold(v.Description, term) ||
		containsFold(v.AuthorName, term) ||
		containsFold(v.AuthorUser, term) ||
		containsFold(string(v.Platform), term)
}

func containsFold(s, lowered string) bool {
	return strings.Contains(strings.ToLower(s), lowered)
}

// parseBound parses a numeric filter input. Unparsable values (including
// blank) mean the bound is not applied — not an error.
func parseBound(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
