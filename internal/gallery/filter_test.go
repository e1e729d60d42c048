package gallery

import (
	"testing"

	"github.com/clipgallery/clipgallery-go/internal/model"
)

func sampleVideos() []model.Video {
	return []model.Video{
		{ID: "a", Platform: model.PlatformYouTube, Title: "Intro to Prompt Engineering", AuthorName: "Ada Lin", AuthorUser: "adalin", Views: 1200, Likes: 300, Category: "tutorial"},
		{ID: "b", Platform: model.PlatformYouTube, Title: "GPT in 60 seconds", Description: "quick prompt tips", AuthorName: "Ben Ortiz", AuthorUser: "bdotai", Views: 50, Likes: 10, Category: "shorts"},
		{ID: "c", Platform: model.PlatformTikTok, Title: "AI Study Hacks", AuthorName: "Cara M", AuthorUser: "cara.m", Views: 9000, Likes: 2500, Category: "tutorial"},
	}
}

func activeQuery(search string, f model.Filters) model.Query {
	if f.Category == "" {
		f.Category = model.CategoryAll
	}
	return model.Query{Search: search, Filters: f}
}

func TestApplyQuery_InactiveReturnsInputUnchanged(t *testing.T) {
	videos := sampleVideos()
	got := ApplyQuery(videos, model.Query{Filters: model.DefaultFilters()})

	// Identity, not just equality — memoized callers compare slices directly.
	if len(got) != len(videos) || &got[0] != &videos[0] {
		t.Error("inactive query should return the input slice as-is")
	}
}

func TestApplyQuery_EmptyInputShortCircuits(t *testing.T) {
	var videos []model.Video
	got := ApplyQuery(videos, activeQuery("prompt", model.Filters{}))
	if got != nil {
		t.Errorf("empty input should come back unchanged, got %v", got)
	}
}

func TestApplyQuery_SearchSubstringLaw(t *testing.T) {
	// Any video whose title contains the term (case-insensitive) must be kept.
	got := ApplyQuery(sampleVideos(), activeQuery("PROMPT", model.Filters{}))

	if len(got) != 2 {
		t.Fatalf("got %d videos, want 2 (title and description matches)", len(got))
	}
	if got[0].ID != "a" || got[1].ID != "b" {
		t.Errorf("got ids %s,%s, want a,b", got[0].ID, got[1].ID)
	}
}

func TestApplyQuery_SearchMatchesAuthorAndPlatform(t *testing.T) {
	// Username match
	got := ApplyQuery(sampleVideos(), activeQuery("bdotai", model.Filters{}))
	if len(got) != 1 || got[0].ID != "b" {
		t.Errorf("username search: got %d videos, want just b", len(got))
	}

	// Platform name is searchable too
	got = ApplyQuery(sampleVideos(), activeQuery("tiktok", model.Filters{}))
	if len(got) != 1 || got[0].ID != "c" {
		t.Errorf("platform search: got %d videos, want just c", len(got))
	}
}

func TestApplyQuery_AuthorFilterChecksBothFields(t *testing.T) {
	got := ApplyQuery(sampleVideos(), activeQuery("", model.Filters{Author: "cara"}))
	if len(got) != 1 || got[0].ID != "c" {
		t.Fatalf("author filter: got %d videos, want just c", len(got))
	}

	// Matches the username when the display name doesn't
	got = ApplyQuery(sampleVideos(), activeQuery("", model.Filters{Author: "ADALIN"}))
	if len(got) != 1 || got[0].ID != "a" {
		t.Errorf("author filter by username: got %d videos, want just a", len(got))
	}
}

func TestApplyQuery_CategoryExactMatch(t *testing.T) {
	got := ApplyQuery(sampleVideos(), activeQuery("", model.Filters{Category: "Tutorial"}))
	if len(got) != 2 {
		t.Errorf("category filter: got %d videos, want 2", len(got))
	}

	// "all" disables the category predicate
	got = ApplyQuery(sampleVideos(), activeQuery("x", model.Filters{Category: "all"}))
	if len(got) != 0 {
		t.Errorf("category=all with no other match: got %d videos, want 0", len(got))
	}
}

func TestApplyQuery_ViewAndLikeRanges(t *testing.T) {
	got := ApplyQuery(sampleVideos(), activeQuery("", model.Filters{MinViews: "100"}))
	if len(got) != 2 {
		t.Errorf("minViews=100: got %d videos, want 2", len(got))
	}

	got = ApplyQuery(sampleVideos(), activeQuery("", model.Filters{MaxViews: "100"}))
	if len(got) != 1 || got[0].ID != "b" {
		t.Errorf("maxViews=100: got %d videos, want just b", len(got))
	}

	got = ApplyQuery(sampleVideos(), activeQuery("", model.Filters{MinLikes: "300", MaxLikes: "2500"}))
	if len(got) != 2 {
		t.Errorf("likes in [300,2500]: got %d videos, want 2", len(got))
	}
}

func TestApplyQuery_UnparsableBoundIgnored(t *testing.T) {
	// "abc" is not a number — the bound is simply not applied, not an error.
	got := ApplyQuery(sampleVideos(), activeQuery("", model.Filters{MinViews: "abc", Author: "cara"}))
	if len(got) != 1 || got[0].ID != "c" {
		t.Errorf("unparsable minViews: got %d videos, want just c", len(got))
	}
}

func TestApplyQuery_FilterMonotonicity(t *testing.T) {
	// Adding a criterion never grows the result set.
	videos := sampleVideos()
	base := ApplyQuery(videos, activeQuery("", model.Filters{Category: "tutorial"}))
	narrowed := ApplyQuery(videos, activeQuery("", model.Filters{Category: "tutorial", MinViews: "2000"}))

	if len(narrowed) > len(base) {
		t.Errorf("narrowed %d > base %d; extra filter must not add results", len(narrowed), len(base))
	}
}

func TestApplyQuery_DoesNotMutateInput(t *testing.T) {
	videos := sampleVideos()
	ApplyQuery(videos, activeQuery("prompt", model.Filters{MinViews: "1000"}))

	if videos[0].ID != "a" || videos[1].ID != "b" || videos[2].ID != "c" {
		t.Error("input slice was reordered or mutated")
	}
}
