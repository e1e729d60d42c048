package gallery

import (
	"context"
	"errors"
	"testing"

	"github.com/clipgallery/clipgallery-go/internal/model"
)

// seedPage installs a specific first page for a platform on the fake fetcher.
func seedPage(f *fakeFetcher, platform model.Platform, videos ...model.Video) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pages[fetchKey(platform, 1)] = model.Page{
		Videos:      videos,
		TotalPages:  1,
		TotalVideos: len(videos),
	}
}

func seededOrchestrator() (*Orchestrator, *fakeFetcher) {
	f := newFakeFetcher()
	seedPage(f, model.PlatformYouTube,
		model.Video{ID: "y1", Platform: model.PlatformYouTube, Title: "Neural nets explained"},
	)
	seedPage(f, model.PlatformTikTok,
		model.Video{ID: "t1", Platform: model.PlatformTikTok, Title: "prompt hack #1"},
		model.Video{ID: "t2", Platform: model.PlatformTikTok, Title: "prompt hack #2"},
	)
	seedPage(f, model.PlatformInstagram,
		model.Video{ID: "i1", Platform: model.PlatformInstagram, Title: "prompt reel"},
	)
	return NewOrchestrator(f, StoreOptions{}), f
}

func TestOrchestrator_SectionsDefaultOrder(t *testing.T) {
	orch, f := seededOrchestrator()

	sections := orch.Sections(context.Background())

	if len(sections) != 3 {
		t.Fatalf("got %d sections, want 3", len(sections))
	}
	want := model.DefaultPlatformOrder
	for i := range want {
		if sections[i].Platform != want[i] {
			t.Errorf("section[%d] = %s, want %s", i, sections[i].Platform, want[i])
		}
		if sections[i].State != StateReady {
			t.Errorf("section[%d] state = %s, want ready", i, sections[i].State)
		}
	}
	if got := f.callCount(); got != 3 {
		t.Errorf("call count = %d, want 3 (one first page per platform)", got)
	}

	// Re-rendering is served from the stores, not the source.
	orch.Sections(context.Background())
	if got := f.callCount(); got != 3 {
		t.Errorf("call count after second render = %d, want 3", got)
	}
}

func TestOrchestrator_SectionsRankedByMatchCount(t *testing.T) {
	orch, _ := seededOrchestrator()
	orch.SetSearch("prompt")

	sections := orch.Sections(context.Background())

	// tiktok 2 matches, instagram 1, youtube 0
	want := []model.Platform{model.PlatformTikTok, model.PlatformInstagram, model.PlatformYouTube}
	for i := range want {
		if sections[i].Platform != want[i] {
			t.Fatalf("section[%d] = %s, want %s", i, sections[i].Platform, want[i])
		}
	}
	if sections[0].FilteredCount != 2 || sections[2].FilteredCount != 0 {
		t.Errorf("filtered counts = %d/%d, want 2/0",
			sections[0].FilteredCount, sections[2].FilteredCount)
	}
	// Zero-match platforms still render.
	if len(sections[2].Page.Videos) != 1 {
		t.Errorf("raw page of the zero-match platform should be intact, got %d videos", len(sections[2].Page.Videos))
	}
}

func TestOrchestrator_ErrorStaysLocalToPlatform(t *testing.T) {
	orch, f := seededOrchestrator()
	f.setErr(model.PlatformTikTok, 1, errors.New("tiktok upstream down"))

	sections := orch.Sections(context.Background())

	if len(sections) != 3 {
		t.Fatalf("got %d sections, want 3", len(sections))
	}
	for _, sec := range sections {
		switch sec.Platform {
		case model.PlatformTikTok:
			if sec.State != StateError || sec.Error == "" {
				t.Errorf("tiktok section state = %s error = %q, want error state with message", sec.State, sec.Error)
			}
		default:
			if sec.State != StateReady {
				t.Errorf("%s section state = %s, want ready despite sibling failure", sec.Platform, sec.State)
			}
		}
	}
}

func TestOrchestrator_ClearFiltersKeepsSearch(t *testing.T) {
	orch, _ := seededOrchestrator()
	orch.SetSearch("prompt")
	orch.SetFilters(model.Filters{Author: "ada", Category: "tutorial", MinViews: "100"})

	orch.ClearFilters()

	q := orch.Query()
	if q.Search != "prompt" {
		t.Errorf("search = %q, want %q (clearFilters must not touch search)", q.Search, "prompt")
	}
	if q.Filters != model.DefaultFilters() {
		t.Errorf("filters = %+v, want defaults", q.Filters)
	}
}

func TestOrchestrator_HasActiveFilters(t *testing.T) {
	orch, _ := seededOrchestrator()

	if orch.HasActiveFilters() {
		t.Error("fresh orchestrator reports active filters")
	}

	orch.SetSearch("   ")
	if orch.HasActiveFilters() {
		t.Error("whitespace-only search counts as active")
	}

	orch.SetSearch("ai")
	if !orch.HasActiveFilters() {
		t.Error("search term should count as active")
	}

	orch.SetSearch("")
	orch.SetFilters(model.Filters{Category: model.CategoryAll, MinLikes: "5"})
	if !orch.HasActiveFilters() {
		t.Error("numeric bound should count as active")
	}

	orch.ClearFilters()
	if orch.HasActiveFilters() {
		t.Error("cleared filters with no search should be inactive")
	}
}

func TestOrchestrator_TabSelection(t *testing.T) {
	orch, _ := seededOrchestrator()

	orch.SetTab("tiktok")
	sections := orch.Sections(context.Background())
	if len(sections) != 1 || sections[0].Platform != model.PlatformTikTok {
		t.Fatalf("tiktok tab: got %d sections, want just tiktok", len(sections))
	}

	// Switching tabs leaves the query alone.
	orch.SetSearch("prompt")
	orch.SetTab("youtube")
	if q := orch.Query(); q.Search != "prompt" {
		t.Errorf("search = %q after tab switch, want %q", q.Search, "prompt")
	}

	orch.SetTab("not-a-platform")
	if orch.Tab() != TabAll {
		t.Errorf("tab = %q, want %q for unknown value", orch.Tab(), TabAll)
	}
	if got := orch.Sections(context.Background()); len(got) != 3 {
		t.Errorf("all tab: got %d sections, want 3", len(got))
	}
}

func TestOrchestrator_SectionNavigation(t *testing.T) {
	f := newFakeFetcher()
	for page := 1; page <= 2; page++ {
		f.setPage(model.PlatformYouTube, page, 2, 20)
	}
	orch := NewOrchestrator(f, StoreOptions{})

	section, ok := orch.Section(context.Background(), model.PlatformYouTube, 2)
	if !ok {
		t.Fatal("Section returned ok=false for a known platform")
	}
	if section.Page.CurrentPage != 2 {
		t.Errorf("currentPage = %d, want 2", section.Page.CurrentPage)
	}

	if _, ok := orch.Section(context.Background(), "vimeo", 1); ok {
		t.Error("Section returned ok=true for an unknown platform")
	}
}

func TestOrchestrator_CountsFollowQuery(t *testing.T) {
	orch, _ := seededOrchestrator()
	orch.SetSearch("prompt")
	orch.Sections(context.Background())

	counts := orch.Counts()
	if counts[model.PlatformTikTok] != 2 || counts[model.PlatformYouTube] != 0 {
		t.Errorf("counts = %v, want tiktok 2 youtube 0", counts)
	}

	// A broader query overwrites the previous report for each platform.
	orch.SetSearch("")
	orch.Sections(context.Background())
	counts = orch.Counts()
	if counts[model.PlatformYouTube] != 1 {
		t.Errorf("youtube count = %d, want 1 after clearing search", counts[model.PlatformYouTube])
	}
}

func TestResults_LastWriteWins(t *testing.T) {
	r := NewResults()
	r.Report(model.PlatformYouTube, 4)
	r.Report(model.PlatformYouTube, 9)
	r.Report("", 100) // blank platform is dropped

	got := r.Snapshot()
	if got[model.PlatformYouTube] != 9 {
		t.Errorf("youtube = %d, want 9 (last write wins)", got[model.PlatformYouTube])
	}
	if len(got) != 1 {
		t.Errorf("snapshot has %d entries, want 1", len(got))
	}
}

func TestResults_SnapshotIsACopy(t *testing.T) {
	r := NewResults()
	r.Report(model.PlatformTikTok, 3)

	snap := r.Snapshot()
	snap[model.PlatformTikTok] = 99

	if r.Snapshot()[model.PlatformTikTok] != 3 {
		t.Error("mutating a snapshot leaked into the live counts")
	}
}
