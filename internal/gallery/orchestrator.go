package gallery

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/clipgallery/clipgallery-go/internal/model"
)

// TabAll is the active-tab value that renders every platform section.
const TabAll = "all"

// Section is one platform's slice of the gallery: the store's visible state
// plus the videos that survived the current query.
type Section struct {
	Platform      model.Platform `json:"platform"`
	State         State          `json:"state"`
	Error         string         `json:"error,omitempty"`
	Page          model.Page     `json:"page"`
	Videos        []model.Video  `json:"videos"`
	FilteredCount int            `json:"filteredCount"`
}

// Orchestrator owns the gallery's query state and active tab and composes one
// store per platform. Query changes re-filter already-fetched pages on the
// next Sections call; they never reach the source. Tab switches change which
// stores render but leave search and filters alone.
type Orchestrator struct {
	mu    sync.Mutex
	query model.Query
	tab   string

	stores  map[model.Platform]*Store
	results *Results
}

// NewOrchestrator builds an orchestrator with one store per supported
// platform, all sharing the given fetcher and options.
func NewOrchestrator(fetcher PageFetcher, opts StoreOptions) *Orchestrator {
	stores := make(map[model.Platform]*Store, len(model.DefaultPlatformOrder))
	for _, p := range model.DefaultPlatformOrder {
		stores[p] = NewStore(fetcher, string(p), opts)
	}
	return &Orchestrator{
		query:   model.Query{Filters: model.DefaultFilters()},
		tab:     TabAll,
		stores:  stores,
		results: NewResults(),
	}
}

// Store returns the store for a platform, or nil for unknown platforms.
func (o *Orchestrator) Store(platform model.Platform) *Store {
	return o.stores[platform]
}

// Query returns the current query state.
func (o *Orchestrator) Query() model.Query {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.query
}

// SetSearch replaces the free-text search term.
func (o *Orchestrator) SetSearch(search string) {
	o.mu.Lock()
	o.query.Search = search
	o.mu.Unlock()
}

// SetFilters replaces the structured filter fields.
func (o *Orchestrator) SetFilters(f model.Filters) {
	o.mu.Lock()
	o.query.Filters = f
	o.mu.Unlock()
}

// ClearFilters resets the structured filters to defaults. The search term is
// deliberately kept.
func (o *Orchestrator) ClearFilters() {
	o.mu.Lock()
	o.query.Filters = model.DefaultFilters()
	o.mu.Unlock()
}

// HasActiveFilters reports whether any filter field or the search term is set.
func (o *Orchestrator) HasActiveFilters() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.query.Active()
}

// SetTab selects the active tab: TabAll or one platform. Unknown values fall
// back to TabAll.
func (o *Orchestrator) SetTab(tab string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if p, ok := model.ParsePlatform(tab); ok {
		o.tab = string(p)
		return
	}
	o.tab = TabAll
}

// Tab returns the active tab.
func (o *Orchestrator) Tab() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.tab
}

// Sections materializes the visible platform sections: stores for the active
// tab are loaded (first page, concurrently, cache-first), each raw page is
// narrowed by the current query, counts are reported, and when every platform
// renders the sections come back in ranked order. A failing platform yields
// an error section without affecting the others.
func (o *Orchestrator) Sections(ctx context.Context) []Section {
	o.mu.Lock()
	query := o.query
	tab := o.tab
	o.mu.Unlock()

	platforms := o.tabPlatforms(tab)

	// Per-platform failures stay local to their store, so the group only
	// coordinates the wait.
	g, gctx := errgroup.WithContext(ctx)
	for _, p := range platforms {
		store := o.stores[p]
		g.Go(func() error {
			store.EnsureFirstPage(gctx)
			return nil
		})
	}
	g.Wait()

	byPlatform := make(map[model.Platform]Section, len(platforms))
	for _, p := range platforms {
		section := o.buildSection(p, query, o.results.Report)
		byPlatform[p] = section
	}

	ranked := Rank(o.results.Snapshot(), query.Active())

	sections := make([]Section, 0, len(platforms))
	for _, p := range ranked {
		if section, ok := byPlatform[p]; ok {
			sections = append(sections, section)
		}
	}
	return sections
}

// Section materializes a single platform section at the given page. page 0
// means "wherever the store currently is".
func (o *Orchestrator) Section(ctx context.Context, platform model.Platform, page int) (Section, bool) {
	store, ok := o.stores[platform]
	if !ok {
		return Section{}, false
	}
	if page > 0 {
		store.EnsureFirstPage(ctx)
		store.GoToPage(ctx, page)
	} else {
		store.EnsureFirstPage(ctx)
	}

	o.mu.Lock()
	query := o.query
	o.mu.Unlock()

	return o.buildSection(platform, query, o.results.Report), true
}

// Refresh re-fetches a platform's current page, bypassing both cache levels.
func (o *Orchestrator) Refresh(ctx context.Context, platform model.Platform) bool {
	store, ok := o.stores[platform]
	if !ok {
		return false
	}
	store.Refresh(ctx)
	return true
}

// ClearCaches drops every store's cached pages.
func (o *Orchestrator) ClearCaches(ctx context.Context) {
	for _, store := range o.stores {
		store.ClearCache(ctx)
	}
}

// Counts returns the latest reported per-platform filtered counts.
func (o *Orchestrator) Counts() model.ResultMap {
	return o.results.Snapshot()
}

// Close disposes all stores; in-flight fetches become no-ops.
func (o *Orchestrator) Close() {
	for _, store := range o.stores {
		store.Close()
	}
}

func (o *Orchestrator) tabPlatforms(tab string) []model.Platform {
	if p, ok := model.ParsePlatform(tab); ok {
		return []model.Platform{p}
	}
	return append([]model.Platform(nil), model.DefaultPlatformOrder...)
}

func (o *Orchestrator) buildSection(platform model.Platform, query model.Query, report Reporter) Section {
	snap := o.stores[platform].Snapshot()
	filtered := ApplyQuery(snap.Page.Videos, query)
	report(platform, len(filtered))
	return Section{
		Platform:      platform,
		State:         snap.State,
		Error:         snap.Error,
		Page:          snap.Page,
		Videos:        filtered,
		FilteredCount: len(filtered),
	}
}
