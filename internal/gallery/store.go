package gallery

import (
	"context"
	"log"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/clipgallery/clipgallery-go/internal/model"
)

// State is the lifecycle phase of a platform store.
type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateReady   State = "ready"
	StateError   State = "error"
)

// PageFetcher retrieves one page of videos for a platform. *source.Client
// satisfies this; tests substitute fakes.
type PageFetcher interface {
	FetchPage(ctx context.Context, platform model.Platform, page int) (model.Page, error)
}

type pageKey struct {
	platform model.Platform
	page     int
}

// StoreOptions carries the optional collaborators of a Store.
type StoreOptions struct {
	Shared      *PageCache         // second-level cache, may be nil
	CacheHits   prometheus.Counter // may be nil
	CacheMisses prometheus.Counter // may be nil
}

// Store owns fetching, caching, and pagination for one platform's feed.
//
// The cache maps (platform, page) to the page fetched for it. Entries are
// created on first successful fetch and removed only by Refresh (current page)
// or ClearCache; they never expire on their own. Fetches are cache-first: a
// cached page is adopted synchronously with no loading transition and no
// network call.
type Store struct {
	fetcher PageFetcher
	shared  *PageCache
	hits    prometheus.Counter
	misses  prometheus.Counter

	mu       sync.Mutex
	platform model.Platform
	state    State
	errMsg   string
	current  model.Page
	cache    map[pageKey]model.Page

	// gen invalidates in-flight fetches: a result is discarded unless its
	// generation still matches. Bumped by every fetch (last request wins),
	// platform switch, and Close.
	gen uint64
}

// Snapshot is a consistent view of a store's visible state.
type Snapshot struct {
	Platform model.Platform `json:"platform"`
	State    State          `json:"state"`
	Error    string         `json:"error,omitempty"`
	Page     model.Page     `json:"page"`
}

// NewStore creates a store for the given platform identifier. A blank or
// unknown platform yields an empty idle store that never fetches.
func NewStore(fetcher PageFetcher, platform string, opts StoreOptions) *Store {
	s := &Store{
		fetcher: fetcher,
		shared:  opts.Shared,
		hits:    opts.CacheHits,
		misses:  opts.CacheMisses,
		state:   StateIdle,
		cache:   make(map[pageKey]model.Page),
	}
	if p, ok := model.ParsePlatform(platform); ok {
		s.platform = p
	}
	s.current = emptyPage(1)
	return s
}

// Platform returns the store's platform ("" when unset).
func (s *Store) Platform() model.Platform {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.platform
}

// Snapshot returns the current visible state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Platform: s.platform,
		State:    s.state,
		Error:    s.errMsg,
		Page:     s.current,
	}
}

// EnsureFirstPage runs the one-shot Idle → Loading transition: it fetches
// page 1 if the store has a platform and has not loaded anything yet. Calling
// it again after the first load is a no-op, so mounts never double-fetch.
func (s *Store) EnsureFirstPage(ctx context.Context) {
	s.mu.Lock()
	if s.platform == "" || s.state != StateIdle {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()
	s.FetchPage(ctx, 1)
}

// FetchPage loads the given page for the store's platform. Cached pages are
// adopted synchronously; misses go to the shared cache and then the source.
// With no platform set it resets the visible state to empty and does nothing.
func (s *Store) FetchPage(ctx context.Context, page int) {
	s.mu.Lock()
	if s.platform == "" {
		s.resetLocked()
		s.mu.Unlock()
		return
	}
	if page < 1 {
		page = 1
	}

	key := pageKey{s.platform, page}
	if cached, ok := s.cache[key]; ok {
		inc(s.hits)
		s.adoptLocked(cached, page)
		s.mu.Unlock()
		return
	}
	inc(s.misses)

	s.state = StateLoading
	s.errMsg = ""
	s.gen++
	gen := s.gen
	platform := s.platform
	s.mu.Unlock()

	if s.shared != nil {
		if shared, ok := s.shared.GetPage(ctx, platform, page); ok {
			shared.Normalize(page)
			s.commit(gen, key, shared, page)
			return
		}
	}

	result, err := s.fetcher.FetchPage(ctx, platform, page)
	if err != nil {
		s.fail(gen, page, err)
		return
	}
	result.Normalize(page)

	if s.shared != nil {
		if err := s.shared.SetPage(ctx, platform, page, result); err != nil {
			log.Printf("page cache: set %s page %d: %v", platform, page, err)
		}
	}
	s.commit(gen, key, result, page)
}

// NextPage fetches the following page. Permitted only when the current page
// reports a next page.
func (s *Store) NextPage(ctx context.Context) {
	s.mu.Lock()
	ok := s.state == StateReady && s.current.HasNextPage
	page := s.current.CurrentPage + 1
	s.mu.Unlock()
	if ok {
		s.FetchPage(ctx, page)
	}
}

// PreviousPage fetches the preceding page. Permitted only when the current
// page reports a previous page.
func (s *Store) PreviousPage(ctx context.Context) {
	s.mu.Lock()
	ok := s.state == StateReady && s.current.HasPreviousPage
	page := s.current.CurrentPage - 1
	s.mu.Unlock()
	if ok {
		s.FetchPage(ctx, page)
	}
}

// GoToPage fetches page n. Values outside [1, totalPages] are silently
// ignored: no error, no state change.
func (s *Store) GoToPage(ctx context.Context, n int) {
	s.mu.Lock()
	ok := n >= 1 && n <= s.current.TotalPages
	s.mu.Unlock()
	if ok {
		s.FetchPage(ctx, n)
	}
}

// Refresh drops the cache entry for the current page (both levels) and
// re-fetches it, forcing a source round-trip even for the same page.
func (s *Store) Refresh(ctx context.Context) {
	s.mu.Lock()
	if s.platform == "" {
		s.mu.Unlock()
		return
	}
	page := s.current.CurrentPage
	if page < 1 {
		page = 1
	}
	platform := s.platform
	delete(s.cache, pageKey{platform, page})
	s.mu.Unlock()

	if s.shared != nil {
		if err := s.shared.InvalidatePage(ctx, platform, page); err != nil {
			log.Printf("page cache: invalidate %s page %d: %v", platform, page, err)
		}
	}
	s.FetchPage(ctx, page)
}

// ClearCache drops every cached page for this store. The currently visible
// data is untouched until the next fetch.
func (s *Store) ClearCache(ctx context.Context) {
	s.mu.Lock()
	platform := s.platform
	s.cache = make(map[pageKey]model.Page)
	s.mu.Unlock()

	if s.shared != nil && platform != "" {
		if err := s.shared.InvalidatePlatform(ctx, platform); err != nil {
			log.Printf("page cache: invalidate %s: %v", platform, err)
		}
	}
}

// SetPlatform switches the store to a new platform: page resets to 1, any
// error clears, and page 1 of the new platform is fetched. Cache entries for
// the old platform remain intact. A blank or unknown value fully resets the
// visible state without issuing a request.
func (s *Store) SetPlatform(ctx context.Context, platform string) {
	p, ok := model.ParsePlatform(platform)

	s.mu.Lock()
	if ok && p == s.platform {
		s.mu.Unlock()
		return
	}
	s.gen++ // supersede any in-flight fetch for the old platform
	if !ok {
		s.platform = ""
		s.resetLocked()
		s.mu.Unlock()
		return
	}
	s.platform = p
	s.state = StateIdle
	s.errMsg = ""
	s.current = emptyPage(1)
	s.mu.Unlock()

	s.FetchPage(ctx, 1)
}

// Close marks the store disposed: any in-flight fetch result is discarded on
// arrival.
func (s *Store) Close() {
	s.mu.Lock()
	s.gen++
	s.mu.Unlock()
}

// commit installs a successfully fetched page unless the fetch was superseded.
func (s *Store) commit(gen uint64, key pageKey, page model.Page, pageNum int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		return
	}
	s.cache[key] = page
	s.adoptLocked(page, pageNum)
}

// fail records a fetch error unless the fetch was superseded. Stale data is
// not retained: videos clear and pagination counters zero out.
func (s *Store) fail(gen uint64, page int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		return
	}
	s.state = StateError
	s.errMsg = err.Error()
	s.current = model.Page{
		Videos:      []model.Video{},
		CurrentPage: page,
	}
}

func (s *Store) adoptLocked(page model.Page, pageNum int) {
	page.Normalize(pageNum)
	s.current = page
	s.state = StateReady
	s.errMsg = ""
}

func (s *Store) resetLocked() {
	s.state = StateIdle
	s.errMsg = ""
	s.current = emptyPage(1)
}

func emptyPage(current int) model.Page {
	return model.Page{Videos: []model.Video{}, CurrentPage: current}
}

func inc(c prometheus.Counter) {
	if c != nil {
		c.Inc()
	}
}
