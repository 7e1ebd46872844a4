package vitrin

import (
	"context"
	"regexp"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// SearchMode classifies the raw search-box text.
type SearchMode string

const (
	// SearchModeNone delegates entirely to the paged filtered browse.
	SearchModeNone SearchMode = "none"
	// SearchModeListingNo triggers a direct lookup by listing code.
	SearchModeListingNo SearchMode = "listingNo"
	// SearchModeTitle filters loaded pages client-side by substring.
	SearchModeTitle SearchMode = "title"
)

// User-facing messages for the code lookup path.
const (
	MsgListingNotFound = "No listing found for this listing number"
	MsgLookupFailed    = "Search failed, please try again"
)

var listingNoPattern = regexp.MustCompile(`^[A-Z0-9]{8}$`)

// Controller tuning defaults, shared with DefaultConfig.
const (
	DefaultLookupCacheSize = 64
	DefaultMaxLoadAllPages = 50
	DefaultQueryTimeout    = 30 * time.Second
)

// SearchOptions tunes a SearchController. Zero values fall back to the
// package defaults.
type SearchOptions struct {
	// LookupCacheSize bounds the listing-code lookup cache.
	LookupCacheSize int
	// MaxLoadAllPages caps how many pages LoadAllPages will fetch.
	MaxLoadAllPages int
	// QueryTimeout bounds each backend request issued by the controller.
	QueryTimeout time.Duration
}

// SearchOptionsFromConfig derives controller options from the engine
// configuration.
func SearchOptionsFromConfig(cfg *Config) SearchOptions {
	return SearchOptions{
		LookupCacheSize: cfg.Search.LookupCacheSize,
		MaxLoadAllPages: cfg.Query.MaxLoadAllPages,
		QueryTimeout:    cfg.Query.DefaultTimeout,
	}
}

// ClassifySearch derives the search mode from the raw box text. An exact
// eight-character uppercase alphanumeric term is a listing-code lookup,
// except in my-listings context where code lookup is disabled. Case
// matters: a lowercase code stays a title search.
func ClassifySearch(term string, myListings bool) SearchMode {
	if term == "" {
		return SearchModeNone
	}
	if !myListings && listingNoPattern.MatchString(term) {
		return SearchModeListingNo
	}
	return SearchModeTitle
}

// SearchController composes filter state, pagination and the three-mode
// search resolver into one query surface for list pages. It owns its
// state exclusively; all transitions go through its methods.
type SearchController struct {
	registry *Registry
	service  QueryService
	logger   *zap.SugaredLogger

	maxLoadAllPages int
	queryTimeout    time.Duration

	mu         sync.Mutex
	category   CategoryID
	filters    *FilterState
	myListings bool

	term string
	mode SearchMode

	page *PageResult

	// Listing-code lookups are keyed by a monotonically increasing
	// request counter; only the response to the latest request is
	// applied.
	lookupSeq    uint64
	codeResult   *Listing
	codeMessage  string
	lookupCache  *Cache[string, *Listing]

	// Escape-hatch buffer for client-side title search across every
	// page of the active browse query.
	allListings    []*Listing
	allPagesLoaded bool
}

// NewSearchController creates a controller for the given category. An
// unknown category is tolerated here; queries against it short-circuit to
// empty results with a logged warning instead of a malformed request.
func NewSearchController(registry *Registry, service QueryService, category CategoryID, logger *zap.SugaredLogger) *SearchController {
	return NewSearchControllerWithOptions(registry, service, category, SearchOptions{}, logger)
}

// NewSearchControllerWithOptions creates a controller with explicit
// tuning; zero option fields take the package defaults.
func NewSearchControllerWithOptions(registry *Registry, service QueryService, category CategoryID, opts SearchOptions, logger *zap.SugaredLogger) *SearchController {
	if logger == nil {
		logger = zap.S()
	}
	if opts.LookupCacheSize <= 0 {
		opts.LookupCacheSize = DefaultLookupCacheSize
	}
	if opts.MaxLoadAllPages <= 0 {
		opts.MaxLoadAllPages = DefaultMaxLoadAllPages
	}
	if opts.QueryTimeout <= 0 {
		opts.QueryTimeout = DefaultQueryTimeout
	}
	c := &SearchController{
		registry:        registry,
		service:         service,
		logger:          logger,
		maxLoadAllPages: opts.MaxLoadAllPages,
		queryTimeout:    opts.QueryTimeout,
		mode:            SearchModeNone,
		lookupCache:     NewCache[string, *Listing](opts.LookupCacheSize),
	}
	c.setCategoryLocked(category)
	return c
}

// opContext bounds one backend request with the controller's query
// timeout.
func (c *SearchController) opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, c.queryTimeout)
}

func (c *SearchController) setCategoryLocked(category CategoryID) {
	c.category = category
	if cfg := c.registry.Config(category); cfg != nil {
		c.filters = NewFilterState(cfg, nil)
	} else {
		c.filters = nil
	}
}

// Mode returns the current search mode.
func (c *SearchController) Mode() SearchMode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// Filters exposes the controller's filter state.
func (c *SearchController) Filters() *FilterState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filters
}

// SetMyListings switches the controller between public browse and
// my-listings context. Code lookup never fires in my-listings context.
func (c *SearchController) SetMyListings(on bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.myListings = on
	c.mode = ClassifySearch(c.term, on)
}

// SetCategory switches the active category, resetting filters and
// clearing the search term: a category change must never inherit a stale
// search or stale full-page buffers.
func (c *SearchController) SetCategory(category CategoryID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setCategoryLocked(category)
	c.clearSearchLocked()
}

// UpdateFilters applies a filter patch and clears the search term as a
// side effect, matching the wrapped update functions of the list pages.
func (c *SearchController) UpdateFilters(patch map[string]any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.filters != nil {
		c.filters.Update(patch)
	}
	c.clearSearchLocked()
}

// ResetFilters recomputes the category defaults and clears the search.
func (c *SearchController) ResetFilters() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.filters != nil {
		c.filters.Reset()
	}
	c.clearSearchLocked()
}

// ClearSearch empties the search box state.
func (c *SearchController) ClearSearch() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clearSearchLocked()
}

func (c *SearchController) clearSearchLocked() {
	c.term = ""
	c.mode = SearchModeNone
	c.codeResult = nil
	c.codeMessage = ""
	c.resetAllPagesLocked()
}

// Switching term or mode must drop the full-result buffer so stale pages
// never leak into a new search.
func (c *SearchController) resetAllPagesLocked() {
	c.allListings = nil
	c.allPagesLoaded = false
}

// SetSearchTerm reclassifies the mode on every keystroke. In listingNo
// mode it issues the direct lookup; the request counter discards stale
// responses so only the latest keystroke's result is ever applied.
func (c *SearchController) SetSearchTerm(ctx context.Context, term string) {
	c.mu.Lock()
	c.term = term
	newMode := ClassifySearch(term, c.myListings)
	c.mode = newMode
	c.codeResult = nil
	c.codeMessage = ""
	c.resetAllPagesLocked()
	if newMode != SearchModeListingNo {
		c.mu.Unlock()
		return
	}
	c.lookupSeq++
	seq := c.lookupSeq
	c.mu.Unlock()

	c.lookupCode(ctx, term, seq)
}

func (c *SearchController) lookupCode(ctx context.Context, code string, seq uint64) {
	if cached, ok := c.lookupCache.Get(code); ok {
		c.applyLookup(seq, cached, "")
		return
	}

	lctx, cancel := c.opContext(ctx)
	defer cancel()
	listing, err := c.service.ListingByNo(lctx, code)
	switch {
	case err == nil:
		c.lookupCache.Put(code, listing)
		c.applyLookup(seq, listing, "")
	case IsNotFoundError(err):
		c.applyLookup(seq, nil, MsgListingNotFound)
	default:
		c.logger.Warnw("listing code lookup failed", "code", code, "error", err)
		c.applyLookup(seq, nil, MsgLookupFailed)
	}
}

// applyLookup applies a lookup response only when it answers the most
// recent request. Superseded responses resolve and are discarded.
func (c *SearchController) applyLookup(seq uint64, listing *Listing, message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.lookupSeq || c.mode != SearchModeListingNo {
		return
	}
	c.codeResult = listing
	c.codeMessage = message
}

// CodeLookup returns the result of the latest listing-code lookup and a
// user-facing message when it failed or found nothing.
func (c *SearchController) CodeLookup() (*Listing, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.codeResult, c.codeMessage
}

// Query runs the paged browse query for the current filter state. For an
// unknown category it short-circuits with an empty page and a warning
// rather than sending a malformed request.
func (c *SearchController) Query(ctx context.Context) (*PageResult, error) {
	c.mu.Lock()
	cfg := c.registry.Config(c.category)
	if cfg == nil {
		category := c.category
		c.mu.Unlock()
		c.logger.Warnw("query for unknown category, returning empty result", "category", category)
		return &PageResult{Content: []*Listing{}}, nil
	}
	filters := c.filters
	myListings := c.myListings
	category := c.category
	c.mu.Unlock()

	qctx, cancel := c.opContext(ctx)
	defer cancel()
	var (
		page *PageResult
		err  error
	)
	if myListings {
		page, err = c.service.MyListings(qctx, filters.Page(), filters.Size(), category)
	} else {
		page, err = c.service.FilterListings(qctx, Serialize(filters, cfg))
	}
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.page = page
	c.mu.Unlock()
	return page, nil
}

// matchesTerm is the client-side title filter: case-insensitive substring
// match on title or listing code.
func matchesTerm(l *Listing, term string) bool {
	needle := strings.ToLower(term)
	return strings.Contains(strings.ToLower(l.Title), needle) ||
		strings.Contains(strings.ToLower(l.ListingNo), needle)
}

// Results resolves the visible listings for the current mode: the browse
// page in none mode, the latest code lookup in listingNo mode, and the
// client-side filtered buffer (full, when loaded, otherwise the current
// page) in title mode.
func (c *SearchController) Results() []*Listing {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.mode {
	case SearchModeListingNo:
		if c.codeResult != nil {
			return []*Listing{c.codeResult}
		}
		return []*Listing{}
	case SearchModeTitle:
		source := []*Listing{}
		if c.allPagesLoaded {
			source = c.allListings
		} else if c.page != nil {
			source = c.page.Content
		}
		out := make([]*Listing, 0, len(source))
		for _, l := range source {
			if matchesTerm(l, c.term) {
				out = append(out, l)
			}
		}
		return out
	default:
		if c.page != nil {
			return c.page.Content
		}
		return []*Listing{}
	}
}

// LoadAllPages sequentially fetches every page of the active browse query
// into the client-side buffer, then title search filters against the full
// buffer. Page N+1 is requested only after page N resolves, and the fetch
// stops at the configured page cap regardless of the reported total. The
// operation has no in-flight de-duplication guard; callers must not start
// a second invocation while one is running.
func (c *SearchController) LoadAllPages(ctx context.Context) error {
	c.mu.Lock()
	if c.allPagesLoaded {
		c.mu.Unlock()
		return nil
	}
	cfg := c.registry.Config(c.category)
	if cfg == nil {
		category := c.category
		c.mu.Unlock()
		c.logger.Warnw("load all pages for unknown category, skipping", "category", category)
		return nil
	}
	filters := c.filters
	myListings := c.myListings
	category := c.category
	c.mu.Unlock()

	var buffer []*Listing
	for page := 0; ; page++ {
		var (
			result *PageResult
			err    error
		)
		pctx, cancel := c.opContext(ctx)
		if myListings {
			result, err = c.service.MyListings(pctx, page, filters.Size(), category)
		} else {
			payload := Serialize(filters, cfg)
			payload.Page = page
			result, err = c.service.FilterListings(pctx, payload)
		}
		cancel()
		if err != nil {
			return err
		}
		buffer = append(buffer, result.Content...)
		if page >= result.TotalPages-1 || len(result.Content) == 0 || page+1 >= c.maxLoadAllPages {
			break
		}
	}

	c.mu.Lock()
	c.allListings = buffer
	c.allPagesLoaded = true
	c.mu.Unlock()
	return nil
}
