// Package service implements the console's client-side logic: the
// list-resource pattern shared by the usuarios and perfiles screens, the
// form policy, and the dashboard aggregation.
package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/gestionusuarios/admin-console/internal/core/domain"
	"github.com/gestionusuarios/admin-console/internal/metrics"
)

// PageSizes are the offered page sizes. DefaultPageSize applies until the
// user picks another.
var PageSizes = []int{5, 10, 25}

const DefaultPageSize = 10

// ListQuery is the listing key: one cached result set per (resource, page,
// size, search) tuple.
type ListQuery struct {
	Page   int
	Size   int
	Search string
}

// FetchFunc loads one page. Listing calls the search variant whenever the
// query carries a non-empty search term.
type FetchFunc[T any] func(ctx context.Context, q ListQuery) (*domain.Page[T], error)

// Listing drives the paginated, searchable fetch for one resource kind.
//
// Two counters guard its cache:
//   - generation: bumped whenever page, size, or search changes. A fetch
//     settling under an old generation is discarded, so a late response can
//     never flash outdated rows after the user changed filters.
//   - epoch: bumped by Invalidate after a successful mutation, forcing every
//     mounted view of the resource to refetch.
//
// While a fetch for a new query is in flight the previous result keeps being
// served (no blanking between pages).
type Listing[T any] struct {
	kind   string
	list   FetchFunc[T]
	search FetchFunc[T]
	log    zerolog.Logger

	mu         sync.Mutex
	page       int
	size       int
	searchTerm string
	generation uint64
	epoch      uint64
	last       *domain.Page[T]
	lastErr    error
}

func NewListing[T any](kind string, list, search FetchFunc[T], log zerolog.Logger) *Listing[T] {
	return &Listing[T]{
		kind:   kind,
		list:   list,
		search: search,
		log:    log,
		size:   DefaultPageSize,
	}
}

// Query returns the current listing key.
func (l *Listing[T]) Query() ListQuery {
	l.mu.Lock()
	defer l.mu.Unlock()
	return ListQuery{Page: l.page, Size: l.size, Search: l.searchTerm}
}

// SetPage moves to a zero-based page.
func (l *Listing[T]) SetPage(page int) {
	if page < 0 {
		page = 0
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if page == l.page {
		return
	}
	l.page = page
	l.generation++
}

// SetPageSize switches to one of the offered sizes and resets to page 0.
// Sizes outside the offered set are ignored.
func (l *Listing[T]) SetPageSize(size int) {
	offered := false
	for _, s := range PageSizes {
		if s == size {
			offered = true
			break
		}
	}
	if !offered {
		l.log.Debug().Int("size", size).Str("resource", l.kind).Msg("page size not offered, ignoring")
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if size == l.size {
		return
	}
	l.size = size
	l.page = 0
	l.generation++
}

// SetSearch replaces the search term and resets to page 0. An empty term
// means no filter, which routes back to the plain listing endpoint.
func (l *Listing[T]) SetSearch(term string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if term == l.searchTerm {
		return
	}
	l.searchTerm = term
	l.page = 0
	l.generation++
}

// Invalidate marks every cached page of this resource stale. The next Fetch
// on any mounted view goes back to the backend.
func (l *Listing[T]) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.epoch++
	l.last = nil
}

// Current returns the most recently applied page, nil when nothing has been
// fetched yet. Stale rows are intentionally served while a refetch is in
// flight.
func (l *Listing[T]) Current() *domain.Page[T] {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.last
}

// LastError returns the error of the most recent settled fetch, nil when it
// succeeded.
func (l *Listing[T]) LastError() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lastErr
}

// Fetch loads the page for the current query. When the query or cache epoch
// changed while the request was in flight, the settled result is discarded
// and the previously shown page is returned instead.
//
// On fetch failure the previous page (possibly nil) is returned alongside
// the error; the caller decides how to surface it. The table renders the
// retained rows or an empty state, never crashes.
func (l *Listing[T]) Fetch(ctx context.Context) (*domain.Page[T], error) {
	l.mu.Lock()
	q := ListQuery{Page: l.page, Size: l.size, Search: l.searchTerm}
	gen, epoch := l.generation, l.epoch
	fetch := l.list
	if q.Search != "" {
		fetch = l.search
	}
	l.mu.Unlock()

	page, err := fetch(ctx, q)

	l.mu.Lock()
	defer l.mu.Unlock()

	if gen != l.generation || epoch != l.epoch {
		// Superseded while in flight: keep whatever is currently shown.
		metrics.StaleResponsesTotal.WithLabelValues(l.kind).Inc()
		l.log.Debug().Str("resource", l.kind).Int("page", q.Page).Str("search", q.Search).Msg("discarded superseded fetch")
		return l.last, nil
	}

	if err != nil {
		l.lastErr = err
		return l.last, err
	}

	metrics.ListingFetchesTotal.WithLabelValues(l.kind).Inc()
	l.last = page
	l.lastErr = nil
	return page, nil
}
