package resource

import (
	"sync"
	"time"

	"github.com/webdekho/schoolctl/pkg/types"
)

// QueryState holds the live list-query parameters for one view: current
// page, page size, filters, and the raw/settled pair of search terms. The
// settled term lags the raw term by the debounce delay, and any settled
// search or filter change resets the page to 1.
//
// OnChange (when set) runs after every change that alters the effective
// query, letting the view requery.
type QueryState struct {
	mu       sync.Mutex
	query    types.ListQuery
	raw      string
	debounce *Debouncer

	// OnChange is invoked outside the internal lock. Set it before first use.
	OnChange func(types.ListQuery)
}

// NewQueryState creates a QueryState with the given page size and debounce
// delay (non-positive delay uses SearchDelay).
func NewQueryState(pageSize int, delay time.Duration) *QueryState {
	s := &QueryState{
		query: types.ListQuery{Page: 1, PageSize: pageSize}.Normalize(),
	}
	s.debounce = NewDebouncer(delay, s.settleSearch)
	return s
}

// Query returns the current effective query.
func (s *QueryState) Query() types.ListQuery {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

// RawSearch returns the raw, not yet settled search input.
func (s *QueryState) RawSearch() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.raw
}

// SetSearch records a keystroke. The raw term updates immediately; the
// effective query changes only after the input settles.
func (s *QueryState) SetSearch(term string) {
	s.mu.Lock()
	s.raw = term
	s.mu.Unlock()
	s.debounce.Set(term)
}

// FlushSearch settles the raw term immediately (e.g. when the user presses
// enter instead of waiting out the delay).
func (s *QueryState) FlushSearch() {
	s.debounce.Flush()
}

// SetFilter sets a filter value and resets the page to 1.
func (s *QueryState) SetFilter(name, value string) {
	s.mu.Lock()
	s.query = s.query.WithFilter(name, value)
	s.query.Page = 1
	q := s.query
	s.mu.Unlock()
	s.changed(q)
}

// SetPage moves to the given page, clamped against the last known total.
func (s *QueryState) SetPage(page, total int) {
	s.mu.Lock()
	page = ClampPage(page, total, s.query.PageSize)
	if page == s.query.Page {
		s.mu.Unlock()
		return
	}
	s.query.Page = page
	q := s.query
	s.mu.Unlock()
	s.changed(q)
}

// SetPageSize changes the page size and resets the page to 1.
func (s *QueryState) SetPageSize(size int) {
	s.mu.Lock()
	s.query.PageSize = size
	s.query.Page = 1
	s.query = s.query.Normalize()
	q := s.query
	s.mu.Unlock()
	s.changed(q)
}

// Stop cancels any pending search propagation.
func (s *QueryState) Stop() {
	s.debounce.Stop()
}

func (s *QueryState) settleSearch(term string) {
	s.mu.Lock()
	if term == s.query.Search {
		s.mu.Unlock()
		return
	}
	s.query.Search = term
	s.query.Page = 1
	q := s.query
	s.mu.Unlock()
	s.changed(q)
}

func (s *QueryState) changed(q types.ListQuery) {
	if s.OnChange != nil {
		s.OnChange(q)
	}
}
