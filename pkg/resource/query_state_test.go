package resource

import (
	"sync"
	"testing"
	"time"

	"github.com/webdekho/schoolctl/pkg/types"
)

// queryRecorder captures OnChange invocations.
type queryRecorder struct {
	mu      sync.Mutex
	queries []types.ListQuery
}

func (r *queryRecorder) record(q types.ListQuery) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queries = append(r.queries, q)
}

func (r *queryRecorder) last(t *testing.T) types.ListQuery {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.queries) == 0 {
		t.Fatal("no query changes recorded")
	}
	return r.queries[len(r.queries)-1]
}

func (r *queryRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.queries)
}

func TestQueryStateSearchSettlesAndResetsPage(t *testing.T) {
	rec := &queryRecorder{}
	s := NewQueryState(10, 20*time.Millisecond)
	s.OnChange = rec.record
	defer s.Stop()

	s.SetPage(4, 95)
	if got := rec.last(t); got.Page != 4 {
		t.Fatalf("SetPage: page = %d, want 4", got.Page)
	}

	s.SetSearch("r")
	s.SetSearch("ra")
	s.SetSearch("rahul")

	// Raw term updates immediately, effective query lags.
	if s.RawSearch() != "rahul" {
		t.Errorf("RawSearch = %q, want rahul", s.RawSearch())
	}
	if q := s.Query(); q.Search != "" {
		t.Errorf("query settled early: %q", q.Search)
	}

	time.Sleep(80 * time.Millisecond)

	got := rec.last(t)
	if got.Search != "rahul" {
		t.Errorf("settled search = %q, want rahul", got.Search)
	}
	if got.Page != 1 {
		t.Errorf("settled search must reset page to 1, got %d", got.Page)
	}
}

func TestQueryStateUnchangedSearchDoesNotRequery(t *testing.T) {
	rec := &queryRecorder{}
	s := NewQueryState(10, 10*time.Millisecond)
	s.OnChange = rec.record
	defer s.Stop()

	s.SetSearch("")
	time.Sleep(50 * time.Millisecond)

	if n := rec.count(); n != 0 {
		t.Fatalf("settling an unchanged term fired %d changes", n)
	}
}

func TestQueryStateFilterResetsPage(t *testing.T) {
	rec := &queryRecorder{}
	s := NewQueryState(10, time.Hour)
	s.OnChange = rec.record
	defer s.Stop()

	s.SetPage(3, 95)
	s.SetFilter("grade_id", "2")

	got := rec.last(t)
	if got.Filters["grade_id"] != "2" {
		t.Errorf("filter not applied: %v", got.Filters)
	}
	if got.Page != 1 {
		t.Errorf("filter change must reset page to 1, got %d", got.Page)
	}
}

func TestQueryStateSetPageClamps(t *testing.T) {
	s := NewQueryState(10, time.Hour)
	defer s.Stop()

	s.SetPage(42, 95)
	if q := s.Query(); q.Page != 10 {
		t.Errorf("page = %d, want clamp to 10", q.Page)
	}

	s.SetPage(-1, 95)
	if q := s.Query(); q.Page != 1 {
		t.Errorf("page = %d, want clamp to 1", q.Page)
	}
}

func TestQueryStateSetPageSameValueNoChange(t *testing.T) {
	rec := &queryRecorder{}
	s := NewQueryState(10, time.Hour)
	s.OnChange = rec.record
	defer s.Stop()

	s.SetPage(1, 95)
	if n := rec.count(); n != 0 {
		t.Fatalf("no-op page change fired %d changes", n)
	}
}

func TestQueryStateSetPageSizeResetsPage(t *testing.T) {
	rec := &queryRecorder{}
	s := NewQueryState(10, time.Hour)
	s.OnChange = rec.record
	defer s.Stop()

	s.SetPage(5, 95)
	s.SetPageSize(50)

	got := rec.last(t)
	if got.PageSize != 50 {
		t.Errorf("page size = %d, want 50", got.PageSize)
	}
	if got.Page != 1 {
		t.Errorf("page size change must reset page to 1, got %d", got.Page)
	}
}

func TestQueryStateFlushSearch(t *testing.T) {
	rec := &queryRecorder{}
	s := NewQueryState(10, time.Hour)
	s.OnChange = rec.record
	defer s.Stop()

	s.SetSearch("priya")
	s.FlushSearch()

	got := rec.last(t)
	if got.Search != "priya" || got.Page != 1 {
		t.Errorf("flushed query = %+v", got)
	}
}
