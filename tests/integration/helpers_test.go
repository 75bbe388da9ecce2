// Package integration exercises the full client stack (REST client,
// persistent cache, resource manager) against a fake school API.
package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/webdekho/schoolctl/internal/cachedb"
	"github.com/webdekho/schoolctl/pkg/resource"
	"github.com/webdekho/schoolctl/pkg/rest"
	"github.com/webdekho/schoolctl/pkg/types"
)

// fakeSchoolAPI is an in-memory stand-in for the school management backend.
// It serves the uniform list/create/delete shape for grades plus the
// set-default transition for academic years, and counts requests so tests
// can assert on cache behavior.
type fakeSchoolAPI struct {
	mu       sync.Mutex
	grades   []types.Grade
	years    []types.AcademicYear
	nextID   int64
	requests map[string]int
}

func newFakeSchoolAPI() *fakeSchoolAPI {
	return &fakeSchoolAPI{
		grades: []types.Grade{
			{ID: 1, Name: "Grade 1", SortOrder: 1},
			{ID: 2, Name: "Grade 2", SortOrder: 2, HasDivisions: true},
		},
		years: []types.AcademicYear{
			{ID: 1, Name: "2024-25", StartDate: "2024-06-01", EndDate: "2025-04-30", IsDefault: true},
			{ID: 2, Name: "2025-26", StartDate: "2025-06-01", EndDate: "2026-04-30"},
		},
		nextID:   10,
		requests: make(map[string]int),
	}
}

func (a *fakeSchoolAPI) count(key string) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.requests[key]
}

func (a *fakeSchoolAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if r.Header.Get("Authorization") != "Bearer integration-token" &&
		r.URL.Query().Get("token") != "integration-token" {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"message":"token expired"}`)
		return
	}

	key := r.Method + " " + r.URL.Path
	a.requests[key]++

	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/grades":
		a.writeList(w, a.grades)
	case r.Method == http.MethodPost && r.URL.Path == "/grades":
		var draft struct {
			Name      string `json:"name"`
			SortOrder int    `json:"sort_order"`
		}
		json.NewDecoder(r.Body).Decode(&draft)
		g := types.Grade{ID: a.nextID, Name: draft.Name, SortOrder: draft.SortOrder}
		a.nextID++
		a.grades = append(a.grades, g)
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(g)
	case r.Method == http.MethodDelete && strings.HasPrefix(r.URL.Path, "/grades/"):
		id, _ := strconv.ParseInt(strings.TrimPrefix(r.URL.Path, "/grades/"), 10, 64)
		for i, g := range a.grades {
			if g.ID == id {
				a.grades = append(a.grades[:i], a.grades[i+1:]...)
				w.WriteHeader(http.StatusNoContent)
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"message":"no such grade"}`)
	case r.Method == http.MethodGet && r.URL.Path == "/academic_years":
		a.writeList(w, a.years)
	case r.Method == http.MethodPut && strings.HasPrefix(r.URL.Path, "/academic_years_set_default/"):
		id, _ := strconv.ParseInt(strings.TrimPrefix(r.URL.Path, "/academic_years_set_default/"), 10, 64)
		for i := range a.years {
			a.years[i].IsDefault = types.IntBool(a.years[i].ID == id)
		}
		json.NewEncoder(w).Encode(map[string]any{"data": map[string]int64{"id": id}})
	default:
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"message":"unknown endpoint"}`)
	}
}

func (a *fakeSchoolAPI) writeList(w http.ResponseWriter, items any) {
	raw, _ := json.Marshal(items)
	var list []json.RawMessage
	json.Unmarshal(raw, &list)
	json.NewEncoder(w).Encode(map[string]any{"data": list, "total": len(list)})
}

// setupStack wires a REST client, a persistent SQLite cache in an isolated
// temp dir, and a manager against a fake API. The same cache dir can be
// reused across calls to model separate CLI invocations.
func setupStack(t *testing.T, api *fakeSchoolAPI, cacheDir string) *resource.Manager {
	t.Helper()

	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	client, err := rest.NewClient(types.Config{APIRoot: srv.URL, Token: "integration-token"})
	require.NoError(t, err)

	cache, err := cachedb.Open(cacheDir)
	require.NoError(t, err)
	t.Cleanup(func() { cache.Close() })

	return resource.NewManager(client, cache, resource.NopNotifier{})
}

// setupClientWithToken builds a bare REST client with an arbitrary token.
func setupClientWithToken(t *testing.T, api *fakeSchoolAPI, token string) (*rest.Client, error) {
	t.Helper()

	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	return rest.NewClient(types.Config{APIRoot: srv.URL, Token: token})
}
