package resource

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/webdekho/schoolctl/pkg/types"
)

// fakeClient counts calls and serves canned responses. When the gate
// channels are set, the next List signals listStarted and then waits on
// listBlock, letting a test hold a fetch in flight.
type fakeClient struct {
	mu        sync.Mutex
	listCalls int32
	mutations int32

	listPage    *types.ListPage[json.RawMessage]
	listErrs    []error // consumed per call before listPage is served
	mutErr      error
	listStarted chan struct{}
	listBlock   chan struct{}
}

func (f *fakeClient) List(ctx context.Context, resource string, q types.ListQuery) (*types.ListPage[json.RawMessage], error) {
	atomic.AddInt32(&f.listCalls, 1)

	f.mu.Lock()
	started, block := f.listStarted, f.listBlock
	f.listStarted, f.listBlock = nil, nil // gate only one fetch
	if len(f.listErrs) > 0 {
		err := f.listErrs[0]
		f.listErrs = f.listErrs[1:]
		f.mu.Unlock()
		return nil, err
	}
	page := f.listPage
	f.mu.Unlock()

	if started != nil {
		close(started)
	}
	if block != nil {
		<-block
	}
	return page, nil
}

func (f *fakeClient) Get(ctx context.Context, resource, id string) (json.RawMessage, error) {
	return json.RawMessage(`{"id":1}`), nil
}

func (f *fakeClient) Create(ctx context.Context, resource string, record any) (json.RawMessage, error) {
	atomic.AddInt32(&f.mutations, 1)
	return json.RawMessage(`{"id":9}`), f.mutErr
}

func (f *fakeClient) Update(ctx context.Context, resource, id string, record any) (json.RawMessage, error) {
	atomic.AddInt32(&f.mutations, 1)
	return json.RawMessage(`{"id":1}`), f.mutErr
}

func (f *fakeClient) Delete(ctx context.Context, resource, id string) error {
	atomic.AddInt32(&f.mutations, 1)
	return f.mutErr
}

func (f *fakeClient) Transition(ctx context.Context, t types.Transition, id string, body any) (json.RawMessage, error) {
	atomic.AddInt32(&f.mutations, 1)
	return json.RawMessage(`{"id":1}`), f.mutErr
}

func (f *fakeClient) DownloadURL(endpoint string, params url.Values) string {
	return "http://fake/" + endpoint
}

// countingNotifier counts successes and failures.
type countingNotifier struct {
	mu        sync.Mutex
	successes []string
	failures  []string
}

func (n *countingNotifier) Success(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.successes = append(n.successes, msg)
}

func (n *countingNotifier) Failure(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.failures = append(n.failures, msg)
}

func (n *countingNotifier) counts() (int, int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.successes), len(n.failures)
}

func newTestManager(client *fakeClient) (*Manager, *countingNotifier) {
	notifier := &countingNotifier{}
	return NewManager(client, NewMemoryCache(), notifier), notifier
}

func TestQueryServedFromCache(t *testing.T) {
	client := &fakeClient{listPage: testPage(1, 2, 3)}
	m, _ := newTestManager(client)
	ctx := context.Background()
	q := types.ListQuery{Page: 1, PageSize: 25}

	for i := 0; i < 3; i++ {
		page, err := m.Query(ctx, "grades", q)
		if err != nil {
			t.Fatalf("Query %d: %v", i, err)
		}
		if page.Total != 3 {
			t.Fatalf("Query %d: Total = %d", i, page.Total)
		}
	}

	if n := atomic.LoadInt32(&client.listCalls); n != 1 {
		t.Errorf("repeated identical queries hit the network %d times, want 1", n)
	}
}

func TestQueryDistinctKeysFetchSeparately(t *testing.T) {
	client := &fakeClient{listPage: testPage(1)}
	m, _ := newTestManager(client)
	ctx := context.Background()

	m.Query(ctx, "grades", types.ListQuery{Page: 1, PageSize: 25})
	m.Query(ctx, "grades", types.ListQuery{Page: 2, PageSize: 25})
	m.Query(ctx, "grades", types.ListQuery{Page: 1, PageSize: 25, Search: "x"})

	if n := atomic.LoadInt32(&client.listCalls); n != 3 {
		t.Errorf("distinct queries made %d fetches, want 3", n)
	}
}

func TestQueryRetriesTransientFailure(t *testing.T) {
	client := &fakeClient{
		listPage: testPage(1),
		listErrs: []error{errors.New("i/o timeout"), errors.New("i/o timeout")},
	}
	m, _ := newTestManager(client)

	page, err := m.Query(context.Background(), "grades", types.ListQuery{Page: 1, PageSize: 25})
	if err != nil {
		t.Fatalf("Query after transient failures: %v", err)
	}
	if page.Total != 1 {
		t.Errorf("Total = %d", page.Total)
	}
	if n := atomic.LoadInt32(&client.listCalls); n != 3 {
		t.Errorf("made %d attempts, want 3", n)
	}
}

func TestQueryExhaustedRetriesSurfaceError(t *testing.T) {
	boom := errors.New("connection refused")
	client := &fakeClient{
		listPage: testPage(1),
		listErrs: []error{boom, boom, boom},
	}
	m, _ := newTestManager(client)

	_, err := m.Query(context.Background(), "grades", types.ListQuery{Page: 1, PageSize: 25})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped fetch error, got %v", err)
	}

	// The failure must not be cached: the next call fetches again.
	if _, err := m.Query(context.Background(), "grades", types.ListQuery{Page: 1, PageSize: 25}); err != nil {
		t.Fatalf("Query after recovery: %v", err)
	}
}

func TestMutationInvalidatesResource(t *testing.T) {
	client := &fakeClient{listPage: testPage(1)}
	m, _ := newTestManager(client)
	ctx := context.Background()
	q := types.ListQuery{Page: 1, PageSize: 25}

	m.Query(ctx, "grades", q)
	m.Query(ctx, "divisions", q)

	if _, err := m.Create(ctx, "grades", map[string]string{"name": "Grade 9"}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	before := atomic.LoadInt32(&client.listCalls)
	m.Query(ctx, "grades", q)    // refetch, entry is stale
	m.Query(ctx, "divisions", q) // still cached
	after := atomic.LoadInt32(&client.listCalls)

	if after-before != 1 {
		t.Errorf("expected exactly 1 refetch after invalidation, got %d", after-before)
	}
}

func TestFetchSpanningMutationIsNotServedAsFresh(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	client := &fakeClient{listPage: testPage(1), listStarted: started, listBlock: release}
	m, _ := newTestManager(client)
	ctx := context.Background()
	q := types.ListQuery{Page: 1, PageSize: 25}

	done := make(chan struct{})
	go func() {
		defer close(done)
		m.Query(ctx, "grades", q)
	}()
	<-started

	// A mutation invalidates the resource while the fetch is in flight.
	if _, err := m.Create(ctx, "grades", map[string]string{"name": "Grade 9"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	close(release)
	<-done

	// The spanning fetch carries pre-mutation state; the next read must
	// refetch instead of serving it.
	if _, err := m.Query(ctx, "grades", q); err != nil {
		t.Fatalf("Query after mutation: %v", err)
	}
	if n := atomic.LoadInt32(&client.listCalls); n != 2 {
		t.Errorf("made %d fetches, want 2: the in-flight page was served as fresh", n)
	}
}

func TestMutationFailureLeavesCacheUntouched(t *testing.T) {
	client := &fakeClient{listPage: testPage(1), mutErr: errors.New("500")}
	m, notifier := newTestManager(client)
	ctx := context.Background()
	q := types.ListQuery{Page: 1, PageSize: 25}

	m.Query(ctx, "grades", q)

	if _, err := m.Create(ctx, "grades", map[string]string{}); err == nil {
		t.Fatal("expected mutation error")
	}

	before := atomic.LoadInt32(&client.listCalls)
	m.Query(ctx, "grades", q)
	if n := atomic.LoadInt32(&client.listCalls); n != before {
		t.Error("failed mutation invalidated the cache")
	}

	successes, failures := notifier.counts()
	if successes != 0 || failures != 1 {
		t.Errorf("notifications = %d success, %d failure; want 0/1", successes, failures)
	}
}

func TestMutationEmitsExactlyOneNotification(t *testing.T) {
	client := &fakeClient{listPage: testPage(1)}
	m, notifier := newTestManager(client)
	ctx := context.Background()

	if _, err := m.Update(ctx, "grades", "3", map[string]string{"name": "Grade 3"}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if err := m.Delete(ctx, "grades", "3"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	successes, failures := notifier.counts()
	if successes != 2 || failures != 0 {
		t.Errorf("notifications = %d success, %d failure; want 2/0", successes, failures)
	}
}

func TestDeleteGuardBlocksWithoutNetwork(t *testing.T) {
	client := &fakeClient{listPage: testPage(1)}
	m, notifier := newTestManager(client)

	guard := func() error { return types.ErrProtectedDefault }
	err := m.Delete(context.Background(), "academic_years", "1", guard)
	if !errors.Is(err, types.ErrProtectedDefault) {
		t.Fatalf("expected guard error, got %v", err)
	}

	if n := atomic.LoadInt32(&client.mutations); n != 0 {
		t.Errorf("guard failure still made %d network calls", n)
	}

	successes, failures := notifier.counts()
	if successes != 0 || failures != 1 {
		t.Errorf("notifications = %d success, %d failure; want 0/1", successes, failures)
	}

	// The notification names the guard's reason, not the generic fallback.
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	if notifier.failures[0] != types.ErrProtectedDefault.Error() {
		t.Errorf("failure message = %q, want %q", notifier.failures[0], types.ErrProtectedDefault.Error())
	}
}

func TestTransitionInvalidatesItsResource(t *testing.T) {
	client := &fakeClient{listPage: testPage(1)}
	m, notifier := newTestManager(client)
	ctx := context.Background()
	q := types.ListQuery{Page: 1, PageSize: 25}

	m.Query(ctx, types.ResourceAcademicYears, q)

	if _, err := m.Transition(ctx, types.TransitionSetDefaultYear, "2", nil); err != nil {
		t.Fatalf("Transition: %v", err)
	}

	before := atomic.LoadInt32(&client.listCalls)
	m.Query(ctx, types.ResourceAcademicYears, q)
	if atomic.LoadInt32(&client.listCalls) != before+1 {
		t.Error("transition did not invalidate its resource")
	}

	if successes, _ := notifier.counts(); successes != 1 {
		t.Errorf("successes = %d, want 1", successes)
	}
}

func TestAPIErrorMessageReachesNotification(t *testing.T) {
	client := &fakeClient{
		listPage: testPage(1),
		mutErr:   &types.APIError{StatusCode: 422, Message: "name already taken"},
	}
	m, notifier := newTestManager(client)

	m.Create(context.Background(), "grades", map[string]string{})

	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	if len(notifier.failures) != 1 || notifier.failures[0] != "name already taken" {
		t.Errorf("failure notifications = %v, want the server message", notifier.failures)
	}
}
