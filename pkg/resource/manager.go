package resource

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/webdekho/schoolctl/pkg/types"
)

// readRetries is the number of extra attempts for failed idempotent reads.
// Mutations are never retried.
const readRetries = 2

// retryBackoff is the fixed pause between read attempts.
const retryBackoff = 250 * time.Millisecond

// Notifier receives the one user-facing notification every mutation emits.
type Notifier interface {
	Success(message string)
	Failure(message string)
}

// NopNotifier discards notifications. Useful in tests and library callers
// that surface outcomes themselves.
type NopNotifier struct{}

func (NopNotifier) Success(string) {}
func (NopNotifier) Failure(string) {}

// Guard is a pre-check run before a mutation goes on the wire. Returning an
// error blocks the mutation with zero network calls; the server remains
// authoritative for everything a guard cannot see.
type Guard func() error

// Manager is the read/write front for one API client and cache pair.
//
// Reads go through the cache; concurrent fetches for the same key are
// coalesced so at most one request per key is in flight. Writes perform
// exactly one network call, invalidate the affected resource's cached pages
// on success, and emit exactly one notification either way.
type Manager struct {
	client   types.Client
	cache    Cache
	notifier Notifier
	group    singleflight.Group

	mu   sync.Mutex
	busy map[string]bool
}

// NewManager creates a Manager. A nil notifier falls back to NopNotifier.
func NewManager(client types.Client, cache Cache, notifier Notifier) *Manager {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &Manager{
		client:   client,
		cache:    cache,
		notifier: notifier,
		busy:     make(map[string]bool),
	}
}

// Query returns one page of the named resource, served from cache when the
// entry is still fresh. On a miss the fetch is coalesced per cache key and
// retried a small fixed number of times before the error is surfaced.
func (m *Manager) Query(ctx context.Context, resource string, q types.ListQuery) (*types.ListPage[json.RawMessage], error) {
	q = q.Normalize()
	key := q.Key(resource)

	if page, ok, err := m.cache.Get(resource, key); err != nil {
		return nil, err
	} else if ok {
		return page, nil
	}

	v, err, _ := m.group.Do(key, func() (any, error) {
		// Snapshot the generation before fetching: if a mutation invalidates
		// the resource while the fetch is in flight, the entry lands stale
		// and the next read refetches.
		gen, err := m.cache.Generation(resource)
		if err != nil {
			return nil, err
		}
		page, err := m.fetchWithRetry(ctx, resource, q)
		if err != nil {
			return nil, err
		}
		if err := m.cache.Put(resource, key, gen, page); err != nil {
			return nil, err
		}
		return page, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*types.ListPage[json.RawMessage]), nil
}

func (m *Manager) fetchWithRetry(ctx context.Context, resource string, q types.ListQuery) (*types.ListPage[json.RawMessage], error) {
	var lastErr error
	for attempt := 0; attempt <= readRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(retryBackoff):
			}
		}
		page, err := m.client.List(ctx, resource, q)
		if err == nil {
			return page, nil
		}
		lastErr = err
	}
	return nil, fmt.Errorf("list %s: %w", resource, lastErr)
}

// Get retrieves a single record, bypassing the list cache.
func (m *Manager) Get(ctx context.Context, resource, id string) (json.RawMessage, error) {
	return m.client.Get(ctx, resource, id)
}

// Create posts a new record and invalidates the resource's cached lists.
func (m *Manager) Create(ctx context.Context, resource string, record any) (json.RawMessage, error) {
	return m.mutate(ctx, resource, "create",
		fmt.Sprintf("%s record created", resource),
		fmt.Sprintf("could not create %s record", resource),
		nil,
		func(ctx context.Context) (json.RawMessage, error) {
			return m.client.Create(ctx, resource, record)
		})
}

// Update replaces a record and invalidates the resource's cached lists.
func (m *Manager) Update(ctx context.Context, resource, id string, record any) (json.RawMessage, error) {
	return m.mutate(ctx, resource, "update",
		fmt.Sprintf("%s record updated", resource),
		fmt.Sprintf("could not update %s record", resource),
		nil,
		func(ctx context.Context) (json.RawMessage, error) {
			return m.client.Update(ctx, resource, id, record)
		})
}

// Delete removes a record after running the given guards. A guard failure
// blocks the call before any network traffic and still produces the single
// failure notification.
func (m *Manager) Delete(ctx context.Context, resource, id string, guards ...Guard) error {
	_, err := m.mutate(ctx, resource, "delete",
		fmt.Sprintf("%s record deleted", resource),
		fmt.Sprintf("could not delete %s record", resource),
		guards,
		func(ctx context.Context) (json.RawMessage, error) {
			return nil, m.client.Delete(ctx, resource, id)
		})
	return err
}

// Transition performs a named server-side state change and invalidates the
// transition's resource.
func (m *Manager) Transition(ctx context.Context, t types.Transition, id string, body any) (json.RawMessage, error) {
	return m.mutate(ctx, t.Resource, t.Endpoint,
		fmt.Sprintf("%s applied", t.Endpoint),
		fmt.Sprintf("could not apply %s", t.Endpoint),
		nil,
		func(ctx context.Context) (json.RawMessage, error) {
			return m.client.Transition(ctx, t, id, body)
		})
}

// mutate runs guards, performs the single network call, invalidates the
// cache on success, and emits exactly one notification per invocation.
// Concurrent duplicates of the same resource+operation are rejected without
// touching the network, a best-effort double-submit shield.
func (m *Manager) mutate(ctx context.Context, resource, op, successMsg, failureMsg string, guards []Guard, call func(context.Context) (json.RawMessage, error)) (json.RawMessage, error) {
	for _, guard := range guards {
		if err := guard(); err != nil {
			m.notifier.Failure(types.UserMessage(err, failureMsg))
			return nil, err
		}
	}

	busyKey := resource + "|" + op
	m.mu.Lock()
	if m.busy[busyKey] {
		m.mu.Unlock()
		err := fmt.Errorf("%s %s: operation already in progress", op, resource)
		m.notifier.Failure(err.Error())
		return nil, err
	}
	m.busy[busyKey] = true
	m.mu.Unlock()
	defer func() {
		m.mu.Lock()
		delete(m.busy, busyKey)
		m.mu.Unlock()
	}()

	result, err := call(ctx)
	if err != nil {
		m.notifier.Failure(types.UserMessage(err, failureMsg))
		return nil, fmt.Errorf("%s %s: %w", op, resource, err)
	}

	if err := m.cache.Invalidate(resource); err != nil {
		// The write succeeded; report it, but surface the cache fault.
		m.notifier.Success(successMsg)
		return result, fmt.Errorf("invalidate %s cache: %w", resource, err)
	}

	m.notifier.Success(successMsg)
	return result, nil
}
