package resource

import (
	"encoding/json"
	"sync"

	"github.com/webdekho/schoolctl/pkg/types"
)

// Cache stores fetched list pages keyed by the full query tuple. Entries
// belong to a resource; invalidating a resource marks every entry written
// before the invalidation as stale without touching entries for other
// resources. A late Put for a superseded query simply fills an entry nobody
// reads anymore.
//
// Writers snapshot the resource's generation with Generation before the
// fetch and hand it to Put, so a fetch spanning an invalidation lands stale
// instead of masking the newer server state.
type Cache interface {
	// Get returns the cached page for key, or ok=false on a miss or when the
	// entry predates the resource's last invalidation.
	Get(resource, key string) (page *types.ListPage[json.RawMessage], ok bool, err error)

	// Generation returns the resource's current invalidation generation.
	Generation(resource string) (int64, error)

	// Put stores a fetched page under key at the given generation, observed
	// by the caller before the fetch began. Entries whose generation has
	// already been superseded are dropped.
	Put(resource, key string, gen int64, page *types.ListPage[json.RawMessage]) error

	// Invalidate marks every cached page of the resource stale.
	Invalidate(resource string) error

	// Close releases cache resources. Operations after Close return
	// types.ErrCacheClosed.
	Close() error
}

// memoryCache is the in-process Cache used when no cache directory is
// configured. Staleness is tracked with a per-resource generation counter:
// Put records the generation the writer observed before fetching,
// Invalidate bumps the counter, and Get misses on entries from older
// generations.
type memoryCache struct {
	mu      sync.RWMutex
	closed  bool
	entries map[string]memoryEntry
	gens    map[string]int64
}

type memoryEntry struct {
	resource string
	gen      int64
	page     *types.ListPage[json.RawMessage]
}

// NewMemoryCache creates an empty in-memory cache.
func NewMemoryCache() Cache {
	return &memoryCache{
		entries: make(map[string]memoryEntry),
		gens:    make(map[string]int64),
	}
}

func (c *memoryCache) Get(resource, key string) (*types.ListPage[json.RawMessage], bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.closed {
		return nil, false, types.ErrCacheClosed
	}
	e, ok := c.entries[key]
	if !ok || e.gen < c.gens[resource] {
		return nil, false, nil
	}
	return e.page, true, nil
}

func (c *memoryCache) Generation(resource string) (int64, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.closed {
		return 0, types.ErrCacheClosed
	}
	return c.gens[resource], nil
}

func (c *memoryCache) Put(resource, key string, gen int64, page *types.ListPage[json.RawMessage]) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return types.ErrCacheClosed
	}
	// An invalidation landed while the page was being fetched; the entry
	// would mask the newer server state, so drop it.
	if gen < c.gens[resource] {
		return nil
	}
	c.entries[key] = memoryEntry{resource: resource, gen: gen, page: page}
	return nil
}

func (c *memoryCache) Invalidate(resource string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return types.ErrCacheClosed
	}
	c.gens[resource]++
	return nil
}

func (c *memoryCache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	c.entries = nil
	return nil
}
