// Package cachedb implements the SQLite-backed query cache. It persists
// fetched list pages and per-resource invalidation generations between CLI
// invocations, so a mutation in one command is visible to the next list
// command without refetching everything else.
package cachedb

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/webdekho/schoolctl/pkg/types"
)

// fileName is the cache database file created inside the cache directory.
const fileName = "querycache.db"

// Store is a resource.Cache backed by SQLite.
type Store struct {
	mu     sync.RWMutex
	closed bool
	db     *sql.DB
}

// Open creates the cache directory if needed, opens the database, and
// ensures the schema exists.
func Open(cacheDir string) (*Store, error) {
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(cacheDir, fileName))
	if err != nil {
		return nil, fmt.Errorf("open cache db: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("init cache schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Get returns the cached page for key, missing when the entry is absent or
// predates the resource's last invalidation.
func (s *Store) Get(resource, key string) (*types.ListPage[json.RawMessage], bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, false, types.ErrCacheClosed
	}

	var payload []byte
	var entryGen int64
	err := s.db.QueryRow(
		`SELECT payload, generation FROM pages WHERE cache_key = ?`, key,
	).Scan(&payload, &entryGen)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read cache entry: %w", err)
	}

	if entryGen < s.generation(resource) {
		return nil, false, nil
	}

	page := new(types.ListPage[json.RawMessage])
	if err := json.Unmarshal(payload, page); err != nil {
		// A corrupt entry is a miss; the refetch overwrites it.
		return nil, false, nil
	}
	return page, true, nil
}

// Generation returns the resource's current invalidation generation.
func (s *Store) Generation(resource string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return 0, types.ErrCacheClosed
	}
	return s.generation(resource), nil
}

// Put stores a fetched page under key at gen, the generation the caller
// observed before fetching. Entries superseded by an invalidation that
// landed during the fetch are dropped.
func (s *Store) Put(resource, key string, gen int64, page *types.ListPage[json.RawMessage]) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return types.ErrCacheClosed
	}
	if gen < s.generation(resource) {
		return nil
	}

	payload, err := json.Marshal(page)
	if err != nil {
		return fmt.Errorf("encode cache entry: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT OR REPLACE INTO pages (cache_key, resource, generation, payload, fetched_at)
		 VALUES (?, ?, ?, ?, ?)`,
		key, resource, gen, payload, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("write cache entry: %w", err)
	}
	return nil
}

// Invalidate bumps the resource's generation, marking all of its cached
// pages stale, and drops the dead rows.
func (s *Store) Invalidate(resource string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return types.ErrCacheClosed
	}

	_, err := s.db.Exec(
		`INSERT INTO generations (resource, generation) VALUES (?, 1)
		 ON CONFLICT(resource) DO UPDATE SET generation = generation + 1`,
		resource,
	)
	if err != nil {
		return fmt.Errorf("bump generation: %w", err)
	}

	if _, err := s.db.Exec(`DELETE FROM pages WHERE resource = ?`, resource); err != nil {
		return fmt.Errorf("drop stale pages: %w", err)
	}
	return nil
}

// Close releases the database. Operations after Close return
// types.ErrCacheClosed. Idempotent.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

// generation reads the resource's current generation; absent rows are 0.
func (s *Store) generation(resource string) int64 {
	var gen int64
	err := s.db.QueryRow(
		`SELECT generation FROM generations WHERE resource = ?`, resource,
	).Scan(&gen)
	if err != nil {
		return 0
	}
	return gen
}
