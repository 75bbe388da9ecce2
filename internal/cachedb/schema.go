package cachedb

// schemaSQL creates the cache tables. Pages are keyed by the full query
// tuple; generations implement per-resource invalidation that survives
// process restarts, giving read-after-write consistency across consecutive
// CLI invocations.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS generations (
    resource   TEXT PRIMARY KEY,
    generation INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS pages (
    cache_key  TEXT PRIMARY KEY,
    resource   TEXT NOT NULL,
    generation INTEGER NOT NULL,
    payload    BLOB NOT NULL,
    fetched_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_pages_resource ON pages(resource);
`
