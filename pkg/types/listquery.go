package types

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// Default paging bounds for list queries.
const (
	DefaultPageSize = 25
	MaxPageSize     = 500
)

// ListQuery describes one page of a filtered, searchable list.
type ListQuery struct {
	Page     int               // 1-based page number.
	PageSize int               // Records per page; > 0.
	Search   string            // Settled search term (already debounced).
	Filters  map[string]string // Resource-specific filter parameters.
}

// Normalize clamps Page and PageSize into their valid ranges.
func (q ListQuery) Normalize() ListQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = DefaultPageSize
	}
	if q.PageSize > MaxPageSize {
		q.PageSize = MaxPageSize
	}
	return q
}

// Offset returns the zero-based record offset for the wire limit/offset form.
func (q ListQuery) Offset() int {
	return (q.Page - 1) * q.PageSize
}

// WithFilter returns a copy of q with the given filter set. The receiver's
// filter map is not shared with the copy.
func (q ListQuery) WithFilter(name, value string) ListQuery {
	filters := make(map[string]string, len(q.Filters)+1)
	for k, v := range q.Filters {
		filters[k] = v
	}
	filters[name] = value
	q.Filters = filters
	return q
}

// Key returns the canonical cache key for resource + q. Filters are sorted
// by name so equal queries always map to the same key, and every free-form
// component is escaped so the separators cannot be forged by search or
// filter values.
func (q ListQuery) Key(resource string) string {
	names := make([]string, 0, len(q.Filters))
	for name := range q.Filters {
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s|p=%d|n=%d|s=%s", resource, q.Page, q.PageSize, url.QueryEscape(q.Search))
	for _, name := range names {
		fmt.Fprintf(&sb, "|%s=%s", url.QueryEscape(name), url.QueryEscape(q.Filters[name]))
	}
	return sb.String()
}

// ListPage is one page of records plus the total count reported by the server.
type ListPage[T any] struct {
	Items []T `json:"data"`
	Total int `json:"total"`
}
