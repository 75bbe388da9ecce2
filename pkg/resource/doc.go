// Package resource implements the paginated-resource-manager pattern shared
// by every schoolctl command: cached, coalesced list queries; mutations that
// invalidate the affected resource's cache and emit exactly one notification;
// pagination math; and debounced search state.
package resource
