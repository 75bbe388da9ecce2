package types

import (
	"context"
	"encoding/json"
	"net/url"
)

// Client provides uniform remote CRUD operations over the school REST API.
// List, Get, Create, Update, and Transition return raw JSON; callers decode
// into the concrete record struct (see DecodeRecord).
type Client interface {
	// List fetches one page of the named resource.
	// The server envelope is normalized to a ListPage regardless of whether
	// the endpoint answers {data, total} or a bare array.
	List(ctx context.Context, resource string, q ListQuery) (*ListPage[json.RawMessage], error)

	// Get retrieves a single record by ID.
	// Returns ErrNotFound when the server answers 404.
	Get(ctx context.Context, resource, id string) (json.RawMessage, error)

	// Create posts a new record and returns the created representation.
	Create(ctx context.Context, resource string, record any) (json.RawMessage, error)

	// Update replaces the record with the given ID.
	Update(ctx context.Context, resource, id string, record any) (json.RawMessage, error)

	// Delete removes the record with the given ID.
	Delete(ctx context.Context, resource, id string) error

	// Transition performs a named server-side state change (set-default,
	// assign, resolve, wallet credit, ...) and returns the updated record.
	// The server is the authority on legal transitions.
	Transition(ctx context.Context, t Transition, id string, body any) (json.RawMessage, error)

	// DownloadURL builds an authenticated direct-download URL for report and
	// backup exports. The token travels as a query parameter because these
	// URLs are opened outside the normal request flow.
	DownloadURL(endpoint string, params url.Values) string
}

// Transition names a resource-specific action endpoint.
type Transition struct {
	Resource string // Resource whose cached lists the action invalidates.
	Method   string // HTTP method, usually POST or PUT.
	Endpoint string // Path prefix; the record ID is appended.
}

// Named transitions exposed by the school API.
var (
	TransitionSetDefaultYear = Transition{Resource: ResourceAcademicYears, Method: "PUT", Endpoint: "academic_years_set_default"}
	TransitionAssign         = Transition{Resource: ResourceComplaints, Method: "POST", Endpoint: "assign_complaint"}
	TransitionResolve        = Transition{Resource: ResourceComplaints, Method: "POST", Endpoint: "resolve_complaint"}
	TransitionClose          = Transition{Resource: ResourceComplaints, Method: "POST", Endpoint: "close_complaint"}
	TransitionWalletCredit   = Transition{Resource: ResourceStaffWallets, Method: "POST", Endpoint: "wallet_credit"}
	TransitionWalletDebit    = Transition{Resource: ResourceStaffWallets, Method: "POST", Endpoint: "wallet_debit"}
	TransitionBackupCreate   = Transition{Resource: ResourceBackups, Method: "POST", Endpoint: "backups_create"}
)
