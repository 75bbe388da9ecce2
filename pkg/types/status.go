package types

// Complaint statuses. A complaint moves new → in_progress → resolved → closed;
// each transition is a distinct server call and the server decides which
// transitions are legal, so there is no client-side transition check here.
const (
	ComplaintStatusNew        = "new"
	ComplaintStatusInProgress = "in_progress"
	ComplaintStatusResolved   = "resolved"
	ComplaintStatusClosed     = "closed"
)

// validComplaintStatuses is the set of recognized complaint status values.
var validComplaintStatuses = map[string]bool{
	ComplaintStatusNew:        true,
	ComplaintStatusInProgress: true,
	ComplaintStatusResolved:   true,
	ComplaintStatusClosed:     true,
}

// ValidComplaintStatus reports whether s is a recognized complaint status.
// Used only to validate the --status list filter before it goes on the wire.
func ValidComplaintStatus(s string) bool {
	return validComplaintStatuses[s]
}
