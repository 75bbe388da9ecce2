package types

// Badge is the display form of a status or flag value: a label plus a color
// name the renderer maps to its own palette.
type Badge struct {
	Label string
	Color string
}

// unknownBadge is the fallback for values no mapping recognizes.
var unknownBadge = Badge{Label: "unknown", Color: "secondary"}

// complaintBadges maps complaint statuses to their display badges.
var complaintBadges = map[string]Badge{
	ComplaintStatusNew:        {Label: "New", Color: "primary"},
	ComplaintStatusInProgress: {Label: "In Progress", Color: "warning"},
	ComplaintStatusResolved:   {Label: "Resolved", Color: "success"},
	ComplaintStatusClosed:     {Label: "Closed", Color: "dark"},
}

// ComplaintBadge returns the badge for a complaint status, or the unknown
// fallback for unrecognized values.
func ComplaintBadge(status string) Badge {
	if b, ok := complaintBadges[status]; ok {
		return b
	}
	return unknownBadge
}

// FlagBadge renders a boolean flag (default year, active vision, present
// mark) as a yes/no badge.
func FlagBadge(on IntBool, yes, no string) Badge {
	if on {
		return Badge{Label: yes, Color: "success"}
	}
	return Badge{Label: no, Color: "secondary"}
}
