package types

import "testing"

func TestComplaintBadge(t *testing.T) {
	tests := []struct {
		status    string
		wantLabel string
		wantColor string
	}{
		{ComplaintStatusNew, "New", "primary"},
		{ComplaintStatusInProgress, "In Progress", "warning"},
		{ComplaintStatusResolved, "Resolved", "success"},
		{ComplaintStatusClosed, "Closed", "dark"},
		{"escalated", "unknown", "secondary"},
		{"", "unknown", "secondary"},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			b := ComplaintBadge(tt.status)
			if b.Label != tt.wantLabel || b.Color != tt.wantColor {
				t.Errorf("ComplaintBadge(%q) = %+v, want {%s %s}", tt.status, b, tt.wantLabel, tt.wantColor)
			}
		})
	}
}

func TestFlagBadge(t *testing.T) {
	on := FlagBadge(true, "Default", "—")
	if on.Label != "Default" || on.Color != "success" {
		t.Errorf("on flag = %+v", on)
	}
	off := FlagBadge(false, "Default", "—")
	if off.Label != "—" || off.Color != "secondary" {
		t.Errorf("off flag = %+v", off)
	}
}

func TestValidComplaintStatus(t *testing.T) {
	for _, s := range []string{ComplaintStatusNew, ComplaintStatusInProgress, ComplaintStatusResolved, ComplaintStatusClosed} {
		if !ValidComplaintStatus(s) {
			t.Errorf("%q should be valid", s)
		}
	}
	if ValidComplaintStatus("escalated") {
		t.Error("unrecognized status accepted")
	}
}
