package resource

import "testing"

func TestTotalPages(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		pageSize int
		want     int
	}{
		{name: "empty list has zero pages", total: 0, pageSize: 25, want: 0},
		{name: "exact multiple", total: 100, pageSize: 25, want: 4},
		{name: "partial last page rounds up", total: 95, pageSize: 10, want: 10},
		{name: "single record", total: 1, pageSize: 25, want: 1},
		{name: "one over a boundary", total: 26, pageSize: 25, want: 2},
		{name: "negative total treated as empty", total: -5, pageSize: 25, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TotalPages(tt.total, tt.pageSize); got != tt.want {
				t.Errorf("TotalPages(%d, %d) = %d, want %d", tt.total, tt.pageSize, got, tt.want)
			}
		})
	}
}

func TestClampPage(t *testing.T) {
	tests := []struct {
		name     string
		page     int
		total    int
		pageSize int
		want     int
	}{
		{name: "in range unchanged", page: 3, total: 95, pageSize: 10, want: 3},
		{name: "past the end clamps to last", page: 11, total: 95, pageSize: 10, want: 10},
		{name: "zero clamps to first", page: 0, total: 95, pageSize: 10, want: 1},
		{name: "negative clamps to first", page: -2, total: 95, pageSize: 10, want: 1},
		{name: "empty list clamps to 1", page: 5, total: 0, pageSize: 10, want: 1},
		{name: "last page exactly", page: 10, total: 95, pageSize: 10, want: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClampPage(tt.page, tt.total, tt.pageSize); got != tt.want {
				t.Errorf("ClampPage(%d, %d, %d) = %d, want %d", tt.page, tt.total, tt.pageSize, got, tt.want)
			}
		})
	}
}
