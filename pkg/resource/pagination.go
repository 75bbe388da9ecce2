package resource

// TotalPages returns ceil(total / pageSize). Zero when total is zero;
// pageSize must be positive.
func TotalPages(total, pageSize int) int {
	if total <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

// ClampPage forces page into [1, TotalPages(total, pageSize)]. An empty list
// still clamps to page 1 so a query always names a valid page.
func ClampPage(page, total, pageSize int) int {
	last := TotalPages(total, pageSize)
	if last < 1 {
		last = 1
	}
	if page < 1 {
		return 1
	}
	if page > last {
		return last
	}
	return page
}
