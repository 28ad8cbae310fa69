package shared

// Page slices a fully loaded list down to the requested page.
// Pages are 1-based; a page past the end of the list yields an empty slice
// rather than an error, so callers can simply ignore out-of-range requests.
func Page[T any](items []T, page, pageSize int) []T {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		return nil
	}

	start := (page - 1) * pageSize
	if start >= len(items) {
		return []T{}
	}

	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// TotalPages returns the number of pages needed to show total items.
func TotalPages(total, pageSize int) int {
	if pageSize < 1 || total <= 0 {
		return 0
	}
	pages := total / pageSize
	if total%pageSize > 0 {
		pages++
	}
	return pages
}

// ClampPage returns a page number guaranteed to address an existing page,
// falling back to 1 for empty lists. Changing the page size invalidates the
// current position, so callers reset to page 1 on a size change.
func ClampPage(page, total, pageSize int) int {
	if page < 1 {
		return 1
	}
	max := TotalPages(total, pageSize)
	if max == 0 {
		return 1
	}
	if page > max {
		return max
	}
	return page
}
