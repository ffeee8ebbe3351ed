package view

// Dots marks an ellipsis slot in a page range.
const Dots = -1

// TotalPages returns how many pages of size perPage the given item count
// fills. Zero items (or a non-positive page size) means zero pages.
func TotalPages(itemCount, perPage int) int {
	if itemCount <= 0 || perPage <= 0 {
		return 0
	}
	return (itemCount + perPage - 1) / perPage
}

// Page returns the 1-based page'th slice of items. Out-of-range pages yield
// an empty slice.
func Page[T any](items []T, page, perPage int) []T {
	if page < 1 || perPage <= 0 {
		return nil
	}
	start := (page - 1) * perPage
	if start >= len(items) {
		return nil
	}
	end := start + perPage
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// PageRange builds the page-number strip for a pagination control: always the
// first and last page, the current page with siblingCount neighbours on each
// side, and Dots where pages are elided.
//
//	PageRange(10, 0, 5) → [1 Dots 5 Dots 10]
func PageRange(totalPages, siblingCount, currentPage int) []int {
	// first + last + current + siblings on both sides + the two ellipses
	totalPageNumbers := siblingCount + 5

	if totalPageNumbers >= totalPages {
		return numberRange(1, totalPages)
	}

	leftSibling := max(currentPage-siblingCount, 1)
	rightSibling := min(currentPage+siblingCount, totalPages)

	showLeftDots := leftSibling > 2
	showRightDots := rightSibling < totalPages-2

	switch {
	case !showLeftDots && showRightDots:
		leftItemCount := 3 + 2*siblingCount
		out := numberRange(1, leftItemCount)
		return append(out, Dots, totalPages)

	case showLeftDots && !showRightDots:
		rightItemCount := 3 + 2*siblingCount
		out := []int{1, Dots}
		return append(out, numberRange(totalPages-rightItemCount+1, totalPages)...)

	case showLeftDots && showRightDots:
		out := []int{1, Dots}
		out = append(out, numberRange(leftSibling, rightSibling)...)
		return append(out, Dots, totalPages)

	default:
		return numberRange(1, totalPages)
	}
}

func numberRange(start, end int) []int {
	if end < start {
		return nil
	}
	out := make([]int, 0, end-start+1)
	for n := start; n <= end; n++ {
		out = append(out, n)
	}
	return out
}
