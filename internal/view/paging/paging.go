// Package paging slices filtered lists into pages and computes the page
// metadata a pager renders.
package paging

// ShowAll as a page size disables slicing: everything lands on one page.
const ShowAll = 0

// windowSize is how many numbered page buttons a pager shows.
const windowSize = 5

type Info struct {
	Page        int   `json:"page"`
	PageSize    int   `json:"page_size"`
	TotalPages  int   `json:"total_pages"`
	TotalItems  int   `json:"total_items"`
	ShowingFrom int   `json:"showing_from"`
	ShowingTo   int   `json:"showing_to"`
	HasPrev     bool  `json:"has_prev"`
	HasNext     bool  `json:"has_next"`
	Window      []int `json:"window"`
}

// TotalPages is ceil(count/size), never less than 1.
func TotalPages(count, size int) int {
	if size <= ShowAll || count <= 0 {
		return 1
	}
	return (count + size - 1) / size
}

// EffectivePage clamps the requested page into [1, totalPages].
func EffectivePage(requested, totalPages int) int {
	if requested < 1 {
		return 1
	}
	if requested > totalPages {
		return totalPages
	}
	return requested
}

// Paginate returns the items of the effective page and its metadata. The
// requested page is clamped so a page past the end renders the last one.
func Paginate[T any](items []T, page, size int) ([]T, Info) {
	count := len(items)
	if size < ShowAll {
		size = ShowAll
	}
	total := TotalPages(count, size)
	eff := EffectivePage(page, total)

	lo, hi := 0, count
	if size > ShowAll {
		lo = (eff - 1) * size
		hi = min(eff*size, count)
	}

	info := Info{
		Page:       eff,
		PageSize:   size,
		TotalPages: total,
		TotalItems: count,
		HasPrev:    eff > 1,
		HasNext:    eff < total,
		Window:     Window(eff, total),
	}
	if count > 0 {
		info.ShowingFrom = lo + 1
		info.ShowingTo = hi
	}

	return items[lo:hi:hi], info
}

// Window lists up to five page numbers centred on page where possible.
func Window(page, totalPages int) []int {
	if totalPages <= windowSize {
		pages := make([]int, totalPages)
		for i := range pages {
			pages[i] = i + 1
		}
		return pages
	}
	start := max(1, min(page-2, totalPages-windowSize+1))
	pages := make([]int, windowSize)
	for i := range pages {
		pages[i] = start + i
	}
	return pages
}

// Map converts the items of a page while keeping its metadata.
func Map[T, U any](items []T, fn func(T) U) []U {
	out := make([]U, len(items))
	for i, item := range items {
		out[i] = fn(item)
	}
	return out
}
