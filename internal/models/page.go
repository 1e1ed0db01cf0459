package models

// Page is a bounded slice of an ordered collection plus paging metadata.
// Number is 1-based and always refers to the page actually returned, which
// may differ from the requested one when the request was out of range.
type Page[T any] struct {
	Items      []T   `json:"items"`
	Number     int   `json:"page"`
	Size       int   `json:"page_size"`
	TotalCount int64 `json:"total_count"`
	TotalPages int   `json:"total_pages"`
}

// NewPage assembles a Page from a result slice and its total count.
func NewPage[T any](items []T, number, size int, total int64) *Page[T] {
	if items == nil {
		items = []T{}
	}
	return &Page[T]{
		Items:      items,
		Number:     number,
		Size:       size,
		TotalCount: total,
		TotalPages: TotalPages(total, size),
	}
}

// TotalPages returns the number of pages needed for total items at the
// given page size. An empty collection still has one (empty) page so that
// clamping always has a valid target.
func TotalPages(total int64, size int) int {
	if size <= 0 {
		return 1
	}
	pages := int((total + int64(size) - 1) / int64(size))
	if pages < 1 {
		return 1
	}
	return pages
}

// ClampPage normalizes a requested 1-based page number into the valid range
// for the collection: requests below the first page resolve to the first,
// requests past the last resolve to the last.
func ClampPage(requested int, total int64, size int) int {
	if requested < 1 {
		return 1
	}
	if last := TotalPages(total, size); requested > last {
		return last
	}
	return requested
}
