package shared

import "strings"

// DefaultPageSize is used when a list request does not specify a size.
const DefaultPageSize = 20

// PageRequest represents zero-based pagination parameters as they arrive
// on the wire. Page numbers beyond the available data yield empty pages,
// never errors.
type PageRequest struct {
	Page int
	Size int
}

// Normalize clamps a page request to usable values.
func (p PageRequest) Normalize() PageRequest {
	if p.Page < 0 {
		p.Page = 0
	}
	if p.Size <= 0 {
		p.Size = DefaultPageSize
	}
	return p
}

// Offset returns the store-level offset for this page.
func (p PageRequest) Offset() int {
	return p.Page * p.Size
}

// SortSpec is a parsed "<field>,<asc|desc>" sort parameter.
type SortSpec struct {
	Field string
	Desc  bool
}

// DefaultSort orders by creation time, newest first.
func DefaultSort() SortSpec {
	return SortSpec{Field: "createdAt", Desc: true}
}

// ParseSortSpec parses a sort parameter of the form "<field>,<asc|desc>".
// A missing or malformed spec (no comma) falls back to the default sort.
// The direction is descending only when the second token equals "desc"
// case-insensitively; anything else sorts ascending. The field name is not
// validated here; the store resolves it against its column whitelist.
func ParseSortSpec(sort string) SortSpec {
	if !strings.Contains(sort, ",") {
		return DefaultSort()
	}
	parts := strings.SplitN(sort, ",", 2)
	field := strings.TrimSpace(parts[0])
	if field == "" {
		return DefaultSort()
	}
	return SortSpec{
		Field: field,
		Desc:  strings.EqualFold(strings.TrimSpace(parts[1]), "desc"),
	}
}

// SlicePage returns the page [page*size, page*size+size) of items together
// with the total size of the unsliced set. Requests past the end of the
// data return an empty, non-nil slice.
func SlicePage[T any](items []T, req PageRequest) ([]T, int64) {
	req = req.Normalize()
	total := int64(len(items))
	start := req.Offset()
	if start >= len(items) {
		return []T{}, total
	}
	end := start + req.Size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], total
}
