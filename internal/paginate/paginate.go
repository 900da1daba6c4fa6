// Package paginate slices ordered collections into fixed-size pages.
package paginate

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// PageSize is the number of posts shown on every listing.
const PageSize = 10

// Window locates a page inside a collection of Total items before the items
// themselves are loaded. Offset and Limit feed directly into a query.
type Window struct {
	Number   int
	NumPages int
	Total    int64
	Offset   int
	Limit    int
}

// Page is one slice of an ordered collection plus navigation metadata.
type Page[T any] struct {
	Items          []T
	Number         int
	NumPages       int
	Total          int64
	HasPrevious    bool
	HasNext        bool
	PreviousNumber int
	NextNumber     int
}

// ParseNumber reads the page query parameter. Absent, non-numeric and
// non-positive values all mean the first page. Positive numbers too large
// for an int saturate, so New clamps them to the last page.
func ParseNumber(raw string) int {
	raw = strings.TrimSpace(raw)
	n, err := strconv.Atoi(raw)
	if errors.Is(err, strconv.ErrRange) && !strings.HasPrefix(raw, "-") {
		return math.MaxInt
	}
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// New computes the window for the requested page. Requests past the end land
// on the last page; an empty collection still has one, empty, page.
func New(total int64, size, requested int) Window {
	if size <= 0 {
		size = PageSize
	}
	if total < 0 {
		total = 0
	}

	numPages := int((total + int64(size) - 1) / int64(size))
	if numPages < 1 {
		numPages = 1
	}

	number := requested
	if number < 1 {
		number = 1
	}
	if number > numPages {
		number = numPages
	}

	return Window{
		Number:   number,
		NumPages: numPages,
		Total:    total,
		Offset:   (number - 1) * size,
		Limit:    size,
	}
}

// FromWindow attaches the loaded items to w.
func FromWindow[T any](w Window, items []T) Page[T] {
	if items == nil {
		items = []T{}
	}
	p := Page[T]{
		Items:       items,
		Number:      w.Number,
		NumPages:    w.NumPages,
		Total:       w.Total,
		HasPrevious: w.Number > 1,
		HasNext:     w.Number < w.NumPages,
	}
	if p.HasPrevious {
		p.PreviousNumber = w.Number - 1
	}
	if p.HasNext {
		p.NextNumber = w.Number + 1
	}
	return p
}

// Slice paginates an in-memory collection, preserving its order.
func Slice[T any](items []T, size, requested int) Page[T] {
	w := New(int64(len(items)), size, requested)
	start := w.Offset
	if start > len(items) {
		start = len(items)
	}
	end := start + w.Limit
	if end > len(items) {
		end = len(items)
	}
	return FromWindow(w, items[start:end])
}

// Pages lists every page number, for rendering a page range.
func (p Page[T]) Pages() []int {
	out := make([]int, p.NumPages)
	for i := range out {
		out[i] = i + 1
	}
	return out
}
