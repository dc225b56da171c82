// Package pagination splits ordered result sets into fixed-size pages.
//
// Page numbers are 1-based and resolved the way a forgiving page link should
// be: an absent or non-numeric number selects the first page, a number past the
// end (or below 1) selects the last page, and an empty result is a single empty
// page. Input order is never changed.
package pagination

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

const DefaultPageSize = 6

// Page is one page of an ordered result set.
type Page[T any] struct {
	Items        []T   `json:"items"`
	Number       int   `json:"number"`
	NumPages     int   `json:"numPages"`
	Total        int64 `json:"total"`
	Size         int   `json:"size"`
	HasPrevious  bool  `json:"hasPrevious"`
	HasNext      bool  `json:"hasNext"`
	PreviousPage int   `json:"previousPage,omitempty"`
	NextPage     int   `json:"nextPage,omitempty"`
}

// ParseNumber reads a page number parameter. Absent or non-integer values mean page 1.
// Integers too large for int saturate, so they still resolve to the last page.
func ParseNumber(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if errors.Is(err, strconv.ErrRange) {
		return n
	}
	if err != nil {
		return 1
	}
	return n
}

// NumPages is the number of pages needed for total items, never less than one.
func NumPages(total int64, size int) int {
	if size < 1 {
		size = DefaultPageSize
	}
	if total <= 0 {
		return 1
	}
	return int((total + int64(size) - 1) / int64(size))
}

// Resolve maps a requested page number onto an existing page.
func Resolve(number int, total int64, size int) int {
	pages := NumPages(total, size)
	if number < 1 || number > pages {
		return pages
	}
	return number
}

func newPage[T any](items []T, number int, total int64, size int) Page[T] {
	if items == nil {
		items = []T{}
	}
	pages := NumPages(total, size)
	p := Page[T]{
		Items:       items,
		Number:      number,
		NumPages:    pages,
		Total:       total,
		Size:        size,
		HasPrevious: number > 1,
		HasNext:     number < pages,
	}
	if p.HasPrevious {
		p.PreviousPage = number - 1
	}
	if p.HasNext {
		p.NextPage = number + 1
	}
	return p
}

// Slice pages an in-memory slice that is already in display order.
func Slice[T any](items []T, size int, raw string) Page[T] {
	if size < 1 {
		size = DefaultPageSize
	}
	total := int64(len(items))
	number := Resolve(ParseNumber(raw), total, size)

	start := (number - 1) * size
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return newPage(items[start:end], number, total, size)
}

// Query pages an ordered gorm query. The query is counted first, then the
// resolved page is fetched with scopes applied, so preloads belong in scopes
// rather than in q.
func Query[T any](ctx context.Context, q *gorm.DB, size int, raw string, scopes ...func(*gorm.DB) *gorm.DB) (Page[T], error) {
	if size < 1 {
		size = DefaultPageSize
	}
	q = q.WithContext(ctx).Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return Page[T]{}, err
	}

	number := Resolve(ParseNumber(raw), total, size)

	var items []T
	if total > 0 {
		err := q.Scopes(scopes...).Offset((number - 1) * size).Limit(size).Find(&items).Error
		if err != nil {
			return Page[T]{}, err
		}
	}
	return newPage(items, number, total, size), nil
}
