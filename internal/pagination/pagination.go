// Package pagination turns an ordered gorm query into a bounded page with a
// uniform envelope. Counting and slicing both run in the database.
package pagination

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	// MaxPage keeps (Page-1)*Size within an int for every accepted size.
	MaxPage = math.MaxInt32 / MaxPageSize
)

// ErrPageOutOfRange is returned when a page past the last one is requested.
// The first page of an empty collection is not out of range.
var ErrPageOutOfRange = errors.New("invalid page")

type Params struct {
	Page int
	Size int
}

func (p Params) Limit() int  { return p.Size }
func (p Params) Offset() int { return (p.Page - 1) * p.Size }

// ParseParams reads raw page and size query values. Absent or non-numeric
// values fall back to defaults, size is capped at MaxPageSize and page at
// MaxPage.
func ParseParams(page, size string, defaultSize int) Params {
	if defaultSize < 1 {
		defaultSize = DefaultPageSize
	}
	p := Params{Page: DefaultPage, Size: defaultSize}

	if n, ok := positive(page); ok {
		p.Page = n
	}
	if n, ok := positive(size); ok {
		p.Size = n
	}
	if p.Size > MaxPageSize {
		p.Size = MaxPageSize
	}
	if p.Page > MaxPage {
		p.Page = MaxPage
	}
	return p
}

// positive parses a positive integer. Values past the int range saturate at
// math.MaxInt and are left to the caps in ParseParams.
func positive(raw string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return n, n > 0
}

// Page is the envelope returned by every list endpoint. Next and Previous are
// page numbers, nil at the boundaries.
type Page[T any] struct {
	Count    int64 `json:"count"`
	Next     *int  `json:"next"`
	Previous *int  `json:"previous"`
	Page     int   `json:"page"`
	Size     int   `json:"size"`
	Results  []T   `json:"results"`
}

func (p Page[T]) TotalPages() int {
	if p.Count == 0 || p.Size == 0 {
		return 0
	}
	return int((p.Count + int64(p.Size) - 1) / int64(p.Size))
}

// NewPage builds the envelope from a total and the items of the requested page.
func NewPage[T any](count int64, params Params, results []T) Page[T] {
	if results == nil {
		results = []T{}
	}
	page := Page[T]{
		Count:   count,
		Page:    params.Page,
		Size:    params.Size,
		Results: results,
	}
	if params.Page > 1 {
		prev := params.Page - 1
		page.Previous = &prev
	}
	if int64(params.Offset()+len(results)) < count {
		next := params.Page + 1
		page.Next = &next
	}
	return page
}

// Paginate counts the rows matched by query and loads one page of them. The
// query must already carry its filters and order; Paginate only adds
// OFFSET/LIMIT. The two reads are independent and may skew under concurrent
// writes. Scopes such as preloads are applied to the page fetch only.
func Paginate[M any](ctx context.Context, query *gorm.DB, params Params, scopes ...func(*gorm.DB) *gorm.DB) (Page[M], error) {
	var count int64
	if err := query.Session(&gorm.Session{}).WithContext(ctx).Count(&count).Error; err != nil {
		return Page[M]{}, fmt.Errorf("count: %w", err)
	}
	if params.Page < 1 || params.Page > MaxPage || params.Size < 1 || params.Offset() < 0 {
		return Page[M]{}, ErrPageOutOfRange
	}
	if params.Page > 1 && int64(params.Offset()) >= count {
		return Page[M]{}, ErrPageOutOfRange
	}

	var items []M
	if count > 0 {
		err := query.Session(&gorm.Session{}).WithContext(ctx).
			Scopes(scopes...).
			Offset(params.Offset()).
			Limit(params.Limit()).
			Find(&items).Error
		if err != nil {
			return Page[M]{}, fmt.Errorf("fetch page: %w", err)
		}
	}
	return NewPage(count, params, items), nil
}

// Map converts the results of a page while keeping its metadata.
func Map[T, U any](p Page[T], fn func(T) U) Page[U] {
	out := make([]U, len(p.Results))
	for i, item := range p.Results {
		out[i] = fn(item)
	}
	return Page[U]{
		Count:    p.Count,
		Next:     p.Next,
		Previous: p.Previous,
		Page:     p.Page,
		Size:     p.Size,
		Results:  out,
	}
}
