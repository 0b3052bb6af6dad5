// Package listquery turns list-endpoint query strings into a bounded
// filter/sort/pagination plan and executes fetch+count concurrently under a
// timeout.
package listquery

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"readinglist-backend/pkg/apperror"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100

	defaultTimeout = 5 * time.Second
)

// Sort names one of the fixed sort profiles.
type Sort int

const (
	// SortNewest orders by creation time descending (default).
	SortNewest Sort = iota
	// SortTop orders by rating descending, then creation time descending.
	SortTop
)

// Spec is the resolved plan for one list request. It is derived once from
// query-string input and never persisted.
type Spec struct {
	Search  string
	Filters map[string]string
	Page    int
	Limit   int
	Sort    Sort
}

// Skip returns the offset implied by the page and limit.
func (s Spec) Skip() int {
	return (s.Page - 1) * s.Limit
}

// Options restricts which query parameters Parse will honor.
type Options struct {
	// SearchKey is the free-text search parameter ("q"); empty disables it.
	SearchKey string
	// FilterKeys are the categorical parameters accepted as exact-match
	// filters. Unrecognized parameters are ignored, not rejected.
	FilterKeys []string
	// AllowSort enables the "sort" parameter (new|top). Unknown values are
	// rejected upstream by validation and never reach Parse.
	AllowSort bool
}

// Parse builds a Spec from raw query values. Page and limit are clamped, out
// of range values are coerced rather than rejected.
func Parse(values url.Values, opts Options) Spec {
	page := atoiOr(values.Get("page"), 1)
	if page < 1 {
		page = 1
	}

	limit := atoiOr(values.Get("limit"), DefaultLimit)
	if limit < 1 {
		limit = 1
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	spec := Spec{
		Page:    page,
		Limit:   limit,
		Filters: make(map[string]string),
	}

	if opts.SearchKey != "" {
		spec.Search = values.Get(opts.SearchKey)
	}
	for _, key := range opts.FilterKeys {
		if v := values.Get(key); v != "" {
			spec.Filters[key] = v
		}
	}
	if opts.AllowSort && values.Get("sort") == "top" {
		spec.Sort = SortTop
	}

	return spec
}

// Result is the list response envelope.
type Result[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Pages int   `json:"pages"`
	Limit int   `json:"limit"`
}

// Execute runs the paginated fetch and the match count concurrently and
// races the pair against a timer. A timeout yields a distinct Timeout error;
// the losing calls are abandoned and their late results discarded.
func Execute[T any](ctx context.Context, spec Spec, fetch func(ctx context.Context) ([]T, error), count func(ctx context.Context) (int64, error)) (*Result[T], error) {
	return execute(ctx, spec, fetch, count, defaultTimeout)
}

func execute[T any](ctx context.Context, spec Spec, fetch func(ctx context.Context) ([]T, error), count func(ctx context.Context) (int64, error), timeout time.Duration) (*Result[T], error) {
	type fetchOut struct {
		items []T
		err   error
	}
	type countOut struct {
		total int64
		err   error
	}

	fetchCh := make(chan fetchOut, 1)
	countCh := make(chan countOut, 1)

	go func() {
		items, err := fetch(ctx)
		fetchCh <- fetchOut{items: items, err: err}
	}()
	go func() {
		total, err := count(ctx)
		countCh <- countOut{total: total, err: err}
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	var (
		items []T
		total int64
	)
	for pending := 2; pending > 0; pending-- {
		select {
		case out := <-fetchCh:
			if out.err != nil {
				return nil, out.err
			}
			items = out.items
		case out := <-countCh:
			if out.err != nil {
				return nil, out.err
			}
			total = out.total
		case <-timer.C:
			return nil, apperror.Timeout("Request timed out while querying the database")
		}
	}

	if items == nil {
		items = []T{}
	}

	return &Result[T]{
		Items: items,
		Total: total,
		Page:  spec.Page,
		Pages: pages(total, spec.Limit),
		Limit: spec.Limit,
	}, nil
}

// pages is ceil(total/limit), never below 1 even for an empty result.
func pages(total int64, limit int) int {
	p := int((total + int64(limit) - 1) / int64(limit))
	if p < 1 {
		return 1
	}
	return p
}

func atoiOr(s string, fallback int) int {
	if s == "" {
		return fallback
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}
