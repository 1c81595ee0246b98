// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package view

import (
	"context"

	"github.com/pdiddy/paper2notion/pkg/types"
)

// Searcher runs one paged search.
type Searcher interface {
	Search(ctx context.Context, query string, offset int) (types.SearchPage, error)
}

// SearchView holds the result list and pagination for a query.
type SearchView struct {
	machine
	searcher Searcher

	query      string
	results    []types.SearchResult
	pagination types.Pagination
}

// NewSearchView returns an Idle search view.
func NewSearchView(s Searcher) *SearchView {
	return &SearchView{searcher: s, pagination: types.NewPagination(0, 0)}
}

// Submit starts a new query at the first page.
func (v *SearchView) Submit(ctx context.Context, query string) error {
	return v.fetch(ctx, query, 0, true)
}

// Next loads the following page of the current query.
func (v *SearchView) Next(ctx context.Context) error {
	v.mu.Lock()
	p, q := v.pagination, v.query
	v.mu.Unlock()
	if !p.HasNext() {
		return ErrNoNextPage
	}
	return v.fetch(ctx, q, p.NextOffset(), false)
}

// Prev loads the preceding page of the current query.
func (v *SearchView) Prev(ctx context.Context) error {
	v.mu.Lock()
	p, q := v.pagination, v.query
	v.mu.Unlock()
	if !p.HasPrev() {
		return ErrNoPrevPage
	}
	return v.fetch(ctx, q, p.PrevOffset(), false)
}

// fetch replaces the result list with the page at offset. On failure the
// list is emptied and query becomes current. A failed fresh query drops
// the old paging so Next cannot page through a query the user replaced;
// a failed Next or Prev keeps it for a retry.
func (v *SearchView) fetch(ctx context.Context, query string, offset int, fresh bool) error {
	if err := v.begin(); err != nil {
		return err
	}

	v.mu.Lock()
	v.results = nil
	v.mu.Unlock()

	page, err := v.searcher.Search(ctx, query, offset)
	v.finish(err, func() {
		if err != nil {
			v.results = nil
			v.query = query
			if fresh {
				v.pagination = types.NewPagination(0, 0)
			}
			return
		}
		v.query = query
		v.results = page.Results
		v.pagination = types.NewPagination(offset, page.Total)
	})
	return err
}

// Query returns the query of the last search, successful or not.
func (v *SearchView) Query() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.query
}

// Results returns the current page's results.
func (v *SearchView) Results() []types.SearchResult {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.results
}

// Pagination returns the current pagination state.
func (v *SearchView) Pagination() types.Pagination {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.pagination
}
