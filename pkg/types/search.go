// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for paper2notion.
// Search results and pagination live here; paper details in paper.go,
// settings and client configuration in config.go.
package types

// PageSize is the fixed number of results requested per search page.
const PageSize = 5

// SearchResult is one entry of a search page: the paper identifier
// and its title as returned by the metadata API.
type SearchResult struct {
	// ID is the Semantic Scholar paper identifier.
	ID string `json:"id" yaml:"id"`

	// Title is the paper title.
	Title string `json:"title" yaml:"title"`
}

// SearchPage holds one page of search results plus the paging fields
// the API reported for it.
type SearchPage struct {
	Results []SearchResult `json:"results" yaml:"results"`

	// Total is the number of matches the API reports for the query.
	Total int `json:"total" yaml:"total"`

	// Offset is the offset this page was requested at.
	Offset int `json:"offset" yaml:"offset"`

	// Next is the offset of the following page, nil on the last page.
	Next *int `json:"next,omitempty" yaml:"next,omitempty"`
}

// Pagination tracks the position of a search view. PageSize is always
// the package constant; it is kept as a field so the state serializes
// self-contained.
type Pagination struct {
	Offset   int `json:"offset" yaml:"offset"`
	PageSize int `json:"page_size" yaml:"page_size"`
	Total    int `json:"total" yaml:"total"`
}

// NewPagination returns the pagination state for a page fetched at offset
// with the given total.
func NewPagination(offset, total int) Pagination {
	return Pagination{Offset: offset, PageSize: PageSize, Total: total}
}

// CurrentPage returns the 1-based page number for Offset.
func (p Pagination) CurrentPage() int {
	return p.Offset/p.size() + 1
}

// TotalPages returns ceil(Total / PageSize).
func (p Pagination) TotalPages() int {
	if p.Total <= 0 {
		return 0
	}
	size := p.size()
	return (p.Total + size - 1) / size
}

// HasNext reports whether a following page exists.
func (p Pagination) HasNext() bool {
	return p.CurrentPage() < p.TotalPages()
}

// HasPrev reports whether a preceding page exists.
func (p Pagination) HasPrev() bool {
	return p.Offset >= p.size()
}

// NextOffset returns the offset of the following page.
func (p Pagination) NextOffset() int {
	return p.Offset + p.size()
}

// PrevOffset returns the offset of the preceding page, never negative.
func (p Pagination) PrevOffset() int {
	if p.Offset < p.size() {
		return 0
	}
	return p.Offset - p.size()
}

func (p Pagination) size() int {
	if p.PageSize <= 0 {
		return PageSize
	}
	return p.PageSize
}
