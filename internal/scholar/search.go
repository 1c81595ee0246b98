// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scholar

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/pdiddy/paper2notion/pkg/types"
)

// Search returns one page of papers matching query, starting at offset.
// The page size is fixed at types.PageSize. An empty query is sent as-is
// and the API decides the outcome.
func (c *Client) Search(ctx context.Context, query string, offset int) (types.SearchPage, error) {
	if offset < 0 {
		return types.SearchPage{}, &FetchError{Op: "search", Err: fmt.Errorf("negative offset %d", offset)}
	}

	params := url.Values{
		"query":  {query},
		"offset": {strconv.Itoa(offset)},
		"limit":  {strconv.Itoa(types.PageSize)},
	}

	var sr searchResponse
	if err := c.getJSON(ctx, "search", "paper/search", params, &sr); err != nil {
		return types.SearchPage{}, err
	}

	page := types.SearchPage{
		Results: make([]types.SearchResult, 0, len(sr.Data)),
		Total:   sr.Total,
		Offset:  sr.Offset,
		Next:    sr.Next,
	}
	for _, p := range sr.Data {
		page.Results = append(page.Results, types.SearchResult{ID: p.PaperID, Title: p.Title})
	}
	return page, nil
}

type searchResponse struct {
	Total  int           `json:"total"`
	Offset int           `json:"offset"`
	Next   *int          `json:"next"`
	Data   []searchPaper `json:"data"`
}

type searchPaper struct {
	PaperID string `json:"paperId"`
	Title   string `json:"title"`
}
