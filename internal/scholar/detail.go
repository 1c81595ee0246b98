// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scholar

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/pdiddy/paper2notion/pkg/types"
)

// detailFields is the fixed field list requested for a paper.
const detailFields = "url,title,venue,publicationVenue,year,authors,abstract,citationCount,tldr,openAccessPdf,externalIds"

// FetchDetail returns the metadata for paper id with DerivedPDFURL filled in.
func (c *Client) FetchDetail(ctx context.Context, id string) (types.PaperDetail, error) {
	if strings.TrimSpace(id) == "" {
		return types.PaperDetail{}, &FetchError{Op: "detail", Err: fmt.Errorf("empty paper id")}
	}

	endpoint, err := paperPath(id)
	if err != nil {
		return types.PaperDetail{}, &FetchError{Op: "detail", Err: err}
	}
	params := url.Values{"fields": {detailFields}}

	var dr detailResponse
	if err := c.getJSON(ctx, "detail", endpoint, params, &dr); err != nil {
		return types.PaperDetail{}, err
	}

	d := dr.toDetail(id)
	d.DerivedPDFURL, d.HasPDF = ResolvePDFURL(d)
	return d, nil
}

// paperPath builds the detail endpoint for id without cleaning it, so
// prefixed ids such as "DOI:10.18653/v1/N18-3011" or "URL:https://..."
// reach the API intact. Each segment is escaped; "." and ".." segments
// are rejected.
func paperPath(id string) (string, error) {
	segs := strings.Split(id, "/")
	for i, s := range segs {
		if s == "." || s == ".." {
			return "", fmt.Errorf("invalid paper id %q", id)
		}
		segs[i] = url.PathEscape(s)
	}
	return "paper/" + strings.Join(segs, "/"), nil
}

type detailResponse struct {
	PaperID          string                     `json:"paperId"`
	URL              string                     `json:"url"`
	Title            string                     `json:"title"`
	Abstract         *string                    `json:"abstract"`
	Venue            *string                    `json:"venue"`
	PublicationVenue *publicationVenue          `json:"publicationVenue"`
	Year             *int                       `json:"year"`
	CitationCount    *int                       `json:"citationCount"`
	Authors          []semanticAuthor           `json:"authors"`
	Tldr             *tldr                      `json:"tldr"`
	OpenAccessPDF    *openAccessPDF             `json:"openAccessPdf"`
	ExternalIDs      map[string]json.RawMessage `json:"externalIds"`
}

type publicationVenue struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type semanticAuthor struct {
	AuthorID *string `json:"authorId"`
	Name     string  `json:"name"`
}

type tldr struct {
	Model *string `json:"model"`
	Text  *string `json:"text"`
}

type openAccessPDF struct {
	URL    *string `json:"url"`
	Status *string `json:"status"`
}

// toDetail converts the wire shape into a PaperDetail. requestedID is used
// when the response omits paperId.
func (r detailResponse) toDetail(requestedID string) types.PaperDetail {
	d := types.PaperDetail{
		ID:            r.PaperID,
		URL:           r.URL,
		Title:         r.Title,
		Abstract:      deref(r.Abstract),
		Venue:         deref(r.Venue),
		Year:          r.Year,
		CitationCount: r.CitationCount,
		Authors:       make([]types.Author, 0, len(r.Authors)),
	}
	if d.ID == "" {
		d.ID = requestedID
	}
	if r.PublicationVenue != nil {
		d.PublicationVenue = r.PublicationVenue.Name
	}
	for _, a := range r.Authors {
		d.Authors = append(d.Authors, types.Author{ID: deref(a.AuthorID), Name: a.Name})
	}

	if r.Tldr != nil && r.Tldr.Text != nil {
		d.Summary = &types.Summary{Model: deref(r.Tldr.Model), Text: *r.Tldr.Text}
	}

	if oa := r.OpenAccessPDF; oa != nil && deref(oa.URL) != "" {
		d.OpenAccessPDF = &types.OpenAccessPDF{
			URL:    *oa.URL,
			Status: deref(oa.Status),
		}
	}

	d.ExternalIDs = normalizeExternalIDs(r.ExternalIDs)
	return d
}

// normalizeExternalIDs flattens the identifier map to strings. The API mixes
// string values with integers (CorpusId); nulls are dropped.
func normalizeExternalIDs(raw map[string]json.RawMessage) types.ExternalIDs {
	if len(raw) == 0 {
		return nil
	}
	ids := make(types.ExternalIDs, len(raw))
	for scheme, v := range raw {
		v = bytes.TrimSpace(v)
		if len(v) == 0 || bytes.Equal(v, []byte("null")) {
			continue
		}
		var s string
		if err := json.Unmarshal(v, &s); err == nil {
			ids[scheme] = s
			continue
		}
		ids[scheme] = string(v)
	}
	return ids
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
