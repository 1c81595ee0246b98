// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package notion

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/paper2notion/pkg/types"
)

func intPtr(n int) *int { return &n }

func sampleDetail() types.PaperDetail {
	return types.PaperDetail{
		ID:            "p1",
		URL:           "https://www.semanticscholar.org/paper/p1",
		Title:         "Attention is All you Need",
		Abstract:      strings.Repeat("long abstract ", 300),
		Venue:         "NeurIPS",
		Year:          intPtr(2017),
		CitationCount: intPtr(1234),
		Authors: []types.Author{
			{ID: "1", Name: "Ashish Vaswani"},
			{ID: "2", Name: "Noam Shazeer"},
			{ID: "3", Name: "Ashish Vaswani"},
		},
		Summary:       &types.Summary{Model: "tldr@v2", Text: "Transformers."},
		DerivedPDFURL: "https://arxiv.org/pdf/1706.03762.pdf",
		HasPDF:        true,
	}
}

func validSettings() types.ExportSettings {
	return types.ExportSettings{APIToken: "secret_abc", DatabaseID: "db123", DatabaseURL: "https://www.notion.so/ws/db123"}
}

// encode marshals the payload and decodes it back into a generic map so
// assertions see exactly what goes over the wire.
func encode(t *testing.T, req PageRequest) map[string]any {
	t.Helper()
	data, err := json.Marshal(req)
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	return m
}

func props(t *testing.T, m map[string]any) map[string]any {
	t.Helper()
	p, ok := m["properties"].(map[string]any)
	require.True(t, ok, "properties missing")
	return p
}

// --- Payload mapping ---

func TestBuildPageRequestFullMapping(t *testing.T) {
	d := sampleDetail()
	m := encode(t, BuildPageRequest(d, "db123"))

	assert.Equal(t, map[string]any{"database_id": "db123"}, m["parent"])

	p := props(t, m)
	assert.Len(t, p, 9)

	assert.Equal(t, map[string]any{"title": []any{map[string]any{"text": map[string]any{"content": d.Title}}}}, p[PropTitle])
	assert.Equal(t, map[string]any{"multi_select": []any{
		map[string]any{"name": "Ashish Vaswani"},
		map[string]any{"name": "Noam Shazeer"},
		map[string]any{"name": "Ashish Vaswani"},
	}}, p[PropAuthors], "authors keep order and duplicates")
	assert.Equal(t, map[string]any{"number": float64(2017)}, p[PropYear])
	assert.Equal(t, map[string]any{"url": d.URL}, p[PropURL])
	assert.Equal(t, map[string]any{"rich_text": []any{map[string]any{"text": map[string]any{"content": d.Abstract}}}}, p[PropAbstract],
		"abstract is a single untruncated run")
	assert.Equal(t, map[string]any{"select": map[string]any{"name": "NeurIPS"}}, p[PropVenue])
	assert.Equal(t, map[string]any{"number": float64(1234)}, p[PropCitationCount])
	assert.Equal(t, map[string]any{"rich_text": []any{map[string]any{"text": map[string]any{"content": "Transformers."}}}}, p[PropSummary])
	assert.Equal(t, map[string]any{"url": "https://arxiv.org/pdf/1706.03762.pdf"}, p[PropPDF])
}

func TestBuildPageRequestOmitsEmptyVenue(t *testing.T) {
	d := sampleDetail()
	d.Venue = ""

	p := props(t, encode(t, BuildPageRequest(d, "db")))
	_, present := p[PropVenue]
	assert.False(t, present, "venue must be omitted, not sent as an empty select")
	assert.Len(t, p, 8)
}

func TestBuildPageRequestMissingSummaryIsEmptyRun(t *testing.T) {
	d := sampleDetail()
	d.Summary = nil

	p := props(t, encode(t, BuildPageRequest(d, "db")))
	assert.Equal(t, map[string]any{"rich_text": []any{map[string]any{"text": map[string]any{"content": ""}}}}, p[PropSummary])
}

func TestBuildPageRequestMissingPDFIsEmptyURL(t *testing.T) {
	d := sampleDetail()
	d.DerivedPDFURL, d.HasPDF = "", false

	p := props(t, encode(t, BuildPageRequest(d, "db")))
	assert.Equal(t, map[string]any{"url": ""}, p[PropPDF])
}

func TestBuildPageRequestNoAuthorsNoYear(t *testing.T) {
	d := sampleDetail()
	d.Authors = nil
	d.Year = nil

	p := props(t, encode(t, BuildPageRequest(d, "db")))
	assert.Equal(t, map[string]any{"multi_select": []any{}}, p[PropAuthors])
	assert.Equal(t, map[string]any{"number": nil}, p[PropYear])
}

func TestBuildPageRequestUnknownCitationCountIsNull(t *testing.T) {
	d := sampleDetail()
	d.CitationCount = nil

	p := props(t, encode(t, BuildPageRequest(d, "db")))
	assert.Equal(t, map[string]any{"number": nil}, p[PropCitationCount])

	d.CitationCount = intPtr(0)
	p = props(t, encode(t, BuildPageRequest(d, "db")))
	assert.Equal(t, map[string]any{"number": float64(0)}, p[PropCitationCount])
}

// --- Export ---

func testExporter(ts *httptest.Server) *Exporter {
	e := NewExporter(types.NotionConfig{BaseURL: ts.URL}, nil)
	e.HTTP = ts.Client()
	return e
}

func TestExportRequest(t *testing.T) {
	var (
		captured *http.Request
		body     []byte
	)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r
		body, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"object":"page","id":"page-1","url":"https://www.notion.so/Attention-page1"}`)
	}))
	defer ts.Close()

	res, err := testExporter(ts).Export(context.Background(), sampleDetail(), validSettings())
	require.NoError(t, err)
	assert.Equal(t, "https://www.notion.so/Attention-page1", res.PageURL)
	assert.Equal(t, "page-1", res.PageID)

	assert.Equal(t, http.MethodPost, captured.Method)
	assert.Equal(t, "/pages", captured.URL.Path)
	assert.Equal(t, "Bearer secret_abc", captured.Header.Get("Authorization"))
	assert.Equal(t, "2022-06-28", captured.Header.Get("Notion-Version"))
	assert.Equal(t, "application/json", captured.Header.Get("Content-Type"))

	var sent map[string]any
	require.NoError(t, json.Unmarshal(body, &sent))
	assert.Equal(t, map[string]any{"database_id": "db123"}, sent["parent"])
}

func TestExportMissingConfigurationMakesNoRequest(t *testing.T) {
	tests := []struct {
		name     string
		settings types.ExportSettings
	}{
		{"empty token", types.ExportSettings{DatabaseID: "db"}},
		{"empty database id", types.ExportSettings{APIToken: "tok"}},
		{"both empty", types.ExportSettings{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls int32
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				atomic.AddInt32(&calls, 1)
			}))
			defer ts.Close()

			_, err := testExporter(ts).Export(context.Background(), sampleDetail(), tt.settings)
			assert.ErrorIs(t, err, ErrMissingConfiguration)
			assert.False(t, errors.Is(err, ErrRequestFailed))
			assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
		})
	}
}

func TestExportFailures(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantCode   string
		wantStatus int
	}{
		{"validation error", http.StatusBadRequest,
			`{"object":"error","status":400,"code":"validation_error","message":"venue is not a property that exists."}`,
			"validation_error", http.StatusBadRequest},
		{"unauthorized", http.StatusUnauthorized,
			`{"object":"error","status":401,"code":"unauthorized","message":"API token is invalid."}`,
			"unauthorized", http.StatusUnauthorized},
		{"rate limited is not retried", http.StatusTooManyRequests,
			`{"object":"error","status":429,"code":"rate_limited","message":"slow down"}`,
			"rate_limited", http.StatusTooManyRequests},
		{"non-json error", http.StatusBadGateway, `<html>bad gateway</html>`, "", http.StatusBadGateway},
		{"success without url", http.StatusOK, `{"object":"page","id":"x"}`, "", http.StatusOK},
		{"success with garbage", http.StatusOK, `{`, "", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls int32
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				atomic.AddInt32(&calls, 1)
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			}))
			defer ts.Close()

			res, err := testExporter(ts).Export(context.Background(), sampleDetail(), validSettings())
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrRequestFailed)
			assert.Empty(t, res.PageURL)

			var re *RequestError
			require.ErrorAs(t, err, &re)
			assert.Equal(t, tt.wantStatus, re.StatusCode)
			assert.Equal(t, tt.wantCode, re.Code)
			assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "export is never retried")
		})
	}
}

func TestExportTransportError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	e := testExporter(ts)
	ts.Close()

	_, err := e.Export(context.Background(), sampleDetail(), validSettings())
	require.ErrorIs(t, err, ErrRequestFailed)
	var re *RequestError
	require.ErrorAs(t, err, &re)
	assert.Zero(t, re.StatusCode)
}

func TestRequestErrorMessage(t *testing.T) {
	err := &RequestError{StatusCode: 400, Code: "validation_error", Message: "bad"}
	assert.Equal(t, "Notion request failed: HTTP 400 validation_error: bad", err.Error())
}
