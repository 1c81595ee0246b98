// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package notion saves paper details as pages in a Notion database.
package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/paper2notion/internal/httputil"
	"github.com/pdiddy/paper2notion/pkg/types"
)

const (
	// DefaultBaseURL is the Notion REST API root.
	DefaultBaseURL = "https://api.notion.com/v1"

	// APIVersion is sent as the Notion-Version header on every request.
	APIVersion = "2022-06-28"

	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "paper2notion/0.1"
)

var (
	// ErrMissingConfiguration is returned before any request when the API
	// token or database id is empty.
	ErrMissingConfiguration = errors.New("Notion API token and database id must be configured")

	// ErrRequestFailed matches every *RequestError.
	ErrRequestFailed = errors.New("Notion request failed")
)

// RequestError reports a failed page creation. Notion creates pages
// atomically, so no partial page exists when this is returned.
type RequestError struct {
	// StatusCode is zero when no response was received.
	StatusCode int
	// Code and Message come from Notion's error object when present.
	Code    string
	Message string
	Err     error
}

func (e *RequestError) Error() string {
	switch {
	case e.Code != "":
		return fmt.Sprintf("Notion request failed: HTTP %d %s: %s", e.StatusCode, e.Code, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("Notion request failed: %v", e.Err)
	default:
		return fmt.Sprintf("Notion request failed: HTTP %d", e.StatusCode)
	}
}

func (e *RequestError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrRequestFailed) hold for any RequestError.
func (e *RequestError) Is(target error) bool { return target == ErrRequestFailed }

// Result describes the created page.
type Result struct {
	PageID  string `json:"page_id" yaml:"page_id"`
	PageURL string `json:"page_url" yaml:"page_url"`
}

// Exporter creates Notion pages. It never retries: a repeated request
// could create a duplicate page.
type Exporter struct {
	HTTP      *http.Client
	BaseURL   string
	UserAgent string
	Log       *zap.Logger
}

// NewExporter builds an Exporter from cfg, filling defaults for zero values.
// log may be nil.
func NewExporter(cfg types.NotionConfig, log *zap.Logger) *Exporter {
	if log == nil {
		log = zap.NewNop()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	base := cfg.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	return &Exporter{
		HTTP:      &http.Client{Timeout: timeout},
		BaseURL:   base,
		UserAgent: ua,
		Log:       log.Named("notion"),
	}
}

// Export creates one page for d in the database named by es and returns
// its URL. Missing configuration fails with ErrMissingConfiguration without
// touching the network; any other failure is a *RequestError.
func (e *Exporter) Export(ctx context.Context, d types.PaperDetail, es types.ExportSettings) (Result, error) {
	if !es.Complete() {
		return Result{}, ErrMissingConfiguration
	}

	body, err := json.Marshal(BuildPageRequest(d, es.DatabaseID))
	if err != nil {
		return Result{}, &RequestError{Err: fmt.Errorf("encoding page: %w", err)}
	}

	u, err := url.JoinPath(e.BaseURL, "pages")
	if err != nil {
		return Result{}, &RequestError{Err: fmt.Errorf("building URL: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return Result{}, &RequestError{Err: fmt.Errorf("creating request: %w", err)}
	}
	req.Header.Set("Authorization", "Bearer "+es.APIToken)
	req.Header.Set("Notion-Version", APIVersion)
	req.Header.Set("Content-Type", "application/json")
	if e.UserAgent != "" {
		req.Header.Set("User-Agent", e.UserAgent)
	}

	log := e.Log.With(zap.String("paper_id", d.ID), zap.String("database_id", es.DatabaseID))
	log.Debug("creating page", zap.Int("bytes", len(body)))

	resp, err := httputil.DoWithRetry(ctx, e.HTTP, req, 0, log)
	if err != nil {
		log.Debug("request failed", zap.Error(err))
		return Result{}, &RequestError{Err: err}
	}
	defer resp.Body.Close()

	if err := httputil.CheckStatus(resp); err != nil {
		re := &RequestError{StatusCode: resp.StatusCode, Err: err}
		var se *httputil.StatusError
		if errors.As(err, &se) {
			var apiErr errorResponse
			if json.Unmarshal([]byte(se.Body), &apiErr) == nil {
				re.Code = apiErr.Code
				re.Message = apiErr.Message
			}
		}
		log.Debug("page creation rejected", zap.Int("status", resp.StatusCode), zap.String("code", re.Code))
		return Result{}, re
	}

	var pr pageResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return Result{}, &RequestError{StatusCode: resp.StatusCode, Err: fmt.Errorf("parsing response: %w", err)}
	}
	if pr.URL == "" {
		return Result{}, &RequestError{StatusCode: resp.StatusCode, Err: fmt.Errorf("response has no page URL")}
	}

	log.Debug("page created", zap.String("page_id", pr.ID))
	return Result{PageID: pr.ID, PageURL: pr.URL}, nil
}

type pageResponse struct {
	Object string `json:"object"`
	ID     string `json:"id"`
	URL    string `json:"url"`
}

type errorResponse struct {
	Object  string `json:"object"`
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}
