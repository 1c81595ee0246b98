// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scholar queries the Semantic Scholar Graph API: paged title
// search, single-paper detail, and PDF link derivation.
package scholar

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/pdiddy/paper2notion/internal/httputil"
	"github.com/pdiddy/paper2notion/pkg/types"
)

const (
	// DefaultBaseURL is the Semantic Scholar Graph API root.
	DefaultBaseURL = "https://api.semanticscholar.org/graph/v1"

	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "paper2notion/0.1"
	defaultRPS       = 1.0
)

// ErrFetch matches every *FetchError.
var ErrFetch = errors.New("fetch failed")

// FetchError reports a failed read against the metadata API: a transport
// failure, a non-2xx status, or an undecodable body.
type FetchError struct {
	// Op is "search" or "detail".
	Op string
	// StatusCode is zero when no response was received.
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("Semantic Scholar %s: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrFetch) hold for any FetchError.
func (e *FetchError) Is(target error) bool { return target == ErrFetch }

// Client talks to the Semantic Scholar Graph API. It keeps no cache:
// every call issues a request.
type Client struct {
	HTTP       *http.Client
	BaseURL    string
	APIKey     string
	UserAgent  string
	MaxRetries int
	Limiter    *rate.Limiter
	Log        *zap.Logger
}

// NewClient builds a Client from cfg, filling defaults for zero values.
// log may be nil.
func NewClient(cfg types.ScholarConfig, log *zap.Logger) *Client {
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
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = defaultRPS
	}
	return &Client{
		HTTP:       &http.Client{Timeout: timeout},
		BaseURL:    base,
		APIKey:     cfg.APIKey,
		UserAgent:  ua,
		MaxRetries: cfg.MaxRetries,
		Limiter:    rate.NewLimiter(rate.Limit(rps), 1),
		Log:        log.Named("scholar"),
	}
}

// getJSON issues a paced GET to endpoint and decodes a 2xx body into v.
// endpoint must already be escaped; it is appended to BaseURL verbatim.
// All failures come back as *FetchError tagged with op.
func (c *Client) getJSON(ctx context.Context, op, endpoint string, params url.Values, v any) error {
	u := strings.TrimRight(c.BaseURL, "/") + "/" + endpoint
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			return &FetchError{Op: op, Err: fmt.Errorf("rate limit wait: %w", err)}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return &FetchError{Op: op, Err: fmt.Errorf("creating request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	if c.APIKey != "" {
		req.Header.Set("x-api-key", c.APIKey)
	}

	start := time.Now()
	resp, err := httputil.DoWithRetry(ctx, c.HTTP, req, c.MaxRetries, c.Log)
	if err != nil {
		c.Log.Debug("request failed", zap.String("op", op), zap.Error(err))
		return &FetchError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	c.Log.Debug("response",
		zap.String("op", op),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	if err := httputil.CheckStatus(resp); err != nil {
		return &FetchError{Op: op, StatusCode: resp.StatusCode, Err: err}
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return &FetchError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("parsing response: %w", err)}
	}
	return nil
}
