package types

import "time"

// HTTPConfig holds shared HTTP settings used by the API clients.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "paper2notion/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// ScholarConfig holds settings for the Semantic Scholar client.
type ScholarConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the Graph API root (default https://api.semanticscholar.org/graph/v1).
	BaseURL string `json:"base_url" yaml:"base_url"`

	// APIKey is an optional key for higher rate limits.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// RequestsPerSecond paces outgoing requests (default 1).
	RequestsPerSecond float64 `json:"rps" yaml:"rps"`

	// MaxRetries is the number of HTTP 429 retries. Zero disables retrying.
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// NotionConfig holds settings for the Notion exporter.
type NotionConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the Notion API root (default https://api.notion.com/v1).
	BaseURL string `json:"base_url" yaml:"base_url"`
}

// StoreConfig locates the local settings database.
type StoreConfig struct {
	// DataDir holds paper2notion.db (default ~/.config/paper2notion).
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

// ExportSettings is the persisted Notion destination. Export requires
// both APIToken and DatabaseID.
type ExportSettings struct {
	APIToken    string `json:"notion_api_token" yaml:"notion_api_token"`
	DatabaseID  string `json:"database_id" yaml:"database_id"`
	DatabaseURL string `json:"notion_url" yaml:"notion_url"`
}

// Complete reports whether the settings allow an export.
func (s ExportSettings) Complete() bool {
	return s.APIToken != "" && s.DatabaseID != ""
}

// MaskedToken returns the token with all but the last four characters hidden.
func (s ExportSettings) MaskedToken() string {
	if s.APIToken == "" {
		return ""
	}
	if len(s.APIToken) <= 4 {
		return "****"
	}
	return "****" + s.APIToken[len(s.APIToken)-4:]
}
