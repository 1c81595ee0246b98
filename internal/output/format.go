// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package output renders search pages, paper details, settings and the
// export history for the terminal. Plain text is the default; --human adds
// color and tables, --json and --yaml emit structured data.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/paper2notion/pkg/types"
)

// Config controls which output mode is active. JSON wins over YAML, and
// both win over Human.
type Config struct {
	JSON  bool
	YAML  bool
	Human bool
}

// searchDoc is the structured form of one search page.
type searchDoc struct {
	Query       string               `json:"query" yaml:"query"`
	Results     []types.SearchResult `json:"results" yaml:"results"`
	Total       int                  `json:"total" yaml:"total"`
	Offset      int                  `json:"offset" yaml:"offset"`
	CurrentPage int                  `json:"current_page" yaml:"current_page"`
	TotalPages  int                  `json:"total_pages" yaml:"total_pages"`
	HasNext     bool                 `json:"has_next" yaml:"has_next"`
	HasPrev     bool                 `json:"has_prev" yaml:"has_prev"`
}

// detailDoc is the structured form of a paper plus export availability.
type detailDoc struct {
	types.PaperDetail `yaml:",inline"`
	SaveAvailable     bool `json:"save_available" yaml:"save_available"`
}

// settingsDoc never carries the raw token.
type settingsDoc struct {
	APIToken    string `json:"notion_api_token" yaml:"notion_api_token"`
	DatabaseID  string `json:"database_id" yaml:"database_id"`
	DatabaseURL string `json:"notion_url" yaml:"notion_url"`
	Complete    bool   `json:"complete" yaml:"complete"`
}

// FormatSearch writes one page of results for query.
func FormatSearch(w io.Writer, query string, results []types.SearchResult, p types.Pagination, cfg Config) error {
	if results == nil {
		results = []types.SearchResult{}
	}
	doc := searchDoc{
		Query:       query,
		Results:     results,
		Total:       p.Total,
		Offset:      p.Offset,
		CurrentPage: p.CurrentPage(),
		TotalPages:  p.TotalPages(),
		HasNext:     p.HasNext(),
		HasPrev:     p.HasPrev(),
	}
	switch {
	case cfg.JSON:
		return writeJSON(w, doc)
	case cfg.YAML:
		return writeYAML(w, doc)
	case cfg.Human:
		return formatSearchHuman(w, doc)
	}
	return formatSearchPlain(w, doc)
}

// FormatDetail writes one paper. canSave reports whether export settings
// are complete so the user knows whether save is available.
func FormatDetail(w io.Writer, d types.PaperDetail, canSave bool, cfg Config) error {
	switch {
	case cfg.JSON:
		return writeJSON(w, detailDoc{PaperDetail: d, SaveAvailable: canSave})
	case cfg.YAML:
		return writeYAML(w, detailDoc{PaperDetail: d, SaveAvailable: canSave})
	case cfg.Human:
		return formatDetailHuman(w, d, canSave)
	}
	return formatDetailPlain(w, d, canSave)
}

// FormatSettings writes the stored export settings with the token masked.
func FormatSettings(w io.Writer, es types.ExportSettings, cfg Config) error {
	doc := settingsDoc{
		APIToken:    es.MaskedToken(),
		DatabaseID:  es.DatabaseID,
		DatabaseURL: es.DatabaseURL,
		Complete:    es.Complete(),
	}
	switch {
	case cfg.JSON:
		return writeJSON(w, doc)
	case cfg.YAML:
		return writeYAML(w, doc)
	}
	fmt.Fprintf(w, "Notion API token: %s\n", orNotSet(doc.APIToken))
	fmt.Fprintf(w, "Database ID:      %s\n", orNotSet(doc.DatabaseID))
	fmt.Fprintf(w, "Database URL:     %s\n", orNotSet(doc.DatabaseURL))
	if !doc.Complete {
		fmt.Fprintln(w, "\nSaving to Notion is unavailable until a token and database URL are set.")
	}
	return nil
}

// FormatHistory writes the export log, newest first.
func FormatHistory(w io.Writer, records []types.ExportRecord, cfg Config) error {
	if records == nil {
		records = []types.ExportRecord{}
	}
	switch {
	case cfg.JSON:
		return writeJSON(w, records)
	case cfg.YAML:
		return writeYAML(w, records)
	case cfg.Human:
		return formatHistoryHuman(w, records)
	}
	return formatHistoryPlain(w, records)
}

// --- Plain text formatters (default) ---

func formatSearchPlain(w io.Writer, doc searchDoc) error {
	if len(doc.Results) == 0 {
		fmt.Fprintln(w, "No results found.")
		return nil
	}

	fmt.Fprintf(w, "Found %d results for %q\n\n", doc.Total, doc.Query)
	for i, r := range doc.Results {
		fmt.Fprintf(w, "  %d. %s\n     id: %s\n", i+1, r.Title, r.ID)
	}
	fmt.Fprintf(w, "\n%s\n", pageLine(doc))
	return nil
}

func formatDetailPlain(w io.Writer, d types.PaperDetail, canSave bool) error {
	fmt.Fprintf(w, "Title: %s\n", d.Title)
	if names := d.AuthorNames(); len(names) > 0 {
		fmt.Fprintf(w, "Authors: %s\n", strings.Join(names, ", "))
	}
	fmt.Fprintf(w, "Year: %s\n", intOrUnknown(d.Year))
	if d.Venue != "" {
		fmt.Fprintf(w, "Venue: %s\n", d.Venue)
	}
	fmt.Fprintf(w, "Citations: %s\n", intOrUnknown(d.CitationCount))
	if d.URL != "" {
		fmt.Fprintf(w, "URL: %s\n", d.URL)
	}
	if d.HasPDF {
		fmt.Fprintf(w, "PDF: %s\n", d.DerivedPDFURL)
	} else {
		fmt.Fprintln(w, "PDF: none")
	}
	if d.Summary != nil && d.Summary.Text != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "TL;DR:")
		fmt.Fprintln(w, d.Summary.Text)
	}
	if d.Abstract != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Abstract:")
		fmt.Fprintln(w, d.Abstract)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, saveNotice(d.ID, canSave))
	return nil
}

func formatHistoryPlain(w io.Writer, records []types.ExportRecord) error {
	if len(records) == 0 {
		fmt.Fprintln(w, "No papers saved yet.")
		return nil
	}

	fmt.Fprintf(w, "%-20s  %-50s  %s\n", "Saved", "Title", "Page")
	fmt.Fprintln(w, strings.Repeat("-", 110))
	for _, r := range records {
		fmt.Fprintf(w, "%-20s  %-50s  %s\n",
			r.SavedAt.Local().Format("2006-01-02 15:04:05"), truncate(r.Title, 50), r.PageURL)
	}
	fmt.Fprintf(w, "\n%d saved\n", len(records))
	return nil
}

// --- shared helpers ---

func pageLine(doc searchDoc) string {
	line := fmt.Sprintf("Page %d of %d", doc.CurrentPage, doc.TotalPages)
	var hints []string
	if doc.HasPrev {
		hints = append(hints, "prev")
	}
	if doc.HasNext {
		hints = append(hints, "next")
	}
	if len(hints) > 0 {
		line += " (" + strings.Join(hints, ", ") + ")"
	}
	return line
}

func saveNotice(id string, canSave bool) string {
	if canSave {
		return fmt.Sprintf("Save to Notion: paper2notion save %s", id)
	}
	return "Save to Notion unavailable: run 'paper2notion config set' first."
}

// intOrUnknown renders an optional number.
func intOrUnknown(n *int) string {
	if n == nil {
		return "unknown"
	}
	return strconv.Itoa(*n)
}

func orNotSet(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}

// truncate cuts s to maxLen runes, appending "…" when shortened.
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-1]) + "…"
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding yaml: %w", err)
	}
	return enc.Close()
}
