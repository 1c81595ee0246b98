// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// External identifier schemes consulted when deriving a PDF link.
const (
	SchemeACL   = "ACL"
	SchemeArXiv = "ArXiv"
	SchemeDOI   = "DOI"
)

// Author is a paper author in source order.
type Author struct {
	ID   string `json:"id,omitempty" yaml:"id,omitempty"`
	Name string `json:"name" yaml:"name"`
}

// Summary is the machine-generated TL;DR attached to a paper.
type Summary struct {
	Model string `json:"model" yaml:"model"`
	Text  string `json:"text" yaml:"text"`
}

// OpenAccessPDF is the rights-cleared PDF location reported by the API.
type OpenAccessPDF struct {
	URL    string `json:"url" yaml:"url"`
	Status string `json:"status,omitempty" yaml:"status,omitempty"`
}

// ExternalIDs maps an identifier scheme (DOI, ArXiv, ACL, ...) to its value.
type ExternalIDs map[string]string

// Lookup returns the identifier for scheme and whether it is present.
// Empty values count as absent.
func (ids ExternalIDs) Lookup(scheme string) (string, bool) {
	v, ok := ids[scheme]
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// PaperDetail holds the metadata of a single paper. It is built once per
// fetch and not modified afterwards.
type PaperDetail struct {
	// ID is the Semantic Scholar paper identifier.
	ID string `json:"id" yaml:"id"`

	// URL is the canonical Semantic Scholar page for the paper.
	URL string `json:"url" yaml:"url"`

	Title    string `json:"title" yaml:"title"`
	Abstract string `json:"abstract" yaml:"abstract"`

	// Venue is the free-text venue name; may be empty.
	Venue string `json:"venue" yaml:"venue"`

	// PublicationVenue is the normalized venue name when the API knows it.
	PublicationVenue string `json:"publication_venue,omitempty" yaml:"publication_venue,omitempty"`

	// Year is nil when the API has no publication year.
	Year *int `json:"year" yaml:"year"`

	// CitationCount is nil when the API reports no count.
	CitationCount *int     `json:"citation_count" yaml:"citation_count"`
	Authors       []Author `json:"authors" yaml:"authors"`

	Summary       *Summary       `json:"summary,omitempty" yaml:"summary,omitempty"`
	OpenAccessPDF *OpenAccessPDF `json:"open_access_pdf,omitempty" yaml:"open_access_pdf,omitempty"`
	ExternalIDs   ExternalIDs    `json:"external_ids,omitempty" yaml:"external_ids,omitempty"`

	// DerivedPDFURL is computed locally from OpenAccessPDF and ExternalIDs.
	// It is empty when HasPDF is false.
	DerivedPDFURL string `json:"pdf_url,omitempty" yaml:"pdf_url,omitempty"`
	HasPDF        bool   `json:"has_pdf" yaml:"has_pdf"`
}

// AuthorNames returns author names in source order.
func (d PaperDetail) AuthorNames() []string {
	names := make([]string, len(d.Authors))
	for i, a := range d.Authors {
		names[i] = a.Name
	}
	return names
}

// ExportRecord logs one paper saved to Notion.
type ExportRecord struct {
	PaperID    string    `json:"paper_id" yaml:"paper_id"`
	Title      string    `json:"title" yaml:"title"`
	PageURL    string    `json:"page_url" yaml:"page_url"`
	DatabaseID string    `json:"database_id" yaml:"database_id"`
	SavedAt    time.Time `json:"saved_at" yaml:"saved_at"`
}
