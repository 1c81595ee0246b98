// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package notion

import "github.com/pdiddy/paper2notion/pkg/types"

// Database property names written for each saved paper.
const (
	PropTitle         = "title"
	PropAuthors       = "authors"
	PropYear          = "year"
	PropURL           = "url"
	PropAbstract      = "abstract"
	PropVenue         = "venue"
	PropCitationCount = "citationCount"
	PropSummary       = "tldr"
	PropPDF           = "pdf"
)

// PageRequest is the body of POST /v1/pages.
type PageRequest struct {
	Parent     Parent              `json:"parent"`
	Properties map[string]Property `json:"properties"`
}

// Parent points a new page at its database.
type Parent struct {
	DatabaseID string `json:"database_id"`
}

// Property is one typed database property value.
type Property interface {
	propertyType() string
}

// RichText is a single text run.
type RichText struct {
	Text Text `json:"text"`
}

// Text holds the run content.
type Text struct {
	Content string `json:"content"`
}

// SelectOption names a select or multi-select option.
type SelectOption struct {
	Name string `json:"name"`
}

// TitleProperty is the page title column.
type TitleProperty struct {
	Title []RichText `json:"title"`
}

// RichTextProperty holds plain text such as the abstract.
type RichTextProperty struct {
	RichText []RichText `json:"rich_text"`
}

// MultiSelectProperty holds a set of options, one per author.
type MultiSelectProperty struct {
	MultiSelect []SelectOption `json:"multi_select"`
}

// SelectProperty holds a single option.
type SelectProperty struct {
	Select SelectOption `json:"select"`
}

// NumberProperty encodes a nil Number as JSON null.
type NumberProperty struct {
	Number *int `json:"number"`
}

// URLProperty holds a link.
type URLProperty struct {
	URL string `json:"url"`
}

func (TitleProperty) propertyType() string       { return "title" }
func (RichTextProperty) propertyType() string    { return "rich_text" }
func (MultiSelectProperty) propertyType() string { return "multi_select" }
func (SelectProperty) propertyType() string      { return "select" }
func (NumberProperty) propertyType() string      { return "number" }
func (URLProperty) propertyType() string         { return "url" }

func singleRun(content string) []RichText {
	return []RichText{{Text: Text{Content: content}}}
}

// BuildPageRequest maps d onto the page-creation payload for databaseID.
//
// Every property is always present except venue, which is left out when
// the paper has no venue. A missing summary or PDF link is written as an
// empty string rather than dropped. Text is never truncated.
func BuildPageRequest(d types.PaperDetail, databaseID string) PageRequest {
	authors := make([]SelectOption, 0, len(d.Authors))
	for _, a := range d.Authors {
		authors = append(authors, SelectOption{Name: a.Name})
	}

	summary := ""
	if d.Summary != nil {
		summary = d.Summary.Text
	}

	pdf := ""
	if d.HasPDF {
		pdf = d.DerivedPDFURL
	}

	props := map[string]Property{
		PropTitle:         TitleProperty{Title: singleRun(d.Title)},
		PropAuthors:       MultiSelectProperty{MultiSelect: authors},
		PropYear:          NumberProperty{Number: d.Year},
		PropURL:           URLProperty{URL: d.URL},
		PropAbstract:      RichTextProperty{RichText: singleRun(d.Abstract)},
		PropCitationCount: NumberProperty{Number: d.CitationCount},
		PropSummary:       RichTextProperty{RichText: singleRun(summary)},
		PropPDF:           URLProperty{URL: pdf},
	}
	if d.Venue != "" {
		props[PropVenue] = SelectProperty{Select: SelectOption{Name: d.Venue}}
	}

	return PageRequest{
		Parent:     Parent{DatabaseID: databaseID},
		Properties: props,
	}
}
