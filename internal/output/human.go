// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/pdiddy/paper2notion/pkg/types"
)

var (
	cyan       = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	bold       = lipgloss.NewStyle().Bold(true)
	dim        = lipgloss.NewStyle().Faint(true)
	green      = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	yellow     = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	labelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("4"))
	boxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("6")).
			Padding(0, 1)
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Headers(headers...).
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("8"))).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return labelStyle
			}
			return lipgloss.NewStyle()
		})
}

func formatSearchHuman(w io.Writer, doc searchDoc) error {
	if len(doc.Results) == 0 {
		fmt.Fprintln(w, "No results found.")
		return nil
	}

	fmt.Fprintln(w, bold.Render(fmt.Sprintf("Found %d results", doc.Total))+dim.Render(" for "+doc.Query))
	fmt.Fprintln(w)

	rows := make([][]string, 0, len(doc.Results))
	for i, r := range doc.Results {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			bold.Render(truncate(r.Title, 60)),
			cyan.Render(r.ID),
		})
	}
	fmt.Fprintln(w, newTable("#", "Title", "ID").Rows(rows...).Render())
	fmt.Fprintln(w, dim.Render(pageLine(doc)))
	return nil
}

func formatDetailHuman(w io.Writer, d types.PaperDetail, canSave bool) error {
	meta := cyan.Render(d.ID)
	meta += dim.Render(" · ") + intOrUnknown(d.Year)
	if d.Venue != "" {
		meta += dim.Render(" · ") + d.Venue
	}
	meta += dim.Render(" · ") + intOrUnknown(d.CitationCount) + " citations"
	fmt.Fprintln(w, boxStyle.Render(bold.Render(d.Title)+"\n"+meta))

	if names := d.AuthorNames(); len(names) > 0 {
		fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Authors:"), strings.Join(names, ", "))
	}
	if d.URL != "" {
		fmt.Fprintf(w, "%s %s\n", labelStyle.Render("URL:"), d.URL)
	}
	if d.HasPDF {
		fmt.Fprintf(w, "%s %s\n", labelStyle.Render("PDF:"), green.Render(d.DerivedPDFURL))
	} else {
		fmt.Fprintf(w, "%s %s\n", labelStyle.Render("PDF:"), dim.Render("none"))
	}
	if d.Summary != nil && d.Summary.Text != "" {
		fmt.Fprintf(w, "\n%s\n%s\n", labelStyle.Render("TL;DR"), d.Summary.Text)
	}
	if d.Abstract != "" {
		fmt.Fprintf(w, "\n%s\n%s\n", labelStyle.Render("Abstract"), d.Abstract)
	}

	fmt.Fprintln(w)
	if canSave {
		fmt.Fprintln(w, green.Render(saveNotice(d.ID, true)))
	} else {
		fmt.Fprintln(w, yellow.Render(saveNotice(d.ID, false)))
	}
	return nil
}

func formatHistoryHuman(w io.Writer, records []types.ExportRecord) error {
	if len(records) == 0 {
		fmt.Fprintln(w, "No papers saved yet.")
		return nil
	}

	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			dim.Render(r.SavedAt.Local().Format("2006-01-02 15:04")),
			bold.Render(truncate(r.Title, 50)),
			cyan.Render(r.PageURL),
		})
	}
	fmt.Fprintln(w, newTable("Saved", "Title", "Page").Rows(rows...).Render())
	fmt.Fprintln(w, dim.Render(fmt.Sprintf("%d saved", len(records))))
	return nil
}
