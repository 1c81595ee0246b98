// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper2notion/internal/output"
	"github.com/pdiddy/paper2notion/internal/view"
)

var browseCmd = &cobra.Command{
	Use:   "browse [query...]",
	Short: "Interactively search, open and save papers",
	Long: `Browse runs an interactive session on stdin. After a search, type
n or p to page, a result number to open it, /<query> to search again, or q
to quit. On a paper, type s to save it to Notion or b to go back.`,
	RunE: runBrowse,
}

func runBrowse(cmd *cobra.Command, args []string) error {
	var src view.SettingsSource
	var rec view.Recorder
	store, err := openStore()
	if err != nil {
		warn(cmd, "settings unavailable", err)
	} else {
		defer store.Close()
		src = storeSettings{store: store}
		rec = store
	}

	client := newScholarClient()
	s := &browseSession{
		in:     bufio.NewScanner(cmd.InOrStdin()),
		out:    cmd.OutOrStdout(),
		cfg:    outputConfig(cmd),
		search: view.NewSearchView(client),
		detail: view.NewDetailView(client, src),
		export: view.NewExportView(newExporter(), rec),
	}
	return s.run(cmd.Context(), strings.Join(args, " "))
}

// browseSession drives the search, detail and export views from line input.
type browseSession struct {
	in  *bufio.Scanner
	out io.Writer
	cfg output.Config

	search *view.SearchView
	detail *view.DetailView
	export *view.ExportView
}

// errQuit ends the session without reporting an error.
var errQuit = errors.New("quit")

func (s *browseSession) run(ctx context.Context, query string) error {
	for query == "" {
		line, ok := s.prompt("query> ")
		if !ok {
			return nil
		}
		query = line
	}
	s.submit(ctx, query)

	for {
		line, ok := s.prompt("[n]ext [p]rev [1-5] open /<query> [q]uit> ")
		if !ok {
			return nil
		}
		err := s.handleSearchInput(ctx, line)
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			fmt.Fprintf(s.out, "%v\n", err)
		}
	}
}

func (s *browseSession) handleSearchInput(ctx context.Context, line string) error {
	switch {
	case line == "":
		return nil
	case line == "q":
		return errQuit
	case line == "n":
		if err := s.search.Next(ctx); errors.Is(err, view.ErrNoNextPage) {
			return err
		}
		s.renderSearch()
	case line == "p":
		if err := s.search.Prev(ctx); errors.Is(err, view.ErrNoPrevPage) {
			return err
		}
		s.renderSearch()
	case strings.HasPrefix(line, "/"):
		q := strings.TrimSpace(strings.TrimPrefix(line, "/"))
		if q == "" {
			return fmt.Errorf("empty query")
		}
		s.submit(ctx, q)
	default:
		n, err := strconv.Atoi(line)
		results := s.search.Results()
		if err != nil || n < 1 || n > len(results) {
			return fmt.Errorf("unknown command %q", line)
		}
		return s.openPaper(ctx, results[n-1].ID)
	}
	return nil
}

func (s *browseSession) submit(ctx context.Context, query string) {
	_ = s.search.Submit(ctx, query)
	s.renderSearch()
}

// renderSearch prints the current page. A failed fetch shows an empty
// list plus the error.
func (s *browseSession) renderSearch() {
	if err := s.search.Err(); err != nil {
		fmt.Fprintf(s.out, "Search failed: %v\n", err)
	}
	_ = output.FormatSearch(s.out, s.search.Query(), s.search.Results(), s.search.Pagination(), s.cfg)
}

func (s *browseSession) openPaper(ctx context.Context, id string) error {
	if err := s.detail.Load(ctx, id); err != nil {
		return fmt.Errorf("loading paper: %w", err)
	}
	if err := s.detail.SettingsErr(); err != nil {
		fmt.Fprintf(s.out, "warning: reading settings: %v\n", err)
	}
	_ = output.FormatDetail(s.out, s.detail.Detail(), s.detail.CanExport(), s.cfg)

	for {
		line, ok := s.prompt("[s]ave [b]ack [q]uit> ")
		if !ok {
			return errQuit
		}
		switch line {
		case "b":
			s.renderSearch()
			return nil
		case "q":
			return errQuit
		case "s":
			s.savePaper(ctx)
		default:
			fmt.Fprintf(s.out, "unknown command %q\n", line)
		}
	}
}

func (s *browseSession) savePaper(ctx context.Context) {
	if !s.detail.CanExport() {
		fmt.Fprintln(s.out, "Save unavailable: run 'paper2notion config set' first.")
		return
	}
	d := s.detail.Detail()
	res, err := s.export.Save(ctx, d, s.detail.Settings())
	if err != nil {
		fmt.Fprintf(s.out, "Save failed: %v\n", err)
		return
	}
	if err := s.export.HistoryErr(); err != nil {
		fmt.Fprintf(s.out, "warning: recording history: %v\n", err)
	}
	fmt.Fprintf(s.out, "Saved %q to Notion: %s\n", d.Title, res.PageURL)
}

// prompt writes p and returns the next trimmed line, or false at EOF.
func (s *browseSession) prompt(p string) (string, bool) {
	fmt.Fprint(s.out, p)
	if !s.in.Scan() {
		fmt.Fprintln(s.out)
		return "", false
	}
	return strings.TrimSpace(s.in.Text()), true
}

func init() {
	browseCmd.Flags().Bool("human", false, "rich terminal output with color and tables")

	rootCmd.AddCommand(browseCmd)
}
