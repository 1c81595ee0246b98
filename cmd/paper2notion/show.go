// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/paper2notion/internal/output"
	"github.com/pdiddy/paper2notion/internal/view"
)

var showCmd = &cobra.Command{
	Use:   "show <paper-id>",
	Short: "Show a paper's details and PDF link",
	Long: `Show fetches title, authors, year, venue, citation count, TL;DR and
abstract for one paper, resolves a PDF link, and reports whether saving to
Notion is available with the current settings.`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	var src view.SettingsSource
	store, err := openStore()
	if err != nil {
		warn(cmd, "settings unavailable", err)
	} else {
		defer store.Close()
		src = storeSettings{store: store}
	}

	dv := view.NewDetailView(newScholarClient(), src)
	if err := dv.Load(cmd.Context(), args[0]); err != nil {
		return err
	}
	if err := dv.SettingsErr(); err != nil {
		warn(cmd, "reading settings", err)
	}
	return output.FormatDetail(cmd.OutOrStdout(), dv.Detail(), dv.CanExport(), outputConfig(cmd))
}

func init() {
	addFormatFlags(showCmd, true)

	rootCmd.AddCommand(showCmd)
}
