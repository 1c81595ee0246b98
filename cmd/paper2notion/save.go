// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper2notion/internal/notion"
	"github.com/pdiddy/paper2notion/internal/view"
)

var saveCmd = &cobra.Command{
	Use:   "save <paper-id>",
	Short: "Save a paper as a page in the configured Notion database",
	Long: `Save fetches the paper, creates one page in the Notion database set with
'config set', records it in the local history, and prints the page URL.
Running save twice creates two pages.`,
	Args: cobra.ExactArgs(1),
	RunE: runSave,
}

func runSave(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := cmd.Context()
	dv := view.NewDetailView(newScholarClient(), storeSettings{store: store})
	if err := dv.Load(ctx, args[0]); err != nil {
		return err
	}
	if err := dv.SettingsErr(); err != nil {
		return fmt.Errorf("reading settings: %w", err)
	}
	if !dv.CanExport() {
		return fmt.Errorf("%w: run 'paper2notion config set --token T --database-url U'", notion.ErrMissingConfiguration)
	}

	ev := view.NewExportView(newExporter(), store)
	res, err := ev.Save(ctx, dv.Detail(), dv.Settings())
	if err != nil {
		return err
	}
	if err := ev.HistoryErr(); err != nil {
		warn(cmd, "recording history", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Saved %q to Notion: %s\n", dv.Detail().Title, res.PageURL)
	return nil
}

func init() {
	rootCmd.AddCommand(saveCmd)
}
