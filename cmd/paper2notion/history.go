// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper2notion/internal/output"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List papers saved to Notion, newest first",
	Long: `History lists the papers saved with 'save' or 'browse', newest first.
Use --export to write the full history to a .yaml or .json file.`,
	RunE: runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	exportPath, _ := cmd.Flags().GetString("export")

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := cmd.Context()
	if exportPath != "" {
		switch strings.ToLower(filepath.Ext(exportPath)) {
		case ".yaml", ".yml":
			err = store.ExportYAML(ctx, exportPath)
		case ".json":
			err = store.ExportJSON(ctx, exportPath)
		default:
			return fmt.Errorf("unsupported export file %q: use .yaml or .json", exportPath)
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported history to %s\n", exportPath)
		return nil
	}

	records, err := store.History(ctx, limit)
	if err != nil {
		return err
	}
	return output.FormatHistory(cmd.OutOrStdout(), records, outputConfig(cmd))
}

func init() {
	historyCmd.Flags().Int("limit", 0, "maximum entries to list (0 = 20, negative = all)")
	historyCmd.Flags().String("export", "", "write the full history to this .yaml or .json file")
	addFormatFlags(historyCmd, true)

	rootCmd.AddCommand(historyCmd)
}
