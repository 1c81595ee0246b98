// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper2notion/internal/output"
	"github.com/pdiddy/paper2notion/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search <query...>",
	Short: "Search Semantic Scholar for papers",
	Long: `Search queries Semantic Scholar and prints one page of five results
with their paper IDs. Use --offset to move between pages and pass an ID to
'show' or 'save'.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	offset, _ := cmd.Flags().GetInt("offset")
	if offset < 0 {
		return fmt.Errorf("--offset must be non-negative, got %d", offset)
	}
	query := strings.Join(args, " ")

	page, err := newScholarClient().Search(cmd.Context(), query, offset)
	if err != nil {
		cfg := outputConfig(cmd)
		_ = output.FormatSearch(cmd.OutOrStdout(), query, nil, types.NewPagination(offset, 0), cfg)
		return err
	}
	return output.FormatSearch(cmd.OutOrStdout(), query, page.Results, types.NewPagination(offset, page.Total), outputConfig(cmd))
}

func init() {
	searchCmd.Flags().Int("offset", 0, "result offset (multiples of 5 select pages)")
	addFormatFlags(searchCmd, true)

	rootCmd.AddCommand(searchCmd)
}
