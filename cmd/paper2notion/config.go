// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper2notion/internal/output"
	"github.com/pdiddy/paper2notion/internal/secrets"
	"github.com/pdiddy/paper2notion/internal/settings"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the Notion destination (set, show, clear)",
	Long: `Config stores the Notion integration token and the database URL in the
local settings database. The database ID is extracted from the URL; a URL
that does not match https://www.notion.so/<workspace>/<id>[?v=<view>] is
rejected and nothing is stored.`,
}

// --- set subcommand ---

var configSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Store the Notion token and database URL",
	RunE:  runConfigSet,
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	token, _ := cmd.Flags().GetString("token")
	dbURL, _ := cmd.Flags().GetString("database-url")
	token = loadedSecrets.Get(secrets.NotionAPIToken, token)
	if token == "" {
		return fmt.Errorf("--token required (or provide %s/%s)", secrets.DefaultDir, secrets.NotionAPIToken)
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	es, err := store.Save(cmd.Context(), token, dbURL)
	if errors.Is(err, settings.ErrInvalidDatabaseURL) {
		return fmt.Errorf("%w: expected https://www.notion.so/<workspace>/<database-id>[?v=<view-id>]", err)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Settings saved. Database ID: %s\n", es.DatabaseID)
	return nil
}

// --- show subcommand ---

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the stored settings with the token masked",
	RunE:  runConfigShow,
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	es, err := storeSettings{store: store}.Load(cmd.Context())
	if err != nil {
		return err
	}
	if err := output.FormatSettings(cmd.OutOrStdout(), es, outputConfig(cmd)); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Settings database: %s\n", store.Path())
	return nil
}

// --- clear subcommand ---

var configClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the stored token and database URL",
	Long:  `Clear deletes the stored destination. The export history is kept.`,
	RunE:  runConfigClear,
}

func runConfigClear(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Clear(cmd.Context()); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Settings cleared.")
	return nil
}

func init() {
	configSetCmd.Flags().String("token", "", "Notion integration token")
	configSetCmd.Flags().String("database-url", "", "Notion database URL (https://www.notion.so/<workspace>/<id>?v=<view>)")
	_ = configSetCmd.MarkFlagRequired("database-url")

	addFormatFlags(configShowCmd, true)

	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configClearCmd)
	rootCmd.AddCommand(configCmd)
}
