// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the paper2notion CLI: search
// Semantic Scholar, inspect a paper, and save it to a Notion database.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/paper2notion/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds credentials loaded from .secrets/ at startup.
var loadedSecrets secrets.Secrets

// logger is the diagnostic logger; a no-op unless --verbose is set.
var logger = zap.NewNop()

// rootCmd is the base command for the paper2notion CLI.
var rootCmd = &cobra.Command{
	Use:   "paper2notion",
	Short: "Search Semantic Scholar and save papers to Notion",
	Long: `paper2notion searches Semantic Scholar, shows paper details with a
resolved PDF link, and saves papers as pages in a Notion database.

Configure the destination once with 'paper2notion config set', then use
search, show and save, or the interactive 'browse' session.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		if verbose {
			l, err := zap.NewDevelopment()
			if err != nil {
				return fmt.Errorf("creating logger: %w", err)
			}
			logger = l
		}

		s, err := secrets.Load(secrets.DefaultDir, logger)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			logger.Debug("loaded secrets", zap.Strings("keys", s.Keys()))
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./paper2notion.yaml or ~/.config/paper2notion/paper2notion.yaml)")
	rootCmd.PersistentFlags().String("data-dir", "", "directory holding the settings database (default: ~/.config/paper2notion)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log requests and diagnostics to stderr")

	_ = viper.BindPFlag("data_dir", rootCmd.PersistentFlags().Lookup("data-dir"))
}

func initConfig() {
	_ = godotenv.Load()

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("paper2notion")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath(defaultConfigDir())
	}

	viper.SetDefault("data_dir", defaultConfigDir())
	viper.SetDefault("http.timeout", "30s")
	viper.SetDefault("http.user_agent", "paper2notion/"+version)
	viper.SetDefault("scholar.rps", 1.0)
	viper.SetDefault("scholar.max_retries", 0)

	viper.SetEnvPrefix("PAPER2NOTION")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func defaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".paper2notion"
	}
	return filepath.Join(home, ".config", "paper2notion")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
