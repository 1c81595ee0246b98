// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/paper2notion/internal/notion"
	"github.com/pdiddy/paper2notion/internal/output"
	"github.com/pdiddy/paper2notion/internal/scholar"
	"github.com/pdiddy/paper2notion/internal/secrets"
	"github.com/pdiddy/paper2notion/internal/settings"
	"github.com/pdiddy/paper2notion/pkg/types"
)

func httpConfig() types.HTTPConfig {
	return types.HTTPConfig{
		Timeout:   viper.GetDuration("http.timeout"),
		UserAgent: viper.GetString("http.user_agent"),
	}
}

func newScholarClient() *scholar.Client {
	cfg := types.ScholarConfig{
		HTTPConfig:        httpConfig(),
		BaseURL:           viper.GetString("scholar.base_url"),
		APIKey:            loadedSecrets.Get(secrets.SemanticScholarAPIKey, viper.GetString("scholar.api_key")),
		RequestsPerSecond: viper.GetFloat64("scholar.rps"),
		MaxRetries:        viper.GetInt("scholar.max_retries"),
	}
	return scholar.NewClient(cfg, logger)
}

func newExporter() *notion.Exporter {
	cfg := types.NotionConfig{
		HTTPConfig: httpConfig(),
		BaseURL:    viper.GetString("notion.base_url"),
	}
	return notion.NewExporter(cfg, logger)
}

func openStore() (*settings.Store, error) {
	return settings.Open(types.StoreConfig{DataDir: viper.GetString("data_dir")})
}

// storeSettings reads the saved destination, falling back to
// .secrets/notion-api-token when no token has been stored.
type storeSettings struct {
	store *settings.Store
}

func (s storeSettings) Load(ctx context.Context) (types.ExportSettings, error) {
	es, err := s.store.Load(ctx)
	if err != nil {
		return types.ExportSettings{}, err
	}
	es.APIToken = loadedSecrets.Get(secrets.NotionAPIToken, es.APIToken)
	return es, nil
}

// addFormatFlags registers the output mode flags shared by read commands.
func addFormatFlags(cmd *cobra.Command, yaml bool) {
	cmd.Flags().Bool("json", false, "output as JSON")
	cmd.Flags().Bool("human", false, "rich terminal output with color and tables")
	if yaml {
		cmd.Flags().Bool("yaml", false, "output as YAML")
	}
}

func outputConfig(cmd *cobra.Command) output.Config {
	var cfg output.Config
	cfg.JSON, _ = cmd.Flags().GetBool("json")
	cfg.YAML, _ = cmd.Flags().GetBool("yaml")
	cfg.Human, _ = cmd.Flags().GetBool("human")
	return cfg
}

// warn reports a non-fatal problem on stderr and in the diagnostic log.
func warn(cmd *cobra.Command, msg string, err error) {
	cmd.PrintErrf("warning: %s: %v\n", msg, err)
	logger.Warn(msg, zap.Error(err))
}
