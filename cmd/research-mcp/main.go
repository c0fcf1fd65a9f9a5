// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the research-mcp CLI. The serve
// command runs the MCP server; the remaining commands operate on the
// same paper store directly for scripting and debugging.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/research-mcp/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the research-mcp CLI.
var rootCmd = &cobra.Command{
	Use:   "research-mcp",
	Short: "MCP server for arXiv paper research",
	Long: `research-mcp exposes paper research tools over the Model Context Protocol:
searching arXiv, storing paper metadata under topic folders, looking papers up
by ID, and full-text search over everything stored.

The serve command runs the MCP server over stdio or HTTP. The search, topics,
and lookup commands operate on the same paper store from the shell.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./research-mcp.yaml or ~/.config/research-mcp/config.yaml)")
	rootCmd.PersistentFlags().Bool("verbose", false, "enable debug logging")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("research-mcp")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "research-mcp"))
		}
	}

	viper.SetEnvPrefix("RESEARCH_MCP")
	viper.AutomaticEnv()

	viper.SetDefault("store.papers_dir", "papers")
	viper.SetDefault("index.index_dir", "index")
	viper.SetDefault("index.max_results", 10)
	viper.SetDefault("search.max_results", 5)
	viper.SetDefault("search.timeout", "30s")
	viper.SetDefault("search.user_agent", "research-mcp/"+version)
	viper.SetDefault("server.transport", string(types.TransportStdio))
	viper.SetDefault("server.listen", ":8080")
	viper.SetDefault("generator.secrets_dir", ".secrets/")

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig assembles the typed configuration from viper.
func loadConfig() types.Config {
	timeout, err := time.ParseDuration(viper.GetString("search.timeout"))
	if err != nil || timeout <= 0 {
		timeout = 30 * time.Second
	}

	return types.Config{
		Search: types.SearchConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   timeout,
				UserAgent: viper.GetString("search.user_agent"),
			},
			MaxResults: viper.GetInt("search.max_results"),
		},
		Store: types.StoreConfig{
			PapersDir: viper.GetString("store.papers_dir"),
		},
		Index: types.IndexConfig{
			IndexDir:   viper.GetString("index.index_dir"),
			MaxResults: viper.GetInt("index.max_results"),
		},
		Generator: types.GeneratorConfig{
			ConfigFile: viper.GetString("generator.config_file"),
			SecretsDir: viper.GetString("generator.secrets_dir"),
		},
		Server: types.ServerConfig{
			Transport: types.ServerTransport(viper.GetString("server.transport")),
			Listen:    viper.GetString("server.listen"),
		},
	}
}

// newLogger builds the process logger. MCP stdio transport owns stdout,
// so logs always go to stderr.
func newLogger(cmd *cobra.Command) (*zap.Logger, error) {
	verbose, _ := cmd.Flags().GetBool("verbose")
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return cfg.Build()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
