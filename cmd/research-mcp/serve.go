// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/research-mcp/internal/generator"
	"github.com/pdiddy/research-mcp/internal/index"
	"github.com/pdiddy/research-mcp/internal/ingest"
	"github.com/pdiddy/research-mcp/internal/mcp"
	"github.com/pdiddy/research-mcp/internal/search"
	"github.com/pdiddy/research-mcp/internal/store"
	"github.com/pdiddy/research-mcp/pkg/types"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server",
	Long: `Serve runs the MCP server until interrupted. By default it speaks the
stdio transport for direct use from an MCP client configuration; with
--transport http it serves streamable HTTP on the configured address.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	logger, err := newLogger(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync()

	cfg := loadConfig()
	if transport, _ := cmd.Flags().GetString("transport"); transport != "" {
		cfg.Server.Transport = types.ServerTransport(transport)
	}
	if listen, _ := cmd.Flags().GetString("listen"); listen != "" {
		cfg.Server.Listen = listen
	}

	st := store.New(cfg.Store, logger)

	idx, err := index.Open(cfg.Index)
	if err != nil {
		logger.Warn("full-text index unavailable", zap.Error(err))
		idx = nil
	} else {
		defer idx.Close()
	}

	backend := search.NewArxivBackend(cfg.Search)
	ingestor := ingest.New(backend, st, idx, logger)

	if cfg.Generator.ConfigFile != "" {
		if _, gerr := generator.Init(cfg.Generator); gerr != nil {
			logger.Warn("generator unavailable", zap.Error(gerr))
		}
	}

	srv := mcp.New(cfg.Server, version, mcp.Deps{
		Store:    st,
		Ingestor: ingestor,
		Index:    idx,
		Generator: func() generator.Snapshotter {
			if g := generator.Current(); g != nil {
				return g
			}
			return nil
		},
		Logger: logger,
	})

	if g := generator.Current(); g != nil {
		g.ClientManager().RegisterTools(srv.ToolNames())
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func init() {
	serveCmd.Flags().String("transport", "", "MCP transport: stdio or http (overrides config)")
	serveCmd.Flags().String("listen", "", "HTTP listen address (overrides config)")

	rootCmd.AddCommand(serveCmd)
}
