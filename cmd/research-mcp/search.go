// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/research-mcp/internal/index"
	"github.com/pdiddy/research-mcp/internal/ingest"
	"github.com/pdiddy/research-mcp/internal/search"
	"github.com/pdiddy/research-mcp/internal/store"
)

var searchCmd = &cobra.Command{
	Use:   "search <topic>",
	Short: "Search arXiv for a topic and store the results",
	Long: `Search queries arXiv for papers on a topic, stores their metadata under
papers/<topic_slug>/papers_info.json, and prints the paper IDs found. This is
the same operation the search_papers MCP tool performs.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	logger, err := newLogger(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync()

	cfg := loadConfig()
	topic := strings.Join(args, " ")
	maxResults, _ := cmd.Flags().GetInt("max-results")

	st := store.New(cfg.Store, logger)

	idx, err := index.Open(cfg.Index)
	if err != nil {
		logger.Warn("full-text index unavailable", zap.Error(err))
		idx = nil
	} else {
		defer idx.Close()
	}

	ingestor := ingest.New(search.NewArxivBackend(cfg.Search), st, idx, logger)

	ids, err := ingestor.Ingest(cmd.Context(), topic, maxResults)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		fmt.Println("No papers found.")
		return nil
	}
	for _, id := range ids {
		fmt.Println(id)
	}
	fmt.Printf("\n%d paper(s) stored under %s/%s/\n", len(ids), st.Root(), store.Slug(topic))
	return nil
}

func init() {
	searchCmd.Flags().Int("max-results", 0, "maximum number of results (0 = configured default)")

	rootCmd.AddCommand(searchCmd)
}
