// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/research-mcp/internal/store"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup <paper_id>",
	Short: "Look up a stored paper by its arXiv ID",
	Long: `Lookup scans every topic folder for the given paper ID and prints the
stored metadata as JSON. This is the same operation the extract_info MCP
tool performs.`,
	Args: cobra.ExactArgs(1),
	RunE: runLookup,
}

func runLookup(cmd *cobra.Command, args []string) error {
	logger, err := newLogger(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync()

	cfg := loadConfig()
	st := store.New(cfg.Store, logger)
	paperID := args[0]

	paper, ok := st.FindByID(paperID)
	if !ok {
		return fmt.Errorf("no saved information related to paper ID %q", paperID)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(paper)
}

func init() {
	rootCmd.AddCommand(lookupCmd)
}
