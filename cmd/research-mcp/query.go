// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/research-mcp/internal/index"
)

var queryCmd = &cobra.Command{
	Use:   "query <terms...>",
	Short: "Full-text search over stored paper titles and summaries",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runQuery,
}

func runQuery(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	idx, err := index.Open(cfg.Index)
	if err != nil {
		return err
	}
	defer idx.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	hits, err := idx.Search(cmd.Context(), strings.Join(args, " "), limit)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(hits)
	}

	if len(hits) == 0 {
		fmt.Println("No results found.")
		return nil
	}
	for i, h := range hits {
		fmt.Printf("%-4d %-16s %-24s %s\n", i+1, h.PaperID, h.Topic, h.Title)
	}
	fmt.Printf("\n%d result(s)\n", len(hits))
	return nil
}

func init() {
	queryCmd.Flags().Int("limit", 0, "maximum results (0 = configured default)")
	queryCmd.Flags().Bool("json", false, "output hits as JSON")

	rootCmd.AddCommand(queryCmd)
}
