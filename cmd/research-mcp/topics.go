// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/pdiddy/research-mcp/internal/store"
)

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "List topic folders that contain stored paper data",
	RunE:  runTopics,
}

func runTopics(cmd *cobra.Command, args []string) error {
	logger, err := newLogger(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync()

	cfg := loadConfig()
	st := store.New(cfg.Store, logger)

	slugs := st.ListTopics()
	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(slugs)
	}

	if len(slugs) == 0 {
		fmt.Println("No topic folders with paper data found.")
		return nil
	}
	for _, slug := range slugs {
		papers := st.Load(slug)
		fmt.Printf("%-40s %d paper(s)\n", slug, len(papers))
	}
	return nil
}

var topicsShowCmd = &cobra.Command{
	Use:   "show <topic_slug>",
	Short: "Print the stored papers of one topic folder",
	Args:  cobra.ExactArgs(1),
	RunE:  runTopicsShow,
}

func runTopicsShow(cmd *cobra.Command, args []string) error {
	logger, err := newLogger(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync()

	cfg := loadConfig()
	st := store.New(cfg.Store, logger)
	slug := args[0]

	if !st.HasPartition(slug) {
		return fmt.Errorf("no papers stored for topic folder %q", slug)
	}
	papers, err := st.Read(slug)
	if err != nil {
		return err
	}

	ids := make([]string, 0, len(papers))
	for id := range papers {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		paper := papers[id]
		fmt.Printf("%s  %s  (%s)\n", id, paper.Title, paper.Published)
	}
	fmt.Printf("\n%d paper(s)\n", len(ids))
	return nil
}

func init() {
	topicsCmd.Flags().Bool("json", false, "output topic slugs as JSON")
	topicsCmd.AddCommand(topicsShowCmd)

	rootCmd.AddCommand(topicsCmd)
}
