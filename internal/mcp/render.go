// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mcp

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pdiddy/research-mcp/internal/store"
	"github.com/pdiddy/research-mcp/pkg/types"
)

// summaryExcerptLen bounds how much of an abstract the topic resource
// shows per paper.
const summaryExcerptLen = 500

// notAvailable fills fields with no stored value.
const notAvailable = "N/A"

// renderFolders lists the topic folders that hold paper data.
func renderFolders(slugs []string) string {
	var b strings.Builder
	b.WriteString("# Available Topics (Folders with paper data)\n\n")
	if len(slugs) == 0 {
		b.WriteString("No topic folders with paper data found.\n")
		b.WriteString("You can try using the 'search_papers' tool to populate topics.\n")
		return b.String()
	}
	for _, slug := range slugs {
		fmt.Fprintf(&b, "- %s\n", slug)
	}
	b.WriteString("\nUse @papers://{topic_folder_name} to access papers in that topic.\n")
	return b.String()
}

// renderTopicMissing is returned when a topic folder has no partition
// file at all.
func renderTopicMissing(slug string) string {
	return fmt.Sprintf("# No papers found for topic folder: %s\n\n"+
		"Ensure the folder exists and contains a 'papers_info.json' file. "+
		"You might need to use the 'search_papers' tool first for the original topic name.", slug)
}

// renderTopicCorrupt is returned when the partition file exists but
// cannot be parsed.
func renderTopicCorrupt(slug string) string {
	return fmt.Sprintf("# Error reading papers data for topic folder %s\n\n"+
		"The 'papers_info.json' file might be corrupted.", slug)
}

// renderTopic renders the stored papers of one topic as markdown.
func renderTopic(slug string, papers map[string]types.Paper) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Papers on %s\n\n", store.TopicTitle(slug))
	if len(papers) == 0 {
		b.WriteString("No paper information found in this topic folder.\n")
		return b.String()
	}

	fmt.Fprintf(&b, "Total papers: %d\n\n", len(papers))

	ids := make([]string, 0, len(papers))
	for id := range papers {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		paper := papers[id]
		title := paper.Title
		if title == "" {
			title = notAvailable
		}
		fmt.Fprintf(&b, "## %s\n", title)
		fmt.Fprintf(&b, "- **Paper ID**: %s\n", id)
		authors := notAvailable
		if len(paper.Authors) > 0 {
			authors = strings.Join(paper.Authors, ", ")
		}
		fmt.Fprintf(&b, "- **Authors**: %s\n", authors)
		published := paper.Published
		if published == "" {
			published = notAvailable
		}
		fmt.Fprintf(&b, "- **Published**: %s\n", published)
		fmt.Fprintf(&b, "- **PDF URL**: [%s](%s)\n\n", paper.PDFURL, paper.PDFURL)
		fmt.Fprintf(&b, "### Summary\n%s...\n\n", summaryExcerpt(paper.Summary))
		b.WriteString("---\n\n")
	}
	return b.String()
}

func summaryExcerpt(summary string) string {
	if summary == "" {
		return "No summary available."
	}
	if len(summary) <= summaryExcerptLen {
		return summary
	}
	// Cut on a rune boundary at or below the limit.
	cut := summaryExcerptLen
	for cut > 0 && !utf8Start(summary[cut]) {
		cut--
	}
	return summary[:cut]
}

func utf8Start(b byte) bool {
	return b&0xC0 != 0x80
}
