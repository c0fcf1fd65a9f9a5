// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pdiddy/research-mcp/internal/httputil"
	"github.com/pdiddy/research-mcp/pkg/types"
)

// arxivAPIBase is the arXiv search endpoint. Declared as a var so tests
// can substitute an httptest server.
var arxivAPIBase = "https://export.arxiv.org/api/query"

// ArxivBackend queries the arXiv Atom API, relevance-ranked.
type ArxivBackend struct {
	Client *http.Client
	Config types.SearchConfig
}

// NewArxivBackend builds the backend with a client honoring the
// configured timeout.
func NewArxivBackend(cfg types.SearchConfig) *ArxivBackend {
	return &ArxivBackend{
		Client: &http.Client{Timeout: cfg.Timeout},
		Config: cfg,
	}
}

// Name returns the backend identifier.
func (b *ArxivBackend) Name() string { return "arxiv" }

// Search queries the arXiv API and returns up to maxResults entries in
// relevance order. HTTP 429 responses are retried with backoff.
func (b *ArxivBackend) Search(ctx context.Context, query string, maxResults int) ([]types.SearchResult, error) {
	terms := strings.Fields(query)
	if len(terms) == 0 {
		return nil, fmt.Errorf("empty arXiv query")
	}
	if maxResults <= 0 {
		maxResults = b.Config.MaxResults
	}

	url := fmt.Sprintf("%s?search_query=all:%s&start=0&max_results=%d&sortBy=relevance&sortOrder=descending",
		arxivAPIBase, strings.Join(terms, "+"), maxResults)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", b.Config.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, b.Client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("arXiv API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("arXiv API returned HTTP %d", resp.StatusCode)
	}

	var feed arxivFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("parsing arXiv response: %w", err)
	}

	var results []types.SearchResult
	for _, entry := range feed.Entries {
		id := shortID(entry.ID)
		if id == "" {
			continue
		}

		r := types.SearchResult{
			Identifier: id,
			Title:      strings.TrimSpace(entry.Title),
			Abstract:   strings.TrimSpace(entry.Summary),
			PDFURL:     entry.pdfURL(),
		}
		for _, a := range entry.Authors {
			r.Authors = append(r.Authors, strings.TrimSpace(a.Name))
		}
		if t, parseErr := time.Parse(time.RFC3339, entry.Published); parseErr == nil {
			r.Published = t
		}
		results = append(results, r)
	}
	return results, nil
}

// arXiv Atom feed XML structures.
type arxivFeed struct {
	Entries []arxivEntry `xml:"entry"`
}

type arxivEntry struct {
	ID        string        `xml:"id"`
	Title     string        `xml:"title"`
	Summary   string        `xml:"summary"`
	Published string        `xml:"published"`
	Authors   []arxivAuthor `xml:"author"`
	Links     []arxivLink   `xml:"link"`
}

type arxivAuthor struct {
	Name string `xml:"name"`
}

type arxivLink struct {
	Href  string `xml:"href,attr"`
	Title string `xml:"title,attr"`
	Type  string `xml:"type,attr"`
}

// pdfURL returns the entry's PDF link, or "" when the feed carries none.
func (e arxivEntry) pdfURL() string {
	for _, l := range e.Links {
		if l.Title == "pdf" || l.Type == "application/pdf" {
			return l.Href
		}
	}
	return ""
}

// shortID pulls the version-suffixed short ID from the entry's <id> URL
// (e.g. "http://arxiv.org/abs/2303.08774v2" -> "2303.08774v2"). The
// version stays in the ID: it is the stable key the store partitions by.
func shortID(idURL string) string {
	const prefix = "/abs/"
	idx := strings.Index(idURL, prefix)
	if idx < 0 {
		return ""
	}
	return idURL[idx+len(prefix):]
}
