// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search queries an external academic paper index.
package search

import (
	"context"

	"github.com/pdiddy/research-mcp/pkg/types"
)

// Backend searches a single academic API. Kept as an interface per the
// Strategy pattern so ingestion can be exercised against a mock.
type Backend interface {
	Name() string

	// Search returns up to maxResults paper summaries for the free-text
	// query, ranked by the backend's own relevance criterion.
	Search(ctx context.Context, query string, maxResults int) ([]types.SearchResult, error)
}
