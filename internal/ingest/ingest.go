// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ingest bridges the external paper search index into the
// topic-partitioned metadata store.
package ingest

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/pdiddy/research-mcp/internal/index"
	"github.com/pdiddy/research-mcp/internal/search"
	"github.com/pdiddy/research-mcp/internal/store"
	"github.com/pdiddy/research-mcp/pkg/types"
)

// Ingestor fetches papers for a topic and persists them.
type Ingestor struct {
	backend search.Backend
	store   *store.Store
	index   *index.Index
	logger  *zap.Logger
}

// New builds an Ingestor. The index may be nil; full-text indexing is an
// optional derived view and its absence never affects ingestion.
func New(backend search.Backend, st *store.Store, idx *index.Index, logger *zap.Logger) *Ingestor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Ingestor{backend: backend, store: st, index: idx, logger: logger}
}

// Ingest queries the backend for up to maxResults papers about topic,
// merges them into the topic's partition, and returns the fetched
// identifiers in the order the backend ranked them. Identifiers already
// present in the partition are overwritten with the fresh records and
// still appear in the returned sequence.
//
// Zero results leave the partition untouched: no file is written, so a
// topic with no data never gains an empty partition.
func (ing *Ingestor) Ingest(ctx context.Context, topic string, maxResults int) ([]string, error) {
	slug := store.Slug(topic)

	results, err := ing.backend.Search(ctx, topic, maxResults)
	if err != nil {
		return nil, fmt.Errorf("searching %s for %q: %w", ing.backend.Name(), topic, err)
	}
	if len(results) == 0 {
		ing.logger.Info("no results for topic", zap.String("topic", topic))
		return []string{}, nil
	}

	ids := make([]string, 0, len(results))
	records := make(map[string]types.Paper, len(results))
	for _, r := range results {
		ids = append(ids, r.Identifier)
		records[r.Identifier] = r.Record()
	}

	if err := ing.store.MergeAndSave(slug, records); err != nil {
		return nil, fmt.Errorf("saving partition %s: %w", slug, err)
	}

	// Best effort: index loss is tolerable, partition loss is not.
	if ing.index != nil {
		if err := ing.index.Upsert(ctx, slug, records); err != nil {
			ing.logger.Warn("full-text indexing failed",
				zap.String("slug", slug), zap.Error(err))
		}
	}

	ing.logger.Info("ingested papers",
		zap.String("slug", slug), zap.Int("count", len(ids)))
	return ids, nil
}
