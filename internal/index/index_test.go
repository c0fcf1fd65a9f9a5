// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package index

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/pdiddy/research-mcp/pkg/types"
)

func testIndex(t *testing.T) *Index {
	t.Helper()
	idx, err := Open(types.IndexConfig{
		IndexDir:   filepath.Join(t.TempDir(), "index"),
		MaxResults: 10,
	})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { idx.Close() })
	return idx
}

func seed(t *testing.T, idx *Index) {
	t.Helper()
	err := idx.Upsert(context.Background(), "quantum_computing", map[string]types.Paper{
		"2301.00001v1": {
			Title:     "Quantum Error Correction Advances",
			Summary:   "Surface codes and logical qubits.",
			Published: "2023-01-02",
		},
		"2301.00002v1": {
			Title:     "Variational Quantum Algorithms",
			Summary:   "Hybrid quantum-classical optimization.",
			Published: "2023-01-05",
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	err = idx.Upsert(context.Background(), "machine_learning", map[string]types.Paper{
		"2302.00003v2": {
			Title:     "Scaling Transformers",
			Summary:   "Empirical scaling laws for language models.",
			Published: "2023-02-10",
		},
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestSearchMatchesTitleAndSummary(t *testing.T) {
	idx := testIndex(t)
	seed(t, idx)

	hits, err := idx.Search(context.Background(), "quantum", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 2 {
		t.Fatalf("len(hits) = %d, want 2: %v", len(hits), hits)
	}
	for _, h := range hits {
		if h.Topic != "quantum_computing" {
			t.Errorf("hit %v has topic %q", h.PaperID, h.Topic)
		}
	}

	hits, err = idx.Search(context.Background(), "scaling laws", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 1 || hits[0].PaperID != "2302.00003v2" {
		t.Errorf("summary search hits = %v", hits)
	}
}

func TestSearchNoMatches(t *testing.T) {
	idx := testIndex(t)
	seed(t, idx)

	hits, err := idx.Search(context.Background(), "astrophysics", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 0 {
		t.Errorf("hits = %v, want none", hits)
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	idx := testIndex(t)
	if _, err := idx.Search(context.Background(), "  ", 0); err == nil {
		t.Error("expected error for empty query")
	}
}

func TestSearchSpecialCharactersDoNotBreakFTS(t *testing.T) {
	idx := testIndex(t)
	seed(t, idx)

	// Unquoted, these would be FTS5 operators.
	if _, err := idx.Search(context.Background(), `quantum AND (error"`, 0); err != nil {
		t.Errorf("sanitized query failed: %v", err)
	}
}

func TestUpsertReplacesExistingRow(t *testing.T) {
	idx := testIndex(t)
	seed(t, idx)

	err := idx.Upsert(context.Background(), "quantum_computing", map[string]types.Paper{
		"2301.00001v1": {
			Title:     "Retitled: Topological Codes",
			Summary:   "Updated abstract.",
			Published: "2023-01-02",
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	hits, err := idx.Search(context.Background(), "topological", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 1 || hits[0].Title != "Retitled: Topological Codes" {
		t.Fatalf("hits after upsert = %v", hits)
	}

	// The old title must no longer match.
	hits, err = idx.Search(context.Background(), "correction", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 0 {
		t.Errorf("stale title still indexed: %v", hits)
	}
}

func TestSearchLimit(t *testing.T) {
	idx := testIndex(t)
	seed(t, idx)

	hits, err := idx.Search(context.Background(), "quantum", 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 1 {
		t.Errorf("len(hits) = %d, want 1", len(hits))
	}
}
