// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pdiddy/research-mcp/pkg/types"
)

const arxivFeedFixture = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <entry>
    <id>http://arxiv.org/abs/2303.08774v2</id>
    <title>GPT-4 Technical Report</title>
    <summary>
      We report the development of GPT-4.
    </summary>
    <published>2023-03-15T17:15:04Z</published>
    <author><name>OpenAI</name></author>
    <link href="http://arxiv.org/abs/2303.08774v2" rel="alternate" type="text/html"/>
    <link title="pdf" href="http://arxiv.org/pdf/2303.08774v2" rel="related" type="application/pdf"/>
  </entry>
  <entry>
    <id>http://arxiv.org/abs/2301.07041v1</id>
    <title>Another Paper</title>
    <summary>Abstract text.</summary>
    <published>not-a-date</published>
    <author><name>First Author</name></author>
    <author><name>Second Author</name></author>
  </entry>
</feed>`

func testBackend(t *testing.T, handler http.HandlerFunc) *ArxivBackend {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	oldBase := arxivAPIBase
	arxivAPIBase = server.URL
	t.Cleanup(func() { arxivAPIBase = oldBase })

	return NewArxivBackend(types.SearchConfig{
		HTTPConfig: types.HTTPConfig{Timeout: 5 * time.Second, UserAgent: "test/0.1"},
		MaxResults: 5,
	})
}

func TestArxivSearchParsesFeed(t *testing.T) {
	var gotQuery string
	b := testBackend(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		fmt.Fprint(w, arxivFeedFixture)
	})

	results, err := b.Search(context.Background(), "quantum computing", 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2", len(results))
	}

	first := results[0]
	if first.Identifier != "2303.08774v2" {
		t.Errorf("Identifier = %q, want version-suffixed short ID", first.Identifier)
	}
	if first.Title != "GPT-4 Technical Report" {
		t.Errorf("Title = %q", first.Title)
	}
	if first.PDFURL != "http://arxiv.org/pdf/2303.08774v2" {
		t.Errorf("PDFURL = %q", first.PDFURL)
	}
	if got := first.Published.Format("2006-01-02"); got != "2023-03-15" {
		t.Errorf("Published = %q, want 2023-03-15", got)
	}

	second := results[1]
	if !second.Published.IsZero() {
		t.Errorf("unparsable date should stay zero, got %v", second.Published)
	}
	if len(second.Authors) != 2 || second.Authors[0] != "First Author" {
		t.Errorf("Authors = %v", second.Authors)
	}
	if second.PDFURL != "" {
		t.Errorf("PDFURL without pdf link = %q, want empty", second.PDFURL)
	}

	for _, want := range []string{"search_query=all:quantum+computing", "max_results=5", "sortBy=relevance"} {
		if !strings.Contains(gotQuery, want) {
			t.Errorf("query %q missing %q", gotQuery, want)
		}
	}
}

func TestArxivSearchEmptyQuery(t *testing.T) {
	b := NewArxivBackend(types.SearchConfig{})
	if _, err := b.Search(context.Background(), "   ", 5); err == nil {
		t.Error("expected error for empty query")
	}
}

func TestArxivSearchHTTPError(t *testing.T) {
	b := testBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	if _, err := b.Search(context.Background(), "anything", 5); err == nil {
		t.Error("expected error for HTTP 500")
	}
}

func TestArxivSearchBadXML(t *testing.T) {
	b := testBackend(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "this is not xml")
	})
	if _, err := b.Search(context.Background(), "anything", 5); err == nil {
		t.Error("expected error for malformed feed")
	}
}

func TestShortID(t *testing.T) {
	tests := []struct {
		idURL string
		want  string
	}{
		{"http://arxiv.org/abs/2303.08774v2", "2303.08774v2"},
		{"http://arxiv.org/abs/2301.07041v1", "2301.07041v1"},
		{"http://example.org/no-abs-segment", ""},
	}
	for _, tt := range tests {
		if got := shortID(tt.idURL); got != tt.want {
			t.Errorf("shortID(%q) = %q, want %q", tt.idURL, got, tt.want)
		}
	}
}
