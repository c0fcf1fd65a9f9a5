// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/pdiddy/research-mcp/internal/calc"
)

type calculatorInput struct {
	Expression string `json:"expression" jsonschema:"arithmetic expression to evaluate, e.g. '2 + 2' or '10 * 5 / 2 - 3'"`
}

type datetimeInput struct {
	Format string `json:"format,omitempty" jsonschema:"optional Go time layout, defaults to RFC 3339"`
}

type searchPapersInput struct {
	Topic      string `json:"topic" jsonschema:"topic to search arXiv for"`
	MaxResults int    `json:"max_results,omitempty" jsonschema:"maximum number of results to fetch, defaults to 5"`
}

type searchPapersOutput struct {
	Topic    string   `json:"topic"`
	PaperIDs []string `json:"paper_ids"`
}

type extractInfoInput struct {
	PaperID string `json:"paper_id" jsonschema:"arXiv short identifier, e.g. '2303.08774v1'"`
}

type queryPapersInput struct {
	Query string `json:"query" jsonschema:"full-text query over stored paper titles and summaries"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of hits, defaults to the configured index limit"`
}

type queryPapersOutput struct {
	Hits []queryHit `json:"hits"`
}

type queryHit struct {
	PaperID   string `json:"paper_id"`
	Topic     string `json:"topic"`
	Title     string `json:"title"`
	Published string `json:"published"`
}

// textResult wraps a plain string as a successful tool result.
func textResult(text string) *mcpsdk.CallToolResult {
	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: text}},
	}
}

// errorResult reports a tool-level failure in-band so the client model
// can read it, rather than as a protocol error.
func errorResult(text string) *mcpsdk.CallToolResult {
	return &mcpsdk.CallToolResult{
		IsError: true,
		Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: text}},
	}
}

func (s *Server) registerTools() {
	addTool(s, &mcpsdk.Tool{
		Name:        "calculator",
		Description: "Evaluate a simple arithmetic expression and return the result.",
	}, s.handleCalculator)

	addTool(s, &mcpsdk.Tool{
		Name:        "get_current_datetime",
		Description: "Return the current date and time, optionally in a custom format.",
	}, s.handleDatetime)

	addTool(s, &mcpsdk.Tool{
		Name:        "search_papers",
		Description: "Search arXiv for papers on a topic, store their metadata under the topic folder, and return the paper IDs found.",
	}, s.handleSearchPapers)

	addTool(s, &mcpsdk.Tool{
		Name:        "extract_info",
		Description: "Look up stored metadata for a paper ID across all topic folders.",
	}, s.handleExtractInfo)

	addTool(s, &mcpsdk.Tool{
		Name:        "query_papers",
		Description: "Full-text search over the titles and summaries of all stored papers.",
	}, s.handleQueryPapers)
}

// addTool registers a typed handler and records the tool name so the
// generator's client manager can be told what is available.
func addTool[In, Out any](s *Server, tool *mcpsdk.Tool, handler mcpsdk.ToolHandlerFor[In, Out]) {
	mcpsdk.AddTool(s.impl, tool, handler)
	s.tools = append(s.tools, tool.Name)
}

func (s *Server) handleCalculator(ctx context.Context, req *mcpsdk.CallToolRequest, in calculatorInput) (*mcpsdk.CallToolResult, any, error) {
	return textResult(calc.Evaluate(in.Expression)), nil, nil
}

func (s *Server) handleDatetime(ctx context.Context, req *mcpsdk.CallToolRequest, in datetimeInput) (*mcpsdk.CallToolResult, any, error) {
	layout := in.Format
	if layout == "" {
		layout = time.RFC3339
	}
	return textResult(time.Now().Format(layout)), nil, nil
}

func (s *Server) handleSearchPapers(ctx context.Context, req *mcpsdk.CallToolRequest, in searchPapersInput) (*mcpsdk.CallToolResult, searchPapersOutput, error) {
	if in.Topic == "" {
		return errorResult("topic must not be empty"), searchPapersOutput{}, nil
	}
	ids, err := s.deps.Ingestor.Ingest(ctx, in.Topic, in.MaxResults)
	if err != nil {
		s.logger.Warn("search_papers failed", zap.String("topic", in.Topic), zap.Error(err))
		return errorResult(fmt.Sprintf("search failed: %v", err)), searchPapersOutput{}, nil
	}
	return nil, searchPapersOutput{Topic: in.Topic, PaperIDs: ids}, nil
}

func (s *Server) handleExtractInfo(ctx context.Context, req *mcpsdk.CallToolRequest, in extractInfoInput) (*mcpsdk.CallToolResult, any, error) {
	if _, err := os.Stat(s.deps.Store.Root()); os.IsNotExist(err) {
		return textResult(fmt.Sprintf("The '%s' directory does not exist. No papers have been searched and stored yet.", s.deps.Store.Root())), nil, nil
	}

	paper, ok := s.deps.Store.FindByID(in.PaperID)
	if !ok {
		return textResult(fmt.Sprintf("There's no saved information related to paper ID '%s'.", in.PaperID)), nil, nil
	}

	data, err := json.MarshalIndent(paper, "", "  ")
	if err != nil {
		return errorResult(fmt.Sprintf("failed to serialize paper info: %v", err)), nil, nil
	}
	return textResult(string(data)), nil, nil
}

func (s *Server) handleQueryPapers(ctx context.Context, req *mcpsdk.CallToolRequest, in queryPapersInput) (*mcpsdk.CallToolResult, queryPapersOutput, error) {
	if s.deps.Index == nil {
		return errorResult("full-text search is disabled on this server"), queryPapersOutput{}, nil
	}
	if in.Query == "" {
		return errorResult("query must not be empty"), queryPapersOutput{}, nil
	}

	hits, err := s.deps.Index.Search(ctx, in.Query, in.Limit)
	if err != nil {
		s.logger.Warn("query_papers failed", zap.String("query", in.Query), zap.Error(err))
		return errorResult(fmt.Sprintf("query failed: %v", err)), queryPapersOutput{}, nil
	}

	out := queryPapersOutput{Hits: make([]queryHit, 0, len(hits))}
	for _, h := range hits {
		out.Hits = append(out.Hits, queryHit{
			PaperID:   h.PaperID,
			Topic:     h.Topic,
			Title:     h.Title,
			Published: h.Published,
		})
	}
	return nil, out, nil
}
