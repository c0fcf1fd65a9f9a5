// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/pdiddy/research-mcp/internal/generator"
)

const (
	foldersURI         = "papers://folders"
	topicURITemplate   = "papers://{topic}"
	topicURIPrefix     = "papers://"
	generatorConfigURI = "generator://config"
	generatorStatusURI = "generator://status"
)

func (s *Server) registerResources() {
	s.impl.AddResource(&mcpsdk.Resource{
		URI:         foldersURI,
		Name:        "paper_folders",
		Description: "Topic folders that contain stored paper metadata.",
		MIMEType:    "text/markdown",
	}, s.handleFolders)

	s.impl.AddResourceTemplate(&mcpsdk.ResourceTemplate{
		URITemplate: topicURITemplate,
		Name:        "topic_papers",
		Description: "Detailed metadata for every paper stored under one topic folder.",
		MIMEType:    "text/markdown",
	}, s.handleTopic)

	s.impl.AddResource(&mcpsdk.Resource{
		URI:         generatorConfigURI,
		Name:        "generator_config",
		Description: "Sanitized configuration of the generator singleton.",
		MIMEType:    "application/json",
	}, s.handleGeneratorConfig)

	s.impl.AddResource(&mcpsdk.Resource{
		URI:         generatorStatusURI,
		Name:        "generator_status",
		Description: "Runtime status of the generator singleton.",
		MIMEType:    "application/json",
	}, s.handleGeneratorStatus)
}

func markdownResource(uri, text string) *mcpsdk.ReadResourceResult {
	return &mcpsdk.ReadResourceResult{
		Contents: []*mcpsdk.ResourceContents{{
			URI:      uri,
			MIMEType: "text/markdown",
			Text:     text,
		}},
	}
}

func jsonResource(uri string, v any) *mcpsdk.ReadResourceResult {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		data = []byte(fmt.Sprintf(`{"error": %q}`, err.Error()))
	}
	return &mcpsdk.ReadResourceResult{
		Contents: []*mcpsdk.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}
}

// errorPayload is the degraded body for the generator resources. The
// read itself always succeeds so clients see why data is unavailable.
type errorPayload struct {
	Error string `json:"error"`
}

func (s *Server) handleFolders(ctx context.Context, req *mcpsdk.ReadResourceRequest) (*mcpsdk.ReadResourceResult, error) {
	return markdownResource(req.Params.URI, renderFolders(s.deps.Store.ListTopics())), nil
}

func (s *Server) handleTopic(ctx context.Context, req *mcpsdk.ReadResourceRequest) (*mcpsdk.ReadResourceResult, error) {
	uri := req.Params.URI
	slug := strings.TrimPrefix(uri, topicURIPrefix)
	if slug == uri || slug == "" || strings.ContainsAny(slug, "/\\") {
		return nil, mcpsdk.ResourceNotFoundError(uri)
	}

	if !s.deps.Store.HasPartition(slug) {
		return markdownResource(uri, renderTopicMissing(slug)), nil
	}
	papers, err := s.deps.Store.Read(slug)
	if err != nil {
		s.logger.Warn("unreadable topic partition", zap.String("slug", slug), zap.Error(err))
		return markdownResource(uri, renderTopicCorrupt(slug)), nil
	}
	return markdownResource(uri, renderTopic(slug, papers)), nil
}

func (s *Server) handleGeneratorConfig(ctx context.Context, req *mcpsdk.ReadResourceRequest) (*mcpsdk.ReadResourceResult, error) {
	snap, reason := s.snapshotter()
	if snap == nil {
		return jsonResource(req.Params.URI, errorPayload{Error: reason}), nil
	}
	return jsonResource(req.Params.URI, snap.ConfigSnapshot()), nil
}

func (s *Server) handleGeneratorStatus(ctx context.Context, req *mcpsdk.ReadResourceRequest) (*mcpsdk.ReadResourceResult, error) {
	snap, reason := s.snapshotter()
	if snap == nil {
		return jsonResource(req.Params.URI, errorPayload{Error: reason}), nil
	}
	return jsonResource(req.Params.URI, snap.StatusSnapshot()), nil
}

func (s *Server) snapshotter() (generator.Snapshotter, string) {
	if s.deps.Generator == nil {
		return nil, "Generator instance is not available or not initialized."
	}
	snap := s.deps.Generator()
	if snap == nil {
		return nil, "Generator instance is not available or not initialized."
	}
	return snap, ""
}
