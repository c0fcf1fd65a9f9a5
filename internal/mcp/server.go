// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package mcp exposes the research tools, prompts, and resources over
// the Model Context Protocol. Every boundary-facing handler degrades to
// in-band text or a structured error payload: a bad request never
// crashes the server or escapes as a protocol failure.
package mcp

import (
	"context"
	"net/http"
	"time"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/pdiddy/research-mcp/internal/generator"
	"github.com/pdiddy/research-mcp/internal/index"
	"github.com/pdiddy/research-mcp/internal/ingest"
	"github.com/pdiddy/research-mcp/internal/store"
	"github.com/pdiddy/research-mcp/pkg/types"
)

// Deps are the collaborators behind the protocol surface.
type Deps struct {
	Store    *store.Store
	Ingestor *ingest.Ingestor

	// Index may be nil; the query_papers tool then reports that
	// full-text search is disabled.
	Index *index.Index

	// Generator resolves the singleton at read time so the
	// introspection resources observe late initialization. A nil func
	// or nil result renders a structured error payload.
	Generator func() generator.Snapshotter

	Logger *zap.Logger
}

// Server is the MCP facade.
type Server struct {
	cfg    types.ServerConfig
	deps   Deps
	logger *zap.Logger
	impl   *mcpsdk.Server
	tools  []string
}

// Implementation identity reported during the MCP handshake.
const serverName = "research-mcp"

// New wires the tools, prompts, and resources onto a fresh MCP server.
func New(cfg types.ServerConfig, version string, deps Deps) *Server {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	s := &Server{
		cfg:    cfg,
		deps:   deps,
		logger: deps.Logger,
		impl: mcpsdk.NewServer(&mcpsdk.Implementation{
			Name:    serverName,
			Version: version,
		}, nil),
	}

	s.registerTools()
	s.registerResources()
	s.registerPrompts()
	return s
}

// ToolNames returns the registered tool names in registration order.
func (s *Server) ToolNames() []string {
	return append([]string(nil), s.tools...)
}

// Run serves MCP clients until ctx is cancelled: over stdio by default,
// or over streamable HTTP when configured.
func (s *Server) Run(ctx context.Context) error {
	if s.cfg.Transport == types.TransportHTTP {
		return s.runHTTP(ctx)
	}
	s.logger.Info("serving MCP over stdio")
	return s.impl.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) runHTTP(ctx context.Context) error {
	handler := mcpsdk.NewStreamableHTTPHandler(
		func(*http.Request) *mcpsdk.Server { return s.impl }, nil)

	httpServer := &http.Server{Addr: s.cfg.Listen, Handler: handler}
	s.logger.Info("serving MCP over HTTP", zap.String("listen", s.cfg.Listen))

	errCh := make(chan error, 1)
	go func() { errCh <- httpServer.ListenAndServe() }()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}
