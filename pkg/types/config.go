// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings for components that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "research-mcp/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SearchConfig holds settings for the paper search client.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxResults is the default result cap for search_papers when the
	// caller supplies none (default 5).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// StoreConfig holds settings for the topic-partitioned metadata store.
type StoreConfig struct {
	// PapersDir is the root directory holding one subdirectory per
	// topic slug (default "papers").
	PapersDir string `json:"papers_dir" yaml:"papers_dir"`
}

// IndexConfig holds settings for the full-text paper index.
type IndexConfig struct {
	// IndexDir is the directory holding the SQLite index database
	// (default "index").
	IndexDir string `json:"index_dir" yaml:"index_dir"`

	// MaxResults is the default maximum number of query hits (default 10).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// GeneratorConfig holds settings for the Generator singleton.
type GeneratorConfig struct {
	// ConfigFile is the path to the generator YAML configuration. An
	// empty path leaves the singleton uninitialized; introspection
	// resources then report a structured error instead of failing.
	ConfigFile string `json:"config_file" yaml:"config_file"`

	// SecretsDir is the directory of plain-text API key files injected
	// into the generator configuration (default ".secrets/").
	SecretsDir string `json:"secrets_dir" yaml:"secrets_dir"`
}

// ServerTransport selects how the MCP server speaks to clients.
type ServerTransport string

const (
	TransportStdio ServerTransport = "stdio"
	TransportHTTP  ServerTransport = "http"
)

// ServerConfig holds settings for the MCP server surface.
type ServerConfig struct {
	// Transport is "stdio" or "http".
	Transport ServerTransport `json:"transport" yaml:"transport"`

	// Listen is the address for the HTTP transport (default ":8080").
	Listen string `json:"listen" yaml:"listen"`
}

// Config groups all component configurations.
type Config struct {
	Search    SearchConfig    `json:"search" yaml:"search"`
	Store     StoreConfig     `json:"store" yaml:"store"`
	Index     IndexConfig     `json:"index" yaml:"index"`
	Generator GeneratorConfig `json:"generator" yaml:"generator"`
	Server    ServerConfig    `json:"server" yaml:"server"`
}
