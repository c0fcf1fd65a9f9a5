// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package generator hosts the process-wide Generator singleton: model
// configuration, lazily loaded model handles, and the client manager
// tracking tools exposed to it. Other components never touch its fields;
// they consume read-only snapshots through the Snapshotter interface.
package generator

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/research-mcp/internal/secrets"
	"github.com/pdiddy/research-mcp/pkg/types"
)

// ConfigSnapshot is the static configuration view exposed for
// introspection. All values are plain serializable types.
type ConfigSnapshot struct {
	MainConfig               map[string]any `json:"main_config"`
	ModelConfig              map[string]any `json:"model_config"`
	DefaultEmbeddingModel    string         `json:"default_embedding_model"`
	DefaultCompletionModel   string         `json:"default_completion_model"`
	DefaultReasoningModel    string         `json:"default_reasoning_model"`
	DefaultHFEmbeddingModel  string         `json:"default_hf_embedding_model"`
	DefaultHFCompletionModel string         `json:"default_hf_completion_model"`
	DefaultHFRerankerModel   string         `json:"default_hf_reranker_model"`
	DefaultHFOCRModel        string         `json:"default_hf_ocr_model"`
	HFModelDir               string         `json:"hf_model_dir"`
	APIKeyNames              []string       `json:"api_key_names"`
}

// StatusSnapshot is the dynamic runtime view exposed for introspection.
type StatusSnapshot struct {
	Initialized                  bool   `json:"initialized"`
	EmbeddingModelCacheSize      int    `json:"embedding_model_cache_size"`
	CompletionModelCacheSize     int    `json:"completion_model_cache_size"`
	HFEmbeddingModelLoaded       string `json:"hf_embedding_model_loaded"`
	HFCompletionModelLoaded      string `json:"hf_completion_model_loaded"`
	LastCleanupTime              string `json:"last_cleanup_time"`
	MCPClientManagerInitialized  bool   `json:"mcp_client_manager_initialized"`
	MCPClientAvailableToolsCount int    `json:"mcp_client_available_tools_count"`
}

// Snapshotter is the read-only contract introspection endpoints consume.
type Snapshotter interface {
	ConfigSnapshot() ConfigSnapshot
	StatusSnapshot() StatusSnapshot
}

// notLoaded is reported for HF model slots without a loaded handle.
const notLoaded = "Not loaded"

// fileConfig is the YAML shape of the generator configuration file.
type fileConfig struct {
	Main     map[string]any `yaml:"main"`
	Models   map[string]any `yaml:"models"`
	ModelDir string         `yaml:"model_dir"`
	Defaults struct {
		EmbeddingModel    string `yaml:"embedding_model"`
		CompletionModel   string `yaml:"completion_model"`
		ReasoningModel    string `yaml:"reasoning_model"`
		HFEmbeddingModel  string `yaml:"hf_embedding_model"`
		HFCompletionModel string `yaml:"hf_completion_model"`
		HFRerankerModel   string `yaml:"hf_reranker_model"`
		HFOCRModel        string `yaml:"hf_ocr_model"`
	} `yaml:"defaults"`
}

// ModelHandle stands in for a loaded model. Kind is the type name
// reported by status introspection.
type ModelHandle struct {
	Name string
	Kind string
}

// ClientManager tracks the tool surface registered with the generator.
type ClientManager struct {
	mu          sync.RWMutex
	initialized bool
	tools       []string
}

// RegisterTools records the tool names available to the generator and
// marks the manager initialized.
func (m *ClientManager) RegisterTools(names []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tools = append([]string(nil), names...)
	m.initialized = true
}

func (m *ClientManager) snapshot() (bool, int) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.initialized, len(m.tools)
}

// Generator is the singleton. Construct it with Init; read it with
// Current.
type Generator struct {
	mu sync.RWMutex

	cfg         fileConfig
	apiKeys     map[string]string
	initialized bool

	embeddingCache  map[string]ModelHandle
	completionCache map[string]ModelHandle
	hfEmbedding     *ModelHandle
	hfCompletion    *ModelHandle
	lastCleanup     time.Time

	clients ClientManager
}

var (
	singletonMu sync.RWMutex
	singleton   *Generator
)

// Init loads the generator configuration file and secrets directory and
// installs the result as the process singleton. A second Init replaces
// the singleton; callers holding the old pointer keep a consistent view.
func Init(cfg types.GeneratorConfig) (*Generator, error) {
	data, err := os.ReadFile(cfg.ConfigFile)
	if err != nil {
		return nil, fmt.Errorf("reading generator config: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parsing generator config: %w", err)
	}

	keys, err := secrets.Load(cfg.SecretsDir)
	if err != nil {
		return nil, fmt.Errorf("loading generator secrets: %w", err)
	}

	g := &Generator{
		cfg:             fc,
		apiKeys:         keys,
		initialized:     true,
		embeddingCache:  make(map[string]ModelHandle),
		completionCache: make(map[string]ModelHandle),
	}

	singletonMu.Lock()
	singleton = g
	singletonMu.Unlock()
	return g, nil
}

// Current returns the installed singleton, or nil when Init has not run.
func Current() *Generator {
	singletonMu.RLock()
	defer singletonMu.RUnlock()
	return singleton
}

// Reset clears the singleton. Test hook.
func Reset() {
	singletonMu.Lock()
	singleton = nil
	singletonMu.Unlock()
}

// ClientManager returns the generator's tool registry.
func (g *Generator) ClientManager() *ClientManager {
	return &g.clients
}

// LoadEmbeddingModel caches a handle for the named embedding model. An
// empty name selects the configured default.
func (g *Generator) LoadEmbeddingModel(name string) ModelHandle {
	g.mu.Lock()
	defer g.mu.Unlock()
	if name == "" {
		name = g.cfg.Defaults.EmbeddingModel
	}
	h, ok := g.embeddingCache[name]
	if !ok {
		h = ModelHandle{Name: name, Kind: "APIEmbeddingModel"}
		g.embeddingCache[name] = h
	}
	return h
}

// LoadCompletionModel caches a handle for the named completion model. An
// empty name selects the configured default.
func (g *Generator) LoadCompletionModel(name string) ModelHandle {
	g.mu.Lock()
	defer g.mu.Unlock()
	if name == "" {
		name = g.cfg.Defaults.CompletionModel
	}
	h, ok := g.completionCache[name]
	if !ok {
		h = ModelHandle{Name: name, Kind: "APICompletionModel"}
		g.completionCache[name] = h
	}
	return h
}

// LoadHFModels populates the local model slots from the configured
// defaults.
func (g *Generator) LoadHFModels() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.hfEmbedding = &ModelHandle{Name: g.cfg.Defaults.HFEmbeddingModel, Kind: "HFEmbeddingModel"}
	g.hfCompletion = &ModelHandle{Name: g.cfg.Defaults.HFCompletionModel, Kind: "HFCompletionModel"}
}

// Cleanup drops every cached handle and records the cleanup time.
func (g *Generator) Cleanup() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.embeddingCache = make(map[string]ModelHandle)
	g.completionCache = make(map[string]ModelHandle)
	g.hfEmbedding = nil
	g.hfCompletion = nil
	g.lastCleanup = time.Now().UTC()
}

// ConfigSnapshot returns the static configuration as plain values.
func (g *Generator) ConfigSnapshot() ConfigSnapshot {
	g.mu.RLock()
	defer g.mu.RUnlock()

	names := make([]string, 0, len(g.apiKeys))
	for name := range g.apiKeys {
		names = append(names, name)
	}
	sort.Strings(names)

	return ConfigSnapshot{
		MainConfig:               normalizeMap(g.cfg.Main),
		ModelConfig:              normalizeMap(g.cfg.Models),
		DefaultEmbeddingModel:    g.cfg.Defaults.EmbeddingModel,
		DefaultCompletionModel:   g.cfg.Defaults.CompletionModel,
		DefaultReasoningModel:    g.cfg.Defaults.ReasoningModel,
		DefaultHFEmbeddingModel:  g.cfg.Defaults.HFEmbeddingModel,
		DefaultHFCompletionModel: g.cfg.Defaults.HFCompletionModel,
		DefaultHFRerankerModel:   g.cfg.Defaults.HFRerankerModel,
		DefaultHFOCRModel:        g.cfg.Defaults.HFOCRModel,
		HFModelDir:               g.cfg.ModelDir,
		APIKeyNames:              names,
	}
}

// StatusSnapshot returns the dynamic runtime state as plain values.
func (g *Generator) StatusSnapshot() StatusSnapshot {
	g.mu.RLock()
	defer g.mu.RUnlock()

	s := StatusSnapshot{
		Initialized:              g.initialized,
		EmbeddingModelCacheSize:  len(g.embeddingCache),
		CompletionModelCacheSize: len(g.completionCache),
		HFEmbeddingModelLoaded:   notLoaded,
		HFCompletionModelLoaded:  notLoaded,
		LastCleanupTime:          types.PublishedNotAvailable,
	}
	if g.hfEmbedding != nil {
		s.HFEmbeddingModelLoaded = g.hfEmbedding.Kind
	}
	if g.hfCompletion != nil {
		s.HFCompletionModelLoaded = g.hfCompletion.Kind
	}
	if !g.lastCleanup.IsZero() {
		s.LastCleanupTime = g.lastCleanup.Format(time.RFC3339)
	}
	s.MCPClientManagerInitialized, s.MCPClientAvailableToolsCount = g.clients.snapshot()
	return s
}

// normalizeMap converts YAML-decoded values into JSON-serializable ones,
// stringifying anything encoding/json cannot represent.
func normalizeMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = normalize(v)
	}
	return out
}

func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return normalizeMap(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = normalize(e)
		}
		return out
	default:
		if _, err := json.Marshal(v); err != nil {
			return fmt.Sprint(v)
		}
		return v
	}
}
