// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generator

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/pdiddy/research-mcp/pkg/types"
)

const configFixture = `
main:
  service_name: research-mcp
  request_limits:
    per_minute: 60
models:
  claude-sonnet:
    context_window: 200000
model_dir: models/hf
defaults:
  embedding_model: text-embedding-3-small
  completion_model: claude-sonnet
  reasoning_model: claude-opus
  hf_embedding_model: all-MiniLM-L6-v2
  hf_completion_model: flan-t5-base
  hf_reranker_model: bge-reranker-base
  hf_ocr_model: trocr-base
`

func testGenerator(t *testing.T) *Generator {
	t.Helper()
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "generator.yaml")
	if err := os.WriteFile(cfgPath, []byte(configFixture), 0o644); err != nil {
		t.Fatal(err)
	}
	secretsDir := filepath.Join(dir, "secrets")
	if err := os.MkdirAll(secretsDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(secretsDir, "anthropic-api-key"), []byte("sk_test\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	g, err := Init(types.GeneratorConfig{ConfigFile: cfgPath, SecretsDir: secretsDir})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(Reset)
	return g
}

func TestInitInstallsSingleton(t *testing.T) {
	g := testGenerator(t)
	if Current() != g {
		t.Error("Current() did not return the initialized generator")
	}
	Reset()
	if Current() != nil {
		t.Error("Current() after Reset should be nil")
	}
}

func TestInitMissingConfigFile(t *testing.T) {
	_, err := Init(types.GeneratorConfig{ConfigFile: filepath.Join(t.TempDir(), "absent.yaml")})
	if err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestConfigSnapshot(t *testing.T) {
	g := testGenerator(t)
	snap := g.ConfigSnapshot()

	if snap.DefaultCompletionModel != "claude-sonnet" {
		t.Errorf("DefaultCompletionModel = %q", snap.DefaultCompletionModel)
	}
	if snap.HFModelDir != "models/hf" {
		t.Errorf("HFModelDir = %q", snap.HFModelDir)
	}
	if snap.MainConfig["service_name"] != "research-mcp" {
		t.Errorf("MainConfig = %v", snap.MainConfig)
	}
	if len(snap.APIKeyNames) != 1 || snap.APIKeyNames[0] != "anthropic-api-key" {
		t.Errorf("APIKeyNames = %v", snap.APIKeyNames)
	}

	// The whole snapshot must be JSON-serializable.
	if _, err := json.Marshal(snap); err != nil {
		t.Errorf("snapshot not serializable: %v", err)
	}
}

func TestStatusSnapshotLifecycle(t *testing.T) {
	g := testGenerator(t)

	s := g.StatusSnapshot()
	if !s.Initialized {
		t.Error("Initialized = false after Init")
	}
	if s.EmbeddingModelCacheSize != 0 || s.CompletionModelCacheSize != 0 {
		t.Errorf("fresh caches should be empty: %+v", s)
	}
	if s.HFEmbeddingModelLoaded != "Not loaded" {
		t.Errorf("HFEmbeddingModelLoaded = %q", s.HFEmbeddingModelLoaded)
	}
	if s.LastCleanupTime != "N/A" {
		t.Errorf("LastCleanupTime = %q before any cleanup", s.LastCleanupTime)
	}

	g.LoadEmbeddingModel("")
	g.LoadEmbeddingModel("custom-embed")
	g.LoadCompletionModel("")
	g.LoadHFModels()

	s = g.StatusSnapshot()
	if s.EmbeddingModelCacheSize != 2 {
		t.Errorf("EmbeddingModelCacheSize = %d, want 2", s.EmbeddingModelCacheSize)
	}
	if s.CompletionModelCacheSize != 1 {
		t.Errorf("CompletionModelCacheSize = %d, want 1", s.CompletionModelCacheSize)
	}
	if s.HFEmbeddingModelLoaded != "HFEmbeddingModel" {
		t.Errorf("HFEmbeddingModelLoaded = %q", s.HFEmbeddingModelLoaded)
	}

	g.Cleanup()
	s = g.StatusSnapshot()
	if s.EmbeddingModelCacheSize != 0 || s.HFCompletionModelLoaded != "Not loaded" {
		t.Errorf("cleanup did not clear caches: %+v", s)
	}
	if s.LastCleanupTime == "N/A" {
		t.Error("LastCleanupTime not recorded after cleanup")
	}
}

func TestClientManagerSnapshot(t *testing.T) {
	g := testGenerator(t)

	s := g.StatusSnapshot()
	if s.MCPClientManagerInitialized {
		t.Error("client manager should start uninitialized")
	}

	g.ClientManager().RegisterTools([]string{"calculator", "search_papers", "extract_info"})
	s = g.StatusSnapshot()
	if !s.MCPClientManagerInitialized {
		t.Error("client manager should be initialized after registration")
	}
	if s.MCPClientAvailableToolsCount != 3 {
		t.Errorf("MCPClientAvailableToolsCount = %d, want 3", s.MCPClientAvailableToolsCount)
	}
}

func TestLoadModelCachesHandle(t *testing.T) {
	g := testGenerator(t)
	h1 := g.LoadCompletionModel("")
	h2 := g.LoadCompletionModel("claude-sonnet")
	if h1 != h2 {
		t.Errorf("default and explicit handles differ: %v vs %v", h1, h2)
	}
	if g.StatusSnapshot().CompletionModelCacheSize != 1 {
		t.Error("cache grew for the same model name")
	}
}
