// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads API keys from a directory of plain-text files.
// Each file is one secret: the filename is the key name and the trimmed
// file contents are the value. The Generator consumes these for its
// model backends (e.g. anthropic-api-key, openai-api-key, hf-token).
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Load reads every file in dir into a map of filename to trimmed
// contents. A missing directory is not an error: Load returns an empty
// map. Unreadable files produce a stderr warning and are skipped; empty
// values and dotfiles are ignored.
func Load(dir string) (map[string]string, error) {
	secrets := make(map[string]string)

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return secrets, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not read secret %s: %v\n", name, err)
			continue
		}
		if value := strings.TrimSpace(string(data)); value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}
