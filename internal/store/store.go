// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists paper metadata in topic-partitioned JSON files.
//
// Each topic slug owns one subdirectory under the root; the directory
// holds a single pretty-printed JSON file mapping paper ID to metadata.
// The on-disk layout is the only durable representation: there is no
// separate index registry, and a partition exists exactly when its file
// does.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/pdiddy/research-mcp/pkg/types"
)

// partitionFile is the mapping file inside each topic directory.
const partitionFile = "papers_info.json"

// Slug derives the partition identity from a free-text topic: lowercase
// with spaces replaced by underscores.
func Slug(topic string) string {
	return strings.ToLower(strings.ReplaceAll(topic, " ", "_"))
}

// TopicTitle renders a slug back into a display title
// (e.g. "quantum_computing" -> "Quantum Computing").
func TopicTitle(slug string) string {
	words := strings.FieldsFunc(slug, func(r rune) bool {
		return r == '_' || r == '-'
	})
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// Store manages topic partitions under a root directory. Writes to the
// same partition are serialized so concurrent ingestions cannot lose
// updates in the read-modify-write merge.
type Store struct {
	root   string
	logger *zap.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New creates a Store rooted at cfg.PapersDir. The root directory is not
// created until the first merge; read operations treat a missing root as
// empty.
func New(cfg types.StoreConfig, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		root:   cfg.PapersDir,
		logger: logger,
		locks:  make(map[string]*sync.Mutex),
	}
}

// Root returns the partition root directory.
func (s *Store) Root() string { return s.root }

// slugLock returns the mutex serializing writes for one slug.
func (s *Store) slugLock(slug string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[slug]
	if !ok {
		l = &sync.Mutex{}
		s.locks[slug] = l
	}
	return l
}

func (s *Store) partitionPath(slug string) string {
	return filepath.Join(s.root, slug, partitionFile)
}

// Load returns the partition's current contents. A missing or unparsable
// file yields an empty map: corrupt partitions are recovered silently at
// this boundary (logged here, never surfaced to callers).
func (s *Store) Load(slug string) map[string]types.Paper {
	papers, err := s.Read(slug)
	if err != nil {
		s.logger.Warn("recovering empty partition",
			zap.String("slug", slug), zap.Error(err))
		return map[string]types.Paper{}
	}
	return papers
}

// HasPartition reports whether the slug's partition file exists,
// independent of whether it parses.
func (s *Store) HasPartition(slug string) bool {
	_, err := os.Stat(s.partitionPath(slug))
	return err == nil
}

// Read parses a partition file. Distinguishes recoverable states (missing
// file -> empty map, nil error) from corruption (non-nil error) so
// callers that address a single partition can render a distinct
// corrupted-data message. Scan paths and ingestion use Load instead.
func (s *Store) Read(slug string) (map[string]types.Paper, error) {
	data, err := os.ReadFile(s.partitionPath(slug))
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]types.Paper{}, nil
		}
		return nil, fmt.Errorf("reading partition %s: %w", slug, err)
	}
	var papers map[string]types.Paper
	if err := json.Unmarshal(data, &papers); err != nil {
		return nil, fmt.Errorf("parsing partition %s: %w", slug, err)
	}
	if papers == nil {
		papers = map[string]types.Paper{}
	}
	return papers, nil
}

// MergeAndSave loads the partition, overwrites every identifier present
// in newRecords, and rewrites the full merged mapping. The partition
// directory is created on first write. The whole read-merge-write runs
// under the slug's lock, and the file is replaced atomically
// (write-temp-then-rename) so a partially written partition is never
// observable.
func (s *Store) MergeAndSave(slug string, newRecords map[string]types.Paper) error {
	lock := s.slugLock(slug)
	lock.Lock()
	defer lock.Unlock()

	dir := filepath.Join(s.root, slug)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating partition directory %s: %w", slug, err)
	}

	papers := s.Load(slug)
	for id, record := range newRecords {
		papers[id] = record
	}

	data, err := json.MarshalIndent(papers, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding partition %s: %w", slug, err)
	}

	tmp, err := os.CreateTemp(dir, partitionFile+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file for partition %s: %w", slug, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing partition %s: %w", slug, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing partition %s: %w", slug, err)
	}
	if err := os.Rename(tmpName, s.partitionPath(slug)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing partition %s: %w", slug, err)
	}
	return nil
}

// FindByID scans every partition for paperID and returns the first match.
// Partitions are visited in lexicographic slug order, so a duplicate ID
// stored under several topics resolves deterministically to the
// alphabetically first topic. Corrupt or unreadable partitions are
// logged and skipped; a missing root means not found, never an error.
func (s *Store) FindByID(paperID string) (types.Paper, bool) {
	for _, slug := range s.ListTopics() {
		papers, err := s.Read(slug)
		if err != nil {
			s.logger.Warn("skipping partition during lookup",
				zap.String("slug", slug), zap.Error(err))
			continue
		}
		if paper, ok := papers[paperID]; ok {
			return paper, true
		}
	}
	return types.Paper{}, false
}

// ListTopics returns the sorted slugs of every topic whose partition file
// exists, whether or not it parses. A missing root yields an empty list.
func (s *Store) ListTopics() []string {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil
	}
	var slugs []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if _, err := os.Stat(s.partitionPath(entry.Name())); err == nil {
			slugs = append(slugs, entry.Name())
		}
	}
	sort.Strings(slugs)
	return slugs
}
