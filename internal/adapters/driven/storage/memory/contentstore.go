package memory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/custodia-labs/static-mcpify/internal/core/domain"
	"github.com/custodia-labs/static-mcpify/internal/core/ports/driven"
)

// Ensure ContentStore implements the interface.
var _ driven.ContentStore = (*ContentStore)(nil)

// memRoot is the virtual output directory of a memory store.
const memRoot = ":memory:"

type memEntry struct {
	data  []byte
	tools map[string][]byte
}

type memContentType struct {
	config  *domain.ContentTypeConfig
	entries map[string]*memEntry
}

// ContentStore is an in-memory implementation of driven.ContentStore for testing.
// Entry data is encoded exactly as the file store encodes it.
type ContentStore struct {
	mu           sync.RWMutex
	outputConfig *domain.OutputConfig
	contentTypes map[string]*memContentType
	assets       map[string][]byte
}

// NewContentStore creates a new in-memory content store.
func NewContentStore() *ContentStore {
	return &ContentStore{
		contentTypes: make(map[string]*memContentType),
		assets:       make(map[string][]byte),
	}
}

// Root returns the virtual output directory.
func (s *ContentStore) Root() string {
	return memRoot
}

// ContentDir returns the virtual content directory.
func (s *ContentStore) ContentDir() string {
	return path.Join(memRoot, "content")
}

// EnsureLayout is a no-op for the memory store.
func (s *ContentStore) EnsureLayout(_ context.Context) error {
	return nil
}

// ReadOutputConfig returns the stored output config.
func (s *ContentStore) ReadOutputConfig(_ context.Context) (*domain.OutputConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.outputConfig == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrConfigNotFound, path.Join(memRoot, "config.json"))
	}
	cfg := *s.outputConfig
	return &cfg, nil
}

// WriteOutputConfig stores the output config.
func (s *ContentStore) WriteOutputConfig(_ context.Context, cfg domain.OutputConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.outputConfig = &cfg
	return nil
}

// ReadContentTypeConfig returns the stored config of a content type.
func (s *ContentStore) ReadContentTypeConfig(_ context.Context, contentType string) (*domain.ContentTypeConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ct, ok := s.contentTypes[contentType]
	if !ok || ct.config == nil {
		return nil, fmt.Errorf("%w: content type %s", domain.ErrConfigNotFound, contentType)
	}
	cfg := *ct.config
	return &cfg, nil
}

// WriteContentTypeConfig checks the required parts of cfg and stores it.
func (s *ContentStore) WriteContentTypeConfig(_ context.Context, cfg domain.ContentTypeConfig) error {
	if cfg.ContentType == "" || len(cfg.Tools) == 0 {
		return &domain.ConfigInvalidError{Reason: "contentType and at least one tool are required"}
	}
	for _, tool := range cfg.Tools {
		if tool.Name == "" || len(tool.Fields) == 0 {
			return &domain.ConfigInvalidError{Reason: fmt.Sprintf("tool %q needs a name and fields", tool.Name)}
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.contentType(cfg.ContentType).config = &cfg
	return nil
}

// ListContentTypes returns the content type names, sorted.
func (s *ContentStore) ListContentTypes(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedKeys(s.contentTypes), nil
}

// ListEntries returns the entry slugs of a content type, sorted.
func (s *ContentStore) ListEntries(_ context.Context, contentType string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ct, ok := s.contentTypes[contentType]
	if !ok {
		return nil, nil
	}
	return sortedKeys(ct.entries), nil
}

// WriteEntry encodes and stores an entry's data.
func (s *ContentStore) WriteEntry(_ context.Context, contentType, slug string, data domain.NormalizedEntry) error {
	if contentType == "" || slug == "" || strings.Contains(slug, "/") {
		return fmt.Errorf("%w: entry path %s/%s", domain.ErrInvalidInput, contentType, slug)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("encode entry %s/%s: %w", contentType, slug, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entry(contentType, slug).data = buf.Bytes()
	return nil
}

// ReadEntry returns the stored data of an entry.
func (s *ContentStore) ReadEntry(_ context.Context, contentType, slug string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ct, ok := s.contentTypes[contentType]
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s", domain.ErrEntryNotFound, contentType, slug)
	}
	e, ok := ct.entries[slug]
	if !ok || e.data == nil {
		return nil, fmt.Errorf("%w: %s/%s", domain.ErrEntryNotFound, contentType, slug)
	}
	return append([]byte(nil), e.data...), nil
}

// WriteToolMarkdown stores a tool document.
func (s *ContentStore) WriteToolMarkdown(_ context.Context, contentType, slug, tool, markdown string) error {
	if contentType == "" || slug == "" || tool == "" {
		return fmt.Errorf("%w: tool path %s/%s/%s", domain.ErrInvalidInput, contentType, slug, tool)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entry(contentType, slug).tools[tool] = []byte(markdown)
	return nil
}

// ReadToolMarkdown returns a stored tool document.
func (s *ContentStore) ReadToolMarkdown(_ context.Context, contentType, slug, tool string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	notFound := fmt.Errorf("%w: %s for %s/%s", domain.ErrToolNotFound, tool, contentType, slug)
	ct, ok := s.contentTypes[contentType]
	if !ok {
		return nil, notFound
	}
	e, ok := ct.entries[slug]
	if !ok {
		return nil, notFound
	}
	md, ok := e.tools[tool]
	if !ok {
		return nil, notFound
	}
	return append([]byte(nil), md...), nil
}

// ListAssets returns the asset names, sorted.
func (s *ContentStore) ListAssets(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedKeys(s.assets), nil
}

// AssetExists reports whether an asset was stored.
func (s *ContentStore) AssetExists(_ context.Context, fileName string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.assets[fileName]
	return ok, nil
}

// AssetPath returns the virtual path of an asset.
func (s *ContentStore) AssetPath(fileName string) string {
	return path.Join(s.ContentDir(), "assets", fileName)
}

// PutAsset stores asset bytes under fileName.
func (s *ContentStore) PutAsset(fileName string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assets[fileName] = append([]byte(nil), data...)
}

// AddContentType creates an empty content type without a config,
// like a directory left behind by a previous build.
func (s *ContentStore) AddContentType(contentType string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contentType(contentType)
}

// contentType returns the record of a content type, creating it (caller must hold lock).
func (s *ContentStore) contentType(name string) *memContentType {
	ct, ok := s.contentTypes[name]
	if !ok {
		ct = &memContentType{entries: make(map[string]*memEntry)}
		s.contentTypes[name] = ct
	}
	return ct
}

// entry returns the record of an entry, creating it (caller must hold lock).
func (s *ContentStore) entry(contentType, slug string) *memEntry {
	ct := s.contentType(contentType)
	e, ok := ct.entries[slug]
	if !ok {
		e = &memEntry{tools: make(map[string][]byte)}
		ct.entries[slug] = e
	}
	return e
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
