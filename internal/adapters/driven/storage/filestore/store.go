package filestore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/custodia-labs/static-mcpify/internal/core/domain"
	"github.com/custodia-labs/static-mcpify/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.ContentStore = (*Store)(nil)

// File and directory names of the store layout.
const (
	configFile  = "config.json"
	contentDir  = "content"
	entriesDir  = "entries"
	assetsDir   = "assets"
	dataFile    = "data.json"
	toolsDir    = "tools"
	markdownExt = ".md"
)

// Store is a filesystem implementation of driven.ContentStore.
type Store struct {
	root       string
	contentDir string
}

// New creates a store rooted at the output directory.
func New(outputDir string) *Store {
	return &Store{root: outputDir, contentDir: filepath.Join(outputDir, contentDir)}
}

// NewFromContentDir creates a store for a content directory, as passed to
// the MCP server. The directory is used as given, whatever its name; Root
// reports its parent.
func NewFromContentDir(dir string) *Store {
	dir = filepath.Clean(dir)
	return &Store{root: filepath.Dir(dir), contentDir: dir}
}

// Root returns the output directory.
func (s *Store) Root() string {
	return s.root
}

// ContentDir returns the content directory.
func (s *Store) ContentDir() string {
	return s.contentDir
}

func (s *Store) entriesDir() string {
	return filepath.Join(s.ContentDir(), entriesDir)
}

func (s *Store) assetsDir() string {
	return filepath.Join(s.ContentDir(), assetsDir)
}

func (s *Store) contentTypeDir(contentType string) string {
	return filepath.Join(s.entriesDir(), contentType)
}

func (s *Store) entryDir(contentType, slug string) string {
	return filepath.Join(s.contentTypeDir(contentType), slug)
}

// EnsureLayout creates the entries and assets directories.
func (s *Store) EnsureLayout(_ context.Context) error {
	for _, dir := range []string{s.entriesDir(), s.assetsDir()} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return nil
}

// ReadOutputConfig reads <output>/config.json.
func (s *Store) ReadOutputConfig(_ context.Context) (*domain.OutputConfig, error) {
	path := filepath.Join(s.root, configFile)
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var cfg domain.OutputConfig
	if err := decodeValidated(path, raw, outputConfigSchema, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// WriteOutputConfig writes <output>/config.json.
func (s *Store) WriteOutputConfig(_ context.Context, cfg domain.OutputConfig) error {
	if err := os.MkdirAll(s.root, 0755); err != nil {
		return fmt.Errorf("create %s: %w", s.root, err)
	}
	return writeJSON(filepath.Join(s.root, configFile), cfg)
}

// ReadContentTypeConfig reads entries/<contentType>/config.json.
func (s *Store) ReadContentTypeConfig(_ context.Context, contentType string) (*domain.ContentTypeConfig, error) {
	if !validName(contentType) {
		return nil, fmt.Errorf("%w: content type %q", domain.ErrConfigNotFound, contentType)
	}

	path := filepath.Join(s.contentTypeDir(contentType), configFile)
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var cfg domain.ContentTypeConfig
	if err := decodeValidated(path, raw, contentTypeConfigSchema, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// WriteContentTypeConfig validates cfg and writes entries/<contentType>/config.json.
func (s *Store) WriteContentTypeConfig(_ context.Context, cfg domain.ContentTypeConfig) error {
	if !validName(cfg.ContentType) {
		return &domain.ConfigInvalidError{Reason: fmt.Sprintf("invalid content type name %q", cfg.ContentType)}
	}
	if err := validateContentTypeConfig(cfg); err != nil {
		return err
	}
	for _, tool := range cfg.Tools {
		if !validName(tool.Name) {
			return &domain.ConfigInvalidError{Reason: fmt.Sprintf("invalid tool name %q", tool.Name)}
		}
	}

	dir := s.contentTypeDir(cfg.ContentType)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	return writeJSON(filepath.Join(dir, configFile), cfg)
}

// ListContentTypes returns the content type directory names, sorted.
func (s *Store) ListContentTypes(_ context.Context) ([]string, error) {
	return listDirs(s.entriesDir())
}

// ListEntries returns the entry slugs of a content type, sorted.
func (s *Store) ListEntries(_ context.Context, contentType string) ([]string, error) {
	if !validName(contentType) {
		return nil, nil
	}
	return listDirs(s.contentTypeDir(contentType))
}

// WriteEntry writes data.json as indented JSON with a trailing newline.
func (s *Store) WriteEntry(_ context.Context, contentType, slug string, data domain.NormalizedEntry) error {
	if !validName(contentType) || !validName(slug) {
		return fmt.Errorf("%w: entry path %s/%s", domain.ErrInvalidInput, contentType, slug)
	}

	dir := s.entryDir(contentType, slug)
	if err := os.MkdirAll(filepath.Join(dir, toolsDir), 0755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	return writeJSON(filepath.Join(dir, dataFile), data)
}

// ReadEntry returns the exact bytes of data.json.
func (s *Store) ReadEntry(_ context.Context, contentType, slug string) ([]byte, error) {
	if !validName(contentType) || !validName(slug) {
		return nil, fmt.Errorf("%w: %s/%s", domain.ErrEntryNotFound, contentType, slug)
	}

	data, err := os.ReadFile(filepath.Join(s.entryDir(contentType, slug), dataFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s/%s", domain.ErrEntryNotFound, contentType, slug)
		}
		return nil, fmt.Errorf("read entry %s/%s: %w", contentType, slug, err)
	}
	return data, nil
}

// WriteToolMarkdown writes tools/<tool>.md.
func (s *Store) WriteToolMarkdown(_ context.Context, contentType, slug, tool, markdown string) error {
	if !validName(contentType) || !validName(slug) || !validName(tool) {
		return fmt.Errorf("%w: tool path %s/%s/%s", domain.ErrInvalidInput, contentType, slug, tool)
	}

	dir := filepath.Join(s.entryDir(contentType, slug), toolsDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	return os.WriteFile(filepath.Join(dir, tool+markdownExt), []byte(markdown), 0644)
}

// ReadToolMarkdown returns the exact bytes of tools/<tool>.md.
func (s *Store) ReadToolMarkdown(_ context.Context, contentType, slug, tool string) ([]byte, error) {
	if !validName(contentType) || !validName(slug) || !validName(tool) {
		return nil, fmt.Errorf("%w: %s for %s/%s", domain.ErrToolNotFound, tool, contentType, slug)
	}

	path := filepath.Join(s.entryDir(contentType, slug), toolsDir, tool+markdownExt)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s for %s/%s", domain.ErrToolNotFound, tool, contentType, slug)
		}
		return nil, fmt.Errorf("read tool %s: %w", path, err)
	}
	return data, nil
}

// ListAssets returns the asset file names, sorted. Hidden files are skipped.
func (s *Store) ListAssets(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.assetsDir())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("list assets: %w", err)
	}

	var names []string
	for _, e := range entries {
		if !e.Type().IsRegular() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// AssetExists reports whether an asset file is present.
func (s *Store) AssetExists(_ context.Context, fileName string) (bool, error) {
	if !validName(fileName) {
		return false, nil
	}

	info, err := os.Stat(s.AssetPath(fileName))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("stat asset %s: %w", fileName, err)
	}
	return info.Mode().IsRegular(), nil
}

// AssetPath returns the path an asset is stored at.
func (s *Store) AssetPath(fileName string) string {
	return filepath.Join(s.assetsDir(), fileName)
}

// validName rejects names that would escape their directory.
func validName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\`) && !strings.ContainsRune(name, filepath.Separator)
}

func listDirs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() && !strings.HasPrefix(e.Name(), ".") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// writeJSON writes v as two-space indented JSON terminated by a newline.
func writeJSON(path string, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}
