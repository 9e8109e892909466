package driven

import (
	"context"

	"github.com/custodia-labs/static-mcpify/internal/core/domain"
)

// ContentStore reads and writes the on-disk content store.
//
// Layout, relative to the output directory:
//
//	config.json
//	content/entries/<contentType>/config.json
//	content/entries/<contentType>/<slug>/data.json
//	content/entries/<contentType>/<slug>/tools/<tool>.md
//	content/assets/<fileName>
//
// Implementations do not cache; every call reads from disk.
type ContentStore interface {
	// Root returns the output directory.
	Root() string

	// ContentDir returns the content directory served by the MCP server.
	ContentDir() string

	// EnsureLayout creates the entries and assets directories.
	EnsureLayout(ctx context.Context) error

	// ReadOutputConfig reads config.json.
	// Returns domain.ErrConfigNotFound or a *domain.ConfigInvalidError.
	ReadOutputConfig(ctx context.Context) (*domain.OutputConfig, error)

	// WriteOutputConfig writes config.json.
	WriteOutputConfig(ctx context.Context, cfg domain.OutputConfig) error

	// ReadContentTypeConfig reads the config of one content type.
	// Returns domain.ErrConfigNotFound or a *domain.ConfigInvalidError.
	ReadContentTypeConfig(ctx context.Context, contentType string) (*domain.ContentTypeConfig, error)

	// WriteContentTypeConfig validates and writes the config of one content type.
	WriteContentTypeConfig(ctx context.Context, cfg domain.ContentTypeConfig) error

	// ListContentTypes returns the content type directory names, sorted.
	ListContentTypes(ctx context.Context) ([]string, error)

	// ListEntries returns the entry slugs of a content type, sorted.
	ListEntries(ctx context.Context, contentType string) ([]string, error)

	// WriteEntry writes data.json for an entry.
	WriteEntry(ctx context.Context, contentType, slug string, data domain.NormalizedEntry) error

	// ReadEntry returns the exact bytes of an entry's data.json.
	// Returns domain.ErrEntryNotFound when absent.
	ReadEntry(ctx context.Context, contentType, slug string) ([]byte, error)

	// WriteToolMarkdown writes tools/<tool>.md for an entry.
	WriteToolMarkdown(ctx context.Context, contentType, slug, tool, markdown string) error

	// ReadToolMarkdown returns the exact bytes of tools/<tool>.md.
	// Returns domain.ErrToolNotFound when absent.
	ReadToolMarkdown(ctx context.Context, contentType, slug, tool string) ([]byte, error)

	// ListAssets returns the asset file names, sorted.
	ListAssets(ctx context.Context) ([]string, error)

	// AssetExists reports whether an asset file is present.
	AssetExists(ctx context.Context, fileName string) (bool, error)

	// AssetPath returns the path an asset is stored at.
	AssetPath(fileName string) string
}
