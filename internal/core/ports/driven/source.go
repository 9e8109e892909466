package driven

import (
	"context"

	"github.com/custodia-labs/static-mcpify/internal/core/domain"
)

// SourceAdapter fetches content from one remote content source.
type SourceAdapter interface {
	// Name returns the source identifier stored in the output config.
	Name() string

	// FetchEntries returns every entry of a content type in fetch order,
	// with links resolved, slugs allocated and assets extracted.
	FetchEntries(ctx context.Context, contentType string) ([]domain.SourceEntry, error)

	// BuildMarkdown renders the named fields of an entry as a tool document.
	BuildMarkdown(entry *domain.SourceEntry, fieldNames []string) string

	// DownloadAsset fetches url into destPath, creating parent directories.
	// A non-success response fails with a *domain.DownloadError.
	DownloadAsset(ctx context.Context, url, destPath string) error
}

// ContentTypeLister is implemented by adapters that can list remote content types.
type ContentTypeLister interface {
	ContentTypes(ctx context.Context) ([]domain.ContentTypeInfo, error)
}

// SourceFactory creates source adapters by name.
type SourceFactory interface {
	// Create returns the adapter for the named source.
	// Unknown names fail with domain.ErrUnknownSource.
	Create(ctx context.Context, name string) (SourceAdapter, error)

	// Supported returns the names of every built-in source, sorted.
	Supported() []string
}
