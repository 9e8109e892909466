package contentful

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/custodia-labs/static-mcpify/internal/core/domain"
	"github.com/custodia-labs/static-mcpify/internal/core/ports/driven"
	"github.com/custodia-labs/static-mcpify/internal/logger"
	"github.com/custodia-labs/static-mcpify/internal/normalisers/assets"
	"github.com/custodia-labs/static-mcpify/internal/normalisers/clone"
	"github.com/custodia-labs/static-mcpify/internal/normalisers/richtext"
)

// DownloadTimeout bounds a single asset download.
const DownloadTimeout = 5 * time.Minute

// Ensure Adapter implements the interfaces.
var (
	_ driven.SourceAdapter     = (*Adapter)(nil)
	_ driven.ContentTypeLister = (*Adapter)(nil)
)

// titleFields are checked in order when choosing an entry title.
var titleFields = []string{"title", "name", "slug"}

// Adapter fetches entries and assets from one Contentful space environment.
type Adapter struct {
	client     *Client
	renderer   *richtext.Renderer
	downloader *http.Client
}

// New creates an adapter. It fails with domain.ErrConfigInvalid when the
// space ID or access token is missing.
func New(ctx context.Context, cfg domain.ContentfulSettings) (*Adapter, error) {
	if err := cfg.ValidateCredentials(); err != nil {
		return nil, err
	}

	return &Adapter{
		client:     NewClient(ctx, cfg),
		renderer:   richtext.New(),
		downloader: &http.Client{Timeout: DownloadTimeout},
	}, nil
}

// Name returns the source identifier.
func (a *Adapter) Name() string {
	return domain.SourceContentful
}

// FetchEntries fetches every entry of a content type in creation order.
func (a *Adapter) FetchEntries(ctx context.Context, contentType string) ([]domain.SourceEntry, error) {
	pages, err := a.client.ListEntries(ctx, contentType)
	if err != nil {
		return nil, credentialsHint(err)
	}

	dec := newDecoder()
	var items []*domain.Entry
	for _, page := range pages {
		got, err := dec.addPage(page)
		if err != nil {
			return nil, fmt.Errorf("decode entries of %s: %w", contentType, err)
		}
		items = append(items, got...)
	}
	dec.resolve()

	slugs := domain.NewSlugAllocator()
	out := make([]domain.SourceEntry, 0, len(items))
	for _, entry := range items {
		title := entryTitle(entry)

		base := domain.Slugify(title)
		if base == "" {
			base = domain.Slugify(entry.ID)
		}
		slug, suffixed := slugs.Allocate(base)
		if suffixed {
			logger.Warn("Slug %q is already taken in %s, storing entry %s as %q", base, contentType, entry.ID, slug)
		}

		out = append(out, domain.SourceEntry{
			Title: title,
			Slug:  slug,
			Data: domain.NormalizedEntry{
				ID:          entry.ID,
				ContentType: contentType,
				Title:       title,
				Slug:        slug,
				CreatedAt:   entry.CreatedAt,
				UpdatedAt:   entry.UpdatedAt,
				Fields:      clone.Fields(entry.Fields),
			},
			Fields: entry.Fields,
			Assets: assets.Extract(entry.Fields, dec.assets),
		})
	}

	logger.Debug("Fetched %d %s entries in %d page(s)", len(out), contentType, len(pages))
	return out, nil
}

// entryTitle returns the first non-empty title, name or slug field, else the ID.
func entryTitle(e *domain.Entry) string {
	for _, key := range titleFields {
		if s := e.Fields.GetString(key); s != "" {
			return s
		}
	}
	return e.ID
}

// BuildMarkdown renders the named fields under the entry title.
func (a *Adapter) BuildMarkdown(entry *domain.SourceEntry, fieldNames []string) string {
	return a.renderer.BuildMarkdown(entry.Title, entry.Fields, fieldNames)
}

// DownloadAsset streams url into destPath through a temporary file in the
// same directory, so a failed download never leaves a partial asset.
func (a *Adapter) DownloadAsset(ctx context.Context, url, destPath string) error {
	dir := filepath.Dir(destPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	if err := a.client.rateLimiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrDownloadFailure, url, err)
	}

	resp, err := a.downloader.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrDownloadFailure, url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &domain.DownloadError{URL: url, StatusCode: resp.StatusCode, Status: resp.Status}
	}

	tmp, err := os.CreateTemp(dir, ".smcp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: %s: %w", domain.ErrDownloadFailure, url, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("chmod %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, destPath); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("move asset into place: %w", err)
	}
	return nil
}

// ContentTypes lists the content types of the space environment.
func (a *Adapter) ContentTypes(ctx context.Context) ([]domain.ContentTypeInfo, error) {
	types, err := a.client.ListContentTypes(ctx)
	if err != nil {
		return nil, credentialsHint(err)
	}
	return types, nil
}

// credentialsHint points the user at the credentials when the API rejects them.
func credentialsHint(err error) error {
	if IsUnauthorized(err) {
		return fmt.Errorf("%w\nCheck CONTENTFUL_API_TOKEN and SPACE_ID", err)
	}
	return err
}
