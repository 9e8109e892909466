package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/static-mcpify/internal/core/domain"
	"github.com/custodia-labs/static-mcpify/internal/core/ports/driven"
	"github.com/custodia-labs/static-mcpify/internal/core/ports/driving"
	"github.com/custodia-labs/static-mcpify/internal/logger"
)

// Ensure BuildOrchestrator implements the interface.
var _ driving.BuildService = (*BuildOrchestrator)(nil)

// BuildOrchestrator pulls content from the configured source into the store.
type BuildOrchestrator struct {
	store    driven.ContentStore
	sources  driven.SourceFactory
	settings driving.SettingsService
}

// NewBuildOrchestrator creates a new build orchestrator.
// settings may be nil, in which case defaults apply.
func NewBuildOrchestrator(
	store driven.ContentStore,
	sources driven.SourceFactory,
	settings driving.SettingsService,
) *BuildOrchestrator {
	return &BuildOrchestrator{
		store:    store,
		sources:  sources,
		settings: settings,
	}
}

// Build runs one build. Content types are processed in discovery order and
// entries in fetch order. Any error aborts the build.
//
//nolint:gocyclo // Orchestration function with necessary sequential steps
func (o *BuildOrchestrator) Build(ctx context.Context, opts driving.BuildOptions) (*driving.BuildReport, error) {
	start := time.Now()
	report := &driving.BuildReport{
		RunID:   uuid.NewString(),
		Entries: make(map[string]int),
	}
	emit := func(ev driving.BuildEvent) {
		if opts.Progress != nil {
			opts.Progress(ev)
		}
	}

	// 1. Read output config
	cfg, err := o.store.ReadOutputConfig(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrConfigNotFound) {
			return nil, fmt.Errorf("%w\nMake sure you have run \"smcp init --output %s\" first", err, o.store.Root())
		}
		return nil, fmt.Errorf("read output config: %w", err)
	}
	if cfg.SourceName() == "" {
		return nil, &domain.ConfigInvalidError{
			Path:   filepath.Join(o.store.Root(), "config.json"),
			Reason: fmt.Sprintf("source is required to run the build; set \"source\" to one of: %s", quoteAll(o.sources.Supported())),
		}
	}

	// 2. Discover and filter content types
	contentTypes, err := o.selectContentTypes(ctx, opts.ContentTypes)
	if err != nil {
		return nil, err
	}

	// 3. Create source adapter
	adapter, err := o.sources.Create(ctx, cfg.SourceName())
	if err != nil {
		return nil, err
	}

	if err := o.store.EnsureLayout(ctx); err != nil {
		return nil, fmt.Errorf("create layout: %w", err)
	}

	concurrency := domain.DefaultDownloadConcurrency
	if o.settings != nil {
		if n := o.settings.Get().Build.DownloadConcurrency; n > 0 {
			concurrency = n
		}
	}

	logger.Section("Build " + report.RunID)
	logger.Debug("Source %s, content types %v, download concurrency %d", cfg.SourceName(), contentTypes, concurrency)

	// 4. Build each content type
	for _, ct := range contentTypes {
		ctCfg, err := o.store.ReadContentTypeConfig(ctx, ct)
		if err != nil {
			if errors.Is(err, domain.ErrConfigNotFound) {
				return nil, fmt.Errorf("%w\nMake sure the config exists for content type %q", err, ct)
			}
			return nil, fmt.Errorf("read content type config: %w", err)
		}

		logger.Info("Building content type: %s", ct)
		emit(driving.BuildEvent{Kind: driving.BuildEventContentType, ContentType: ct})

		entries, err := adapter.FetchEntries(ctx, ct)
		if err != nil {
			return nil, fmt.Errorf("fetch %s entries: %w", ct, err)
		}
		logger.Info("Found %d entries", len(entries))

		for i := range entries {
			entry := &entries[i]

			if err := o.store.WriteEntry(ctx, ct, entry.Slug, entry.Data); err != nil {
				return nil, fmt.Errorf("write %s/%s: %w", ct, entry.Slug, err)
			}

			for _, tool := range ctCfg.Tools {
				md := adapter.BuildMarkdown(entry, tool.Fields)
				if err := o.store.WriteToolMarkdown(ctx, ct, entry.Slug, tool.Name, md); err != nil {
					return nil, fmt.Errorf("write %s/%s tool %s: %w", ct, entry.Slug, tool.Name, err)
				}
			}

			downloaded, skipped, err := o.downloadAssets(ctx, adapter, entry.Assets, concurrency)
			for _, name := range skipped {
				emit(driving.BuildEvent{Kind: driving.BuildEventAssetSkipped, ContentType: ct, Name: name})
			}
			for _, name := range downloaded {
				emit(driving.BuildEvent{Kind: driving.BuildEventAssetDownloaded, ContentType: ct, Name: name})
			}
			report.AssetsSkipped += len(skipped)
			report.AssetsDownloaded += len(downloaded)
			if err != nil {
				return nil, fmt.Errorf("assets of %s/%s: %w", ct, entry.Slug, err)
			}

			report.Entries[ct]++
			logger.Debug("Wrote %s/%s", ct, entry.Slug)
			emit(driving.BuildEvent{Kind: driving.BuildEventEntry, ContentType: ct, Name: entry.Slug})
		}

		report.ContentTypes = append(report.ContentTypes, ct)
	}

	report.Duration = time.Since(start)
	logger.Info("Build %s complete: %d entries, %d assets downloaded, %d skipped in %s",
		report.RunID, report.TotalEntries(), report.AssetsDownloaded, report.AssetsSkipped, report.Duration.Round(time.Millisecond))
	return report, nil
}

// selectContentTypes lists content types and applies the filter.
func (o *BuildOrchestrator) selectContentTypes(ctx context.Context, filter []string) ([]string, error) {
	available, err := o.store.ListContentTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("list content types: %w", err)
	}

	selected := available
	if len(filter) > 0 {
		known := make(map[string]bool, len(available))
		for _, ct := range available {
			known[ct] = true
		}

		var unknown []string
		wanted := make(map[string]bool, len(filter))
		for _, ct := range filter {
			if !known[ct] {
				unknown = append(unknown, ct)
			}
			wanted[ct] = true
		}
		if len(unknown) > 0 {
			return nil, fmt.Errorf("%w: %s (available: %s)",
				domain.ErrUnknownContentType, strings.Join(unknown, ", "), strings.Join(available, ", "))
		}

		selected = nil
		for _, ct := range available {
			if wanted[ct] {
				selected = append(selected, ct)
			}
		}
	}

	if len(selected) == 0 {
		return nil, fmt.Errorf("%w: no content types found\nRun \"smcp init --output %s\" first",
			domain.ErrConfigNotFound, o.store.Root())
	}
	return selected, nil
}

// downloadAssets fetches the assets not yet in the store, at most limit at a
// time. It returns the downloaded and skipped file names in reference order.
func (o *BuildOrchestrator) downloadAssets(
	ctx context.Context,
	adapter driven.SourceAdapter,
	refs []domain.AssetReference,
	limit int,
) (downloaded, skipped []string, err error) {
	var missing []domain.AssetReference
	seen := make(map[string]bool, len(refs))
	for _, ref := range refs {
		if seen[ref.FileName] {
			continue
		}
		seen[ref.FileName] = true

		exists, err := o.store.AssetExists(ctx, ref.FileName)
		if err != nil {
			return nil, nil, err
		}
		if exists {
			skipped = append(skipped, ref.FileName)
			continue
		}
		missing = append(missing, ref)
	}

	if len(missing) == 0 {
		return nil, skipped, nil
	}

	done := make([]bool, len(missing))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, ref := range missing {
		g.Go(func() error {
			logger.Debug("Downloading %s", ref.FileName)
			if err := adapter.DownloadAsset(gctx, ref.URL, o.store.AssetPath(ref.FileName)); err != nil {
				return fmt.Errorf("download %s: %w", ref.FileName, err)
			}
			done[i] = true
			return nil
		})
	}
	err = g.Wait()

	for i, ref := range missing {
		if done[i] {
			downloaded = append(downloaded, ref.FileName)
		}
	}
	return downloaded, skipped, err
}

func quoteAll(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = fmt.Sprintf("%q", n)
	}
	return strings.Join(quoted, ", ")
}
