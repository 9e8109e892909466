package driving

import (
	"context"
	"time"
)

// BuildService fetches content from the configured source into the store.
type BuildService interface {
	// Build runs one build over the selected content types.
	Build(ctx context.Context, opts BuildOptions) (*BuildReport, error)
}

// BuildOptions selects what a build processes.
type BuildOptions struct {
	// ContentTypes limits the build to these content types.
	// Empty means every content type in the store.
	ContentTypes []string

	// Progress, when set, receives one event per written entry and asset.
	Progress func(BuildEvent)
}

// BuildEventKind identifies a progress event.
type BuildEventKind string

// Build progress events.
const (
	BuildEventContentType     BuildEventKind = "content_type"
	BuildEventEntry           BuildEventKind = "entry"
	BuildEventAssetDownloaded BuildEventKind = "asset_downloaded"
	BuildEventAssetSkipped    BuildEventKind = "asset_skipped"
)

// BuildEvent reports build progress.
type BuildEvent struct {
	Kind        BuildEventKind
	ContentType string
	// Name is the entry slug or asset file name.
	Name string
}

// BuildReport summarises a finished build.
type BuildReport struct {
	// RunID identifies the build in logs.
	RunID string

	// Entries counts written entries per content type.
	Entries map[string]int

	// ContentTypes lists the processed content types in order.
	ContentTypes []string

	AssetsDownloaded int
	AssetsSkipped    int
	Duration         time.Duration
}

// TotalEntries returns the number of entries written across content types.
func (r *BuildReport) TotalEntries() int {
	total := 0
	for _, n := range r.Entries {
		total += n
	}
	return total
}
