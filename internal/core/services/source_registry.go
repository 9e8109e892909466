package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/custodia-labs/static-mcpify/internal/connectors/contentful"
	"github.com/custodia-labs/static-mcpify/internal/core/domain"
	"github.com/custodia-labs/static-mcpify/internal/core/ports/driven"
	"github.com/custodia-labs/static-mcpify/internal/core/ports/driving"
)

// Ensure SourceRegistry implements the interface.
var _ driven.SourceFactory = (*SourceRegistry)(nil)

// SourceConstructor creates a source adapter from the effective settings.
type SourceConstructor func(ctx context.Context, settings domain.Settings) (driven.SourceAdapter, error)

// SourceRegistry creates source adapters by the name stored in config.json.
type SourceRegistry struct {
	settings     driving.SettingsService
	constructors map[string]SourceConstructor
}

// NewSourceRegistry creates a registry with the built-in sources.
func NewSourceRegistry(settings driving.SettingsService) *SourceRegistry {
	r := &SourceRegistry{
		settings:     settings,
		constructors: make(map[string]SourceConstructor),
	}
	r.registerBuiltinSources()
	return r
}

func (r *SourceRegistry) registerBuiltinSources() {
	r.Register(domain.SourceContentful, func(ctx context.Context, settings domain.Settings) (driven.SourceAdapter, error) {
		return contentful.New(ctx, settings.Contentful)
	})
}

// Register adds or replaces a source constructor.
func (r *SourceRegistry) Register(name string, ctor SourceConstructor) {
	r.constructors[name] = ctor
}

// Create returns the adapter for the named source.
func (r *SourceRegistry) Create(ctx context.Context, name string) (driven.SourceAdapter, error) {
	ctor, ok := r.constructors[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (supported: %s)", domain.ErrUnknownSource, name, r.supportedList())
	}

	var settings domain.Settings
	if r.settings != nil {
		settings = r.settings.Get()
	} else {
		settings = domain.DefaultSettings()
	}

	adapter, err := ctor(ctx, settings)
	if err != nil {
		return nil, fmt.Errorf("create %s source: %w", name, err)
	}
	return adapter, nil
}

// Supported returns the registered source names, sorted.
func (r *SourceRegistry) Supported() []string {
	names := make([]string, 0, len(r.constructors))
	for name := range r.constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// supportedList formats the supported names for error messages.
func (r *SourceRegistry) supportedList() string {
	return quoteAll(r.Supported())
}
