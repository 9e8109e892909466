package cli

import (
	"fmt"

	"github.com/custodia-labs/static-mcpify/internal/adapters/driven/config/file"
	"github.com/custodia-labs/static-mcpify/internal/adapters/driven/storage/filestore"
	"github.com/custodia-labs/static-mcpify/internal/core/ports/driving"
	"github.com/custodia-labs/static-mcpify/internal/core/services"
)

// Service constructors. Every command works on a directory given by flag,
// so services are created per run. Tests replace these.
var (
	newSettingsService = defaultSettingsService
	newInitService     = defaultInitService
	newBuildService    = defaultBuildService
	newToolSurface     = defaultToolSurface
)

func defaultSettingsService(outputDir string) (driving.SettingsService, error) {
	store, err := file.NewConfigStore(outputDir)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	return services.NewSettingsService(store), nil
}

func defaultInitService(outputDir string) (driving.InitService, error) {
	settings, err := newSettingsService(outputDir)
	if err != nil {
		return nil, err
	}
	return services.NewInitService(filestore.New(outputDir), services.NewSourceRegistry(settings)), nil
}

func defaultBuildService(outputDir string) (driving.BuildService, error) {
	settings, err := newSettingsService(outputDir)
	if err != nil {
		return nil, err
	}
	return services.NewBuildOrchestrator(filestore.New(outputDir), services.NewSourceRegistry(settings), settings), nil
}

func defaultToolSurface(contentDir string) driving.ToolSurfaceBuilder {
	return services.NewToolSurface(filestore.NewFromContentDir(contentDir))
}
