package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/custodia-labs/static-mcpify/internal/core/domain"
	"github.com/custodia-labs/static-mcpify/internal/core/ports/driven"
	"github.com/custodia-labs/static-mcpify/internal/core/ports/driving"
	"github.com/custodia-labs/static-mcpify/internal/logger"
)

// Ensure InitService implements the interface.
var _ driving.InitService = (*InitService)(nil)

// InitService writes the config files of a new output directory.
type InitService struct {
	store   driven.ContentStore
	sources driven.SourceFactory
	source  string
}

// NewInitService creates an init service that configures the Contentful source.
func NewInitService(store driven.ContentStore, sources driven.SourceFactory) *InitService {
	return &InitService{
		store:   store,
		sources: sources,
		source:  domain.SourceContentful,
	}
}

// Init creates the store layout, writes config.json and one config per
// selected content type. When the source can list its content types, the
// selection is checked against them first.
func (s *InitService) Init(ctx context.Context, req driving.InitRequest) error {
	if len(req.ContentTypes) == 0 {
		return fmt.Errorf("%w: select at least one content type", domain.ErrInvalidInput)
	}

	configs := make([]domain.ContentTypeConfig, 0, len(req.ContentTypes))
	seen := make(map[string]bool)
	for _, spec := range req.ContentTypes {
		if seen[spec.ContentType] {
			return fmt.Errorf("%w: content type %q selected twice", domain.ErrInvalidInput, spec.ContentType)
		}
		seen[spec.ContentType] = true

		if len(spec.Tools) == 0 {
			return &domain.ConfigInvalidError{
				Reason: fmt.Sprintf("content type %q needs at least one tool (--tool %s:<name>=<field>,...)", spec.ContentType, spec.ContentType),
			}
		}
		configs = append(configs, domain.ContentTypeConfig{ContentType: spec.ContentType, Tools: spec.Tools})
	}

	if err := s.checkAgainstSource(ctx, configs); err != nil {
		return err
	}

	if err := s.store.EnsureLayout(ctx); err != nil {
		return fmt.Errorf("create layout: %w", err)
	}

	source := s.source
	if err := s.store.WriteOutputConfig(ctx, domain.OutputConfig{Source: &source}); err != nil {
		return fmt.Errorf("write output config: %w", err)
	}

	for _, cfg := range configs {
		if err := s.store.WriteContentTypeConfig(ctx, cfg); err != nil {
			return fmt.Errorf("write config for %s: %w", cfg.ContentType, err)
		}
		logger.Info("Configured %s with %d tool(s)", cfg.ContentType, len(cfg.Tools))
	}
	return nil
}

// AvailableContentTypes lists the content types offered by the source.
func (s *InitService) AvailableContentTypes(ctx context.Context) ([]domain.ContentTypeInfo, error) {
	lister, err := s.lister(ctx)
	if err != nil {
		return nil, err
	}
	if lister == nil {
		return nil, fmt.Errorf("source %s cannot list content types", s.source)
	}
	return lister.ContentTypes(ctx)
}

func (s *InitService) lister(ctx context.Context) (driven.ContentTypeLister, error) {
	adapter, err := s.sources.Create(ctx, s.source)
	if err != nil {
		return nil, err
	}
	lister, _ := adapter.(driven.ContentTypeLister)
	return lister, nil
}

// checkAgainstSource validates content type ids and tool fields against the
// source. Missing credentials skip the check with a warning.
func (s *InitService) checkAgainstSource(ctx context.Context, configs []domain.ContentTypeConfig) error {
	lister, err := s.lister(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrConfigInvalid) {
			logger.Warn("Skipping content type validation: %v", err)
			return nil
		}
		return err
	}
	if lister == nil {
		return nil
	}

	available, err := lister.ContentTypes(ctx)
	if err != nil {
		return fmt.Errorf("list content types: %w", err)
	}

	byID := make(map[string]domain.ContentTypeInfo, len(available))
	ids := make([]string, 0, len(available))
	for _, info := range available {
		byID[info.ID] = info
		ids = append(ids, info.ID)
	}

	for _, cfg := range configs {
		info, ok := byID[cfg.ContentType]
		if !ok {
			return fmt.Errorf("%w: %s (available: %s)", domain.ErrUnknownContentType, cfg.ContentType, strings.Join(ids, ", "))
		}
		for _, tool := range cfg.Tools {
			for _, field := range tool.Fields {
				if !info.HasField(field) {
					return &domain.ConfigInvalidError{
						Reason: fmt.Sprintf("tool %q: content type %s has no field %q (fields: %s)",
							tool.Name, cfg.ContentType, field, strings.Join(info.Fields, ", ")),
					}
				}
			}
		}
	}
	return nil
}
