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

// Ensure ToolSurface implements the interface.
var _ driving.ToolSurfaceBuilder = (*ToolSurface)(nil)

// Tool parameter names.
const (
	ParamFilter   = "filter"
	ParamFileName = "fileName"
	ParamTitle    = "title"
)

const titleParamDescription = `The entry title (slug format, e.g., "bob-smith")`

// ToolSurface turns a content store into the tools served over MCP.
type ToolSurface struct {
	store driven.ContentStore
}

// NewToolSurface creates a tool surface builder over store.
func NewToolSurface(store driven.ContentStore) *ToolSurface {
	return &ToolSurface{store: store}
}

// scannedType is one configured content type found by the scan.
type scannedType struct {
	name    string
	config  *domain.ContentTypeConfig
	entries []string
}

// BuildToolSurface scans the store once and returns the registry.
// Asset and entry lists are fixed at scan time; file contents are read on
// every call. Content types without a config are skipped; an invalid config
// fails the whole scan.
func (s *ToolSurface) BuildToolSurface(ctx context.Context) (*domain.ToolRegistry, error) {
	assets, err := s.store.ListAssets(ctx)
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}

	types, err := s.scanContentTypes(ctx)
	if err != nil {
		return nil, err
	}

	tools := []domain.Tool{
		s.listAssetsTool(assets),
		s.getAssetTool(),
	}
	for _, ct := range types {
		tools = append(tools, s.listEntriesTool(ct), s.getEntryTool(ct))
		for _, tc := range ct.config.Tools {
			tools = append(tools, s.getEntryToolTool(ct, tc))
		}
	}

	registry, err := domain.NewToolRegistry(tools)
	if err != nil {
		return nil, err
	}
	logger.Debug("Registered %d tools over %d content type(s) and %d asset(s)", registry.Len(), len(types), len(assets))
	return registry, nil
}

func (s *ToolSurface) scanContentTypes(ctx context.Context) ([]scannedType, error) {
	names, err := s.store.ListContentTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("list content types: %w", err)
	}

	var types []scannedType
	for _, name := range names {
		cfg, err := s.store.ReadContentTypeConfig(ctx, name)
		if err != nil {
			if errors.Is(err, domain.ErrConfigNotFound) {
				logger.Debug("Skipping %s: no config.json", name)
				continue
			}
			return nil, fmt.Errorf("read content type config: %w", err)
		}

		entries, err := s.store.ListEntries(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("list %s entries: %w", name, err)
		}
		types = append(types, scannedType{name: name, config: cfg, entries: entries})
	}
	return types, nil
}

func (s *ToolSurface) listAssetsTool(assets []string) domain.Tool {
	return domain.Tool{
		Name:        "list_assets",
		Description: "List all available assets. Optionally filter by filename substring.",
		Params: []domain.ToolParam{
			{Name: ParamFilter, Description: "Optional substring to filter asset filenames"},
		},
		Handler: func(_ context.Context, args map[string]string) domain.ToolResult {
			matched := filterNames(assets, args[ParamFilter])
			if len(matched) == 0 {
				return domain.TextResult("No assets found matching the filter.")
			}
			return domain.TextResult(strings.Join(matched, "\n"))
		},
	}
}

func (s *ToolSurface) getAssetTool() domain.Tool {
	return domain.Tool{
		Name:        "get_asset",
		Description: "Get details about a specific asset by filename.",
		Params: []domain.ToolParam{
			{Name: ParamFileName, Description: "The asset filename", Required: true},
		},
		Handler: func(ctx context.Context, args map[string]string) domain.ToolResult {
			name := args[ParamFileName]
			exists, err := s.store.AssetExists(ctx, name)
			if err != nil || !exists {
				return domain.ErrorResult("Asset %q not found.", name)
			}
			return domain.TextResult(fmt.Sprintf("Asset: %s\nPath: %s", name, s.store.AssetPath(name)))
		},
	}
}

func (s *ToolSurface) listEntriesTool(ct scannedType) domain.Tool {
	return domain.Tool{
		Name:        "list_" + ct.name,
		Description: fmt.Sprintf("List all %s entries. Optionally filter by title substring.", ct.name),
		Params: []domain.ToolParam{
			{Name: ParamFilter, Description: "Optional substring to filter entry titles"},
		},
		Handler: func(_ context.Context, args map[string]string) domain.ToolResult {
			matched := filterNames(ct.entries, args[ParamFilter])
			if len(matched) == 0 {
				return domain.TextResult(fmt.Sprintf("No %s entries found matching the filter.", ct.name))
			}
			return domain.TextResult(strings.Join(matched, "\n"))
		},
	}
}

func (s *ToolSurface) getEntryTool(ct scannedType) domain.Tool {
	return domain.Tool{
		Name:        "get_" + ct.name,
		Description: fmt.Sprintf("Get the data for a specific %s entry by title.", ct.name),
		Params: []domain.ToolParam{
			{Name: ParamTitle, Description: titleParamDescription, Required: true},
		},
		Handler: func(ctx context.Context, args map[string]string) domain.ToolResult {
			title := args[ParamTitle]
			data, err := s.store.ReadEntry(ctx, ct.name, title)
			if err != nil {
				return domain.ErrorResult("Entry %q not found in %s.", title, ct.name)
			}
			return domain.TextResult(string(data))
		},
	}
}

func (s *ToolSurface) getEntryToolTool(ct scannedType, tc domain.ToolConfig) domain.Tool {
	description := tc.Description
	if description == "" {
		description = fmt.Sprintf("Get the %s for a specific %s entry.", tc.Name, ct.name)
	}

	return domain.Tool{
		Name:        fmt.Sprintf("get_%s_%s", ct.name, tc.Name),
		Description: description,
		Params: []domain.ToolParam{
			{Name: ParamTitle, Description: titleParamDescription, Required: true},
		},
		Handler: func(ctx context.Context, args map[string]string) domain.ToolResult {
			title := args[ParamTitle]
			md, err := s.store.ReadToolMarkdown(ctx, ct.name, title, tc.Name)
			if err != nil {
				return domain.ErrorResult("Tool %q not found for entry %q in %s.", tc.Name, title, ct.name)
			}
			return domain.TextResult(string(md))
		},
	}
}

// filterNames returns the names containing filter, ignoring case.
// An empty filter matches everything.
func filterNames(names []string, filter string) []string {
	if filter == "" {
		return names
	}
	needle := strings.ToLower(filter)
	var matched []string
	for _, n := range names {
		if strings.Contains(strings.ToLower(n), needle) {
			matched = append(matched, n)
		}
	}
	return matched
}
