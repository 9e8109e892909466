package driving

import (
	"context"

	"github.com/custodia-labs/static-mcpify/internal/core/domain"
)

// ToolSurfaceBuilder scans a content store into a tool registry.
type ToolSurfaceBuilder interface {
	// BuildToolSurface scans the store once and returns an immutable registry.
	BuildToolSurface(ctx context.Context) (*domain.ToolRegistry, error)
}
