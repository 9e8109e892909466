package mcp

import (
	"github.com/custodia-labs/static-mcpify/internal/core/ports/driving"
)

// Ports aggregates the driving ports required by the MCP server.
type Ports struct {
	// Tools scans the content store into the served tool set.
	Tools driving.ToolSurfaceBuilder

	// ContentDir is the served content directory. It is reported by the
	// health endpoint and watched in watch mode.
	ContentDir string
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Tools == nil {
		return ErrMissingToolSurface
	}
	return nil
}
