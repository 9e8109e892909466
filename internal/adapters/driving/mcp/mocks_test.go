package mcp

import (
	"context"
	"sync"

	"github.com/custodia-labs/static-mcpify/internal/core/domain"
)

// mockToolSurface implements driving.ToolSurfaceBuilder for testing.
// Each call returns the next registry; the last one repeats.
type mockToolSurface struct {
	mu         sync.Mutex
	registries []*domain.ToolRegistry
	err        error
	calls      int
}

func (m *mockToolSurface) BuildToolSurface(_ context.Context) (*domain.ToolRegistry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	i := m.calls - 1
	if i >= len(m.registries) {
		i = len(m.registries) - 1
	}
	return m.registries[i], nil
}

// echoTool returns a tool that echoes its title argument.
func echoTool(name string) domain.Tool {
	return domain.Tool{
		Name:        name,
		Description: "Echo " + name,
		Params: []domain.ToolParam{
			{Name: "title", Description: "The entry title", Required: true},
			{Name: "filter", Description: "Optional filter"},
		},
		Handler: func(_ context.Context, args map[string]string) domain.ToolResult {
			if args["title"] == "missing" {
				return domain.ErrorResult("Entry %q not found.", args["title"])
			}
			return domain.TextResult(name + ":" + args["title"] + ":" + args["filter"])
		},
	}
}

func mustRegistry(tools ...domain.Tool) *domain.ToolRegistry {
	r, err := domain.NewToolRegistry(tools)
	if err != nil {
		panic(err)
	}
	return r
}
