package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/static-mcpify/internal/core/domain"
)

// registerTools adds every registry tool to the MCP server. A tool already
// registered under the same name is replaced.
func (s *Server) registerTools(registry *domain.ToolRegistry) error {
	for _, tool := range registry.Tools() {
		schema := inputSchema(tool)
		resolved, err := schema.Resolve(nil)
		if err != nil {
			return fmt.Errorf("resolve input schema of %s: %w", tool.Name, err)
		}

		s.server.AddTool(&mcp.Tool{
			Name:        tool.Name,
			Description: tool.Description,
			InputSchema: schema,
		}, toolHandler(registry, tool.Name, resolved))
	}
	return nil
}

// inputSchema describes a tool's string parameters as a JSON object schema.
func inputSchema(tool domain.Tool) *jsonschema.Schema {
	schema := &jsonschema.Schema{
		Type:       "object",
		Properties: make(map[string]*jsonschema.Schema, len(tool.Params)),
	}
	for _, p := range tool.Params {
		schema.Properties[p.Name] = &jsonschema.Schema{
			Type:        "string",
			Description: p.Description,
		}
		if p.Required {
			schema.Required = append(schema.Required, p.Name)
		}
	}
	return schema
}

// toolHandler validates the call arguments and invokes the registry tool.
// Invalid arguments are reported as an error result.
func toolHandler(registry *domain.ToolRegistry, name string, schema *jsonschema.Resolved) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var raw json.RawMessage
		if req != nil && req.Params != nil {
			raw = req.Params.Arguments
		}

		args, err := decodeArguments(raw, schema)
		if err != nil {
			return callResult(domain.ErrorResult("Invalid arguments for %s: %v", name, err)), nil
		}
		return callResult(registry.Invoke(ctx, name, args)), nil
	}
}

// decodeArguments checks raw against schema and returns its string values.
func decodeArguments(raw json.RawMessage, schema *jsonschema.Resolved) (map[string]string, error) {
	instance := map[string]any{}
	if trimmed := bytes.TrimSpace(raw); len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null")) {
		if err := json.Unmarshal(trimmed, &instance); err != nil {
			return nil, err
		}
	}
	if err := schema.Validate(instance); err != nil {
		return nil, err
	}

	args := make(map[string]string, len(instance))
	for k, v := range instance {
		if s, ok := v.(string); ok {
			args[k] = s
		}
	}
	return args, nil
}

func callResult(r domain.ToolResult) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: r.Text}},
		IsError: r.IsError,
	}
}
