package domain

import (
	"context"
	"fmt"
)

// ToolParam is a string argument accepted by a tool.
type ToolParam struct {
	Name        string
	Description string
	Required    bool
}

// ToolResult is the text returned by a tool invocation.
// Not-found conditions are reported with IsError set, never as Go errors.
type ToolResult struct {
	Text    string
	IsError bool
}

// TextResult creates a successful result.
func TextResult(text string) ToolResult {
	return ToolResult{Text: text}
}

// ErrorResult creates a failed result.
func ErrorResult(format string, args ...any) ToolResult {
	return ToolResult{Text: fmt.Sprintf(format, args...), IsError: true}
}

// ToolHandler executes a tool with validated arguments.
type ToolHandler func(ctx context.Context, args map[string]string) ToolResult

// Tool is a named query operation over the content store.
type Tool struct {
	Name        string
	Description string
	Params      []ToolParam
	Handler     ToolHandler
}

// ToolRegistry is an immutable, ordered set of tools.
type ToolRegistry struct {
	tools []Tool
	index map[string]int
}

// NewToolRegistry creates a registry. Tool names must be unique.
func NewToolRegistry(tools []Tool) (*ToolRegistry, error) {
	r := &ToolRegistry{
		tools: make([]Tool, 0, len(tools)),
		index: make(map[string]int, len(tools)),
	}
	for _, t := range tools {
		if t.Name == "" {
			return nil, fmt.Errorf("%w: tool name is empty", ErrInvalidInput)
		}
		if t.Handler == nil {
			return nil, fmt.Errorf("%w: tool %s has no handler", ErrInvalidInput, t.Name)
		}
		if _, dup := r.index[t.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate tool name %s", ErrInvalidInput, t.Name)
		}
		r.index[t.Name] = len(r.tools)
		r.tools = append(r.tools, t)
	}
	return r, nil
}

// Len returns the number of tools.
func (r *ToolRegistry) Len() int {
	return len(r.tools)
}

// Tools returns the tools in registration order.
func (r *ToolRegistry) Tools() []Tool {
	tools := make([]Tool, len(r.tools))
	copy(tools, r.tools)
	return tools
}

// Names returns the tool names in registration order.
func (r *ToolRegistry) Names() []string {
	names := make([]string, len(r.tools))
	for i, t := range r.tools {
		names[i] = t.Name
	}
	return names
}

// Lookup returns the tool registered under name.
func (r *ToolRegistry) Lookup(name string) (Tool, bool) {
	i, ok := r.index[name]
	if !ok {
		return Tool{}, false
	}
	return r.tools[i], true
}

// Invoke runs the named tool after checking required arguments.
func (r *ToolRegistry) Invoke(ctx context.Context, name string, args map[string]string) ToolResult {
	tool, ok := r.Lookup(name)
	if !ok {
		return ErrorResult("Unknown tool %q.", name)
	}
	for _, p := range tool.Params {
		if p.Required && args[p.Name] == "" {
			return ErrorResult("missing required argument %q", p.Name)
		}
	}
	if args == nil {
		args = map[string]string{}
	}
	return tool.Handler(ctx, args)
}
