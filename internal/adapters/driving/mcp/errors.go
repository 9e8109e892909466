// Package mcp serves a tool registry over the Model Context Protocol.
// It lets AI assistants list and read the content of an smcp output
// directory through stdio or streamable HTTP.
package mcp

import "errors"

// ErrMissingToolSurface is returned when no tool surface builder is provided.
var ErrMissingToolSurface = errors.New("mcp: tool surface builder is required")
