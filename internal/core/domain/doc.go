// Package domain defines the core business entities for static-mcpify.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Value: The closed set of field value variants (scalar, array, object,
//     entry link, asset link, rich document node)
//   - Entry / Asset: Link-resolved content fetched from a source
//   - NormalizedEntry: The acyclic form persisted as data.json
//   - OutputConfig / ContentTypeConfig / ToolConfig: Store configuration
//   - ToolRegistry: The immutable set of query operations served over MCP
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
