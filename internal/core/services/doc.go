// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// Services:
//   - InitService: writes config.json and per content type configs
//   - BuildOrchestrator: pulls entries from a source into the content store
//   - ToolSurface: scans a content store into the MCP tool registry
//   - SettingsService: resolves smcp.toml settings and environment overrides
//   - SourceRegistry: creates source adapters by name
package services
