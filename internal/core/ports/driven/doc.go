// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - SourceAdapter: Fetches normalised entries and asset payloads from a remote source
//   - SourceFactory: Creates a source adapter from settings
//   - ContentStore: The on-disk content store layout
//   - ConfigStore: smcp.toml settings
//
// # Optional Interfaces
//
//   - ContentTypeLister: Lists the content types a source offers. Init uses it
//     to validate selections when the adapter provides it.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, connector, or normaliser package
package driven
