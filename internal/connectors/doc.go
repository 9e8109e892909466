// Package connectors holds the source adapters that fetch entries and
// assets from remote content platforms. Each subpackage implements
// driven.SourceAdapter for one platform and is registered by name with
// services.SourceRegistry.
package connectors
