// Package contentful implements a source adapter for the Contentful
// Content Delivery API.
//
// # Architecture
//
// The adapter follows the driven port pattern defined in [driven.SourceAdapter].
// It comprises the following components:
//
//   - Adapter: fetches entries per content type, allocates slugs, extracts
//     assets and renders tool markdown
//   - Client: handles Content Delivery API communication with rate limiting
//     and pagination
//   - decoder: converts entry and asset JSON into link-resolved domain values
//
// # Authentication
//
// Requests carry the delivery token as a bearer token (CONTENTFUL_API_TOKEN).
// Asset downloads go to the asset CDN without credentials.
//
// # Link Resolution
//
// Entries are requested with include=2 so linked entries and assets arrive in
// the response's includes section. Links resolve by ID against every item and
// include seen across all pages. Targets outside that set stay unresolved.
// Resolved entries may reference each other, so the resulting graph can
// contain cycles.
//
// # Rate Limiting
//
// A token bucket limits request rate (contentful.requests_per_second and
// contentful.burst in smcp.toml). A 429 response sets a backoff from the
// X-Contentful-RateLimit-Reset header and the request is retried up to
// MaxRetries times.
package contentful
