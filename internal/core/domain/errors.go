package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Configuration Errors.

	// ErrConfigNotFound indicates a required config.json file is missing.
	ErrConfigNotFound = errors.New("config not found")

	// ErrConfigInvalid indicates a config file is malformed or violates its schema.
	ErrConfigInvalid = errors.New("config invalid")

	// ErrUnknownSource indicates the output config names an unsupported source.
	ErrUnknownSource = errors.New("unknown source")

	// ErrUnknownContentType indicates a requested content type does not exist.
	ErrUnknownContentType = errors.New("unknown content type")

	// Store Errors.

	// ErrEntryNotFound indicates no data.json exists for the requested slug.
	ErrEntryNotFound = errors.New("entry not found")

	// ErrToolNotFound indicates no markdown file exists for the requested tool.
	ErrToolNotFound = errors.New("tool not found")

	// ErrAssetNotFound indicates no asset file exists under the requested name.
	ErrAssetNotFound = errors.New("asset not found")

	// Pipeline Errors.

	// ErrRenderFailure indicates a rich document could not be converted to markdown.
	// It degrades the section body and is never fatal.
	ErrRenderFailure = errors.New("render failure")

	// ErrDownloadFailure indicates an asset download returned a non-success status.
	ErrDownloadFailure = errors.New("download failure")

	// ErrRateLimited indicates the source API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")
)

// ConfigInvalidError describes why a config file was rejected.
type ConfigInvalidError struct {
	Path   string
	Reason string
}

func (e *ConfigInvalidError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("invalid config: %s", e.Reason)
	}
	return fmt.Sprintf("invalid config %s: %s", e.Path, e.Reason)
}

// Unwrap allows errors.Is(err, ErrConfigInvalid).
func (e *ConfigInvalidError) Unwrap() error {
	return ErrConfigInvalid
}

// DownloadError reports a failed asset fetch.
type DownloadError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("failed to download asset from %s: %s", e.URL, e.Status)
}

// Unwrap allows errors.Is(err, ErrDownloadFailure).
func (e *DownloadError) Unwrap() error {
	return ErrDownloadFailure
}
