package driving

import "github.com/custodia-labs/static-mcpify/internal/core/domain"

// SettingsService resolves effective settings from smcp.toml and the environment.
type SettingsService interface {
	// Get returns the effective settings.
	Get() domain.Settings

	// Set stores a setting in smcp.toml.
	Set(key string, value any) error
}
