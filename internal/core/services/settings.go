package services

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/custodia-labs/static-mcpify/internal/core/domain"
	"github.com/custodia-labs/static-mcpify/internal/core/ports/driven"
	"github.com/custodia-labs/static-mcpify/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	KeyContentfulEnvironment       = "contentful.environment"
	KeyContentfulHost              = "contentful.host"
	KeyContentfulRequestsPerSecond = "contentful.requests_per_second"
	KeyContentfulBurst             = "contentful.burst"
	KeyBuildDownloadConcurrency    = "build.download_concurrency"
)

// Environment variables read by the settings service.
//
//nolint:gosec // G101: These are variable names, not actual credentials.
const (
	EnvAccessToken = "CONTENTFUL_API_TOKEN"
	EnvSpaceID     = "SPACE_ID"
	EnvEnvironment = "CONTENTFUL_ENVIRONMENT"
	EnvHost        = "CONTENTFUL_HOST"
)

type settingKind int

const (
	kindString settingKind = iota
	kindInt
	kindFloat
)

var settingKinds = map[string]settingKind{
	KeyContentfulEnvironment:       kindString,
	KeyContentfulHost:              kindString,
	KeyContentfulRequestsPerSecond: kindFloat,
	KeyContentfulBurst:             kindInt,
	KeyBuildDownloadConcurrency:    kindInt,
}

// SettingKeys returns every settable key, sorted.
func SettingKeys() []string {
	keys := make([]string, 0, len(settingKinds))
	for k := range settingKinds {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// SettingsService resolves settings from smcp.toml and the environment.
// Environment variables win over the file; the file wins over defaults.
type SettingsService struct {
	configStore driven.ConfigStore
	lookupEnv   func(string) (string, bool)
}

// NewSettingsService creates a settings service reading the process environment.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return NewSettingsServiceWithEnv(configStore, os.LookupEnv)
}

// NewSettingsServiceWithEnv creates a settings service with a custom
// environment lookup.
func NewSettingsServiceWithEnv(configStore driven.ConfigStore, lookupEnv func(string) (string, bool)) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		lookupEnv:   lookupEnv,
	}
}

// Get returns the effective settings.
func (s *SettingsService) Get() domain.Settings {
	defaults := domain.DefaultSettings()

	return domain.Settings{
		Contentful: domain.ContentfulSettings{
			SpaceID:           s.env(EnvSpaceID),
			AccessToken:       s.env(EnvAccessToken),
			Environment:       s.envOr(EnvEnvironment, s.getString(KeyContentfulEnvironment, defaults.Contentful.Environment)),
			Host:              s.envOr(EnvHost, s.getString(KeyContentfulHost, defaults.Contentful.Host)),
			RequestsPerSecond: s.getFloat(KeyContentfulRequestsPerSecond, defaults.Contentful.RequestsPerSecond),
			Burst:             s.getInt(KeyContentfulBurst, defaults.Contentful.Burst),
		},
		Build: domain.BuildSettings{
			DownloadConcurrency: s.getInt(KeyBuildDownloadConcurrency, defaults.Build.DownloadConcurrency),
		},
	}
}

// Set validates and persists one setting. String values are parsed to the
// key's type, so CLI input can be passed through unchanged.
func (s *SettingsService) Set(key string, value any) error {
	kind, ok := settingKinds[key]
	if !ok {
		return fmt.Errorf("%w: unknown setting %q (valid: %s)", domain.ErrInvalidInput, key, strings.Join(SettingKeys(), ", "))
	}

	parsed, err := parseSetting(kind, value)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, key, err)
	}

	if err := s.configStore.Set(key, parsed); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

func parseSetting(kind settingKind, value any) (any, error) {
	switch kind {
	case kindInt:
		switch v := value.(type) {
		case int:
			return positiveInt(v)
		case int64:
			return positiveInt(int(v))
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				return nil, fmt.Errorf("expected an integer, got %q", v)
			}
			return positiveInt(n)
		}
	case kindFloat:
		switch v := value.(type) {
		case float64:
			return positiveFloat(v)
		case int:
			return positiveFloat(float64(v))
		case string:
			f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				return nil, fmt.Errorf("expected a number, got %q", v)
			}
			return positiveFloat(f)
		}
	case kindString:
		if v, ok := value.(string); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v), nil
		}
		return nil, fmt.Errorf("expected a non-empty string")
	}
	return nil, fmt.Errorf("unsupported value %v", value)
}

func positiveInt(n int) (any, error) {
	if n <= 0 {
		return nil, fmt.Errorf("must be positive, got %d", n)
	}
	return n, nil
}

func positiveFloat(f float64) (any, error) {
	if f <= 0 {
		return nil, fmt.Errorf("must be positive, got %g", f)
	}
	return f, nil
}

func (s *SettingsService) env(name string) string {
	if s.lookupEnv == nil {
		return ""
	}
	v, _ := s.lookupEnv(name)
	return strings.TrimSpace(v)
}

func (s *SettingsService) envOr(name, fallback string) string {
	if v := s.env(name); v != "" {
		return v
	}
	return fallback
}

func (s *SettingsService) getString(key, defaultVal string) string {
	if val := s.configStore.GetString(key); val != "" {
		return val
	}
	return defaultVal
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if val := s.configStore.GetInt(key); val > 0 {
		return val
	}
	return defaultVal
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if val := s.configStore.GetFloat(key); val > 0 {
		return val
	}
	return defaultVal
}
