package domain

import "fmt"

// Settings holds tunables read from smcp.toml and the environment.
type Settings struct {
	Contentful ContentfulSettings
	Build      BuildSettings
}

// ContentfulSettings configures the Contentful delivery client.
type ContentfulSettings struct {
	// SpaceID and AccessToken come from SPACE_ID and CONTENTFUL_API_TOKEN.
	SpaceID     string
	AccessToken string

	// Environment defaults to "master".
	Environment string

	// Host defaults to the public delivery API host.
	Host string

	// RequestsPerSecond is the sustained request rate.
	RequestsPerSecond float64

	// Burst is the maximum burst size.
	Burst int
}

// BuildSettings configures the build pipeline.
type BuildSettings struct {
	// DownloadConcurrency bounds parallel asset downloads per entry.
	DownloadConcurrency int
}

// Default setting values.
const (
	DefaultContentfulEnvironment = "master"
	DefaultContentfulHost        = "cdn.contentful.com"
	DefaultRequestsPerSecond     = 10.0
	DefaultBurst                 = 5
	DefaultDownloadConcurrency   = 4
)

// DefaultSettings returns settings with every default applied.
func DefaultSettings() Settings {
	return Settings{
		Contentful: ContentfulSettings{
			Environment:       DefaultContentfulEnvironment,
			Host:              DefaultContentfulHost,
			RequestsPerSecond: DefaultRequestsPerSecond,
			Burst:             DefaultBurst,
		},
		Build: BuildSettings{
			DownloadConcurrency: DefaultDownloadConcurrency,
		},
	}
}

// ValidateCredentials checks the settings needed to reach Contentful.
func (c ContentfulSettings) ValidateCredentials() error {
	var missing []string
	if c.AccessToken == "" {
		missing = append(missing, "CONTENTFUL_API_TOKEN")
	}
	if c.SpaceID == "" {
		missing = append(missing, "SPACE_ID")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing environment variables %v", ErrConfigInvalid, missing)
	}
	return nil
}
