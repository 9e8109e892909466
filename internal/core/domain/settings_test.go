package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	assert.Equal(t, "master", s.Contentful.Environment)
	assert.Equal(t, "cdn.contentful.com", s.Contentful.Host)
	assert.Equal(t, 10.0, s.Contentful.RequestsPerSecond)
	assert.Equal(t, 5, s.Contentful.Burst)
	assert.Equal(t, 4, s.Build.DownloadConcurrency)
	assert.Empty(t, s.Contentful.SpaceID)
	assert.Empty(t, s.Contentful.AccessToken)
}

func TestContentfulSettings_ValidateCredentials(t *testing.T) {
	tests := []struct {
		name    string
		token   string
		spaceID string
		missing []string
	}{
		{"both set", "token", "space", nil},
		{"missing token", "", "space", []string{"CONTENTFUL_API_TOKEN"}},
		{"missing space id", "token", "", []string{"SPACE_ID"}},
		{"missing both", "", "", []string{"CONTENTFUL_API_TOKEN", "SPACE_ID"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ContentfulSettings{AccessToken: tt.token, SpaceID: tt.spaceID}.ValidateCredentials()
			if tt.missing == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrConfigInvalid)
			for _, name := range tt.missing {
				assert.Contains(t, err.Error(), name)
			}
		})
	}
}

func TestContentfulSettings_ValidateCredentials_TokenOnlyMessage(t *testing.T) {
	err := ContentfulSettings{SpaceID: "space"}.ValidateCredentials()
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "SPACE_ID")
}
