package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrConfigNotFound", ErrConfigNotFound},
		{"ErrConfigInvalid", ErrConfigInvalid},
		{"ErrUnknownSource", ErrUnknownSource},
		{"ErrUnknownContentType", ErrUnknownContentType},
		{"ErrEntryNotFound", ErrEntryNotFound},
		{"ErrToolNotFound", ErrToolNotFound},
		{"ErrAssetNotFound", ErrAssetNotFound},
		{"ErrRenderFailure", ErrRenderFailure},
		{"ErrDownloadFailure", ErrDownloadFailure},
		{"ErrRateLimited", ErrRateLimited},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestConfigInvalidError(t *testing.T) {
	t.Run("includes path and reason", func(t *testing.T) {
		err := &ConfigInvalidError{Path: "out/config.json", Reason: "unexpected end of JSON input"}
		assert.Equal(t, "invalid config out/config.json: unexpected end of JSON input", err.Error())
	})

	t.Run("omits empty path", func(t *testing.T) {
		err := &ConfigInvalidError{Reason: "tools must not be empty"}
		assert.Equal(t, "invalid config: tools must not be empty", err.Error())
	})

	t.Run("unwraps to sentinel through wrapping", func(t *testing.T) {
		err := fmt.Errorf("read content type config: %w", &ConfigInvalidError{Reason: "x"})
		assert.True(t, errors.Is(err, ErrConfigInvalid))
		assert.False(t, errors.Is(err, ErrConfigNotFound))

		var target *ConfigInvalidError
		assert.True(t, errors.As(err, &target))
		assert.Equal(t, "x", target.Reason)
	})
}

func TestDownloadError(t *testing.T) {
	err := &DownloadError{URL: "https://images.example/a.png", StatusCode: 404, Status: "404 Not Found"}

	assert.Equal(t, "failed to download asset from https://images.example/a.png: 404 Not Found", err.Error())
	assert.True(t, errors.Is(fmt.Errorf("download a.png: %w", err), ErrDownloadFailure))
}
