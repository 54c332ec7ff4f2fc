package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromEnvDefaults(t *testing.T) {
	for _, k := range []string{"PIXELKIT_LOG_LEVEL", "PIXELKIT_LOG_FORMAT", "PIXELKIT_FORMAT", "PIXELKIT_QUALITY", "PIXELKIT_PRESETS"} {
		t.Setenv(k, "")
	}

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "png", cfg.Format)
	assert.Equal(t, 90, cfg.Quality)
	assert.Empty(t, cfg.PresetsPath)
}

func TestLoadFromEnvOverrides(t *testing.T) {
	t.Setenv("PIXELKIT_LOG_LEVEL", "debug")
	t.Setenv("PIXELKIT_LOG_FORMAT", "json")
	t.Setenv("PIXELKIT_FORMAT", "JPG")
	t.Setenv("PIXELKIT_QUALITY", " 75 ")
	t.Setenv("PIXELKIT_PRESETS", "/tmp/presets.yaml")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "jpg", cfg.Format)
	assert.Equal(t, 75, cfg.Quality)
	assert.Equal(t, "/tmp/presets.yaml", cfg.PresetsPath)
}

func TestLoadFromEnvRejectsInvalid(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"PIXELKIT_FORMAT", "heic"},
		{"PIXELKIT_LOG_LEVEL", "verbose"},
		{"PIXELKIT_QUALITY", "0"},
		{"PIXELKIT_QUALITY", "101"},
		{"PIXELKIT_LOG_FORMAT", "xml"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			t.Setenv("PIXELKIT_LOG_LEVEL", "")
			t.Setenv("PIXELKIT_FORMAT", "")
			t.Setenv("PIXELKIT_QUALITY", "")
			t.Setenv("PIXELKIT_LOG_FORMAT", "")
			t.Setenv(tt.key, tt.value)
			_, err := LoadFromEnv()
			assert.Error(t, err)
		})
	}
}

func TestLoadFromEnvAcceptsAllFormats(t *testing.T) {
	t.Setenv("PIXELKIT_LOG_LEVEL", "WARN")
	t.Setenv("PIXELKIT_QUALITY", "")
	t.Setenv("PIXELKIT_LOG_FORMAT", "")
	for _, f := range []string{"png", "jpg", "jpeg", "webp", "gif", "bmp", "tif", "tiff"} {
		t.Setenv("PIXELKIT_FORMAT", f)
		cfg, err := LoadFromEnv()
		require.NoError(t, err, f)
		assert.Equal(t, f, cfg.Format)
	}
}
