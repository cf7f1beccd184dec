package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("nil map yields empty config", func(t *testing.T) {
		c := New(nil)
		assert.NotNil(t, c.Raw())
		assert.False(t, c.Has("anything"))
	})

	t.Run("preserves data", func(t *testing.T) {
		c := New(map[string]any{"key": "value"})
		assert.True(t, c.Has("key"))
		assert.Equal(t, "value", c.String("key", ""))
	})
}

func TestConfig_String(t *testing.T) {
	c := New(map[string]any{
		"name":   "steptree",
		"number": 42,
	})

	assert.Equal(t, "steptree", c.String("name", "default"))
	assert.Equal(t, "default", c.String("missing", "default"))
	assert.Equal(t, "default", c.String("number", "default"))
}

func TestConfig_Duration(t *testing.T) {
	c := New(map[string]any{
		"str_duration":   "30s",
		"int_seconds":    60,
		"float_seconds":  1.5,
		"real_duration":  5 * time.Minute,
		"invalid_string": "not a duration",
	})

	assert.Equal(t, 30*time.Second, c.Duration("str_duration", time.Second))
	assert.Equal(t, 60*time.Second, c.Duration("int_seconds", time.Second))
	assert.Equal(t, 1500*time.Millisecond, c.Duration("float_seconds", time.Second))
	assert.Equal(t, 5*time.Minute, c.Duration("real_duration", time.Second))
	assert.Equal(t, time.Second, c.Duration("invalid_string", time.Second))
	assert.Equal(t, time.Second, c.Duration("missing", time.Second))
}

func TestConfig_Bool(t *testing.T) {
	c := New(map[string]any{
		"enabled": true,
		"str":     "true",
	})

	assert.True(t, c.Bool("enabled", false))
	assert.False(t, c.Bool("str", false))
	assert.True(t, c.Bool("missing", true))
}

func TestConfig_Int(t *testing.T) {
	c := New(map[string]any{
		"int_val":        3,
		"int64_val":      int64(7),
		"whole_float":    50.0,
		"fraction_float": 3.7,
	})

	assert.Equal(t, 3, c.Int("int_val", 0))
	assert.Equal(t, 7, c.Int("int64_val", 0))
	assert.Equal(t, 50, c.Int("whole_float", 0))
	assert.Equal(t, 99, c.Int("fraction_float", 99))
	assert.Equal(t, 99, c.Int("missing", 99))
}

func TestConfig_Float(t *testing.T) {
	c := New(map[string]any{
		"float_val": 2.5,
		"int_val":   3,
	})

	assert.Equal(t, 2.5, c.Float("float_val", 0))
	assert.Equal(t, 3.0, c.Float("int_val", 0))
	assert.Equal(t, 1.0, c.Float("missing", 1.0))
}

func TestFromYAML(t *testing.T) {
	data := []byte(`
service_url: http://tutor.internal:8000
max_depth: 2
service_timeout: 45s
`)

	c, err := FromYAML(data)
	require.NoError(t, err)
	assert.Equal(t, "http://tutor.internal:8000", c.String("service_url", ""))
	assert.Equal(t, 2, c.Int("max_depth", 0))
	assert.Equal(t, 45*time.Second, c.Duration("service_timeout", 0))
}

func TestFromYAML_Invalid(t *testing.T) {
	_, err := FromYAML([]byte("{ unbalanced"))
	assert.Error(t, err)
}

func TestFromJSON(t *testing.T) {
	data := []byte(`{"retention_limit": 25, "log_level": "debug"}`)

	c, err := FromJSON(data)
	require.NoError(t, err)
	assert.Equal(t, 25, c.Int("retention_limit", 0))
	assert.Equal(t, "debug", c.String("log_level", ""))
}

func TestLoadSettings(t *testing.T) {
	dir := t.TempDir()

	t.Run("yaml file", func(t *testing.T) {
		path := filepath.Join(dir, "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("free_limit: 10\nmax_depth: 2"), 0o644))

		s, err := LoadSettings(path)
		require.NoError(t, err)
		assert.Equal(t, 10, s.FreeLimit)
		assert.Equal(t, 2, s.MaxDepth)

		// absent keys fall back to defaults
		assert.Equal(t, DefaultSettings().ServiceURL, s.ServiceURL)
	})

	t.Run("json file", func(t *testing.T) {
		path := filepath.Join(dir, "config.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"pro_limit": 100}`), 0o644))

		s, err := LoadSettings(path)
		require.NoError(t, err)
		assert.Equal(t, 100, s.ProLimit)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		path := filepath.Join(dir, "config.toml")
		require.NoError(t, os.WriteFile(path, []byte("x = 1"), 0o644))

		_, err := LoadSettings(path)
		assert.ErrorContains(t, err, "unsupported config file extension")
	})

	t.Run("malformed file", func(t *testing.T) {
		path := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("{ unbalanced"), 0o644))

		_, err := LoadSettings(path)
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadSettings(filepath.Join(dir, "nonexistent.yaml"))
		assert.Error(t, err)
	})
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	assert.Equal(t, "http://localhost:8000", s.ServiceURL)
	assert.Equal(t, 60*time.Second, s.ServiceTimeout)
	assert.Equal(t, 3, s.MaxDepth)
	assert.Equal(t, 50, s.RetentionLimit)
	assert.Equal(t, 5, s.FreeLimit)
	assert.Equal(t, 50, s.ProLimit)
	assert.Equal(t, time.Minute, s.RateLimitWindow)
}

func TestSettingsFrom(t *testing.T) {
	t.Run("empty config falls back to defaults", func(t *testing.T) {
		assert.Equal(t, DefaultSettings(), SettingsFrom(New(nil)))
	})

	t.Run("overrides take effect", func(t *testing.T) {
		c := New(map[string]any{
			"service_url":       "http://tutor.internal",
			"max_depth":         2,
			"free_limit":        10,
			"rate_limit_window": "30s",
		})

		s := SettingsFrom(c)
		assert.Equal(t, "http://tutor.internal", s.ServiceURL)
		assert.Equal(t, 2, s.MaxDepth)
		assert.Equal(t, 10, s.FreeLimit)
		assert.Equal(t, 30*time.Second, s.RateLimitWindow)

		// untouched keys keep defaults
		assert.Equal(t, 50, s.RetentionLimit)
		assert.Equal(t, "info", s.LogLevel)
	})
}
