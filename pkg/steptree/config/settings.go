package config

import "time"

// Settings is the typed configuration surface for a tutor deployment.
type Settings struct {
	// ServiceURL is the base URL of the decomposition service.
	ServiceURL string

	// ServiceTimeout bounds each decomposition call.
	ServiceTimeout time.Duration

	// SessionDBPath is the SQLite file for the session store.
	SessionDBPath string

	// MaxDepth caps recursive step expansion.
	MaxDepth int

	// RetentionLimit caps the number of persisted sessions.
	RetentionLimit int

	// Rate limit tiers (requests per window).
	FreeLimit       int
	ProLimit        int
	RateLimitWindow time.Duration

	// LogLevel for slog ("debug", "info", "warn", "error").
	LogLevel string
}

// DefaultSettings returns the defaults used when keys are absent.
func DefaultSettings() Settings {
	return Settings{
		ServiceURL:      "http://localhost:8000",
		ServiceTimeout:  60 * time.Second,
		SessionDBPath:   "./sessions.db",
		MaxDepth:        3,
		RetentionLimit:  50,
		FreeLimit:       5,
		ProLimit:        50,
		RateLimitWindow: time.Minute,
		LogLevel:        "info",
	}
}

// SettingsFrom extracts typed settings from a Config, falling back to
// DefaultSettings for missing or invalid keys.
func SettingsFrom(c Config) Settings {
	d := DefaultSettings()
	return Settings{
		ServiceURL:      c.String("service_url", d.ServiceURL),
		ServiceTimeout:  c.Duration("service_timeout", d.ServiceTimeout),
		SessionDBPath:   c.String("session_db_path", d.SessionDBPath),
		MaxDepth:        c.Int("max_depth", d.MaxDepth),
		RetentionLimit:  c.Int("retention_limit", d.RetentionLimit),
		FreeLimit:       c.Int("free_limit", d.FreeLimit),
		ProLimit:        c.Int("pro_limit", d.ProLimit),
		RateLimitWindow: c.Duration("rate_limit_window", d.RateLimitWindow),
		LogLevel:        c.String("log_level", d.LogLevel),
	}
}
