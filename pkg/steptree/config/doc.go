/*
Package config provides type-safe configuration extraction from map[string]any,
plus the typed Settings surface for a tutor deployment.

# Basic Usage

Create a Config from any map and extract values with defaults:

	cfg := config.New(map[string]any{
	    "service_timeout": "30s",
	    "max_depth":       4,
	})

	timeout := cfg.Duration("service_timeout", 10*time.Second) // 30s
	depth := cfg.Int("max_depth", 3)                           // 4
	missing := cfg.String("missing", "default")                // "default"

# Type Coercion

Duration handles multiple input types:
  - string: parsed with time.ParseDuration ("30s", "1h30m")
  - int/float64: interpreted as seconds
  - time.Duration: used directly

All accessors return the default value if the key is missing, the value
cannot be converted, or the conversion would lose precision.

# File Loading

Load configuration from YAML or JSON files:

	cfg, err := config.FromFile("config.yaml")
	if err != nil {
	    log.Fatal(err)
	}
	settings := config.SettingsFrom(cfg)

# Thread Safety

Config is safe for concurrent read access. The underlying map is not
modified after creation.
*/
package config
