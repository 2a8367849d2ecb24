package config

import "time"

// Config holds runtime settings for the admin console.
//
// Fields:
//   - ServerURL: base URL of the submission backend.
//   - RequestTimeout: per-request HTTP timeout.
//   - ExportPrefix: filename prefix for CSV exports.
type Config struct {
	ServerURL      string
	RequestTimeout time.Duration
	ExportPrefix   string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://localhost:8080"
	c.RequestTimeout = 15 * time.Second
	c.ExportPrefix = "niche_submissions"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
