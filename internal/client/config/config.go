package config

import "time"

// Config holds runtime settings for the NoteKeep CLI.
//
// Fields:
//   - BaseURL: base URL of the backend REST API, including the /api prefix.
//   - RequestTimeout: end-to-end bound on every backend request.
type Config struct {
	BaseURL        string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults. The base URL default
// matches the backend's local development address.
func (c *Config) LoadDefaults() {
	c.BaseURL = "http://localhost:5000/api"
	c.RequestTimeout = 10 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from the environment, a JSON file (if present), and command-line flags.
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
