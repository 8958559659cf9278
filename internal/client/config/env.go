package config

import (
	"os"
	"time"
)

// Environment variables recognized by the client. NOTEKEEP_API_URL is the
// one variable that selects the backend; when unset the local development
// default stays in place.
const (
	envBaseURL        = "NOTEKEEP_API_URL"
	envRequestTimeout = "NOTEKEEP_REQUEST_TIMEOUT"
)

func parseEnv(cfg *Config) {
	if v := os.Getenv(envBaseURL); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv(envRequestTimeout); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.RequestTimeout = d
		}
	}
}
